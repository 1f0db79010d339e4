package trace

import "fmt"

// Config holds tracer configuration.
type Config struct {
	// NsPerCycle is how many nanoseconds one caller cycle represents. May be
	// fractional (0.5 means 1 cycle = 0.5 ns). Zero or negative falls back
	// to 1.0.
	NsPerCycle float64
}

// openEvent is a span begun but not yet ended. Lives on the per-track stack.
type openEvent struct {
	Name string
	Ts   float64 // already converted to microseconds
}

// Tracer records timed spans and instants on named tracks and serializes
// them as a Chrome trace-event document. A Tracer is not safe for concurrent
// use; each instance expects a single caller goroutine.
type Tracer struct {
	nsPerCycle float64
	conv       converter
	reg        registry
	stacks     map[int64][]openEvent // open spans keyed by track id
	events     []Event
}

// New creates a Tracer with the given configuration.
func New(cfg Config) *Tracer {
	scale := cfg.NsPerCycle
	if scale <= 0 {
		scale = 1.0
	}
	return &Tracer{
		nsPerCycle: scale,
		conv:       newConverter(scale),
		reg:        newRegistry(),
		stacks:     make(map[int64][]openEvent),
	}
}

// NsPerCycle returns the scale the tracer was configured with.
func (t *Tracer) NsPerCycle() float64 {
	return t.nsPerCycle
}

// RegisterModule returns the module registered under name, creating it on
// first use. Creation appends a process_name metadata record; repeated calls
// with the same name return the same module and emit nothing.
func (t *Tracer) RegisterModule(name string) Module {
	m, created := t.reg.ensureModule(name)
	if created {
		t.events = append(t.events, Event{
			Phase: PhaseMetadata,
			Pid:   m.ID,
			Tid:   moduleTid,
			Name:  metaProcessName,
			Arg:   m.Name,
		})
	}
	return m
}

// RegisterTrack returns the track registered under (module, name), creating
// it on first use. Without InModule the track lands in the "default" module,
// which is itself created on demand. With Under the track becomes a
// sub-track: it lives in the parent's module and its registry key carries
// the parent's name. Module and parent values must have been minted by this
// tracer.
func (t *Tracer) RegisterTrack(name string, opts ...TrackOption) (Track, error) {
	o := applyTrackOptions(opts)

	var mod Module
	switch {
	case o.hasParent:
		if !t.reg.holdsTrack(o.parent) {
			return Track{}, fmt.Errorf("%w: parent %s.%s", ErrTrackNotRegistered, o.parent.Module.Name, o.parent.Name)
		}
		if o.hasModule && o.module.ID != o.parent.Module.ID {
			return Track{}, fmt.Errorf("sub-track module %q conflicts with parent module %q", o.module.Name, o.parent.Module.Name)
		}
		mod = o.parent.Module
		name = o.parent.Name + "." + name
	case o.hasModule:
		if !t.reg.holdsModule(o.module) {
			return Track{}, fmt.Errorf("%w: %s", ErrModuleNotRegistered, o.module.Name)
		}
		mod = o.module
	default:
		mod = t.RegisterModule(DefaultModule)
	}

	tr, created := t.reg.ensureTrack(mod, name)
	if created {
		t.stacks[tr.ID] = nil
		t.events = append(t.events, Event{
			Phase: PhaseMetadata,
			Pid:   tr.Module.ID,
			Tid:   tr.ID,
			Name:  metaThreadName,
			Arg:   tr.Name,
		})
	}
	return tr, nil
}

// LookupModule returns the module registered under name, if any. No side
// effects.
func (t *Tracer) LookupModule(name string) (Module, bool) {
	return t.reg.lookupModule(name)
}

// LookupTrack returns the track registered under (moduleName, name), if any.
// No side effects.
func (t *Tracer) LookupTrack(moduleName, name string) (Track, bool) {
	return t.reg.lookupTrack(moduleName, name)
}

// Modules returns module names in registration order.
func (t *Tracer) Modules() []string {
	return t.reg.moduleNames()
}

// Tracks returns track registry keys ("module.track") in registration order.
func (t *Tracer) Tracks() []string {
	return t.reg.trackKeys()
}

// StartEvent opens a span on tr at tsCycles. The matching EndEvent must be
// the next end call on the track (strict stack discipline).
func (t *Tracer) StartEvent(tr Track, tsCycles float64, name string, opts ...EventOption) error {
	if err := t.checkTrack(tr); err != nil {
		return err
	}
	if !finite(tsCycles) {
		return fmt.Errorf("%w: start %q at %v", ErrNonFinite, name, tsCycles)
	}
	o := applyEventOptions(opts)
	ts := t.conv.Micros(tsCycles)
	t.events = append(t.events, Event{
		Phase: PhaseBegin,
		Pid:   tr.Module.ID,
		Tid:   tr.ID,
		Ts:    ts,
		Name:  name,
		Cat:   o.category,
	})
	t.stacks[tr.ID] = append(t.stacks[tr.ID], openEvent{Name: name, Ts: ts})
	return nil
}

// EndEvent closes the most recently opened span on tr. With MatchName the
// call additionally asserts the name of the span being closed; on mismatch
// the stack is left untouched and no record is emitted.
func (t *Tracer) EndEvent(tr Track, tsCycles float64, opts ...EventOption) error {
	if err := t.checkTrack(tr); err != nil {
		return err
	}
	if !finite(tsCycles) {
		return fmt.Errorf("%w: end at %v", ErrNonFinite, tsCycles)
	}
	stack := t.stacks[tr.ID]
	if len(stack) == 0 {
		return fmt.Errorf("%w: track %s.%s", ErrNoOpenEvent, tr.Module.Name, tr.Name)
	}
	o := applyEventOptions(opts)
	top := stack[len(stack)-1]
	if o.hasMatch && top.Name != o.matchName {
		return fmt.Errorf("%w: expected %q, got %q", ErrNameMismatch, top.Name, o.matchName)
	}
	t.events = append(t.events, Event{
		Phase: PhaseEnd,
		Pid:   tr.Module.ID,
		Tid:   tr.ID,
		Ts:    t.conv.Micros(tsCycles),
		Cat:   o.category,
	})
	t.stacks[tr.ID] = stack[:len(stack)-1]
	return nil
}

// CompleteEvent records a self-contained span on tr starting at startCycles
// and bounded by extent. It never touches the track's span stack.
func (t *Tracer) CompleteEvent(tr Track, name string, startCycles float64, extent Extent, opts ...EventOption) error {
	if err := t.checkTrack(tr); err != nil {
		return err
	}
	if !finite(startCycles) {
		return fmt.Errorf("%w: complete %q at %v", ErrNonFinite, name, startCycles)
	}
	start := t.conv.Micros(startCycles)
	dur, err := extent.micros(t.conv, start)
	if err != nil {
		return err
	}
	if dur < 0 {
		return fmt.Errorf("%w: %q dur=%vus", ErrNegativeDuration, name, dur)
	}
	o := applyEventOptions(opts)
	t.events = append(t.events, Event{
		Phase: PhaseComplete,
		Pid:   tr.Module.ID,
		Tid:   tr.ID,
		Ts:    start,
		Dur:   dur,
		Name:  name,
		Cat:   o.category,
	})
	return nil
}

// RecordEvent opens a span at clock(), runs fn, and closes the span at a
// fresh clock() reading on every exit path, including a panic inside fn. An
// error from fn propagates unaltered; the end event is recorded either way.
func (t *Tracer) RecordEvent(tr Track, name string, clock func() float64, fn func() error, opts ...EventOption) (err error) {
	if err := t.StartEvent(tr, clock(), name, opts...); err != nil {
		return err
	}
	defer func() {
		endOpts := append(append([]EventOption(nil), opts...), MatchName(name))
		endErr := t.EndEvent(tr, clock(), endOpts...)
		if err == nil {
			err = endErr
		}
	}()
	return fn()
}

// OpenDepth returns the number of spans currently open on tr. Zero for
// tracks unknown to this tracer.
func (t *Tracer) OpenDepth(tr Track) int {
	return len(t.stacks[tr.ID])
}

// Events returns a copy of the event log in emission order.
func (t *Tracer) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

func (t *Tracer) checkTrack(tr Track) error {
	if !t.reg.holdsTrack(tr) {
		return fmt.Errorf("%w: %s.%s", ErrTrackNotRegistered, tr.Module.Name, tr.Name)
	}
	return nil
}
