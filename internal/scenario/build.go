package scenario

import (
	"fmt"

	"fortio.org/safecast"

	"perftrace/internal/trace"
)

// Build replays the scenario through a fresh tracer and returns it.
func (s *Scenario) Build() (*trace.Tracer, error) {
	tracer := trace.New(trace.Config{NsPerCycle: s.NsPerCycle})

	for _, md := range s.Modules {
		mod := tracer.RegisterModule(md.Name)
		for _, name := range md.Tracks {
			if _, err := tracer.RegisterTrack(name, trace.InModule(mod)); err != nil {
				return nil, fmt.Errorf("module %q track %q: %w", md.Name, name, err)
			}
		}
	}

	for i, ev := range s.Events {
		if err := s.replay(tracer, ev); err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, ev.Name, err)
		}
	}
	return tracer, nil
}

func (s *Scenario) replay(tracer *trace.Tracer, ev EventDecl) error {
	track, err := resolveTrack(tracer, ev)
	if err != nil {
		return err
	}

	repeat := ev.Repeat
	if repeat < 1 {
		repeat = 1
	}
	n, err := safecast.Conv[int](repeat)
	if err != nil {
		return fmt.Errorf("repeat count: %w", err)
	}

	var opts []trace.EventOption
	if ev.Category != "" {
		opts = append(opts, trace.WithCategory(ev.Category))
	}

	for i := 0; i < n; i++ {
		shift := float64(i) * ev.Stride
		start := ev.Start + shift

		switch ev.Kind {
		case "complete", "":
			extent, err := extentFor(ev, shift)
			if err != nil {
				return err
			}
			if err := tracer.CompleteEvent(track, ev.Name, start, extent, opts...); err != nil {
				return err
			}
		case "span":
			if ev.End == nil || ev.Dur != nil {
				return fmt.Errorf("span kind: %w", ErrBadExtent)
			}
			if err := tracer.StartEvent(track, start, ev.Name, opts...); err != nil {
				return err
			}
			endOpts := append(append([]trace.EventOption(nil), opts...), trace.MatchName(ev.Name))
			if err := tracer.EndEvent(track, *ev.End+shift, endOpts...); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown event kind %q (expected: complete|span)", ev.Kind)
		}
	}
	return nil
}

func extentFor(ev EventDecl, shift float64) (trace.Extent, error) {
	switch {
	case ev.End != nil && ev.Dur == nil:
		return trace.Until(*ev.End + shift), nil
	case ev.Dur != nil && ev.End == nil:
		return trace.Lasting(*ev.Dur), nil
	default:
		return trace.Extent{}, ErrBadExtent
	}
}

// resolveTrack finds the event's track, registering it (and its module) on
// first mention so scenarios can stay terse.
func resolveTrack(tracer *trace.Tracer, ev EventDecl) (trace.Track, error) {
	moduleName := ev.Module
	if moduleName == "" {
		moduleName = trace.DefaultModule
	}
	if track, ok := tracer.LookupTrack(moduleName, ev.Track); ok {
		return track, nil
	}
	mod := tracer.RegisterModule(moduleName)
	return tracer.RegisterTrack(ev.Track, trace.InModule(mod))
}
