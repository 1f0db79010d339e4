// Package scenario loads trace scenario files and replays them through a
// tracer. A scenario is a TOML description of modules, tracks and events,
// used to synthesize deterministic trace documents without instrumenting a
// live program.
package scenario

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"perftrace/internal/trace"
)

var (
	// ErrNoEvents indicates a scenario that declares nothing to record.
	ErrNoEvents = errors.New("scenario declares no events")
	// ErrBadExtent indicates an event with both or neither of end/dur.
	ErrBadExtent = errors.New("event needs exactly one of end or dur")
)

// Scenario is a parsed scenario file.
type Scenario struct {
	NsPerCycle  float64      `toml:"ns_per_cycle"`
	DisplayUnit string       `toml:"display_unit"`
	Modules     []ModuleDecl `toml:"modules"`
	Events      []EventDecl  `toml:"events"`
}

// ModuleDecl declares a module and its tracks.
type ModuleDecl struct {
	Name   string   `toml:"name"`
	Tracks []string `toml:"tracks"`
}

// EventDecl declares one recorded event. Kind "complete" takes start plus
// exactly one of end/dur; kind "span" takes start and end and is recorded as
// a begin/end pair. Repeat > 1 replays the event that many times, shifting
// each repetition by stride cycles.
type EventDecl struct {
	Module   string   `toml:"module"`
	Track    string   `toml:"track"`
	Name     string   `toml:"name"`
	Kind     string   `toml:"kind"`
	Start    float64  `toml:"start"`
	End      *float64 `toml:"end"`
	Dur      *float64 `toml:"dur"`
	Category string   `toml:"cat"`
	Repeat   int64    `toml:"repeat"`
	Stride   float64  `toml:"stride"`
}

// Load parses a scenario file.
func Load(path string) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if len(sc.Events) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoEvents)
	}
	return &sc, nil
}

// Unit resolves the scenario's display unit, defaulting to nanoseconds.
func (s *Scenario) Unit() (trace.DisplayUnit, error) {
	return trace.ParseDisplayUnit(s.DisplayUnit)
}
