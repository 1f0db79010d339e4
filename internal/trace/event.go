package trace

import "encoding/json"

// Phase represents the Chrome trace-event phase of a record.
type Phase uint8

const (
	// PhaseMetadata names a process or thread ("M").
	PhaseMetadata Phase = iota + 1
	// PhaseBegin opens a span on a track ("B").
	PhaseBegin
	// PhaseEnd closes the most recently opened span on a track ("E").
	PhaseEnd
	// PhaseComplete records a self-contained span with an explicit duration ("X").
	PhaseComplete
)

// String returns the wire representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMetadata:
		return "M"
	case PhaseBegin:
		return "B"
	case PhaseEnd:
		return "E"
	case PhaseComplete:
		return "X"
	default:
		return "?"
	}
}

// Metadata record names understood by the viewer.
const (
	metaProcessName = "process_name"
	metaThreadName  = "thread_name"
)

// moduleTid marks a metadata record that describes a module rather than a
// track; the tid key is omitted on the wire for these records.
const moduleTid int64 = -1

// Event is one entry of the append-only event log. Ts and Dur are stored in
// microseconds regardless of the display unit requested at save time.
type Event struct {
	Phase Phase
	Pid   int64
	Tid   int64
	Ts    float64
	Dur   float64
	Name  string
	Cat   string
	Arg   string // args.name payload for metadata records
}

type metaArgs struct {
	Name string `json:"name"`
}

// MarshalJSON renders the record in the Chrome trace-event shape for its
// phase. Timed records always carry the cat key (null when no category was
// supplied); module-level metadata omits tid.
func (e Event) MarshalJSON() ([]byte, error) {
	cat := catValue(e.Cat)
	switch e.Phase {
	case PhaseMetadata:
		if e.Tid == moduleTid {
			return json.Marshal(struct {
				Ph   string   `json:"ph"`
				Pid  int64    `json:"pid"`
				Name string   `json:"name"`
				Args metaArgs `json:"args"`
			}{e.Phase.String(), e.Pid, e.Name, metaArgs{e.Arg}})
		}
		return json.Marshal(struct {
			Ph   string   `json:"ph"`
			Pid  int64    `json:"pid"`
			Tid  int64    `json:"tid"`
			Name string   `json:"name"`
			Args metaArgs `json:"args"`
		}{e.Phase.String(), e.Pid, e.Tid, e.Name, metaArgs{e.Arg}})

	case PhaseBegin:
		return json.Marshal(struct {
			Ph   string  `json:"ph"`
			Pid  int64   `json:"pid"`
			Tid  int64   `json:"tid"`
			Ts   float64 `json:"ts"`
			Name string  `json:"name"`
			Cat  *string `json:"cat"`
		}{e.Phase.String(), e.Pid, e.Tid, e.Ts, e.Name, cat})

	case PhaseEnd:
		return json.Marshal(struct {
			Ph  string  `json:"ph"`
			Pid int64   `json:"pid"`
			Tid int64   `json:"tid"`
			Ts  float64 `json:"ts"`
			Cat *string `json:"cat"`
		}{e.Phase.String(), e.Pid, e.Tid, e.Ts, cat})

	case PhaseComplete:
		return json.Marshal(struct {
			Ph   string  `json:"ph"`
			Pid  int64   `json:"pid"`
			Tid  int64   `json:"tid"`
			Ts   float64 `json:"ts"`
			Dur  float64 `json:"dur"`
			Name string  `json:"name"`
			Cat  *string `json:"cat"`
		}{e.Phase.String(), e.Pid, e.Tid, e.Ts, e.Dur, e.Name, cat})
	}

	return nil, errUnknownPhase(e.Phase)
}

func catValue(cat string) *string {
	if cat == "" {
		return nil
	}
	return &cat
}
