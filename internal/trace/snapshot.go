package trace

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Current snapshot schema - increment when snapshotPayload changes shape.
const snapshotSchema uint16 = 1

// snapshotPayload is the full recording state of a tracer: scale, registry,
// id counters, event log and open-span stacks. Enough to resume recording in
// a later process.
type snapshotPayload struct {
	Schema     uint16
	NsPerCycle float64
	Modules    []Module
	Tracks     []Track
	NextModule int64
	NextTrack  int64
	Events     []Event
	Open       map[int64][]openEvent
}

// SaveSnapshot writes the tracer's complete state to path as msgpack.
func (t *Tracer) SaveSnapshot(path string) error {
	payload := snapshotPayload{
		Schema:     snapshotSchema,
		NsPerCycle: t.nsPerCycle,
		NextModule: t.reg.nextModule,
		NextTrack:  t.reg.nextTrack,
		Events:     t.events,
		Open:       t.stacks,
	}
	for _, name := range t.reg.moduleOrder {
		payload.Modules = append(payload.Modules, t.reg.modules[name])
	}
	for _, key := range t.reg.trackOrder {
		payload.Tracks = append(payload.Tracks, t.reg.tracks[key])
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot restores a tracer from a snapshot written by SaveSnapshot.
// Snapshots from an incompatible schema version are rejected.
func LoadSnapshot(path string) (*Tracer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var payload snapshotPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if payload.Schema != snapshotSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotSchema, payload.Schema, snapshotSchema)
	}

	t := New(Config{NsPerCycle: payload.NsPerCycle})
	t.events = payload.Events
	t.reg.nextModule = payload.NextModule
	t.reg.nextTrack = payload.NextTrack
	for _, m := range payload.Modules {
		t.reg.modules[m.Name] = m
		t.reg.moduleOrder = append(t.reg.moduleOrder, m.Name)
	}
	for _, tr := range payload.Tracks {
		key := trackKey(tr.Module.Name, tr.Name)
		t.reg.tracks[key] = tr
		t.reg.trackOrder = append(t.reg.trackOrder, key)
		t.stacks[tr.ID] = payload.Open[tr.ID]
	}
	return t, nil
}
