package inspect

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"perftrace/internal/trace"
)

func buildSample(t *testing.T) *trace.Tracer {
	t.Helper()
	tracer := trace.New(trace.Config{NsPerCycle: 10.0})
	mod := tracer.RegisterModule("pipeline")
	fetch, err := tracer.RegisterTrack("fetch", trace.InModule(mod))
	if err != nil {
		t.Fatalf("RegisterTrack: %v", err)
	}
	decode, err := tracer.RegisterTrack("decode", trace.InModule(mod))
	if err != nil {
		t.Fatalf("RegisterTrack: %v", err)
	}

	if err := tracer.CompleteEvent(fetch, "issue", 100, trace.Lasting(60)); err != nil {
		t.Fatalf("CompleteEvent: %v", err)
	}
	if err := tracer.StartEvent(decode, 200, "work"); err != nil {
		t.Fatalf("StartEvent: %v", err)
	}
	if err := tracer.EndEvent(decode, 260); err != nil {
		t.Fatalf("EndEvent: %v", err)
	}
	// Leave one span open on fetch.
	if err := tracer.StartEvent(fetch, 300, "stall"); err != nil {
		t.Fatalf("StartEvent: %v", err)
	}
	return tracer
}

func TestParseSummarizesDocument(t *testing.T) {
	tracer := buildSample(t)
	var buf bytes.Buffer
	if err := tracer.Export(&buf, trace.UnitMicroseconds); err != nil {
		t.Fatalf("Export: %v", err)
	}

	s, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.DisplayTimeUnit != "us" {
		t.Fatalf("displayTimeUnit = %q, want us", s.DisplayTimeUnit)
	}
	if s.Events != len(tracer.Events()) {
		t.Fatalf("events = %d, want %d", s.Events, len(tracer.Events()))
	}
	if s.Metadata != 3 || s.Begins != 2 || s.Ends != 1 || s.Completes != 1 {
		t.Fatalf("phase counts M/B/E/X = %d/%d/%d/%d", s.Metadata, s.Begins, s.Ends, s.Completes)
	}
	if s.Modules != 1 {
		t.Fatalf("modules = %d, want 1", s.Modules)
	}
	if s.Unterminated != 1 {
		t.Fatalf("unterminated = %d, want 1", s.Unterminated)
	}
	if s.MinTs != 1.0 || s.MaxTs != 3.0 {
		t.Fatalf("ts range = [%v, %v], want [1, 3]", s.MinTs, s.MaxTs)
	}

	if len(s.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(s.Tracks))
	}
	fetch := s.Tracks[0]
	if fetch.Name != "fetch" || fetch.Spans != 2 || fetch.Open != 1 {
		t.Fatalf("fetch stat = %+v", fetch)
	}
	if fetch.BusyUs != 0.6 {
		t.Fatalf("fetch busy = %v, want 0.6", fetch.BusyUs)
	}
	decode := s.Tracks[1]
	if decode.Name != "decode" || decode.Spans != 1 || decode.Open != 0 {
		t.Fatalf("decode stat = %+v", decode)
	}
}

func TestReadGzip(t *testing.T) {
	tracer := buildSample(t)
	path := filepath.Join(t.TempDir(), "trace.json.gz")
	if err := tracer.Save(path, trace.UnitNanoseconds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Events != len(tracer.Events()) {
		t.Fatalf("events = %d, want %d", s.Events, len(tracer.Events()))
	}
}

func TestParseRejectsNonTrace(t *testing.T) {
	if _, err := Parse([]byte(`{"displayTimeUnit":"ns"}`)); !errors.Is(err, ErrNotATrace) {
		t.Fatalf("expected ErrNotATrace, got %v", err)
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
}
