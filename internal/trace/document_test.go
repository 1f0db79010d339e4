package trace

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestEventWireShapes(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want string
	}{
		{
			"module metadata omits tid",
			Event{Phase: PhaseMetadata, Pid: 100000, Tid: moduleTid, Name: metaProcessName, Arg: "sim"},
			`{"ph":"M","pid":100000,"name":"process_name","args":{"name":"sim"}}`,
		},
		{
			"track metadata keeps tid",
			Event{Phase: PhaseMetadata, Pid: 100000, Tid: 1000, Name: metaThreadName, Arg: "ALU"},
			`{"ph":"M","pid":100000,"tid":1000,"name":"thread_name","args":{"name":"ALU"}}`,
		},
		{
			"begin with null cat",
			Event{Phase: PhaseBegin, Pid: 100000, Tid: 1000, Ts: 0.5, Name: "issue"},
			`{"ph":"B","pid":100000,"tid":1000,"ts":0.5,"name":"issue","cat":null}`,
		},
		{
			"end carries no name",
			Event{Phase: PhaseEnd, Pid: 100000, Tid: 1000, Ts: 2, Cat: "mem"},
			`{"ph":"E","pid":100000,"tid":1000,"ts":2,"cat":"mem"}`,
		},
		{
			"complete carries dur",
			Event{Phase: PhaseComplete, Pid: 100000, Tid: 1000, Ts: 1, Dur: 0.6, Name: "load"},
			`{"ph":"X","pid":100000,"tid":1000,"ts":1,"dur":0.6,"name":"load","cat":null}`,
		},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.ev)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		if string(data) != tc.want {
			t.Fatalf("%s:\n got %s\nwant %s", tc.name, data, tc.want)
		}
	}
}

func TestExportDocumentShape(t *testing.T) {
	tr := New(Config{NsPerCycle: 10.0})
	runner := newTestTrack(t, tr, "runner")
	if err := tr.CompleteEvent(runner, "load", 100, Until(160)); err != nil {
		t.Fatalf("CompleteEvent: %v", err)
	}
	// Deliberately leave a span open; the serializer must not care.
	if err := tr.StartEvent(runner, 200, "hang"); err != nil {
		t.Fatalf("StartEvent: %v", err)
	}

	var buf bytes.Buffer
	if err := tr.Export(&buf, UnitMilliseconds); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var doc struct {
		TraceEvents     []json.RawMessage `json:"traceEvents"`
		DisplayTimeUnit string            `json:"displayTimeUnit"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.DisplayTimeUnit != "ms" {
		t.Fatalf("displayTimeUnit = %q, want ms", doc.DisplayTimeUnit)
	}
	if got := len(doc.TraceEvents); got != len(tr.Events()) {
		t.Fatalf("traceEvents count = %d, want %d", got, len(tr.Events()))
	}
}

func TestExportEmptyTracer(t *testing.T) {
	tr := New(Config{})
	var buf bytes.Buffer
	if err := tr.Export(&buf, UnitNanoseconds); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), `"traceEvents":[]`) {
		t.Fatalf("empty log not rendered as []: %s", buf.String())
	}
}

func TestSavePlainAndGzip(t *testing.T) {
	tr := New(Config{NsPerCycle: 1.0})
	runner := newTestTrack(t, tr, "runner")
	if err := tr.CompleteEvent(runner, "x", 0, Lasting(10)); err != nil {
		t.Fatalf("CompleteEvent: %v", err)
	}

	dir := t.TempDir()
	plain := filepath.Join(dir, "trace.json")
	packed := filepath.Join(dir, "trace.json.gz")

	if err := tr.Save(plain, UnitNanoseconds); err != nil {
		t.Fatalf("Save plain: %v", err)
	}
	if err := tr.Save(packed, UnitNanoseconds); err != nil {
		t.Fatalf("Save gzip: %v", err)
	}

	raw, err := os.ReadFile(plain)
	if err != nil {
		t.Fatalf("read plain: %v", err)
	}

	f, err := os.Open(packed)
	if err != nil {
		t.Fatalf("open gzip: %v", err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	unpacked, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("read gzip: %v", err)
	}

	if !bytes.Equal(raw, unpacked) {
		t.Fatalf("gzip payload differs from plain output")
	}
}

func TestParseDisplayUnit(t *testing.T) {
	for _, s := range []string{"ns", "us", "ms", "s"} {
		u, err := ParseDisplayUnit(s)
		if err != nil {
			t.Fatalf("ParseDisplayUnit(%q): %v", s, err)
		}
		if u.String() != s {
			t.Fatalf("round trip %q -> %q", s, u.String())
		}
	}
	if _, err := ParseDisplayUnit("fortnights"); err == nil {
		t.Fatalf("expected error for invalid unit")
	}
	u, err := ParseDisplayUnit("")
	if err != nil || u != UnitNanoseconds {
		t.Fatalf("empty unit should default to ns, got %v, %v", u, err)
	}
}
