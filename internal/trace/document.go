package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// document is the top-level trace file shape: the full event log in emission
// order plus the display-unit hint. Nothing is filtered or reordered; spans
// left open at save time are written as-is, the viewer tolerates them.
type document struct {
	TraceEvents     []Event `json:"traceEvents"`
	DisplayTimeUnit string  `json:"displayTimeUnit"`
}

// Export writes the trace document to w.
func (t *Tracer) Export(w io.Writer, unit DisplayUnit) error {
	events := t.events
	if events == nil {
		events = []Event{}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(document{TraceEvents: events, DisplayTimeUnit: unit.String()}); err != nil {
		return fmt.Errorf("encode trace document: %w", err)
	}
	return nil
}

// Save writes the trace document to path. A path ending in ".gz" is
// transparently gzip-compressed; Perfetto loads both forms.
func (t *Tracer) Save(path string, unit DisplayUnit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace output: %w", err)
	}

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		if err := t.Export(gz, unit); err != nil {
			gz.Close()
			f.Close()
			return err
		}
		if err := gz.Close(); err != nil {
			f.Close()
			return fmt.Errorf("flush gzip stream: %w", err)
		}
		return f.Close()
	}

	if err := t.Export(f, unit); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
