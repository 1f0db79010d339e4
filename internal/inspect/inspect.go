// Package inspect reads trace documents back and summarizes them. It is the
// read-side complement of the serializer: it consumes the same wire contract
// and reports per-phase and per-track statistics without loading the file
// into a tracer.
package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"
)

// ErrNotATrace indicates a JSON document without a traceEvents array.
var ErrNotATrace = errors.New("document has no traceEvents array")

// TrackStat aggregates the events recorded on one track.
type TrackStat struct {
	Pid    int64
	Tid    int64
	Name   string
	Spans  int     // begin and complete records
	Open   int     // begins without a matching end
	BusyUs float64 // summed duration of complete records
}

// Summary describes one trace document.
type Summary struct {
	DisplayTimeUnit string
	Events          int
	Metadata        int
	Begins          int
	Ends            int
	Completes       int
	Modules         int
	MinTs           float64
	MaxTs           float64
	Unterminated    int // begins left open across all tracks
	Tracks          []TrackStat
}

// Read loads and summarizes the trace document at path. A ".gz" path is
// transparently decompressed.
func Read(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return Parse(data)
}

// Parse summarizes an in-memory trace document.
func Parse(data []byte) (*Summary, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(bytes.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	events := v.GetArray("traceEvents")
	if events == nil {
		return nil, ErrNotATrace
	}

	s := &Summary{
		DisplayTimeUnit: string(v.GetStringBytes("displayTimeUnit")),
		Events:          len(events),
	}

	names := map[int64]string{}   // tid -> thread name
	stats := map[int64]*TrackStat{}
	modules := map[int64]bool{}
	sawTs := false

	track := func(pid, tid int64) *TrackStat {
		st, ok := stats[tid]
		if !ok {
			st = &TrackStat{Pid: pid, Tid: tid}
			stats[tid] = st
		}
		return st
	}

	for _, ev := range events {
		ph := string(ev.GetStringBytes("ph"))
		pid := ev.GetInt64("pid")
		tid := ev.GetInt64("tid")

		switch ph {
		case "M":
			s.Metadata++
			switch string(ev.GetStringBytes("name")) {
			case "process_name":
				modules[pid] = true
			case "thread_name":
				names[tid] = string(ev.GetStringBytes("args", "name"))
			}
			continue
		case "B":
			s.Begins++
			st := track(pid, tid)
			st.Spans++
			st.Open++
		case "E":
			s.Ends++
			st := track(pid, tid)
			if st.Open > 0 {
				st.Open--
			}
		case "X":
			s.Completes++
			st := track(pid, tid)
			st.Spans++
			st.BusyUs += ev.GetFloat64("dur")
		default:
			continue
		}

		ts := ev.GetFloat64("ts")
		if !sawTs || ts < s.MinTs {
			s.MinTs = ts
		}
		if !sawTs || ts > s.MaxTs {
			s.MaxTs = ts
		}
		sawTs = true
	}

	s.Modules = len(modules)
	for tid, st := range stats {
		st.Name = names[tid]
		s.Unterminated += st.Open
		s.Tracks = append(s.Tracks, *st)
	}
	sort.Slice(s.Tracks, func(i, j int) bool { return s.Tracks[i].Tid < s.Tracks[j].Tid })
	return s, nil
}
