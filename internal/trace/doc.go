// Package trace records timed spans and instants from instrumented code and
// serializes them as a Chrome trace-event JSON document that Perfetto
// (ui.perfetto.dev) can import.
//
// Callers declare named modules (viewer processes) and tracks (viewer
// threads), then record events on tracks using their own time unit: a
// "cycle" worth a fixed number of nanoseconds, set once at construction.
// Timestamps are converted to microseconds on the way into the log.
//
// # Usage
//
//	tracer := trace.New(trace.Config{NsPerCycle: 0.5}) // 1 cycle = 0.5 ns
//	core := tracer.RegisterModule("core")
//	alu, _ := tracer.RegisterTrack("ALU", trace.InModule(core))
//
//	_ = tracer.CompleteEvent(alu, "issue", 100, trace.Until(150))
//	_ = tracer.StartEvent(alu, 200, "execute")
//	_ = tracer.EndEvent(alu, 260)
//
//	_ = tracer.Save("trace.json", trace.UnitNanoseconds)
//
// Begin and end calls on one track pair up by strict stack discipline: the
// most recently begun span is the one an end call closes. RecordEvent wraps
// a function with a begin/end pair whose end is recorded on every exit path,
// panics included.
//
// # Concurrency
//
// A Tracer instance expects a single caller goroutine; there is no internal
// locking. Tracers are handed to collaborators explicitly, or through a
// context via WithTracer and FromContext.
package trace
