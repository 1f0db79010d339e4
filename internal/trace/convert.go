package trace

import "math"

// converter maps caller-supplied cycle values to the viewer's internal
// microsecond unit using a fixed nanoseconds-per-cycle scale.
type converter struct {
	nsPerCycle float64
}

func newConverter(nsPerCycle float64) converter {
	return converter{nsPerCycle: nsPerCycle}
}

// Micros converts a cycle count to microseconds: cycles * ns_per_cycle / 1000.
func (c converter) Micros(cycles float64) float64 {
	return cycles * c.nsPerCycle / 1000.0
}

// finite reports whether v is neither NaN nor infinite. Recording operations
// reject non-finite inputs before conversion.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
