package trace

import "fmt"

type extentKind uint8

const (
	extentNone extentKind = iota
	extentUntil
	extentLasting
)

// Extent describes how long a complete event ran: either up to an absolute
// end timestamp (Until) or for an explicit duration (Lasting). The zero
// Extent is invalid; both forms at once are unrepresentable.
type Extent struct {
	kind   extentKind
	cycles float64
}

// Until bounds a complete event by its end timestamp in cycles.
func Until(endCycles float64) Extent {
	return Extent{kind: extentUntil, cycles: endCycles}
}

// Lasting bounds a complete event by its duration in cycles.
func Lasting(durCycles float64) Extent {
	return Extent{kind: extentLasting, cycles: durCycles}
}

// micros resolves the extent to a duration in microseconds given the already
// converted start timestamp.
func (x Extent) micros(c converter, startUs float64) (float64, error) {
	if !finite(x.cycles) {
		return 0, fmt.Errorf("%w: extent %v", ErrNonFinite, x.cycles)
	}
	switch x.kind {
	case extentUntil:
		return c.Micros(x.cycles) - startUs, nil
	case extentLasting:
		return c.Micros(x.cycles), nil
	default:
		return 0, ErrExtent
	}
}
