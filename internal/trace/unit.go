package trace

import "fmt"

// DisplayUnit is the displayTimeUnit hint written into the trace document.
// It only affects how the viewer renders timestamps; stored values are
// always microseconds.
type DisplayUnit uint8

const (
	// UnitNanoseconds is the default display unit.
	UnitNanoseconds DisplayUnit = iota
	UnitMicroseconds
	UnitMilliseconds
	UnitSeconds
)

// String returns the wire representation of the unit.
func (u DisplayUnit) String() string {
	switch u {
	case UnitNanoseconds:
		return "ns"
	case UnitMicroseconds:
		return "us"
	case UnitMilliseconds:
		return "ms"
	case UnitSeconds:
		return "s"
	default:
		return "ns"
	}
}

// ParseDisplayUnit converts a string to a DisplayUnit.
func ParseDisplayUnit(s string) (DisplayUnit, error) {
	switch s {
	case "ns", "":
		return UnitNanoseconds, nil
	case "us":
		return UnitMicroseconds, nil
	case "ms":
		return UnitMilliseconds, nil
	case "s":
		return UnitSeconds, nil
	default:
		return UnitNanoseconds, fmt.Errorf("invalid display unit: %q (expected: ns|us|ms|s)", s)
	}
}
