package hdrmap

import "math"

// Scalar is a SEG-Y scale factor as stored in the trace header (bytes 69-70,
// 71-72 and 215-216).
//
// A positive scalar multiplies the stored integer, a negative scalar divides
// it by its magnitude, and zero means no scaling:
//
//	physical = S > 0 ? stored * S : stored / -S
type Scalar int16

// ScaleKind selects one of the three scale-factor groups of a header map.
type ScaleKind int

const (
	ScaleCoordinate ScaleKind = iota // ScaleCoordinate scales source/receiver/CMP coordinates.
	ScaleElevation                   // ScaleElevation scales elevations, depths and datums.
	ScaleStatic                      // ScaleStatic scales static corrections.

	numScaleKinds = 3
)

func (k ScaleKind) String() string {
	switch k {
	case ScaleCoordinate:
		return "coordinate"
	case ScaleElevation:
		return "elevation"
	case ScaleStatic:
		return "static"
	default:
		return "Unknown"
	}
}

// ScalarForDecimals returns the scalar that stores values with n decimal
// digits, e.g. -100 for n=2. n <= 0 yields 1.
func ScalarForDecimals(n int) Scalar {
	if n <= 0 {
		return 1
	}
	if n > 4 {
		n = 4
	}

	return Scalar(-int16(math.Pow10(n)))
}

// Normalized returns s with the "no scaling" value 0 replaced by 1.
func (s Scalar) Normalized() Scalar {
	if s == 0 {
		return 1
	}

	return s
}

// Factor returns the multiplier from stored to physical values.
func (s Scalar) Factor() float64 {
	switch {
	case s > 0:
		return float64(s)
	case s < 0:
		return 1 / -float64(s)
	default:
		return 1
	}
}

// Apply converts a stored value to its physical value.
func (s Scalar) Apply(stored float64) float64 {
	switch {
	case s > 0:
		return stored * float64(s)
	case s < 0:
		return stored / -float64(s)
	default:
		return stored
	}
}

// Invert converts a physical value to the value to store, rounded to the
// nearest integer so that Apply(Invert(v)) reproduces v up to the scalar's
// resolution.
func (s Scalar) Invert(physical float64) float64 {
	switch {
	case s > 0:
		return math.Round(physical / float64(s))
	case s < 0:
		return math.Round(physical * -float64(s))
	default:
		return math.Round(physical)
	}
}
