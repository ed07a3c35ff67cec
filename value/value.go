// Package value holds decoded trace header values.
//
// A Value is a small tagged union over the logical header types (int, float,
// double, int64, string). Values is the per-trace array of slots, one per
// header field, addressed by field index and typed once at construction.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/svs590/OpenSeaSeis-sub000/format"
)

// Value is one typed header value. The zero Value is an int 0.
type Value struct {
	typ format.ValueType
	i   int64
	f   float64
	s   string
}

// OfInt returns an int value.
func OfInt(v int32) Value {
	return Value{typ: format.ValueInt, i: int64(v)}
}

// OfFloat returns a float value.
func OfFloat(v float32) Value {
	return Value{typ: format.ValueFloat, f: float64(v)}
}

// OfDouble returns a double value.
func OfDouble(v float64) Value {
	return Value{typ: format.ValueDouble, f: v}
}

// OfInt64 returns an int64 value.
func OfInt64(v int64) Value {
	return Value{typ: format.ValueInt64, i: v}
}

// OfString returns a string value.
func OfString(v string) Value {
	return Value{typ: format.ValueString, s: v}
}

// Zero returns the zero value of typ.
func Zero(typ format.ValueType) Value {
	return Value{typ: normalize(typ)}
}

func normalize(typ format.ValueType) format.ValueType {
	if typ == 0 {
		return format.ValueInt
	}

	return typ
}

// Type returns the logical type.
func (v Value) Type() format.ValueType {
	return normalize(v.typ)
}

// IsInteger reports whether v holds an int or int64.
func (v Value) IsInteger() bool {
	t := v.Type()
	return t == format.ValueInt || t == format.ValueInt64
}

// Double returns v as float64. Strings are parsed; unparsable strings yield 0.
func (v Value) Double() float64 {
	switch v.Type() {
	case format.ValueInt, format.ValueInt64:
		return float64(v.i)
	case format.ValueFloat, format.ValueDouble:
		return v.f
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0
		}

		return f
	}
}

// Float returns v as float32.
func (v Value) Float() float32 {
	return float32(v.Double())
}

// Int64 returns v as int64, rounding floating point values to nearest.
func (v Value) Int64() int64 {
	switch v.Type() {
	case format.ValueInt, format.ValueInt64:
		return v.i
	default:
		return roundInt64(v.Double())
	}
}

// Int returns v as int32, rounding to nearest and saturating at the int32 limits.
func (v Value) Int() int32 {
	n := v.Int64()
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}

	return int32(n)
}

// Str returns v as a string. Numbers are formatted without trailing zeros.
func (v Value) Str() string {
	switch v.Type() {
	case format.ValueInt, format.ValueInt64:
		return strconv.FormatInt(v.i, 10)
	case format.ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case format.ValueDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Str()
}

// As converts v to typ.
func (v Value) As(typ format.ValueType) Value {
	typ = normalize(typ)
	if typ == v.Type() {
		return v
	}

	switch typ {
	case format.ValueInt:
		return OfInt(v.Int())
	case format.ValueInt64:
		return OfInt64(v.Int64())
	case format.ValueFloat:
		return OfFloat(v.Float())
	case format.ValueDouble:
		return OfDouble(v.Double())
	default:
		return OfString(v.Str())
	}
}

// Equal reports whether v and o have the same type and payload.
func (v Value) Equal(o Value) bool {
	if v.Type() != o.Type() {
		return false
	}

	switch v.Type() {
	case format.ValueInt, format.ValueInt64:
		return v.i == o.i
	case format.ValueFloat, format.ValueDouble:
		return v.f == o.f
	default:
		return v.s == o.s
	}
}

func roundInt64(f float64) int64 {
	r := math.Round(f)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}

	return int64(r)
}
