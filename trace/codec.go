// Package trace converts between the 240-byte trace header block and typed
// header values, driven by a hdrmap.HeaderMap.
//
// Decoding reads every mapped field in the given byte order and converts it
// to the field's logical type; encoding does the reverse. Bytes not covered
// by a field are neither read nor modified. With auto-scaling enabled,
// coordinates, elevations and statics are presented as physical values and
// converted back on encode.
package trace

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/section"
	"github.com/svs590/OpenSeaSeis-sub000/value"
)

// HeaderCodec decodes and encodes trace headers for one header map.
//
// A HeaderCodec owns a Values array that holds the header of the current
// trace. It is not safe for concurrent use.
type HeaderCodec struct {
	m       *hdrmap.HeaderMap
	values  *value.Values
	scratch *value.Values
}

// NewHeaderCodec creates a codec for m. It locks m by resolving its scale
// factors, since the Values layout depends on the field indices.
func NewHeaderCodec(m *hdrmap.HeaderMap) *HeaderCodec {
	m.InitScalars()
	types := m.ValueTypes()

	return &HeaderCodec{
		m:       m,
		values:  value.NewValues(types),
		scratch: value.NewValues(types),
	}
}

// Map returns the header map.
func (c *HeaderCodec) Map() *hdrmap.HeaderMap {
	return c.m
}

// Values returns the header values of the current trace.
func (c *HeaderCodec) Values() *value.Values {
	return c.values
}

// Decode fills the codec's values from buf.
func (c *HeaderCodec) Decode(buf []byte, engine endian.EndianEngine, autoScale bool) error {
	return c.DecodeInto(c.values, buf, engine, autoScale)
}

// DecodeInto fills vs from buf. vs must have been created from the same map.
//
// Returns:
//   - error: ErrInvalidHeaderSize if buf is shorter than a trace header
func (c *HeaderCodec) DecodeInto(vs *value.Values, buf []byte, engine endian.EndianEngine, autoScale bool) error {
	if len(buf) < section.TraceHeaderSize {
		return fmt.Errorf("%w: trace header has %d bytes", errs.ErrInvalidHeaderSize, len(buf))
	}

	for i, f := range c.m.All() {
		_ = vs.Set(i, DecodeField(buf, f, engine))
	}
	if autoScale {
		c.m.ApplyCoordinateScalar(vs)
	}

	return nil
}

// Encode writes the codec's values into buf.
func (c *HeaderCodec) Encode(buf []byte, engine endian.EndianEngine, autoScale bool) error {
	return c.EncodeFrom(c.values, buf, engine, autoScale)
}

// EncodeFrom writes vs into buf. vs is not modified; scale factors of zero
// are written as one when autoScale is set.
func (c *HeaderCodec) EncodeFrom(vs *value.Values, buf []byte, engine endian.EndianEngine, autoScale bool) error {
	if len(buf) < section.TraceHeaderSize {
		return fmt.Errorf("%w: trace header has %d bytes", errs.ErrInvalidHeaderSize, len(buf))
	}

	src := vs
	if autoScale {
		c.scratch.CopyFrom(vs)
		c.m.ApplyCoordinateScalarWriting(c.scratch)
		src = c.scratch
	}
	for i, f := range c.m.All() {
		EncodeField(buf, f, src.At(i), engine)
	}

	return nil
}

// DecodeIndex decodes the single field i from buf. With autoScale the
// field's scale factor is read from buf as well.
func (c *HeaderCodec) DecodeIndex(buf []byte, i int, engine endian.EndianEngine, autoScale bool) (value.Value, error) {
	if len(buf) < section.TraceHeaderSize {
		return value.Value{}, fmt.Errorf("%w: trace header has %d bytes", errs.ErrInvalidHeaderSize, len(buf))
	}

	f, err := c.m.Field(i)
	if err != nil {
		return value.Value{}, err
	}

	v := DecodeField(buf, f, engine)
	if !autoScale {
		return v, nil
	}

	kind, ok := c.m.ScaleKindOf(i)
	if !ok {
		return v, nil
	}
	sf, err := c.m.Field(c.m.ScalarIndex(kind))
	if err != nil {
		return v, nil
	}
	s := hdrmap.Scalar(DecodeField(buf, sf, engine).Int())

	return value.OfDouble(s.Apply(v.Double())).As(f.Out), nil
}

// DecodeField reads field f from a trace header and converts it to f.Out.
func DecodeField(buf []byte, f hdrmap.Field, engine endian.EndianEngine) value.Value {
	b := buf[f.ByteOffset:f.End()]

	var v value.Value
	switch f.Wire {
	case format.WireInt16:
		v = value.OfInt(int32(int16(engine.Uint16(b))))
	case format.WireInt32:
		v = value.OfInt(int32(engine.Uint32(b)))
	case format.WireUint16:
		v = value.OfInt(int32(engine.Uint16(b)))
	case format.WireFloat32:
		v = value.OfFloat(math.Float32frombits(engine.Uint32(b)))
	case format.WireFixed46:
		mant := int32(engine.Uint32(b[0:4]))
		exp := int16(engine.Uint16(b[4:6]))
		v = value.OfDouble(fromFixed46(mant, exp))
	case format.WireString:
		v = value.OfString(string(bytes.TrimRight(b, "\x00 ")))
	}

	return v.As(f.Out)
}

// EncodeField converts v to the wire type of f and writes it into buf.
// Integers saturate at the wire type limits; strings are truncated or
// space-padded to the field size.
func EncodeField(buf []byte, f hdrmap.Field, v value.Value, engine endian.EndianEngine) {
	b := buf[f.ByteOffset:f.End()]

	switch f.Wire {
	case format.WireInt16:
		engine.PutUint16(b, uint16(clamp(v.Int64(), math.MinInt16, math.MaxInt16)))
	case format.WireInt32:
		engine.PutUint32(b, uint32(v.Int()))
	case format.WireUint16:
		engine.PutUint16(b, uint16(clamp(v.Int64(), 0, math.MaxUint16)))
	case format.WireFloat32:
		engine.PutUint32(b, math.Float32bits(v.Float()))
	case format.WireFixed46:
		mant, exp := toFixed46(v.Double())
		engine.PutUint32(b[0:4], uint32(mant))
		engine.PutUint16(b[4:6], uint16(exp))
	case format.WireString:
		n := copy(b, v.Str())
		for i := n; i < len(b); i++ {
			b[i] = ' '
		}
	}
}

// scale10 returns round(x * 10^n), multiplying or dividing by an exact power
// of ten.
func scale10(x float64, n int) float64 {
	if n >= 0 {
		return math.Round(x * math.Pow10(n))
	}

	return math.Round(x / math.Pow10(-n))
}

func clamp(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}

func fromFixed46(mant int32, exp int16) float64 {
	if exp >= 0 {
		return float64(mant) * math.Pow10(int(exp))
	}

	return float64(mant) / math.Pow10(-int(exp))
}

// toFixed46 splits x into a 4-byte mantissa and 2-byte power of ten with at
// most nine significant digits and no trailing zeros in the mantissa.
func toFixed46(x float64) (int32, int16) {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0
	}

	exp := int(math.Floor(math.Log10(math.Abs(x)))) - 8
	mant := scale10(x, -exp)
	if math.Abs(mant) > math.MaxInt32 {
		mant = math.Round(mant / 10)
		exp++
	}

	m := int64(mant)
	for m != 0 && m%10 == 0 {
		m /= 10
		exp++
	}

	return int32(m), int16(exp)
}

// DumpFields writes every field of the trace header in buf as decoded
// through m, without scaling.
func DumpFields(w io.Writer, buf []byte, m *hdrmap.HeaderMap, engine endian.EndianEngine) error {
	if len(buf) < section.TraceHeaderSize {
		return fmt.Errorf("%w: trace header has %d bytes", errs.ErrInvalidHeaderSize, len(buf))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range m.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.ByteOffset+1, f.Name, DecodeField(buf, f, engine), f.Description)
	}

	return tw.Flush()
}

// Dump writes the raw trace header in buf as a table of 2-byte and 4-byte
// signed words at every even offset, independent of any header map. Byte
// positions are one-based.
func Dump(w io.Writer, buf []byte, engine endian.EndianEngine) error {
	if len(buf) < section.TraceHeaderSize {
		return fmt.Errorf("%w: trace header has %d bytes", errs.ErrInvalidHeaderSize, len(buf))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "byte\tint16\tint32\t\n")
	for off := 0; off < section.TraceHeaderSize; off += 2 {
		i16 := int16(engine.Uint16(buf[off : off+2]))
		if off+4 <= section.TraceHeaderSize {
			fmt.Fprintf(tw, "%d\t%d\t%d\t\n", off+1, i16, int32(engine.Uint32(buf[off:off+4])))
		} else {
			fmt.Fprintf(tw, "%d\t%d\t-\t\n", off+1, i16)
		}
	}

	return tw.Flush()
}
