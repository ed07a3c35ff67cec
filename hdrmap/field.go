package hdrmap

import (
	"fmt"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/section"
)

// Field describes one trace header field: where it lives in the 240-byte
// block, how it is stored and how it is presented once decoded.
type Field struct {
	Name        string
	ByteOffset  int // zero-based offset inside the trace header
	ByteSize    int
	Wire        format.WireType
	Out         format.ValueType
	Description string
}

// End returns the offset one past the last byte of the field.
func (f Field) End() int {
	return f.ByteOffset + f.ByteSize
}

// Overlaps reports whether f and o share at least one byte.
func (f Field) Overlaps(o Field) bool {
	return f.ByteOffset < o.End() && o.ByteOffset < f.End()
}

// Validate checks the field against the trace header geometry.
func (f Field) Validate() error {
	if f.Name == "" {
		return errs.ErrInvalidFieldName
	}
	if f.ByteOffset < 0 || f.End() > section.TraceHeaderSize {
		return fmt.Errorf("%w: field %q at offset %d size %d", errs.ErrInvalidByteOffset, f.Name, f.ByteOffset, f.ByteSize)
	}

	switch f.Wire {
	case format.WireString:
		if f.ByteSize <= 0 {
			return fmt.Errorf("%w: string field %q has size %d", errs.ErrInvalidByteSize, f.Name, f.ByteSize)
		}
	case format.WireInt16, format.WireInt32, format.WireUint16, format.WireFloat32, format.WireFixed46:
		if f.ByteSize != f.Wire.Size() {
			return fmt.Errorf("%w: field %q of type %s has size %d", errs.ErrInvalidByteSize, f.Name, f.Wire, f.ByteSize)
		}
	default:
		return fmt.Errorf("%w: field %q", errs.ErrUnknownWireType, f.Name)
	}

	if f.Out == format.ValueString && f.Wire != format.WireString {
		return fmt.Errorf("%w: numeric field %q cannot be presented as string", errs.ErrUnknownValueType, f.Name)
	}
	if f.Out != format.ValueString && f.Wire == format.WireString {
		return fmt.Errorf("%w: string field %q must be presented as string", errs.ErrUnknownValueType, f.Name)
	}
	if f.Out.String() == "Unknown" {
		return fmt.Errorf("%w: field %q", errs.ErrUnknownValueType, f.Name)
	}

	return nil
}

func (f Field) String() string {
	return fmt.Sprintf("%s@%d[%d] %s->%s", f.Name, f.ByteOffset, f.ByteSize, f.Wire, f.Out)
}
