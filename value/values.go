package value

import (
	"fmt"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
)

// Values is the array of typed header slots of one trace.
//
// Each slot keeps the logical type it was created with; setters convert the
// incoming value to that type. Values is owned by a single reader, writer or
// codec and is overwritten on every trace.
type Values struct {
	slots []Value
}

// NewValues creates zero-valued slots of the given types.
func NewValues(types []format.ValueType) *Values {
	slots := make([]Value, len(types))
	for i, typ := range types {
		slots[i] = Zero(typ)
	}

	return &Values{slots: slots}
}

// Len returns the number of slots.
func (vs *Values) Len() int {
	return len(vs.slots)
}

// At returns slot i. Panics if i is out of range.
func (vs *Values) At(i int) Value {
	return vs.slots[i]
}

// Type returns the logical type of slot i. Panics if i is out of range.
func (vs *Values) Type(i int) format.ValueType {
	return vs.slots[i].Type()
}

// Set stores v in slot i, converted to the slot type.
func (vs *Values) Set(i int, v Value) error {
	if i < 0 || i >= len(vs.slots) {
		return fmt.Errorf("%w: slot %d of %d", errs.ErrIndexOutOfRange, i, len(vs.slots))
	}
	vs.slots[i] = v.As(vs.slots[i].Type())

	return nil
}

// SetInt stores an int in slot i.
func (vs *Values) SetInt(i int, v int32) error {
	return vs.Set(i, OfInt(v))
}

// SetFloat stores a float in slot i.
func (vs *Values) SetFloat(i int, v float32) error {
	return vs.Set(i, OfFloat(v))
}

// SetDouble stores a double in slot i.
func (vs *Values) SetDouble(i int, v float64) error {
	return vs.Set(i, OfDouble(v))
}

// SetInt64 stores an int64 in slot i.
func (vs *Values) SetInt64(i int, v int64) error {
	return vs.Set(i, OfInt64(v))
}

// SetString stores a string in slot i.
func (vs *Values) SetString(i int, v string) error {
	return vs.Set(i, OfString(v))
}

// Reset zeroes every slot, keeping its type.
func (vs *Values) Reset() {
	for i := range vs.slots {
		vs.slots[i] = Zero(vs.slots[i].Type())
	}
}

// CopyFrom overwrites vs with the slots of src. Both must have the same length.
func (vs *Values) CopyFrom(src *Values) {
	copy(vs.slots, src.slots)
}

// Clone returns an independent copy.
func (vs *Values) Clone() *Values {
	return &Values{slots: append([]Value(nil), vs.slots...)}
}
