// Package hdrmap defines trace header layouts.
//
// A HeaderMap is an ordered list of Field descriptors for the 240-byte SEG-Y
// trace header. Fields are kept in ascending byte-offset order and never
// overlap. Maps start from one of the built-in dialects and can be extended
// with user fields or an external definition file.
//
// Once InitScalars has run (done by the trace codec, reader and writer) the
// map is locked: field indices become stable and mutation fails with
// errs.ErrMapLocked.
package hdrmap

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"text/tabwriter"

	"github.com/google/btree"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/internal/collision"
	"github.com/svs590/OpenSeaSeis-sub000/internal/hash"
	"github.com/svs590/OpenSeaSeis-sub000/value"
)

// Names of the fields holding the scale factors, in lookup order.
var scalarFieldNames = [numScaleKinds][]string{
	ScaleCoordinate: {"scalar_coord", "scalco"},
	ScaleElevation:  {"scalar_elev", "scalel"},
	ScaleStatic:     {"scalar_stat"},
}

// Names of the fields affected by each scale factor.
var scaledFieldNames = [numScaleKinds][]string{
	ScaleCoordinate: {"sou_x", "sou_y", "rec_x", "rec_y", "cmp_x", "cmp_y", "sx", "sy", "gx", "gy"},
	ScaleElevation: {
		"rec_elev", "sou_elev", "sou_z", "rec_datum", "sou_datum", "sou_wdep", "rec_wdep", "rec_dep",
		"gelev", "selev", "sdepth", "gdel", "sdel", "swdep", "gwdep",
	},
	ScaleStatic: {"stat_sou", "stat_rec", "stat_tot"},
}

type offsetEntry struct {
	offset int
	end    int
	name   string
}

func offsetLess(a, b offsetEntry) bool {
	return a.offset < b.offset
}

// HeaderMap is an ordered, non-overlapping set of trace header fields.
//
// A HeaderMap is not safe for concurrent mutation. After InitScalars it is
// read-only and may be shared by readers and writers.
type HeaderMap struct {
	dialect format.Dialect
	fields  []Field

	ids     map[uint64]int
	tracker *collision.Tracker
	offsets *btree.BTreeG[offsetEntry]

	replace bool
	locked  bool

	scaled    [numScaleKinds][]int
	scalarIdx [numScaleKinds]int
	scaleKind []int8
}

// New creates a map pre-populated with the fields of dialect.
func New(dialect format.Dialect) (*HeaderMap, error) {
	fields, err := dialectFields(dialect)
	if err != nil {
		return nil, err
	}

	m := newEmpty(dialect)
	for _, f := range fields {
		if err := m.Add(f); err != nil {
			return nil, fmt.Errorf("dialect %s: %w", dialect, err)
		}
	}

	return m, nil
}

// MustNew is like New but panics on error. Intended for built-in dialects.
func MustNew(dialect format.Dialect) *HeaderMap {
	m, err := New(dialect)
	if err != nil {
		panic(err)
	}

	return m
}

func newEmpty(dialect format.Dialect) *HeaderMap {
	m := &HeaderMap{
		dialect: dialect,
		fields:  make([]Field, 0, 96),
		ids:     make(map[uint64]int, 96),
		tracker: collision.NewTracker(),
		offsets: btree.NewG(8, offsetLess),
	}
	for k := range m.scalarIdx {
		m.scalarIdx[k] = -1
	}

	return m
}

// Dialect returns the dialect the map was created from.
func (m *HeaderMap) Dialect() format.Dialect {
	return m.dialect
}

// Clone returns an unlocked deep copy of m.
func (m *HeaderMap) Clone() *HeaderMap {
	c := newEmpty(m.dialect)
	c.fields = append(c.fields, m.fields...)
	c.replace = m.replace
	c.reindex()

	return c
}

// Len returns the number of fields.
func (m *HeaderMap) Len() int {
	return len(m.fields)
}

// Field returns the field at index i.
func (m *HeaderMap) Field(i int) (Field, error) {
	if i < 0 || i >= len(m.fields) {
		return Field{}, fmt.Errorf("%w: field %d of %d", errs.ErrIndexOutOfRange, i, len(m.fields))
	}

	return m.fields[i], nil
}

// All iterates over the fields in byte-offset order.
func (m *HeaderMap) All() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		for i, f := range m.fields {
			if !yield(i, f) {
				return
			}
		}
	}
}

// ValueTypes returns the logical type of every field, in index order.
func (m *HeaderMap) ValueTypes() []format.ValueType {
	types := make([]format.ValueType, len(m.fields))
	for i, f := range m.fields {
		types[i] = f.Out
	}

	return types
}

// Index returns the index of the named field, or -1.
func (m *HeaderMap) Index(name string) int {
	if idx, ok := m.ids[hash.FieldID(name)]; ok && m.fields[idx].Name == name {
		return idx
	}
	if !m.tracker.HasCollision() {
		return -1
	}

	return slices.IndexFunc(m.fields, func(f Field) bool { return f.Name == name })
}

// Contains reports whether the named field exists.
func (m *HeaderMap) Contains(name string) bool {
	return m.Index(name) >= 0
}

// FieldAtOffset returns the index of the field covering the zero-based byte
// offset, or -1 when no field covers it.
func (m *HeaderMap) FieldAtOffset(offset int) int {
	idx := -1
	m.offsets.DescendLessOrEqual(offsetEntry{offset: offset}, func(e offsetEntry) bool {
		if offset < e.end {
			idx = m.Index(e.name)
		}

		return false
	})

	return idx
}

// SetReplaceMode controls how Add handles conflicts. In replace mode a new
// field replaces any field with the same name or overlapping bytes; otherwise
// such conflicts are errors.
func (m *HeaderMap) SetReplaceMode(replace bool) {
	m.replace = replace
}

// ReplaceMode reports whether replace mode is on.
func (m *HeaderMap) ReplaceMode() bool {
	return m.replace
}

// Locked reports whether InitScalars has run.
func (m *HeaderMap) Locked() bool {
	return m.locked
}

// AddHeader is a convenience wrapper around Add deriving the byte size from
// the wire type. String fields must use Add with an explicit size.
func (m *HeaderMap) AddHeader(name string, byteOffset int, wire format.WireType, out format.ValueType, description string) error {
	return m.Add(Field{
		Name:        name,
		ByteOffset:  byteOffset,
		ByteSize:    wire.Size(),
		Wire:        wire,
		Out:         out,
		Description: description,
	})
}

// Add inserts f, keeping byte-offset order.
//
// Returns:
//   - error: ErrMapLocked, a validation error, ErrDuplicateHeader or
//     ErrFieldOverlap (the latter two only outside replace mode)
func (m *HeaderMap) Add(f Field) error {
	if m.locked {
		return errs.ErrMapLocked
	}
	if err := f.Validate(); err != nil {
		return err
	}

	conflicts := m.conflicts(f)
	if len(conflicts) > 0 {
		if !m.replace {
			first := m.fields[conflicts[0]]
			if first.Name == f.Name {
				return fmt.Errorf("%w: %q", errs.ErrDuplicateHeader, f.Name)
			}

			return fmt.Errorf("%w: %s overlaps %s", errs.ErrFieldOverlap, f, first)
		}
		m.fields = deleteIndices(m.fields, conflicts)
		m.reindex()
	}

	pos, _ := slices.BinarySearchFunc(m.fields, f.ByteOffset, func(e Field, off int) int {
		return e.ByteOffset - off
	})
	m.fields = slices.Insert(m.fields, pos, f)

	if pos == len(m.fields)-1 {
		return m.track(pos)
	}
	m.reindex()

	return nil
}

// conflicts returns the ascending indices of fields sharing f's name or bytes.
func (m *HeaderMap) conflicts(f Field) []int {
	var out []int
	if idx := m.Index(f.Name); idx >= 0 {
		out = append(out, idx)
	}

	check := func(e offsetEntry) {
		other := Field{ByteOffset: e.offset, ByteSize: e.end - e.offset}
		if other.Overlaps(f) {
			if idx := m.Index(e.name); idx >= 0 && !slices.Contains(out, idx) {
				out = append(out, idx)
			}
		}
	}
	m.offsets.DescendLessOrEqual(offsetEntry{offset: f.ByteOffset}, func(e offsetEntry) bool {
		check(e)
		return false
	})
	m.offsets.AscendRange(offsetEntry{offset: f.ByteOffset}, offsetEntry{offset: f.End()}, func(e offsetEntry) bool {
		check(e)
		return true
	})
	slices.Sort(out)

	return out
}

// Remove deletes the named field.
func (m *HeaderMap) Remove(name string) error {
	idx := m.Index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", errs.ErrUnknownHeader, name)
	}

	return m.RemoveAt(idx)
}

// RemoveAt deletes the field at index i. Later fields shift down by one.
func (m *HeaderMap) RemoveAt(i int) error {
	if m.locked {
		return errs.ErrMapLocked
	}
	if i < 0 || i >= len(m.fields) {
		return fmt.Errorf("%w: field %d of %d", errs.ErrIndexOutOfRange, i, len(m.fields))
	}
	m.fields = slices.Delete(m.fields, i, i+1)
	m.reindex()

	return nil
}

// RemoveAll deletes every field.
func (m *HeaderMap) RemoveAll() error {
	if m.locked {
		return errs.ErrMapLocked
	}
	m.fields = m.fields[:0]
	m.reindex()

	return nil
}

func (m *HeaderMap) track(i int) error {
	f := m.fields[i]
	id := hash.FieldID(f.Name)
	if err := m.tracker.Track(f.Name, id); err != nil {
		return err
	}
	if _, ok := m.ids[id]; !ok {
		m.ids[id] = i
	}
	m.offsets.ReplaceOrInsert(offsetEntry{offset: f.ByteOffset, end: f.End(), name: f.Name})

	return nil
}

// reindex rebuilds the name and offset indices after fields moved.
func (m *HeaderMap) reindex() {
	clear(m.ids)
	m.tracker.Reset()
	m.offsets.Clear(false)
	for i := range m.fields {
		// names are unique here, Track cannot fail
		_ = m.track(i)
	}
}

func deleteIndices(fields []Field, ascending []int) []Field {
	for i := len(ascending) - 1; i >= 0; i-- {
		fields = slices.Delete(fields, ascending[i], ascending[i]+1)
	}

	return fields
}

// InitScalars resolves the scale-factor fields and the fields they affect,
// then locks the map. Calling it again is a no-op.
func (m *HeaderMap) InitScalars() {
	if m.locked {
		return
	}

	m.scaleKind = make([]int8, len(m.fields))
	for i := range m.scaleKind {
		m.scaleKind[i] = -1
	}

	for k := range numScaleKinds {
		m.scalarIdx[k] = -1
		m.scaled[k] = m.scaled[k][:0]

		for _, name := range scalarFieldNames[k] {
			if idx := m.Index(name); idx >= 0 && m.fields[idx].Out.IsNumeric() {
				m.scalarIdx[k] = idx
				break
			}
		}
		if m.scalarIdx[k] < 0 {
			continue
		}

		for _, name := range scaledFieldNames[k] {
			idx := m.Index(name)
			if idx < 0 || !m.fields[idx].Out.IsNumeric() {
				continue
			}
			m.scaled[k] = append(m.scaled[k], idx)
			m.scaleKind[idx] = int8(k)
		}
	}
	m.locked = true
}

// ScalarIndex returns the index of the field holding the k scale factor, or
// -1 when the map has none. Valid after InitScalars.
func (m *HeaderMap) ScalarIndex(k ScaleKind) int {
	return m.scalarIdx[k]
}

// ScaledIndices returns the indices of fields scaled by the k scale factor.
// Valid after InitScalars.
func (m *HeaderMap) ScaledIndices(k ScaleKind) []int {
	return m.scaled[k]
}

// ScaleKindOf returns the scale factor group of field i, or false when the
// field is not scaled. Valid after InitScalars.
func (m *HeaderMap) ScaleKindOf(i int) (ScaleKind, bool) {
	if i < 0 || i >= len(m.scaleKind) || m.scaleKind[i] < 0 {
		return 0, false
	}

	return ScaleKind(m.scaleKind[i]), true
}

// ApplyCoordinateScalar converts stored coordinates, elevations and statics
// in vs to physical values using the scale factors found in vs.
func (m *HeaderMap) ApplyCoordinateScalar(vs *value.Values) {
	m.InitScalars()
	for k := range numScaleKinds {
		if m.scalarIdx[k] < 0 {
			continue
		}
		s := Scalar(vs.At(m.scalarIdx[k]).Int())
		if s == 0 || s == 1 {
			continue
		}
		for _, idx := range m.scaled[k] {
			_ = vs.SetDouble(idx, s.Apply(vs.At(idx).Double()))
		}
	}
}

// ApplyCoordinateScalarWriting is the inverse of ApplyCoordinateScalar. It
// converts physical values in vs to the values to store and normalizes the
// scale factors themselves, writing 1 where the factor was 0.
func (m *HeaderMap) ApplyCoordinateScalarWriting(vs *value.Values) {
	m.InitScalars()
	for k := range numScaleKinds {
		if m.scalarIdx[k] < 0 {
			continue
		}
		s := Scalar(vs.At(m.scalarIdx[k]).Int()).Normalized()
		_ = vs.SetInt(m.scalarIdx[k], int32(s))
		if s == 1 {
			continue
		}
		for _, idx := range m.scaled[k] {
			_ = vs.SetDouble(idx, s.Invert(vs.At(idx).Double()))
		}
	}
}

// Dump writes a table of all fields. Byte locations are printed one-based,
// matching the external definition file format.
func (m *HeaderMap) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tname\tbyte\tsize\twire\ttype\tdescription\n")
	for i, f := range m.fields {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n", i, f.Name, f.ByteOffset+1, f.ByteSize, f.Wire, f.Out, f.Description)
	}

	return tw.Flush()
}
