package segyio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/svs590/OpenSeaSeis-sub000/encoding"
	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/internal/options"
	"github.com/svs590/OpenSeaSeis-sub000/internal/pool"
	"github.com/svs590/OpenSeaSeis-sub000/section"
	"github.com/svs590/OpenSeaSeis-sub000/trace"
	"github.com/svs590/OpenSeaSeis-sub000/value"
)

// Trace header byte offsets pre-populated by the Writer.
const (
	offTraceID     = 28 // trace identification code
	offVerticalSum = 30 // number of vertically summed traces
	offHorizStack  = 32 // number of horizontally stacked traces
)

// Writer writes traces to a SEG-Y, SU or PASSCAL file.
//
// Header values are set on the Writer's Values between calls to
// WriteNextTrace and persist from one trace to the next. A Writer is not
// safe for concurrent use.
type Writer struct {
	path string
	file *os.File
	cfg  *WriterConfig
	m    *hdrmap.HeaderMap

	engine  endian.EndianEngine
	format  format.SampleFormat
	codec   *trace.HeaderCodec
	samples *encoding.SampleCodec

	text   *section.TextHeader
	binary *section.BinaryHeader

	arena          *pool.TraceArena
	pending        []float32
	releasePending func()

	idxNumSamples     int
	idxSampleInterval int
	idxPSEGYNumSamps  int
	idxPSEGYSampRate  int

	written     int64
	initialized bool
	closed      bool
}

// NewWriter creates the file at path for writing traces with header map m.
// A nil m uses the standard SEG-Y map. Nothing is written until Initialize.
//
// Returns:
//   - error: ErrOpenFailure if the file cannot be created, or an option error
func NewWriter(path string, m *hdrmap.HeaderMap, opts ...WriterOption) (*Writer, error) {
	cfg := DefaultWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if m == nil {
		var err error
		if m, err = hdrmap.New(format.DialectStandard); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailure, err)
	}

	return &Writer{
		path: path,
		file: f,
		cfg:  cfg,
		m:    m,
	}, nil
}

// Initialize resolves the output byte order and sample format, writes the
// file headers of SEG-Y dialects and pre-populates the mandatory trace
// header fields.
//
// Returns:
//   - error: ErrAlreadyInitialized, ErrUnsupportedSampleFormat for formats
//     the dialect cannot hold, ErrInvalidSampleCount, or an i/o error
func (w *Writer) Initialize() error {
	if w.closed {
		return errs.ErrClosed
	}
	if w.initialized {
		return errs.ErrAlreadyInitialized
	}

	d := w.m.Dialect()
	if err := w.resolveFormat(d); err != nil {
		return err
	}
	if d != format.DialectPSEGY && (w.cfg.NumSamples > math.MaxUint16 || w.cfg.SampleIntervalUS > math.MaxUint16) {
		return fmt.Errorf("%w: %d samples at %d us do not fit the 2-byte fields",
			errs.ErrInvalidSampleCount, w.cfg.NumSamples, w.cfg.SampleIntervalUS)
	}

	engine, fixed := w.cfg.ByteOrder.engine()
	if !fixed {
		engine = endian.GetBigEndianEngine()
		if d.IsSU() {
			engine = endian.GetNativeEngine()
		}
	}
	w.engine = engine

	sc, err := encoding.NewSampleCodec(w.format, engine)
	if err != nil {
		return err
	}
	w.samples = sc

	if d.HasFileHeaders() {
		if err := w.writeFileHeaders(); err != nil {
			return err
		}
	}

	traceSize := traceGeometry(w.cfg.NumSamples, w.format)
	capacity := bufferCapacity(w.cfg.BufferTraces, traceSize, -1)
	w.arena = pool.NewTraceArena(section.TraceHeaderSize, traceSize, capacity)
	w.pending, w.releasePending = pool.GetFloat32Slice(capacity * w.cfg.NumSamples)
	w.codec = trace.NewHeaderCodec(w.m)
	w.populateDefaults()
	w.initialized = true

	plog.Debugf("%s: writing %s, %d samples of %s at %d us, %s-endian, buffer of %d traces",
		w.path, d, w.cfg.NumSamples, w.format, w.cfg.SampleIntervalUS, endian.Name(engine), capacity)

	return nil
}

func (w *Writer) resolveFormat(d format.Dialect) error {
	f := w.cfg.SampleFormat
	switch {
	case d.IsSU():
		if f == format.SampleUnknown {
			f = format.SampleIEEE
		}
		if f != format.SampleIEEE {
			return fmt.Errorf("%w: seismic unix files hold IEEE samples, not %s", errs.ErrUnsupportedSampleFormat, f)
		}
	case d == format.DialectPSEGY:
		if f == format.SampleUnknown {
			f = format.SampleInt32
		}
		if f != format.SampleInt16 && f != format.SampleInt32 {
			return fmt.Errorf("%w: PASSCAL files hold Int16 or Int32 samples, not %s", errs.ErrUnsupportedSampleFormat, f)
		}
	default:
		if f == format.SampleUnknown {
			f = format.SampleIEEE
		}
	}
	w.format = f

	return nil
}

func (w *Writer) writeFileHeaders() error {
	w.text = section.NewTextHeader(w.cfg.TextLines, w.cfg.EBCDIC)

	bh := section.NewBinaryHeader(w.cfg.NumSamples, w.cfg.SampleIntervalUS, w.format)
	if w.cfg.BinaryHeader != nil {
		tpl := *w.cfg.BinaryHeader
		tpl.NumSamples = bh.NumSamples
		tpl.SampleInterval = bh.SampleInterval
		tpl.SampleFormat = w.format
		if tpl.NumSamplesOrig == 0 {
			tpl.NumSamplesOrig = bh.NumSamples
		}
		if tpl.SampleIntervalOrig == 0 {
			tpl.SampleIntervalOrig = bh.SampleInterval
		}
		tpl.NumExtTextHeaders = 0
		bh = &tpl
	}
	w.binary = bh

	buf := make([]byte, section.FileHeaderSize)
	copy(buf, w.text.Bytes())
	if err := bh.WriteToSlice(buf[section.TextHeaderSize:], w.engine); err != nil {
		return err
	}

	return w.write(buf)
}

func (w *Writer) write(b []byte) error {
	n, err := w.file.Write(b)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrShortWrite, err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: %d of %d bytes", errs.ErrShortWrite, n, len(b))
	}

	return nil
}

// populateDefaults sets the fields every trace must carry: trace type,
// fold, unit scale factors and, for PASSCAL, the 4-byte geometry fields.
func (w *Writer) populateDefaults() {
	vs := w.codec.Values()
	setAt := func(off int, v int32) {
		if idx := w.m.FieldAtOffset(off); idx >= 0 {
			if f, _ := w.m.Field(idx); f.ByteOffset == off && f.Out.IsNumeric() {
				_ = vs.SetInt(idx, v)
			}
		}
	}

	setAt(offTraceID, 1)
	setAt(offVerticalSum, 1)
	setAt(offHorizStack, 1)
	for _, k := range []hdrmap.ScaleKind{hdrmap.ScaleCoordinate, hdrmap.ScaleElevation, hdrmap.ScaleStatic} {
		if idx := w.m.ScalarIndex(k); idx >= 0 {
			_ = vs.SetInt(idx, 1)
		}
	}

	w.idxNumSamples = w.fieldAt(offNumSamples)
	w.idxSampleInterval = w.fieldAt(offSampleInterval)
	w.idxPSEGYNumSamps, w.idxPSEGYSampRate = -1, -1
	if w.m.Dialect() == format.DialectPSEGY {
		w.idxPSEGYNumSamps = w.fieldAt(offPSEGYNumSamps)
		w.idxPSEGYSampRate = w.fieldAt(offPSEGYSampRate)
		dataForm := int32(1)
		if w.format == format.SampleInt16 {
			dataForm = 0
		}
		setAt(offPSEGYDataForm, dataForm)
	}
	w.setGeometry()
}

// fieldAt returns the index of the numeric field starting at off, or -1.
func (w *Writer) fieldAt(off int) int {
	idx := w.m.FieldAtOffset(off)
	if idx < 0 {
		return -1
	}
	if f, _ := w.m.Field(idx); f.ByteOffset != off || !f.Out.IsNumeric() {
		return -1
	}

	return idx
}

// setGeometry writes the sample count and interval into the header values.
// PASSCAL stores counts above 32766 in the 4-byte fields and 32767 in the
// 2-byte fields.
func (w *Writer) setGeometry() {
	vs := w.codec.Values()
	ns, dt := int32(w.cfg.NumSamples), int32(w.cfg.SampleIntervalUS)
	short := func(v int32) int32 { return v }
	if w.m.Dialect() == format.DialectPSEGY {
		short = func(v int32) int32 { return min(v, psegyMaxShort+1) }
	}

	if w.idxNumSamples >= 0 {
		_ = vs.SetInt(w.idxNumSamples, short(ns))
	}
	if w.idxSampleInterval >= 0 {
		_ = vs.SetInt(w.idxSampleInterval, short(dt))
	}
	if w.idxPSEGYNumSamps >= 0 {
		_ = vs.SetInt(w.idxPSEGYNumSamps, ns)
	}
	if w.idxPSEGYSampRate >= 0 {
		_ = vs.SetInt(w.idxPSEGYSampRate, dt)
	}
}

func (w *Writer) ready() error {
	if w.closed {
		return errs.ErrClosed
	}
	if !w.initialized {
		return errs.ErrNotInitialized
	}

	return nil
}

// WriteNextTrace encodes the current header values and buffers samples as
// the next trace. Traces shorter than NumSamples are zero-padded.
//
// Returns:
//   - error: ErrNotInitialized, ErrTooManySamples, or an i/o error from a flush
func (w *Writer) WriteNextTrace(samples []float32) error {
	if err := w.ready(); err != nil {
		return err
	}
	if len(samples) > w.cfg.NumSamples {
		return fmt.Errorf("%w: %d samples, trace holds %d", errs.ErrTooManySamples, len(samples), w.cfg.NumSamples)
	}

	w.setGeometry()
	slot := w.arena.Fill()
	if err := w.codec.Encode(w.arena.Header(slot), w.engine, w.cfg.AutoScale); err != nil {
		return err
	}

	dst := w.pending[slot*w.cfg.NumSamples : (slot+1)*w.cfg.NumSamples]
	n := copy(dst, samples)
	clear(dst[n:])

	w.arena.SetFill(slot + 1)
	w.written++
	w.cfg.metrics.RecordTraceWritten(w.m.Dialect().String())

	if w.arena.Full() {
		return w.Flush()
	}

	return nil
}

// Flush converts the buffered samples and writes the buffered traces.
func (w *Writer) Flush() error {
	if err := w.ready(); err != nil {
		return err
	}

	fill := w.arena.Fill()
	if fill == 0 {
		return nil
	}

	start := time.Now()
	ns := w.cfg.NumSamples
	for i := range fill {
		if err := w.samples.Encode(w.arena.Samples(i), w.pending[i*ns:(i+1)*ns]); err != nil {
			return err
		}
	}

	region := w.arena.Region(fill)
	if err := w.write(region); err != nil {
		return err
	}
	w.arena.Reset()
	w.cfg.metrics.RecordFlush(len(region), time.Since(start))

	return nil
}

func (w *Writer) values() (*value.Values, error) {
	if err := w.ready(); err != nil {
		return nil, err
	}

	return w.codec.Values(), nil
}

// SetInt sets header value i of the next trace.
func (w *Writer) SetInt(i int, v int32) error {
	vs, err := w.values()
	if err != nil {
		return err
	}

	return vs.SetInt(i, v)
}

// SetFloat sets header value i of the next trace.
func (w *Writer) SetFloat(i int, v float32) error {
	vs, err := w.values()
	if err != nil {
		return err
	}

	return vs.SetFloat(i, v)
}

// SetDouble sets header value i of the next trace.
func (w *Writer) SetDouble(i int, v float64) error {
	vs, err := w.values()
	if err != nil {
		return err
	}

	return vs.SetDouble(i, v)
}

// SetInt64 sets header value i of the next trace.
func (w *Writer) SetInt64(i int, v int64) error {
	vs, err := w.values()
	if err != nil {
		return err
	}

	return vs.SetInt64(i, v)
}

// SetString sets header value i of the next trace.
func (w *Writer) SetString(i int, v string) error {
	vs, err := w.values()
	if err != nil {
		return err
	}

	return vs.SetString(i, v)
}

// Set sets the named header value of the next trace.
func (w *Writer) Set(name string, v value.Value) error {
	vs, err := w.values()
	if err != nil {
		return err
	}
	idx := w.m.Index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", errs.ErrUnknownHeader, name)
	}

	return vs.Set(idx, v)
}

// Values returns the header values of the next trace, or nil before Initialize.
func (w *Writer) Values() *value.Values {
	if w.codec == nil {
		return nil
	}

	return w.codec.Values()
}

// HeaderMap returns the trace header map.
func (w *Writer) HeaderMap() *hdrmap.HeaderMap {
	return w.m
}

// TextHeader returns the written text header, or nil for dialects without one.
func (w *Writer) TextHeader() *section.TextHeader {
	return w.text
}

// BinaryHeader returns the written binary header, or nil for dialects without one.
func (w *Writer) BinaryHeader() *section.BinaryHeader {
	return w.binary
}

// SampleFormat returns the output sample format, resolved by Initialize.
func (w *Writer) SampleFormat() format.SampleFormat {
	return w.format
}

// NumTracesWritten returns the number of traces passed to WriteNextTrace.
func (w *Writer) NumTracesWritten() int64 {
	return w.written
}

// Close flushes the buffered traces, releases the buffers and closes the
// file. Calling Close again is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	var flushErr error
	if w.initialized {
		flushErr = w.Flush()
	}
	w.closed = true

	if w.arena != nil {
		w.arena.Release()
		w.arena = nil
	}
	if w.releasePending != nil {
		w.releasePending()
		w.releasePending = nil
		w.pending = nil
	}

	return errors.Join(flushErr, w.file.Close())
}
