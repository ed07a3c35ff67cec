package segyio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
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

// Reader reads traces from a SEG-Y, SU or PASSCAL file.
//
// A Reader is created in the opened state; Initialize reads the file headers
// and prepares the trace buffer. A Reader is not safe for concurrent use.
type Reader struct {
	path string
	file *os.File
	cfg  *ReaderConfig
	m    *hdrmap.HeaderMap

	engine  endian.EndianEngine
	codec   *trace.HeaderCodec
	samples *encoding.SampleCodec

	text    *section.TextHeader
	binary  *section.BinaryHeader
	extText []*section.TextHeader

	numSamples       int
	sampleIntervalUS int
	sampleFormat     format.SampleFormat
	traceSize        int
	dataOffset       int64
	fileSize         int64 // -1 when unknown
	numTraces        int64 // -1 when unknown
	residual         int64

	arena          *pool.TraceArena
	decoded        []float32
	releaseDecoded func()
	cursor         int   // next arena slot to return
	lastSlot       int   // arena slot of the current trace, -1 if none
	next           int64 // index of the next trace to return
	filePtr        int64 // index of the trace at the file position
	readLimit      int64 // the next refill ends at this trace, -1 if unbounded
	streamPos      int64 // bytes consumed from a source of unknown size

	peekName   string
	peeking    bool
	peekSaved  int64
	peekBuffer []byte

	initialized bool
	closed      bool
}

// NewReader opens the file at path for reading with header map m. A nil m
// uses the standard SEG-Y map. The file headers are not read until
// Initialize.
//
// Returns:
//   - error: ErrOpenFailure if the file cannot be opened, or an option error
func NewReader(path string, m *hdrmap.HeaderMap, opts ...ReaderOption) (*Reader, error) {
	cfg := DefaultReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if m == nil {
		var err error
		if m, err = hdrmap.New(format.DialectStandard); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailure, err)
	}

	return &Reader{
		path:      path,
		file:      f,
		cfg:       cfg,
		m:         m,
		fileSize:  -1,
		numTraces: -1,
		lastSlot:  -1,
		readLimit: -1,
	}, nil
}

// Initialize reads the file headers, derives the trace geometry and prepares
// the trace buffer. The bootstrap depends on the dialect of the header map.
//
// Returns:
//   - error: ErrAlreadyInitialized, ErrInvalidSampleCount, ErrUnsupportedSampleFormat,
//     ErrResidualBytes in strict mode, or an i/o error
func (r *Reader) Initialize() error {
	if r.closed {
		return errs.ErrClosed
	}
	if r.initialized {
		return errs.ErrAlreadyInitialized
	}

	if r.cfg.HeaderDefinition != "" {
		if err := r.m.LoadExternal(r.cfg.HeaderDefinition); err != nil {
			return err
		}
	}

	if st, err := r.file.Stat(); err == nil && st.Mode().IsRegular() {
		r.fileSize = st.Size()
	}
	if r.fileSize < 0 && r.cfg.RandomAccess {
		plog.Infof("%s: size is unknown, reading sequentially without random access", r.path)
		r.cfg.RandomAccess = false
	}

	if err := r.bootstrap(); err != nil {
		return err
	}

	if r.numSamples <= 0 {
		return fmt.Errorf("%w: %d samples per trace", errs.ErrInvalidSampleCount, r.numSamples)
	}
	if r.sampleIntervalUS < 0 {
		return fmt.Errorf("%w: %d us", errs.ErrInvalidSampleInterval, r.sampleIntervalUS)
	}

	sc, err := encoding.NewSampleCodec(r.sampleFormat, r.engine)
	if err != nil {
		return err
	}
	r.samples = sc
	r.traceSize = traceGeometry(r.numSamples, r.sampleFormat)

	if r.fileSize >= 0 {
		data := r.fileSize - r.dataOffset
		if data < 0 {
			return fmt.Errorf("%w: file of %d bytes ends inside the file headers", errs.ErrShortRead, r.fileSize)
		}
		r.numTraces = data / int64(r.traceSize)
		r.residual = data % int64(r.traceSize)
		if err := r.checkResidual(); err != nil {
			return err
		}
	}

	capacity := bufferCapacity(r.cfg.BufferTraces, r.traceSize, r.numTraces)
	if r.sampleFormat == format.SampleInt16 {
		capacity = 1
	}
	r.arena = pool.NewTraceArena(section.TraceHeaderSize, r.traceSize, capacity)
	r.decoded, r.releaseDecoded = pool.GetFloat32Slice(capacity * r.numSamples)
	r.codec = trace.NewHeaderCodec(r.m)
	r.peekBuffer = make([]byte, section.TraceHeaderSize)

	if r.fileSize >= 0 {
		if _, err := r.file.Seek(r.dataOffset, io.SeekStart); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
	}
	r.initialized = true

	plog.Debugf("%s: %s, %d samples of %s at %d us, %d traces, buffer of %d traces",
		r.path, r.m.Dialect(), r.numSamples, r.sampleFormat, r.sampleIntervalUS, r.numTraces, capacity)

	return nil
}

func (r *Reader) checkResidual() error {
	if r.residual == 0 {
		return nil
	}

	r.cfg.metrics.SetResidualBytes(r.residual)
	if r.cfg.StrictSize {
		return fmt.Errorf("%w: %d bytes after trace %d", errs.ErrResidualBytes, r.residual, r.numTraces)
	}
	plog.Warningf("%s: %d residual bytes after the last full trace are ignored", r.path, r.residual)

	return nil
}

func (r *Reader) ready() error {
	if r.closed {
		return errs.ErrClosed
	}
	if !r.initialized {
		return errs.ErrNotInitialized
	}

	return nil
}

// NextTrace decodes the next trace header into the header values and copies
// its samples into samples, which must hold NumSamples values. A nil samples
// skips the copy; NextTraceSamples still returns them.
//
// Returns:
//   - bool: false at the end of the stream or of the MoveToTrace range
//   - error: ErrNotInitialized, ErrClosed, or an i/o error
func (r *Reader) NextTrace(samples []float32) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	if samples != nil && len(samples) < r.numSamples {
		return false, fmt.Errorf("%w: sample buffer holds %d of %d samples", errs.ErrUsage, len(samples), r.numSamples)
	}
	if err := r.RevertFromPeekPosition(); err != nil {
		return false, err
	}

	if r.cursor >= r.arena.Fill() {
		n, err := r.refill()
		if err != nil {
			return false, err
		}
		if n == 0 {
			r.lastSlot = -1
			return false, nil
		}
	}

	slot := r.cursor
	if err := r.codec.Decode(r.arena.Header(slot), r.engine, r.cfg.AutoScale); err != nil {
		return false, err
	}
	if samples != nil {
		copy(samples, r.slotSamples(slot))
	}

	r.lastSlot = slot
	r.cursor++
	r.next++
	r.cfg.metrics.RecordTraceRead(r.m.Dialect().String())

	return true, nil
}

// NextTraceSamples returns the samples of the current trace. The slice is
// owned by the Reader and valid until the next call to NextTrace or MoveToTrace.
func (r *Reader) NextTraceSamples() []float32 {
	if !r.initialized || r.lastSlot < 0 {
		return nil
	}

	return r.slotSamples(r.lastSlot)
}

func (r *Reader) slotSamples(slot int) []float32 {
	return r.decoded[slot*r.numSamples : (slot+1)*r.numSamples]
}

// refill reads the next run of traces into the arena and converts their
// samples. It returns the number of traces read.
func (r *Reader) refill() (int, error) {
	r.arena.Reset()
	r.cursor = 0
	r.lastSlot = -1

	n := int64(r.arena.Capacity())
	if r.numTraces >= 0 {
		n = min(n, r.numTraces-r.filePtr)
	}
	if r.readLimit >= 0 {
		if r.filePtr < r.readLimit {
			n = min(n, r.readLimit-r.filePtr)
		} else {
			r.readLimit = -1
		}
	}
	if n <= 0 {
		return 0, nil
	}

	start := time.Now()
	region := r.arena.Region(int(n))
	read, err := io.ReadFull(r.file, region)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}

	got := read / r.traceSize
	if partial := read % r.traceSize; partial != 0 {
		// Only reachable when the file size was unknown at Initialize.
		r.residual = int64(partial)
		if rerr := r.checkResidual(); rerr != nil {
			return 0, rerr
		}
	}
	r.filePtr += int64(got)
	r.arena.SetFill(got)
	r.cfg.metrics.RecordRefill(read, time.Since(start))

	for i := range got {
		if err := r.samples.Decode(r.slotSamples(i), r.arena.Samples(i)); err != nil {
			return 0, err
		}
	}

	return got, nil
}

// MoveToTrace positions the stream at trace index. The next refill buffers
// at most count traces; zero buffers up to the buffer capacity. Later refills
// are not bounded and the stream continues to the end of the file.
//
// Returns:
//   - error: ErrRandomAccessDisabled, ErrUnknownFileSize, ErrTraceOutOfRange
func (r *Reader) MoveToTrace(index, count int) error {
	if err := r.ready(); err != nil {
		return err
	}
	if !r.cfg.RandomAccess {
		return errs.ErrRandomAccessDisabled
	}
	if r.numTraces < 0 {
		return errs.ErrUnknownFileSize
	}
	if index < 0 || int64(index) > r.numTraces || count < 0 {
		return fmt.Errorf("%w: trace %d of %d", errs.ErrTraceOutOfRange, index, r.numTraces)
	}
	if err := r.RevertFromPeekPosition(); err != nil {
		return err
	}

	delta := (int64(index) - r.filePtr) * int64(r.traceSize)
	if _, err := r.file.Seek(delta, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	r.arena.Reset()
	r.cursor = 0
	r.lastSlot = -1
	r.filePtr = int64(index)
	r.next = int64(index)
	r.readLimit = -1
	if count > 0 {
		r.readLimit = int64(index) + int64(count)
	}

	return nil
}

// CurrentTraceIndex returns the index of the trace the next NextTrace call
// returns.
func (r *Reader) CurrentTraceIndex() int {
	return int(r.next)
}

// Header returns header value i of the current trace.
func (r *Reader) Header(i int) (value.Value, error) {
	if err := r.ready(); err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= r.m.Len() {
		return value.Value{}, fmt.Errorf("%w: header %d of %d", errs.ErrIndexOutOfRange, i, r.m.Len())
	}

	return r.codec.Values().At(i), nil
}

// HeaderByName returns the named header value of the current trace.
func (r *Reader) HeaderByName(name string) (value.Value, error) {
	idx := r.m.Index(name)
	if idx < 0 {
		return value.Value{}, fmt.Errorf("%w: %q", errs.ErrUnknownHeader, name)
	}

	return r.Header(idx)
}

// Values returns the header values of the current trace, or nil before
// Initialize.
func (r *Reader) Values() *value.Values {
	if r.codec == nil {
		return nil
	}

	return r.codec.Values()
}

// HeaderMap returns the trace header map.
func (r *Reader) HeaderMap() *hdrmap.HeaderMap {
	return r.m
}

// NumTraces returns the number of full traces in the file, or -1 when the
// file size is unknown.
func (r *Reader) NumTraces() int {
	return int(r.numTraces)
}

// NumSamples returns the number of samples per trace.
func (r *Reader) NumSamples() int {
	return r.numSamples
}

// SampleIntMS returns the sample interval in milliseconds.
func (r *Reader) SampleIntMS() float64 {
	return float64(r.sampleIntervalUS) / 1000
}

// SampleIntervalUS returns the sample interval in microseconds.
func (r *Reader) SampleIntervalUS() int {
	return r.sampleIntervalUS
}

// SampleFormat returns the sample format of the file.
func (r *Reader) SampleFormat() format.SampleFormat {
	return r.sampleFormat
}

// ByteOrder returns the byte order of the file, or nil before Initialize.
func (r *Reader) ByteOrder() endian.EndianEngine {
	return r.engine
}

// TextHeader returns the 3200-byte text header, or nil for files without
// one and after FreeFileHeaders.
func (r *Reader) TextHeader() *section.TextHeader {
	return r.text
}

// ExtTextHeaders returns the rev1 extended text headers.
func (r *Reader) ExtTextHeaders() []*section.TextHeader {
	return r.extText
}

// BinaryHeader returns the binary file header. Files without one get a
// header synthesized from the first trace. It is nil after FreeFileHeaders.
func (r *Reader) BinaryHeader() *section.BinaryHeader {
	return r.binary
}

// FreeFileHeaders drops the file headers once they are no longer needed.
func (r *Reader) FreeFileHeaders() {
	r.text = nil
	r.binary = nil
	r.extText = nil
}

// ResidualBytes returns the number of trailing bytes that do not form a full
// trace.
func (r *Reader) ResidualBytes() int64 {
	return r.residual
}

// Dump writes a summary of the file followed by its file headers.
func (r *Reader) Dump(w io.Writer) error {
	if err := r.ready(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "File\t%s\n", r.path)
	fmt.Fprintf(tw, "Dialect\t%s\n", r.m.Dialect())
	fmt.Fprintf(tw, "Byte order\t%s\n", endian.Name(r.engine))
	fmt.Fprintf(tw, "Sample format\t%s\n", r.sampleFormat)
	fmt.Fprintf(tw, "Samples per trace\t%d\n", r.numSamples)
	fmt.Fprintf(tw, "Sample interval [ms]\t%g\n", r.SampleIntMS())
	fmt.Fprintf(tw, "Traces\t%d\n", r.numTraces)
	fmt.Fprintf(tw, "Residual bytes\t%d\n", r.residual)
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.text != nil {
		fmt.Fprintln(w)
		if err := r.text.Dump(w); err != nil {
			return err
		}
	}
	for _, ext := range r.extText {
		fmt.Fprintln(w)
		if err := ext.Dump(w); err != nil {
			return err
		}
	}
	if r.binary != nil {
		fmt.Fprintln(w)
		return r.binary.Dump(w)
	}

	return nil
}

// DumpCurrentHeader writes every mapped field of the current trace header as
// stored in the file, before scaling.
func (r *Reader) DumpCurrentHeader(w io.Writer) error {
	buf, err := r.currentHeaderBytes()
	if err != nil {
		return err
	}

	return trace.DumpFields(w, buf, r.m, r.engine)
}

// DumpRawHeader writes the current trace header as raw 2-byte and 4-byte words.
func (r *Reader) DumpRawHeader(w io.Writer) error {
	buf, err := r.currentHeaderBytes()
	if err != nil {
		return err
	}

	return trace.Dump(w, buf, r.engine)
}

func (r *Reader) currentHeaderBytes() ([]byte, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if r.lastSlot < 0 {
		return nil, fmt.Errorf("%w: no current trace", errs.ErrUsage)
	}

	return r.arena.Header(r.lastSlot), nil
}

// Close releases the trace buffer and closes the file. Calling Close again
// is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if r.arena != nil {
		r.arena.Release()
		r.arena = nil
	}
	if r.releaseDecoded != nil {
		r.releaseDecoded()
		r.releaseDecoded = nil
		r.decoded = nil
	}

	return r.file.Close()
}
