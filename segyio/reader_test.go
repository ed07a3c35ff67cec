package segyio

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/section"
	"github.com/svs590/OpenSeaSeis-sub000/value"
)

// testSamples returns integer-valued samples that every format holds exactly.
func testSamples(trace, ns int) []float32 {
	s := make([]float32, ns)
	for j := range s {
		s[j] = float32((trace*37+j)%2000 - 1000)
	}

	return s
}

// writeTraces writes n traces of ns samples whose first header field is the
// one-based trace number.
func writeTraces(t *testing.T, path string, d format.Dialect, n, ns int, opts ...WriterOption) {
	t.Helper()

	opts = append([]WriterOption{WithSampleCount(ns), WithSampleInterval(2000)}, opts...)
	w, err := NewWriter(path, hdrmap.MustNew(d), opts...)
	require.NoError(t, err)
	require.NoError(t, w.Initialize())

	seq := w.HeaderMap().FieldAtOffset(0)
	require.GreaterOrEqual(t, seq, 0)
	for i := range n {
		require.NoError(t, w.SetInt(seq, int32(i+1)))
		require.NoError(t, w.WriteNextTrace(testSamples(i, ns)))
	}
	require.Equal(t, int64(n), w.NumTracesWritten())
	require.NoError(t, w.Close())
}

// buildSEGY writes a SEG-Y file with IEEE samples by hand.
func buildSEGY(t *testing.T, path string, engine endian.EndianEngine, bh *section.BinaryHeader,
	ext []*section.TextHeader, traces [][]float32, setHeader func(i int, hdr []byte),
) {
	t.Helper()

	out := append([]byte(nil), section.NewTextHeader([]string{"C 1 CLIENT TEST"}, true).Bytes()...)
	out = append(out, bh.Bytes(engine)...)
	for _, e := range ext {
		out = append(out, e.Bytes()...)
	}
	for i, tr := range traces {
		hdr := make([]byte, section.TraceHeaderSize)
		if setHeader != nil {
			setHeader(i, hdr)
		}
		out = append(out, hdr...)
		for _, v := range tr {
			out = engine.AppendUint32(out, math.Float32bits(v))
		}
	}
	require.NoError(t, os.WriteFile(path, out, 0o644))
}

func openReader(t *testing.T, path string, d format.Dialect, opts ...ReaderOption) *Reader {
	t.Helper()

	r, err := NewReader(path, hdrmap.MustNew(d), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Initialize())

	return r
}

func TestReader_IEEETwoTraces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.sgy")
	traces := [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}}

	w, err := NewWriter(path, nil,
		WithSampleCount(4),
		WithSampleInterval(2000),
		WithWriterSampleFormat(format.SampleIEEE),
		WithTextHeaderLines("C 1 CLIENT TEST"),
	)
	require.NoError(t, err)
	require.NoError(t, w.Initialize())
	for _, tr := range traces {
		require.NoError(t, w.WriteNextTrace(tr))
	}
	require.NoError(t, w.Close())

	r := openReader(t, path, format.DialectStandard)
	require.Equal(t, 4, r.NumSamples())
	require.Equal(t, 2.0, r.SampleIntMS())
	require.Equal(t, 2, r.NumTraces())
	require.Equal(t, format.SampleIEEE, r.SampleFormat())
	require.True(t, r.TextHeader().IsEBCDIC())
	require.Equal(t, "C 1 CLIENT TEST", r.TextHeader().Lines()[0])

	samples := make([]float32, r.NumSamples())
	for i, want := range traces {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, samples)
		require.Equal(t, want, r.NextTraceSamples())
		require.Equal(t, i+1, r.CurrentTraceIndex())
	}

	ok, err := r.NextTrace(samples)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, r.NextTraceSamples())
}

func TestReader_SUBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.su")
	le := endian.GetLittleEndianEngine()

	var out []byte
	for i := range 3 {
		hdr := make([]byte, section.TraceHeaderSize)
		le.PutUint32(hdr[0:], uint32(i+1))
		le.PutUint16(hdr[114:], 8)
		le.PutUint16(hdr[116:], 4000)
		out = append(out, hdr...)
		for _, v := range testSamples(i, 8) {
			out = le.AppendUint32(out, math.Float32bits(v))
		}
	}
	require.NoError(t, os.WriteFile(path, out, 0o644))

	r := openReader(t, path, format.DialectSU, WithRandomAccess(false))
	require.Equal(t, 8, r.NumSamples())
	require.Equal(t, 4.0, r.SampleIntMS())
	require.Equal(t, 3, r.NumTraces())
	require.Equal(t, "little", endian.Name(r.ByteOrder()))
	require.Nil(t, r.TextHeader())
	require.NotNil(t, r.BinaryHeader())
	require.Equal(t, uint16(8), r.BinaryHeader().NumSamples)

	// Random access is forced on for SU.
	require.NoError(t, r.MoveToTrace(1, 0))

	samples := make([]float32, 8)
	ok, err := r.NextTrace(samples)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testSamples(1, 8), samples)

	v, err := r.HeaderByName("tracl")
	require.NoError(t, err)
	require.Equal(t, int32(2), v.Int())
	v, err = r.HeaderByName("dt")
	require.NoError(t, err)
	require.Equal(t, int32(4000), v.Int())
}

func TestReader_BufferBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ten.sgy")
	writeTraces(t, path, format.DialectStandard, 10, 16, WithWriterBufferTraces(4))

	r := openReader(t, path, format.DialectStandard, WithBufferTraces(3))
	require.Equal(t, 10, r.NumTraces())

	samples := make([]float32, 16)
	for i := range 10 {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.True(t, ok, "trace %d", i)
		require.Equal(t, testSamples(i, 16), samples)

		v, err := r.HeaderByName("trc_seq_line")
		require.NoError(t, err)
		require.Equal(t, int32(i+1), v.Int())
	}

	for range 2 {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestReader_PeekDoesNotDisturbCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peek.sgy")
	writeTraces(t, path, format.DialectStandard, 10, 8)

	r := openReader(t, path, format.DialectStandard, WithBufferTraces(4))
	samples := make([]float32, 8)
	for range 2 {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.True(t, ok)
	}

	require.NoError(t, r.SetHeaderToPeek("trc_seq_line"))
	v, err := r.PeekHeaderValue(7)
	require.NoError(t, err)
	require.Equal(t, int32(8), v.Int())

	v, ok, err := r.PeekNextHeaderValue()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(3), v.Int())

	for i := 2; i < 4; i++ {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, testSamples(i, 8), samples)
	}
	require.Equal(t, 4, r.CurrentTraceIndex())

	// The next trace is no longer buffered and is peeked from the file.
	v, ok, err = r.PeekNextHeaderValue()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(5), v.Int())
	_, err = r.PeekHeaderValue(0)
	require.NoError(t, err)

	ok, err = r.NextTrace(samples)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testSamples(4, 8), samples)
	require.Equal(t, 5, r.CurrentTraceIndex())

	require.NoError(t, r.MoveToTrace(9, 0))
	_, ok, err = r.PeekNextHeaderValue()
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = r.NextTrace(samples)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = r.PeekNextHeaderValue()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReaderWriter_RoundTrip(t *testing.T) {
	formats := []format.SampleFormat{format.SampleIBM, format.SampleInt32, format.SampleInt16, format.SampleIEEE}
	orders := []ByteOrder{ByteOrderBig, ByteOrderLittle}

	for _, f := range formats {
		for _, o := range orders {
			t.Run(f.String()+"/"+o.String(), func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "rt.sgy")
				writeTraces(t, path, format.DialectStandard, 7, 25,
					WithWriterSampleFormat(f), WithWriterByteOrder(o), WithWriterBufferTraces(3))

				r := openReader(t, path, format.DialectStandard)
				require.Equal(t, f, r.SampleFormat())
				require.Equal(t, o.String(), endian.Name(r.ByteOrder()))
				require.Equal(t, 7, r.NumTraces())

				samples := make([]float32, 25)
				for i := range 7 {
					ok, err := r.NextTrace(samples)
					require.NoError(t, err)
					require.True(t, ok)
					require.Equal(t, testSamples(i, 25), samples)

					v, err := r.HeaderByName("nsamp")
					require.NoError(t, err)
					require.Equal(t, int32(25), v.Int())
				}
			})
		}
	}
}

func TestReaderWriter_ScaledHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaled.sgy")

	w, err := NewWriter(path, nil, WithSampleCount(4), WithSampleInterval(1000))
	require.NoError(t, err)
	require.NoError(t, w.Initialize())

	v := w.Values().At(w.HeaderMap().Index("scalar_coord"))
	require.Equal(t, int32(1), v.Int(), "scalars default to one")

	require.NoError(t, w.Set("scalar_coord", value.OfInt(-100)))
	require.NoError(t, w.Set("sou_x", value.OfDouble(123.45)))
	require.ErrorIs(t, w.Set("nope", value.OfInt(1)), errs.ErrUnknownHeader)
	require.NoError(t, w.WriteNextTrace([]float32{1, 2}))
	require.NoError(t, w.Close())

	r := openReader(t, path, format.DialectStandard)
	ok, err := r.NextTrace(nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float32{1, 2, 0, 0}, r.NextTraceSamples(), "short traces are zero-padded")

	got, err := r.HeaderByName("sou_x")
	require.NoError(t, err)
	require.InDelta(t, 123.45, got.Double(), 1e-9)

	require.NoError(t, r.SetHeaderToPeek("sou_x"))
	got, err = r.PeekHeaderValue(0)
	require.NoError(t, err)
	require.InDelta(t, 123.45, got.Double(), 1e-9)

	raw := openReader(t, path, format.DialectStandard, WithAutoScale(false))
	ok, err = raw.NextTrace(nil)
	require.NoError(t, err)
	require.True(t, ok)
	got, err = raw.HeaderByName("sou_x")
	require.NoError(t, err)
	require.Equal(t, 12345.0, got.Double())
}

func TestReaderWriter_PSEGY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station.psegy")
	const ns = 40000

	w, err := NewWriter(path, hdrmap.MustNew(format.DialectPSEGY),
		WithSampleCount(ns), WithSampleInterval(500), WithWriterSampleFormat(format.SampleInt16))
	require.NoError(t, err)
	require.NoError(t, w.Initialize())
	require.Nil(t, w.TextHeader())
	require.NoError(t, w.SetString(w.HeaderMap().Index("station_name"), "STA01"))
	for i := range 2 {
		require.NoError(t, w.WriteNextTrace(testSamples(i, ns)))
	}
	require.NoError(t, w.Close())

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(2*(section.TraceHeaderSize+2*ns)), st.Size())

	r := openReader(t, path, format.DialectPSEGY)
	require.Equal(t, ns, r.NumSamples())
	require.Equal(t, 0.5, r.SampleIntMS())
	require.Equal(t, format.SampleInt16, r.SampleFormat())
	require.Equal(t, 2, r.NumTraces())

	samples := make([]float32, ns)
	for i := range 2 {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, testSamples(i, ns), samples)
	}

	v, err := r.HeaderByName("nsamp")
	require.NoError(t, err)
	require.Equal(t, int32(32767), v.Int())
	v, err = r.HeaderByName("num_samps")
	require.NoError(t, err)
	require.Equal(t, int32(ns), v.Int())
	v, err = r.HeaderByName("station_name")
	require.NoError(t, err)
	require.Equal(t, "STA01", v.Str())
}

func TestPSEGYGeometry(t *testing.T) {
	be := endian.GetBigEndianEngine()
	tests := []struct {
		name       string
		ns16, dt16 uint16
		ns32, dt32 int32
		wantNS     int
		wantDT     int
	}{
		{"short fields", 1000, 4000, 99, 99, 1000, 4000},
		{"upper bound", 32766, 1, 99, 99, 32766, 1},
		{"overflow marker", 32767, 32767, 70000, 125000, 70000, 125000},
		{"zero", 0, 0, 12, 250, 12, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := make([]byte, section.TraceHeaderSize)
			be.PutUint16(hdr[offNumSamples:], tt.ns16)
			be.PutUint16(hdr[offSampleInterval:], tt.dt16)
			be.PutUint32(hdr[offPSEGYNumSamps:], uint32(tt.ns32))
			be.PutUint32(hdr[offPSEGYSampRate:], uint32(tt.dt32))

			ns, dt := psegyGeometry(hdr, be)
			require.Equal(t, tt.wantNS, ns)
			require.Equal(t, tt.wantDT, dt)
		})
	}
}

func TestReader_ResidualBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "residual.sgy")
	writeTraces(t, path, format.DialectStandard, 3, 10)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 17))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r := openReader(t, path, format.DialectStandard)
	require.Equal(t, 3, r.NumTraces())
	require.Equal(t, int64(17), r.ResidualBytes())

	n := 0
	for {
		ok, err := r.NextTrace(nil)
		require.NoError(t, err)
		if !ok {
			break
		}
		n++
	}
	require.Equal(t, 3, n)

	strict, err := NewReader(path, nil, WithStrictSize())
	require.NoError(t, err)
	defer strict.Close()
	err = strict.Initialize()
	require.ErrorIs(t, err, errs.ErrResidualBytes)
	require.ErrorIs(t, err, errs.ErrCorruptFile)
}

func TestReader_MoveToTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "move.sgy")
	writeTraces(t, path, format.DialectStandard, 10, 5)

	r := openReader(t, path, format.DialectStandard, WithBufferTraces(4))
	readSeq := func() []int32 {
		var seq []int32
		for {
			ok, err := r.NextTrace(nil)
			require.NoError(t, err)
			if !ok {
				return seq
			}
			v, err := r.HeaderByName("trc_seq_line")
			require.NoError(t, err)
			seq = append(seq, v.Int())
		}
	}

	require.NoError(t, r.MoveToTrace(4, 3))
	require.Equal(t, 4, r.CurrentTraceIndex())
	require.Equal(t, []int32{5, 6, 7, 8, 9, 10}, readSeq())

	// The count bounds the next refill only.
	require.NoError(t, r.MoveToTrace(1, 2))
	for range 2 {
		ok, err := r.NextTrace(nil)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 2, r.arena.Fill())
	}
	ok, err := r.NextTrace(nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, r.arena.Fill())
	require.Equal(t, []int32{5, 6, 7, 8, 9, 10}, readSeq())

	require.NoError(t, r.MoveToTrace(8, 0))
	require.Equal(t, []int32{9, 10}, readSeq())

	require.NoError(t, r.MoveToTrace(10, 0))
	require.Empty(t, readSeq())

	require.ErrorIs(t, r.MoveToTrace(11, 0), errs.ErrTraceOutOfRange)
	require.ErrorIs(t, r.MoveToTrace(-1, 0), errs.ErrTraceOutOfRange)
}

func TestReader_ExtendedTextHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ext.sgy")
	bh := section.NewBinaryHeader(3, 1000, format.SampleIEEE)
	bh.NumExtTextHeaders = 2
	ext := []*section.TextHeader{
		section.NewTextHeader([]string{"EXT ONE"}, true),
		section.NewTextHeader([]string{"EXT TWO"}, true),
	}
	buildSEGY(t, path, endian.GetBigEndianEngine(), bh, ext, [][]float32{{7, 8, 9}}, nil)

	r := openReader(t, path, format.DialectStandard)
	require.Len(t, r.ExtTextHeaders(), 2)
	require.Equal(t, "EXT TWO", r.ExtTextHeaders()[1].Lines()[0])
	require.Equal(t, 1, r.NumTraces())

	samples := make([]float32, 3)
	ok, err := r.NextTrace(samples)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float32{7, 8, 9}, samples)

	r.FreeFileHeaders()
	require.Nil(t, r.TextHeader())
	require.Nil(t, r.BinaryHeader())
	require.Nil(t, r.ExtTextHeaders())
}

func TestReader_SampleCountFromFirstTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nons.sgy")
	be := endian.GetBigEndianEngine()
	bh := section.NewBinaryHeader(0, 0, format.SampleIEEE)
	traces := [][]float32{{1, 2, 3, 4, 5, 6}, {6, 5, 4, 3, 2, 1}}
	buildSEGY(t, path, be, bh, nil, traces, func(_ int, hdr []byte) {
		be.PutUint16(hdr[offNumSamples:], 6)
		be.PutUint16(hdr[offSampleInterval:], 250)
	})

	r := openReader(t, path, format.DialectStandard)
	require.Equal(t, 6, r.NumSamples())
	require.Equal(t, 250, r.SampleIntervalUS())
	require.Equal(t, 2, r.NumTraces())

	forced := openReader(t, path, format.DialectStandard, WithNumSamples(12), WithSampleIntervalUS(100))
	require.Equal(t, 12, forced.NumSamples())
	require.Equal(t, 1, forced.NumTraces())
	require.Equal(t, 0.1, forced.SampleIntMS())
}

func TestReader_UsageErrors(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.sgy"), nil)
	require.ErrorIs(t, err, errs.ErrOpenFailure)

	_, err = NewReader("unused", nil, WithBufferTraces(MaxBufferTraces+1))
	require.ErrorIs(t, err, errs.ErrUsage)

	path := filepath.Join(t.TempDir(), "usage.sgy")
	writeTraces(t, path, format.DialectStandard, 3, 4)

	r, err := NewReader(path, nil, WithRandomAccess(false))
	require.NoError(t, err)

	_, err = r.NextTrace(nil)
	require.ErrorIs(t, err, errs.ErrNotInitialized)
	require.ErrorIs(t, r.MoveToTrace(0, 0), errs.ErrNotInitialized)

	require.NoError(t, r.Initialize())
	require.ErrorIs(t, r.Initialize(), errs.ErrAlreadyInitialized)

	_, err = r.NextTrace(make([]float32, 2))
	require.ErrorIs(t, err, errs.ErrUsage)

	_, err = r.PeekHeaderValue(0)
	require.ErrorIs(t, err, errs.ErrPeekNotSet)
	require.ErrorIs(t, r.SetHeaderToPeek("no_such_header"), errs.ErrUnknownHeader)
	require.NoError(t, r.SetHeaderToPeek("ffid"))
	_, err = r.PeekHeaderValue(0)
	require.ErrorIs(t, err, errs.ErrRandomAccessDisabled)
	require.ErrorIs(t, r.MoveToTrace(0, 0), errs.ErrRandomAccessDisabled)

	_, err = r.HeaderByName("no_such_header")
	require.ErrorIs(t, err, errs.ErrUnknownHeader)
	_, err = r.Header(r.HeaderMap().Len())
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	require.ErrorIs(t, r.DumpCurrentHeader(&bytes.Buffer{}), errs.ErrUsage)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	_, err = r.NextTrace(nil)
	require.ErrorIs(t, err, errs.ErrClosed)
	require.True(t, errors.Is(r.Initialize(), errs.ErrUsage))
}

func TestReader_HeaderDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "def.sgy")
	writeTraces(t, path, format.DialectStandard, 2, 4)

	def := filepath.Join(dir, "headers.txt")
	require.NoError(t, os.WriteFile(def, []byte("# custom\n1 int int trace_no Trace counter\n"), 0o644))

	r := openReader(t, path, format.DialectStandard, WithHeaderDefinition(def))
	require.False(t, r.HeaderMap().Contains("trc_seq_line"))

	ok, err := r.NextTrace(nil)
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.HeaderByName("trace_no")
	require.NoError(t, err)
	require.Equal(t, int32(1), v.Int())

	bad, err := NewReader(path, nil, WithHeaderDefinition(filepath.Join(dir, "missing.txt")))
	require.NoError(t, err)
	defer bad.Close()
	require.ErrorIs(t, bad.Initialize(), errs.ErrOpenFailure)
}

func TestReader_Dump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.sgy")
	writeTraces(t, path, format.DialectStandard, 2, 4, WithTextHeaderLines("C 1 DUMP TEST"))

	r := openReader(t, path, format.DialectStandard)

	var out bytes.Buffer
	require.NoError(t, r.Dump(&out))
	require.Contains(t, out.String(), "IEEE")
	require.Contains(t, out.String(), "C 1 DUMP TEST")
	require.Contains(t, out.String(), "3221-3222")

	ok, err := r.NextTrace(nil)
	require.NoError(t, err)
	require.True(t, ok)

	out.Reset()
	require.NoError(t, r.DumpCurrentHeader(&out))
	require.Contains(t, out.String(), "trc_seq_line")

	out.Reset()
	require.NoError(t, r.DumpRawHeader(&out))
	require.Contains(t, out.String(), "int32")
}

func TestReader_Metrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.sgy")
	writeTraces(t, path, format.DialectStandard, 3, 4)

	reg := prometheus.NewRegistry()
	r := openReader(t, path, format.DialectStandard, WithMetrics(reg))
	for {
		ok, err := r.NextTrace(nil)
		require.NoError(t, err)
		if !ok {
			break
		}
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	var read float64
	for _, mf := range families {
		if mf.GetName() == "segy_traces_read_total" {
			for _, m := range mf.GetMetric() {
				read += m.GetCounter().GetValue()
			}
		}
	}
	require.Equal(t, 3.0, read)
}

func TestScanHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.sgy")
	writeTraces(t, path, format.DialectStandard, 6, 4)

	r := openReader(t, path, format.DialectStandard)
	vals, err := ScanHeader(r, "trc_seq_line")
	require.NoError(t, err)
	require.Len(t, vals, 6)
	for i, v := range vals {
		require.Equal(t, int32(i+1), v.Int())
	}

	ok, err := r.NextTrace(nil)
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.HeaderByName("trc_seq_line")
	require.NoError(t, err)
	require.Equal(t, int32(1), v.Int())

	_, err = ScanHeader(r, "nope")
	require.ErrorIs(t, err, errs.ErrUnknownHeader)
}

func TestReader_MoveToTraceCountDoesNotEndStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "five.sgy")
	writeTraces(t, path, format.DialectStandard, 5, 4)

	r := openReader(t, path, format.DialectStandard)
	require.NoError(t, r.MoveToTrace(0, 1))

	require.NoError(t, r.SetHeaderToPeek("trc_seq_line"))
	read := 0
	for {
		ok, err := r.NextTrace(nil)
		require.NoError(t, err)
		if !ok {
			break
		}
		read++

		v, ok, err := r.PeekNextHeaderValue()
		require.NoError(t, err)
		require.Equal(t, read < 5, ok)
		if ok {
			require.Equal(t, int32(read+1), v.Int())
		}
	}
	require.Equal(t, 5, read)
}

func TestReader_PeekSelectedBeforeInitialize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peekdef.sgy")

	w, err := NewWriter(path, nil, WithSampleCount(4), WithSampleInterval(1000))
	require.NoError(t, err)
	require.NoError(t, w.Initialize())
	for i := range 3 {
		require.NoError(t, w.Set("ffid", value.OfInt(int32(100+i))))
		require.NoError(t, w.Set("chan", value.OfInt(int32(i+1))))
		require.NoError(t, w.WriteNextTrace(make([]float32, 4)))
	}
	require.NoError(t, w.Close())

	// A string field over bytes 1-8 replaces the two sequence numbers and
	// shifts the index of every later field.
	def := filepath.Join(dir, "headers.txt")
	require.NoError(t, os.WriteFile(def, []byte("1 string8 string tag Line tag\n"), 0o644))

	r, err := NewReader(path, nil, WithHeaderDefinition(def))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	require.NoError(t, r.SetHeaderToPeek("ffid"))
	require.NoError(t, r.Initialize())

	v, err := r.PeekHeaderValue(1)
	require.NoError(t, err)
	require.Equal(t, int32(101), v.Int())

	require.ErrorIs(t, r.SetHeaderToPeek("trc_seq_line"), errs.ErrUnknownHeader)

	plain, err := NewReader(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = plain.Close() })

	require.NoError(t, plain.SetHeaderToPeek("tag"))
	require.NoError(t, plain.Initialize())
	_, err = plain.PeekHeaderValue(0)
	require.ErrorIs(t, err, errs.ErrUnknownHeader)
}
