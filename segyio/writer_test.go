package segyio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/section"
)

func TestWriter_FileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.sgy")

	tpl := section.NewBinaryHeader(0, 0, format.SampleUnknown)
	tpl.LineNumber = 42
	w, err := NewWriter(path, nil,
		WithBinaryHeaderTemplate(tpl),
		WithSampleCount(3),
		WithSampleInterval(4000),
		WithWriterSampleFormat(format.SampleIBM),
		WithTextEBCDIC(false),
		WithTextHeaderLines("C 1 LAYOUT"),
	)
	require.NoError(t, err)
	require.NoError(t, w.Initialize())
	require.Equal(t, format.SampleIBM, w.SampleFormat())
	require.False(t, w.TextHeader().IsEBCDIC())
	require.NoError(t, w.WriteNextTrace([]float32{1, -1, 0.5}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, section.FileHeaderSize+section.TraceHeaderSize+3*4)
	require.Equal(t, "C 1 LAYOUT", string(data[:10]))

	be := endian.GetBigEndianEngine()
	bh, err := section.ParseBinaryHeader(data[section.TextHeaderSize:], be)
	require.NoError(t, err)
	require.Equal(t, int32(42), bh.LineNumber)
	require.Equal(t, uint16(3), bh.NumSamples)
	require.Equal(t, uint16(4000), bh.SampleInterval)
	require.Equal(t, format.SampleIBM, bh.SampleFormat)

	hdr := data[section.FileHeaderSize:]
	require.Equal(t, uint16(1), be.Uint16(hdr[offTraceID:]))
	require.Equal(t, uint16(1), be.Uint16(hdr[offVerticalSum:]))
	require.Equal(t, uint16(3), be.Uint16(hdr[offNumSamples:]))
	require.Equal(t, uint16(4000), be.Uint16(hdr[offSampleInterval:]))
	require.Equal(t, uint16(1), be.Uint16(hdr[70:]), "coordinate scalar")

	samples := hdr[section.TraceHeaderSize:]
	require.Equal(t, []byte{0x41, 0x10, 0x00, 0x00}, samples[0:4])
	require.Equal(t, []byte{0xC1, 0x10, 0x00, 0x00}, samples[4:8])
	require.Equal(t, []byte{0x40, 0x80, 0x00, 0x00}, samples[8:12])
}

func TestWriter_SU(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.su")
	writeTraces(t, path, format.DialectSU, 4, 6, WithWriterByteOrder(ByteOrderBig))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(4*(section.TraceHeaderSize+6*4)), st.Size())

	r := openReader(t, path, format.DialectSU, WithBigEndian())
	require.Equal(t, 6, r.NumSamples())
	require.Equal(t, 2000, r.SampleIntervalUS())

	samples := make([]float32, 6)
	for i := range 4 {
		ok, err := r.NextTrace(samples)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, testSamples(i, 6), samples)

		v, err := r.HeaderByName("trid")
		require.NoError(t, err)
		require.Equal(t, int32(1), v.Int())
	}

	w, err := NewWriter(filepath.Join(dir, "ibm.su"), hdrmap.MustNew(format.DialectSU),
		WithSampleCount(6), WithSampleInterval(2000), WithWriterSampleFormat(format.SampleIBM))
	require.NoError(t, err)
	defer w.Close()
	require.ErrorIs(t, w.Initialize(), errs.ErrUnsupportedSampleFormat)
}

func TestWriter_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewWriter(filepath.Join(dir, "a.sgy"), nil)
	require.ErrorIs(t, err, errs.ErrInvalidSampleCount)

	_, err = NewWriter(filepath.Join(dir, "b.sgy"), nil, WithSampleCount(10))
	require.ErrorIs(t, err, errs.ErrInvalidSampleInterval)

	_, err = NewWriter(filepath.Join(dir, "no", "such", "dir.sgy"), nil, WithSampleCount(10), WithSampleInterval(1000))
	require.ErrorIs(t, err, errs.ErrOpenFailure)

	_, err = NewWriter(filepath.Join(dir, "c.sgy"), nil,
		WithSampleCount(10), WithSampleInterval(1000), WithWriterSampleFormat(format.SampleFormat(4)))
	require.ErrorIs(t, err, errs.ErrUnsupportedSampleFormat)

	w, err := NewWriter(filepath.Join(dir, "d.sgy"), nil, WithSampleCount(4), WithSampleInterval(1000))
	require.NoError(t, err)
	require.ErrorIs(t, w.WriteNextTrace(nil), errs.ErrNotInitialized)
	require.ErrorIs(t, w.SetInt(0, 1), errs.ErrNotInitialized)
	require.Nil(t, w.Values())

	require.NoError(t, w.Initialize())
	require.ErrorIs(t, w.Initialize(), errs.ErrAlreadyInitialized)
	require.ErrorIs(t, w.WriteNextTrace(make([]float32, 5)), errs.ErrTooManySamples)
	require.ErrorIs(t, w.SetInt(w.HeaderMap().Len(), 1), errs.ErrIndexOutOfRange)
	require.NoError(t, w.Close())
	require.ErrorIs(t, w.WriteNextTrace(nil), errs.ErrClosed)

	big, err := NewWriter(filepath.Join(dir, "e.sgy"), nil, WithSampleCount(70000), WithSampleInterval(1000))
	require.NoError(t, err)
	defer big.Close()
	require.ErrorIs(t, big.Initialize(), errs.ErrInvalidSampleCount)

	ps, err := NewWriter(filepath.Join(dir, "f.psegy"), hdrmap.MustNew(format.DialectPSEGY),
		WithSampleCount(10), WithSampleInterval(1000), WithWriterSampleFormat(format.SampleIEEE))
	require.NoError(t, err)
	defer ps.Close()
	require.ErrorIs(t, ps.Initialize(), errs.ErrUnsupportedSampleFormat)
}

func TestWriter_FlushesOnFullBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flush.sgy")

	w, err := NewWriter(path, nil, WithSampleCount(2), WithSampleInterval(1000), WithWriterBufferTraces(2))
	require.NoError(t, err)
	require.NoError(t, w.Initialize())

	size := func() int64 {
		st, err := os.Stat(path)
		require.NoError(t, err)
		return st.Size()
	}
	traceSize := int64(section.TraceHeaderSize + 2*4)

	require.NoError(t, w.WriteNextTrace([]float32{1, 2}))
	require.Equal(t, int64(section.FileHeaderSize), size())
	require.NoError(t, w.WriteNextTrace([]float32{3, 4}))
	require.Equal(t, section.FileHeaderSize+2*traceSize, size())
	require.NoError(t, w.WriteNextTrace([]float32{5, 6}))
	require.NoError(t, w.Flush())
	require.Equal(t, section.FileHeaderSize+3*traceSize, size())
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
	require.Equal(t, section.FileHeaderSize+3*traceSize, size())
}

func TestWriterConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  WriterConfig
		err  error
	}{
		{"valid", WriterConfig{NumSamples: 1, SampleIntervalUS: 1}, nil},
		{"no samples", WriterConfig{SampleIntervalUS: 1}, errs.ErrInvalidSampleCount},
		{"no interval", WriterConfig{NumSamples: 1}, errs.ErrInvalidSampleInterval},
		{"bad order", WriterConfig{NumSamples: 1, SampleIntervalUS: 1, ByteOrder: 9}, errs.ErrUsage},
		{"big buffer", WriterConfig{NumSamples: 1, SampleIntervalUS: 1, BufferTraces: MaxBufferTraces + 1}, errs.ErrUsage},
		{"text lines", WriterConfig{NumSamples: 1, SampleIntervalUS: 1, TextLines: make([]string, 41)}, errs.ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBufferCapacity(t *testing.T) {
	require.Equal(t, DefaultBufferBytes/1240, bufferCapacity(0, 1240, -1))
	require.Equal(t, MaxBufferTraces, bufferCapacity(0, 244, -1))
	require.Equal(t, 1, bufferCapacity(0, 8*1024*1024, -1))
	require.Equal(t, 7, bufferCapacity(16, 1000, 7))
	require.Equal(t, 1, bufferCapacity(16, 1000, 0))
	require.Equal(t, 16, bufferCapacity(16, 1000, -1))
}

func TestParseByteOrder(t *testing.T) {
	for _, o := range []ByteOrder{ByteOrderAuto, ByteOrderBig, ByteOrderLittle, ByteOrderNative} {
		got, ok := ParseByteOrder(o.String())
		require.True(t, ok)
		require.Equal(t, o, got)
	}
	_, ok := ParseByteOrder("middle")
	require.False(t, ok)

	for _, e := range []TextEncoding{TextAuto, TextEBCDIC, TextASCII} {
		got, ok := ParseTextEncoding(e.String())
		require.True(t, ok)
		require.Equal(t, e, got)
	}
	_, ok = ParseTextEncoding("utf16")
	require.False(t, ok)
}
