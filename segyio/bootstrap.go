package segyio

import (
	"errors"
	"fmt"
	"io"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/section"
)

// Byte offsets of the trace header fields read before the header map is in use.
const (
	offNumSamples     = 114 // 2-byte sample count
	offSampleInterval = 116 // 2-byte sample interval [us]
	offPSEGYSampRate  = 200 // PASSCAL 4-byte sample interval [us]
	offPSEGYDataForm  = 204 // PASSCAL data format, 0=int16 1=int32
	offPSEGYNumSamps  = 228 // PASSCAL 4-byte sample count

	// psegyMaxShort is the largest 2-byte count PASSCAL trusts; larger
	// counts are stored in the 4-byte fields.
	psegyMaxShort = 32766
)

func (r *Reader) bootstrap() error {
	switch d := r.m.Dialect(); d {
	case format.DialectStandard, format.DialectOBC, format.DialectSEND, format.DialectARMSS,
		format.DialectNodeOld, format.DialectNode, format.DialectNone:
		return r.bootstrapStandard()
	case format.DialectSU, format.DialectSUOnly, format.DialectSUBoth:
		return r.bootstrapSU()
	case format.DialectPSEGY:
		return r.bootstrapPSEGY()
	default:
		return fmt.Errorf("%w: %d", errs.ErrUnknownDialect, d)
	}
}

// readAt fills buf from offset off without moving the file position. A
// source of unknown size is read sequentially instead, so off must be the
// number of bytes consumed so far.
func (r *Reader) readAt(buf []byte, off int64) error {
	if r.fileSize < 0 {
		return r.readStream(buf, off)
	}

	n, err := r.file.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %d of %d bytes at offset %d", errs.ErrShortRead, n, len(buf), off)
	}

	return fmt.Errorf("%w: %w", errs.ErrShortRead, err)
}

func (r *Reader) readStream(buf []byte, off int64) error {
	if off != r.streamPos {
		return fmt.Errorf("%w: cannot read offset %d at stream position %d", errs.ErrUnknownFileSize, off, r.streamPos)
	}

	n, err := io.ReadFull(r.file, buf)
	r.streamPos += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %d of %d bytes at offset %d: %w", errs.ErrShortRead, n, len(buf), off, err)
	}

	return nil
}

func (r *Reader) parseText(data []byte) (*section.TextHeader, error) {
	switch r.cfg.TextEncoding {
	case TextEBCDIC:
		return section.ParseTextHeaderAs(data, true)
	case TextASCII:
		return section.ParseTextHeaderAs(data, false)
	default:
		return section.ParseTextHeader(data)
	}
}

func (r *Reader) bootstrapStandard() error {
	buf := make([]byte, section.FileHeaderSize)
	if err := r.readAt(buf, 0); err != nil {
		return err
	}

	text, err := r.parseText(buf[:section.TextHeaderSize])
	if err != nil {
		return err
	}

	bin := buf[section.TextHeaderSize:]
	engine, fixed := r.cfg.ByteOrder.engine()
	if !fixed {
		var ok bool
		engine, ok = section.DetectByteOrder(bin)
		if !ok && r.cfg.SampleFormat == format.SampleUnknown {
			plog.Warningf("%s: no valid sample format code in either byte order, assuming big-endian", r.path)
		} else if !endian.IsBigEndian(engine) {
			plog.Infof("%s: detected little-endian binary header", r.path)
		}
	}

	bh, err := section.ParseBinaryHeader(bin, engine)
	if err != nil {
		return err
	}

	ext := make([]*section.TextHeader, bh.ExtTextHeaders())
	for i := range ext {
		data := make([]byte, section.TextHeaderSize)
		if err := r.readAt(data, int64(section.FileHeaderSize+i*section.TextHeaderSize)); err != nil {
			return err
		}
		if ext[i], err = section.ParseTextHeaderAs(data, text.IsEBCDIC()); err != nil {
			return err
		}
	}

	r.engine = engine
	r.text = text
	r.binary = bh
	r.extText = ext
	r.dataOffset = int64(section.FileHeaderSize + len(ext)*section.TextHeaderSize)
	r.numSamples = int(bh.NumSamples)
	r.sampleIntervalUS = int(bh.SampleInterval)
	r.sampleFormat = bh.SampleFormat

	if r.numSamples == 0 && r.cfg.NumSamples == 0 {
		if err := r.samplesFromFirstTrace(); err != nil {
			return err
		}
	}
	r.applyOverrides()

	if !r.sampleFormat.Valid() {
		return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, r.sampleFormat)
	}

	return nil
}

// samplesFromFirstTrace takes the sample count, and a missing sample
// interval, from the first trace header.
func (r *Reader) samplesFromFirstTrace() error {
	if r.fileSize < 0 {
		return fmt.Errorf("%w: binary header has no sample count and the first trace cannot be peeked: %w",
			errs.ErrInvalidSampleCount, errs.ErrUnknownFileSize)
	}

	hdr := make([]byte, section.TraceHeaderSize)
	if err := r.readAt(hdr, r.dataOffset); err != nil {
		return fmt.Errorf("%w: binary header has no sample count and the first trace is unreadable: %w",
			errs.ErrInvalidSampleCount, err)
	}

	r.numSamples = int(r.engine.Uint16(hdr[offNumSamples:]))
	if r.sampleIntervalUS == 0 {
		r.sampleIntervalUS = int(r.engine.Uint16(hdr[offSampleInterval:]))
	}
	plog.Infof("%s: binary header has no sample count, using %d from the first trace", r.path, r.numSamples)

	return nil
}

func (r *Reader) applyOverrides() {
	if r.cfg.NumSamples > 0 {
		r.numSamples = r.cfg.NumSamples
	}
	if r.cfg.SampleIntervalUS > 0 {
		r.sampleIntervalUS = r.cfg.SampleIntervalUS
	}
	if r.cfg.SampleFormat != format.SampleUnknown {
		r.sampleFormat = r.cfg.SampleFormat
	}
}

// synthesizeBinaryHeader builds the binary header of a file that has none.
func (r *Reader) synthesizeBinaryHeader() {
	bh := section.NewBinaryHeader(r.numSamples, r.sampleIntervalUS, r.sampleFormat)
	bh.Revision = section.RevisionZero
	r.binary = bh
}

func (r *Reader) bootstrapSU() error {
	r.cfg.RandomAccess = true
	if r.fileSize < 0 {
		return fmt.Errorf("%w: seismic unix files need a seekable file", errs.ErrUnknownFileSize)
	}

	hdr := make([]byte, section.TraceHeaderSize)
	if err := r.readAt(hdr, 0); err != nil {
		return err
	}

	r.sampleFormat = format.SampleIEEE
	if r.cfg.SampleFormat != format.SampleUnknown {
		r.sampleFormat = r.cfg.SampleFormat
	}

	engine, fixed := r.cfg.ByteOrder.engine()
	if !fixed {
		engine = r.detectSUByteOrder(hdr)
	}

	r.engine = engine
	r.dataOffset = 0
	r.numSamples = int(engine.Uint16(hdr[offNumSamples:]))
	r.sampleIntervalUS = int(engine.Uint16(hdr[offSampleInterval:]))
	r.applyOverrides()
	r.synthesizeBinaryHeader()

	return nil
}

// detectSUByteOrder picks the byte order whose sample count divides the file
// into whole traces, preferring the native order.
func (r *Reader) detectSUByteOrder(hdr []byte) endian.EndianEngine {
	native := endian.GetNativeEngine()
	size := int64(r.sampleFormat.Size())
	if r.cfg.NumSamples > 0 {
		return native
	}

	for _, engine := range []endian.EndianEngine{native, endian.Opposite(native)} {
		ns := int64(engine.Uint16(hdr[offNumSamples:]))
		if ns > 0 && r.fileSize%(section.TraceHeaderSize+ns*size) == 0 {
			if engine != native {
				plog.Infof("%s: detected %s-endian seismic unix file", r.path, endian.Name(engine))
			}
			return engine
		}
	}
	plog.Warningf("%s: sample count fits no byte order, assuming %s-endian", r.path, endian.Name(native))

	return native
}

// psegyGeometry applies the PASSCAL rule to the first trace header: the
// 2-byte sample count and interval are used when they lie in 1..32766,
// otherwise the 4-byte fields.
func psegyGeometry(hdr []byte, engine endian.EndianEngine) (numSamples, intervalUS int) {
	numSamples = int(engine.Uint16(hdr[offNumSamples:]))
	if numSamples < 1 || numSamples > psegyMaxShort {
		numSamples = int(int32(engine.Uint32(hdr[offPSEGYNumSamps:])))
	}
	intervalUS = int(engine.Uint16(hdr[offSampleInterval:]))
	if intervalUS < 1 || intervalUS > psegyMaxShort {
		intervalUS = int(int32(engine.Uint32(hdr[offPSEGYSampRate:])))
	}

	return numSamples, intervalUS
}

// psegyFormat maps the PASSCAL data format code to a sample format.
func psegyFormat(code uint16) (format.SampleFormat, bool) {
	switch code {
	case 0:
		return format.SampleInt16, true
	case 1:
		return format.SampleInt32, true
	default:
		return format.SampleUnknown, false
	}
}

func (r *Reader) bootstrapPSEGY() error {
	if r.fileSize < 0 {
		return fmt.Errorf("%w: PASSCAL files need a seekable file", errs.ErrUnknownFileSize)
	}

	hdr := make([]byte, section.TraceHeaderSize)
	if err := r.readAt(hdr, 0); err != nil {
		return err
	}

	engine, fixed := r.cfg.ByteOrder.engine()
	if !fixed {
		engine = endian.GetBigEndianEngine()
		for _, e := range []endian.EndianEngine{engine, endian.GetLittleEndianEngine()} {
			_, ok := psegyFormat(e.Uint16(hdr[offPSEGYDataForm:]))
			if ns, _ := psegyGeometry(hdr, e); ok && ns > 0 {
				engine = e
				break
			}
		}
	}

	r.engine = engine
	r.dataOffset = 0
	r.numSamples, r.sampleIntervalUS = psegyGeometry(hdr, engine)
	code := engine.Uint16(hdr[offPSEGYDataForm:])
	f, ok := psegyFormat(code)
	r.sampleFormat = f
	r.applyOverrides()

	if !ok && r.cfg.SampleFormat == format.SampleUnknown {
		return fmt.Errorf("%w: PASSCAL data format %d", errs.ErrUnsupportedSampleFormat, code)
	}
	r.synthesizeBinaryHeader()

	return nil
}
