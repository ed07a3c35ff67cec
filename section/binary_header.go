package section

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
)

// BinaryHeader is the 400-byte SEG-Y binary file header.
//
// Bytes 60-299 and 306-399 are unassigned and written as zeros.
type BinaryHeader struct {
	JobID                int32               // byte offset 0-3
	LineNumber           int32               // byte offset 4-7
	ReelNumber           int32               // byte offset 8-11
	TracesPerEnsemble    int16               // byte offset 12-13
	AuxTracesPerEnsemble int16               // byte offset 14-15
	SampleInterval       uint16              // byte offset 16-17, microseconds
	SampleIntervalOrig   uint16              // byte offset 18-19, microseconds
	NumSamples           uint16              // byte offset 20-21
	NumSamplesOrig       uint16              // byte offset 22-23
	SampleFormat         format.SampleFormat // byte offset 24-25
	EnsembleFold         int16               // byte offset 26-27
	TraceSorting         int16               // byte offset 28-29
	VerticalSum          int16               // byte offset 30-31
	SweepFreqStart       int16               // byte offset 32-33
	SweepFreqEnd         int16               // byte offset 34-35
	SweepLength          int16               // byte offset 36-37
	SweepType            int16               // byte offset 38-39
	SweepChannel         int16               // byte offset 40-41
	SweepTaperStart      int16               // byte offset 42-43
	SweepTaperEnd        int16               // byte offset 44-45
	TaperType            int16               // byte offset 46-47
	Correlated           int16               // byte offset 48-49
	BinaryGainRecovered  int16               // byte offset 50-51
	AmplitudeRecovery    int16               // byte offset 52-53
	MeasurementSystem    int16               // byte offset 54-55, 1=meters, 2=feet
	ImpulsePolarity      int16               // byte offset 56-57
	VibratoryPolarity    int16               // byte offset 58-59
	Revision             uint16              // byte offset 300-301
	FixedLength          int16               // byte offset 302-303
	NumExtTextHeaders    int16               // byte offset 304-305
}

// NewBinaryHeader creates a rev1 binary header for fixed-length traces.
func NewBinaryHeader(numSamples int, sampleIntervalUS int, f format.SampleFormat) *BinaryHeader {
	return &BinaryHeader{
		JobID:              1,
		LineNumber:         1,
		ReelNumber:         1,
		TracesPerEnsemble:  1,
		SampleInterval:     uint16(sampleIntervalUS),
		SampleIntervalOrig: uint16(sampleIntervalUS),
		NumSamples:         uint16(numSamples),
		NumSamplesOrig:     uint16(numSamples),
		SampleFormat:       f,
		EnsembleFold:       1,
		MeasurementSystem:  1,
		Revision:           RevisionOne,
		FixedLength:        1,
	}
}

// Parse parses the header from a byte slice in the given byte order.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 400 bytes)
//   - engine: Byte order of the file
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 400 bytes
func (h *BinaryHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) != BinaryHeaderSize {
		return fmt.Errorf("%w: binary header has %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	i16 := func(off int) int16 { return int16(engine.Uint16(data[off : off+2])) }

	h.JobID = int32(engine.Uint32(data[0:4]))
	h.LineNumber = int32(engine.Uint32(data[4:8]))
	h.ReelNumber = int32(engine.Uint32(data[8:12]))
	h.TracesPerEnsemble = i16(12)
	h.AuxTracesPerEnsemble = i16(14)
	h.SampleInterval = engine.Uint16(data[16:18])
	h.SampleIntervalOrig = engine.Uint16(data[18:20])
	h.NumSamples = engine.Uint16(data[20:22])
	h.NumSamplesOrig = engine.Uint16(data[22:24])
	h.SampleFormat = format.SampleFormat(engine.Uint16(data[24:26]))
	h.EnsembleFold = i16(26)
	h.TraceSorting = i16(28)
	h.VerticalSum = i16(30)
	h.SweepFreqStart = i16(32)
	h.SweepFreqEnd = i16(34)
	h.SweepLength = i16(36)
	h.SweepType = i16(38)
	h.SweepChannel = i16(40)
	h.SweepTaperStart = i16(42)
	h.SweepTaperEnd = i16(44)
	h.TaperType = i16(46)
	h.Correlated = i16(48)
	h.BinaryGainRecovered = i16(50)
	h.AmplitudeRecovery = i16(52)
	h.MeasurementSystem = i16(54)
	h.ImpulsePolarity = i16(56)
	h.VibratoryPolarity = i16(58)
	h.Revision = engine.Uint16(data[300:302])
	h.FixedLength = i16(302)
	h.NumExtTextHeaders = i16(304)

	return nil
}

// ParseBinaryHeader parses a BinaryHeader from the first 400 bytes of data.
func ParseBinaryHeader(data []byte, engine endian.EndianEngine) (*BinaryHeader, error) {
	if len(data) < BinaryHeaderSize {
		return nil, fmt.Errorf("%w: binary header has %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := &BinaryHeader{}
	if err := h.Parse(data[:BinaryHeaderSize], engine); err != nil {
		return nil, err
	}

	return h, nil
}

// WriteToSlice serializes the header into b, which must hold at least 400
// bytes. Unassigned bytes are zeroed.
func (h *BinaryHeader) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < BinaryHeaderSize {
		return fmt.Errorf("%w: buffer has %d bytes", errs.ErrInvalidHeaderSize, len(b))
	}
	b = b[:BinaryHeaderSize]
	clear(b)

	p16 := func(off int, v int16) { engine.PutUint16(b[off:off+2], uint16(v)) }

	engine.PutUint32(b[0:4], uint32(h.JobID))
	engine.PutUint32(b[4:8], uint32(h.LineNumber))
	engine.PutUint32(b[8:12], uint32(h.ReelNumber))
	p16(12, h.TracesPerEnsemble)
	p16(14, h.AuxTracesPerEnsemble)
	engine.PutUint16(b[16:18], h.SampleInterval)
	engine.PutUint16(b[18:20], h.SampleIntervalOrig)
	engine.PutUint16(b[20:22], h.NumSamples)
	engine.PutUint16(b[22:24], h.NumSamplesOrig)
	engine.PutUint16(b[24:26], uint16(h.SampleFormat))
	p16(26, h.EnsembleFold)
	p16(28, h.TraceSorting)
	p16(30, h.VerticalSum)
	p16(32, h.SweepFreqStart)
	p16(34, h.SweepFreqEnd)
	p16(36, h.SweepLength)
	p16(38, h.SweepType)
	p16(40, h.SweepChannel)
	p16(42, h.SweepTaperStart)
	p16(44, h.SweepTaperEnd)
	p16(46, h.TaperType)
	p16(48, h.Correlated)
	p16(50, h.BinaryGainRecovered)
	p16(52, h.AmplitudeRecovery)
	p16(54, h.MeasurementSystem)
	p16(56, h.ImpulsePolarity)
	p16(58, h.VibratoryPolarity)
	engine.PutUint16(b[300:302], h.Revision)
	p16(302, h.FixedLength)
	p16(304, h.NumExtTextHeaders)

	return nil
}

// Bytes serializes the header into a new 400-byte slice.
func (h *BinaryHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, BinaryHeaderSize)
	_ = h.WriteToSlice(b, engine)

	return b
}

// SampleIntervalMS returns the sample interval in milliseconds.
func (h *BinaryHeader) SampleIntervalMS() float64 {
	return float64(h.SampleInterval) / 1000
}

// IsRevisionOne reports whether the header declares SEG-Y rev1 or later.
func (h *BinaryHeader) IsRevisionOne() bool {
	return h.Revision >= RevisionOne
}

// ExtTextHeaders returns the number of extended text headers following the
// binary header. Only rev1 files carry them; negative counts (variable number
// terminated by a stanza) are not supported and yield 0.
func (h *BinaryHeader) ExtTextHeaders() int {
	if !h.IsRevisionOne() || h.NumExtTextHeaders <= 0 {
		return 0
	}

	return int(h.NumExtTextHeaders)
}

// DetectByteOrder determines the byte order of a binary header from its
// sample format code. It prefers big-endian, the SEG-Y standard order, and
// reports false when neither order yields a supported code.
func DetectByteOrder(data []byte) (endian.EndianEngine, bool) {
	if len(data) < BinaryHeaderSize {
		return endian.GetBigEndianEngine(), false
	}

	big := endian.GetBigEndianEngine()
	if format.SampleFormat(big.Uint16(data[24:26])).Valid() {
		return big, true
	}

	little := endian.GetLittleEndianEngine()
	if format.SampleFormat(little.Uint16(data[24:26])).Valid() {
		return little, true
	}

	return big, false
}

// Dump writes a human-readable listing of all fields.
func (h *BinaryHeader) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct {
		name  string
		bytes string
		value any
	}{
		{"Job identification number", "3201-3204", h.JobID},
		{"Line number", "3205-3208", h.LineNumber},
		{"Reel number", "3209-3212", h.ReelNumber},
		{"Data traces per ensemble", "3213-3214", h.TracesPerEnsemble},
		{"Auxiliary traces per ensemble", "3215-3216", h.AuxTracesPerEnsemble},
		{"Sample interval [us]", "3217-3218", h.SampleInterval},
		{"Sample interval of original recording [us]", "3219-3220", h.SampleIntervalOrig},
		{"Number of samples per trace", "3221-3222", h.NumSamples},
		{"Number of samples of original recording", "3223-3224", h.NumSamplesOrig},
		{"Sample format code", "3225-3226", fmt.Sprintf("%d (%s)", uint16(h.SampleFormat), h.SampleFormat)},
		{"Ensemble fold", "3227-3228", h.EnsembleFold},
		{"Trace sorting code", "3229-3230", h.TraceSorting},
		{"Vertical sum code", "3231-3232", h.VerticalSum},
		{"Sweep frequency at start [Hz]", "3233-3234", h.SweepFreqStart},
		{"Sweep frequency at end [Hz]", "3235-3236", h.SweepFreqEnd},
		{"Sweep length [ms]", "3237-3238", h.SweepLength},
		{"Sweep type code", "3239-3240", h.SweepType},
		{"Trace number of sweep channel", "3241-3242", h.SweepChannel},
		{"Sweep taper length at start [ms]", "3243-3244", h.SweepTaperStart},
		{"Sweep taper length at end [ms]", "3245-3246", h.SweepTaperEnd},
		{"Taper type", "3247-3248", h.TaperType},
		{"Correlated data traces", "3249-3250", h.Correlated},
		{"Binary gain recovered", "3251-3252", h.BinaryGainRecovered},
		{"Amplitude recovery method", "3253-3254", h.AmplitudeRecovery},
		{"Measurement system", "3255-3256", h.MeasurementSystem},
		{"Impulse signal polarity", "3257-3258", h.ImpulsePolarity},
		{"Vibratory polarity code", "3259-3260", h.VibratoryPolarity},
		{"SEG-Y format revision", "3501-3502", fmt.Sprintf("0x%04x", h.Revision)},
		{"Fixed length trace flag", "3503-3504", h.FixedLength},
		{"Number of extended text headers", "3505-3506", h.NumExtTextHeaders},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%v\n", r.bytes, r.name, r.value)
	}

	return tw.Flush()
}
