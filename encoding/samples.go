package encoding

import (
	"fmt"
	"math"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
)

var be = endian.GetBigEndianEngine()

// DecodeSamples converts len(dst) big-endian samples of format f from src into dst.
//
// Returns:
//   - error: ErrUnsupportedSampleFormat for unknown codes, ErrShortRead if src
//     holds fewer than len(dst) samples
func DecodeSamples(dst []float32, src []byte, f format.SampleFormat) error {
	size := f.Size()
	if size == 0 {
		return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, f)
	}
	if len(src) < len(dst)*size {
		return fmt.Errorf("%w: need %d sample bytes, have %d", errs.ErrShortRead, len(dst)*size, len(src))
	}

	switch f {
	case format.SampleIBM:
		for i := range dst {
			dst[i] = IBMToFloat32(be.Uint32(src[i*4:]))
		}
	case format.SampleIEEE:
		for i := range dst {
			dst[i] = math.Float32frombits(be.Uint32(src[i*4:]))
		}
	case format.SampleInt32:
		for i := range dst {
			dst[i] = float32(int32(be.Uint32(src[i*4:])))
		}
	case format.SampleInt16:
		for i := range dst {
			dst[i] = float32(int16(be.Uint16(src[i*2:])))
		}
	}

	return nil
}

// EncodeSamples converts src into big-endian samples of format f written to dst.
//
// Integer formats round to nearest and saturate at the type limits.
func EncodeSamples(dst []byte, src []float32, f format.SampleFormat) error {
	size := f.Size()
	if size == 0 {
		return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, f)
	}
	if len(dst) < len(src)*size {
		return fmt.Errorf("%w: need %d sample bytes, have %d", errs.ErrShortWrite, len(src)*size, len(dst))
	}

	switch f {
	case format.SampleIBM:
		for i, v := range src {
			be.PutUint32(dst[i*4:], Float32ToIBM(v))
		}
	case format.SampleIEEE:
		for i, v := range src {
			be.PutUint32(dst[i*4:], math.Float32bits(v))
		}
	case format.SampleInt32:
		for i, v := range src {
			be.PutUint32(dst[i*4:], uint32(clampInt32(v)))
		}
	case format.SampleInt16:
		for i, v := range src {
			be.PutUint16(dst[i*2:], uint16(clampInt16(v)))
		}
	}

	return nil
}

func clampInt32(v float32) int32 {
	r := math.Round(float64(v))
	switch {
	case math.IsNaN(r):
		return 0
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < math.MinInt32:
		return math.MinInt32
	}

	return int32(r)
}

func clampInt16(v float32) int16 {
	r := math.Round(float64(v))
	switch {
	case math.IsNaN(r):
		return 0
	case r > math.MaxInt16:
		return math.MaxInt16
	case r < math.MinInt16:
		return math.MinInt16
	}

	return int16(r)
}

// SampleCodec converts sample regions stored in a given byte order.
//
// Decode normalizes the raw bytes to big-endian in place before converting;
// Encode converts and then swaps the written bytes to the file byte order.
type SampleCodec struct {
	format format.SampleFormat
	engine endian.EndianEngine
	swap   bool
}

// NewSampleCodec creates a codec for format f stored with the given byte order.
func NewSampleCodec(f format.SampleFormat, engine endian.EndianEngine) (*SampleCodec, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, f)
	}

	return &SampleCodec{
		format: f,
		engine: engine,
		swap:   !endian.IsBigEndian(engine),
	}, nil
}

// Format returns the sample format.
func (c *SampleCodec) Format() format.SampleFormat {
	return c.format
}

// SampleSize returns the encoded size of one sample in bytes.
func (c *SampleCodec) SampleSize() int {
	return c.format.Size()
}

// Decode converts len(dst) samples from raw into dst. raw is modified in place
// when the file byte order is little-endian.
func (c *SampleCodec) Decode(dst []float32, raw []byte) error {
	n := len(dst) * c.format.Size()
	if len(raw) < n {
		return fmt.Errorf("%w: need %d sample bytes, have %d", errs.ErrShortRead, n, len(raw))
	}
	if c.swap {
		endian.SwapWords(raw[:n], c.format.Size())
	}

	return DecodeSamples(dst, raw[:n], c.format)
}

// Encode converts src into raw in the file byte order.
func (c *SampleCodec) Encode(raw []byte, src []float32) error {
	if err := EncodeSamples(raw, src, c.format); err != nil {
		return err
	}
	if c.swap {
		endian.SwapWords(raw[:len(src)*c.format.Size()], c.format.Size())
	}

	return nil
}
