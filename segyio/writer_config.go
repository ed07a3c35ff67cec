package segyio

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/internal/metrics"
	"github.com/svs590/OpenSeaSeis-sub000/internal/options"
	"github.com/svs590/OpenSeaSeis-sub000/section"
)

// WriterConfig holds the configuration of a Writer.
type WriterConfig struct {
	// ByteOrder of the output. ByteOrderAuto writes SEG-Y and PASSCAL
	// big-endian and SU in the native order.
	ByteOrder ByteOrder
	// SampleFormat of the output. SampleUnknown writes IEEE floats, or 4-byte
	// integers for PASSCAL.
	SampleFormat format.SampleFormat
	// NumSamples per trace. Required.
	NumSamples int
	// SampleIntervalUS in microseconds. Required.
	SampleIntervalUS int
	// BufferTraces is the number of traces written per flush. Zero derives it
	// from DefaultBufferBytes.
	BufferTraces int
	// AutoScale converts physical coordinates, elevations and statics back
	// to stored values using the scalar fields.
	AutoScale bool
	// EBCDIC writes the text header in EBCDIC rather than ASCII.
	EBCDIC bool
	// TextLines are the card images of the text header.
	TextLines []string
	// BinaryHeader is the template for the binary file header. The sample
	// count, interval and format are always taken from the configuration.
	BinaryHeader *section.BinaryHeader

	metrics *metrics.Metrics
}

// DefaultWriterConfig returns the default writer configuration.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		ByteOrder: ByteOrderAuto,
		AutoScale: true,
		EBCDIC:    true,
	}
}

// Validate checks the consistency of the configuration.
func (c *WriterConfig) Validate() error {
	if !c.ByteOrder.Valid() {
		return fmt.Errorf("%w: byte order %d", errs.ErrUsage, c.ByteOrder)
	}
	if c.SampleFormat != format.SampleUnknown && !c.SampleFormat.Valid() {
		return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, c.SampleFormat)
	}
	if c.NumSamples <= 0 || c.NumSamples > math.MaxInt32 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSampleCount, c.NumSamples)
	}
	if c.SampleIntervalUS <= 0 || c.SampleIntervalUS > math.MaxInt32 {
		return fmt.Errorf("%w: %d us", errs.ErrInvalidSampleInterval, c.SampleIntervalUS)
	}
	if c.BufferTraces < 0 || c.BufferTraces > MaxBufferTraces {
		return fmt.Errorf("%w: buffer of %d traces outside 0..%d", errs.ErrUsage, c.BufferTraces, MaxBufferTraces)
	}
	if len(c.TextLines) > section.TextHeaderLines {
		return fmt.Errorf("%w: %d text header lines, at most %d", errs.ErrUsage, len(c.TextLines), section.TextHeaderLines)
	}

	return nil
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*WriterConfig]

// WithWriterByteOrder sets the byte order of the output.
func WithWriterByteOrder(o ByteOrder) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if !o.Valid() {
			return fmt.Errorf("%w: byte order %d", errs.ErrUsage, o)
		}
		c.ByteOrder = o

		return nil
	})
}

// WithWriterSampleFormat sets the sample format of the output.
func WithWriterSampleFormat(f format.SampleFormat) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if !f.Valid() {
			return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, f)
		}
		c.SampleFormat = f

		return nil
	})
}

// WithSampleCount sets the number of samples per trace.
func WithSampleCount(n int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.NumSamples = n
	})
}

// WithSampleInterval sets the sample interval in microseconds.
func WithSampleInterval(us int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.SampleIntervalUS = us
	})
}

// WithWriterBufferTraces sets the number of traces written per flush.
func WithWriterBufferTraces(n int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.BufferTraces = n
	})
}

// WithWriterAutoScale enables or disables applying the scalar fields on encode.
// It is enabled by default.
func WithWriterAutoScale(enabled bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.AutoScale = enabled
	})
}

// WithTextEBCDIC selects EBCDIC (true, the default) or ASCII for the text header.
func WithTextEBCDIC(ebcdic bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.EBCDIC = ebcdic
	})
}

// WithTextHeaderLines sets the card images of the text header.
func WithTextHeaderLines(lines ...string) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.TextLines = lines
	})
}

// WithBinaryHeaderTemplate copies bh into the output binary header. Unset
// sample count, interval and format are taken from bh.
func WithBinaryHeaderTemplate(bh *section.BinaryHeader) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if bh == nil {
			return
		}
		tpl := *bh
		c.BinaryHeader = &tpl
		if c.NumSamples == 0 {
			c.NumSamples = int(bh.NumSamples)
		}
		if c.SampleIntervalUS == 0 {
			c.SampleIntervalUS = int(bh.SampleInterval)
		}
		if c.SampleFormat == format.SampleUnknown && bh.SampleFormat.Valid() {
			c.SampleFormat = bh.SampleFormat
		}
	})
}

// WithWriterMetrics registers the writer's collectors with reg.
func WithWriterMetrics(reg prometheus.Registerer) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.metrics = metrics.For(reg)
	})
}
