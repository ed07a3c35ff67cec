package segyio

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/internal/metrics"
	"github.com/svs590/OpenSeaSeis-sub000/internal/options"
	"github.com/svs590/OpenSeaSeis-sub000/section"
)

const (
	// MaxBufferTraces is the largest number of traces held by the read and
	// write buffers.
	MaxBufferTraces = 4096
	// DefaultBufferBytes is the buffer size used to derive the trace capacity
	// when BufferTraces is zero.
	DefaultBufferBytes = 4 * 1024 * 1024
)

// ReaderConfig holds the configuration of a Reader.
type ReaderConfig struct {
	// ByteOrder of the file. ByteOrderAuto detects it during Initialize.
	ByteOrder ByteOrder
	// SampleFormat overrides the binary header format code when not SampleUnknown.
	SampleFormat format.SampleFormat
	// NumSamples overrides the sample count of the file when positive.
	NumSamples int
	// SampleIntervalUS overrides the sample interval of the file when positive.
	SampleIntervalUS int
	// RandomAccess enables MoveToTrace and header peeking. Forced on for SU.
	RandomAccess bool
	// BufferTraces is the number of traces read per refill. Zero derives it
	// from DefaultBufferBytes.
	BufferTraces int
	// AutoScale applies the coordinate, elevation and statics scalars.
	AutoScale bool
	// TextEncoding of the 3200-byte text header.
	TextEncoding TextEncoding
	// StrictSize fails Initialize when trailing bytes do not form a full trace.
	StrictSize bool
	// HeaderDefinition is a header definition file loaded into the header map
	// during Initialize.
	HeaderDefinition string

	metrics *metrics.Metrics
}

// DefaultReaderConfig returns the default reader configuration: auto-detected
// byte order, random access and auto-scaling enabled.
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		ByteOrder:    ByteOrderAuto,
		RandomAccess: true,
		AutoScale:    true,
		TextEncoding: TextAuto,
	}
}

// Validate checks the consistency of the configuration.
func (c *ReaderConfig) Validate() error {
	if !c.ByteOrder.Valid() {
		return fmt.Errorf("%w: byte order %d", errs.ErrUsage, c.ByteOrder)
	}
	if c.SampleFormat != format.SampleUnknown && !c.SampleFormat.Valid() {
		return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, c.SampleFormat)
	}
	if c.NumSamples < 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSampleCount, c.NumSamples)
	}
	if c.SampleIntervalUS < 0 {
		return fmt.Errorf("%w: %d us", errs.ErrInvalidSampleInterval, c.SampleIntervalUS)
	}
	if c.BufferTraces < 0 || c.BufferTraces > MaxBufferTraces {
		return fmt.Errorf("%w: buffer of %d traces outside 0..%d", errs.ErrUsage, c.BufferTraces, MaxBufferTraces)
	}

	return nil
}

// bufferCapacity returns the number of traces to buffer for traces of
// traceSize bytes. numTraces bounds the result when non-negative.
func bufferCapacity(requested, traceSize int, numTraces int64) int {
	n := requested
	if n == 0 {
		n = DefaultBufferBytes / traceSize
	}
	n = min(max(n, 1), MaxBufferTraces)
	if numTraces >= 0 && int64(n) > numTraces {
		n = int(max(numTraces, 1))
	}

	return n
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*ReaderConfig]

// WithByteOrder sets the byte order of the file.
// The default is ByteOrderAuto.
func WithByteOrder(o ByteOrder) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if !o.Valid() {
			return fmt.Errorf("%w: byte order %d", errs.ErrUsage, o)
		}
		c.ByteOrder = o

		return nil
	})
}

// WithBigEndian forces big-endian byte order.
func WithBigEndian() ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.ByteOrder = ByteOrderBig
	})
}

// WithLittleEndian forces little-endian byte order.
func WithLittleEndian() ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.ByteOrder = ByteOrderLittle
	})
}

// WithSampleFormat overrides the sample format declared by the file.
func WithSampleFormat(f format.SampleFormat) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if !f.Valid() {
			return fmt.Errorf("%w: code %d", errs.ErrUnsupportedSampleFormat, f)
		}
		c.SampleFormat = f

		return nil
	})
}

// WithNumSamples overrides the number of samples per trace declared by the file.
func WithNumSamples(n int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidSampleCount, n)
		}
		c.NumSamples = n

		return nil
	})
}

// WithSampleIntervalUS overrides the sample interval declared by the file.
func WithSampleIntervalUS(us int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if us <= 0 {
			return fmt.Errorf("%w: %d us", errs.ErrInvalidSampleInterval, us)
		}
		c.SampleIntervalUS = us

		return nil
	})
}

// WithRandomAccess enables or disables MoveToTrace and header peeking.
// It is enabled by default and always enabled for Seismic Unix files.
func WithRandomAccess(enabled bool) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.RandomAccess = enabled
	})
}

// WithBufferTraces sets the number of traces read per refill.
// Zero derives the capacity from a 4 MiB buffer.
func WithBufferTraces(n int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if n < 0 || n > MaxBufferTraces {
			return fmt.Errorf("%w: buffer of %d traces outside 0..%d", errs.ErrUsage, n, MaxBufferTraces)
		}
		c.BufferTraces = n

		return nil
	})
}

// WithAutoScale enables or disables applying the scalar fields on decode.
// It is enabled by default.
func WithAutoScale(enabled bool) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.AutoScale = enabled
	})
}

// WithTextEncoding sets the character set of the text header.
func WithTextEncoding(e TextEncoding) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.TextEncoding = e
	})
}

// WithStrictSize makes Initialize fail with ErrResidualBytes when the file
// ends with a partial trace.
func WithStrictSize() ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.StrictSize = true
	})
}

// WithHeaderDefinition loads the header definition file at path into the
// header map during Initialize, replacing overlapping fields.
func WithHeaderDefinition(path string) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.HeaderDefinition = path
	})
}

// WithMetrics registers the reader's collectors with reg.
func WithMetrics(reg prometheus.Registerer) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.metrics = metrics.For(reg)
	})
}

// traceGeometry returns the trace size in bytes for n samples of format f.
func traceGeometry(n int, f format.SampleFormat) int {
	return section.TraceHeaderSize + n*f.Size()
}
