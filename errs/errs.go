// Package errs defines the sentinel errors shared by the SEG-Y codec packages.
//
// Errors are grouped into five kinds. Every specific error wraps exactly one
// kind, so callers can branch either on the precise condition or on the kind:
//
//	if errors.Is(err, errs.ErrFormat) {
//	    // unsupported sample format, bad header definition line, ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrOpenFailure reports a file that is missing or cannot be opened.
	ErrOpenFailure = errors.New("segy: open failure")
	// ErrFormat reports structurally invalid input: unsupported codes, bad
	// counts, malformed header definitions, out-of-range byte offsets.
	ErrFormat = errors.New("segy: format error")
	// ErrCorruptFile reports trailing bytes that do not form a full trace.
	ErrCorruptFile = errors.New("segy: corrupt file")
	// ErrUsage reports a programmer error: calls in the wrong state or order.
	ErrUsage = errors.New("segy: usage error")
	// ErrIO reports a short read or write not attributable to end of file.
	ErrIO = errors.New("segy: i/o failure")
)

// Format errors.
var (
	ErrInvalidHeaderSize       = fmt.Errorf("%w: invalid header size", ErrFormat)
	ErrUnsupportedSampleFormat = fmt.Errorf("%w: unsupported sample format", ErrFormat)
	ErrInvalidSampleCount      = fmt.Errorf("%w: invalid number of samples", ErrFormat)
	ErrInvalidSampleInterval   = fmt.Errorf("%w: invalid sample interval", ErrFormat)
	ErrInvalidByteOffset       = fmt.Errorf("%w: byte offset outside trace header", ErrFormat)
	ErrInvalidByteSize         = fmt.Errorf("%w: invalid field byte size", ErrFormat)
	ErrMalformedLine           = fmt.Errorf("%w: malformed header definition line", ErrFormat)
	ErrUnknownWireType         = fmt.Errorf("%w: unknown wire type", ErrFormat)
	ErrUnknownValueType        = fmt.Errorf("%w: unknown value type", ErrFormat)
	ErrUnknownDialect          = fmt.Errorf("%w: unknown header dialect", ErrFormat)
	ErrFieldOverlap            = fmt.Errorf("%w: field overlaps an existing field", ErrFormat)
)

// Usage errors.
var (
	ErrDuplicateHeader      = fmt.Errorf("%w: header already exists", ErrUsage)
	ErrUnknownHeader        = fmt.Errorf("%w: unknown header", ErrUsage)
	ErrInvalidFieldName     = fmt.Errorf("%w: invalid field name", ErrUsage)
	ErrMapLocked            = fmt.Errorf("%w: header map is locked after scalar initialization", ErrUsage)
	ErrIndexOutOfRange      = fmt.Errorf("%w: index out of range", ErrUsage)
	ErrPeekNotSet           = fmt.Errorf("%w: no header selected for peeking", ErrUsage)
	ErrRandomAccessDisabled = fmt.Errorf("%w: random access is not enabled", ErrUsage)
	ErrUnknownFileSize      = fmt.Errorf("%w: file size is unknown", ErrUsage)
	ErrNotInitialized       = fmt.Errorf("%w: not initialized", ErrUsage)
	ErrAlreadyInitialized   = fmt.Errorf("%w: already initialized", ErrUsage)
	ErrClosed               = fmt.Errorf("%w: file is closed", ErrUsage)
	ErrTraceOutOfRange      = fmt.Errorf("%w: trace index out of range", ErrUsage)
	ErrTooManySamples       = fmt.Errorf("%w: more samples than the trace holds", ErrUsage)
	ErrValueType            = fmt.Errorf("%w: value type mismatch", ErrUsage)
)

// Corrupt-file and i/o errors.
var (
	ErrResidualBytes = fmt.Errorf("%w: residual bytes after last trace", ErrCorruptFile)
	ErrShortRead     = fmt.Errorf("%w: short read", ErrIO)
	ErrShortWrite    = fmt.Errorf("%w: short write", ErrIO)
)
