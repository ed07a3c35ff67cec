// Package segy reads and writes seismic trace files in the SEG-Y, Seismic
// Unix and PASSCAL layouts.
//
// A trace file is a sequence of traces, each a 240-byte header followed by a
// fixed number of samples. SEG-Y files start with a 3200-byte text header and
// a 400-byte binary header that give the sample count, interval and format;
// Seismic Unix and PASSCAL files carry that information in every trace header.
//
// # Core Features
//
//   - Eleven trace header dialects plus user definition files
//   - IBM, IEEE, Int32 and Int16 samples in either byte order
//   - Automatic byte order and geometry detection
//   - Buffered sequential reads, random access and header peeking
//   - Coordinate, elevation and time scalars applied on read and write
//
// # Basic Usage
//
// Reading a SEG-Y file:
//
//	r, _ := segy.Open("line42.sgy", format.DialectStandard)
//	defer r.Close()
//
//	samples := make([]float32, r.NumSamples())
//	for {
//	    ok, err := r.NextTrace(samples)
//	    if err != nil || !ok {
//	        break
//	    }
//	    ffid, _ := r.HeaderByName("ffid")
//	    fmt.Println(ffid.Int(), samples[0])
//	}
//
// Writing a Seismic Unix file:
//
//	w, _ := segy.Create("out.su", format.DialectSU, 1000, 2000)
//	w.Set("cdp", value.OfInt(1))
//	w.WriteNextTrace(samples)
//	w.Close()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the segyio
// package. For fine-grained control, use segyio, hdrmap and trace directly.
package segy

import (
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/internal/hash"
	"github.com/svs590/OpenSeaSeis-sub000/segyio"
)

// Open opens the trace file at path and reads its file headers.
//
// Parameters:
//   - path: Trace file
//   - dialect: Trace header layout; also selects how the geometry is found
//   - opts: Reader options, see segyio.ReaderOption
//
// Returns:
//   - *segyio.Reader: Initialized reader positioned at the first trace
//   - error: Open, format or option error
func Open(path string, dialect format.Dialect, opts ...segyio.ReaderOption) (*segyio.Reader, error) {
	m, err := hdrmap.New(dialect)
	if err != nil {
		return nil, err
	}

	r, err := segyio.NewReader(path, m, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Initialize(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// Create creates the trace file at path and writes its file headers.
//
// Parameters:
//   - path: Output file, truncated if it exists
//   - dialect: Trace header layout
//   - numSamples: Samples per trace
//   - sampleIntervalUS: Sample interval in microseconds
//   - opts: Writer options, see segyio.WriterOption
//
// Returns:
//   - *segyio.Writer: Initialized writer
//   - error: Option, format or i/o error
func Create(path string, dialect format.Dialect, numSamples, sampleIntervalUS int, opts ...segyio.WriterOption) (*segyio.Writer, error) {
	m, err := hdrmap.New(dialect)
	if err != nil {
		return nil, err
	}

	opts = append([]segyio.WriterOption{
		segyio.WithSampleCount(numSamples),
		segyio.WithSampleInterval(sampleIntervalUS),
	}, opts...)

	w, err := segyio.NewWriter(path, m, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Initialize(); err != nil {
		w.Close()
		return nil, err
	}

	return w, nil
}

// NewHeaderMap returns the trace header map of dialect. The map can be
// modified before it is passed to a reader or writer.
func NewHeaderMap(dialect format.Dialect) (*hdrmap.HeaderMap, error) {
	return hdrmap.New(dialect)
}

// FieldID returns the 64-bit id of a header field name, the same id header
// maps use for name lookups.
func FieldID(name string) uint64 {
	return hash.FieldID(name)
}
