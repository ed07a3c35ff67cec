// Package segyio reads and writes SEG-Y, Seismic Unix and PASSCAL trace files.
//
// # Reading
//
// A Reader walks through Unopened → Opened → Initialized → streaming states:
//
//	m := hdrmap.MustNew(format.DialectStandard)
//	r, err := segyio.NewReader("line42.sgy", m, segyio.WithBufferTraces(64))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	if err := r.Initialize(); err != nil {
//	    return err
//	}
//
//	samples := make([]float32, r.NumSamples())
//	for {
//	    ok, err := r.NextTrace(samples)
//	    if err != nil {
//	        return err
//	    }
//	    if !ok {
//	        break // end of stream
//	    }
//	    cdp, _ := r.HeaderByName("cmp")
//	    ...
//	}
//
// Traces are read in bulk into an internal arena of up to BufferTraces traces
// and converted to float32 in one pass per refill. End of stream is reported
// as (false, nil); trailing bytes that do not form a full trace are recorded
// in ResidualBytes and only fail with WithStrictSize.
//
// # Dialect bootstrap
//
// Initialize derives the sample count, interval and format per dialect:
//
//   - SEG-Y dialects read the 3200-byte text header and the 400-byte binary
//     header, skipping rev1 extended text headers.
//   - Seismic Unix dialects have no file header; the values are peeked from
//     the first trace header and random access is required.
//   - PASSCAL files carry the values in the first trace header, choosing the
//     2-byte field when it lies in 1..32766 and the 4-byte field otherwise.
//
// # Peeking
//
// SetHeaderToPeek selects one field; PeekHeaderValue reads just that field of
// any trace without disturbing the sequential cursor. The saved position is
// restored by RevertFromPeekPosition, which NextTrace and MoveToTrace call
// automatically. A Reader satisfies TraceScanner, the surface used by
// selection and sorting code.
//
// # Writing
//
// A Writer encodes each trace header as soon as WriteNextTrace is called,
// buffers the samples and converts and writes them in bulk when the buffer is
// full, on Flush and on Close.
//
// # Thread Safety
//
// Readers and Writers own one file each and are not safe for concurrent use.
package segyio
