// Package section defines the fixed-size file sections of a SEG-Y file.
//
// A SEG-Y file starts with a 3600-byte file header followed by traces:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Text header (3200 bytes)                                │
//	│  - 40 card images of 80 characters, EBCDIC or ASCII     │
//	├─────────────────────────────────────────────────────────┤
//	│ Binary header (400 bytes)                               │
//	│  - job/line/reel ids, sample interval and count,        │
//	│    sample format code, revision                         │
//	├─────────────────────────────────────────────────────────┤
//	│ Extended text headers (N × 3200 bytes, rev1 only)       │
//	├─────────────────────────────────────────────────────────┤
//	│ Trace 0: header (240 bytes) + samples                   │
//	│ Trace 1: header (240 bytes) + samples                   │
//	│ ...                                                     │
//	└─────────────────────────────────────────────────────────┘
//
// Seismic Unix and PASSCAL files carry no file header; they consist of
// traces only.
//
// # Binary Header Format
//
// Offsets are relative to the start of the binary header (add 3201 for the
// one-based file byte positions used by the SEG-Y documents):
//
//	Bytes   | Field              | Type  | Description
//	--------|--------------------|-------|----------------------------------
//	0-3     | JobID              | int32 | Job identification number
//	4-7     | LineNumber         | int32 | Line number
//	8-11    | ReelNumber         | int32 | Reel number
//	12-13   | TracesPerEnsemble  | int16 | Data traces per ensemble
//	16-17   | SampleInterval     | int16 | Sample interval [us]
//	20-21   | NumSamples         | int16 | Samples per data trace
//	24-25   | SampleFormat       | int16 | 1=IBM, 2=int32, 3=int16, 5=IEEE
//	300-301 | Revision           | int16 | 0x0100 for rev1
//	302-303 | FixedLength        | int16 | 1 when all traces have equal length
//	304-305 | NumExtTextHeaders  | int16 | Extended text headers following
//
// The binary header is written in the file byte order. Readers detect the
// order from the sample format code; see DetectByteOrder.
package section
