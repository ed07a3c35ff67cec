package segyio

import (
	"github.com/svs590/OpenSeaSeis-sub000/value"
)

// TraceScanner is the random-access surface used by trace selection and
// sorting: header values are peeked trace by trace without decoding samples.
type TraceScanner interface {
	NumTraces() int
	MoveToTrace(index, count int) error
	SetHeaderToPeek(name string) error
	PeekHeaderValue(traceIndex int) (value.Value, error)
	RevertFromPeekPosition() error
	CurrentTraceIndex() int
}

var _ TraceScanner = (*Reader)(nil)

// ScanHeader peeks the named header of every trace of s. The sequential
// position of s is left unchanged.
func ScanHeader(s TraceScanner, name string) ([]value.Value, error) {
	if err := s.SetHeaderToPeek(name); err != nil {
		return nil, err
	}

	n := max(s.NumTraces(), 0)
	vals := make([]value.Value, n)
	for i := range n {
		v, err := s.PeekHeaderValue(i)
		if err != nil {
			_ = s.RevertFromPeekPosition()
			return nil, err
		}
		vals[i] = v
	}

	return vals, s.RevertFromPeekPosition()
}
