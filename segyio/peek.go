package segyio

import (
	"fmt"
	"io"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/value"
)

// SetHeaderToPeek selects the header field read by PeekHeaderValue. Before
// Initialize the name is only checked when peeking, since a header
// definition file may still change the map.
func (r *Reader) SetHeaderToPeek(name string) error {
	if r.initialized && !r.m.Contains(name) {
		return fmt.Errorf("%w: %q", errs.ErrUnknownHeader, name)
	}
	r.peekName = name

	return nil
}

func (r *Reader) peekIndex() (int, error) {
	if r.peekName == "" {
		return -1, errs.ErrPeekNotSet
	}
	idx := r.m.Index(r.peekName)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %q", errs.ErrUnknownHeader, r.peekName)
	}

	return idx, nil
}

// PeekHeaderValue reads the selected header field of trace traceIndex
// without decoding the trace. The sequential position is saved on the first
// peek and restored by RevertFromPeekPosition, NextTrace or MoveToTrace.
//
// Returns:
//   - error: ErrPeekNotSet, ErrRandomAccessDisabled, ErrUnknownFileSize,
//     ErrTraceOutOfRange, or an i/o error
func (r *Reader) PeekHeaderValue(traceIndex int) (value.Value, error) {
	if err := r.ready(); err != nil {
		return value.Value{}, err
	}
	idx, err := r.peekIndex()
	if err != nil {
		return value.Value{}, err
	}
	if !r.cfg.RandomAccess {
		return value.Value{}, errs.ErrRandomAccessDisabled
	}
	if r.numTraces < 0 {
		return value.Value{}, errs.ErrUnknownFileSize
	}
	if traceIndex < 0 || int64(traceIndex) >= r.numTraces {
		return value.Value{}, fmt.Errorf("%w: trace %d of %d", errs.ErrTraceOutOfRange, traceIndex, r.numTraces)
	}

	if !r.peeking {
		pos, err := r.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
		r.peekSaved = pos
		r.peeking = true
	}

	base := r.dataOffset + int64(traceIndex)*int64(r.traceSize)
	f, _ := r.m.Field(idx)
	if err := r.peekField(base, f); err != nil {
		return value.Value{}, err
	}
	if r.cfg.AutoScale {
		if kind, ok := r.m.ScaleKindOf(idx); ok {
			sf, _ := r.m.Field(r.m.ScalarIndex(kind))
			if err := r.peekField(base, sf); err != nil {
				return value.Value{}, err
			}
		}
	}
	r.cfg.metrics.RecordPeek()

	return r.codec.DecodeIndex(r.peekBuffer, idx, r.engine, r.cfg.AutoScale)
}

// peekField reads the bytes of field f of the trace starting at base into
// the peek buffer.
func (r *Reader) peekField(base int64, f hdrmap.Field) error {
	if _, err := r.file.Seek(base+int64(f.ByteOffset), io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	if _, err := io.ReadFull(r.file, r.peekBuffer[f.ByteOffset:f.End()]); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}

	return nil
}

// PeekNextHeaderValue reads the selected header field of the trace the next
// NextTrace call returns. Buffered traces are decoded from memory.
//
// Returns:
//   - bool: false when no trace follows
func (r *Reader) PeekNextHeaderValue() (value.Value, bool, error) {
	if err := r.ready(); err != nil {
		return value.Value{}, false, err
	}
	idx, err := r.peekIndex()
	if err != nil {
		return value.Value{}, false, err
	}

	if r.cursor < r.arena.Fill() {
		v, err := r.codec.DecodeIndex(r.arena.Header(r.cursor), idx, r.engine, r.cfg.AutoScale)
		if err != nil {
			return value.Value{}, false, err
		}
		r.cfg.metrics.RecordPeek()

		return v, true, nil
	}

	if r.numTraces >= 0 && r.next >= r.numTraces {
		return value.Value{}, false, nil
	}

	v, err := r.PeekHeaderValue(int(r.next))
	if err != nil {
		return value.Value{}, false, err
	}

	return v, true, nil
}

// RevertFromPeekPosition restores the file position saved by the first peek.
// It is a no-op when no peek is pending.
func (r *Reader) RevertFromPeekPosition() error {
	if !r.peeking {
		return nil
	}
	if _, err := r.file.Seek(r.peekSaved, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	r.peeking = false

	return nil
}
