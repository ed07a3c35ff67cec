package pool

import (
	"fmt"
	"sync"
)

// ArenaMaxPooledBytes is the largest backing buffer kept for reuse; bigger
// buffers are left to the garbage collector to avoid retaining memory spikes.
const ArenaMaxPooledBytes = 64 * 1024 * 1024

var arenaPool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// TraceArena is an owned byte buffer holding up to Capacity consecutive traces
// of TraceSize bytes each, every trace being a header of HeaderSize bytes
// followed by its samples.
//
// Slots are addressed by index and returned as bounds-checked sub-slices of
// the backing buffer; an index outside the arena panics. Fill tracks how many
// leading slots hold valid traces.
//
// A TraceArena is not safe for concurrent use.
type TraceArena struct {
	buf        *[]byte
	headerSize int
	traceSize  int
	capacity   int
	fill       int
}

// NewTraceArena allocates an arena for capacity traces of traceSize bytes.
// The backing buffer is taken from a shared pool and is zeroed.
func NewTraceArena(headerSize, traceSize, capacity int) *TraceArena {
	if headerSize < 0 || traceSize < headerSize || capacity < 1 {
		panic(fmt.Sprintf("pool: invalid arena geometry header=%d trace=%d capacity=%d", headerSize, traceSize, capacity))
	}

	size := traceSize * capacity
	ptr, _ := arenaPool.Get().(*[]byte)
	if cap(*ptr) < size {
		*ptr = make([]byte, size)
	} else {
		*ptr = (*ptr)[:size]
		clear(*ptr)
	}

	return &TraceArena{
		buf:        ptr,
		headerSize: headerSize,
		traceSize:  traceSize,
		capacity:   capacity,
	}
}

// Capacity returns the number of trace slots.
func (a *TraceArena) Capacity() int {
	return a.capacity
}

// TraceSize returns the size of one trace slot in bytes.
func (a *TraceArena) TraceSize() int {
	return a.traceSize
}

// Fill returns the number of leading slots holding valid traces.
func (a *TraceArena) Fill() int {
	return a.fill
}

// SetFill sets the number of valid leading slots.
// Panics if n is negative or greater than the capacity.
func (a *TraceArena) SetFill(n int) {
	if n < 0 || n > a.capacity {
		panic(fmt.Sprintf("pool: fill %d outside arena capacity %d", n, a.capacity))
	}
	a.fill = n
}

// Reset marks every slot as free. The bytes are left untouched.
func (a *TraceArena) Reset() {
	a.fill = 0
}

// Full reports whether every slot is filled.
func (a *TraceArena) Full() bool {
	return a.fill == a.capacity
}

// Slot returns slot i whether or not it is filled.
func (a *TraceArena) Slot(i int) []byte {
	if i < 0 || i >= a.capacity {
		panic(fmt.Sprintf("pool: slot %d outside arena capacity %d", i, a.capacity))
	}
	off := i * a.traceSize

	return (*a.buf)[off : off+a.traceSize : off+a.traceSize]
}

// Header returns the header bytes of slot i.
func (a *TraceArena) Header(i int) []byte {
	return a.Slot(i)[:a.headerSize]
}

// Samples returns the sample bytes of slot i.
func (a *TraceArena) Samples(i int) []byte {
	return a.Slot(i)[a.headerSize:]
}

// Region returns the contiguous bytes of the first n slots, for bulk I/O.
func (a *TraceArena) Region(n int) []byte {
	if n < 0 || n > a.capacity {
		panic(fmt.Sprintf("pool: region of %d slots outside arena capacity %d", n, a.capacity))
	}

	return (*a.buf)[:n*a.traceSize]
}

// Release returns the backing buffer to the shared pool. The arena must not
// be used afterwards.
func (a *TraceArena) Release() {
	if a.buf == nil {
		return
	}
	if cap(*a.buf) <= ArenaMaxPooledBytes {
		arenaPool.Put(a.buf)
	}
	a.buf = nil
	a.fill = 0
}
