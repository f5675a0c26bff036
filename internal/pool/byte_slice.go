// Package pool keeps reusable byte buffers for serializing code units.
package pool

import "sync"

const (
	defaultCapacity = 64
	// buffers larger than this are left to the garbage collector
	maxRetainedCapacity = 1 << 20
)

type ByteSlicePool struct {
	pool sync.Pool
}

var byteSlicePool = &ByteSlicePool{
	pool: sync.Pool{
		New: func() any {
			b := make([]byte, 0, defaultCapacity)
			return &b
		},
	},
}

// ByteSlice returns the shared byte slice pool.
func ByteSlice() *ByteSlicePool {
	return byteSlicePool
}

// Get returns an empty slice with at least the default capacity.
func (p *ByteSlicePool) Get() []byte {
	return p.GetCapacity(defaultCapacity)
}

// GetCapacity returns an empty slice with a capacity of at least n.
func (p *ByteSlicePool) GetCapacity(n int) []byte {
	b := *(p.pool.Get().(*[]byte))
	if cap(b) < n {
		// the pooled slice is too small; let it go and allocate
		b = make([]byte, 0, n)
	}
	return b[:0]
}

// Put returns b to the pool. b must not be used afterwards.
func (p *ByteSlicePool) Put(b []byte) {
	if cap(b) > maxRetainedCapacity {
		return
	}
	b = b[:0]
	p.pool.Put(&b)
}
