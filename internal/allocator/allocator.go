// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package allocator provides the blob allocator collaborator used by
// Option.BlobAllocator (spec.md §3, §6). The core never allocates memory
// directly; it asks an Allocator for a []float32 of a given length and
// treats a short or nil return as allocation failure.
package allocator

import "sync"

// Allocator hands out float32 buffers for output tensors. Implementations
// must be safe for concurrent use: Forward performs at most one allocation
// per call before spawning workers (spec.md §5), but a long-lived Allocator
// may back many concurrent Forward calls from different layers.
type Allocator interface {
	Alloc(floats int) []float32
}

// Pool is a sync.Pool-backed Allocator that reuses buffers by size class.
// It is grounded on the teacher's reference-counted tensorBuffer (which
// pools allocations via Copy-on-Write sharing); here ownership is always
// single-owner per spec.md's "one allocation per Forward call" model, so a
// plain size-classed pool is sufficient and avoids the refcounting machinery
// the teacher needed for its COW semantics.
type Pool struct {
	pools sync.Map // size class (int, next power of two) -> *sync.Pool
}

// NewPool returns a ready-to-use pooling Allocator.
func NewPool() *Pool {
	return &Pool{}
}

// Alloc returns a zero-filled []float32 of length floats, reused from the
// pool for its size class when available.
func (p *Pool) Alloc(floats int) []float32 {
	if floats <= 0 {
		return []float32{}
	}
	class := nextPowerOfTwo(floats)
	poolIface, _ := p.pools.LoadOrStore(class, &sync.Pool{
		New: func() any {
			buf := make([]float32, class)
			return &buf
		},
	})
	sp := poolIface.(*sync.Pool)
	bufPtr := sp.Get().(*[]float32)
	buf := (*bufPtr)[:floats]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Release returns a buffer obtained from Alloc back to its size class pool.
// Calling Release is optional; an unreleased buffer is simply garbage
// collected.
func (p *Pool) Release(buf []float32) {
	if len(buf) == 0 {
		return
	}
	class := nextPowerOfTwo(len(buf))
	poolIface, ok := p.pools.Load(class)
	if !ok {
		return
	}
	full := buf[:cap(buf)]
	sp := poolIface.(*sync.Pool)
	sp.Put(&full)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Direct is an Allocator that always allocates a fresh slice, useful for
// tests and for callers that don't want pooling overhead.
type Direct struct{}

// Alloc allocates a fresh zero-filled slice.
func (Direct) Alloc(floats int) []float32 {
	if floats <= 0 {
		return []float32{}
	}
	return make([]float32, floats)
}
