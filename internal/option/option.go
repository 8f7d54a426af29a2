// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package option carries the configuration bag threaded through every
// Forward call, mirroring the teacher's parallel.Config / Backend.Device()
// threading pattern but scoped to what spec.md §3 requires of Option:
// num_threads and a blob_allocator.
package option

import (
	"runtime"

	"github.com/tenso-ml/tenso/internal/allocator"
)

// Option is the configuration bag passed through every Forward and
// ForwardInPlace call.
type Option struct {
	// NumThreads is the worker count used by the fork-join parallel-for in
	// each kernel. A value of 1 must run serially with no worker goroutines
	// spawned (spec.md §5).
	NumThreads int

	// BlobAllocator allocates the output tensor's backing storage.
	BlobAllocator allocator.Allocator
}

// Default returns an Option using one worker per CPU and a pooling
// allocator, mirroring the teacher's parallel.DefaultConfig() default of
// runtime.NumCPU() workers.
func Default() Option {
	return Option{
		NumThreads:    runtime.NumCPU(),
		BlobAllocator: allocator.NewPool(),
	}
}

// WithThreads returns a copy of opt with NumThreads set to n. n < 1 is
// clamped to 1.
func (opt Option) WithThreads(n int) Option {
	if n < 1 {
		n = 1
	}
	opt.NumThreads = n
	return opt
}
