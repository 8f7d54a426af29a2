// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel implements the fork-join parallel-for used by every
// binary-op kernel's outermost loop: channels for dims≥3 and for the
// K-Scalar/K-NoBroadcast kernels, rows for the dims=2 broadcast kernels.
package parallel

import "sync"

// Config controls the fork-join parallel-for.
type Config struct {
	// NumWorkers is the worker count. A value of 1 (or less) runs the loop
	// serially on the calling goroutine with no worker spawned, exactly as
	// spec.md §5 requires: there is no MinChunkSize heuristic that can
	// silently serialize a larger NumWorkers request, and no heuristic can
	// parallelize a NumWorkers==1 request.
	NumWorkers int
}

// ConfigFromThreads builds a Config from an Option.NumThreads value.
func ConfigFromThreads(numThreads int) Config {
	if numThreads < 1 {
		numThreads = 1
	}
	return Config{NumWorkers: numThreads}
}

// For executes f(i) for i in [0, n), split across cfg.NumWorkers goroutines.
// Each iteration is assumed independent: it writes a disjoint output slice
// and reads only its own input slice plus possibly a shared read-only
// broadcast operand, so no ordering between iterations is required and the
// result is deterministic regardless of worker interleaving.
func For(n int, f func(i int), cfg Config) {
	if n <= 0 {
		return
	}
	workers := cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch splits over a batch*channels iteration space, for loops whose
// outer iteration is a (batch, channel) pair. The binary-op kernels do not
// call it; each of them uses For.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	n := batch * channels
	For(n, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
