// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mat implements the fixed-rank, elempack-aware tensor used by the
// binary elementwise operator core.
//
// Unlike a general n-dimensional array, a Mat is always rank 1 through 4,
// described by extents (w, h, d, c) in innermost-to-outermost order, plus an
// elempack factor that groups K adjacent float32 lanes into one logical
// element along the channel axis. Storage is a single contiguous []float32,
// channel-major, then depth-major, then row-major.
//
// Example:
//
//	m := mat.New(2, 2, 3, 1, 1, 1) // dims=2, w=2, h=3
//	row := m.Row(0, 0, 1)          // []float32 of length 2
package mat
