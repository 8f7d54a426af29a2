// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mat is the public API for tenso's fixed-rank float32 tensor type.
//
// Mat models a rank 1-4 tensor the way original_source's runtime does:
// named extents w/h/d/c and an elempack packing factor, backed by a single
// contiguous []float32.
//
// Example:
//
//	a := mat.New(1, 4, 1, 1, 1, 1)
//	copy(a.Flat(), []float32{1, 2, 3, 4})
package mat

import (
	"github.com/tenso-ml/tenso/internal/mat"
)

// Mat is a rank 1-4 float32 tensor; see internal/mat for layout details.
type Mat = mat.Mat

// New allocates a zero-filled Mat with the given extents and elempack.
func New(dims, w, h, d, c, elempack int) *Mat {
	return mat.New(dims, w, h, d, c, elempack)
}

// FromSlice1D builds a 1-D Mat of length len(data), copying data in.
func FromSlice1D(data []float32) *Mat {
	return mat.FromSlice1D(data)
}

// CreateLike allocates a new Mat with the same shape and elempack as
// template, using alloc to obtain the backing storage.
func CreateLike(template *Mat, alloc func(floats int) []float32) *Mat {
	return mat.CreateLike(template, alloc)
}
