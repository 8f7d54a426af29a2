// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package binaryop is the public API for tenso's binary elementwise tensor
// operator: Add/Sub/Mul/Div/Max/Min/Pow and their reverse-argument forms,
// with NumPy-style restricted broadcasting.
//
// Example:
//
//	a := mat.New(1, 4, 1, 1, 1, 1)
//	copy(a.Flat(), []float32{1, 2, 3, 4})
//	b := mat.New(1, 1, 1, 1, 1, 1)
//	b.Flat()[0] = 10
//	out, err := binaryop.Forward(a, b, binaryop.Add, binaryop.DefaultOption())
package binaryop

import (
	"github.com/tenso-ml/tenso/internal/allocator"
	"github.com/tenso-ml/tenso/internal/binaryop"
	"github.com/tenso-ml/tenso/internal/layer"
	"github.com/tenso-ml/tenso/internal/mat"
	"github.com/tenso-ml/tenso/internal/option"
)

// Operation is the closed set of binary elementwise functions.
type Operation = binaryop.Operation

const (
	Add  = binaryop.Add
	Sub  = binaryop.Sub
	Mul  = binaryop.Mul
	Div  = binaryop.Div
	Max  = binaryop.Max
	Min  = binaryop.Min
	Pow  = binaryop.Pow
	RSub = binaryop.RSub
	RDiv = binaryop.RDiv
	RPow = binaryop.RPow
)

// Option configures thread count and output allocation.
type Option = option.Option

// DefaultOption returns an Option with NumThreads set to runtime.NumCPU()
// and a pooled blob allocator.
func DefaultOption() Option {
	return option.Default()
}

// ErrAllocation is returned when the output Mat's backing allocation fails.
var ErrAllocation = binaryop.ErrAllocation

// Forward runs op(a, b) and returns a freshly allocated result, applying
// NumPy-style restricted broadcasting between a and b.
func Forward(a, b *mat.Mat, op Operation, opt Option) (*mat.Mat, error) {
	return binaryop.Forward(a, b, op, opt)
}

// ForwardInPlace runs op(a, scalar) in place.
func ForwardInPlace(a *mat.Mat, op Operation, scalar float32, opt Option) {
	binaryop.ForwardInPlace(a, op, scalar, opt)
}

// Layer is a configured binary elementwise layer following the
// LoadParam -> Forward/ForwardInPlace lifecycle.
type Layer = layer.BinaryOp

// ParamSource is the key-value collaborator Layer.LoadParam reads from.
type ParamSource = layer.ParamSource

// MapParamSource is a ParamSource backed by plain maps.
type MapParamSource = layer.MapParamSource

// LayerFlags reports a Layer's one_blob_only/support_inplace bits.
type LayerFlags = layer.Flags

// NewPoolAllocator returns a sync.Pool-backed Allocator suitable for
// Option.BlobAllocator.
func NewPoolAllocator() allocator.Allocator {
	return allocator.NewPool()
}
