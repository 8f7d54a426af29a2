// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package binaryop

import (
	"github.com/tenso-ml/tenso/internal/mat"
	"github.com/tenso-ml/tenso/internal/option"
	"github.com/tenso-ml/tenso/internal/parallel"
)

// kernel is the signature every Iteration Kernel implements once the Shape
// Classifier has picked the dominant operand A, the subordinate operand B,
// and the effective operation.
type kernel func(op Operation, a, b, out *mat.Mat, cfg parallel.Config)

// dispatch is the Kernel Dispatcher (spec.md §4.4): it maps a Pattern to the
// Iteration Kernel that implements it. Unsupported has no entry; Forward
// checks for it before calling dispatch.
var dispatch = map[Pattern]kernel{
	Scalar:             scalarKernel,
	NoBroadcast:        noBroadcastKernel,
	BroadcastInner:     innerKernel,
	BroadcastOuter:     outerKernel,
	BroadcastSpecial20: special20Kernel,
}

// Forward runs op(a0, b0) and returns a freshly allocated result, following
// original_source's BinaryOp::forward: the Shape Classifier picks the
// dominant/subordinate pair, the output is allocated with A's shape, and an
// Unsupported pattern leaves the output Mat allocated but untouched and
// returns success — original_source's own explicit trade-off (spec.md
// §7.2), not an error condition this layer invents.
func Forward(a0, b0 *mat.Mat, op Operation, opt option.Option) (*mat.Mat, error) {
	pattern, a, b, opEff := Classify(a0, b0, op)

	out := mat.CreateLike(a, opt.BlobAllocator.Alloc)
	if out.Empty() {
		return nil, ErrAllocation
	}

	if pattern == Unsupported {
		return out, nil
	}

	if pattern == BroadcastInner {
		b = SqueezeInner(b)
	}

	cfg := parallel.ConfigFromThreads(opt.NumThreads)
	dispatch[pattern](opEff, a, b, out, cfg)

	return out, nil
}

// ForwardInPlace runs op(a, scalar) in place, mirroring
// original_source's binary_op_scalar_inplace<Op>: it reuses scalarKernel
// with the output aliased to the input, exactly as the original reuses the
// identical Op functor between binary_op_scalar_inplace<Op> and
// binary_op_scalar<Op> rather than hand-writing a separate loop.
func ForwardInPlace(a *mat.Mat, op Operation, scalar float32, opt option.Option) {
	b := mat.FromSlice1D([]float32{scalar})
	cfg := parallel.ConfigFromThreads(opt.NumThreads)
	scalarKernel(op, a, b, a, cfg)
}
