// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package binaryop

import "github.com/tenso-ml/tenso/internal/mat"

// SqueezeInner is the Operand Normalizer (spec.md §4.2): it drops B's
// singleton inner axes so the BroadcastInner kernels only ever need to
// dispatch on (A.dims, B.dims) pairs instead of on every singleton-axis
// combination. It is a view, not a copy: Reshape shares B's backing slice.
//
// A B that already has fewer dims than A (the direct lower-rank case) is
// returned unchanged unless it itself has one of the singleton axes below
// (e.g. a 2-D B with w=1), in which case it is squeezed the same way.
func SqueezeInner(b *mat.Mat) *mat.Mat {
	switch {
	case b.Dims() == 2 && b.W() == 1:
		return b.Reshape(1, b.H(), 1, 1, 1)
	case b.Dims() == 3 && b.H() == 1:
		return b.Reshape(1, b.C(), 1, 1, 1)
	case b.Dims() == 3 && b.W() == 1:
		return b.Reshape(2, b.H(), b.C(), 1, 1)
	case b.Dims() == 4 && b.D() == 1:
		return b.Reshape(1, b.C(), 1, 1, 1)
	case b.Dims() == 4 && b.H() == 1:
		return b.Reshape(2, b.D(), b.C(), 1, 1)
	case b.Dims() == 4 && b.W() == 1:
		return b.Reshape(3, b.H(), b.D(), b.C(), 1)
	default:
		return b
	}
}
