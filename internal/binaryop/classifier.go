// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package binaryop

import "github.com/tenso-ml/tenso/internal/mat"

// Pattern is the outcome of the Shape Classifier (spec.md §4.1): which
// Iteration Kernel can satisfy a broadcast between the dominant operand A
// and the subordinate operand B.
type Pattern int

const (
	Scalar Pattern = iota
	NoBroadcast
	BroadcastInner
	BroadcastOuter
	BroadcastSpecial20
	Unsupported
)

func (p Pattern) String() string {
	switch p {
	case Scalar:
		return "scalar"
	case NoBroadcast:
		return "no-broadcast"
	case BroadcastInner:
		return "broadcast-inner"
	case BroadcastOuter:
		return "broadcast-outer"
	case BroadcastSpecial20:
		return "broadcast-special-20"
	default:
		return "unsupported"
	}
}

// Classify picks the dominant/subordinate operand pair and the Iteration
// Kernel pattern for op(a0, b0), grounded on original_source's
// BinaryOp::forward dispatch. It returns the (possibly swapped) operands, the
// effective operation (Reverse()'d if the operands were swapped), and the
// matched Pattern.
//
// Swap rule: a0 becomes subordinate when b0 has strictly more dims and is not
// itself a scalar, or — with equal rank — when a0 has strictly fewer
// elements than b0. Swapping without reversing a non-commutative op would
// silently change its result, so op is reversed in lockstep.
func Classify(a0, b0 *mat.Mat, op Operation) (pattern Pattern, a, b *mat.Mat, opEff Operation) {
	bIsScalar := b0.IsScalar()
	aRankIsLower := a0.Dims() < b0.Dims() && !bIsScalar
	aSizeIsLower := a0.Size() < b0.Size()
	aIsLower := aRankIsLower || (a0.Dims() == b0.Dims() && aSizeIsLower)

	if aIsLower {
		a, b = b0, a0
		opEff = op.Reverse()
	} else {
		a, b = a0, b0
		opEff = op
	}

	return classifyOrdered(a, b), a, b, opEff
}

// classifyOrdered matches B's shape against A once the dominant/subordinate
// order is fixed, in the exact precedence original_source uses: scalar,
// then exact match, then inner-axis broadcast, then outer-axis broadcast,
// then the single hand-coded special rule, then unsupported.
func classifyOrdered(a, b *mat.Mat) Pattern {
	if b.IsScalar() {
		return Scalar
	}

	if a.Dims() == b.Dims() && a.W() == b.W() && a.H() == b.H() && a.D() == b.D() && a.C() == b.C() && a.Elempack() == b.Elempack() {
		return NoBroadcast
	}

	if isBroadcastInner(a, b) {
		return BroadcastInner
	}

	if isBroadcastOuter(a, b) {
		return BroadcastOuter
	}

	if a.Dims() == 3 && b.Dims() == 3 && a.W() == b.W() && b.H() == 1 && a.C() == b.C() {
		return BroadcastSpecial20
	}

	return Unsupported
}

func isBroadcastInner(a, b *mat.Mat) bool {
	if b.Dims() < a.Dims() {
		return true
	}
	switch a.Dims() {
	case 2:
		return b.W() == 1 && b.H() == a.H()
	case 3:
		return (b.W() == 1 && b.H() == 1 && b.C() == a.C()) ||
			(b.W() == 1 && b.H() == a.H() && b.C() == a.C())
	case 4:
		return (b.W() == 1 && b.H() == 1 && b.D() == 1 && b.C() == a.C()) ||
			(b.W() == 1 && b.H() == 1 && b.D() == a.D() && b.C() == a.C()) ||
			(b.W() == 1 && b.H() == a.H() && b.D() == a.D() && b.C() == a.C())
	default:
		return false
	}
}

// isBroadcastOuter additionally requires B.elempack == 1: B's outer-axis
// operand is always unpacked and gets broadcast-filled into A's own lane
// width by the kernel, regardless of A's elempack (mips:721, 337-420).
func isBroadcastOuter(a, b *mat.Mat) bool {
	if b.Elempack() != 1 {
		return false
	}
	switch a.Dims() {
	case 2:
		return b.W() == a.W() && b.H() == 1
	case 3:
		return (b.W() == a.W() && b.H() == 1 && b.C() == 1) ||
			(b.W() == a.W() && b.H() == a.H() && b.C() == 1)
	case 4:
		return (b.W() == a.W() && b.H() == 1 && b.D() == 1 && b.C() == 1) ||
			(b.W() == a.W() && b.H() == a.H() && b.D() == 1 && b.C() == 1) ||
			(b.W() == a.W() && b.H() == a.H() && b.D() == a.D() && b.C() == 1)
	default:
		return false
	}
}
