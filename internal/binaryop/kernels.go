// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package binaryop

import (
	"github.com/tenso-ml/tenso/internal/isa"
	"github.com/tenso-ml/tenso/internal/mat"
	"github.com/tenso-ml/tenso/internal/parallel"
)

// zip applies op lane-for-lane over two equal-length runs. When the process
// has detected a lane width K greater than 1, it walks the run in K-wide
// chunks through op.Vector() and only falls back to op.Scalar() for the
// remainder below K — the vector path from spec.md §4.3/§4.4 that
// internal/isa exists to drive. With K==1 (TENSO_NO_SIMD or no detected
// feature) this degrades to a plain scalar loop.
func zip(op Operation, out, x, y []float32) {
	k := int(isa.LaneWidth())
	if k > 1 && len(out) >= k {
		vf := op.Vector()
		n := len(out) - len(out)%k
		for i := 0; i < n; i += k {
			vf(out[i:i+k], x[i:i+k], y[i:i+k])
		}
		f := op.Scalar()
		for i := n; i < len(out); i++ {
			out[i] = f(x[i], y[i])
		}
		return
	}
	f := op.Scalar()
	for i := range out {
		out[i] = f(x[i], y[i])
	}
}

// tileBlock applies f between out/x and a repeating bBlock, where len(out)
// is a multiple of len(bBlock). It is the packed-lane generalization of the
// original scalar broadcast: every elempack-wide group of out gets the same
// bBlock, lane for lane.
func tileBlock(f scalarFn, out, x, bBlock []float32) {
	e := len(bBlock)
	for base := 0; base < len(out); base += e {
		for k := 0; k < e; k++ {
			out[base+k] = f(x[base+k], bBlock[k])
		}
	}
}

// fillBroadcast applies f between out/x's elempack-wide lane groups and a
// parallel run of unpacked B values: bVals holds one float per logical
// position (B.elempack==1), and that single value is repeated across every
// physical lane of the matching e-wide group in out/x. This is the
// BroadcastOuter pattern's materialization of the ground truth's
// "_b_128 = (elempack==4) ? ld : fill" rule (mips:337-420): B's outer operand
// is always unpacked and gets filled into A's lane width, whatever it is.
func fillBroadcast(f scalarFn, out, x, bVals []float32, e int) {
	for p, bv := range bVals {
		base := p * e
		for k := 0; k < e; k++ {
			out[base+k] = f(x[base+k], bv)
		}
	}
}

// scalarKernel implements the Scalar pattern (spec.md §4.4): B holds a
// single logical value broadcast over every element of A, regardless of A's
// elempack — a scalar Mat always has elempack folded down to size 1, so the
// same float is used for every physical lane too.
func scalarKernel(op Operation, a, b, out *mat.Mat, cfg parallel.Config) {
	f := op.Scalar()
	bv := b.Flat()[0]
	parallel.For(a.C(), func(q int) {
		ap := a.Channel(q)
		cp := out.Channel(q)
		for i := range ap {
			cp[i] = f(ap[i], bv)
		}
	}, cfg)
}

// noBroadcastKernel implements the NoBroadcast pattern: A and B share every
// extent, so the op runs lane for lane.
func noBroadcastKernel(op Operation, a, b, out *mat.Mat, cfg parallel.Config) {
	parallel.For(a.C(), func(q int) {
		zip(op, out.Channel(q), a.Channel(q), b.Channel(q))
	}, cfg)
}

// innerKernel implements the BroadcastInner pattern. b has already been run
// through SqueezeInner, so it carries no singleton inner axes; the five
// (A.dims, B.dims) shapes below are the only ones SqueezeInner can produce
// for an A of dims 2, 3, or 4.
//
// BroadcastInner and BroadcastSpecial20 assume A and B carry the same
// elempack (ncnn resolves any packing mismatch in a separate conversion step
// before a binary op ever runs). NoBroadcast requires elempack equality too,
// enforced by the classifier. BroadcastOuter is the exception: B's
// outer-axis operand is always unpacked (elempack==1, checked by
// isBroadcastOuter) and outerKernel broadcast-fills it across A's own lane
// width regardless of A's elempack. Scalar places no elempack requirement on
// B either, since a true scalar's physical-size check already folds
// elempack in.
func innerKernel(op Operation, a, b, out *mat.Mat, cfg parallel.Config) {
	f := op.Scalar()
	e := requireMatchedElempack(a, b)

	switch {
	case a.Dims() == 2 && b.Dims() == 1:
		parallel.For(a.H(), func(y int) {
			bBlock := b.Flat()[y*e : (y+1)*e]
			tileBlock(f, out.Row(0, 0, y), a.Row(0, 0, y), bBlock)
		}, cfg)

	case (a.Dims() == 3 || a.Dims() == 4) && b.Dims() == 1:
		parallel.For(a.C(), func(q int) {
			bBlock := b.Flat()[q*e : (q+1)*e]
			tileBlock(f, out.Channel(q), a.Channel(q), bBlock)
		}, cfg)

	case a.Dims() == 3 && b.Dims() == 2:
		parallel.For(a.C(), func(q int) {
			ap, cp := a.Channel(q), out.Channel(q)
			bRow := b.Row(0, 0, q)
			rowLen := a.W() * e
			for y := 0; y < a.H(); y++ {
				base := y * rowLen
				tileBlock(f, cp[base:base+rowLen], ap[base:base+rowLen], bRow[y*e:(y+1)*e])
			}
		}, cfg)

	case a.Dims() == 4 && b.Dims() == 2:
		parallel.For(a.C(), func(q int) {
			ap, cp := a.Channel(q), out.Channel(q)
			bRow := b.Row(0, 0, q)
			rowLen := a.W() * e
			planeLen := a.H() * rowLen
			for z := 0; z < a.D(); z++ {
				bBlock := bRow[z*e : (z+1)*e]
				zBase := z * planeLen
				for y := 0; y < a.H(); y++ {
					base := zBase + y*rowLen
					tileBlock(f, cp[base:base+rowLen], ap[base:base+rowLen], bBlock)
				}
			}
		}, cfg)

	case a.Dims() == 4 && b.Dims() == 3:
		parallel.For(a.C(), func(q int) {
			ap, cp := a.Channel(q), out.Channel(q)
			bChan := b.Channel(q)
			rowLen := a.W() * e
			planeLen := a.H() * rowLen
			for z := 0; z < a.D(); z++ {
				zBase := z * planeLen
				for y := 0; y < a.H(); y++ {
					base := zBase + y*rowLen
					bBlock := bChan[(z*a.H()+y)*e : (z*a.H()+y)*e+e]
					tileBlock(f, cp[base:base+rowLen], ap[base:base+rowLen], bBlock)
				}
			}
		}, cfg)
	}
}

// outerKernel implements the BroadcastOuter pattern: B shares A's innermost
// (w) extent but is a singleton on the outer axes, so it is indexed by
// clamping the outer coordinate into B's range rather than by squeezing. B
// is always unpacked here (isBroadcastOuter requires B.elempack==1), so its
// single value per w-position is broadcast-filled across A's own lane width
// rather than zipped block-for-block the way BroadcastInner does.
func outerKernel(op Operation, a, b, out *mat.Mat, cfg parallel.Config) {
	f := op.Scalar()
	e := a.Elempack()

	if a.Dims() == 2 {
		parallel.For(a.H(), func(y int) {
			fillBroadcast(f, out.Row(0, 0, y), a.Row(0, 0, y), b.Flat(), e)
		}, cfg)
		return
	}

	parallel.For(a.C(), func(q int) {
		ap, cp := a.Channel(q), out.Channel(q)
		rowLen := a.W() * e
		planeLen := a.H() * rowLen
		for z := 0; z < a.D(); z++ {
			z1 := min(z, b.D()-1)
			zBase := z * planeLen
			for y := 0; y < a.H(); y++ {
				y1 := min(y, b.H()-1)
				base := zBase + y*rowLen
				bRow := b.Row(0, z1, y1)
				fillBroadcast(f, cp[base:base+rowLen], ap[base:base+rowLen], bRow, e)
			}
		}
	}, cfg)
}

// special20Kernel implements BroadcastSpecial20, ncnn's one hand-coded
// exception: A and B are both rank 3 with equal w and c, but B's row is
// singleton, so the same B row is reused for every row of A's channel.
func special20Kernel(op Operation, a, b, out *mat.Mat, cfg parallel.Config) {
	e := requireMatchedElempack(a, b)

	parallel.For(a.C(), func(q int) {
		ap, cp := a.Channel(q), out.Channel(q)
		bRow := b.Channel(q)
		rowLen := a.W() * e
		for y := 0; y < a.H(); y++ {
			base := y * rowLen
			zip(op, cp[base:base+rowLen], ap[base:base+rowLen], bRow[:rowLen])
		}
	}, cfg)
}

// requireMatchedElempack panics if A and B disagree on packing; the
// classifier and normalizer never produce a pair that violates this for the
// broadcast patterns, so a mismatch here is a caller bug.
func requireMatchedElempack(a, b *mat.Mat) int {
	if a.Elempack() != b.Elempack() {
		panic("binaryop: mismatched elempack reached a broadcast kernel")
	}
	return a.Elempack()
}
