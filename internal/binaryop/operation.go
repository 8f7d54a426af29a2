// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package binaryop

import "math"

// Operation is the closed set of binary elementwise functions (spec.md §3).
type Operation int

const (
	Add Operation = iota
	Sub
	Mul
	Div
	Max
	Min
	Pow
	RSub
	RDiv
	RPow
)

// String names an Operation for error messages and CLI flags.
func (op Operation) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Max:
		return "max"
	case Min:
		return "min"
	case Pow:
		return "pow"
	case RSub:
		return "rsub"
	case RDiv:
		return "rdiv"
	case RPow:
		return "rpow"
	default:
		return "unknown"
	}
}

// Reverse implements the argument-reversed involution from spec.md §3:
// SUB↔RSUB, DIV↔RDIV, POW↔RPOW; every other operation maps to itself. The
// Shape Classifier is the sole caller: when it swaps the dominant/subordinate
// operands it replaces op_eff with Reverse(op_eff) so that op(A,B) stays
// mathematically equivalent to the unswapped call.
func (op Operation) Reverse() Operation {
	switch op {
	case Sub:
		return RSub
	case RSub:
		return Sub
	case Div:
		return RDiv
	case RDiv:
		return Div
	case Pow:
		return RPow
	case RPow:
		return Pow
	default:
		return op
	}
}

// Commutative reports whether op(x,y) == op(y,x) for all x, y.
func (op Operation) Commutative() bool {
	switch op {
	case Add, Mul, Max, Min:
		return true
	default:
		return false
	}
}

// scalarFn is the Operation Table's required entry: a plain float32
// function. Numeric anomalies (division by zero, pow of negative bases,
// NaN inputs) are never guarded; host float32 semantics are transparent
// (spec.md §4.3).
type scalarFn func(x, y float32) float32

var scalarTable = [...]scalarFn{
	Add:  func(x, y float32) float32 { return x + y },
	Sub:  func(x, y float32) float32 { return x - y },
	Mul:  func(x, y float32) float32 { return x * y },
	Div:  func(x, y float32) float32 { return x / y },
	Max:  fmax,
	Min:  fmin,
	Pow:  fpow,
	RSub: func(x, y float32) float32 { return y - x },
	RDiv: func(x, y float32) float32 { return y / x },
	RPow: func(x, y float32) float32 { return fpow(y, x) },
}

func fmax(x, y float32) float32 {
	if x > y {
		return x
	}
	return y
}

func fmin(x, y float32) float32 {
	if x < y {
		return x
	}
	return y
}

// fpow casts to float64 for math.Pow and casts the result back to float32,
// exactly as spec.md §4.3 requires for POW and RPOW.
func fpow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Scalar returns op's scalar function.
func (op Operation) Scalar() scalarFn {
	return scalarTable[op]
}

// vectorFn applies op across a K-wide lane of float32s, writing into out.
// All three slices must have equal length K. It exists purely to keep the
// "vector path" from spec.md §4.3/§4.4 structurally distinct from the
// scalar tail, even though this module implements it as a plain Go loop
// (see internal/isa's doc comment for why no assembly is used).
type vectorFn func(out, x, y []float32)

var vectorTable = [...]vectorFn{
	Add: func(out, x, y []float32) {
		for i := range out {
			out[i] = x[i] + y[i]
		}
	},
	Sub: func(out, x, y []float32) {
		for i := range out {
			out[i] = x[i] - y[i]
		}
	},
	Mul: func(out, x, y []float32) {
		for i := range out {
			out[i] = x[i] * y[i]
		}
	},
	Div: func(out, x, y []float32) {
		for i := range out {
			out[i] = x[i] / y[i]
		}
	},
	Max: func(out, x, y []float32) {
		for i := range out {
			out[i] = fmax(x[i], y[i])
		}
	},
	Min: func(out, x, y []float32) {
		for i := range out {
			out[i] = fmin(x[i], y[i])
		}
	},
	Pow: func(out, x, y []float32) {
		for i := range out {
			out[i] = fpow(x[i], y[i])
		}
	},
	RSub: func(out, x, y []float32) {
		for i := range out {
			out[i] = y[i] - x[i]
		}
	},
	RDiv: func(out, x, y []float32) {
		for i := range out {
			out[i] = y[i] / x[i]
		}
	},
	RPow: func(out, x, y []float32) {
		for i := range out {
			out[i] = fpow(y[i], x[i])
		}
	},
}

// Vector returns op's lane function.
func (op Operation) Vector() vectorFn {
	return vectorTable[op]
}
