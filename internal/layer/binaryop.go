// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layer adapts internal/binaryop's Forward Entry into the param-load
// lifecycle original_source's layer types follow: construct, LoadParam from
// a key-value ParamSource, then Forward or ForwardInPlace any number of
// times. The lifecycle itself is grounded on original_source's
// BinaryOp::load_param/forward/forward_inplace; internal/binaryop owns the
// actual broadcasting math.
package layer

import (
	"github.com/pkg/errors"

	"github.com/tenso-ml/tenso/internal/binaryop"
	"github.com/tenso-ml/tenso/internal/mat"
	"github.com/tenso-ml/tenso/internal/option"
)

// ParamSource is the minimal key-value collaborator LoadParam needs,
// mirroring original_source's ParamDict: parameters are addressed by a
// small integer key, with a per-type default when the key is absent.
type ParamSource interface {
	Int(key, def int) int
	Float(key int, def float32) float32
}

// Flags mirrors the one_blob_only / support_inplace bits original_source
// layers expose to their runtime: whether a layer takes exactly one input
// blob, and whether it can run in place on that blob.
type Flags struct {
	OneBlobOnly    bool
	SupportInplace bool
}

// Param keys read from a ParamSource, matching original_source's load_param
// layout for this layer.
const (
	paramKeyOpType     = 0
	paramKeyWithScalar = 1
	paramKeyB          = 2
)

// BinaryOp is a configured binary elementwise layer: an Operation plus an
// optional baked-in scalar operand B. Its lifecycle is Uninitialized (zero
// value) -> LoadParam -> Forward/ForwardInPlace, called any number of times
// once loaded.
type BinaryOp struct {
	OpType     binaryop.Operation
	WithScalar bool
	B          float32

	loaded bool
}

// LoadParam reads op_type, with_scalar, and b from src, exactly as
// original_source's BinaryOp::load_param does. WithScalar true means this
// layer always operates against the baked-in B rather than a second input
// blob, which in turn makes it eligible for OneBlobOnly/SupportInplace.
func (l *BinaryOp) LoadParam(src ParamSource) error {
	opType := src.Int(paramKeyOpType, int(binaryop.Add))
	if opType < int(binaryop.Add) || opType > int(binaryop.RPow) {
		return errors.Errorf("layer: op_type %d out of range", opType)
	}
	l.OpType = binaryop.Operation(opType)
	l.WithScalar = src.Int(paramKeyWithScalar, 0) != 0
	l.B = src.Float(paramKeyB, 0)
	l.loaded = true
	return nil
}

// Flags reports this layer's one_blob_only/support_inplace bits. Both are
// true exactly when WithScalar is set, matching original_source's
// load_param: a two-blob binary op can never run in place because its
// second operand is itself a blob with its own lifetime.
func (l *BinaryOp) Flags() Flags {
	return Flags{OneBlobOnly: l.WithScalar, SupportInplace: l.WithScalar}
}

// Forward runs the configured operation against a and, when WithScalar is
// false, a second operand blob b. When WithScalar is true b is ignored and
// the baked-in B is used instead.
func (l *BinaryOp) Forward(a, b *mat.Mat, opt option.Option) (*mat.Mat, error) {
	if !l.loaded {
		return nil, errors.New("layer: BinaryOp used before LoadParam")
	}
	if l.WithScalar {
		return binaryop.Forward(a, mat.FromSlice1D([]float32{l.B}), l.OpType, opt)
	}
	return binaryop.Forward(a, b, l.OpType, opt)
}

// ForwardInPlace runs the configured operation against a in place. It is
// only valid when WithScalar is set; callers should consult Flags before
// calling it, matching original_source's forward_inplace contract.
func (l *BinaryOp) ForwardInPlace(a *mat.Mat, opt option.Option) error {
	if !l.loaded {
		return errors.New("layer: BinaryOp used before LoadParam")
	}
	if !l.WithScalar {
		return errors.New("layer: ForwardInPlace requires WithScalar")
	}
	binaryop.ForwardInPlace(a, l.OpType, l.B, opt)
	return nil
}
