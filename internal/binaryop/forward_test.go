package binaryop

import (
	"testing"

	"github.com/tenso-ml/tenso/internal/mat"
	"github.com/tenso-ml/tenso/internal/option"
)

func optWithThreads(n int) option.Option {
	return option.Default().WithThreads(n)
}

func fill(m *mat.Mat, start float32) *mat.Mat {
	data := m.Flat()
	for i := range data {
		data[i] = start + float32(i)
	}
	return m
}

func TestForwardScalar(t *testing.T) {
	a := fill(mat.New(1, 4, 1, 1, 1, 1), 1) // 1,2,3,4
	b := mat.New(1, 1, 1, 1, 1, 1)
	b.Flat()[0] = 10

	out, err := Forward(a, b, Add, optWithThreads(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float32{11, 12, 13, 14}
	for i, w := range want {
		if out.Flat()[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out.Flat()[i], w)
		}
	}
}

func TestForwardNoBroadcast(t *testing.T) {
	a := fill(mat.New(1, 3, 1, 1, 1, 1), 10) // 10,11,12
	b := fill(mat.New(1, 3, 1, 1, 1, 1), 1)  // 1,2,3

	out, err := Forward(a, b, Sub, optWithThreads(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float32{9, 9, 9}
	for i, w := range want {
		if out.Flat()[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out.Flat()[i], w)
		}
	}
}

func TestForwardBroadcastInnerType9(t *testing.T) {
	a := fill(mat.New(3, 2, 2, 1, 2, 1), 0) // dims3, w=2,h=2,c=2
	b := mat.New(1, 2, 1, 1, 1, 1)          // per-channel scalar, dims1, len 2
	b.Flat()[0] = 100
	b.Flat()[1] = 200

	out, err := Forward(a, b, Add, optWithThreads(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ch0 := out.Channel(0)
	ch1 := out.Channel(1)
	for i, v := range ch0 {
		if v != a.Channel(0)[i]+100 {
			t.Errorf("channel0[%d] = %v, want %v", i, v, a.Channel(0)[i]+100)
		}
	}
	for i, v := range ch1 {
		if v != a.Channel(1)[i]+200 {
			t.Errorf("channel1[%d] = %v, want %v", i, v, a.Channel(1)[i]+200)
		}
	}
}

func TestForwardSwapAppliesReverse(t *testing.T) {
	// a and b have equal dims but a has fewer elements, so a and b swap and
	// Sub becomes RSub.
	a := mat.New(1, 1, 1, 1, 1, 1)
	a.Flat()[0] = 3
	b := fill(mat.New(1, 2, 1, 1, 1, 1), 10) // 10, 11

	out, err := Forward(a, b, Sub, optWithThreads(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// dominant is b (dims tie, but b has more elements); op becomes RSub, and
	// the original unswapped semantics (a - b) fall out of RSub(b, a) = a - b.
	want := []float32{-7, -8}
	for i, w := range want {
		if out.Flat()[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out.Flat()[i], w)
		}
	}
}

func TestForwardUnsupportedReturnsSuccessWithUnwrittenOutput(t *testing.T) {
	a := mat.New(3, 4, 5, 1, 6, 1)
	b := mat.New(3, 3, 5, 1, 6, 1)

	out, err := Forward(a, b, Add, optWithThreads(1))
	if err != nil {
		t.Fatalf("unexpected error for unsupported pattern: %v", err)
	}
	if out.Empty() {
		t.Fatalf("expected allocated (if unwritten) output")
	}
	for _, v := range out.Flat() {
		if v != 0 {
			t.Errorf("expected zero-filled unwritten output, got %v", v)
		}
	}
}

func TestForwardAllocationFailure(t *testing.T) {
	a := mat.New(1, 4, 1, 1, 1, 1)
	b := mat.New(1, 1, 1, 1, 1, 1)
	failing := func(int) []float32 { return nil }

	_, err := Forward(a, b, Add, option.Option{NumThreads: 1, BlobAllocator: allocFn(failing)})
	if err != ErrAllocation {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
}

type allocFn func(int) []float32

func (f allocFn) Alloc(n int) []float32 { return f(n) }

func TestForwardInPlace(t *testing.T) {
	a := fill(mat.New(1, 4, 1, 1, 1, 1), 1)
	ForwardInPlace(a, Mul, 2, optWithThreads(1))
	want := []float32{2, 4, 6, 8}
	for i, w := range want {
		if a.Flat()[i] != w {
			t.Errorf("a[%d] = %v, want %v", i, a.Flat()[i], w)
		}
	}
}

func TestForwardThreadInvarianceBroadcastOuter(t *testing.T) {
	a := fill(mat.New(3, 4, 5, 1, 3, 1), 0)
	b := fill(mat.New(3, 4, 1, 1, 1, 1), 1)

	outSeq, err := Forward(a, b, Add, optWithThreads(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outPar, err := Forward(a, b, Add, optWithThreads(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range outSeq.Flat() {
		if outSeq.Flat()[i] != outPar.Flat()[i] {
			t.Fatalf("thread invariance violated at %d: %v != %v", i, outSeq.Flat()[i], outPar.Flat()[i])
		}
	}
}
