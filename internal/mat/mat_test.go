package mat

import "testing"

func assertEqualFloats(t *testing.T, expected, actual []float32, msg string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("%s: length mismatch: expected %d, got %d", msg, len(expected), len(actual))
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("%s: at %d expected %v, got %v", msg, i, expected[i], actual[i])
		}
	}
}

func TestNewShapeAndSize(t *testing.T) {
	m := New(3, 2, 3, 1, 4, 1) // w=2 h=3 d=1 c=4
	if m.Size() != 24 {
		t.Errorf("expected size 24, got %d", m.Size())
	}
	if m.PhysicalSize() != 24 {
		t.Errorf("expected physical size 24, got %d", m.PhysicalSize())
	}
}

func TestChannelLayoutIsContiguous(t *testing.T) {
	m := New(3, 2, 2, 1, 2, 1) // w=2 h=2 c=2, 4 elements per channel
	flat := m.Flat()
	for i := range flat {
		flat[i] = float32(i)
	}
	assertEqualFloats(t, []float32{0, 1, 2, 3}, m.Channel(0), "channel 0")
	assertEqualFloats(t, []float32{4, 5, 6, 7}, m.Channel(1), "channel 1")
}

func TestRowWithinChannel(t *testing.T) {
	m := New(3, 3, 2, 1, 2, 1) // w=3 h=2 c=2
	flat := m.Flat()
	for i := range flat {
		flat[i] = float32(i)
	}
	assertEqualFloats(t, []float32{0, 1, 2}, m.Row(0, 0, 0), "ch0 row0")
	assertEqualFloats(t, []float32{3, 4, 5}, m.Row(0, 0, 1), "ch0 row1")
	assertEqualFloats(t, []float32{6, 7, 8}, m.Row(1, 0, 0), "ch1 row0")
}

func TestIsScalarIncludesElempack(t *testing.T) {
	packed := New(1, 1, 1, 1, 1, 4)
	if packed.IsScalar() {
		t.Errorf("a packed 1-logical-element Mat holds 4 distinct physical values and must not be classified as scalar")
	}
	notScalar := New(1, 4, 1, 1, 1, 1)
	if notScalar.IsScalar() {
		t.Errorf("a 4-element Mat must not be classified as scalar")
	}
	trueScalar := New(1, 1, 1, 1, 1, 1)
	if !trueScalar.IsScalar() {
		t.Errorf("a single unpacked element must be classified as scalar")
	}
}

func TestReshapeIsAView(t *testing.T) {
	m := New(2, 1, 3, 1, 1, 1) // dims=2, w=1, h=3
	flat := m.Flat()
	flat[0], flat[1], flat[2] = 1, 2, 3

	v := m.Reshape(1, 3, 1, 1, 1)
	assertEqualFloats(t, []float32{1, 2, 3}, v.Flat(), "reshaped view")

	v.Flat()[0] = 99
	if m.Flat()[0] != 99 {
		t.Errorf("Reshape must share backing storage, got independent copy")
	}
}

func TestCreateLikeMatchesShapeAndElempack(t *testing.T) {
	template := New(3, 2, 3, 1, 4, 2)
	out := CreateLike(template, func(n int) []float32 { return make([]float32, n) })
	if !out.SameShape(template) {
		t.Errorf("CreateLike: expected same shape as template, got %s vs %s", out, template)
	}
}

func TestCreateLikeAllocationFailure(t *testing.T) {
	template := New(1, 4, 1, 1, 1, 1)
	out := CreateLike(template, func(int) []float32 { return nil })
	if !out.Empty() {
		t.Errorf("CreateLike: expected empty Mat on allocation failure")
	}
}
