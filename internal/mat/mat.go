package mat

import "fmt"

// Mat is a rank 1–4 float32 tensor with an elempack physical-layout factor.
//
// Extents are named the way the surrounding runtime names them: w (width,
// innermost), h (height), d (depth), c (channels, outermost). Unused higher
// extents are 1. elempack groups K adjacent float32 lanes as one logical
// element along the channel axis; elempack=1 means no packing.
//
// Storage is a single contiguous []float32, channel-major, then
// depth-major, then row-major: the physical offset of logical element
// (q, z, y, x) is ((q*d+z)*h+y)*w+x, scaled by elempack.
type Mat struct {
	dims       int
	w, h, d, c int
	elempack   int
	data       []float32
}

// New allocates a zero-filled Mat with the given extents and elempack.
// dims is inferred from which extents are non-trivial is NOT done implicitly;
// callers pass dims explicitly since (w,h,d,c)=(5,1,1,1) is ambiguous between
// a 1-D Mat of length 5 and a degenerate higher-rank Mat.
func New(dims, w, h, d, c, elempack int) *Mat {
	if dims < 1 || dims > 4 {
		panic(fmt.Sprintf("mat.New: dims must be 1..4, got %d", dims))
	}
	n := w * h * d * c * elempack
	return &Mat{
		dims:     dims,
		w:        w,
		h:        h,
		d:        d,
		c:        c,
		elempack: elempack,
		data:     make([]float32, n),
	}
}

// NewView wraps an existing backing slice without copying. Used by Reshape.
func NewView(dims, w, h, d, c, elempack int, data []float32) *Mat {
	return &Mat{dims: dims, w: w, h: h, d: d, c: c, elempack: elempack, data: data}
}

// FromSlice1D builds a 1-D Mat of length len(data), copying the data in.
func FromSlice1D(data []float32) *Mat {
	m := New(1, len(data), 1, 1, 1, 1)
	copy(m.data, data)
	return m
}

func (m *Mat) Dims() int     { return m.dims }
func (m *Mat) W() int        { return m.w }
func (m *Mat) H() int        { return m.h }
func (m *Mat) D() int        { return m.d }
func (m *Mat) C() int        { return m.c }
func (m *Mat) Elempack() int { return m.elempack }

// Size returns the logical element count w*h*d*c (excluding elempack).
func (m *Mat) Size() int { return m.w * m.h * m.d * m.c }

// PhysicalSize returns the physical float32 count w*h*d*c*elempack.
func (m *Mat) PhysicalSize() int { return m.Size() * m.elempack }

// Empty reports whether the Mat has no backing storage, e.g. after a failed
// allocation.
func (m *Mat) Empty() bool { return m == nil || len(m.data) == 0 }

// IsScalar reports whether this Mat holds exactly one physical float32,
// i.e. w=h=d=c=elempack=1. elempack counts here (spec.md §9's
// scalar-detection resolution): a 1-logical-element Mat packed with
// elempack=K holds K distinct physical values, one per channel lane, and is
// not a true scalar even though its logical size is 1.
func (m *Mat) IsScalar() bool { return m.PhysicalSize() == 1 }

// at returns the flat index of logical element (q, z, y, x) scaled for
// elempack, i.e. the offset of the first of the elempack lanes for that
// element.
func (m *Mat) at(q, z, y, x int) int {
	return (((q*m.d+z)*m.h+y)*m.w + x) * m.elempack
}

// Flat returns the entire physical backing slice.
func (m *Mat) Flat() []float32 { return m.data }

// Channel returns the contiguous physical run for channel q: w*h*d*elempack
// float32s.
func (m *Mat) Channel(q int) []float32 {
	n := m.w * m.h * m.d * m.elempack
	off := q * n
	return m.data[off : off+n]
}

// ChannelDepth returns the contiguous physical run for depth slice z within
// channel q: w*h*elempack float32s.
func (m *Mat) ChannelDepth(q, z int) []float32 {
	n := m.w * m.h * m.elempack
	off := m.at(q, z, 0, 0)
	return m.data[off : off+n]
}

// Row returns the contiguous physical run for row y, depth z, channel q: w*elempack
// float32s.
func (m *Mat) Row(q, z, y int) []float32 {
	n := m.w * m.elempack
	off := m.at(q, z, y, 0)
	return m.data[off : off+n]
}

// Reshape returns a non-copying view of the same backing storage with new
// extents. The caller is responsible for ensuring the new extents describe
// the same physical float count; this mirrors the "non-copying reshape"
// collaborator primitive from spec.md §6.
func (m *Mat) Reshape(dims, w, h, d, c int) *Mat {
	return NewView(dims, w, h, d, c, m.elempack, m.data)
}

// CreateLike allocates a new Mat with the same shape and elempack as
// template. It is the collaborator allocation primitive from spec.md §6;
// Forward Entry uses it to build the output tensor from the dominant
// operand.
func CreateLike(template *Mat, alloc func(floats int) []float32) *Mat {
	n := template.PhysicalSize()
	buf := alloc(n)
	if buf == nil || len(buf) < n {
		return &Mat{} // empty: signals allocation failure to the caller
	}
	return &Mat{
		dims:     template.dims,
		w:        template.w,
		h:        template.h,
		d:        template.d,
		c:        template.c,
		elempack: template.elempack,
		data:     buf[:n],
	}
}

// SameShape reports whether two Mats have identical dims, w, h, d, c, and
// elempack.
func (m *Mat) SameShape(o *Mat) bool {
	return m.dims == o.dims && m.w == o.w && m.h == o.h && m.d == o.d && m.c == o.c && m.elempack == o.elempack
}

// String renders a human-readable shape, e.g. "Mat[dims=3 w=2 h=3 d=1 c=4 pack=1]".
func (m *Mat) String() string {
	return fmt.Sprintf("Mat[dims=%d w=%d h=%d d=%d c=%d pack=%d]", m.dims, m.w, m.h, m.d, m.c, m.elempack)
}
