package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenso-ml/tenso/internal/binaryop"
	"github.com/tenso-ml/tenso/internal/mat"
	"github.com/tenso-ml/tenso/internal/option"
)

func TestLoadParamDefaultsToAdd(t *testing.T) {
	var l BinaryOp
	require.NoError(t, l.LoadParam(MapParamSource{}))
	assert.Equal(t, binaryop.Add, l.OpType)
	assert.False(t, l.WithScalar)
}

func TestLoadParamWithScalarSetsFlags(t *testing.T) {
	var l BinaryOp
	src := MapParamSource{
		Ints:   map[int]int{0: int(binaryop.Mul), 1: 1},
		Floats: map[int]float32{2: 3.5},
	}
	require.NoError(t, l.LoadParam(src))
	assert.Equal(t, binaryop.Mul, l.OpType)
	assert.True(t, l.WithScalar)
	assert.Equal(t, float32(3.5), l.B)

	flags := l.Flags()
	assert.True(t, flags.OneBlobOnly)
	assert.True(t, flags.SupportInplace)
}

func TestLoadParamRejectsOutOfRangeOpType(t *testing.T) {
	var l BinaryOp
	src := MapParamSource{Ints: map[int]int{0: 999}}
	require.Error(t, l.LoadParam(src))
}

func TestForwardBeforeLoadParamFails(t *testing.T) {
	var l BinaryOp
	a := mat.New(1, 4, 1, 1, 1, 1)
	_, err := l.Forward(a, a, option.Default())
	require.Error(t, err)
}

func TestForwardWithScalarIgnoresSecondOperand(t *testing.T) {
	var l BinaryOp
	src := MapParamSource{Ints: map[int]int{0: int(binaryop.Add), 1: 1}, Floats: map[int]float32{2: 5}}
	require.NoError(t, l.LoadParam(src))

	a := mat.New(1, 3, 1, 1, 1, 1)
	copy(a.Flat(), []float32{1, 2, 3})

	out, err := l.Forward(a, nil, option.Default().WithThreads(1))
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 7, 8}, out.Flat())
}

func TestForwardInPlaceRequiresWithScalar(t *testing.T) {
	var l BinaryOp
	require.NoError(t, l.LoadParam(MapParamSource{}))

	a := mat.New(1, 4, 1, 1, 1, 1)
	require.Error(t, l.ForwardInPlace(a, option.Default()))
}

func TestForwardInPlaceAppliesOp(t *testing.T) {
	var l BinaryOp
	src := MapParamSource{Ints: map[int]int{0: int(binaryop.Sub), 1: 1}, Floats: map[int]float32{2: 1}}
	require.NoError(t, l.LoadParam(src))

	a := mat.New(1, 3, 1, 1, 1, 1)
	copy(a.Flat(), []float32{10, 20, 30})

	require.NoError(t, l.ForwardInPlace(a, option.Default().WithThreads(1)))
	assert.Equal(t, []float32{9, 19, 29}, a.Flat())
}
