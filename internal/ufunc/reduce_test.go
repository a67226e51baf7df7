package ufunc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/numpy/internal/tensor"
)

func TestSum(t *testing.T) {
	a := mustArray(t, []int8{1, 2, 3, 4, 5, 6}, tensor.WithShape(tensor.Shape{2, 3}))

	all, err := Sum(a)
	require.NoError(t, err)
	assert.Equal(t, 0, all.Ndim())
	assert.Equal(t, tensor.Int64, all.DType())
	v, err := all.Item()
	require.NoError(t, err)
	assert.Equal(t, int64(21), v)

	tests := []struct {
		axis  int
		shape tensor.Shape
		want  []float64
	}{
		{0, tensor.Shape{3}, []float64{5, 7, 9}},
		{1, tensor.Shape{2}, []float64{6, 15}},
		{-1, tensor.Shape{2}, []float64{6, 15}},
	}
	for _, tt := range tests {
		got, err := Sum(a, tt.axis)
		require.NoError(t, err)
		assert.Equal(t, tt.shape, got.Shape())
		assert.Equal(t, tt.want, got.Float64s())
	}

	_, err = Sum(a, 2)
	require.ErrorIs(t, err, tensor.ErrBounds)
	_, err = Sum(a, 0, 1)
	require.ErrorIs(t, err, tensor.ErrShape)
}

func TestSum_DTypes(t *testing.T) {
	tests := []struct {
		data any
		want tensor.DataType
	}{
		{[]bool{true, true, false}, tensor.Int64},
		{[]uint16{1, 2}, tensor.Uint64},
		{[]float32{1, 2}, tensor.Float32},
		{[]float64{1, 2}, tensor.Float64},
	}
	for _, tt := range tests {
		got, err := Sum(mustArray(t, tt.data))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.DType())
	}

	b, err := Sum(mustArray(t, []bool{true, true, false}))
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, b.Float64s())
}

func TestReduce_StridedView(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.WithShape(tensor.Shape{2, 3}))
	at, err := tensor.Transpose(a)
	require.NoError(t, err)
	got, err := Sum(at, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, got.Float64s())
}

func TestReduce_Empty(t *testing.T) {
	empty, err := tensor.Zeros(tensor.Shape{2, 0}, tensor.Float64)
	require.NoError(t, err)

	s, err := Sum(empty, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, s.Float64s())

	p, err := Prod(empty)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, p.Float64s())

	_, err = Max(empty)
	require.ErrorIs(t, err, tensor.ErrShape)

	m, err := Mean(empty)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.Float64s()[0]))
}

func TestProdMaxMin(t *testing.T) {
	a := mustArray(t, [][]int32{{3, -1}, {2, 5}})

	p, err := Prod(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{-30}, p.Float64s())

	mx, err := Max(a, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int32, mx.DType())
	assert.Equal(t, []any{int32(3), int32(5)}, mx.Values())

	mn, err := Min(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []any{int32(-1), int32(2)}, mn.Values())
}

func TestMean(t *testing.T) {
	a := mustArray(t, [][]int64{{1, 2}, {3, 6}})

	all, err := Mean(a)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, all.DType())
	assert.Equal(t, []float64{3}, all.Float64s())

	rows, err := Mean(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 4.5}, rows.Float64s())

	f := mustArray(t, []float32{1, 2})
	m, err := Mean(f)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, m.DType())
	assert.Equal(t, []float64{1.5}, m.Float64s())
}

func TestCumsum(t *testing.T) {
	a := mustArray(t, [][]int32{{1, 2, 3}, {4, 5, 6}})

	flat, err := Cumsum(a)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6}, flat.Shape())
	assert.Equal(t, tensor.Int64, flat.DType())
	assert.Equal(t, []float64{1, 3, 6, 10, 15, 21}, flat.Float64s())

	cols, err := Cumsum(a, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, cols.Shape())
	assert.Equal(t, []float64{1, 2, 3, 5, 7, 9}, cols.Float64s())

	rows, err := Cumsum(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 6, 4, 9, 15}, rows.Float64s())
}

func TestAccumulate_Maximum(t *testing.T) {
	a := mustArray(t, []float64{1, 3, 2, 5, 4})
	got, err := Maximum.Accumulate(a, tensor.Float64)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 3, 5, 5}, got.Float64s())
}
