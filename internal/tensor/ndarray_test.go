package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// mustArray builds an array from nested data, failing the test on error.
func mustArray(t *testing.T, data any, opts ...ArrayOption) *NdArray {
	t.Helper()
	a, err := AsArray(data, opts...)
	require.NoError(t, err)
	return a
}

func TestAsArray_Nested(t *testing.T) {
	a := mustArray(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, Float64, a.DType())
	assert.Equal(t, []int{3, 1}, a.Strides())
	assert.Equal(t, 0, a.Offset())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Float64s())
}

func TestAsArray_WithShape(t *testing.T) {
	a := mustArray(t, []int{1, 2, 3, 4, 5, 6}, WithShape(Shape{2, 3}))
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, Int64, a.DType())

	v, err := a.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	_, err = AsArray([]int{1, 2, 3}, WithShape(Shape{2, 2}))
	require.ErrorIs(t, err, ErrShape)
}

func TestAsArray_TypedSliceIsShared(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	a := mustArray(t, data, WithShape(Shape{2, 2}))
	assert.Equal(t, Float32, a.DType())

	require.NoError(t, a.Set(float32(9), 1, 1))
	assert.Equal(t, float32(9), data[3])

	b := mustArray(t, a.Buffer())
	assert.True(t, a.SharesMemory(b))
}

func TestAsArray_DTypeInference(t *testing.T) {
	tests := []struct {
		name string
		data any
		want DataType
	}{
		{"ints", []any{1, 2}, Int64},
		{"int8s", [][]int8{{1}, {2}}, Int8},
		{"mixed int float", []any{1, 2.5}, Float64},
		{"mixed bool int", []any{true, 3}, Int64},
		{"bools", []bool{true, false}, Bool},
		{"float16", []any{float16.Fromfloat32(1)}, Float16},
		{"scalar", 3.5, Float64},
		{"empty", []any{}, Float64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustArray(t, tt.data)
			assert.Equal(t, tt.want, a.DType())
		})
	}
}

func TestAsArray_Scalar(t *testing.T) {
	a := mustArray(t, int32(7))
	assert.Equal(t, Shape{}, a.Shape())
	assert.Equal(t, 0, a.Ndim())
	v, err := a.Item()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
	assert.Equal(t, int32(7), a.ToDense())
}

func TestAsArray_Ragged(t *testing.T) {
	_, err := AsArray([]any{[]int{1, 2}, []int{3}})
	require.ErrorIs(t, err, ErrShape)

	_, err = AsArray([]any{[]int{1, 2}, 3})
	require.ErrorIs(t, err, ErrShape)

	_, err = AsArray([]any{"x"})
	require.ErrorIs(t, err, ErrDType)
}

func TestAsArray_NdArrayElements(t *testing.T) {
	row := mustArray(t, []int32{1, 2})
	a := mustArray(t, []*NdArray{row, row})
	assert.Equal(t, Shape{2, 2}, a.Shape())
	assert.Equal(t, Int32, a.DType())
	assert.False(t, a.SharesMemory(row))
}

func TestAsArray_NdArrayPassThrough(t *testing.T) {
	a := mustArray(t, []float64{1.7, -2.2})
	assert.Same(t, a, mustArray(t, a))

	b := mustArray(t, a, WithDType(Int32))
	assert.Equal(t, Int32, b.DType())
	assert.Equal(t, []any{int32(1), int32(-2)}, b.Values())
	assert.False(t, a.SharesMemory(b))
}

func TestView(t *testing.T) {
	buf := WrapSlice([]int64{0, 1, 2, 3, 4, 5, 6, 7})

	a, err := View(buf, Shape{2, 2}, 1, []int{4, 2}, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5, 7}, a.Float64s())
	assert.False(t, a.IsContiguous())

	_, err = View(buf, Shape{2, 3}, 0, nil, true)
	require.ErrorIs(t, err, ErrShape)

	_, err = View(buf, Shape{2, 2}, 2, []int{4, 2}, false)
	require.ErrorIs(t, err, ErrShape, "extent past the buffer end")

	_, err = View(buf, Shape{3}, 1, []int{-1}, false)
	require.ErrorIs(t, err, ErrShape, "extent before the buffer start")

	rev, err := View(buf, Shape{3}, 7, []int{-2}, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 5, 3}, rev.Float64s())

	empty, err := View(buf, Shape{0, 5}, 100, []int{5, 1}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Size())
}

func TestAtSet_Bounds(t *testing.T) {
	a := mustArray(t, [][]int32{{1, 2, 3}, {4, 5, 6}})

	v, err := a.At(-1, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(6), v)

	_, err = a.At(2, 0)
	require.ErrorIs(t, err, ErrBounds)
	assert.Contains(t, err.Error(), "axis 0")
	assert.Contains(t, err.Error(), "[2 3]")

	_, err = a.At(0)
	require.ErrorIs(t, err, ErrBounds)

	require.NoError(t, a.Set(2.9, 0, -3))
	v, err = a.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	require.ErrorIs(t, a.Set("x", 0, 0), ErrDType)
}

func TestItem_RequiresOneElement(t *testing.T) {
	a := mustArray(t, []float32{1, 2})
	_, err := a.Item()
	require.ErrorIs(t, err, ErrShape)

	b := mustArray(t, [][]float32{{5}})
	v, err := b.Item()
	require.NoError(t, err)
	assert.Equal(t, float32(5), v)
}

func TestCopy_IsContiguousAndIndependent(t *testing.T) {
	a := mustArray(t, [][]int64{{1, 2, 3}, {4, 5, 6}})
	at, err := Transpose(a)
	require.NoError(t, err)
	require.False(t, at.IsContiguous())

	c := at.Copy()
	assert.True(t, c.IsContiguous())
	assert.False(t, c.SharesMemory(a))
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, c.Float64s())

	assert.Same(t, a, a.Contiguous())
	assert.NotSame(t, at, at.Contiguous())
}

func TestToDense(t *testing.T) {
	a := mustArray(t, [][]int64{{1, 2}, {3, 4}})
	assert.Equal(t, []any{[]any{int64(1), int64(2)}, []any{int64(3), int64(4)}}, a.ToDense())
	assert.Equal(t, "[[1 2] [3 4]]", a.Dumps())
}

func TestToDense_RoundTrip(t *testing.T) {
	h := float16.Fromfloat32
	tests := []struct {
		name  string
		data  any
		exact bool
	}{
		{"bool", [][]bool{{true, false}, {false, true}}, true},
		{"int8", [][][]int8{{{-128, 1}}, {{0, 127}}}, true},
		{"uint16", []uint16{0, 1, 65535}, true},
		{"int64", [][]int64{{1 << 40, -3, 0}}, true},
		{"float16", [][]float16.Float16{{h(0.5), h(-1.25)}, {h(3), h(1024)}}, false},
		{"float32", [][]float32{{0.1, -2.5}, {3.25, 1e-3}}, false},
		{"float64", [][]float64{{0.1, 0.2, 0.3}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustArray(t, tt.data)
			dense := a.ToDense()
			back := mustArray(t, dense)

			assert.Equal(t, a.Shape(), back.Shape())
			assert.Equal(t, a.DType(), back.DType())
			if tt.exact {
				assert.Equal(t, a.Values(), back.Values())
				assert.Equal(t, dense, back.ToDense())
				return
			}
			assert.InDeltaSlice(t, a.Float64s(), back.Float64s(), 1e-6)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "array(shape=(2,3), dtype=float64)", mustArray(t, [][]float64{{1, 2, 3}, {4, 5, 6}}).String())
	assert.Equal(t, "array(shape=(2,), dtype=bool)", mustArray(t, []bool{true, false}).String())
	assert.Equal(t, "array(shape=(), dtype=int64)", mustArray(t, 3).String())
}

func TestPositions_MultipleOperands(t *testing.T) {
	a := mustArray(t, [][]int64{{1, 2, 3}, {4, 5, 6}})
	at, err := Transpose(a)
	require.NoError(t, err)
	c := at.Copy()

	var pa, pc []int
	for ptrs := range Positions(at.Shape(), at, c) {
		pa = append(pa, ptrs[0])
		pc = append(pc, ptrs[1])
	}
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, pa)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, pc)

	assert.Panics(t, func() { Positions(Shape{3}, a) })
}

func TestBuffer_Conversions(t *testing.T) {
	b, err := NewBuffer(Uint8, 3)
	require.NoError(t, err)
	b.SetInt(0, -1)
	b.SetFloat(1, 3.99)
	b.SetBool(2, true)
	assert.Equal(t, []any{uint8(255), uint8(3), uint8(1)}, []any{b.Item(0), b.Item(1), b.Item(2)})

	f, err := NewBuffer(Float16, 1)
	require.NoError(t, err)
	f.SetFloat(0, 0.5)
	assert.InDelta(t, 0.5, f.Float(0), 1e-6)

	_, err = NewBuffer(Unicode, 1)
	require.ErrorIs(t, err, ErrDType)

	data, err := Data[uint8](b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 3, 1}, data)
	_, err = Data[int8](b)
	require.ErrorIs(t, err, ErrDType)

	c := b.Clone()
	c.SetInt(0, 0)
	assert.Equal(t, uint8(255), b.Item(0))
}
