package ufunc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/numpy/internal/tensor"
)

func mustArray(t *testing.T, data any, opts ...tensor.ArrayOption) *tensor.NdArray {
	t.Helper()
	a, err := tensor.AsArray(data, opts...)
	require.NoError(t, err)
	return a
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		in    []tensor.DataType
		want  tensor.DataType
	}{
		{"exact int8", SameKindRules, []tensor.DataType{i8, i8}, i8},
		{"int8 and float64", SameKindRules, []tensor.DataType{i8, f64}, f64},
		{"int8 and uint8", SameKindRules, []tensor.DataType{i8, u8}, i16},
		{"bool and int32", SameKindRules, []tensor.DataType{bl, i32}, i32},
		{"int32 division", FloatRules, []tensor.DataType{i32, i32}, f32},
		{"int64 division", FloatRules, []tensor.DataType{i64, i64}, f64},
		{"bool mod", ModRules, []tensor.DataType{bl, bl}, i8},
		{"compare", CompareRules, []tensor.DataType{f32, i64}, bl},
		{"uint8 sqrt", UnaryFloatRules, []tensor.DataType{u8}, f32},
		{"uint8 negative", UnarySignedRules, []tensor.DataType{u8}, i16},
		{"float16 sqrt", UnaryFloatRules, []tensor.DataType{f16}, f16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(tt.rules, tt.in...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Out)
		})
	}

	_, err := Resolve(SameKindRules, u64, i64)
	require.ErrorIs(t, err, tensor.ErrDType)
	assert.Contains(t, err.Error(), "uint64, int64")

	_, err = Negative.Resolve(u64)
	require.ErrorIs(t, err, tensor.ErrDType)
	assert.Contains(t, err.Error(), "negative")
}

func TestBinary_Promotion(t *testing.T) {
	a := mustArray(t, []int8{1, 2, 3})
	b := mustArray(t, []int8{4, 5, 6})
	sum, err := Add.Apply(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int8, sum.DType())
	assert.Equal(t, []any{int8(5), int8(7), int8(9)}, sum.Values())

	c := mustArray(t, []float64{0.5, 0.5, 0.5})
	mixed, err := Add.Apply(a, c)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, mixed.DType())
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, mixed.Float64s())
}

func TestBinary_IntegerOverflowWraps(t *testing.T) {
	a := mustArray(t, []int8{127})
	b := mustArray(t, []int8{1})
	sum, err := Add.Apply(a, b)
	require.NoError(t, err)
	assert.Equal(t, []any{int8(-128)}, sum.Values())
}

func TestBinary_Broadcast(t *testing.T) {
	col := mustArray(t, [][]int32{{0}, {10}, {20}})
	row := mustArray(t, []int32{1, 2, 3, 4})
	sum, err := Add.Apply(col, row)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, sum.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 11, 12, 13, 14, 21, 22, 23, 24}, sum.Float64s())

	_, err = Add.Apply(mustArray(t, []int32{1, 2}), mustArray(t, []int32{1, 2, 3}))
	require.ErrorIs(t, err, tensor.ErrShape)
}

func TestBinary_Out(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4}, tensor.WithShape(tensor.Shape{2, 2}))
	one := mustArray(t, []float64{1})
	require.NoError(t, Add.Out(a, one, a))
	assert.Equal(t, []float64{2, 3, 4, 5}, a.Float64s())

	small, err := tensor.Zeros(tensor.Shape{2}, tensor.Float64)
	require.NoError(t, err)
	require.ErrorIs(t, Add.Out(a, one, small), tensor.ErrShape)
}

func TestBinary_StridedOperands(t *testing.T) {
	a := mustArray(t, []int64{1, 2, 3, 4, 5, 6}, tensor.WithShape(tensor.Shape{2, 3}))
	at, err := tensor.Transpose(a)
	require.NoError(t, err)
	prod, err := Multiply.Apply(at, at)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, prod.Shape())
	assert.Equal(t, []float64{1, 16, 4, 25, 9, 36}, prod.Float64s())
}

func TestArithmetic(t *testing.T) {
	x := mustArray(t, []float64{-7, 7, 2.5})
	y := mustArray(t, []float64{3, -3, 2})
	tests := []struct {
		u    *Binary
		want []float64
	}{
		{Subtract, []float64{-10, 10, 0.5}},
		{Divide, []float64{-7.0 / 3, 7.0 / -3, 1.25}},
		{Mod, []float64{2, -2, 0.5}},
		{Power, []float64{-343, 1.0 / 343, 6.25}},
		{Minimum, []float64{-7, -3, 2}},
		{Maximum, []float64{3, 7, 2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.u.Name, func(t *testing.T) {
			got, err := tt.u.Apply(x, y)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got.Float64s(), 1e-12)
		})
	}
}

func TestMod_Integers(t *testing.T) {
	x := mustArray(t, []int32{-7, 7, 5})
	y := mustArray(t, []int32{3, -3, 0})
	got, err := Mod.Apply(x, y)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int32, got.DType())
	assert.Equal(t, []any{int32(2), int32(-2), int32(0)}, got.Values())
}

func TestDivide_IntegersGiveFloats(t *testing.T) {
	got, err := Divide.Apply(mustArray(t, []int32{1, 3}), mustArray(t, []int32{2, 2}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, got.DType())
	assert.Equal(t, []float64{0.5, 1.5}, got.Float64s())
}

func TestComparisons(t *testing.T) {
	x := mustArray(t, []int64{1, 2, 3})
	y := mustArray(t, []float64{2, 2, 2})
	tests := []struct {
		u    *Binary
		want []any
	}{
		{Equal, []any{false, true, false}},
		{NotEqual, []any{true, false, true}},
		{Less, []any{true, false, false}},
		{LessEqual, []any{true, true, false}},
		{Greater, []any{false, false, true}},
		{GreaterEqual, []any{false, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.u.Name, func(t *testing.T) {
			got, err := tt.u.Apply(x, y)
			require.NoError(t, err)
			assert.Equal(t, tensor.Bool, got.DType())
			assert.Equal(t, tt.want, got.Values())
		})
	}
}

func TestBoolKernels(t *testing.T) {
	x := mustArray(t, []bool{true, true, false, false})
	y := mustArray(t, []bool{true, false, true, false})
	add, err := Add.Apply(x, y)
	require.NoError(t, err)
	assert.Equal(t, []any{true, true, true, false}, add.Values())

	mul, err := Multiply.Apply(x, y)
	require.NoError(t, err)
	assert.Equal(t, []any{true, false, false, false}, mul.Values())

	lt, err := Less.Apply(x, y)
	require.NoError(t, err)
	assert.Equal(t, []any{false, false, true, false}, lt.Values())
}

func TestUnary(t *testing.T) {
	x := mustArray(t, []float64{-2.5, 0.5, 1.5, 4})
	tests := []struct {
		u    *Unary
		want []float64
	}{
		{Negative, []float64{2.5, -0.5, -1.5, -4}},
		{Absolute, []float64{2.5, 0.5, 1.5, 4}},
		{Square, []float64{6.25, 0.25, 2.25, 16}},
		{Round, []float64{-2, 0, 2, 4}},
		{Trunc, []float64{-2, 0, 1, 4}},
		{Floor, []float64{-3, 0, 1, 4}},
		{Ceil, []float64{-2, 1, 2, 4}},
		{Exp, []float64{math.Exp(-2.5), math.Exp(0.5), math.Exp(1.5), math.Exp(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.u.Name, func(t *testing.T) {
			got, err := tt.u.Apply(x)
			require.NoError(t, err)
			assert.Equal(t, tensor.Float64, got.DType())
			assert.InDeltaSlice(t, tt.want, got.Float64s(), 1e-12)
		})
	}

	sq, err := Sqrt.Apply(mustArray(t, []float64{-1}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(sq.Float64s()[0]))
}

func TestUnary_IntegerInputs(t *testing.T) {
	x := mustArray(t, []int16{-4, 9})
	abs, err := Absolute.Apply(x)
	require.NoError(t, err)
	assert.Equal(t, []any{int16(4), int16(9)}, abs.Values())

	root, err := Sqrt.Apply(mustArray(t, []int32{4, 9}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, root.DType())
	assert.Equal(t, []float64{2, 3}, root.Float64s())

	neg, err := Negative.Apply(mustArray(t, []uint8{1, 200}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Int16, neg.DType())
	assert.Equal(t, []any{int16(-1), int16(-200)}, neg.Values())

	r, err := Round.Apply(mustArray(t, []bool{true, false}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, r.DType())
	assert.Equal(t, []float64{1, 0}, r.Float64s())
}

func TestUnary_Out(t *testing.T) {
	a := mustArray(t, []float64{1, 4, 9})
	require.NoError(t, Sqrt.Out(a, a))
	assert.Equal(t, []float64{1, 2, 3}, a.Float64s())

	b, err := tensor.Zeros(tensor.Shape{2}, tensor.Float64)
	require.NoError(t, err)
	require.ErrorIs(t, Sqrt.Out(a, b), tensor.ErrShape)
}

func TestWhere(t *testing.T) {
	cond := mustArray(t, [][]bool{{true}, {false}})
	x := mustArray(t, []int32{1, 2, 3})
	y := mustArray(t, []float32{-1})
	got, err := Where(cond, x, y)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())
	assert.Equal(t, tensor.Float32, got.DType())
	assert.Equal(t, []float64{1, 2, 3, -1, -1, -1}, got.Float64s())

	_, err = Where(mustArray(t, []bool{true, false}), x, y)
	require.ErrorIs(t, err, tensor.ErrShape)
}
