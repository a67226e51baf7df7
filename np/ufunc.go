// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package np

import (
	"github.com/born-ml/numpy/internal/tensor"
	"github.com/born-ml/numpy/internal/ufunc"
)

// BinaryFunc is an elementwise operation of two broadcast operands. An
// operand is an *NdArray or anything AsArray accepts; Go ints become int64
// and Go floats float64.
type BinaryFunc func(x, y any) (*NdArray, error)

// UnaryFunc is an elementwise operation of one operand.
type UnaryFunc func(x any) (*NdArray, error)

func operand(v any) (*NdArray, error) {
	if a, ok := v.(*NdArray); ok {
		return a, nil
	}
	return tensor.AsArray(v)
}

func binary(u *ufunc.Binary) BinaryFunc {
	return func(x, y any) (*NdArray, error) {
		a, err := operand(x)
		if err != nil {
			return nil, err
		}
		b, err := operand(y)
		if err != nil {
			return nil, err
		}
		return u.Apply(a, b)
	}
}

func unary(u *ufunc.Unary) UnaryFunc {
	return func(x any) (*NdArray, error) {
		a, err := operand(x)
		if err != nil {
			return nil, err
		}
		return u.Apply(a)
	}
}

// Arithmetic.
var (
	Add      = binary(ufunc.Add)
	Subtract = binary(ufunc.Subtract)
	Multiply = binary(ufunc.Multiply)
	Divide   = binary(ufunc.Divide) // true division
	Mod      = binary(ufunc.Mod)    // sign of the divisor
	Power    = binary(ufunc.Power)
	Minimum  = binary(ufunc.Minimum)
	Maximum  = binary(ufunc.Maximum)
)

// Comparisons. Results are bool arrays.
var (
	Equal        = binary(ufunc.Equal)
	NotEqual     = binary(ufunc.NotEqual)
	Less         = binary(ufunc.Less)
	LessEqual    = binary(ufunc.LessEqual)
	Greater      = binary(ufunc.Greater)
	GreaterEqual = binary(ufunc.GreaterEqual)
)

// Unary functions.
var (
	Negative = unary(ufunc.Negative)
	Absolute = unary(ufunc.Absolute)
	Square   = unary(ufunc.Square)
	Sqrt     = unary(ufunc.Sqrt)
	Cbrt     = unary(ufunc.Cbrt)
	Sin      = unary(ufunc.Sin)
	Cos      = unary(ufunc.Cos)
	Tan      = unary(ufunc.Tan)
	Exp      = unary(ufunc.Exp)
	Log      = unary(ufunc.Log)
	Log2     = unary(ufunc.Log2)
	Log10    = unary(ufunc.Log10)
	Round    = unary(ufunc.Round) // half to even
	Trunc    = unary(ufunc.Trunc)
	Floor    = unary(ufunc.Floor)
	Ceil     = unary(ufunc.Ceil)
)

// Sum adds the elements of a, over everything or along one axis.
func Sum(a *NdArray, axis ...int) (*NdArray, error) {
	return ufunc.Sum(a, axis...)
}

// Prod multiplies the elements of a, over everything or along one axis.
func Prod(a *NdArray, axis ...int) (*NdArray, error) {
	return ufunc.Prod(a, axis...)
}

// Mean averages the elements of a, over everything or along one axis.
func Mean(a *NdArray, axis ...int) (*NdArray, error) {
	return ufunc.Mean(a, axis...)
}

// Max returns the largest element, over everything or along one axis.
func Max(a *NdArray, axis ...int) (*NdArray, error) {
	return ufunc.Max(a, axis...)
}

// Min returns the smallest element, over everything or along one axis.
func Min(a *NdArray, axis ...int) (*NdArray, error) {
	return ufunc.Min(a, axis...)
}

// Cumsum returns running sums of a, flattened or along one axis.
func Cumsum(a *NdArray, axis ...int) (*NdArray, error) {
	return ufunc.Cumsum(a, axis...)
}

// Dot returns the dot product of a and b.
func Dot(a, b *NdArray) (*NdArray, error) {
	return ufunc.Dot(a, b)
}

// Matmul returns the matrix product of a and b, broadcasting stacked
// matrices.
func Matmul(a, b *NdArray) (*NdArray, error) {
	return ufunc.Matmul(a, b)
}

// Where picks elements of x where cond is true and of y elsewhere.
func Where(cond *NdArray, x, y any) (*NdArray, error) {
	a, err := operand(x)
	if err != nil {
		return nil, err
	}
	b, err := operand(y)
	if err != nil {
		return nil, err
	}
	return ufunc.Where(cond, a, b)
}
