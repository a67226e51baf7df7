// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package np

import (
	"math/rand"

	"github.com/born-ml/numpy/internal/tensor"
)

// NdArray is an N-dimensional strided view over a typed buffer.
type NdArray = tensor.NdArray

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// DataType identifies the element type of an array.
type DataType = tensor.DataType

// Buffer is the flat typed storage shared by array views.
type Buffer = tensor.Buffer

// Element constrains Go types usable as array storage.
type Element = tensor.Element

// ArrayOption configures AsArray.
type ArrayOption = tensor.ArrayOption

// Data type constants.
const (
	Bool    DataType = tensor.Bool
	Int8    DataType = tensor.Int8
	Int16   DataType = tensor.Int16
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Uint16  DataType = tensor.Uint16
	Uint32  DataType = tensor.Uint32
	Uint64  DataType = tensor.Uint64
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Unicode DataType = tensor.Unicode
)

// Error classes. Every error returned by this package wraps one of them.
var (
	ErrShape  = tensor.ErrShape
	ErrBounds = tensor.ErrBounds
	ErrSyntax = tensor.ErrSyntax
	ErrDType  = tensor.ErrDType
)

// ParseDType resolves a dtype name ("int8") or type code ("i1").
func ParseDType(s string) (DataType, error) {
	return tensor.ParseDType(s)
}

// CanCast reports whether from converts to to without loss.
func CanCast(from, to DataType) bool {
	return tensor.CanCast(from, to)
}

// WithShape sets the shape of the array built by AsArray.
func WithShape(shape Shape) ArrayOption {
	return tensor.WithShape(shape)
}

// WithDType sets the dtype of the array built by AsArray.
func WithDType(dtype DataType) ArrayOption {
	return tensor.WithDType(dtype)
}

// AsArray converts data to an array.
//
// data may be an *NdArray, a *Buffer, a typed slice (shared, not copied),
// nested slices or arrays of numbers, or a single scalar.
//
// Example:
//
//	a, err := np.AsArray([]int32{1, 2, 3, 4, 5, 6}, np.WithShape(np.Shape{2, 3}))
func AsArray(data any, opts ...ArrayOption) (*NdArray, error) {
	return tensor.AsArray(data, opts...)
}

// WrapSlice returns a buffer backed by data.
func WrapSlice[T Element](data []T) *Buffer {
	return tensor.WrapSlice(data)
}

// View builds an array over buf without copying. A nil stride means
// row-major. With validate, the element count must equal the buffer length.
func View(buf *Buffer, shape Shape, offset int, stride []int, validate bool) (*NdArray, error) {
	return tensor.View(buf, shape, offset, stride, validate)
}

// Zeros returns an array of zeros.
func Zeros(shape Shape, dtype DataType) (*NdArray, error) {
	return tensor.Zeros(shape, dtype)
}

// Ones returns an array of ones.
func Ones(shape Shape, dtype DataType) (*NdArray, error) {
	return tensor.Ones(shape, dtype)
}

// Empty returns an array without meaningful contents.
func Empty(shape Shape, dtype DataType) (*NdArray, error) {
	return tensor.Empty(shape, dtype)
}

// Full returns an array filled with value.
func Full(shape Shape, value any, dtype DataType) (*NdArray, error) {
	return tensor.Full(shape, value, dtype)
}

// ZerosLike returns zeros with a's shape and dtype.
func ZerosLike(a *NdArray) *NdArray {
	return tensor.ZerosLike(a)
}

// OnesLike returns ones with a's shape and dtype.
func OnesLike(a *NdArray) *NdArray {
	return tensor.OnesLike(a)
}

// EmptyLike returns an array with a's shape and dtype and unspecified
// contents.
func EmptyLike(a *NdArray) *NdArray {
	return tensor.EmptyLike(a)
}

// FullLike returns an array of value with a's shape and dtype.
func FullLike(a *NdArray, value any) (*NdArray, error) {
	return tensor.FullLike(a, value)
}

// Arange returns evenly spaced values in [start, stop).
func Arange(start, stop, step float64, dtype DataType) (*NdArray, error) {
	return tensor.Arange(start, stop, step, dtype)
}

// ArangeN returns the int64 values 0, 1, ..., stop-1.
//
// Example:
//
//	a, err := np.ArangeN(5) // [0 1 2 3 4]
func ArangeN(stop int) (*NdArray, error) {
	return tensor.Arange(0, float64(stop), 1, Int64)
}

// Eye returns the n×n identity matrix.
func Eye(n int, dtype DataType) (*NdArray, error) {
	return tensor.Eye(n, dtype)
}

// Fill overwrites every element of a with successive values of fn.
func Fill(a *NdArray, fn func() float64) {
	tensor.Fill(a, fn)
}

// Rand returns uniform samples in [0, 1) drawn from rng.
func Rand(shape Shape, dtype DataType, rng *rand.Rand) (*NdArray, error) {
	return tensor.Rand(shape, dtype, rng)
}

// Randn returns standard normal samples drawn from rng.
func Randn(shape Shape, dtype DataType, rng *rand.Rand) (*NdArray, error) {
	return tensor.Randn(shape, dtype, rng)
}

// Reshape returns a with a new shape, as a view when possible.
func Reshape(a *NdArray, shape Shape) (*NdArray, error) {
	return tensor.Reshape(a, shape)
}

// Ravel returns a flattened view of a when possible.
func Ravel(a *NdArray) *NdArray {
	return tensor.Ravel(a)
}

// Flatten returns a flattened copy of a.
func Flatten(a *NdArray) *NdArray {
	return tensor.Flatten(a)
}

// ExpandDims inserts a length-one axis.
func ExpandDims(a *NdArray, axis int) (*NdArray, error) {
	return tensor.ExpandDims(a, axis)
}

// Squeeze removes length-one axes, all of them when none are named.
func Squeeze(a *NdArray, axes ...int) (*NdArray, error) {
	return tensor.Squeeze(a, axes...)
}

// Transpose permutes the axes of a, reversing them when none are named.
func Transpose(a *NdArray, axes ...int) (*NdArray, error) {
	return tensor.Transpose(a, axes...)
}

// SwapAxes interchanges two axes.
func SwapAxes(a *NdArray, axis1, axis2 int) (*NdArray, error) {
	return tensor.SwapAxes(a, axis1, axis2)
}

// AsType returns a copy of a converted to dtype.
func AsType(a *NdArray, dtype DataType) (*NdArray, error) {
	return tensor.AsType(a, dtype)
}

// Concatenate joins arrays along an existing axis.
func Concatenate(arrays []*NdArray, axis int) (*NdArray, error) {
	return tensor.Concatenate(arrays, axis)
}

// Stack joins arrays along a new axis.
func Stack(arrays []*NdArray, axis int) (*NdArray, error) {
	return tensor.Stack(arrays, axis)
}

// Split divides a into n equal views along axis.
func Split(a *NdArray, n, axis int) ([]*NdArray, error) {
	return tensor.Split(a, n, axis)
}

// BroadcastShapes returns the shape that shapes broadcast to.
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	return tensor.BroadcastShapes(shapes...)
}

// BroadcastTo returns a copy of a expanded to shape.
func BroadcastTo(a *NdArray, shape Shape) (*NdArray, error) {
	return tensor.BroadcastTo(a, shape)
}

// BroadcastArrays expands every array to their common shape.
func BroadcastArrays(arrays ...*NdArray) ([]*NdArray, error) {
	return tensor.BroadcastArrays(arrays...)
}
