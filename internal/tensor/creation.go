package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates an array filled with zeros.
//
// Example:
//
//	a, err := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) (*NdArray, error) {
	// Buffers are zero-initialized by make().
	return allocate(shape, dtype)
}

// Empty creates an array whose contents are unspecified. Storage is always
// zeroed in Go, so Empty is Zeros under another name.
func Empty(shape Shape, dtype DataType) (*NdArray, error) {
	return allocate(shape, dtype)
}

// Ones creates an array filled with ones (true for Bool).
//
// Example:
//
//	a, err := tensor.Ones(tensor.Shape{2, 3}, tensor.Int64)
func Ones(shape Shape, dtype DataType) (*NdArray, error) {
	return Full(shape, 1, dtype)
}

// Full creates an array filled with value converted to dtype.
//
// Example:
//
//	a, err := tensor.Full(tensor.Shape{3, 3}, 3.14, tensor.Float64)
func Full(shape Shape, value any, dtype DataType) (*NdArray, error) {
	a, err := allocate(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i := range a.buffer.Len() {
		if err := a.buffer.SetItem(i, value); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ZerosLike creates a zero array with the shape and dtype of a.
func ZerosLike(a *NdArray) *NdArray {
	out, err := allocate(a.shape, a.DType())
	if err != nil {
		panic(err) // a already holds a valid shape and dtype
	}
	return out
}

// EmptyLike creates an array with the shape and dtype of a and unspecified
// contents.
func EmptyLike(a *NdArray) *NdArray {
	return ZerosLike(a)
}

// OnesLike creates an array of ones with the shape and dtype of a.
func OnesLike(a *NdArray) *NdArray {
	out, err := Full(a.shape, 1, a.DType())
	if err != nil {
		panic(err) // a already holds a valid shape and dtype
	}
	return out
}

// FullLike creates an array filled with value, with the shape and dtype of a.
func FullLike(a *NdArray, value any) (*NdArray, error) {
	return Full(a.shape, value, a.DType())
}

// Arange creates a 1-D array of evenly spaced values in [start, stop).
//
// The length is ceil((stop-start)/step), or zero when that is not positive.
// Integer dtypes round each value start+step*i to the nearest integer.
//
// Example:
//
//	a, err := tensor.Arange(0, 10, 1, tensor.DefaultInt) // [0, 1, ..., 9]
func Arange(start, stop, step float64, dtype DataType) (*NdArray, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: arange step must be nonzero", ErrShape)
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	a, err := allocate(Shape{n}, dtype)
	if err != nil {
		return nil, err
	}
	round := dtype.Kind() != KindFloat
	for i := range n {
		v := start + step*float64(i)
		if round {
			v = math.Round(v)
		}
		a.buffer.SetFloat(i, v)
	}
	return a, nil
}

// Eye creates an n×n identity matrix.
//
// Example:
//
//	a, err := tensor.Eye(3, tensor.Float32) // 3x3 identity matrix
func Eye(n int, dtype DataType) (*NdArray, error) {
	a, err := allocate(Shape{n, n}, dtype)
	if err != nil {
		return nil, err
	}
	for i := range n {
		a.buffer.SetInt(i*(n+1), 1)
	}
	return a, nil
}

// Fill overwrites every element of a, in row-major order, with values drawn
// from fn. Views write through to their buffer.
func Fill(a *NdArray, fn func() float64) {
	for ptrs := range Positions(a.shape, a) {
		a.buffer.SetFloat(ptrs[0], fn())
	}
}

// Rand creates a float array with values uniformly distributed in [0, 1).
// Note: Uses math/rand (not crypto/rand); pass a seeded source for reproducibility.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	a, err := tensor.Rand(tensor.Shape{10, 10}, tensor.Float32, rng)
func Rand(shape Shape, dtype DataType, rng *rand.Rand) (*NdArray, error) {
	a, err := randomArray(shape, dtype, "Rand")
	if err != nil {
		return nil, err
	}
	Fill(a, rng.Float64)
	return a, nil
}

// Randn creates a float array with values drawn from a standard normal
// distribution (mean=0, std=1).
// Uses Box-Muller transform for generating normal distribution.
//
// Example:
//
//	a, err := tensor.Randn(tensor.Shape{100, 100}, tensor.Float64, rng)
func Randn(shape Shape, dtype DataType, rng *rand.Rand) (*NdArray, error) {
	a, err := randomArray(shape, dtype, "Randn")
	if err != nil {
		return nil, err
	}
	n := a.buffer.Len()
	for i := 0; i < n; i += 2 {
		u1 := 1 - rng.Float64() // (0, 1] keeps the log finite
		u2 := rng.Float64()
		r := math.Sqrt(-2.0 * math.Log(u1))
		a.buffer.SetFloat(i, r*math.Cos(2.0*math.Pi*u2))
		if i+1 < n {
			a.buffer.SetFloat(i+1, r*math.Sin(2.0*math.Pi*u2))
		}
	}
	return a, nil
}

func randomArray(shape Shape, dtype DataType, name string) (*NdArray, error) {
	if dtype.Kind() != KindFloat {
		return nil, fmt.Errorf("%w: %s only supports float dtypes, got %s", ErrDType, name, dtype)
	}
	return allocate(shape, dtype)
}
