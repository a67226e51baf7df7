package tensor

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the total number of elements.
// An empty shape describes a scalar and has one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no dimension is negative and that the element count
// fits in an int. Zero-sized dimensions are allowed and describe empty arrays.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: invalid shape %v: dimension %d is %d (must be >= 0)", ErrShape, s, i, dim)
		}
	}
	if _, ok := s.checkedSize(); !ok {
		return fmt.Errorf("%w: shape %v is too large: element count overflows int", ErrShape, s)
	}
	return nil
}

// checkedSize multiplies the dimensions of a shape with no negative entries,
// reporting false on overflow. Any zero dimension makes the product zero.
func (s Shape) checkedSize() (int, bool) {
	for _, dim := range s {
		if dim == 0 {
			return 0, true
		}
	}
	n := 1
	for _, dim := range s {
		hi, lo := bits.Mul64(uint64(n), uint64(dim))
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = int(lo)
	}
	return n, true
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape, in elements.
// The last axis has stride 1 and stride[i] = stride[i+1] * s[i+1].
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// Coords returns an iterator over every valid coordinate of s in row-major
// order. A rank-0 shape yields one empty coordinate; a shape with any
// dimension <= 0 yields nothing.
//
// The yielded slice is reused between iterations; copy it to retain it.
func (s Shape) Coords() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for _, dim := range s {
			if dim <= 0 {
				return
			}
		}
		coord := make([]int, len(s))
		for {
			if !yield(coord) {
				return
			}
			axis := len(s) - 1
			for ; axis >= 0; axis-- {
				coord[axis]++
				if coord[axis] < s[axis] {
					break
				}
				coord[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}

// SizeOf returns the number of elements described by shape.
func SizeOf(shape Shape) (int, error) {
	if err := shape.Validate(); err != nil {
		return 0, err
	}
	return shape.NumElements(), nil
}

// DefaultStride returns the row-major strides of shape.
func DefaultStride(shape Shape) ([]int, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape.ComputeStrides(), nil
}

// Dot returns the sum of coord[i]*stride[i] over the shorter of the two.
func Dot(coord, stride []int) int {
	n := min(len(coord), len(stride))
	off := 0
	for i := 0; i < n; i++ {
		off += coord[i] * stride[i]
	}
	return off
}

// normalizeAxis wraps a possibly negative axis into [0, ndim).
func normalizeAxis(axis, ndim int) (int, error) {
	if axis < -ndim || axis >= ndim {
		return 0, fmt.Errorf("%w: axis %d out of range for %d-dimensional array", ErrBounds, axis, ndim)
	}
	if axis < 0 {
		axis += ndim
	}
	return axis, nil
}
