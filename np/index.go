// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package np

import (
	"github.com/born-ml/numpy/internal/indexing"
)

// Index is one element of an index expression.
type Index = indexing.Index

// Slice selects a strided range along one axis.
type Slice = indexing.Slice

// Markers usable in index expressions. The strings "...", "newaxis" and
// "None" are accepted as well.
var (
	NewAxis  Index = indexing.NewAxis{}
	Ellipsis Index = indexing.Ellipsis{}
)

// All returns the full slice ":".
func All() Slice {
	return indexing.All()
}

// Range returns the slice start:stop.
func Range(start, stop int) Slice {
	return indexing.Range(start, stop)
}

// RangeStep returns the slice start:stop:step.
func RangeStep(start, stop, step int) Slice {
	return indexing.RangeStep(start, stop, step)
}

// Get indexes a. Each element of index is an integer, a slice string such
// as "1:-1:2" (several may be joined with commas), a Slice, NewAxis,
// Ellipsis, or an index array given as an *NdArray or nested slices of
// integers or booleans.
//
// Without index arrays the result is a view of a. With index arrays it is a
// new array.
func Get(a *NdArray, index ...any) (*NdArray, error) {
	expr, err := indexing.Parse(index...)
	if err != nil {
		return nil, err
	}
	return indexing.Get(a, expr...)
}

// Read is like Get but returns the element itself when the result has no
// dimensions.
//
// Example:
//
//	a, _ := np.AsArray([]int{1, 2, 3, 4, 5, 6}, np.WithShape(np.Shape{2, 3}))
//	v, _ := np.Read(a, -1, -1) // int64(6)
func Read(a *NdArray, index ...any) (any, error) {
	expr, err := indexing.Parse(index...)
	if err != nil {
		return nil, err
	}
	return indexing.Read(a, expr...)
}

// Set writes value, broadcast to the selection, into the elements of a
// selected by index. Nothing is written when the expression or value is
// invalid.
func Set(a *NdArray, value any, index ...any) error {
	expr, err := indexing.Parse(index...)
	if err != nil {
		return err
	}
	return indexing.Set(a, value, expr...)
}
