// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package np provides N-dimensional strided arrays with NumPy semantics.
//
// An NdArray is a view over a shared typed buffer described by a shape, a
// per-axis stride and an offset. Reshaping, transposing, broadcasting and
// basic indexing produce views; advanced indexing and arithmetic produce new
// arrays.
//
// # Creation
//
//	a, err := np.AsArray([][]float64{{1, 2, 3}, {4, 5, 6}})
//	z, err := np.Zeros(np.Shape{2, 3}, np.Int32)
//	r, err := np.Arange(2, 10, 3, np.Int64) // [2 5 8]
//
// # Indexing
//
// Index expressions mix integers, slice strings, np.NewAxis, np.Ellipsis
// and index arrays:
//
//	row, err := np.Get(a, 1, ":")       // view of shape (3,)
//	v, err := np.Read(a, -1, -1)         // 6.0
//	err = np.Set(a, 0.0, "...", "::2")   // writes through
//	picked, err := np.Get(a, []int{1, 0}) // copy of shape (2, 3)
//
// # Arithmetic
//
// Binary operations broadcast their operands and pick the result dtype from
// a promotion table. Go scalars are accepted as operands:
//
//	b, err := np.Add(a, 1)               // float64
//	m, err := np.Greater(a, 2.5)         // bool
//	s, err := np.Sum(a, 0)               // column sums
//
// # Aliasing
//
// Arrays are not safe for concurrent mutation. Use SharesMemory to tell
// whether two arrays alias one buffer.
package np
