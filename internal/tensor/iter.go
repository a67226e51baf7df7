package tensor

import (
	"fmt"
	"iter"
)

// Positions walks shape in row-major order and yields, for every coordinate,
// the buffer position of each operand. Operands must have exactly shape;
// broadcast them first with BroadcastView.
//
// Positions are updated incrementally from the strides, so the walk costs
// O(1) amortized per element. The yielded slice is reused between iterations.
func Positions(shape Shape, operands ...*NdArray) iter.Seq[[]int] {
	for _, op := range operands {
		if !op.shape.Equal(shape) {
			panic(fmt.Sprintf("tensor: operand shape %v does not match iteration shape %v", op.shape, shape))
		}
	}
	return func(yield func([]int) bool) {
		for _, dim := range shape {
			if dim <= 0 {
				return
			}
		}
		ptrs := make([]int, len(operands))
		for k, op := range operands {
			ptrs[k] = op.offset
		}
		coord := make([]int, len(shape))
		for {
			if !yield(ptrs) {
				return
			}
			axis := len(shape) - 1
			for ; axis >= 0; axis-- {
				coord[axis]++
				if coord[axis] < shape[axis] {
					for k, op := range operands {
						ptrs[k] += op.stride[axis]
					}
					break
				}
				coord[axis] = 0
				for k, op := range operands {
					ptrs[k] -= (shape[axis] - 1) * op.stride[axis]
				}
			}
			if axis < 0 {
				return
			}
		}
	}
}
