package indexing

import (
	"fmt"
	"slices"

	"github.com/born-ml/numpy/internal/tensor"
)

// advancedPlan is the result of resolving an advanced expression: the
// output shape and, for every output element in row-major order, the buffer
// position of the source element.
type advancedPlan struct {
	shape    tensor.Shape
	pointers []int
}

// planAdvanced resolves a normalized expression containing index arrays.
//
// Integers count as index operands. All operands broadcast to one shape B.
// When the operands sit next to each other in the expression, B replaces
// them in place among the sliced axes; otherwise B leads the output shape.
func planAdvanced(a *tensor.NdArray, index []Index) (*advancedPlan, error) {
	stride := a.Strides()

	var operands []*tensor.NdArray
	var advAxes []int
	var basicShape tensor.Shape
	var basicStride []int
	offset := a.Offset()
	for axis, idx := range index {
		switch x := idx.(type) {
		case Int:
			scalar, err := tensor.Full(tensor.Shape{}, int64(x), tensor.Int64)
			if err != nil {
				return nil, err
			}
			operands = append(operands, scalar)
			advAxes = append(advAxes, axis)
		case Array:
			operands = append(operands, x.NdArray)
			advAxes = append(advAxes, axis)
		case Slice:
			n := x.Len()
			basicShape = append(basicShape, n)
			basicStride = append(basicStride, x.Step*stride[axis])
			if n > 0 {
				offset += x.Start * stride[axis]
			}
		}
	}

	shapes := make([]tensor.Shape, len(operands))
	for i, op := range operands {
		shapes[i] = op.Shape()
	}
	bshape, err := tensor.BroadcastShapes(shapes...)
	if err != nil {
		return nil, fmt.Errorf("shape mismatch: indexing arrays could not be broadcast together: %w", err)
	}
	views := make([]*tensor.NdArray, len(operands))
	for i, op := range operands {
		if views[i], err = tensor.BroadcastView(op, bshape); err != nil {
			return nil, err
		}
	}

	pointers := make([]int, 0, bshape.NumElements()*basicShape.NumElements())
	for ptrs := range tensor.Positions(bshape, views...) {
		base := offset
		for k, p := range ptrs {
			base += int(views[k].Buffer().Int(p)) * stride[advAxes[k]]
		}
		for coord := range basicShape.Coords() {
			pointers = append(pointers, base+tensor.Dot(coord, basicStride))
		}
	}

	shape := append(slices.Clone(bshape), basicShape...)
	first := advAxes[0]
	if !adjacent(advAxes) || first == 0 {
		return &advancedPlan{shape: shape, pointers: pointers}, nil
	}

	// Move B back to where the operands stood: the first `first` axes of
	// the expression are slices, so B goes after that many basic axes.
	nb := len(bshape)
	perm := make([]int, 0, len(shape))
	for i := range first {
		perm = append(perm, nb+i)
	}
	for i := range nb {
		perm = append(perm, i)
	}
	for i := nb + first; i < len(shape); i++ {
		perm = append(perm, i)
	}
	return permutePlan(shape, pointers, perm)
}

func adjacent(axes []int) bool {
	for i := 1; i < len(axes); i++ {
		if axes[i] != axes[i-1]+1 {
			return false
		}
	}
	return true
}

// permutePlan reorders the pointer grid by transposing it.
func permutePlan(shape tensor.Shape, pointers []int, perm []int) (*advancedPlan, error) {
	grid, err := tensor.AsArray(toInt64(pointers), tensor.WithShape(shape))
	if err != nil {
		return nil, err
	}
	moved, err := tensor.Transpose(grid, perm...)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(pointers))
	for ptrs := range tensor.Positions(moved.Shape(), moved) {
		out = append(out, int(moved.Buffer().Int(ptrs[0])))
	}
	return &advancedPlan{shape: moved.Shape(), pointers: out}, nil
}

func toInt64(values []int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}
