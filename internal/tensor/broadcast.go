package tensor

import (
	"fmt"
	"strings"
)

// BroadcastShapes computes the shape that all of shapes broadcast to.
//
// Shapes are aligned at their trailing dimensions; in each position the
// lengths must agree or be 1. Missing leading dimensions count as 1.
//
// Example:
//
//	BroadcastShapes(Shape{3, 1}, Shape{1, 4}) // [3 4]
//	BroadcastShapes(Shape{5}, Shape{2, 1, 5}) // [2 1 5]
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	ndim := 0
	for _, s := range shapes {
		ndim = max(ndim, len(s))
	}
	out := make(Shape, ndim)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		for i, dim := range s {
			pos := ndim - len(s) + i
			switch {
			case dim == out[pos] || dim == 1:
			case out[pos] == 1:
				out[pos] = dim
			default:
				return nil, fmt.Errorf("%w: cannot broadcast shapes %s", ErrShape, joinShapes(shapes))
			}
		}
	}
	return out, nil
}

func joinShapes(shapes []Shape) string {
	parts := make([]string, len(shapes))
	for i, s := range shapes {
		parts[i] = fmt.Sprint([]int(s))
	}
	return strings.Join(parts, ", ")
}

// BroadcastView returns a read-only view of a with the given shape, using
// zero strides on broadcast axes. Writing through the view would alias
// elements, so callers only read from it.
func BroadcastView(a *NdArray, shape Shape) (*NdArray, error) {
	if len(a.shape) > len(shape) {
		return nil, fmt.Errorf("%w: cannot broadcast array of shape %v to shape %v", ErrShape, a.shape, shape)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	lead := len(shape) - len(a.shape)
	stride := make([]int, len(shape))
	for i := lead; i < len(shape); i++ {
		dim := a.shape[i-lead]
		switch {
		case dim == shape[i]:
			stride[i] = a.stride[i-lead]
		case dim == 1:
			stride[i] = 0
		default:
			return nil, fmt.Errorf("%w: cannot broadcast array of shape %v to shape %v", ErrShape, a.shape, shape)
		}
	}
	return makeView(a.buffer, shape.Clone(), a.offset, stride), nil
}

// BroadcastTo returns a new contiguous array holding a broadcast to shape.
func BroadcastTo(a *NdArray, shape Shape) (*NdArray, error) {
	v, err := BroadcastView(a, shape)
	if err != nil {
		return nil, err
	}
	return v.Copy(), nil
}

// BroadcastArrays broadcasts every array to their common shape. The results
// are new contiguous arrays.
func BroadcastArrays(arrays ...*NdArray) ([]*NdArray, error) {
	shapes := make([]Shape, len(arrays))
	for i, a := range arrays {
		shapes[i] = a.shape
	}
	shape, err := BroadcastShapes(shapes...)
	if err != nil {
		return nil, fmt.Errorf("cannot broadcast arrays: %w", err)
	}
	out := make([]*NdArray, len(arrays))
	for i, a := range arrays {
		if out[i], err = BroadcastTo(a, shape); err != nil {
			return nil, err
		}
	}
	return out, nil
}
