package indexing

import (
	"fmt"

	"github.com/born-ml/numpy/internal/tensor"
)

// Get indexes a.
//
// Basic expressions return a view sharing a's buffer; when every axis is
// selected by an integer the view is 0-d and Item returns the element.
// Expressions with index arrays return a new array.
//
// Example:
//
//	row, err := indexing.Get(a, indexing.Int(1), indexing.All())
//	rev, err := indexing.Get(a, indexing.Str("::-1, 0"))
func Get(a *tensor.NdArray, index ...Index) (*tensor.NdArray, error) {
	view, norm, err := normalize(a, index)
	if err != nil {
		return nil, err
	}
	if !hasArray(norm) {
		return basicView(view, norm)
	}
	plan, err := planAdvanced(view, norm)
	if err != nil {
		return nil, err
	}
	out, err := tensor.Zeros(plan.shape, a.DType())
	if err != nil {
		return nil, err
	}
	src, dst := view.Buffer(), out.Buffer()
	for i, p := range plan.pointers {
		dst.Assign(i, src, p)
	}
	return out, nil
}

// Read indexes a like Get but returns the element itself, as its native Go
// type, when the result has no dimensions.
func Read(a *tensor.NdArray, index ...Index) (any, error) {
	out, err := Get(a, index...)
	if err != nil {
		return nil, err
	}
	if out.Ndim() == 0 {
		return out.Item()
	}
	return out, nil
}

// Set writes value into the elements of a selected by index.
//
// value may be a Go scalar, nested slices or an array; leading length-one
// axes beyond the rank of the selection are dropped, then it is broadcast to
// the shape of the selection and converted to a's dtype. The whole
// expression is validated before the first write, and value is copied
// before writing, so it may overlap a.
func Set(a *tensor.NdArray, value any, index ...Index) error {
	view, norm, err := normalize(a, index)
	if err != nil {
		return err
	}
	src, err := tensor.AsArray(value)
	if err != nil {
		return err
	}
	dst := view.Buffer()

	if !hasArray(norm) {
		target, err := basicView(view, norm)
		if err != nil {
			return err
		}
		if allInts(norm) {
			item, err := src.Item()
			if err != nil {
				return fmt.Errorf("cannot assign array of shape %v to a single element: %w", src.Shape(), err)
			}
			return dst.SetItem(target.Offset(), item)
		}
		vals, err := tensor.BroadcastTo(trimLeadingOnes(src, target.Ndim()), target.Shape())
		if err != nil {
			return fmt.Errorf("cannot assign array of shape %v to selection of shape %v: %w",
				src.Shape(), target.Shape(), err)
		}
		for ptrs := range tensor.Positions(target.Shape(), target, vals) {
			dst.Assign(ptrs[0], vals.Buffer(), ptrs[1])
		}
		return nil
	}

	plan, err := planAdvanced(view, norm)
	if err != nil {
		return err
	}
	vals, err := tensor.BroadcastTo(trimLeadingOnes(src, len(plan.shape)), plan.shape)
	if err != nil {
		return fmt.Errorf("cannot assign array of shape %v to selection of shape %v: %w",
			src.Shape(), plan.shape, err)
	}
	for i, p := range plan.pointers {
		dst.Assign(p, vals.Buffer(), i)
	}
	return nil
}

// trimLeadingOnes drops leading length-one axes of v while it has more than
// ndim axes.
func trimLeadingOnes(v *tensor.NdArray, ndim int) *tensor.NdArray {
	shape := v.Shape()
	k := 0
	for len(shape)-k > ndim && shape[k] == 1 {
		k++
	}
	if k == 0 {
		return v
	}
	out, err := tensor.Reshape(v, shape[k:])
	if err != nil {
		panic(err) // element count is preserved
	}
	return out
}

func hasArray(index []Index) bool {
	for _, idx := range index {
		if _, ok := idx.(Array); ok {
			return true
		}
	}
	return false
}

func allInts(index []Index) bool {
	for _, idx := range index {
		if _, ok := idx.(Int); !ok {
			return false
		}
	}
	return true
}

// basicView applies a normalized expression of Int and Slice elements.
// Integers fold into the offset and drop their axis; slices keep their axis
// with length Len() and stride Step*stride.
func basicView(a *tensor.NdArray, index []Index) (*tensor.NdArray, error) {
	stride := a.Strides()
	offset := a.Offset()
	shape := tensor.Shape{}
	strides := []int{}
	for axis, idx := range index {
		switch x := idx.(type) {
		case Int:
			offset += int(x) * stride[axis]
		case Slice:
			n := x.Len()
			shape = append(shape, n)
			strides = append(strides, x.Step*stride[axis])
			if n > 0 {
				offset += x.Start * stride[axis]
			}
		}
	}
	return tensor.View(a.Buffer(), shape, offset, strides, false)
}
