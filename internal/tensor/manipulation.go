package tensor

import "fmt"

// Reshape returns a with a new shape.
//
// One dimension may be -1 and is inferred from the element count. Reshaping
// to the current shape returns a itself. The result is a view of a's buffer
// whenever the existing strides can express the new shape, otherwise a
// contiguous copy.
func Reshape(a *NdArray, shape Shape) (*NdArray, error) {
	shape, err := resolveShape(shape, a.Size())
	if err != nil {
		return nil, fmt.Errorf("cannot reshape array of shape %v: %w", a.shape, err)
	}
	if shape.Equal(a.shape) {
		return a, nil
	}
	if stride, ok := reshapeStrides(a.shape, a.stride, shape); ok {
		return makeView(a.buffer, shape, a.offset, stride), nil
	}
	c := a.Copy()
	return makeView(c.buffer, shape, 0, shape.ComputeStrides()), nil
}

// resolveShape fills in a -1 dimension and checks the element count.
func resolveShape(shape Shape, size int) (Shape, error) {
	out := shape.Clone()
	unknown := -1
	known := 1
	for i, dim := range out {
		switch {
		case dim == -1 && unknown >= 0:
			return nil, fmt.Errorf("%w: can only specify one unknown dimension in %v", ErrShape, shape)
		case dim == -1:
			unknown = i
		case dim < 0:
			return nil, fmt.Errorf("%w: invalid shape %v: dimension %d is %d", ErrShape, shape, i, dim)
		default:
			known *= dim
		}
	}
	if unknown >= 0 {
		if known == 0 || size%known != 0 {
			return nil, fmt.Errorf("%w: cannot infer dimension of %v for %d elements", ErrShape, shape, size)
		}
		out[unknown] = size / known
	} else if known != size {
		return nil, fmt.Errorf("%w: shape %v does not hold %d elements", ErrShape, shape, size)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// reshapeStrides computes strides that view the same elements in the new
// shape, if any exist. Axes of length one carry no layout and are dropped
// from the old shape first; runs of old axes that merge into new axes must
// be contiguous with each other.
func reshapeStrides(oldShape Shape, oldStride []int, newShape Shape) ([]int, bool) {
	newStride := make([]int, len(newShape))
	if oldShape.NumElements() == 0 {
		return newShape.ComputeStrides(), true
	}

	var dims, strides []int
	for i, dim := range oldShape {
		if dim != 1 {
			dims = append(dims, dim)
			strides = append(strides, oldStride[i])
		}
	}

	oi, oj := 0, 1
	ni, nj := 0, 1
	for ni < len(newShape) && oi < len(dims) {
		np, op := newShape[ni], dims[oi]
		for np != op {
			if np < op {
				np *= newShape[nj]
				nj++
			} else {
				op *= dims[oj]
				oj++
			}
		}
		for k := oi; k < oj-1; k++ {
			if strides[k] != dims[k+1]*strides[k+1] {
				return nil, false
			}
		}
		newStride[nj-1] = strides[oj-1]
		for k := nj - 1; k > ni; k-- {
			newStride[k-1] = newStride[k] * newShape[k]
		}
		ni, nj = nj, nj+1
		oi, oj = oj, oj+1
	}

	last := 1
	if ni >= 1 {
		last = newStride[ni-1]
	}
	for k := ni; k < len(newShape); k++ {
		newStride[k] = last
	}
	return newStride, true
}

// Ravel returns a flattened 1-D array, as a view when possible.
func Ravel(a *NdArray) *NdArray {
	out, err := Reshape(a, Shape{a.Size()})
	if err != nil {
		panic(err) // element count is preserved
	}
	return out
}

// Flatten returns a flattened 1-D copy of a.
func Flatten(a *NdArray) *NdArray {
	c := a.Copy()
	return makeView(c.buffer, Shape{c.Size()}, 0, []int{1})
}

// ExpandDims inserts a length-one axis at position axis, which may range
// over [-ndim-1, ndim]. The result is a view.
func ExpandDims(a *NdArray, axis int) (*NdArray, error) {
	ndim := len(a.shape)
	axis, err := normalizeAxis(axis, ndim+1)
	if err != nil {
		return nil, err
	}
	stride := 1
	if axis < ndim {
		stride = a.stride[axis] * a.shape[axis]
	}
	shape := make(Shape, 0, ndim+1)
	shape = append(append(append(shape, a.shape[:axis]...), 1), a.shape[axis:]...)
	strides := make([]int, 0, ndim+1)
	strides = append(append(append(strides, a.stride[:axis]...), stride), a.stride[axis:]...)
	return makeView(a.buffer, shape, a.offset, strides), nil
}

// Squeeze removes length-one axes. With no axes given every length-one axis
// is removed; naming an axis whose length is not one is an error.
func Squeeze(a *NdArray, axes ...int) (*NdArray, error) {
	drop := make([]bool, len(a.shape))
	if len(axes) == 0 {
		for i, dim := range a.shape {
			drop[i] = dim == 1
		}
	}
	for _, axis := range axes {
		ax, err := normalizeAxis(axis, len(a.shape))
		if err != nil {
			return nil, err
		}
		if a.shape[ax] != 1 {
			return nil, fmt.Errorf("%w: cannot squeeze axis %d of size %d (shape %v)", ErrShape, axis, a.shape[ax], a.shape)
		}
		drop[ax] = true
	}
	shape := Shape{}
	stride := []int{}
	for i, dim := range a.shape {
		if !drop[i] {
			shape = append(shape, dim)
			stride = append(stride, a.stride[i])
		}
	}
	return makeView(a.buffer, shape, a.offset, stride), nil
}

// Transpose permutes the axes of a. With no axes given the order is reversed.
// The result is a view.
func Transpose(a *NdArray, axes ...int) (*NdArray, error) {
	ndim := len(a.shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("%w: axes %v don't match array of shape %v", ErrShape, axes, a.shape)
	}
	seen := make([]bool, ndim)
	shape := make(Shape, ndim)
	stride := make([]int, ndim)
	for i, axis := range axes {
		ax, err := normalizeAxis(axis, ndim)
		if err != nil {
			return nil, err
		}
		if seen[ax] {
			return nil, fmt.Errorf("%w: repeated axis %d in transpose %v", ErrShape, axis, axes)
		}
		seen[ax] = true
		shape[i] = a.shape[ax]
		stride[i] = a.stride[ax]
	}
	return makeView(a.buffer, shape, a.offset, stride), nil
}

// SwapAxes interchanges two axes. The result is a view.
func SwapAxes(a *NdArray, axis1, axis2 int) (*NdArray, error) {
	ndim := len(a.shape)
	i, err := normalizeAxis(axis1, ndim)
	if err != nil {
		return nil, err
	}
	j, err := normalizeAxis(axis2, ndim)
	if err != nil {
		return nil, err
	}
	perm := make([]int, ndim)
	for k := range perm {
		perm[k] = k
	}
	perm[i], perm[j] = perm[j], perm[i]
	return Transpose(a, perm...)
}

// AsType returns a contiguous copy of a converted to dtype.
//
// Conversions follow C casts: floats truncate toward zero when stored in
// integer dtypes, integers wrap on overflow, and nonzero values become true.
func AsType(a *NdArray, dtype DataType) (*NdArray, error) {
	out, err := allocate(a.shape, dtype)
	if err != nil {
		return nil, err
	}
	i := 0
	for ptrs := range Positions(a.shape, a) {
		out.buffer.Assign(i, a.buffer, ptrs[0])
		i++
	}
	return out, nil
}

// Concatenate joins arrays along an existing axis into a new array.
//
// All arrays must share dtype and ndim, and agree in every dimension except
// axis. Negative axes count from the end.
//
// Example:
//
//	a, _ := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
//	b, _ := tensor.Zeros(tensor.Shape{2, 5}, tensor.Float32)
//	c, err := tensor.Concatenate([]*tensor.NdArray{a, b}, 1) // Shape: [2 8]
func Concatenate(arrays []*NdArray, axis int) (*NdArray, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: need at least one array to concatenate", ErrShape)
	}
	first := arrays[0]
	ax, err := normalizeAxis(axis, len(first.shape))
	if err != nil {
		return nil, err
	}
	shape := first.shape.Clone()
	shape[ax] = 0
	for i, a := range arrays {
		if a.DType() != first.DType() {
			return nil, fmt.Errorf("%w: cannot concatenate %s array %d with %s arrays", ErrDType, a.DType(), i, first.DType())
		}
		if len(a.shape) != len(first.shape) {
			return nil, fmt.Errorf("%w: cannot concatenate array %d of shape %v with shape %v", ErrShape, i, a.shape, first.shape)
		}
		for d := range a.shape {
			if d != ax && a.shape[d] != first.shape[d] {
				return nil, fmt.Errorf("%w: cannot concatenate array %d of shape %v with shape %v", ErrShape, i, a.shape, first.shape)
			}
		}
		shape[ax] += a.shape[ax]
	}
	out, err := allocate(shape, first.DType())
	if err != nil {
		return nil, err
	}
	start := 0
	for _, a := range arrays {
		dst := makeView(out.buffer, a.shape, start*out.stride[ax], out.stride)
		for ptrs := range Positions(a.shape, dst, a) {
			out.buffer.Assign(ptrs[0], a.buffer, ptrs[1])
		}
		start += a.shape[ax]
	}
	return out, nil
}

// Stack joins arrays of identical shape along a new axis.
func Stack(arrays []*NdArray, axis int) (*NdArray, error) {
	expanded := make([]*NdArray, len(arrays))
	for i, a := range arrays {
		if !a.shape.Equal(arrays[0].shape) {
			return nil, fmt.Errorf("%w: cannot stack array %d of shape %v with shape %v", ErrShape, i, a.shape, arrays[0].shape)
		}
		var err error
		if expanded[i], err = ExpandDims(a, axis); err != nil {
			return nil, err
		}
	}
	return Concatenate(expanded, axis)
}

// Split divides a into n equal views along axis.
//
// The axis length must be divisible by n.
//
// Example:
//
//	parts, err := tensor.Split(x, 3, -1) // x of shape [2 3 6] -> 3 views of shape [2 3 2]
func Split(a *NdArray, n, axis int) ([]*NdArray, error) {
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	if n <= 0 || a.shape[ax]%n != 0 {
		return nil, fmt.Errorf("%w: array of shape %v does not split into %d equal parts along axis %d", ErrShape, a.shape, n, axis)
	}
	size := a.shape[ax] / n
	shape := a.shape.Clone()
	shape[ax] = size
	parts := make([]*NdArray, n)
	for i := range parts {
		parts[i] = makeView(a.buffer, shape.Clone(), a.offset+i*size*a.stride[ax], append([]int(nil), a.stride...))
	}
	return parts, nil
}
