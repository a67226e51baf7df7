package ufunc

import (
	"fmt"
	"math"

	"github.com/born-ml/numpy/internal/tensor"
)

// Reduce folds x with the ufunc along axis, or over all elements when no
// axis is given, into an array of dtype.
//
// Example:
//
//	sum, err := ufunc.Add.Reduce(x, tensor.Int64)     // 0-d
//	rows, err := ufunc.Maximum.Reduce(x, x.DType(), 1) // one value per row
func (u *Binary) Reduce(x *tensor.NdArray, dtype tensor.DataType, axis ...int) (*tensor.NdArray, error) {
	src, outShape, err := moveReduceAxis(x, axis)
	if err != nil {
		return nil, err
	}
	out, err := tensor.Zeros(outShape, dtype)
	if err != nil {
		return nil, err
	}
	last := src.Ndim() - 1
	n, step := src.Shape()[last], src.Strides()[last]
	if n == 0 {
		if u.Identity == nil {
			return nil, fmt.Errorf("%w: zero-size array to reduction operation %s which has no identity",
				tensor.ErrShape, u.Name)
		}
		tensor.Fill(out, func() float64 { return *u.Identity })
		return out, nil
	}
	outer, err := tensor.View(src.Buffer(), outShape, src.Offset(), src.Strides()[:last], false)
	if err != nil {
		return nil, err
	}

	sb, ob := src.Buffer(), out.Buffer()
	k := u.Kernels
	for p := range tensor.Positions(outShape, outer, out) {
		switch domain(dtype.Kind(), k.Int != nil, k.Uint != nil, k.Bool != nil) {
		case tensor.KindBool:
			acc := sb.Bool(p[0])
			for j := 1; j < n; j++ {
				acc = k.Bool(acc, sb.Bool(p[0]+j*step))
			}
			ob.SetBool(p[1], acc)
		case tensor.KindInt:
			acc := sb.Int(p[0])
			for j := 1; j < n; j++ {
				acc = k.Int(acc, sb.Int(p[0]+j*step))
			}
			ob.SetInt(p[1], acc)
		case tensor.KindUint:
			acc := sb.Uint(p[0])
			for j := 1; j < n; j++ {
				acc = k.Uint(acc, sb.Uint(p[0]+j*step))
			}
			ob.SetUint(p[1], acc)
		default:
			acc := sb.Float(p[0])
			for j := 1; j < n; j++ {
				acc = k.Float(acc, sb.Float(p[0]+j*step))
			}
			ob.SetFloat(p[1], acc)
		}
	}
	return out, nil
}

// Accumulate is like Reduce but keeps every partial result. Without an axis
// x is flattened first.
func (u *Binary) Accumulate(x *tensor.NdArray, dtype tensor.DataType, axis ...int) (*tensor.NdArray, error) {
	if len(axis) > 1 {
		return nil, fmt.Errorf("%w: %s.accumulate takes at most one axis, got %v", tensor.ErrShape, u.Name, axis)
	}
	src := tensor.Ravel(x)
	ax := 0
	if len(axis) == 1 {
		var err error
		if ax, err = normalizeAxis(axis[0], x.Ndim()); err != nil {
			return nil, err
		}
		src = x
	}
	out, err := tensor.Zeros(src.Shape(), dtype)
	if err != nil {
		return nil, err
	}
	// Walk every line along ax in both arrays.
	sv, err := tensor.SwapAxes(src, ax, -1)
	if err != nil {
		return nil, err
	}
	ov, err := tensor.SwapAxes(out, ax, -1)
	if err != nil {
		return nil, err
	}
	last := sv.Ndim() - 1
	n := sv.Shape()[last]
	sstep, ostep := sv.Strides()[last], ov.Strides()[last]
	lines := sv.Shape()[:last]
	souter, err := tensor.View(sv.Buffer(), lines, sv.Offset(), sv.Strides()[:last], false)
	if err != nil {
		return nil, err
	}
	oouter, err := tensor.View(ov.Buffer(), lines, ov.Offset(), ov.Strides()[:last], false)
	if err != nil {
		return nil, err
	}

	sb, ob := src.Buffer(), out.Buffer()
	k := u.Kernels
	if n == 0 {
		return out, nil
	}
	for p := range tensor.Positions(lines, souter, oouter) {
		switch domain(dtype.Kind(), k.Int != nil, k.Uint != nil, k.Bool != nil) {
		case tensor.KindBool:
			acc := sb.Bool(p[0])
			ob.SetBool(p[1], acc)
			for j := 1; j < n; j++ {
				acc = k.Bool(acc, sb.Bool(p[0]+j*sstep))
				ob.SetBool(p[1]+j*ostep, acc)
			}
		case tensor.KindInt:
			acc := sb.Int(p[0])
			ob.SetInt(p[1], acc)
			for j := 1; j < n; j++ {
				acc = k.Int(acc, sb.Int(p[0]+j*sstep))
				ob.SetInt(p[1]+j*ostep, acc)
			}
		case tensor.KindUint:
			acc := sb.Uint(p[0])
			ob.SetUint(p[1], acc)
			for j := 1; j < n; j++ {
				acc = k.Uint(acc, sb.Uint(p[0]+j*sstep))
				ob.SetUint(p[1]+j*ostep, acc)
			}
		default:
			acc := sb.Float(p[0])
			ob.SetFloat(p[1], acc)
			for j := 1; j < n; j++ {
				acc = k.Float(acc, sb.Float(p[0]+j*sstep))
				ob.SetFloat(p[1]+j*ostep, acc)
			}
		}
	}
	return out, nil
}

// moveReduceAxis returns a view of x whose last axis is the one to reduce,
// together with the shape of the reduced result.
func moveReduceAxis(x *tensor.NdArray, axis []int) (*tensor.NdArray, tensor.Shape, error) {
	switch len(axis) {
	case 0:
		return tensor.Ravel(x), tensor.Shape{}, nil
	case 1:
	default:
		return nil, nil, fmt.Errorf("%w: reduction takes at most one axis, got %v", tensor.ErrShape, axis)
	}
	ax, err := normalizeAxis(axis[0], x.Ndim())
	if err != nil {
		return nil, nil, err
	}
	perm := make([]int, 0, x.Ndim())
	outShape := tensor.Shape{}
	for i, dim := range x.Shape() {
		if i != ax {
			perm = append(perm, i)
			outShape = append(outShape, dim)
		}
	}
	moved, err := tensor.Transpose(x, append(perm, ax)...)
	if err != nil {
		return nil, nil, err
	}
	return moved, outShape, nil
}

func normalizeAxis(axis, ndim int) (int, error) {
	if axis < -ndim || axis >= ndim {
		return 0, fmt.Errorf("%w: axis %d is out of bounds for array of dimension %d", tensor.ErrBounds, axis, ndim)
	}
	if axis < 0 {
		axis += ndim
	}
	return axis, nil
}

// accumDType is the dtype sums and products accumulate in: bool and signed
// inputs widen to int64, unsigned to uint64, floats keep their dtype.
func accumDType(dt tensor.DataType) tensor.DataType {
	switch dt.Kind() {
	case tensor.KindBool, tensor.KindInt:
		return tensor.Int64
	case tensor.KindUint:
		return tensor.Uint64
	default:
		return dt
	}
}

// Sum adds the elements of x, over all elements or along one axis.
func Sum(x *tensor.NdArray, axis ...int) (*tensor.NdArray, error) {
	return Add.Reduce(x, accumDType(x.DType()), axis...)
}

// Prod multiplies the elements of x, over all elements or along one axis.
func Prod(x *tensor.NdArray, axis ...int) (*tensor.NdArray, error) {
	return Multiply.Reduce(x, accumDType(x.DType()), axis...)
}

// Max returns the largest element, over all elements or along one axis.
func Max(x *tensor.NdArray, axis ...int) (*tensor.NdArray, error) {
	return Maximum.Reduce(x, x.DType(), axis...)
}

// Min returns the smallest element, over all elements or along one axis.
func Min(x *tensor.NdArray, axis ...int) (*tensor.NdArray, error) {
	return Minimum.Reduce(x, x.DType(), axis...)
}

// Cumsum returns the running sum of x, flattened or along one axis.
func Cumsum(x *tensor.NdArray, axis ...int) (*tensor.NdArray, error) {
	return Add.Accumulate(x, accumDType(x.DType()), axis...)
}

// Mean averages the elements of x, over all elements or along one axis.
// Integer and bool inputs produce float64; the mean of nothing is NaN.
func Mean(x *tensor.NdArray, axis ...int) (*tensor.NdArray, error) {
	dtype := tensor.Float64
	if x.DType().Kind() == tensor.KindFloat {
		dtype = x.DType()
	}
	sum, err := Add.Reduce(x, dtype, axis...)
	if err != nil {
		return nil, err
	}
	count := x.Size()
	if len(axis) == 1 {
		ax, _ := normalizeAxis(axis[0], x.Ndim()) // validated by Reduce
		count = x.Shape()[ax]
	}
	buf := sum.Buffer()
	for i := range buf.Len() {
		if count == 0 {
			buf.SetFloat(i, math.NaN())
			continue
		}
		buf.SetFloat(i, buf.Float(i)/float64(count))
	}
	return sum, nil
}
