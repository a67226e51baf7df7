package ufunc

import (
	"fmt"

	"github.com/born-ml/numpy/internal/tensor"
)

// Matmul computes the matrix product of x and y.
//
// Arrays with more than two dimensions are stacks of matrices in the last two
// axes and their leading axes broadcast. A 1-D x is treated as a row vector
// and a 1-D y as a column vector; the added axis is removed from the result.
// Scalars are rejected, use Multiply.
func Matmul(x, y *tensor.NdArray) (*tensor.NdArray, error) {
	if x.Ndim() == 0 || y.Ndim() == 0 {
		return nil, fmt.Errorf("%w: matmul: input operand does not have enough dimensions", tensor.ErrShape)
	}
	rule, err := Resolve(SameKindRules, x.DType(), y.DType())
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}

	xm, ym := x, y
	var err1, err2 error
	if x.Ndim() == 1 {
		xm, err1 = tensor.ExpandDims(x, 0)
	}
	if y.Ndim() == 1 {
		ym, err2 = tensor.ExpandDims(y, 1)
	}
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("matmul: %w", firstErr(err1, err2))
	}

	xs, ys := xm.Shape(), ym.Shape()
	n, k, m := xs[len(xs)-2], xs[len(xs)-1], ys[len(ys)-1]
	if ys[len(ys)-2] != k {
		return nil, fmt.Errorf("%w: matmul: mismatch in core dimension: %v (n,k=%d) and %v (k=%d,m)",
			tensor.ErrShape, x.Shape(), k, y.Shape(), ys[len(ys)-2])
	}
	batch, err := tensor.BroadcastShapes(xs[:len(xs)-2], ys[:len(ys)-2])
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	xv, err := tensor.BroadcastView(xm, append(batch.Clone(), n, k))
	if err != nil {
		return nil, err
	}
	yv, err := tensor.BroadcastView(ym, append(batch.Clone(), k, m))
	if err != nil {
		return nil, err
	}
	out, err := tensor.Zeros(append(batch.Clone(), n, m), rule.Out)
	if err != nil {
		return nil, err
	}
	matmulInto(xv, yv, out, batch)

	shape := out.Shape()
	switch {
	case x.Ndim() == 1 && y.Ndim() == 1:
		shape = shape[:len(shape)-2]
	case x.Ndim() == 1:
		shape = append(shape[:len(shape)-2:len(shape)-2], m)
	case y.Ndim() == 1:
		shape = shape[:len(shape)-1]
	default:
		return out, nil
	}
	return tensor.Reshape(out, shape.Clone())
}

// matmulInto computes every matrix in the batch. x, y and out must already
// have the broadcast batch shape followed by (n,k), (k,m) and (n,m).
func matmulInto(x, y, out *tensor.NdArray, batch tensor.Shape) {
	nb := len(batch)
	xs, ys, zs := x.Strides(), y.Strides(), out.Strides()
	n, k, m := x.Shape()[nb], x.Shape()[nb+1], y.Shape()[nb+1]
	xb, yb, ob := x.Buffer(), y.Buffer(), out.Buffer()

	xbatch := mustView(x, batch, xs[:nb])
	ybatch := mustView(y, batch, ys[:nb])
	obatch := mustView(out, batch, zs[:nb])

	kind := out.DType().Kind()
	for p := range tensor.Positions(batch, xbatch, ybatch, obatch) {
		for i := range n {
			for j := range m {
				xi := p[0] + i*xs[nb]
				yj := p[1] + j*ys[nb+1]
				dst := p[2] + i*zs[nb] + j*zs[nb+1]
				switch kind {
				case tensor.KindBool:
					var acc bool
					for l := range k {
						acc = acc || (xb.Bool(xi+l*xs[nb+1]) && yb.Bool(yj+l*ys[nb]))
					}
					ob.SetBool(dst, acc)
				case tensor.KindInt:
					var acc int64
					for l := range k {
						acc += xb.Int(xi+l*xs[nb+1]) * yb.Int(yj+l*ys[nb])
					}
					ob.SetInt(dst, acc)
				case tensor.KindUint:
					var acc uint64
					for l := range k {
						acc += xb.Uint(xi+l*xs[nb+1]) * yb.Uint(yj+l*ys[nb])
					}
					ob.SetUint(dst, acc)
				default:
					var acc float64
					for l := range k {
						acc += xb.Float(xi+l*xs[nb+1]) * yb.Float(yj+l*ys[nb])
					}
					ob.SetFloat(dst, acc)
				}
			}
		}
	}
}

// mustView reinterprets a with only its leading batch axes. The strides come
// from a itself so the view is always in range.
func mustView(a *tensor.NdArray, batch tensor.Shape, stride []int) *tensor.NdArray {
	v, err := tensor.View(a.Buffer(), batch, a.Offset(), stride, false)
	if err != nil {
		panic(err)
	}
	return v
}

// Dot computes the dot product of x and y.
//
// For 0-d operands it is Multiply. If y is 1-D it is a sum product over the
// last axes of x and y. Otherwise it is a sum product over the last axis of
// x and the second-to-last axis of y, so the result has shape
// x.shape[:-1] + y.shape[:-2] + y.shape[-1:].
func Dot(x, y *tensor.NdArray) (*tensor.NdArray, error) {
	if x.Ndim() == 0 || y.Ndim() == 0 {
		return Multiply.Apply(x, y)
	}
	if y.Ndim() == 1 {
		return Matmul(x, y)
	}
	xs, ys := x.Shape(), y.Shape()
	k := xs[len(xs)-1]
	if ys[len(ys)-2] != k {
		return nil, fmt.Errorf("%w: dot: shapes %v and %v not aligned: %d (dim %d) != %d (dim %d)",
			tensor.ErrShape, xs, ys, k, len(xs)-1, ys[len(ys)-2], len(ys)-2)
	}

	// Move y's contraction axis to the front and fold the rest into columns.
	perm := make([]int, 0, len(ys))
	perm = append(perm, len(ys)-2)
	cols := 1
	for i, dim := range ys {
		if i != len(ys)-2 {
			perm = append(perm, i)
			cols *= dim
		}
	}
	yt, err := tensor.Transpose(y, perm...)
	if err != nil {
		return nil, err
	}
	y2, err := tensor.Reshape(yt, tensor.Shape{k, cols})
	if err != nil {
		return nil, err
	}
	x2, err := tensor.Reshape(x, tensor.Shape{xs[:len(xs)-1].NumElements(), k})
	if err != nil {
		return nil, err
	}
	prod, err := Matmul(x2, y2)
	if err != nil {
		return nil, err
	}

	shape := make(tensor.Shape, 0, len(xs)+len(ys)-2)
	shape = append(shape, xs[:len(xs)-1]...)
	shape = append(shape, ys[:len(ys)-2]...)
	shape = append(shape, ys[len(ys)-1])
	return tensor.Reshape(prod, shape)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
