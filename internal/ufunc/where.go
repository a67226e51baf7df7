package ufunc

import (
	"fmt"

	"github.com/born-ml/numpy/internal/tensor"
)

// Where selects elements from x where cond is true and from y elsewhere.
// The three operands broadcast together; x and y are promoted as for Add.
func Where(cond, x, y *tensor.NdArray) (*tensor.NdArray, error) {
	rule, err := Resolve(SameKindRules, x.DType(), y.DType())
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	shape, err := tensor.BroadcastShapes(cond.Shape(), x.Shape(), y.Shape())
	if err != nil {
		return nil, fmt.Errorf("where: operands could not be broadcast together: %w", err)
	}
	views := make([]*tensor.NdArray, 3)
	for i, a := range []*tensor.NdArray{cond, x, y} {
		if views[i], err = tensor.BroadcastView(a, shape); err != nil {
			return nil, err
		}
	}
	out, err := tensor.Zeros(shape, rule.Out)
	if err != nil {
		return nil, err
	}
	cb, xb, yb, ob := cond.Buffer(), x.Buffer(), y.Buffer(), out.Buffer()
	for p := range tensor.Positions(shape, views[0], views[1], views[2], out) {
		if cb.Bool(p[0]) {
			ob.Assign(p[3], xb, p[1])
		} else {
			ob.Assign(p[3], yb, p[2])
		}
	}
	return out, nil
}
