package ufunc

import (
	"fmt"

	"github.com/born-ml/numpy/internal/tensor"
)

// UnaryKernels holds the scalar implementations of a one-input ufunc, one
// per scalar domain. Float is required; a missing domain falls back to the
// next wider one (bool to int to float, uint to float).
type UnaryKernels struct {
	Float func(x float64) float64
	Int   func(x int64) int64
	Uint  func(x uint64) uint64
	Bool  func(x bool) bool
}

// BinaryKernels holds the scalar implementations of a two-input ufunc.
type BinaryKernels struct {
	Float func(x, y float64) float64
	Int   func(x, y int64) int64
	Uint  func(x, y uint64) uint64
	Bool  func(x, y bool) bool
}

// Unary is an elementwise operation of one array.
type Unary struct {
	Name    string
	Rules   []Rule
	Kernels UnaryKernels
}

// Binary is an elementwise operation of two broadcast arrays.
type Binary struct {
	Name    string
	Rules   []Rule
	Kernels BinaryKernels
	// Identity seeds reductions over empty axes; nil means none exists.
	Identity *float64
}

// NewUnary creates a one-input ufunc.
func NewUnary(name string, rules []Rule, kernels UnaryKernels) *Unary {
	if kernels.Float == nil {
		panic("ufunc: " + name + " needs a float kernel")
	}
	return &Unary{Name: name, Rules: rules, Kernels: kernels}
}

// NewBinary creates a two-input ufunc.
func NewBinary(name string, rules []Rule, kernels BinaryKernels) *Binary {
	if kernels.Float == nil {
		panic("ufunc: " + name + " needs a float kernel")
	}
	return &Binary{Name: name, Rules: rules, Kernels: kernels}
}

// withIdentity sets the reduction identity and returns u.
func (u *Binary) withIdentity(v float64) *Binary {
	u.Identity = &v
	return u
}

// Resolve returns the rule applied to inputs of dtype dt.
func (u *Unary) Resolve(dt tensor.DataType) (Rule, error) {
	r, err := Resolve(u.Rules, dt)
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w", u.Name, err)
	}
	return r, nil
}

// Resolve returns the rule applied to inputs of dtypes x and y.
func (u *Binary) Resolve(x, y tensor.DataType) (Rule, error) {
	r, err := Resolve(u.Rules, x, y)
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w", u.Name, err)
	}
	return r, nil
}

// Apply computes the ufunc into a new array of the rule's output dtype.
func (u *Unary) Apply(x *tensor.NdArray) (*tensor.NdArray, error) {
	rule, err := u.Resolve(x.DType())
	if err != nil {
		return nil, err
	}
	out, err := tensor.Zeros(x.Shape(), rule.Out)
	if err != nil {
		return nil, err
	}
	u.run(rule, x, out)
	return out, nil
}

// Out computes the ufunc into out, which must have x's shape. Results are
// converted to out's dtype. out may be x itself.
func (u *Unary) Out(x, out *tensor.NdArray) error {
	rule, err := u.Resolve(x.DType())
	if err != nil {
		return err
	}
	if !out.Shape().Equal(x.Shape()) {
		return fmt.Errorf("%w: %s: output shape %v does not match input shape %v",
			tensor.ErrShape, u.Name, out.Shape(), x.Shape())
	}
	u.run(rule, x, out)
	return nil
}

func (u *Unary) run(rule Rule, x, out *tensor.NdArray) {
	xb, ob := x.Buffer(), out.Buffer()
	k := u.Kernels
	switch domain(rule.In[0].Kind(), k.Int != nil, k.Uint != nil, k.Bool != nil) {
	case tensor.KindBool:
		for p := range tensor.Positions(x.Shape(), x, out) {
			ob.SetBool(p[1], k.Bool(xb.Bool(p[0])))
		}
	case tensor.KindInt:
		for p := range tensor.Positions(x.Shape(), x, out) {
			ob.SetInt(p[1], k.Int(xb.Int(p[0])))
		}
	case tensor.KindUint:
		for p := range tensor.Positions(x.Shape(), x, out) {
			ob.SetUint(p[1], k.Uint(xb.Uint(p[0])))
		}
	default:
		for p := range tensor.Positions(x.Shape(), x, out) {
			ob.SetFloat(p[1], k.Float(xb.Float(p[0])))
		}
	}
}

// Apply broadcasts x and y and computes the ufunc into a new array.
func (u *Binary) Apply(x, y *tensor.NdArray) (*tensor.NdArray, error) {
	rule, err := u.Resolve(x.DType(), y.DType())
	if err != nil {
		return nil, err
	}
	shape, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: operands could not be broadcast together: %w", u.Name, err)
	}
	out, err := tensor.Zeros(shape, rule.Out)
	if err != nil {
		return nil, err
	}
	return out, u.run(rule, x, y, out)
}

// Out broadcasts x and y to out's shape and computes the ufunc into out.
// out may be x or y itself.
func (u *Binary) Out(x, y, out *tensor.NdArray) error {
	rule, err := u.Resolve(x.DType(), y.DType())
	if err != nil {
		return err
	}
	shape, err := tensor.BroadcastShapes(x.Shape(), y.Shape(), out.Shape())
	if err != nil || !shape.Equal(out.Shape()) {
		return fmt.Errorf("%w: %s: cannot write operands of shapes %v and %v into output of shape %v",
			tensor.ErrShape, u.Name, x.Shape(), y.Shape(), out.Shape())
	}
	return u.run(rule, x, y, out)
}

func (u *Binary) run(rule Rule, x, y, out *tensor.NdArray) error {
	shape := out.Shape()
	xv, err := tensor.BroadcastView(x, shape)
	if err != nil {
		return err
	}
	yv, err := tensor.BroadcastView(y, shape)
	if err != nil {
		return err
	}
	xb, yb, ob := x.Buffer(), y.Buffer(), out.Buffer()
	k := u.Kernels
	switch domain(rule.In[0].Kind(), k.Int != nil, k.Uint != nil, k.Bool != nil) {
	case tensor.KindBool:
		for p := range tensor.Positions(shape, xv, yv, out) {
			ob.SetBool(p[2], k.Bool(xb.Bool(p[0]), yb.Bool(p[1])))
		}
	case tensor.KindInt:
		for p := range tensor.Positions(shape, xv, yv, out) {
			ob.SetInt(p[2], k.Int(xb.Int(p[0]), yb.Int(p[1])))
		}
	case tensor.KindUint:
		for p := range tensor.Positions(shape, xv, yv, out) {
			ob.SetUint(p[2], k.Uint(xb.Uint(p[0]), yb.Uint(p[1])))
		}
	default:
		for p := range tensor.Positions(shape, xv, yv, out) {
			ob.SetFloat(p[2], k.Float(xb.Float(p[0]), yb.Float(p[1])))
		}
	}
	return nil
}

// domain picks the scalar domain a kernel set evaluates kind in.
func domain(kind tensor.Kind, hasInt, hasUint, hasBool bool) tensor.Kind {
	switch {
	case kind == tensor.KindBool && hasBool:
		return tensor.KindBool
	case (kind == tensor.KindBool || kind == tensor.KindInt) && hasInt:
		return tensor.KindInt
	case kind == tensor.KindUint && hasUint:
		return tensor.KindUint
	default:
		return tensor.KindFloat
	}
}
