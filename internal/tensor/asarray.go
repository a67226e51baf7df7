package tensor

import (
	"fmt"
	"reflect"

	"github.com/x448/float16"
)

// ArrayOption configures AsArray.
type ArrayOption func(*arrayConfig)

type arrayConfig struct {
	shape    Shape
	dtype    DataType
	hasShape bool
	hasDType bool
}

// WithShape requests a shape for the result. The element count must match.
func WithShape(shape Shape) ArrayOption {
	return func(c *arrayConfig) {
		c.shape = shape
		c.hasShape = true
	}
}

// WithDType requests an element type for the result.
func WithDType(dtype DataType) ArrayOption {
	return func(c *arrayConfig) {
		c.dtype = dtype
		c.hasDType = true
	}
}

var float16Type = reflect.TypeFor[float16.Float16]()

// AsArray converts data into an NdArray.
//
// Accepted inputs:
//   - *NdArray: returned as-is, or converted when another dtype is requested
//   - *Buffer and typed slices ([]float32, []int64, ...): wrapped without copying
//   - nested slices or arrays of Go scalars: shape is inferred, values copied
//   - a Go scalar: a 0-d array
//
// Without WithDType, nested data uses the dtype of its Go element type when
// all elements share one, else the widest kind among them (float, then int,
// then uint, then bool).
func AsArray(data any, opts ...ArrayOption) (*NdArray, error) {
	var cfg arrayConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasShape {
		if err := cfg.shape.Validate(); err != nil {
			return nil, err
		}
	}

	switch v := data.(type) {
	case *NdArray:
		return finish(v, &cfg)
	case *Buffer:
		return wrapBuffer(v, &cfg)
	}
	if buf, ok := wrapTyped(data); ok {
		return wrapBuffer(buf, &cfg)
	}
	return fromNested(reflect.ValueOf(data), &cfg)
}

// wrapBuffer views a shared buffer, as a vector unless a shape is given.
func wrapBuffer(buf *Buffer, cfg *arrayConfig) (*NdArray, error) {
	shape := Shape{buf.Len()}
	if cfg.hasShape {
		shape = cfg.shape
	}
	a, err := New(buf, shape)
	if err != nil {
		return nil, err
	}
	if cfg.hasDType && cfg.dtype != a.DType() {
		return AsType(a, cfg.dtype)
	}
	return a, nil
}

func finish(a *NdArray, cfg *arrayConfig) (*NdArray, error) {
	var err error
	if cfg.hasDType && cfg.dtype != a.DType() {
		if a, err = AsType(a, cfg.dtype); err != nil {
			return nil, err
		}
	}
	if cfg.hasShape {
		return Reshape(a, cfg.shape)
	}
	return a, nil
}

func fromNested(v reflect.Value, cfg *arrayConfig) (*NdArray, error) {
	shape, err := inferShape(v)
	if err != nil {
		return nil, err
	}
	var leaves []reflect.Value
	if err := flatten(v, &leaves); err != nil {
		return nil, err
	}
	dtype := cfg.dtype
	if !cfg.hasDType {
		dtype = inferDType(leaves)
	}
	if cfg.hasShape {
		if cfg.shape.NumElements() != len(leaves) {
			return nil, fmt.Errorf("%w: invalid shape %v for %d elements", ErrShape, cfg.shape, len(leaves))
		}
		shape = cfg.shape
	}
	a, err := allocate(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, leaf := range leaves {
		storeValue(a.buffer, i, leaf)
	}
	return a, nil
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func asNdArray(v reflect.Value) (*NdArray, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	a, ok := v.Interface().(*NdArray)
	return a, ok && a != nil
}

// inferShape returns the shape of a nested sequence, rejecting ragged
// nesting and levels that mix sequences with scalars.
func inferShape(v reflect.Value) (Shape, error) {
	v = unwrap(v)
	if a, ok := asNdArray(v); ok {
		return a.shape.Clone(), nil
	}
	if !isSequence(v) {
		return Shape{}, nil
	}
	n := v.Len()
	if n == 0 {
		return Shape{0}, nil
	}
	first, err := inferShape(v.Index(0))
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		s, err := inferShape(v.Index(i))
		if err != nil {
			return nil, err
		}
		if !s.Equal(first) {
			return nil, fmt.Errorf("%w: inhomogeneous nested data: element %d has shape %v, element 0 has shape %v",
				ErrShape, i, s, first)
		}
	}
	return append(Shape{n}, first...), nil
}

func flatten(v reflect.Value, out *[]reflect.Value) error {
	v = unwrap(v)
	if a, ok := asNdArray(v); ok {
		for _, item := range a.Values() {
			*out = append(*out, reflect.ValueOf(item))
		}
		return nil
	}
	if isSequence(v) {
		for i := range v.Len() {
			if err := flatten(v.Index(i), out); err != nil {
				return err
			}
		}
		return nil
	}
	if !v.IsValid() {
		return fmt.Errorf("%w: cannot convert nil to an array element", ErrDType)
	}
	if _, ok := scalarDType(v); !ok {
		return fmt.Errorf("%w: unsupported element type %s", ErrDType, v.Type())
	}
	*out = append(*out, v)
	return nil
}

// scalarDType maps a Go scalar to the dtype that stores it.
func scalarDType(v reflect.Value) (DataType, bool) {
	if v.Type() == float16Type {
		return Float16, true
	}
	switch v.Kind() {
	case reflect.Bool:
		return Bool, true
	case reflect.Int8:
		return Int8, true
	case reflect.Int16:
		return Int16, true
	case reflect.Int32:
		return Int32, true
	case reflect.Int, reflect.Int64:
		return Int64, true
	case reflect.Uint8:
		return Uint8, true
	case reflect.Uint16:
		return Uint16, true
	case reflect.Uint32:
		return Uint32, true
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return Uint64, true
	case reflect.Float32:
		return Float32, true
	case reflect.Float64:
		return Float64, true
	default:
		return 0, false
	}
}

func inferDType(leaves []reflect.Value) DataType {
	if len(leaves) == 0 {
		return Float64
	}
	first, _ := scalarDType(leaves[0])
	same := true
	kind := first.Kind()
	for _, leaf := range leaves[1:] {
		dt, _ := scalarDType(leaf)
		if dt != first {
			same = false
		}
		kind = widerKind(kind, dt.Kind())
	}
	if same {
		return first
	}
	switch kind {
	case KindFloat:
		return Float64
	case KindInt:
		return Int64
	case KindUint:
		return Uint64
	default:
		return Bool
	}
}

// widerKind orders kinds bool < uint < int < float.
func widerKind(a, b Kind) Kind {
	rank := func(k Kind) int {
		switch k {
		case KindFloat:
			return 3
		case KindInt:
			return 2
		case KindUint:
			return 1
		default:
			return 0
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}

func storeValue(b *Buffer, i int, v reflect.Value) {
	if v.Type() == float16Type {
		b.SetFloat(i, float64(float16.Float16(v.Uint()).Float32()))
		return
	}
	switch v.Kind() {
	case reflect.Bool:
		b.SetBool(i, v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.SetInt(i, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.SetUint(i, v.Uint())
	case reflect.Float32, reflect.Float64:
		b.SetFloat(i, v.Float())
	}
}
