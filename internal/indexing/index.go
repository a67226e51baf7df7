// Package indexing implements NumPy-style index expressions over tensor
// arrays: integers, slices, new axes, an ellipsis, and integer or boolean
// index arrays.
//
// Basic indexing (integers and slices only) returns views that share the
// indexed array's buffer. Advanced indexing (any index array) gathers into a
// new array.
package indexing

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/born-ml/numpy/internal/tensor"
)

// Index is one element of an index expression. It is implemented by Int,
// Slice, Str, Array, NewAxis and Ellipsis.
type Index interface {
	isIndex()
}

// Int selects one position along an axis and drops the axis.
type Int int

// Slice selects a strided range along an axis. Fields whose Has flag is
// false are omitted and take direction-aware defaults.
type Slice struct {
	Start, Stop, Step          int
	HasStart, HasStop, HasStep bool
}

// Str is a textual index token: an integer, a slice such as "1:-1:2", "...",
// "newaxis", or several of these joined by commas.
type Str string

// Array is an advanced index operand: integer coordinates or a boolean mask.
type Array struct {
	*tensor.NdArray
}

// NewAxis inserts a length-one axis.
type NewAxis struct{}

// Ellipsis stands for as many full slices as the expression needs.
type Ellipsis struct{}

func (Int) isIndex()      {}
func (Slice) isIndex()    {}
func (Str) isIndex()      {}
func (Array) isIndex()    {}
func (NewAxis) isIndex()  {}
func (Ellipsis) isIndex() {}

// All returns the full slice ":".
func All() Slice {
	return Slice{}
}

// Range returns the slice "start:stop".
func Range(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, HasStart: true, HasStop: true}
}

// RangeStep returns the slice "start:stop:step".
func RangeStep(start, stop, step int) Slice {
	return Slice{Start: start, Stop: stop, Step: step, HasStart: true, HasStop: true, HasStep: true}
}

// Equal reports whether two slices are structurally identical.
func (s Slice) Equal(other Slice) bool {
	return s == other
}

// Len returns the number of positions a normalized slice selects.
func (s Slice) Len() int {
	switch {
	case s.Step > 0 && s.Stop > s.Start:
		return (s.Stop - s.Start + s.Step - 1) / s.Step
	case s.Step < 0 && s.Stop < s.Start:
		return (s.Start - s.Stop - s.Step - 1) / -s.Step
	default:
		return 0
	}
}

// String formats the slice in start:stop:step notation.
func (s Slice) String() string {
	part := func(v int, ok bool) string {
		if !ok {
			return ""
		}
		return strconv.Itoa(v)
	}
	out := part(s.Start, s.HasStart) + ":" + part(s.Stop, s.HasStop)
	if s.HasStep {
		out += ":" + strconv.Itoa(s.Step)
	}
	return out
}

// FromAny converts a loose Go value into an Index.
//
// Integers become Int, strings Str, nil NewAxis, and *tensor.NdArray values
// or nested slices of integers or booleans become Array.
func FromAny(v any) (Index, error) {
	switch x := v.(type) {
	case Index:
		return x, nil
	case nil:
		return NewAxis{}, nil
	case string:
		return Str(x), nil
	case *tensor.NdArray:
		return Array{x}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(rv.Uint()), nil //nolint:gosec // G115: index values beyond int range fail bounds checks.
	case reflect.Slice, reflect.Array:
		a, err := tensor.AsArray(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid index array %v: %w", tensor.ErrSyntax, v, err)
		}
		if a.Size() == 0 && a.DType().Kind() == tensor.KindFloat {
			// An empty list selects nothing; give it an integer dtype.
			if a, err = tensor.AsType(a, tensor.Int64); err != nil {
				return nil, err
			}
		}
		return Array{a}, nil
	}
	return nil, fmt.Errorf("%w: unsupported index %v of type %T", tensor.ErrSyntax, v, v)
}

// Parse converts loose Go values into an index expression.
func Parse(values ...any) ([]Index, error) {
	out := make([]Index, len(values))
	for i, v := range values {
		idx, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}
