// Package ufunc builds elementwise array operations from scalar kernels and
// dtype promotion rules, and derives reductions and products from them.
package ufunc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/born-ml/numpy/internal/tensor"
)

// Rule maps a tuple of input dtypes to the dtype of the result.
type Rule struct {
	In  []tensor.DataType
	Out tensor.DataType
}

// Resolve picks the rule that applies to the given input dtypes.
//
// A rule whose inputs equal dtypes exactly wins. Otherwise the first rule,
// in table order, that every input can be safely cast to is used. When no
// rule applies Resolve returns an error wrapping tensor.ErrDType.
func Resolve(rules []Rule, dtypes ...tensor.DataType) (Rule, error) {
	for _, r := range rules {
		if slices.Equal(r.In, dtypes) {
			return r, nil
		}
	}
	for _, r := range rules {
		if len(r.In) == len(dtypes) && castsTo(dtypes, r.In) {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: no applicable rule for dtypes (%s)", tensor.ErrDType, joinDTypes(dtypes))
}

func castsTo(from, to []tensor.DataType) bool {
	for i := range from {
		if !tensor.CanCast(from[i], to[i]) {
			return false
		}
	}
	return true
}

func joinDTypes(dtypes []tensor.DataType) string {
	names := make([]string, len(dtypes))
	for i, dt := range dtypes {
		names[i] = dt.String()
	}
	return strings.Join(names, ", ")
}

// unaryRules builds rules for a one-input ufunc from (in, out) pairs.
func unaryRules(pairs ...tensor.DataType) []Rule {
	rules := make([]Rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rules = append(rules, Rule{In: []tensor.DataType{pairs[i]}, Out: pairs[i+1]})
	}
	return rules
}

// binaryRules builds rules for a two-input ufunc whose inputs share one
// dtype, from (in, out) pairs.
func binaryRules(pairs ...tensor.DataType) []Rule {
	rules := make([]Rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rules = append(rules, Rule{In: []tensor.DataType{pairs[i], pairs[i]}, Out: pairs[i+1]})
	}
	return rules
}

const (
	bl  = tensor.Bool
	i8  = tensor.Int8
	i16 = tensor.Int16
	i32 = tensor.Int32
	i64 = tensor.Int64
	u8  = tensor.Uint8
	u16 = tensor.Uint16
	u32 = tensor.Uint32
	u64 = tensor.Uint64
	f16 = tensor.Float16
	f32 = tensor.Float32
	f64 = tensor.Float64
)

// Promotion tables shared by the built-in ufuncs.
var (
	// SameKindRules keep the input dtype.
	SameKindRules = binaryRules(
		bl, bl, i8, i8, i16, i16, i32, i32, i64, i64,
		u8, u8, u16, u16, u32, u32, u64, u64,
		f16, f16, f32, f32, f64, f64,
	)

	// FloatRules produce a float result wide enough for the inputs.
	FloatRules = binaryRules(
		bl, f32, i8, f32, i16, f32, i32, f32, i64, f64,
		u8, f32, u16, f32, u32, f32, u64, f64,
		f16, f16, f32, f32, f64, f64,
	)

	// ModRules are SameKindRules with bool promoted to int8.
	ModRules = binaryRules(
		bl, i8, i8, i8, i16, i16, i32, i32, i64, i64,
		u8, u8, u16, u16, u32, u32, u64, u64,
		f16, f16, f32, f32, f64, f64,
	)

	// CompareRules produce bool.
	CompareRules = binaryRules(
		bl, bl, i8, bl, i16, bl, i32, bl, i64, bl,
		u8, bl, u16, bl, u32, bl, u64, bl,
		f16, bl, f32, bl, f64, bl,
	)

	// UnarySameKindRules keep the input dtype.
	UnarySameKindRules = unaryRules(
		bl, bl, i8, i8, i16, i16, i32, i32, i64, i64,
		u8, u8, u16, u16, u32, u32, u64, u64,
		f16, f16, f32, f32, f64, f64,
	)

	// UnarySignedRules keep signed and float dtypes; unsigned and bool
	// inputs promote to the next signed type.
	UnarySignedRules = unaryRules(
		i8, i8, i16, i16, i32, i32, i64, i64,
		f16, f16, f32, f32, f64, f64,
	)

	// UnaryFloatRules produce a float result wide enough for the input.
	UnaryFloatRules = unaryRules(
		i8, f32, i16, f32, i32, f32, i64, f64,
		f16, f16, f32, f32, f64, f64,
	)

	// UnaryRoundRules keep integer dtypes and send bool to float32.
	UnaryRoundRules = unaryRules(
		bl, f32, i8, i8, i16, i16, i32, i32, i64, i64,
		u8, u8, u16, u16, u32, u32, u64, u64,
		f16, f16, f32, f32, f64, f64,
	)
)
