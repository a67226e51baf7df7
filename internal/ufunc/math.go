package ufunc

import "math"

func b2f(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func b2i(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func b2u(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// Arithmetic.
var (
	Add = NewBinary("add", SameKindRules, BinaryKernels{
		Float: func(x, y float64) float64 { return x + y },
		Int:   func(x, y int64) int64 { return x + y },
		Uint:  func(x, y uint64) uint64 { return x + y },
		Bool:  func(x, y bool) bool { return x || y },
	}).withIdentity(0)

	Subtract = NewBinary("subtract", SameKindRules, BinaryKernels{
		Float: func(x, y float64) float64 { return x - y },
		Int:   func(x, y int64) int64 { return x - y },
		Uint:  func(x, y uint64) uint64 { return x - y },
		Bool:  func(x, y bool) bool { return x != y },
	})

	Multiply = NewBinary("multiply", SameKindRules, BinaryKernels{
		Float: func(x, y float64) float64 { return x * y },
		Int:   func(x, y int64) int64 { return x * y },
		Uint:  func(x, y uint64) uint64 { return x * y },
		Bool:  func(x, y bool) bool { return x && y },
	}).withIdentity(1)

	// Divide is true division; integer inputs produce floats.
	Divide = NewBinary("divide", FloatRules, BinaryKernels{
		Float: func(x, y float64) float64 { return x / y },
	})

	// Mod returns the remainder with the sign of the divisor. Integer
	// division by zero yields 0.
	Mod = NewBinary("mod", ModRules, BinaryKernels{
		Float: func(x, y float64) float64 {
			r := math.Mod(x, y)
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r
		},
		Int: func(x, y int64) int64 {
			if y == 0 {
				return 0
			}
			r := x % y
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r
		},
		Uint: func(x, y uint64) uint64 {
			if y == 0 {
				return 0
			}
			return x % y
		},
	})

	Power = NewBinary("power", FloatRules, BinaryKernels{
		Float: math.Pow,
	})

	// Minimum propagates NaNs.
	Minimum = NewBinary("minimum", SameKindRules, BinaryKernels{
		Float: math.Min,
		Int:   func(x, y int64) int64 { return min(x, y) },
		Uint:  func(x, y uint64) uint64 { return min(x, y) },
		Bool:  func(x, y bool) bool { return x && y },
	})

	// Maximum propagates NaNs.
	Maximum = NewBinary("maximum", SameKindRules, BinaryKernels{
		Float: math.Max,
		Int:   func(x, y int64) int64 { return max(x, y) },
		Uint:  func(x, y uint64) uint64 { return max(x, y) },
		Bool:  func(x, y bool) bool { return x || y },
	})
)

// Comparisons.
var (
	Equal = NewBinary("equal", CompareRules, BinaryKernels{
		Float: func(x, y float64) float64 { return b2f(x == y) },
		Int:   func(x, y int64) int64 { return b2i(x == y) },
		Uint:  func(x, y uint64) uint64 { return b2u(x == y) },
		Bool:  func(x, y bool) bool { return x == y },
	})

	NotEqual = NewBinary("not_equal", CompareRules, BinaryKernels{
		Float: func(x, y float64) float64 { return b2f(x != y) },
		Int:   func(x, y int64) int64 { return b2i(x != y) },
		Uint:  func(x, y uint64) uint64 { return b2u(x != y) },
		Bool:  func(x, y bool) bool { return x != y },
	})

	Less = NewBinary("less", CompareRules, BinaryKernels{
		Float: func(x, y float64) float64 { return b2f(x < y) },
		Int:   func(x, y int64) int64 { return b2i(x < y) },
		Uint:  func(x, y uint64) uint64 { return b2u(x < y) },
		Bool:  func(x, y bool) bool { return !x && y },
	})

	LessEqual = NewBinary("less_equal", CompareRules, BinaryKernels{
		Float: func(x, y float64) float64 { return b2f(x <= y) },
		Int:   func(x, y int64) int64 { return b2i(x <= y) },
		Uint:  func(x, y uint64) uint64 { return b2u(x <= y) },
		Bool:  func(x, y bool) bool { return !x || y },
	})

	Greater = NewBinary("greater", CompareRules, BinaryKernels{
		Float: func(x, y float64) float64 { return b2f(x > y) },
		Int:   func(x, y int64) int64 { return b2i(x > y) },
		Uint:  func(x, y uint64) uint64 { return b2u(x > y) },
		Bool:  func(x, y bool) bool { return x && !y },
	})

	GreaterEqual = NewBinary("greater_equal", CompareRules, BinaryKernels{
		Float: func(x, y float64) float64 { return b2f(x >= y) },
		Int:   func(x, y int64) int64 { return b2i(x >= y) },
		Uint:  func(x, y uint64) uint64 { return b2u(x >= y) },
		Bool:  func(x, y bool) bool { return x || !y },
	})
)

// Unary functions.
var (
	Negative = NewUnary("negative", UnarySignedRules, UnaryKernels{
		Float: func(x float64) float64 { return -x },
		Int:   func(x int64) int64 { return -x },
	})

	Absolute = NewUnary("absolute", UnarySignedRules, UnaryKernels{
		Float: math.Abs,
		Int: func(x int64) int64 {
			if x < 0 {
				return -x
			}
			return x
		},
	})

	Square = NewUnary("square", UnarySameKindRules, UnaryKernels{
		Float: func(x float64) float64 { return x * x },
		Int:   func(x int64) int64 { return x * x },
		Uint:  func(x uint64) uint64 { return x * x },
		Bool:  func(x bool) bool { return x },
	})

	Sqrt  = NewUnary("sqrt", UnaryFloatRules, UnaryKernels{Float: math.Sqrt})
	Cbrt  = NewUnary("cbrt", UnaryFloatRules, UnaryKernels{Float: math.Cbrt})
	Sin   = NewUnary("sin", UnaryFloatRules, UnaryKernels{Float: math.Sin})
	Cos   = NewUnary("cos", UnaryFloatRules, UnaryKernels{Float: math.Cos})
	Tan   = NewUnary("tan", UnaryFloatRules, UnaryKernels{Float: math.Tan})
	Exp   = NewUnary("exp", UnaryFloatRules, UnaryKernels{Float: math.Exp})
	Log   = NewUnary("log", UnaryFloatRules, UnaryKernels{Float: math.Log})
	Log2  = NewUnary("log2", UnaryFloatRules, UnaryKernels{Float: math.Log2})
	Log10 = NewUnary("log10", UnaryFloatRules, UnaryKernels{Float: math.Log10})

	// Round rounds half to even.
	Round = NewUnary("round", UnaryRoundRules, roundKernels(math.RoundToEven))
	Trunc = NewUnary("trunc", UnaryRoundRules, roundKernels(math.Trunc))
	Floor = NewUnary("floor", UnaryRoundRules, roundKernels(math.Floor))
	Ceil  = NewUnary("ceil", UnaryRoundRules, roundKernels(math.Ceil))
)

// roundKernels leave integers untouched.
func roundKernels(f func(float64) float64) UnaryKernels {
	return UnaryKernels{
		Float: f,
		Int:   func(x int64) int64 { return x },
		Uint:  func(x uint64) uint64 { return x },
	}
}
