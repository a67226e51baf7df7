// Package tensor provides the core strided array types: data types, shapes,
// typed buffers, NdArray views, and broadcasting.
package tensor

import (
	"fmt"

	"github.com/x448/float16"
)

// Element is a constraint for Go types that back array storage.
type Element interface {
	bool | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float16.Float16 | float32 | float64
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	Unicode // Placeholder without storage.
)

// Kind groups data types that share a scalar domain.
type Kind int

// Scalar domains.
const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindUnicode
)

// Default data types used when a caller does not name one.
const (
	DefaultInt   = Int32
	DefaultUint  = Uint32
	DefaultFloat = Float32
)

var dtypeNames = [...]string{
	Bool:    "bool",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float16: "float16",
	Float32: "float32",
	Float64: "float64",
	Unicode: "unicode",
}

// dtypeCodes maps short type codes to data types.
var dtypeCodes = map[string]DataType{
	"?":  Bool,
	"b":  Int8,
	"b1": Bool,
	"i":  DefaultInt,
	"i1": Int8,
	"i2": Int16,
	"i4": Int32,
	"i8": Int64,
	"L":  DefaultUint,
	"u1": Uint8,
	"u2": Uint16,
	"u4": Uint32,
	"u8": Uint64,
	"f":  DefaultFloat,
	"f2": Float16,
	"f4": Float32,
	"f8": Float64,
	"U":  Unicode,
}

// castable lists, for each data type, the types it converts to without
// overflow or truncation.
var castable = map[DataType][]DataType{
	Bool:    {Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Float16, Float32, Float64},
	Int8:    {Int8, Int16, Int32, Int64, Float16, Float32, Float64},
	Int16:   {Int16, Int32, Int64, Float32, Float64},
	Int32:   {Int32, Int64, Float32, Float64},
	Int64:   {Int64, Float64},
	Uint8:   {Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float16, Float32, Float64},
	Uint16:  {Int32, Int64, Uint16, Uint32, Uint64, Float32, Float64},
	Uint32:  {Int64, Uint32, Uint64, Float64},
	Uint64:  {Uint64},
	Float16: {Float16, Float32, Float64},
	Float32: {Float32, Float64},
	Float64: {Float64},
}

// ParseDType resolves a data type name or type code.
//
// Accepted forms are full names ("int8", "float64"), the aliases "int",
// "uint" and "float", and NumPy type codes ("b1", "i4", "f8", "U").
func ParseDType(s string) (DataType, error) {
	switch s {
	case "int":
		return DefaultInt, nil
	case "uint":
		return DefaultUint, nil
	case "float":
		return DefaultFloat, nil
	}
	for dt, name := range dtypeNames {
		if name == s {
			return DataType(dt), nil
		}
	}
	if dt, ok := dtypeCodes[s]; ok {
		return dt, nil
	}
	return 0, fmt.Errorf("%w: invalid dtype %q", ErrDType, s)
}

// MustParseDType is like ParseDType but panics on unknown names.
func MustParseDType(s string) DataType {
	dt, err := ParseDType(s)
	if err != nil {
		panic(err)
	}
	return dt
}

// String returns the canonical name of the data type.
func (dt DataType) String() string {
	if dt >= 0 && int(dt) < len(dtypeNames) {
		return dtypeNames[dt]
	}
	return fmt.Sprintf("dtype(%d)", int(dt))
}

// Kind returns the scalar domain of the data type.
func (dt DataType) Kind() Kind {
	switch dt {
	case Bool:
		return KindBool
	case Int8, Int16, Int32, Int64:
		return KindInt
	case Uint8, Uint16, Uint32, Uint64:
		return KindUint
	case Float16, Float32, Float64:
		return KindFloat
	default:
		return KindUnicode
	}
}

// Size returns the byte size of one element, or 0 for types without storage.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Supported reports whether the data type has a backing storage type.
func (dt DataType) Supported() bool {
	return dt.Size() > 0
}

// CanCast reports whether values of type from convert to type to without
// overflow or truncation.
func CanCast(from, to DataType) bool {
	for _, dt := range castable[from] {
		if dt == to {
			return true
		}
	}
	return false
}

// CastTargets returns the data types from casts to safely, in table order.
func CastTargets(from DataType) []DataType {
	return append([]DataType(nil), castable[from]...)
}

// DTypeOf returns the data type stored by Go element type T.
func DTypeOf[T Element]() DataType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	default:
		return Float64
	}
}
