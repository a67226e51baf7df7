package tensor

import (
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Buffer is flat, fixed-length, homogeneously typed element storage.
//
// A Buffer is shared by every NdArray view derived from the array that
// allocated it; writes through one view are visible through all of them.
// Buffers are never resized. Pointer identity defines memory sharing.
type Buffer struct {
	dtype DataType
	data  any // one of []bool, []int8, ..., []float16.Float16, []float32, []float64
	n     int
}

// NewBuffer allocates a zero-filled buffer of n elements.
func NewBuffer(dtype DataType, n int) (*Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative buffer length %d", ErrShape, n)
	}
	if size := dtype.Size(); size > 0 && n > math.MaxInt/size {
		return nil, fmt.Errorf("%w: buffer of %d %s elements is too large", ErrShape, n, dtype)
	}
	var data any
	switch dtype {
	case Bool:
		data = make([]bool, n)
	case Int8:
		data = make([]int8, n)
	case Int16:
		data = make([]int16, n)
	case Int32:
		data = make([]int32, n)
	case Int64:
		data = make([]int64, n)
	case Uint8:
		data = make([]uint8, n)
	case Uint16:
		data = make([]uint16, n)
	case Uint32:
		data = make([]uint32, n)
	case Uint64:
		data = make([]uint64, n)
	case Float16:
		data = make([]float16.Float16, n)
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	default:
		return nil, fmt.Errorf("%w: dtype %s has no storage type", ErrDType, dtype)
	}
	return &Buffer{dtype: dtype, data: data, n: n}, nil
}

// WrapSlice returns a buffer backed by data. The slice is shared, not copied.
func WrapSlice[T Element](data []T) *Buffer {
	return &Buffer{dtype: DTypeOf[T](), data: data, n: len(data)}
}

// wrapTyped wraps a typed Go slice held in an interface.
func wrapTyped(data any) (*Buffer, bool) {
	switch v := data.(type) {
	case []bool:
		return WrapSlice(v), true
	case []int8:
		return WrapSlice(v), true
	case []int16:
		return WrapSlice(v), true
	case []int32:
		return WrapSlice(v), true
	case []int64:
		return WrapSlice(v), true
	case []uint8:
		return WrapSlice(v), true
	case []uint16:
		return WrapSlice(v), true
	case []uint32:
		return WrapSlice(v), true
	case []uint64:
		return WrapSlice(v), true
	case []float16.Float16:
		return WrapSlice(v), true
	case []float32:
		return WrapSlice(v), true
	case []float64:
		return WrapSlice(v), true
	}
	return nil, false
}

// Data returns the buffer's backing slice (zero-copy).
//
// WARNING: Modifications to the returned slice modify every view of the buffer.
func Data[T Element](b *Buffer) ([]T, error) {
	data, ok := b.data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: buffer dtype is %s, not %s", ErrDType, b.dtype, DTypeOf[T]())
	}
	return data, nil
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	return b.n
}

// DType returns the element type.
func (b *Buffer) DType() DataType {
	return b.dtype
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	var data any
	switch v := b.data.(type) {
	case []bool:
		data = append([]bool(nil), v...)
	case []int8:
		data = append([]int8(nil), v...)
	case []int16:
		data = append([]int16(nil), v...)
	case []int32:
		data = append([]int32(nil), v...)
	case []int64:
		data = append([]int64(nil), v...)
	case []uint8:
		data = append([]uint8(nil), v...)
	case []uint16:
		data = append([]uint16(nil), v...)
	case []uint32:
		data = append([]uint32(nil), v...)
	case []uint64:
		data = append([]uint64(nil), v...)
	case []float16.Float16:
		data = append([]float16.Float16(nil), v...)
	case []float32:
		data = append([]float32(nil), v...)
	case []float64:
		data = append([]float64(nil), v...)
	}
	return &Buffer{dtype: b.dtype, data: data, n: b.n}
}

// Float returns element i converted to float64.
func (b *Buffer) Float(i int) float64 {
	switch v := b.data.(type) {
	case []bool:
		if v[i] {
			return 1
		}
		return 0
	case []int8:
		return float64(v[i])
	case []int16:
		return float64(v[i])
	case []int32:
		return float64(v[i])
	case []int64:
		return float64(v[i])
	case []uint8:
		return float64(v[i])
	case []uint16:
		return float64(v[i])
	case []uint32:
		return float64(v[i])
	case []uint64:
		return float64(v[i])
	case []float16.Float16:
		return float64(v[i].Float32())
	case []float32:
		return float64(v[i])
	case []float64:
		return v[i]
	}
	panic("tensor: buffer without storage")
}

// Int returns element i converted to int64. Floats truncate toward zero.
func (b *Buffer) Int(i int) int64 {
	switch v := b.data.(type) {
	case []bool:
		if v[i] {
			return 1
		}
		return 0
	case []int8:
		return int64(v[i])
	case []int16:
		return int64(v[i])
	case []int32:
		return int64(v[i])
	case []int64:
		return v[i]
	case []uint8:
		return int64(v[i])
	case []uint16:
		return int64(v[i])
	case []uint32:
		return int64(v[i])
	case []uint64:
		return int64(v[i]) //nolint:gosec // G115: wraps like a C cast.
	default:
		return int64(b.Float(i))
	}
}

// Uint returns element i converted to uint64. Negative values wrap.
func (b *Buffer) Uint(i int) uint64 {
	switch v := b.data.(type) {
	case []uint8:
		return uint64(v[i])
	case []uint16:
		return uint64(v[i])
	case []uint32:
		return uint64(v[i])
	case []uint64:
		return v[i]
	case []float16.Float16, []float32, []float64:
		return floatToUint(b.Float(i))
	default:
		return uint64(b.Int(i)) //nolint:gosec // G115: wraps like a C cast.
	}
}

// Bool returns whether element i is nonzero.
func (b *Buffer) Bool(i int) bool {
	switch v := b.data.(type) {
	case []bool:
		return v[i]
	case []float16.Float16, []float32, []float64:
		return b.Float(i) != 0
	case []uint64:
		return v[i] != 0
	default:
		return b.Int(i) != 0
	}
}

// Item returns element i as its native Go type.
func (b *Buffer) Item(i int) any {
	switch v := b.data.(type) {
	case []bool:
		return v[i]
	case []int8:
		return v[i]
	case []int16:
		return v[i]
	case []int32:
		return v[i]
	case []int64:
		return v[i]
	case []uint8:
		return v[i]
	case []uint16:
		return v[i]
	case []uint32:
		return v[i]
	case []uint64:
		return v[i]
	case []float16.Float16:
		return v[i]
	case []float32:
		return v[i]
	case []float64:
		return v[i]
	}
	return nil
}

// SetFloat stores v at i, converting to the buffer's dtype.
// Integer dtypes truncate toward zero and wrap on overflow.
func (b *Buffer) SetFloat(i int, v float64) {
	switch d := b.data.(type) {
	case []bool:
		d[i] = v != 0
	case []float16.Float16:
		d[i] = float16.Fromfloat32(float32(v))
	case []float32:
		d[i] = float32(v)
	case []float64:
		d[i] = v
	case []uint64:
		d[i] = floatToUint(v)
	default:
		b.SetInt(i, int64(v))
	}
}

// SetInt stores v at i, converting to the buffer's dtype.
//
//nolint:gosec // G115: narrowing conversions wrap like typed-array stores.
func (b *Buffer) SetInt(i int, v int64) {
	switch d := b.data.(type) {
	case []bool:
		d[i] = v != 0
	case []int8:
		d[i] = int8(v)
	case []int16:
		d[i] = int16(v)
	case []int32:
		d[i] = int32(v)
	case []int64:
		d[i] = v
	case []uint8:
		d[i] = uint8(v)
	case []uint16:
		d[i] = uint16(v)
	case []uint32:
		d[i] = uint32(v)
	case []uint64:
		d[i] = uint64(v)
	default:
		b.SetFloat(i, float64(v))
	}
}

// SetUint stores v at i, converting to the buffer's dtype.
//
//nolint:gosec // G115: narrowing conversions wrap like typed-array stores.
func (b *Buffer) SetUint(i int, v uint64) {
	switch d := b.data.(type) {
	case []uint8:
		d[i] = uint8(v)
	case []uint16:
		d[i] = uint16(v)
	case []uint32:
		d[i] = uint32(v)
	case []uint64:
		d[i] = v
	case []float16.Float16, []float32, []float64:
		b.SetFloat(i, float64(v))
	default:
		b.SetInt(i, int64(v))
	}
}

// SetBool stores v at i as 1/0 (or true/false).
func (b *Buffer) SetBool(i int, v bool) {
	if d, ok := b.data.([]bool); ok {
		d[i] = v
		return
	}
	if v {
		b.SetInt(i, 1)
	} else {
		b.SetInt(i, 0)
	}
}

// SetItem stores a Go scalar at i, converting to the buffer's dtype.
func (b *Buffer) SetItem(i int, value any) error {
	switch v := value.(type) {
	case bool:
		b.SetBool(i, v)
	case int:
		b.SetInt(i, int64(v))
	case int8:
		b.SetInt(i, int64(v))
	case int16:
		b.SetInt(i, int64(v))
	case int32:
		b.SetInt(i, int64(v))
	case int64:
		b.SetInt(i, v)
	case uint:
		b.SetUint(i, uint64(v))
	case uint8:
		b.SetUint(i, uint64(v))
	case uint16:
		b.SetUint(i, uint64(v))
	case uint32:
		b.SetUint(i, uint64(v))
	case uint64:
		b.SetUint(i, v)
	case float16.Float16:
		b.SetFloat(i, float64(v.Float32()))
	case float32:
		b.SetFloat(i, float64(v))
	case float64:
		b.SetFloat(i, v)
	default:
		return fmt.Errorf("%w: cannot store %T in %s array", ErrDType, value, b.dtype)
	}
	return nil
}

// Assign copies src[j] into b[i], converting through the narrowest scalar
// domain that holds both types exactly.
func (b *Buffer) Assign(i int, src *Buffer, j int) {
	switch b.dtype.Kind() {
	case KindFloat:
		b.SetFloat(i, src.Float(j))
	case KindBool:
		b.SetBool(i, src.Bool(j))
	default:
		switch src.dtype.Kind() {
		case KindFloat:
			b.SetFloat(i, src.Float(j))
		case KindUint:
			b.SetUint(i, src.Uint(j))
		default:
			b.SetInt(i, src.Int(j))
		}
	}
}

func floatToUint(v float64) uint64 {
	if v < 0 {
		return uint64(int64(v)) //nolint:gosec // G115: wraps like a C cast.
	}
	return uint64(v)
}
