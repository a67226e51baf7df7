package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// NdArray is a strided N-dimensional view over a Buffer.
//
// Element idx (0 <= idx[i] < shape[i]) lives at buffer position
// offset + Dot(idx, stride). Several arrays may share one buffer; see
// SharesMemory.
type NdArray struct {
	buffer *Buffer
	shape  Shape
	stride []int // Element strides, may be negative or zero
	offset int   // Buffer position of the logical origin
}

// View creates an array over buf without copying.
//
// A nil stride means row-major strides for shape. When validate is true the
// buffer length must equal the number of elements of shape; views built by
// slicing or broadcasting pass false. In every case the extent of the view is
// checked against the buffer so that no valid coordinate maps outside it.
func View(buf *Buffer, shape Shape, offset int, stride []int, validate bool) (*NdArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if stride == nil {
		stride = shape.ComputeStrides()
	}
	if len(stride) != len(shape) {
		return nil, fmt.Errorf("%w: stride %v does not match shape %v", ErrShape, stride, shape)
	}
	size := shape.NumElements()
	if validate && size != buf.Len() {
		return nil, fmt.Errorf("%w: invalid shape %v for buffer of %d elements", ErrShape, shape, buf.Len())
	}
	if size > 0 {
		lo, hi := offset, offset
		for i, dim := range shape {
			ext := (dim - 1) * stride[i]
			if ext > 0 {
				hi += ext
			} else {
				lo += ext
			}
		}
		if lo < 0 || hi >= buf.Len() {
			return nil, fmt.Errorf("%w: view with shape %v, offset %d and stride %v exceeds buffer of %d elements",
				ErrShape, shape, offset, stride, buf.Len())
		}
	}
	return makeView(buf, shape.Clone(), offset, append([]int(nil), stride...)), nil
}

// New creates a row-major array over buf. The buffer length must match shape.
func New(buf *Buffer, shape Shape) (*NdArray, error) {
	return View(buf, shape, 0, nil, true)
}

// makeView builds an array from already validated, owned parts.
func makeView(buf *Buffer, shape Shape, offset int, stride []int) *NdArray {
	return &NdArray{buffer: buf, shape: shape, stride: stride, offset: offset}
}

// allocate creates a fresh zero-filled row-major array.
func allocate(shape Shape, dtype DataType) (*NdArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	buf, err := NewBuffer(dtype, shape.NumElements())
	if err != nil {
		return nil, err
	}
	return makeView(buf, shape.Clone(), 0, shape.ComputeStrides()), nil
}

// Shape returns the array's shape. Callers must not modify it.
func (a *NdArray) Shape() Shape {
	return a.shape
}

// Strides returns the per-axis element strides. Callers must not modify them.
func (a *NdArray) Strides() []int {
	return a.stride
}

// Offset returns the buffer position of the first element.
func (a *NdArray) Offset() int {
	return a.offset
}

// DType returns the element type.
func (a *NdArray) DType() DataType {
	return a.buffer.dtype
}

// Buffer returns the underlying storage.
func (a *NdArray) Buffer() *Buffer {
	return a.buffer
}

// Ndim returns the number of dimensions.
func (a *NdArray) Ndim() int {
	return len(a.shape)
}

// Size returns the number of elements.
func (a *NdArray) Size() int {
	return a.shape.NumElements()
}

// SharesMemory reports whether a and other are backed by the same buffer.
func (a *NdArray) SharesMemory(other *NdArray) bool {
	return a.buffer == other.buffer
}

// IsContiguous reports whether the strides are the row-major strides of the shape.
func (a *NdArray) IsContiguous() bool {
	def := a.shape.ComputeStrides()
	for i := range def {
		if def[i] != a.stride[i] {
			return false
		}
	}
	return true
}

// Contiguous returns a if it is already contiguous, otherwise a row-major copy.
func (a *NdArray) Contiguous() *NdArray {
	if a.IsContiguous() {
		return a
	}
	return a.Copy()
}

// Copy returns a row-major deep copy.
func (a *NdArray) Copy() *NdArray {
	out, err := allocate(a.shape, a.DType())
	if err != nil {
		panic(err) // a already holds a valid shape and dtype
	}
	i := 0
	for ptrs := range Positions(a.shape, a) {
		out.buffer.Assign(i, a.buffer, ptrs[0])
		i++
	}
	return out
}

// Pointer returns the buffer position of coord. Negative components count
// from the end of their axis.
func (a *NdArray) Pointer(coord ...int) (int, error) {
	if len(coord) != len(a.shape) {
		return 0, fmt.Errorf("%w: expected %d indices for array of shape %v, got %d",
			ErrBounds, len(a.shape), a.shape, len(coord))
	}
	ptr := a.offset
	for axis, idx := range coord {
		dim := a.shape[axis]
		if idx < -dim || idx >= dim {
			return 0, fmt.Errorf("%w: index %d is out of bounds for axis %d with size %d (shape %v)",
				ErrBounds, idx, axis, dim, a.shape)
		}
		if idx < 0 {
			idx += dim
		}
		ptr += idx * a.stride[axis]
	}
	return ptr, nil
}

// At returns the element at coord as its native Go type.
func (a *NdArray) At(coord ...int) (any, error) {
	ptr, err := a.Pointer(coord...)
	if err != nil {
		return nil, err
	}
	return a.buffer.Item(ptr), nil
}

// Set stores value at coord, converting it to the array's dtype.
func (a *NdArray) Set(value any, coord ...int) error {
	ptr, err := a.Pointer(coord...)
	if err != nil {
		return err
	}
	return a.buffer.SetItem(ptr, value)
}

// Item returns the only element of a single-element array.
func (a *NdArray) Item() (any, error) {
	if a.Size() != 1 {
		return nil, fmt.Errorf("%w: only single-element arrays convert to scalars, got shape %v", ErrShape, a.shape)
	}
	for ptrs := range Positions(a.shape, a) {
		return a.buffer.Item(ptrs[0]), nil
	}
	return nil, nil
}

// Float64s returns the elements in row-major order converted to float64.
func (a *NdArray) Float64s() []float64 {
	out := make([]float64, 0, a.Size())
	for ptrs := range Positions(a.shape, a) {
		out = append(out, a.buffer.Float(ptrs[0]))
	}
	return out
}

// Values returns the elements in row-major order as native Go values.
func (a *NdArray) Values() []any {
	out := make([]any, 0, a.Size())
	for ptrs := range Positions(a.shape, a) {
		out = append(out, a.buffer.Item(ptrs[0]))
	}
	return out
}

// ToDense returns a nested []any copy of the contents. A 0-d array returns
// its scalar.
func (a *NdArray) ToDense() any {
	values := a.Values()
	if len(a.shape) == 0 {
		return values[0]
	}
	return nest(values, a.shape)
}

func nest(values []any, shape Shape) []any {
	out := make([]any, shape[0])
	if len(shape) == 1 {
		copy(out, values)
		return out
	}
	step := shape[1:].NumElements()
	for i := range out {
		out[i] = nest(values[i*step:(i+1)*step], shape[1:])
	}
	return out
}

// Dumps returns the contents formatted as nested brackets.
func (a *NdArray) Dumps() string {
	return fmt.Sprint(a.ToDense())
}

// String returns a short description of the array.
func (a *NdArray) String() string {
	dims := make([]string, len(a.shape))
	for i, d := range a.shape {
		dims[i] = strconv.Itoa(d)
	}
	s := strings.Join(dims, ",")
	if len(a.shape) == 1 {
		s += ","
	}
	return fmt.Sprintf("array(shape=(%s), dtype=%s)", s, a.DType())
}
