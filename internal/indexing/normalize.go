package indexing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/born-ml/numpy/internal/tensor"
)

var (
	intPattern   = regexp.MustCompile(`^[+-]?\d+$`)
	slicePattern = regexp.MustCompile(`^([+-]?\d+)?:([+-]?\d+)?(:([+-]?\d+)?)?$`)
)

// normalize runs the index pipeline against a and returns the array with
// new axes inserted together with an expression holding exactly one Int,
// Slice or Array per axis of that array.
func normalize(a *tensor.NdArray, index []Index) (*tensor.NdArray, []Index, error) {
	index = splitCommas(index)
	index = canonicalize(index)
	index, err := parseStrings(index)
	if err != nil {
		return nil, nil, err
	}
	index, err = expandEllipsis(index, a.Ndim())
	if err != nil {
		return nil, nil, err
	}
	index, err = padTail(index, a.Ndim())
	if err != nil {
		return nil, nil, err
	}
	index, err = normalizeBounds(index, a.Shape())
	if err != nil {
		return nil, nil, err
	}
	return expandNewAxes(a, index)
}

// splitCommas splits composite string tokens such as "1, :".
func splitCommas(index []Index) []Index {
	out := make([]Index, 0, len(index))
	for _, idx := range index {
		s, ok := idx.(Str)
		if !ok || !strings.Contains(string(s), ",") {
			out = append(out, idx)
			continue
		}
		for _, part := range strings.Split(string(s), ",") {
			out = append(out, Str(part))
		}
	}
	return out
}

// canonicalize turns marker tokens into NewAxis and Ellipsis.
func canonicalize(index []Index) []Index {
	out := make([]Index, len(index))
	for i, idx := range index {
		out[i] = idx
		s, ok := idx.(Str)
		if !ok {
			continue
		}
		switch strings.TrimSpace(string(s)) {
		case "...":
			out[i] = Ellipsis{}
		case "newaxis", "None", "null":
			out[i] = NewAxis{}
		}
	}
	return out
}

// parseStrings converts the remaining string tokens into Int and Slice.
func parseStrings(index []Index) ([]Index, error) {
	out := make([]Index, len(index))
	for i, idx := range index {
		out[i] = idx
		s, ok := idx.(Str)
		if !ok {
			continue
		}
		parsed, err := parseToken(strings.TrimSpace(string(s)))
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}

func parseToken(tok string) (Index, error) {
	if intPattern.MatchString(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid index %q: %w", tensor.ErrSyntax, tok, err)
		}
		return Int(n), nil
	}
	m := slicePattern.FindStringSubmatch(tok)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid index %q", tensor.ErrSyntax, tok)
	}
	var s Slice
	var err error
	if m[1] != "" {
		s.HasStart = true
		if s.Start, err = strconv.Atoi(m[1]); err != nil {
			return nil, fmt.Errorf("%w: invalid slice start in %q: %w", tensor.ErrSyntax, tok, err)
		}
	}
	if m[2] != "" {
		s.HasStop = true
		if s.Stop, err = strconv.Atoi(m[2]); err != nil {
			return nil, fmt.Errorf("%w: invalid slice stop in %q: %w", tensor.ErrSyntax, tok, err)
		}
	}
	if m[4] != "" {
		s.HasStep = true
		if s.Step, err = strconv.Atoi(m[4]); err != nil {
			return nil, fmt.Errorf("%w: invalid slice step in %q: %w", tensor.ErrSyntax, tok, err)
		}
	}
	return s, nil
}

// consumed returns how many array axes an index element addresses.
func consumed(idx Index) int {
	switch x := idx.(type) {
	case NewAxis, Ellipsis:
		return 0
	case Array:
		if x.DType() == tensor.Bool {
			return x.Ndim()
		}
	}
	return 1
}

func countAxes(index []Index) int {
	n := 0
	for _, idx := range index {
		n += consumed(idx)
	}
	return n
}

// expandEllipsis replaces the ellipsis with the full slices that make the
// expression address every axis.
func expandEllipsis(index []Index, ndim int) ([]Index, error) {
	pos := -1
	for i, idx := range index {
		if _, ok := idx.(Ellipsis); ok {
			if pos >= 0 {
				return nil, fmt.Errorf("%w: an index can only have a single ellipsis ('...')", tensor.ErrSyntax)
			}
			pos = i
		}
	}
	if pos < 0 {
		return index, nil
	}
	fill := max(ndim-countAxes(index), 0)
	out := make([]Index, 0, len(index)-1+fill)
	out = append(out, index[:pos]...)
	for range fill {
		out = append(out, All())
	}
	return append(out, index[pos+1:]...), nil
}

// padTail appends full slices for axes the expression leaves out.
func padTail(index []Index, ndim int) ([]Index, error) {
	n := countAxes(index)
	if n > ndim {
		return nil, fmt.Errorf("%w: too many indices for array: array is %d-dimensional, but %d were indexed",
			tensor.ErrSyntax, ndim, n)
	}
	out := append([]Index(nil), index...)
	for range ndim - n {
		out = append(out, All())
	}
	return out, nil
}

// normalizeBounds wraps negative positions, fills slice defaults, validates
// every bound, and replaces boolean masks with the coordinate arrays of
// their true elements.
func normalizeBounds(index []Index, shape tensor.Shape) ([]Index, error) {
	out := make([]Index, 0, len(index))
	axis := 0
	for _, idx := range index {
		switch x := idx.(type) {
		case NewAxis:
			out = append(out, x)
			continue
		case Int:
			n, err := normalizeInt(int(x), axis, shape)
			if err != nil {
				return nil, err
			}
			out = append(out, Int(n))
		case Slice:
			s, err := normalizeSlice(x, axis, shape)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		case Array:
			arrays, err := normalizeArray(x, axis, shape)
			if err != nil {
				return nil, err
			}
			out = append(out, arrays...)
			axis += len(arrays)
			continue
		default:
			return nil, fmt.Errorf("%w: unexpected index element %v", tensor.ErrSyntax, idx)
		}
		axis++
	}
	return out, nil
}

func normalizeInt(n, axis int, shape tensor.Shape) (int, error) {
	dim := shape[axis]
	if n < -dim || n >= dim {
		return 0, fmt.Errorf("%w: index %d is out of bounds for axis %d with size %d (shape %v)",
			tensor.ErrBounds, n, axis, dim, shape)
	}
	if n < 0 {
		n += dim
	}
	return n, nil
}

func normalizeSlice(s Slice, axis int, shape tensor.Shape) (Slice, error) {
	dim := shape[axis]
	out := Slice{Step: 1, HasStart: true, HasStop: true, HasStep: true}
	if s.HasStep {
		if s.Step == 0 {
			return Slice{}, fmt.Errorf("%w: slice step cannot be zero in %s", tensor.ErrSyntax, s)
		}
		out.Step = s.Step
	}
	forward := out.Step > 0

	switch {
	case !s.HasStart && forward:
		out.Start = 0
	case !s.HasStart:
		out.Start = dim - 1
	default:
		hi := dim
		if !forward {
			hi = dim - 1
		}
		if s.Start < -dim || s.Start > hi {
			return Slice{}, fmt.Errorf("%w: slice start %d is out of bounds for axis %d with size %d (shape %v)",
				tensor.ErrBounds, s.Start, axis, dim, shape)
		}
		out.Start = s.Start
		if out.Start < 0 {
			out.Start += dim
		}
	}

	switch {
	case !s.HasStop && forward:
		out.Stop = dim
	case !s.HasStop:
		out.Stop = -1 // one before the first element
	default:
		if s.Stop < -dim || s.Stop > dim {
			return Slice{}, fmt.Errorf("%w: slice stop %d is out of bounds for axis %d with size %d (shape %v)",
				tensor.ErrBounds, s.Stop, axis, dim, shape)
		}
		out.Stop = s.Stop
		if out.Stop < 0 {
			out.Stop += dim
		}
	}
	return out, nil
}

// normalizeArray validates an index array against the axes it addresses and
// returns wrapped Int64 coordinate arrays, one per axis.
func normalizeArray(x Array, axis int, shape tensor.Shape) ([]Index, error) {
	switch x.DType().Kind() {
	case tensor.KindBool:
		return maskToCoords(x, axis, shape)
	case tensor.KindInt, tensor.KindUint:
	default:
		return nil, fmt.Errorf("%w: arrays used as indices must be of integer or boolean type, got %s",
			tensor.ErrDType, x.DType())
	}
	dim := shape[axis]
	coords, err := tensor.Zeros(x.Shape(), tensor.Int64)
	if err != nil {
		return nil, err
	}
	buf := x.Buffer()
	i := 0
	for ptrs := range tensor.Positions(x.Shape(), x.NdArray) {
		v := buf.Int(ptrs[0])
		if x.DType().Kind() == tensor.KindUint && buf.Uint(ptrs[0]) > uint64(dim) {
			v = int64(dim) // out of range either way
		}
		if v < -int64(dim) || v >= int64(dim) {
			return nil, fmt.Errorf("%w: index %d is out of bounds for axis %d with size %d (shape %v)",
				tensor.ErrBounds, v, axis, dim, shape)
		}
		if v < 0 {
			v += int64(dim)
		}
		coords.Buffer().SetInt(i, v)
		i++
	}
	return []Index{Array{coords}}, nil
}

// maskToCoords converts a boolean mask covering axes [axis, axis+ndim) into
// the coordinate arrays of its true elements.
func maskToCoords(mask Array, axis int, shape tensor.Shape) ([]Index, error) {
	k := mask.Ndim()
	if k == 0 {
		return nil, fmt.Errorf("%w: 0-dimensional boolean index is not supported", tensor.ErrSyntax)
	}
	for d, dim := range mask.Shape() {
		if dim != shape[axis+d] {
			return nil, fmt.Errorf("%w: boolean index did not match indexed array along axis %d; size is %d but corresponding boolean size is %d (shape %v)",
				tensor.ErrBounds, axis+d, shape[axis+d], dim, shape)
		}
	}
	var hits [][]int
	buf := mask.Buffer()
	for coord := range mask.Shape().Coords() {
		ptr, err := mask.Pointer(coord...)
		if err != nil {
			return nil, err
		}
		if buf.Bool(ptr) {
			hits = append(hits, append([]int(nil), coord...))
		}
	}
	out := make([]Index, k)
	for d := range k {
		coords, err := tensor.Zeros(tensor.Shape{len(hits)}, tensor.Int64)
		if err != nil {
			return nil, err
		}
		for i, hit := range hits {
			coords.Buffer().SetInt(i, int64(hit[d]))
		}
		out[d] = Array{coords}
	}
	return out, nil
}

// expandNewAxes inserts a length-one axis into a view of a for every NewAxis
// and replaces each marker with the slice 0:1:1.
func expandNewAxes(a *tensor.NdArray, index []Index) (*tensor.NdArray, []Index, error) {
	out := make([]Index, len(index))
	for i, idx := range index {
		out[i] = idx
		if _, ok := idx.(NewAxis); !ok {
			continue
		}
		var err error
		if a, err = tensor.ExpandDims(a, i); err != nil {
			return nil, nil, err
		}
		out[i] = RangeStep(0, 1, 1)
	}
	return a, out, nil
}
