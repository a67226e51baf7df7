package indexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/numpy/internal/tensor"
)

// grid returns 0..n-1 as Int64 reshaped to shape.
func grid(t *testing.T, shape tensor.Shape) *tensor.NdArray {
	t.Helper()
	a, err := tensor.Arange(0, float64(shape.NumElements()), 1, tensor.Int64)
	require.NoError(t, err)
	a, err = tensor.Reshape(a, shape)
	require.NoError(t, err)
	return a
}

func mustGet(t *testing.T, a *tensor.NdArray, index ...any) *tensor.NdArray {
	t.Helper()
	idx, err := Parse(index...)
	require.NoError(t, err)
	out, err := Get(a, idx...)
	require.NoError(t, err)
	return out
}

func TestGet_RowIsView(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})
	row := mustGet(t, a, 1, ":")
	assert.Equal(t, tensor.Shape{4}, row.Shape())
	assert.True(t, row.SharesMemory(a))
	assert.Equal(t, []float64{4, 5, 6, 7}, row.Float64s())
}

func TestRead_NegativeScalar(t *testing.T) {
	a, err := tensor.AsArray([]int{1, 2, 3, 4, 5, 6}, tensor.WithShape(tensor.Shape{2, 3}))
	require.NoError(t, err)
	v, err := Read(a, Int(-1), Int(-1))
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)

	v, err = Read(a, Str("0, 1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestGet_SelectEverythingSharesMemory(t *testing.T) {
	a := grid(t, tensor.Shape{2, 3, 4})
	exprs := [][]any{
		{},
		{":"},
		{":, :, :"},
		{"..."},
		{":", "..."},
		{"::1", "0:", ":4"},
		{All(), All(), All()},
	}
	for _, expr := range exprs {
		out := mustGet(t, a, expr...)
		assert.True(t, out.SharesMemory(a), "expr %v", expr)
		assert.Equal(t, a.Shape(), out.Shape(), "expr %v", expr)
		assert.Equal(t, a.Float64s(), out.Float64s(), "expr %v", expr)
	}
}

func TestGet_Slices(t *testing.T) {
	a := grid(t, tensor.Shape{10})
	tests := []struct {
		expr string
		want []float64
	}{
		{"2:5", []float64{2, 3, 4}},
		{"::3", []float64{0, 3, 6, 9}},
		{"::-1", []float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}},
		{"-3:", []float64{7, 8, 9}},
		{"8:2:-2", []float64{8, 6, 4}},
		{"5:2", []float64{}},
		{"2:5:-1", []float64{}},
		{"10:", []float64{}},
		{":-1", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tt := range tests {
		out := mustGet(t, a, tt.expr)
		assert.Equal(t, tt.want, out.Float64s(), tt.expr)
		assert.Equal(t, tensor.Shape{len(tt.want)}, out.Shape(), tt.expr)
		assert.True(t, out.SharesMemory(a), tt.expr)
	}
}

func TestGet_NegativeStepView(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})
	out := mustGet(t, a, "::-1, 1:3")
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []int{-4, 1}, out.Strides())
	assert.Equal(t, 9, out.Offset())
	assert.Equal(t, []float64{9, 10, 5, 6, 1, 2}, out.Float64s())
}

func TestGet_EllipsisAndNewAxis(t *testing.T) {
	a := grid(t, tensor.Shape{2, 3, 4})

	out := mustGet(t, a, "...", 1)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float64{1, 5, 9, 13, 17, 21}, out.Float64s())

	out = mustGet(t, a, 0, "...", 2)
	assert.Equal(t, tensor.Shape{3}, out.Shape())
	assert.Equal(t, []float64{2, 6, 10}, out.Float64s())

	out = mustGet(t, a, nil, 1)
	assert.Equal(t, tensor.Shape{1, 3, 4}, out.Shape())
	assert.True(t, out.SharesMemory(a))

	out = mustGet(t, a, ":", NewAxis{}, "...", "newaxis")
	assert.Equal(t, tensor.Shape{2, 1, 3, 4, 1}, out.Shape())
	assert.Equal(t, a.Float64s(), out.Float64s())
}

func TestGet_Errors(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})
	tests := []struct {
		name  string
		index []any
		err   error
		msg   string
	}{
		{"bad token", []any{"1:2:3:4"}, tensor.ErrSyntax, "1:2:3:4"},
		{"word", []any{"abc"}, tensor.ErrSyntax, "abc"},
		{"two ellipses", []any{"...", "..."}, tensor.ErrSyntax, "ellipsis"},
		{"too many", []any{0, 0, 0}, tensor.ErrSyntax, "too many indices"},
		{"int bound", []any{3}, tensor.ErrBounds, "index 3"},
		{"negative bound", []any{0, -5}, tensor.ErrBounds, "axis 1"},
		{"slice start", []any{"5:"}, tensor.ErrBounds, "slice start 5"},
		{"slice stop", []any{":, :7"}, tensor.ErrBounds, "slice stop 7"},
		{"zero step", []any{"::0"}, tensor.ErrSyntax, "zero"},
		{"array bound", []any{[]int{0, 3}}, tensor.ErrBounds, "index 3"},
		{"float array", []any{[]float64{0.5}}, tensor.ErrDType, "float64"},
		{"mask shape", []any{[]bool{true, false}}, tensor.ErrBounds, "boolean index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Parse(tt.index...)
			require.NoError(t, err)
			_, err = Get(a, idx...)
			require.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := Parse(struct{}{})
	require.ErrorIs(t, err, tensor.ErrSyntax)
}

func TestGet_IntegerArrays(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})

	out := mustGet(t, a, []int{2, 0, -1})
	assert.Equal(t, tensor.Shape{3, 4}, out.Shape())
	assert.False(t, out.SharesMemory(a))
	assert.Equal(t, []float64{8, 9, 10, 11, 0, 1, 2, 3, 8, 9, 10, 11}, out.Float64s())

	// Paired arrays pick individual elements.
	out = mustGet(t, a, []int{0, 1, 2}, []int{3, 2, 1})
	assert.Equal(t, tensor.Shape{3}, out.Shape())
	assert.Equal(t, []float64{3, 6, 9}, out.Float64s())

	// Arrays broadcast against each other.
	out = mustGet(t, a, [][]int{{0}, {2}}, []int{0, 3})
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{0, 3, 8, 11}, out.Float64s())

	_, err := Get(a, Array{mustArray(t, []int{0, 1})}, Array{mustArray(t, []int{0, 1, 2})})
	require.ErrorIs(t, err, tensor.ErrShape)
}

func TestGet_AdvancedPlacement(t *testing.T) {
	a := grid(t, tensor.Shape{2, 3, 4})

	// Adjacent operands keep their place.
	out := mustGet(t, a, ":", []int{0, 2}, []int{1, 3})
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{1, 11, 13, 23}, out.Float64s())

	out = mustGet(t, a, ":", []int{0, 2})
	assert.Equal(t, tensor.Shape{2, 2, 4}, out.Shape())
	assert.Equal(t, []float64{0, 1, 2, 3, 8, 9, 10, 11, 12, 13, 14, 15, 20, 21, 22, 23}, out.Float64s())

	// An integer counts as an adjacent operand.
	out = mustGet(t, a, ":", 1, []int{0, 3})
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{4, 7, 16, 19}, out.Float64s())

	// Separated operands move to the front.
	out = mustGet(t, a, []int{0, 1}, ":", []int{1, 2})
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float64{1, 5, 9, 14, 18, 22}, out.Float64s())

	out = mustGet(t, a, 1, ":", []int{0, 1, 3})
	assert.Equal(t, tensor.Shape{3, 3}, out.Shape())
	assert.Equal(t, []float64{12, 16, 20, 13, 17, 21, 15, 19, 23}, out.Float64s())
}

func TestGet_BooleanMask(t *testing.T) {
	a := grid(t, tensor.Shape{2, 3})

	out := mustGet(t, a, []bool{false, true})
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())
	assert.Equal(t, []float64{3, 4, 5}, out.Float64s())

	out = mustGet(t, a, [][]bool{{true, false, true}, {false, true, false}})
	assert.Equal(t, tensor.Shape{3}, out.Shape())
	assert.Equal(t, []float64{0, 2, 4}, out.Float64s())

	out = mustGet(t, a, ":", []bool{true, false, true})
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{0, 2, 3, 5}, out.Float64s())
}

func TestGet_EmptyIndexArray(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})
	out := mustGet(t, a, []int{})
	assert.Equal(t, tensor.Shape{0, 4}, out.Shape())
}

func TestSet_SingleElement(t *testing.T) {
	a := grid(t, tensor.Shape{2, 3})
	require.NoError(t, Set(a, 100, Int(-1), Int(0)))
	v, err := a.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(100), v)

	err = Set(a, []int{1, 2}, Int(0), Int(0))
	require.ErrorIs(t, err, tensor.ErrShape)
}

func TestSet_BasicBroadcast(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})
	require.NoError(t, Set(a, []int{-1, -2, -3, -4}, Str("1:")))
	assert.Equal(t, []float64{0, 1, 2, 3, -1, -2, -3, -4, -1, -2, -3, -4}, a.Float64s())

	require.NoError(t, Set(a, 7.9, Str(":, ::2")))
	assert.Equal(t, []float64{7, 1, 7, 3, 7, -2, 7, -4, 7, -2, 7, -4}, a.Float64s())

	err := Set(a, []int{1, 2, 3}, Str("0"))
	require.ErrorIs(t, err, tensor.ErrShape)
}

func TestSet_ValueWithLeadingUnitAxes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		index []Index
		want  []float64
	}{
		{"row", [][]int{{9, 9, 9, 9}}, []Index{Int(0)}, []float64{9, 9, 9, 9, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"column", [][]int{{-1, -2, -3}}, []Index{All(), Int(1)}, []float64{0, -1, 2, 3, 4, -2, 6, 7, 8, -3, 10, 11}},
		{"advanced", [][]int{{5, 6}}, []Index{Array{mustArray(t, []int{0, 2})}, Int(3)}, []float64{0, 1, 2, 5, 4, 5, 6, 7, 8, 9, 10, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := grid(t, tensor.Shape{3, 4})
			require.NoError(t, Set(a, tt.value, tt.index...))
			assert.Equal(t, tt.want, a.Float64s())
		})
	}

	a := grid(t, tensor.Shape{3, 4})
	err := Set(a, [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}}, Int(0))
	require.ErrorIs(t, err, tensor.ErrShape)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, a.Float64s())
}

func TestSet_OverlappingSource(t *testing.T) {
	a := grid(t, tensor.Shape{6})
	rev := mustGet(t, a, "::-1")
	require.NoError(t, Set(a, rev, All()))
	assert.Equal(t, []float64{5, 4, 3, 2, 1, 0}, a.Float64s())
}

func TestSet_Advanced(t *testing.T) {
	a := grid(t, tensor.Shape{3, 4})
	idx, err := Parse([]int{0, 2}, []int{1, -1})
	require.NoError(t, err)
	require.NoError(t, Set(a, []int{-1, -2}, idx...))
	assert.Equal(t, []float64{0, -1, 2, 3, 4, 5, 6, 7, 8, 9, 10, -2}, a.Float64s())

	mask, err := Parse([][]bool{
		{true, false, false, false},
		{false, false, false, false},
		{false, false, false, true},
	})
	require.NoError(t, err)
	require.NoError(t, Set(a, 42, mask...))
	assert.Equal(t, []float64{42, -1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 42}, a.Float64s())
}

func TestSet_ValidatesBeforeWriting(t *testing.T) {
	a := grid(t, tensor.Shape{4})
	idx, err := Parse([]int{0, 1, 9})
	require.NoError(t, err)
	err = Set(a, 0, idx...)
	require.ErrorIs(t, err, tensor.ErrBounds)
	assert.Equal(t, []float64{0, 1, 2, 3}, a.Float64s())
}

func mustArray(t *testing.T, data any) *tensor.NdArray {
	t.Helper()
	a, err := tensor.AsArray(data)
	require.NoError(t, err)
	return a
}
