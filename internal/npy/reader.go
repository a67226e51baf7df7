package npy

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/x448/float16"

	"github.com/born-ml/numpy/internal/tensor"
)

// ReadOptions configures Read.
type ReadOptions struct {
	MaxHeaderLen int // Largest accepted header; 0 means DefaultMaxHeaderLen.
}

// Parse decodes a complete .npy file held in memory.
func Parse(data []byte) (*tensor.NdArray, error) {
	return Read(bytes.NewReader(data), ReadOptions{})
}

// Load reads the .npy file at path.
func Load(path string) (*tensor.NdArray, error) {
	//nolint:gosec // G304: loading a caller-named file is the purpose of Load.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	a, err := Read(bufio.NewReader(f), ReadOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Read decodes one array from r. It consumes exactly the header and the
// array data.
func Read(r io.Reader, opts ReadOptions) (*tensor.NdArray, error) {
	h, _, err := ReadHeader(r, opts)
	if err != nil {
		return nil, err
	}
	order, dtype, err := ParseDescr(h.Descr)
	if err != nil {
		return nil, err
	}
	shape := tensor.Shape(h.Shape)
	n, err := tensor.SizeOf(shape)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if n > math.MaxInt/dtype.Size() {
		return nil, fmt.Errorf("%w: array data for shape %v and dtype %s exceeds the addressable size",
			ErrFormat, shape, dtype)
	}
	// Grow with the data actually present, not the declared size.
	nbytes := n * dtype.Size()
	raw, err := io.ReadAll(io.LimitReader(r, int64(nbytes)))
	if err == nil && len(raw) < nbytes {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: array data for shape %v and dtype %s is truncated: %w",
			ErrFormat, shape, dtype, err)
	}
	if order == binary.BigEndian && dtype.Size() > 1 {
		slog.Debug("npy: converting big-endian data", "descr", h.Descr, "shape", h.Shape)
	}
	buf, err := decode(raw, n, dtype, order)
	if err != nil {
		return nil, err
	}
	return tensor.New(buf, shape)
}

// ReadHeader reads the magic string, version and header dict from r.
func ReadHeader(r io.Reader, opts ReadOptions) (Header, Version, error) {
	maxLen := opts.MaxHeaderLen
	if maxLen <= 0 {
		maxLen = DefaultMaxHeaderLen
	}

	prefix := make([]byte, len(Magic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return Header{}, Version{}, fmt.Errorf("%w: failed to read magic string: %w", ErrFormat, err)
	}
	if string(prefix[:len(Magic)]) != Magic {
		return Header{}, Version{}, fmt.Errorf("%w: got %q", ErrInvalidMagic, prefix[:len(Magic)])
	}
	v := Version{Major: prefix[len(Magic)], Minor: prefix[len(Magic)+1]}
	width, err := v.lenBytes()
	if err != nil {
		return Header{}, v, err
	}

	lenField := make([]byte, width)
	if _, err := io.ReadFull(r, lenField); err != nil {
		return Header{}, v, fmt.Errorf("%w: failed to read header length: %w", ErrFormat, err)
	}
	var hlen int
	if width == 2 {
		hlen = int(binary.LittleEndian.Uint16(lenField))
	} else {
		hlen = int(binary.LittleEndian.Uint32(lenField))
	}
	if hlen > maxLen {
		return Header{}, v, fmt.Errorf("%w: %d bytes, limit %d", ErrHeaderTooLarge, hlen, maxLen)
	}

	text := make([]byte, hlen)
	if _, err := io.ReadFull(r, text); err != nil {
		return Header{}, v, fmt.Errorf("%w: failed to read header: %w", ErrFormat, err)
	}
	if hlen == 0 || text[hlen-1] != '\n' {
		last := -1
		if hlen > 0 {
			last = int(text[hlen-1])
		}
		return Header{}, v, fmt.Errorf("%w: header must end with LF (10), found %d", ErrFormat, last)
	}
	h, err := ParseHeader(string(text[:hlen-1]))
	if err != nil {
		return Header{}, v, err
	}
	if h.FortranOrder {
		return Header{}, v, ErrFortranOrder
	}
	return h, v, nil
}

// decode converts n raw elements into a typed buffer.
func decode(raw []byte, n int, dtype tensor.DataType, order binary.ByteOrder) (*tensor.Buffer, error) {
	switch dtype {
	case tensor.Bool:
		out := make([]bool, n)
		for i := range out {
			out[i] = raw[i] != 0
		}
		return tensor.WrapSlice(out), nil
	case tensor.Int8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(raw[i]) //nolint:gosec // G115: reinterpreting the byte.
		}
		return tensor.WrapSlice(out), nil
	case tensor.Uint8:
		return tensor.WrapSlice(append([]uint8(nil), raw...)), nil
	case tensor.Int16:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(order.Uint16(raw[2*i:])) //nolint:gosec // G115: reinterpreting the bits.
		}
		return tensor.WrapSlice(out), nil
	case tensor.Uint16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = order.Uint16(raw[2*i:])
		}
		return tensor.WrapSlice(out), nil
	case tensor.Int32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(order.Uint32(raw[4*i:])) //nolint:gosec // G115: reinterpreting the bits.
		}
		return tensor.WrapSlice(out), nil
	case tensor.Uint32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = order.Uint32(raw[4*i:])
		}
		return tensor.WrapSlice(out), nil
	case tensor.Int64:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(order.Uint64(raw[8*i:])) //nolint:gosec // G115: reinterpreting the bits.
		}
		return tensor.WrapSlice(out), nil
	case tensor.Uint64:
		out := make([]uint64, n)
		for i := range out {
			out[i] = order.Uint64(raw[8*i:])
		}
		return tensor.WrapSlice(out), nil
	case tensor.Float16:
		out := make([]float16.Float16, n)
		for i := range out {
			out[i] = float16.Frombits(order.Uint16(raw[2*i:]))
		}
		return tensor.WrapSlice(out), nil
	case tensor.Float32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(raw[4*i:]))
		}
		return tensor.WrapSlice(out), nil
	case tensor.Float64:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(raw[8*i:]))
		}
		return tensor.WrapSlice(out), nil
	default:
		return nil, fmt.Errorf("%w: cannot decode %s", tensor.ErrDType, dtype)
	}
}
