package npy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/x448/float16"

	"github.com/born-ml/numpy/internal/tensor"
)

// Save writes a to a .npy file at path.
func Save(path string, a *tensor.NdArray) error {
	//nolint:gosec // G304: saving to a caller-named file is the purpose of Save.
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Write(w, a); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush file: %w", err)
	}
	return f.Close()
}

// Write encodes a in .npy format. Version 1.0 is used unless the header
// needs the wider length field of version 2.0. Views are written in C order.
func Write(w io.Writer, a *tensor.NdArray) error {
	descr, err := Descr(a.DType())
	if err != nil {
		return err
	}
	h := Header{Descr: descr, Shape: a.Shape()}
	if _, err := w.Write(encodeHeader(h)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(encode(a)); err != nil {
		return fmt.Errorf("failed to write array data: %w", err)
	}
	return nil
}

// encodeHeader returns the magic string, version, length and padded header.
func encodeHeader(h Header) []byte {
	text := h.String()
	v := Version{Major: 1}
	prefix := len(Magic) + 2 + 2
	if len(text)+1+prefix+HeaderAlignment > math.MaxUint16 {
		v.Major = 2
		prefix += 2
	}
	pad := (HeaderAlignment - (prefix+len(text)+1)%HeaderAlignment) % HeaderAlignment
	text += strings.Repeat(" ", pad) + "\n"

	out := make([]byte, 0, prefix+len(text))
	out = append(out, Magic...)
	out = append(out, v.Major, v.Minor)
	if v.Major == 1 {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(text))) //nolint:gosec // G115: bounded above.
	} else {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(text))) //nolint:gosec // G115: bounded by memory.
	}
	return append(out, text...)
}

// encode returns the elements of a in C order as little-endian bytes.
func encode(a *tensor.NdArray) []byte {
	size := a.DType().Size()
	out := make([]byte, 0, a.Size()*size)
	b := a.Buffer()
	le := binary.LittleEndian
	for p := range tensor.Positions(a.Shape(), a) {
		i := p[0]
		switch a.DType() {
		case tensor.Bool:
			if b.Bool(i) {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		case tensor.Int8, tensor.Int16, tensor.Int32, tensor.Int64:
			out = appendUint(out, uint64(b.Int(i)), size) //nolint:gosec // G115: two's complement bits.
		case tensor.Uint8, tensor.Uint16, tensor.Uint32, tensor.Uint64:
			out = appendUint(out, b.Uint(i), size)
		case tensor.Float16:
			out = le.AppendUint16(out, float16.Fromfloat32(float32(b.Float(i))).Bits())
		case tensor.Float32:
			out = le.AppendUint32(out, math.Float32bits(float32(b.Float(i))))
		case tensor.Float64:
			out = le.AppendUint64(out, math.Float64bits(b.Float(i)))
		}
	}
	return out
}

//nolint:gosec // G115: truncation keeps the low bytes on purpose.
func appendUint(out []byte, v uint64, size int) []byte {
	le := binary.LittleEndian
	switch size {
	case 1:
		return append(out, byte(v))
	case 2:
		return le.AppendUint16(out, uint16(v))
	case 4:
		return le.AppendUint32(out, uint32(v))
	default:
		return le.AppendUint64(out, v)
	}
}
