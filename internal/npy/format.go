package npy

import (
	"encoding/binary"
	"fmt"

	"github.com/born-ml/numpy/internal/tensor"
)

// Format constants.
const (
	Magic           = "\x93NUMPY"
	HeaderAlignment = 64 // Data starts on a multiple of this offset.

	// DefaultMaxHeaderLen bounds the header accepted by Read.
	DefaultMaxHeaderLen = 10000
)

// Header is the decoded .npy header dict.
type Header struct {
	Descr        string `mapstructure:"descr"`
	FortranOrder bool   `mapstructure:"fortran_order"`
	Shape        []int  `mapstructure:"shape"`
}

// Version is a (major, minor) format version.
type Version struct {
	Major, Minor byte
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// lenBytes returns the width of the header length field.
func (v Version) lenBytes() (int, error) {
	switch v.Major {
	case 1:
		return 2, nil
	case 2, 3:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
}

// descrCodes are the type codes written for each dtype.
var descrCodes = map[tensor.DataType]string{
	tensor.Bool:    "b1",
	tensor.Int8:    "i1",
	tensor.Int16:   "i2",
	tensor.Int32:   "i4",
	tensor.Int64:   "i8",
	tensor.Uint8:   "u1",
	tensor.Uint16:  "u2",
	tensor.Uint32:  "u4",
	tensor.Uint64:  "u8",
	tensor.Float16: "f2",
	tensor.Float32: "f4",
	tensor.Float64: "f8",
}

// ParseDescr splits a descr string such as "<f8" into its byte order and
// data type. Single-byte types ignore the byte order.
func ParseDescr(descr string) (binary.ByteOrder, tensor.DataType, error) {
	if descr == "" {
		return nil, 0, fmt.Errorf("%w: empty descr", ErrFormat)
	}
	var order binary.ByteOrder = binary.LittleEndian
	code := descr
	switch descr[0] {
	case '<', '|', '=':
		code = descr[1:]
	case '>':
		order = binary.BigEndian
		code = descr[1:]
	}
	dt, err := tensor.ParseDType(code)
	if err != nil {
		return nil, 0, fmt.Errorf("descr %q: %w", descr, err)
	}
	if !dt.Supported() {
		return nil, 0, fmt.Errorf("%w: descr %q has no numeric storage", tensor.ErrDType, descr)
	}
	return order, dt, nil
}

// Descr returns the little-endian descr string for dt.
func Descr(dt tensor.DataType) (string, error) {
	code, ok := descrCodes[dt]
	if !ok {
		return "", fmt.Errorf("%w: cannot store %s in npy format", tensor.ErrDType, dt)
	}
	if dt.Size() == 1 {
		return "|" + code, nil
	}
	return "<" + code, nil
}
