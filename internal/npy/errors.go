package npy

import (
	"errors"
	"fmt"
)

// ErrFormat reports malformed or unsupported .npy data.
var ErrFormat = errors.New("invalid npy data")

// Specific format errors. Each wraps ErrFormat.
var (
	ErrInvalidMagic       = fmt.Errorf("%w: invalid magic string", ErrFormat)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported format version", ErrFormat)
	ErrFortranOrder       = fmt.Errorf("%w: fortran ordered data is not supported", ErrFormat)
	ErrHeaderTooLarge     = fmt.Errorf("%w: header exceeds maximum size", ErrFormat)
)
