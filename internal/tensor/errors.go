package tensor

import "errors"

// Error kinds. Every error returned by this module wraps exactly one of them,
// so callers classify failures with errors.Is.
var (
	ErrShape  = errors.New("shape error")
	ErrBounds = errors.New("index out of bounds")
	ErrSyntax = errors.New("invalid index")
	ErrDType  = errors.New("dtype error")
)
