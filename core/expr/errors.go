package expr

import "errors"

// Compilation errors.
var (
	ErrInvalidFormat    = errors.New("invalid expression format")
	ErrInvalidType      = errors.New("unrecognized type")
	ErrDuplicateParam   = errors.New("duplicate named parameter")
	ErrInvalidParamName = errors.New("invalid parameter name")
	ErrNilRegistry      = errors.New("type registry is required")
)
