package paramtype

import "errors"

// Registry construction errors.
var (
	ErrInvalidName   = errors.New("type name is not alphabetic")
	ErrDuplicateName = errors.New("type name already declared")
	ErrInvalidRegexp = errors.New("invalid type pattern")
)
