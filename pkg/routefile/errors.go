package routefile

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported route file format")
	ErrInvalidTable      = errors.New("invalid route table")
	ErrUnknownTypeKind   = errors.New("unknown type kind")
	ErrLoadFailed        = errors.New("failed to load route table")
)
