package binder

import "errors"

var (
	// ErrFailedToBind indicates a parameter value does not fit the target field,
	// a required param is missing, or the target is not a pointer to a struct.
	ErrFailedToBind = errors.New("failed to bind params")

	// ErrFailedToDecodeJSON indicates a required param is missing or the JSON
	// round trip into the target type failed.
	ErrFailedToDecodeJSON = errors.New("failed to decode params as JSON")
)
