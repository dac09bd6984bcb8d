package deeplink

import "errors"

var (
	ErrNilDecoder   = errors.New("route decoder cannot be nil")
	ErrGlobalDecode = errors.New("global params decode failed")
)
