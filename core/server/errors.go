package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrStart                = errors.New("failed to start HTTP server")
	ErrShutdown             = errors.New("failed to shutdown HTTP server gracefully")
)
