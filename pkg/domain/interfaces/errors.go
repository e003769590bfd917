package interfaces

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned by every backend for a missing record
	ErrNotFound = goerr.New("not found")
	// ErrUnsupported is returned when a backend cannot serve an operation
	ErrUnsupported = goerr.New("operation not supported by backend")
)
