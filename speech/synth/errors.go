package synth

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey means the engine has no credential to authenticate with.
var ErrNoAPIKey = errors.New("missing API key")

// Error is a synthesis failure reported by an engine.
type Error struct {
	Engine  string
	Code    string // vendor status or error code, if any
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code %s)", e.Engine, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Engine, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
