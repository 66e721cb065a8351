package hooks

import "errors"

var (
	// ErrInvalidHook is returned when registering with an empty hook name or type.
	ErrInvalidHook = errors.New("hook name and type are required")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("hook handler is nil")
)
