package session

import "errors"

var (
	// ErrStartFailed is returned when the storage backend cannot be started.
	ErrStartFailed = errors.New("failed to start session")
	// ErrNotStarted is returned by operations that require a started session.
	ErrNotStarted = errors.New("session is not started")
	// ErrRegenerateFailed is returned when the session ID cannot be regenerated.
	ErrRegenerateFailed = errors.New("failed to regenerate session id")
	// ErrTokenGeneration is returned when random token generation fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrSaveFailed is returned when persisting the session fails.
	ErrSaveFailed = errors.New("failed to save session")
	// ErrNotFound is returned by a SaveHandler when no data exists for an ID.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidID is returned by a SaveHandler for malformed session IDs.
	ErrInvalidID = errors.New("invalid session id")
)
