package autoload

import "errors"

var (
	// ErrDirNotFound is returned when AddDir is given a missing directory.
	ErrDirNotFound = errors.New("component directory not found")
	// ErrInvalidName is returned when registering an empty name or path.
	ErrInvalidName = errors.New("component name and path are required")
	// ErrCacheCorrupted is returned when the persisted map cannot be decoded.
	ErrCacheCorrupted = errors.New("component cache is corrupted")
	// ErrNoStorage is returned by cache operations when no storage is configured.
	ErrNoStorage = errors.New("component cache storage is not configured")
)
