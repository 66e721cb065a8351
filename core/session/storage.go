package session

import (
	"context"
	"time"
)

// Storage is the backend a Session façade delegates to. It owns the session
// identifier lifecycle and the attribute map.
type Storage interface {
	// Start opens the session. Calling Start on a started storage is a no-op.
	Start(ctx context.Context) error
	// Regenerate moves the attributes to a new session ID. With destroy the data
	// persisted under the old ID is deleted immediately.
	Regenerate(ctx context.Context, destroy bool) error
	// Save persists the attributes.
	Save(ctx context.Context) error
	// Clear removes all attributes.
	Clear()

	IsStarted() bool
	ID() string
	// SetID is ignored once the storage is started.
	SetID(id string)
	Name() string
	// SetName is ignored once the storage is started.
	SetName(name string)

	Get(key string, def any) any
	Set(key string, value any)
	Remove(key string) any
	Has(key string) bool
	All() map[string]any
}

// SaveHandler persists session attributes by ID. Implementations are shared
// between requests and must be safe for concurrent use.
type SaveHandler interface {
	// Read returns the attributes stored for id, or ErrNotFound.
	Read(ctx context.Context, id string) (map[string]any, error)
	// Write stores data for id, expiring after ttl (0 keeps it until GC).
	Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) error
	// Destroy removes the data for id. Missing IDs are not an error.
	Destroy(ctx context.Context, id string) error
	// GC removes sessions idle for longer than maxLifetime and returns how many were removed.
	GC(ctx context.Context, maxLifetime time.Duration) (int64, error)
}
