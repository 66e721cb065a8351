package session

import (
	"context"
	"maps"
)

// MemoryStorage is a Storage that keeps everything in memory and never persists.
// Useful for tests and for CLI code paths that need a session without a client.
type MemoryStorage struct {
	id      string
	name    string
	data    map[string]any
	started bool
	newID   func() (string, error)
}

// NewMemoryStorage creates an unstarted MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		name:  DefaultName,
		data:  make(map[string]any),
		newID: generateToken,
	}
}

// Start marks the storage started and issues an ID if none was set.
func (s *MemoryStorage) Start(context.Context) error {
	if s.started {
		return nil
	}
	if s.id == "" {
		id, err := s.newID()
		if err != nil {
			return err
		}
		s.id = id
	}
	s.started = true
	return nil
}

// Regenerate issues a new ID. There is no persisted data to destroy.
func (s *MemoryStorage) Regenerate(_ context.Context, _ bool) error {
	if !s.started {
		return ErrNotStarted
	}
	id, err := s.newID()
	if err != nil {
		return err
	}
	s.id = id
	return nil
}

// Save is a no-op.
func (s *MemoryStorage) Save(context.Context) error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Clear removes every attribute.
func (s *MemoryStorage) Clear() { clear(s.data) }

// IsStarted reports whether Start has been called.
func (s *MemoryStorage) IsStarted() bool { return s.started }

// ID returns the session ID, empty before Start unless set with SetID.
func (s *MemoryStorage) ID() string { return s.id }

// Name returns the session name.
func (s *MemoryStorage) Name() string { return s.name }

// SetID sets the ID used by Start. Ignored once started.
func (s *MemoryStorage) SetID(id string) {
	if !s.started {
		s.id = id
	}
}

// SetName sets the session name. Ignored once started.
func (s *MemoryStorage) SetName(name string) {
	if !s.started {
		s.name = name
	}
}

// Get returns the attribute stored under key, or def when it is absent.
func (s *MemoryStorage) Get(key string, def any) any {
	if v, ok := s.data[key]; ok {
		return v
	}
	return def
}

// Set stores value under key.
func (s *MemoryStorage) Set(key string, value any) { s.data[key] = value }

// Remove deletes key and returns its previous value, nil when absent.
func (s *MemoryStorage) Remove(key string) any {
	v, ok := s.data[key]
	if !ok {
		return nil
	}
	delete(s.data, key)
	return v
}

// Has reports whether key is stored.
func (s *MemoryStorage) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// All returns a copy of every attribute.
func (s *MemoryStorage) All() map[string]any { return maps.Clone(s.data) }
