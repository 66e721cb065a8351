package session

import (
	"context"
	"errors"
	"maps"
	"time"
)

// DefaultName is the session name used when none is configured.
const DefaultName = "Elgg"

// HandlerStorage is a Storage that keeps attributes in memory for the duration of a
// request and loads/persists them through a SaveHandler.
//
// Unknown or expired IDs presented by the client are never adopted: Start issues a
// fresh ID instead, so an attacker cannot pick the ID a victim will use.
type HandlerStorage struct {
	handler SaveHandler
	id      string
	name    string
	ttl     time.Duration
	data    map[string]any
	started bool
	newID   func() (string, error)
}

// StorageOption configures a HandlerStorage.
type StorageOption func(*HandlerStorage)

// WithName sets the session name.
func WithName(name string) StorageOption {
	return func(s *HandlerStorage) {
		if name != "" {
			s.name = name
		}
	}
}

// WithTTL sets how long persisted data lives without activity. 0 disables expiry.
func WithTTL(ttl time.Duration) StorageOption {
	return func(s *HandlerStorage) {
		s.ttl = ttl
	}
}

// WithIDGenerator replaces the session ID generator.
func WithIDGenerator(fn func() (string, error)) StorageOption {
	return func(s *HandlerStorage) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewHandlerStorage creates a storage backed by handler. It panics if handler is nil.
func NewHandlerStorage(handler SaveHandler, opts ...StorageOption) *HandlerStorage {
	if handler == nil {
		panic("session: save handler is required")
	}
	s := &HandlerStorage{
		handler: handler,
		name:    DefaultName,
		data:    make(map[string]any),
		newID:   generateToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandlerStorageFromConfig creates a storage using name and TTL from cfg.
func NewHandlerStorageFromConfig(handler SaveHandler, cfg Config, opts ...StorageOption) *HandlerStorage {
	base := []StorageOption{WithName(cfg.Name), WithTTL(cfg.TTL)}
	return NewHandlerStorage(handler, append(base, opts...)...)
}

// Start loads the data for the current ID, or issues a new ID when there is none
// or the handler does not know it.
func (s *HandlerStorage) Start(ctx context.Context) error {
	if s.started {
		return nil
	}

	if s.id != "" {
		data, err := s.handler.Read(ctx, s.id)
		switch {
		case err == nil:
			s.data = data
			if s.data == nil {
				s.data = make(map[string]any)
			}
			s.started = true
			return nil
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
			// fall through to a fresh session
		default:
			return err
		}
	}

	id, err := s.newID()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.id = id
	s.started = true
	return nil
}

// Regenerate issues a new ID for the current attributes.
func (s *HandlerStorage) Regenerate(ctx context.Context, destroy bool) error {
	if !s.started {
		return ErrNotStarted
	}

	id, err := s.newID()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}

	if destroy {
		if err := s.handler.Destroy(ctx, s.id); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	s.id = id
	return nil
}

// Save writes the attributes through the handler.
func (s *HandlerStorage) Save(ctx context.Context) error {
	if !s.started {
		return ErrNotStarted
	}
	return s.handler.Write(ctx, s.id, maps.Clone(s.data), s.ttl)
}

// Clear removes all attributes.
func (s *HandlerStorage) Clear() {
	clear(s.data)
}

// IsStarted reports whether Start succeeded.
func (s *HandlerStorage) IsStarted() bool { return s.started }

// ID returns the session ID, empty before Start when no ID was set.
func (s *HandlerStorage) ID() string { return s.id }

// SetID sets the ID to load on Start. Ignored once started.
func (s *HandlerStorage) SetID(id string) {
	if !s.started {
		s.id = id
	}
}

// Name returns the session name.
func (s *HandlerStorage) Name() string { return s.name }

// SetName sets the session name. Ignored once started.
func (s *HandlerStorage) SetName(name string) {
	if !s.started {
		s.name = name
	}
}

// Get returns the attribute or def.
func (s *HandlerStorage) Get(key string, def any) any {
	if v, ok := s.data[key]; ok {
		return v
	}
	return def
}

// Set stores an attribute.
func (s *HandlerStorage) Set(key string, value any) {
	s.data[key] = value
}

// Remove deletes an attribute and returns its former value.
func (s *HandlerStorage) Remove(key string) any {
	v, ok := s.data[key]
	if !ok {
		return nil
	}
	delete(s.data, key)
	return v
}

// Has reports whether the attribute is set.
func (s *HandlerStorage) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// All returns a copy of all attributes.
func (s *HandlerStorage) All() map[string]any {
	return maps.Clone(s.data)
}
