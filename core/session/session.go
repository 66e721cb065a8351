package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/engine/core/logger"
)

// Session gives uniform access to session attributes and lifecycle control,
// independent of the concrete Storage.
//
// A Session belongs to a single request and is not safe for concurrent use.
type Session struct {
	storage  Storage
	raw      RawStore
	notifier Notifier
	hooks    HookTrigger
	logger   *slog.Logger
	newToken func() (string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithRawStore sets the request-scoped store used by the deprecated array-style accessors.
func WithRawStore(raw RawStore) Option {
	return func(s *Session) {
		if raw != nil {
			s.raw = raw
		}
	}
}

// WithDeprecationNotifier sets the sink for deprecation notices.
func WithDeprecationNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithHookTrigger sets the hook dispatcher consulted by OffsetGet on a miss.
func WithHookTrigger(h HookTrigger) Option {
	return func(s *Session) {
		s.hooks = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTokenGenerator replaces the anti-forgery token generator.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(s *Session) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// New creates a Session façade over storage. It panics if storage is nil.
func New(storage Storage, opts ...Option) *Session {
	if storage == nil {
		panic("session: storage is required")
	}

	s := &Session{
		storage:  storage,
		raw:      make(RawStore),
		notifier: noopNotifier{},
		logger:   logger.Nop(),
		newToken: generateToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the storage and makes sure the anti-forgery token exists.
// An existing token is never overwritten.
func (s *Session) Start(ctx context.Context) error {
	if err := s.storage.Start(ctx); err != nil {
		s.logger.ErrorContext(ctx, "session start failed",
			logger.Component("session"),
			logger.SessionName(s.storage.Name()),
			logger.Error(err),
		)
		return errors.Join(ErrStartFailed, err)
	}
	return s.ensureToken()
}

// Migrate moves the session to a new ID while keeping its attributes. With destroy
// the data stored under the old ID is removed instead of being left to expire.
func (s *Session) Migrate(ctx context.Context, destroy bool) error {
	if err := s.storage.Regenerate(ctx, destroy); err != nil {
		return errors.Join(ErrRegenerateFailed, err)
	}
	return nil
}

// Invalidate discards every attribute, destroys the old session and issues a new
// ID and a new anti-forgery token. Call it on privilege changes such as login to
// prevent session fixation.
func (s *Session) Invalidate(ctx context.Context) error {
	s.storage.Clear()
	err := s.Migrate(ctx, true)
	return errors.Join(err, s.ensureToken())
}

// Save persists the attributes through the storage.
func (s *Session) Save(ctx context.Context) error {
	if err := s.storage.Save(ctx); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

// IsStarted reports whether the storage has been started.
func (s *Session) IsStarted() bool {
	return s.storage.IsStarted()
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.storage.ID()
}

// SetID sets the session identifier. Ignored once started.
func (s *Session) SetID(id string) {
	s.storage.SetID(id)
}

// Name returns the session name, used as the cookie name.
func (s *Session) Name() string {
	return s.storage.Name()
}

// SetName sets the session name. Ignored once started.
func (s *Session) SetName(name string) {
	s.storage.SetName(name)
}

// Get returns the attribute called name or def when it is not set.
func (s *Session) Get(name string, def any) any {
	return s.storage.Get(name, def)
}

// Set stores value under name, replacing any previous value.
func (s *Session) Set(name string, value any) {
	s.storage.Set(name, value)
}

// Remove deletes the attribute and returns its former value, nil if it was not set.
func (s *Session) Remove(name string) any {
	return s.storage.Remove(name)
}

// Has reports whether the attribute is set.
func (s *Session) Has(name string) bool {
	return s.storage.Has(name)
}

// Token returns the anti-forgery token, empty before Start.
func (s *Session) Token() string {
	tok, _ := s.storage.Get(TokenKey, "").(string)
	return tok
}

func (s *Session) ensureToken() error {
	if s.storage.Has(TokenKey) {
		return nil
	}
	tok, err := s.newToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.storage.Set(TokenKey, tok)
	return nil
}
