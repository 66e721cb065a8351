package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/engine/core/session"
)

// DefaultPrefix is prepended to session IDs to build Redis keys.
const DefaultPrefix = "session:"

// Handler is a session.SaveHandler backed by Redis.
type Handler struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(h *Handler) {
		h.prefix = prefix
	}
}

// New creates a Handler over client.
func New(client redis.UniversalClient, opts ...Option) *Handler {
	h := &Handler{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) key(id string) string {
	return h.prefix + id
}

// Read loads the session data stored for id.
func (h *Handler) Read(ctx context.Context, id string) (map[string]any, error) {
	if id == "" {
		return nil, session.ErrInvalidID
	}

	b, err := h.client.Get(ctx, h.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	data := make(map[string]any)
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return data, nil
}

// Write stores data for id with the given TTL.
func (h *Handler) Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	if id == "" {
		return session.ErrInvalidID
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := h.client.Set(ctx, h.key(id), b, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Destroy deletes id.
func (h *Handler) Destroy(ctx context.Context, id string) error {
	return h.client.Del(ctx, h.key(id)).Err()
}

// GC does nothing; keys expire on their own.
func (h *Handler) GC(context.Context, time.Duration) (int64, error) {
	return 0, nil
}
