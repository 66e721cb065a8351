package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is a byte-oriented key/value store over Redis. It satisfies
// autoload.CacheStorage.
type KV struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// KVOption configures a KV.
type KVOption func(*KV)

// WithKeyPrefix prepends prefix to every key.
func WithKeyPrefix(prefix string) KVOption {
	return func(k *KV) {
		k.prefix = prefix
	}
}

// WithKeyTTL sets the expiration applied on Set. 0 keeps keys forever.
func WithKeyTTL(ttl time.Duration) KVOption {
	return func(k *KV) {
		k.ttl = ttl
	}
}

// NewKV wraps client.
func NewKV(client redis.UniversalClient, opts ...KVOption) *KV {
	k := &KV{client: client}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Get returns the stored bytes, or nil and no error when the key is missing.
func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

// Set stores value under key.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	return k.client.Set(ctx, k.prefix+key, value, k.ttl).Err()
}

// Delete removes key.
func (k *KV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, k.prefix+key).Err()
}
