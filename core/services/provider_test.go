package services_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/engine/core/autoload"
	"github.com/dmitrymomot/engine/core/cache"
	"github.com/dmitrymomot/engine/core/container"
	"github.com/dmitrymomot/engine/core/deprecation"
	"github.com/dmitrymomot/engine/core/hooks"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/services"
	"github.com/dmitrymomot/engine/integration/database/pg"
)

func TestProvider_SameInstancePerKey(t *testing.T) {
	t.Parallel()

	keys := []string{
		services.KeyMetadataCache,
		services.KeyAutoloadManager,
		services.KeyDB,
		services.KeyHooks,
		services.KeyLogger,
		services.KeyDeprecation,
	}

	p := services.New(autoload.New())
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			first, err := p.Resolve(key)
			require.NoError(t, err)
			second, err := p.Resolve(key)
			require.NoError(t, err)
			assert.Same(t, first, second)
		})
	}
}

func TestProvider_Types(t *testing.T) {
	t.Parallel()

	p := services.New(autoload.New())

	tests := map[string]any{
		services.KeyMetadataCache:   &cache.MetadataCache{},
		services.KeyAutoloadManager: &autoload.Manager{},
		services.KeyDB:              &pg.DB{},
		services.KeyHooks:           &hooks.Service{},
		services.KeyLogger:          &slog.Logger{},
		services.KeyDeprecation:     &deprecation.Notifier{},
	}
	for key, want := range tests {
		got, err := p.Resolve(key)
		require.NoError(t, err, key)
		assert.IsType(t, want, got, key)
	}

	assert.Same(t, p.MetadataCache(), p.MetadataCache())
	assert.Same(t, p.Hooks(), p.Hooks())
	assert.Same(t, p.DB(), p.DB())
	assert.Same(t, p.Deprecation(), p.Deprecation())
}

func TestProvider_UnknownKey(t *testing.T) {
	t.Parallel()

	p := services.New(nil)
	_, err := p.Resolve("foo")
	assert.ErrorIs(t, err, container.ErrServiceNotFound)
	assert.False(t, p.Has("foo"))
}

func TestProvider_Lazy(t *testing.T) {
	t.Parallel()

	p := services.New(nil)
	for _, key := range p.Keys() {
		assert.False(t, p.Resolved(key), key)
	}

	_ = p.Hooks()
	assert.True(t, p.Resolved(services.KeyHooks))
	assert.True(t, p.Resolved(services.KeyLogger))
	assert.False(t, p.Resolved(services.KeyDB))

	// resolving db does not dial
	assert.False(t, p.DB().Connected())
	p.Close()
}

func TestProvider_LogsConstruction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithJSONFormatter(), logger.WithLevel(slog.LevelDebug), logger.WithOutput(&buf))
	p := services.New(nil, services.WithLogger(log))

	_ = p.MetadataCache()
	_ = p.MetadataCache()

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"service":"metadataCache"`)))
	assert.NotContains(t, buf.String(), `"service":"logger"`)
}

func TestProvider_Options(t *testing.T) {
	t.Parallel()

	t.Run("given autoloader and logger are returned", func(t *testing.T) {
		t.Parallel()
		am := autoload.New()
		log := logger.Nop()
		p := services.New(am, services.WithLogger(log))

		assert.Same(t, am, p.AutoloadManager())
		assert.Same(t, log, p.Logger())
	})

	t.Run("nil autoloader builds one", func(t *testing.T) {
		t.Parallel()
		p := services.New(nil)
		assert.NotNil(t, p.AutoloadManager())
	})

	t.Run("db config", func(t *testing.T) {
		t.Parallel()
		cfg := pg.Config{ConnectionString: "postgres://localhost/engine"}
		p := services.New(nil, services.WithDBConfig(cfg))
		assert.Equal(t, cfg, p.DB().Config())
	})

	t.Run("factory override", func(t *testing.T) {
		t.Parallel()
		mc := cache.NewMetadataCache()
		calls := 0
		p := services.New(nil, services.WithFactory(services.KeyMetadataCache, func(*services.Provider) (any, error) {
			calls++
			return mc, nil
		}))

		assert.Same(t, mc, p.MetadataCache())
		assert.Same(t, mc, p.MetadataCache())
		assert.Equal(t, 1, calls)
	})

	t.Run("extra service", func(t *testing.T) {
		t.Parallel()
		p := services.New(nil, services.WithFactory("clock", func(*services.Provider) (any, error) {
			return "tick", nil
		}))
		v, err := p.Resolve("clock")
		require.NoError(t, err)
		assert.Equal(t, "tick", v)
	})

	t.Run("failing factory", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("no cache")
		p := services.New(nil, services.WithFactory(services.KeyMetadataCache, func(*services.Provider) (any, error) {
			return nil, boom
		}))

		_, err := p.Resolve(services.KeyMetadataCache)
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, container.ErrFactoryFailed)
		assert.Panics(t, func() { p.MetadataCache() })
	})
}

func TestProvider_RecoversAfterDependencyFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	p := services.New(nil, services.WithFactory(services.KeyLogger, func(*services.Provider) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("log sink unavailable")
		}
		return logger.Nop(), nil
	}))

	assert.Panics(t, func() { p.Hooks() })
	assert.False(t, p.Resolved(services.KeyHooks))

	assert.NotNil(t, p.Hooks())
	assert.True(t, p.Resolved(services.KeyHooks))
}
