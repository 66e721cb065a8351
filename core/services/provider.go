package services

import (
	"log/slog"

	"github.com/dmitrymomot/engine/core/autoload"
	"github.com/dmitrymomot/engine/core/cache"
	"github.com/dmitrymomot/engine/core/container"
	"github.com/dmitrymomot/engine/core/deprecation"
	"github.com/dmitrymomot/engine/core/hooks"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/integration/database/pg"
)

// Service keys.
const (
	KeyMetadataCache   = "metadataCache"
	KeyAutoloadManager = "autoloadManager"
	KeyDB              = "db"
	KeyHooks           = "hooks"
	KeyLogger          = "logger"
	KeyDeprecation     = "deprecation"
)

// Factory builds a service, resolving its dependencies through p.
type Factory func(p *Provider) (any, error)

// Provider lazily constructs and memoizes the shared services.
type Provider struct {
	c *container.Container
}

type options struct {
	logger    *slog.Logger
	dbConfig  pg.Config
	version   string
	factories map[string]Factory
}

// Option configures a Provider.
type Option func(*options)

// WithLogger sets the instance returned for the logger key.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDBConfig sets the configuration of the db service.
func WithDBConfig(cfg pg.Config) Option {
	return func(o *options) {
		o.dbConfig = cfg
	}
}

// WithCurrentVersion sets the release used to grade deprecation notices.
func WithCurrentVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithFactory registers, or replaces, the factory for key.
func WithFactory(key string, f Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factories[key] = f
		}
	}
}

// New creates a Provider. autoloader is returned for the autoloadManager key;
// when nil a fresh autoload.Manager is built on first access.
func New(autoloader *autoload.Manager, opts ...Option) *Provider {
	o := &options{
		logger:    logger.Nop(),
		factories: make(map[string]Factory),
	}
	defaults := map[string]Factory{
		KeyLogger: func(*Provider) (any, error) {
			return o.logger, nil
		},
		KeyMetadataCache: func(*Provider) (any, error) {
			return cache.NewMetadataCache(), nil
		},
		KeyAutoloadManager: func(p *Provider) (any, error) {
			if autoloader != nil {
				return autoloader, nil
			}
			return autoload.New(autoload.WithLogger(p.Logger())), nil
		},
		KeyDB: func(*Provider) (any, error) {
			return pg.NewDB(o.dbConfig), nil
		},
		KeyHooks: func(p *Provider) (any, error) {
			return hooks.New(hooks.WithLogger(p.Logger())), nil
		},
		KeyDeprecation: func(p *Provider) (any, error) {
			var dopts []deprecation.Option
			if o.version != "" {
				dopts = append(dopts, deprecation.WithCurrentVersion(o.version))
			}
			return deprecation.New(p.Logger(), dopts...), nil
		},
	}

	for _, opt := range opts {
		opt(o)
	}
	for key, f := range o.factories {
		defaults[key] = f
	}

	p := &Provider{c: container.New()}
	for key, f := range defaults {
		// keys are non-empty and unique, Register cannot fail here
		_ = p.c.Register(key, func(c *container.Container) (any, error) {
			v, err := f(p)
			if err == nil && key != KeyLogger {
				if log, lerr := container.Get[*slog.Logger](c, KeyLogger); lerr == nil {
					log.Debug("service constructed", logger.Component("services"), logger.Service(key))
				}
			}
			return v, err
		})
	}
	return p
}

// Resolve returns the service registered under key.
// Unknown keys yield an error wrapping container.ErrServiceNotFound.
func (p *Provider) Resolve(key string) (any, error) {
	return p.c.Resolve(key)
}

// Has reports whether key is registered.
func (p *Provider) Has(key string) bool {
	return p.c.Has(key)
}

// Resolved reports whether the service for key has been built.
func (p *Provider) Resolved(key string) bool {
	return p.c.Resolved(key)
}

// Keys lists the registered keys.
func (p *Provider) Keys() []string {
	return p.c.Keys()
}

// MetadataCache returns the metadata cache.
func (p *Provider) MetadataCache() *cache.MetadataCache {
	return container.MustGet[*cache.MetadataCache](p.c, KeyMetadataCache)
}

// AutoloadManager returns the component autoloader.
func (p *Provider) AutoloadManager() *autoload.Manager {
	return container.MustGet[*autoload.Manager](p.c, KeyAutoloadManager)
}

// DB returns the lazily connected database handle.
func (p *Provider) DB() *pg.DB {
	return container.MustGet[*pg.DB](p.c, KeyDB)
}

// Hooks returns the plugin hook service.
func (p *Provider) Hooks() *hooks.Service {
	return container.MustGet[*hooks.Service](p.c, KeyHooks)
}

// Logger returns the logger.
func (p *Provider) Logger() *slog.Logger {
	return container.MustGet[*slog.Logger](p.c, KeyLogger)
}

// Deprecation returns the deprecation notifier.
func (p *Provider) Deprecation() *deprecation.Notifier {
	return container.MustGet[*deprecation.Notifier](p.c, KeyDeprecation)
}

// Close releases resources held by built services.
func (p *Provider) Close() {
	if p.c.Resolved(KeyDB) {
		if db, err := container.Get[*pg.DB](p.c, KeyDB); err == nil {
			db.Close()
		}
	}
}
