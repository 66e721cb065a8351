package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/engine/core/autoload"
	"github.com/dmitrymomot/engine/core/config"
	"github.com/dmitrymomot/engine/core/cookie"
	"github.com/dmitrymomot/engine/core/health"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/services"
	"github.com/dmitrymomot/engine/core/session"
	"github.com/dmitrymomot/engine/integration/database/pg"
	"github.com/dmitrymomot/engine/integration/database/redis"
	sessionpg "github.com/dmitrymomot/engine/integration/sessionstore/pg"
	sessionredis "github.com/dmitrymomot/engine/integration/sessionstore/redis"
	"github.com/dmitrymomot/engine/middleware"
)

// ErrUnknownDriver is returned for an unsupported SESSION_DRIVER.
var ErrUnknownDriver = errors.New("unknown session driver")

// App wires configuration, services and the session backend together.
type App struct {
	config      Config
	configSet   bool
	logger      *slog.Logger
	provider    *services.Provider
	saveHandler session.SaveHandler
	cookies     *cookie.Manager
	registry    *prometheus.Registry
	metrics     *middleware.SessionMetrics
	redis       *goredis.Client
	readiness   []health.Check
}

// Option configures an App.
type Option func(*App) error

// WithConfig skips loading configuration from the environment.
func WithConfig(cfg Config) Option {
	return func(a *App) error {
		a.config = cfg
		a.configSet = true
		return nil
	}
}

// WithLogger overrides the logger built from Config.Log.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = l
		return nil
	}
}

// WithSaveHandler overrides the handler selected by Config.Session.Driver.
func WithSaveHandler(h session.SaveHandler) Option {
	return func(a *App) error {
		if h == nil {
			return errors.New("save handler cannot be nil")
		}
		a.saveHandler = h
		return nil
	}
}

// New builds the application. Connections needed by the session driver are
// opened here; everything else stays lazy inside the service provider.
func New(ctx context.Context, opts ...Option) (*App, error) {
	a := &App{registry: prometheus.NewRegistry()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if !a.configSet {
		if err := config.Load(&a.config); err != nil {
			return nil, err
		}
	}
	if a.logger == nil {
		a.logger = logger.NewFromConfig(a.config.Log, logger.WithContextExtractors(middleware.RequestIDExtractor))
	}

	cookies, err := cookie.NewFromConfig(a.config.Cookie)
	if err != nil {
		return nil, err
	}
	a.cookies = cookies

	var dbCfg pg.Config
	if a.saveHandler == nil && a.config.Session.Driver == session.DriverPostgres {
		if err := config.Load(&dbCfg); err != nil {
			return nil, err
		}
	}

	var autoloadOpts []autoload.Option
	autoloadOpts = append(autoloadOpts, autoload.WithLogger(a.logger))
	if a.saveHandler == nil && a.config.Session.Driver == session.DriverRedis {
		if err := a.connectRedis(ctx); err != nil {
			return nil, err
		}
		if a.config.AutoloadCache {
			autoloadOpts = append(autoloadOpts, autoload.WithStorage(redis.NewKV(a.redis)))
		}
	}

	autoloader := autoload.New(autoloadOpts...)
	a.provider = services.New(autoloader,
		services.WithLogger(a.logger),
		services.WithDBConfig(dbCfg),
		services.WithCurrentVersion(a.config.CurrentVersion),
	)

	if err := a.loadComponents(ctx, autoloader); err != nil {
		a.Close()
		return nil, err
	}

	if a.saveHandler == nil {
		h, err := a.newSaveHandler()
		if err != nil {
			a.Close()
			return nil, err
		}
		a.saveHandler = h
	}

	// resolved up front: the provider is not safe for concurrent use
	a.provider.Hooks()
	a.provider.Deprecation()

	a.metrics = middleware.NewSessionMetrics(a.registry)
	return a, nil
}

func (a *App) connectRedis(ctx context.Context) error {
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	a.redis = client
	a.readiness = append(a.readiness, redis.Healthcheck(client))
	return nil
}

func (a *App) loadComponents(ctx context.Context, m *autoload.Manager) error {
	loaded, err := m.LoadCache(ctx)
	if err != nil && !errors.Is(err, autoload.ErrNoStorage) {
		a.logger.WarnContext(ctx, "autoload cache unusable, rebuilding", logger.Component("autoload"), logger.Error(err))
	}
	if loaded {
		return nil
	}

	for _, dir := range a.config.AutoloadDirs {
		if err := m.AddDir(dir); err != nil {
			return fmt.Errorf("autoload %s: %w", dir, err)
		}
	}
	if err := m.SaveCache(ctx); err != nil && !errors.Is(err, autoload.ErrNoStorage) {
		a.logger.WarnContext(ctx, "failed to save autoload cache", logger.Component("autoload"), logger.Error(err))
	}
	return nil
}

func (a *App) newSaveHandler() (session.SaveHandler, error) {
	switch a.config.Session.Driver {
	case session.DriverMemory, "":
		return session.NewMemoryHandler(), nil
	case session.DriverRedis:
		return sessionredis.New(a.redis), nil
	case session.DriverPostgres:
		db := a.provider.DB()
		a.readiness = append(a.readiness, func(ctx context.Context) error {
			pool, err := db.Pool(ctx)
			if err != nil {
				return err
			}
			return pg.Healthcheck(pool)(ctx)
		})
		return sessionpg.New(db), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, a.config.Session.Driver)
}

// Config returns the loaded configuration.
func (a *App) Config() Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Services returns the service provider.
func (a *App) Services() *services.Provider { return a.provider }

// SaveHandler returns the session persistence backend.
func (a *App) SaveHandler() session.SaveHandler { return a.saveHandler }

// Registry returns the Prometheus registry exposed on the metrics path.
func (a *App) Registry() *prometheus.Registry { return a.registry }

// Close releases connections.
func (a *App) Close() {
	if a.provider != nil {
		a.provider.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
