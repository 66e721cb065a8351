package app

import (
	"github.com/dmitrymomot/engine/core/cookie"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/server"
	"github.com/dmitrymomot/engine/core/session"
)

// Config is the application configuration. Driver specific settings
// (pg.Config, redis.Config) are loaded only when the selected driver needs them.
type Config struct {
	Log     logger.Config
	Server  server.Config
	Session session.Config
	Cookie  cookie.Config

	// CurrentVersion grades deprecation notices
	CurrentVersion string `env:"APP_VERSION" envDefault:"1.9"`
	// AutoloadDirs are indexed by the autoload manager at startup
	AutoloadDirs []string `env:"AUTOLOAD_DIRS" envSeparator:","`
	// AutoloadCache persists the component map in Redis when the redis driver is used
	AutoloadCache bool   `env:"AUTOLOAD_CACHE" envDefault:"true"`
	MetricsPath   string `env:"METRICS_PATH" envDefault:"/metrics"`
}
