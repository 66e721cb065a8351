package session

import (
	"net/http"
	"time"
)

// Driver names accepted by Config.Driver.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "pg"
)

// Config holds session configuration loadable from the environment.
type Config struct {
	Name   string        `env:"SESSION_NAME" envDefault:"Elgg"`
	TTL    time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	Driver string        `env:"SESSION_DRIVER" envDefault:"memory"` // memory | redis | pg

	// Cookie attributes for the session ID cookie
	CookiePath     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode

	// GCInterval is how often expired sessions are purged (0 disables the collector).
	GCInterval time.Duration `env:"SESSION_GC_INTERVAL" envDefault:"30m"`
}

// DefaultConfig returns a Config with the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		Name:           DefaultName,
		TTL:            time.Hour,
		Driver:         DriverMemory,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
		GCInterval:     30 * time.Minute,
	}
}
