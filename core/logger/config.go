package logger

import (
	"log/slog"
	"strings"
)

// Config provides environment-based logger configuration.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"engine"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"text"` // text | json
}

// NewFromConfig builds a logger from Config. Unknown levels fall back to info.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	base := []Option{
		WithLevel(parseLevel(cfg.Level)),
		WithAttr(slog.String("service", cfg.AppName), slog.String("env", cfg.Env)),
	}
	if strings.EqualFold(cfg.Format, "json") {
		base = append(base, WithJSONFormatter())
	}
	return New(append(base, opts...)...)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
