package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/engine/core/logger"
)

// LoggingConfig configures the Logging middleware.
type LoggingConfig struct {
	// Logger receives one record per request (default: slog.Default())
	Logger *slog.Logger
	// LogLevel for successful requests (default: Info). 5xx responses log at Error.
	LogLevel slog.Level
	// SlowRequestThreshold raises requests slower than this to Warn (default: 5s)
	SlowRequestThreshold time.Duration
	// Skip excludes requests, for example health checks
	Skip func(r *http.Request) bool
}

// Logging logs method, path, status and duration of every request. The request
// ID is attached when the logger was built with RequestIDExtractor.
func Logging(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			attrs := []slog.Attr{
				logger.Component("http"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				slog.Int("status", sw.status),
				logger.Duration(elapsed),
			}

			level := cfg.LogLevel
			switch {
			case sw.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case elapsed > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
			}
			cfg.Logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
