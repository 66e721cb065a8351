package app

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/engine/core/health"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/session"
	"github.com/dmitrymomot/engine/middleware"
)

// Handler returns the HTTP router.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(middleware.RequestIDConfig{}))
	r.Use(middleware.Logging(middleware.LoggingConfig{
		Logger: a.logger,
		Skip:   isHealthCheck,
	}))

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness(a.logger, a.readiness...))
	r.Handle(a.metricsPath(), promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(middleware.SessionConfig{
			Handler: a.saveHandler,
			Config:  a.config.Session,
			Cookies: a.cookies,
			Logger:  a.logger,
			Metrics: a.metrics,
			Options: a.sessionOptions,
		}))
		r.Get("/session", a.showSession)
		r.Post("/session/regenerate", a.regenerateSession)
		r.Delete("/session", a.invalidateSession)
	})
	return r
}

func (a *App) sessionOptions(*http.Request) []session.Option {
	return []session.Option{
		session.WithHookTrigger(a.provider.Hooks()),
		session.WithDeprecationNotifier(a.provider.Deprecation()),
	}
}

func (a *App) metricsPath() string {
	if a.config.MetricsPath == "" {
		return "/metrics"
	}
	return a.config.MetricsPath
}

func isHealthCheck(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/health/")
}

type sessionView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

func (a *App) showSession(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustSession(r.Context())
	a.writeJSON(w, r, http.StatusOK, sessionView{ID: sess.ID(), Name: sess.Name(), Token: sess.Token()})
}

func (a *App) regenerateSession(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustSession(r.Context())
	if err := sess.Migrate(r.Context(), true); err != nil {
		a.logger.ErrorContext(r.Context(), "session migrate failed", logger.Component("session"), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	a.writeJSON(w, r, http.StatusOK, sessionView{ID: sess.ID(), Name: sess.Name(), Token: sess.Token()})
}

func (a *App) invalidateSession(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustSession(r.Context())
	if err := sess.Invalidate(r.Context()); err != nil {
		a.logger.ErrorContext(r.Context(), "session invalidate failed", logger.Component("session"), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.ErrorContext(r.Context(), "failed to write response", logger.Error(err))
	}
}
