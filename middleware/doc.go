// Package middleware provides net/http middleware for the engine's HTTP surface.
//
// All middleware share the func(http.Handler) http.Handler shape, so they plug
// into chi or any other router:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID(middleware.RequestIDConfig{}))
//	r.Use(middleware.Logging(middleware.LoggingConfig{Logger: log}))
//	r.Use(middleware.Session(middleware.SessionConfig{
//		Handler: saveHandler,
//		Config:  sessionCfg,
//		Metrics: middleware.NewSessionMetrics(prometheus.DefaultRegisterer),
//	}))
//
// # Session
//
// Session builds a fresh session.Session for every request. The ID is read from
// the cookie named after the session, the session is started, stored in the
// request context and saved once the handler returns. The cookie is written with
// the session's current ID right before the response headers go out, so a
// handler that calls Migrate or Invalidate sends the new ID.
//
//	func dashboard(w http.ResponseWriter, r *http.Request) {
//		sess := middleware.MustSession(r.Context())
//		sess.Set("last_page", "/dashboard")
//	}
//
// # Request ID and logging
//
// RequestID assigns a UUID to each request and echoes it in X-Request-ID.
// Logging writes one structured record per request; loggers built with
// RequestIDExtractor include that ID in every record logged with the request context.
package middleware
