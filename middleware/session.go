package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/engine/core/cookie"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/session"
)

type sessionContextKey struct{}

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	// Handler persists session data (required)
	Handler session.SaveHandler
	// Config supplies the session name, TTL and cookie attributes
	Config session.Config
	// Cookies reads and writes the session ID cookie, signed when it has
	// secrets (default: plain cookies)
	Cookies *cookie.Manager
	// Options returns per-request façade options such as the hook trigger
	Options func(r *http.Request) []session.Option
	// Logger for start and save failures (default: discard)
	Logger *slog.Logger
	// Metrics is optional
	Metrics *SessionMetrics
	// Skip bypasses the middleware for matching requests
	Skip func(r *http.Request) bool
}

// Session starts a session for every request and saves it after the handler.
// A failed start responds with 500 and does not call the handler.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Handler == nil {
		panic("session middleware: save handler is required")
	}
	if cfg.Config.Name == "" {
		cfg.Config.Name = session.DefaultName
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Cookies == nil {
		// no secrets, cannot fail
		cfg.Cookies, _ = cookie.New(nil)
	}
	cookieOpts := sessionCookieOptions(cfg.Config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			var opts []session.Option
			if cfg.Options != nil {
				opts = cfg.Options(r)
			}
			opts = append(opts, session.WithLogger(cfg.Logger))

			sess := session.New(session.NewHandlerStorageFromConfig(cfg.Handler, cfg.Config), opts...)
			if id, err := readSessionID(cfg.Cookies, r, sess.Name()); err == nil {
				sess.SetID(id)
			} else if !errors.Is(err, cookie.ErrCookieNotFound) {
				cfg.Logger.WarnContext(ctx, "session cookie rejected",
					logger.Component("session"),
					logger.SessionName(sess.Name()),
					logger.Error(err),
				)
			}

			err := sess.Start(ctx)
			cfg.Metrics.start(err)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			cw := &cookieWriter{ResponseWriter: w, r: r, sess: sess, cookies: cfg.Cookies, opts: cookieOpts, log: cfg.Logger}
			next.ServeHTTP(cw, r.WithContext(WithSession(ctx, sess)))
			cw.setCookie()

			start := time.Now()
			err = sess.Save(ctx)
			cfg.Metrics.save(time.Since(start).Seconds(), err)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "session save failed",
					logger.Component("session"),
					logger.SessionName(sess.Name()),
					logger.Error(err),
				)
			}
		})
	}
}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the session stored by the middleware.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok && sess != nil
}

// MustSession is like SessionFromContext but panics when no session is present.
func MustSession(ctx context.Context) *session.Session {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		panic("middleware: no session in context")
	}
	return sess
}

// cookieWriter sets the session cookie with the current ID before the first
// byte of the response goes out.
type cookieWriter struct {
	http.ResponseWriter
	r       *http.Request
	sess    *session.Session
	cookies *cookie.Manager
	opts    []cookie.Option
	log     *slog.Logger
	sent    bool
}

func (w *cookieWriter) setCookie() {
	if w.sent {
		return
	}
	w.sent = true

	set := w.cookies.Set
	if w.cookies.Signing() {
		set = w.cookies.SetSigned
	}
	if err := set(w.ResponseWriter, w.sess.Name(), w.sess.ID(), w.opts...); err != nil {
		w.log.ErrorContext(w.r.Context(), "session cookie not set",
			logger.Component("session"),
			logger.SessionName(w.sess.Name()),
			logger.Error(err),
		)
	}
}

func readSessionID(m *cookie.Manager, r *http.Request, name string) (string, error) {
	if m.Signing() {
		return m.GetSigned(r, name)
	}
	return m.Get(r, name)
}

func sessionCookieOptions(cfg session.Config) []cookie.Option {
	path := cfg.CookiePath
	if path == "" {
		path = "/"
	}
	opts := []cookie.Option{
		cookie.WithPath(path),
		cookie.WithDomain(cfg.CookieDomain),
		cookie.WithSecure(cfg.CookieSecure),
		cookie.WithHTTPOnly(cfg.CookieHTTPOnly),
		cookie.WithSameSite(cfg.CookieSameSite),
	}
	if cfg.TTL > 0 {
		opts = append(opts, cookie.WithMaxAge(int(cfg.TTL.Seconds())))
	}
	return opts
}

func (w *cookieWriter) WriteHeader(code int) {
	w.setCookie()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.setCookie()
	return w.ResponseWriter.Write(b)
}

func (w *cookieWriter) Flush() {
	w.setCookie()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *cookieWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
