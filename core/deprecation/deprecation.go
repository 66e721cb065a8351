package deprecation

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/engine/core/logger"
)

// Notifier logs deprecation notices.
type Notifier struct {
	log            *slog.Logger
	currentVersion float64
	withCaller     bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithCurrentVersion sets the running engine version. Notices for APIs deprecated in an
// older major release are logged at error level. Unparseable versions are ignored.
func WithCurrentVersion(v string) Option {
	return func(n *Notifier) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			n.currentVersion = f
		}
	}
}

// WithCaller adds the caller location to each notice.
func WithCaller() Option {
	return func(n *Notifier) {
		n.withCaller = true
	}
}

// New creates a Notifier writing to log. A nil logger discards notices.
func New(log *slog.Logger, opts ...Option) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	n := &Notifier{log: log.With(logger.Component("deprecation"))}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notice reports that msg describes a deprecated API removed in favour of newer code
// since version. It always returns true once the notice has been emitted.
func (n *Notifier) Notice(ctx context.Context, msg, version string) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	attrs := []slog.Attr{logger.Version(version)}
	if n.withCaller {
		attrs = append(attrs, logger.Caller())
	}

	n.log.LogAttrs(ctx, n.level(version), "Deprecated in "+version+": "+msg, attrs...)
	return true
}

func (n *Notifier) level(version string) slog.Level {
	if n.currentVersion == 0 {
		return slog.LevelWarn
	}
	dep, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return slog.LevelWarn
	}
	if int(dep) < int(n.currentVersion) {
		return slog.LevelError
	}
	return slog.LevelWarn
}
