// Package logger provides structured logging utilities built on Go's standard slog package.
// It offers environment-specific configurations, context-aware attribute extraction
// and a set of pre-built attributes used across the engine (sessions, services,
// hooks, deprecation notices).
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/engine/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("engine"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("engine"))
//
//	log.Info("service constructed",
//		logger.Component("services"),
//		logger.Service("db"),
//	)
//
// # Configuration
//
// Config can be loaded from the environment with the config package:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// # Context-Aware Logging
//
// Attributes can be extracted from the context automatically:
//
//	log := logger.New(
//		logger.WithProduction("engine"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "session started")
//
// Custom extractors receive the context and return an attribute plus a flag:
//
//	func userExtractor(ctx context.Context) (slog.Attr, bool) {
//		if guid, ok := ctx.Value(userKey{}).(int64); ok {
//			return slog.Int64("user_guid", guid), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.WithContextExtractors(userExtractor))
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil input, which slog drops, so calls like
// log.Error("msg", logger.Error(err)) need no nil checks.
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("test", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
