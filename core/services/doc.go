// Package services is the application's service provider: a lazy registry of the
// shared components a request needs.
//
// Keys and the types they resolve to:
//
//	metadataCache    *cache.MetadataCache
//	autoloadManager  *autoload.Manager
//	db               *pg.DB
//	hooks            *hooks.Service
//	logger           *slog.Logger
//	deprecation      *deprecation.Notifier
//
// Nothing is built until first access, and every later access returns the same
// instance. A Provider is not safe for concurrent use.
//
//	p := services.New(autoloader, services.WithLogger(log), services.WithDBConfig(dbCfg))
//	p.Hooks().Register("session:get", hooks.All, handler, hooks.DefaultPriority)
//	sess := session.New(storage,
//		session.WithHookTrigger(p.Hooks()),
//		session.WithDeprecationNotifier(p.Deprecation()),
//	)
package services
