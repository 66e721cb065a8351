// Package container implements a registry of lazily constructed, memoized services.
//
// Every service is registered under a string key with a factory. The factory runs on
// the first Resolve of its key; the result is cached and every later Resolve returns
// the very same value for the lifetime of the container. Nothing is constructed at
// registration time, so services with side effects (opening a database pool, reading
// files) cost nothing until used.
//
//	c := container.New()
//	_ = c.Register("hooks", func(*container.Container) (any, error) {
//		return hooks.New(), nil
//	})
//
//	svc, err := container.Get[*hooks.Service](c, "hooks")
//
// Factories may resolve other keys through the container they receive. A factory
// that resolves its own key, directly or through other services, fails with
// ErrCircularDependency instead of recursing forever. A factory error is returned
// to the caller and not cached, so the next Resolve retries.
//
// Unknown keys fail with ErrServiceNotFound. This always indicates a programming
// or configuration mistake and is never silently defaulted.
//
// A Container is not safe for concurrent use. Create one per request (or guard it
// externally) when serving requests concurrently.
package container
