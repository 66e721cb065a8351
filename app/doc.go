// Package app is the composition root of the engine.
//
// New loads Config from the environment, builds the logger and the service
// provider, indexes components with the autoload manager and selects the session
// SaveHandler named by SESSION_DRIVER (memory, redis or pg). Handler exposes a chi
// router with health checks, Prometheus metrics and session endpoints; Run serves
// it and periodically collects expired sessions.
package app
