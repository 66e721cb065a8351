// Package autoload maintains the component map: logical component names resolved
// to files contributed by the core and by plugins.
//
// Directories are scanned once with AddDir. Every file with a registered extension
// becomes available under its path relative to the directory, without the extension,
// using forward slashes:
//
//	<dir>/forms/login.tmpl -> "forms/login"
//
// Later registrations override earlier ones, so plugins added after the core win.
// Scanning is comparatively expensive, so the map can be persisted with SaveCache
// and restored on the next boot with LoadCache through any CacheStorage
// (the redis integration ships one).
//
//	m := autoload.New(autoload.WithStorage(kv))
//	if ok, _ := m.LoadCache(ctx); !ok {
//		_ = m.AddDir("views")
//		_ = m.SaveCache(ctx)
//	}
//	path, ok := m.Lookup("forms/login")
package autoload
