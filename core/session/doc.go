// Package session provides a storage-agnostic session façade.
//
// Session wraps a Storage and exposes attribute access (Get, Set, Has, Remove),
// lifecycle control (Start, Migrate, Invalidate, Save) and an anti-forgery token
// that is created on Start and rotated by Invalidate.
//
//	handler := session.NewMemoryHandler()
//	sess := session.New(session.NewHandlerStorage(handler, session.WithTTL(time.Hour)))
//
//	if err := sess.Start(ctx); err != nil {
//		return err
//	}
//	sess.Set("cart", []int{1, 2, 3})
//
//	// after login
//	if err := sess.Migrate(ctx, true); err != nil {
//		return err
//	}
//	return sess.Save(ctx)
//
// HandlerStorage delegates persistence to a SaveHandler. MemoryHandler ships with
// this package; Redis and PostgreSQL handlers live under integration/sessionstore.
// Those encode attributes as JSON, so numbers read back as float64 and structs as
// map[string]any. MemoryHandler returns values as written.
//
// # Deprecated accessors
//
// OffsetGet, OffsetSet, OffsetUnset, OffsetExists, IsSet and Del are kept for old
// call sites. They emit a deprecation notice through the configured Notifier and,
// except Del, operate on a separate RawStore rather than the Storage.
package session
