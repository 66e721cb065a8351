// Package cache provides the volatile metadata cache used by the engine.
//
// MetadataCache keeps per-entity metadata values in memory for the lifetime of a
// request so repeated lookups do not hit the database. It distinguishes three
// states for a (guid, name) pair:
//
//   - Present: a value is cached
//   - Empty: the metadata is known not to exist
//   - Unknown: nothing is known, the caller must query storage
//
// An entity whose full metadata set was loaded with Populate is "loaded": every
// name missing from the set is reported as Empty instead of Unknown.
//
//	c := cache.NewMetadataCache()
//	c.Populate(42, map[string]any{"location": "Berlin"})
//
//	v, state := c.Load(42, "location") // "Berlin", cache.Present
//	_, state = c.Load(42, "phone")     // nil, cache.Empty
//	_, state = c.Load(7, "phone")      // nil, cache.Unknown
//
// Multi-valued metadata is stored as []any when saved with allowMultiple.
//
// All operations are safe for concurrent use.
package cache
