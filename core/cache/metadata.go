package cache

import (
	"slices"
	"sync"
)

// Presence describes what the cache knows about a metadata name.
type Presence int

const (
	// Unknown means the cache holds no information.
	Unknown Presence = iota
	// Empty means the metadata is known not to exist.
	Empty
	// Present means a value is cached.
	Present
)

// String returns a readable representation of p.
func (p Presence) String() string {
	switch p {
	case Empty:
		return "empty"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// entry is a cached metadata value or, with empty set, a known-empty marker.
type entry struct {
	value any
	empty bool
}

// MetadataCache is a request-scoped cache of entity metadata keyed by entity GUID.
type MetadataCache struct {
	mu     sync.RWMutex
	values map[int64]map[string]entry
	loaded map[int64]bool
}

// NewMetadataCache creates an empty cache.
func NewMetadataCache() *MetadataCache {
	return &MetadataCache{
		values: make(map[int64]map[string]entry),
		loaded: make(map[int64]bool),
	}
}

// Save caches value for guid/name. With allowMultiple the value is appended to a
// known value. Appending to an unknown value is not possible without querying
// storage, so in that case the name stays unknown.
func (c *MetadataCache) Save(guid int64, name string, value any, allowMultiple bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if allowMultiple {
		prev, ok := c.values[guid][name]
		switch {
		case ok && !prev.empty:
			value = appendValue(prev.value, value)
		case ok, c.loaded[guid]:
			// known empty, the value becomes the first one
		default:
			return
		}
	}

	c.entity(guid)[name] = entry{value: value}
}

// Load returns the cached value for guid/name and what the cache knows about it.
func (c *MetadataCache) Load(guid int64, name string) (any, Presence) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if e, ok := c.values[guid][name]; ok {
		if e.empty {
			return nil, Empty
		}
		return e.value, Present
	}
	if c.loaded[guid] {
		return nil, Empty
	}
	return nil, Unknown
}

// IsKnown reports whether Load would return Present or Empty.
func (c *MetadataCache) IsKnown(guid int64, name string) bool {
	_, p := c.Load(guid, name)
	return p != Unknown
}

// MarkEmpty records that guid has no metadata called name.
func (c *MetadataCache) MarkEmpty(guid int64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entity(guid)[name] = entry{empty: true}
}

// MarkUnknown forgets guid/name. The entity is no longer considered fully loaded.
func (c *MetadataCache) MarkUnknown(guid int64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.loaded, guid)
	if byName, ok := c.values[guid]; ok {
		delete(byName, name)
		if len(byName) == 0 {
			delete(c.values, guid)
		}
	}
}

// IsLoaded reports whether the full metadata set of guid is cached.
func (c *MetadataCache) IsLoaded(guid int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded[guid]
}

// Populate replaces the cached metadata of guid with values and marks it loaded.
func (c *MetadataCache) Populate(guid int64, values map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byName := make(map[string]entry, len(values))
	for name, v := range values {
		byName[name] = entry{value: v}
	}
	c.values[guid] = byName
	c.loaded[guid] = true
}

// Clear forgets everything about guid.
func (c *MetadataCache) Clear(guid int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, guid)
	delete(c.loaded, guid)
}

// Invalidate clears every listed entity.
func (c *MetadataCache) Invalidate(guids ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, guid := range guids {
		delete(c.values, guid)
		delete(c.loaded, guid)
	}
}

// ClearAll empties the cache.
func (c *MetadataCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.values)
	clear(c.loaded)
}

// Len returns the number of entities with cached state.
func (c *MetadataCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

func (c *MetadataCache) entity(guid int64) map[string]entry {
	byName, ok := c.values[guid]
	if !ok {
		byName = make(map[string]entry)
		c.values[guid] = byName
	}
	return byName
}

func appendValue(prev, v any) any {
	switch p := prev.(type) {
	case []any:
		return append(slices.Clip(p), v)
	default:
		return []any{p, v}
	}
}
