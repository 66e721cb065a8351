package session

import (
	"context"
	"maps"
	"sync"
	"time"
)

type memoryRecord struct {
	data      map[string]any
	updatedAt time.Time
	expiresAt time.Time
}

// MemoryHandler is an in-process SaveHandler. Data does not survive a restart.
type MemoryHandler struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time
}

// NewMemoryHandler creates an empty MemoryHandler.
func NewMemoryHandler() *MemoryHandler {
	return &MemoryHandler{
		records: make(map[string]memoryRecord),
		now:     time.Now,
	}
}

// Read returns a copy of the data stored for id.
func (h *MemoryHandler) Read(_ context.Context, id string) (map[string]any, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	h.mu.RLock()
	rec, ok := h.records[id]
	h.mu.RUnlock()

	if !ok || h.expired(rec) {
		return nil, ErrNotFound
	}
	return maps.Clone(rec.data), nil
}

// Write stores a copy of data for id.
func (h *MemoryHandler) Write(_ context.Context, id string, data map[string]any, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidID
	}

	now := h.now()
	rec := memoryRecord{data: maps.Clone(data), updatedAt: now}
	if ttl > 0 {
		rec.expiresAt = now.Add(ttl)
	}

	h.mu.Lock()
	h.records[id] = rec
	h.mu.Unlock()
	return nil
}

// Destroy removes id.
func (h *MemoryHandler) Destroy(_ context.Context, id string) error {
	h.mu.Lock()
	delete(h.records, id)
	h.mu.Unlock()
	return nil
}

// GC removes expired records and records idle for longer than maxLifetime.
func (h *MemoryHandler) GC(_ context.Context, maxLifetime time.Duration) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-maxLifetime)
	var removed int64
	for id, rec := range h.records {
		if h.expired(rec) || (maxLifetime > 0 && rec.updatedAt.Before(cutoff)) {
			delete(h.records, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, including expired ones not yet collected.
func (h *MemoryHandler) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

func (h *MemoryHandler) expired(rec memoryRecord) bool {
	return !rec.expiresAt.IsZero() && h.now().After(rec.expiresAt)
}
