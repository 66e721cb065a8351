package autoload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/engine/core/logger"
)

// DefaultCacheKey is the storage key used by SaveCache and LoadCache.
const DefaultCacheKey = "autoload:component_map"

// CacheStorage persists the component map. Get returns nil data and nil error on a miss.
type CacheStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Manager resolves component names to files.
type Manager struct {
	mu         sync.RWMutex
	components map[string]string
	extensions []string
	altered    bool

	storage  CacheStorage
	cacheKey string
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithExtensions replaces the file extensions picked up by AddDir.
func WithExtensions(exts ...string) Option {
	return func(m *Manager) {
		m.extensions = m.extensions[:0]
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			m.extensions = append(m.extensions, strings.ToLower(ext))
		}
	}
}

// WithStorage sets the persistence backend for the component map.
func WithStorage(s CacheStorage) Option {
	return func(m *Manager) {
		m.storage = s
	}
}

// WithCacheKey overrides DefaultCacheKey.
func WithCacheKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.cacheKey = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates an empty Manager. By default .tmpl and .html files are indexed.
func New(opts ...Option) *Manager {
	m := &Manager{
		components: make(map[string]string),
		extensions: []string{".tmpl", ".html"},
		cacheKey:   DefaultCacheKey,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddDir walks dir and registers every file with a known extension.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	found := make(map[string]string)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(m.extensions, ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		found[name] = path
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	m.mu.Lock()
	for name, path := range found {
		m.components[name] = path
	}
	if len(found) > 0 {
		m.altered = true
	}
	m.mu.Unlock()

	m.logger.Debug("component directory indexed",
		logger.Component("autoload"),
		logger.Key("dir", dir),
		logger.Count("components", len(found)),
	)
	return nil
}

// Register maps name to path, replacing any previous mapping.
func (m *Manager) Register(name, path string) error {
	if name == "" || path == "" {
		return ErrInvalidName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.components[name] != path {
		m.components[name] = path
		m.altered = true
	}
	return nil
}

// Lookup returns the file registered for name.
func (m *Manager) Lookup(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	path, ok := m.components[name]
	return path, ok
}

// Names returns all registered component names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.components))
	for name := range m.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Altered reports whether the map changed since the last LoadCache or SaveCache.
func (m *Manager) Altered() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.altered
}

// LoadCache merges the persisted map into the manager and reports whether a cache
// entry was found.
func (m *Manager) LoadCache(ctx context.Context) (bool, error) {
	if m.storage == nil {
		return false, ErrNoStorage
	}

	data, err := m.storage.Get(ctx, m.cacheKey)
	if err != nil {
		return false, fmt.Errorf("load component cache: %w", err)
	}
	if data == nil {
		return false, nil
	}

	var cached map[string]string
	if err := json.Unmarshal(data, &cached); err != nil {
		return false, errors.Join(ErrCacheCorrupted, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, path := range cached {
		m.components[name] = path
	}
	m.altered = false
	return true, nil
}

// SaveCache persists the map if it was altered.
func (m *Manager) SaveCache(ctx context.Context) error {
	if m.storage == nil {
		return ErrNoStorage
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.altered {
		return nil
	}

	data, err := json.Marshal(m.components)
	if err != nil {
		return fmt.Errorf("encode component cache: %w", err)
	}
	if err := m.storage.Set(ctx, m.cacheKey, data); err != nil {
		return fmt.Errorf("save component cache: %w", err)
	}
	m.altered = false
	return nil
}
