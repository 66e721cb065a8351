package hooks

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/engine/core/logger"
)

const (
	// All matches any hook name or type.
	All = "all"
	// DefaultPriority is used by plugins that do not care about ordering.
	DefaultPriority = 500
)

// Event describes one handler invocation.
type Event struct {
	Hook   string
	Type   string
	Params map[string]any
	// Value is the return value accumulated so far.
	Value any
}

// HandlerFunc handles a hook. Returning ok=false keeps the current value.
type HandlerFunc func(ctx context.Context, e Event) (value any, ok bool)

// HandlerID identifies a registration for Unregister.
type HandlerID uint64

type registration struct {
	id       HandlerID
	hook     string
	typ      string
	priority int
	fn       HandlerFunc
}

// Service stores hook handlers and triggers them.
type Service struct {
	mu       sync.RWMutex
	handlers map[string]map[string][]registration
	nextID   HandlerID
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug traces of triggered hooks.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty hook service.
func New(opts ...Option) *Service {
	s := &Service{
		handlers: make(map[string]map[string][]registration),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a handler for hook/typ. Either may be All.
func (s *Service) Register(hook, typ string, fn HandlerFunc, priority int) (HandlerID, error) {
	if hook == "" || typ == "" {
		return 0, ErrInvalidHook
	}
	if fn == nil {
		return 0, ErrNilHandler
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	reg := registration{id: s.nextID, hook: hook, typ: typ, priority: priority, fn: fn}

	byType, ok := s.handlers[hook]
	if !ok {
		byType = make(map[string][]registration)
		s.handlers[hook] = byType
	}
	byType[typ] = append(byType[typ], reg)

	return reg.id, nil
}

// Unregister removes a handler and reports whether it was registered.
func (s *Service) Unregister(id HandlerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hook, byType := range s.handlers {
		for typ, regs := range byType {
			idx := slices.IndexFunc(regs, func(r registration) bool { return r.id == id })
			if idx < 0 {
				continue
			}
			regs = slices.Delete(regs, idx, idx+1)
			if len(regs) == 0 {
				delete(byType, typ)
			} else {
				byType[typ] = regs
			}
			if len(byType) == 0 {
				delete(s.handlers, hook)
			}
			return true
		}
	}
	return false
}

// Has reports whether any handler is registered for exactly hook/typ.
func (s *Service) Has(hook, typ string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers[hook][typ]) > 0
}

// Trigger runs every handler matching hook/typ, including wildcard registrations,
// and returns the final value. With no handlers it returns returnValue unchanged.
func (s *Service) Trigger(ctx context.Context, hook, typ string, params map[string]any, returnValue any) any {
	if ctx == nil {
		ctx = context.Background()
	}

	regs := s.ordered(hook, typ)
	if len(regs) == 0 {
		return returnValue
	}

	value := returnValue
	for _, reg := range regs {
		if v, ok := reg.fn(ctx, Event{Hook: hook, Type: typ, Params: params, Value: value}); ok {
			value = v
		}
	}

	s.logger.DebugContext(ctx, "hook triggered",
		logger.Hook(hook, typ),
		logger.Count("handlers", len(regs)),
	)

	return value
}

// ordered snapshots matching registrations sorted by priority, then registration order.
func (s *Service) ordered(hook, typ string) []registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []registration
	for _, h := range uniq(hook, All) {
		byType := s.handlers[h]
		for _, t := range uniq(typ, All) {
			out = append(out, byType[t]...)
		}
	}

	slices.SortStableFunc(out, func(a, b registration) int {
		if a.priority != b.priority {
			return a.priority - b.priority
		}
		return int(a.id) - int(b.id)
	})
	return out
}

func uniq(name, wildcard string) []string {
	if name == wildcard {
		return []string{name}
	}
	return []string{name, wildcard}
}
