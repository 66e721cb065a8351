package container

import (
	"errors"
	"fmt"
	"slices"
)

// Factory builds a service. It may resolve dependencies through c.
type Factory func(c *Container) (any, error)

type entry struct {
	factory   Factory
	instance  any
	resolved  bool
	resolving bool
}

// Container maps keys to lazily built singletons.
type Container struct {
	entries map[string]*entry
}

// New creates an empty container.
func New() *Container {
	return &Container{entries: make(map[string]*entry)}
}

// Register adds a factory for key.
func (c *Container) Register(key string, factory Factory) error {
	if key == "" {
		return ErrInvalidKey
	}
	if factory == nil {
		return fmt.Errorf("%w: %q", ErrNilFactory, key)
	}
	if _, ok := c.entries[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateService, key)
	}
	c.entries[key] = &entry{factory: factory}
	return nil
}

// Instance registers an already constructed value for key.
func (c *Container) Instance(key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, ok := c.entries[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateService, key)
	}
	c.entries[key] = &entry{instance: value, resolved: true}
	return nil
}

// Resolve returns the service for key, building it on first use.
func (c *Container) Resolve(key string) (any, error) {
	e, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, key)
	}
	if e.resolved {
		return e.instance, nil
	}
	if e.resolving {
		return nil, fmt.Errorf("%w: %q", ErrCircularDependency, key)
	}

	e.resolving = true
	defer func() { e.resolving = false }()

	instance, err := e.factory(c)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q", ErrFactoryFailed, key), err)
	}

	e.instance = instance
	e.resolved = true
	return instance, nil
}

// Has reports whether key is registered.
func (c *Container) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Resolved reports whether the service for key has already been built.
func (c *Container) Resolved(key string) bool {
	e, ok := c.entries[key]
	return ok && e.resolved
}

// Keys returns all registered keys in sorted order.
func (c *Container) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get resolves key and asserts the result to T.
func Get[T any](c *Container, key string) (T, error) {
	var zero T
	v, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrServiceType, key, v, zero)
	}
	return typed, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](c *Container, key string) T {
	v, err := Get[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}
