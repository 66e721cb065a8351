package container

import "errors"

var (
	// ErrServiceNotFound is returned when resolving an unregistered key.
	ErrServiceNotFound = errors.New("service not found")
	// ErrDuplicateService is returned when registering a key twice.
	ErrDuplicateService = errors.New("service already registered")
	// ErrServiceType is returned by Get when the service has a different type.
	ErrServiceType = errors.New("service has unexpected type")
	// ErrCircularDependency is returned when a factory needs its own key.
	ErrCircularDependency = errors.New("circular service dependency")
	// ErrInvalidKey is returned when registering with an empty key.
	ErrInvalidKey = errors.New("service key is required")
	// ErrNilFactory is returned when registering a nil factory.
	ErrNilFactory = errors.New("service factory is nil")
	// ErrFactoryFailed wraps errors returned by factories.
	ErrFactoryFailed = errors.New("service construction failed")
)
