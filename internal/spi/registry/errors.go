package registry

import "errors"

var (
	// ErrAlreadyInitialized is returned by Register after the registry was read.
	ErrAlreadyInitialized = errors.New("registry: already initialized, no more modules can be registered")

	// ErrDuplicateModule is returned when a module name is registered twice.
	ErrDuplicateModule = errors.New("registry: duplicate module")

	// ErrInvalidModule is returned for nil modules and malformed module names.
	ErrInvalidModule = errors.New("registry: invalid module")

	// ErrUnknownService is returned when no registered module declares or
	// provides the requested service.
	ErrUnknownService = errors.New("registry: unknown service")
)
