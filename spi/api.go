package spi

import (
	"fmt"

	"github.com/whyoleg/sweet-spi/internal/spi/registry"
)

// Module describes the services a package declares and the providers it
// implements. See StaticModule for a ready-made implementation.
type Module = registry.Module

// Errors returned by Register and Load. Use errors.Is to match them.
var (
	ErrAlreadyInitialized = registry.ErrAlreadyInitialized
	ErrDuplicateModule    = registry.ErrDuplicateModule
	ErrInvalidModule      = registry.ErrInvalidModule
	ErrUnknownService     = registry.ErrUnknownService
)

// defaultRegistry backs the package-level functions.
var defaultRegistry = registry.New()

// Service is a typed handle to a service interface T.
//
// The name is the service's identity across modules; by convention it is the
// declaring package path followed by the type name, e.g.
// "example.com/greet.Greeter".
type Service[T any] struct {
	name string
}

// NewService returns the handle for the service named name.
func NewService[T any](name string) Service[T] {
	return Service[T]{name: name}
}

// Name returns the service name.
func (s Service[T]) Name() string {
	return s.name
}

// String implements fmt.Stringer.
func (s Service[T]) String() string {
	return s.name
}

// ProviderTypeError reports a provider registered for a service that does
// not implement the service's type.
type ProviderTypeError struct {
	Service  string // Service name.
	Index    int    // Position of the provider in the load result.
	Provider any    // The offending value.
}

// Error implements the error interface.
func (e *ProviderTypeError) Error() string {
	return fmt.Sprintf("spi: provider #%d of %s has type %T which does not implement the service", e.Index, e.Service, e.Provider)
}

// Register adds m to the process-wide registry.
//
// It fails once any service has been loaded.
func Register(m Module) error {
	return defaultRegistry.Register(m)
}

// MustRegister is like Register but panics on error. Use it from init
// functions.
func MustRegister(m Module) {
	defaultRegistry.MustRegister(m)
}

// Load returns every provider of svc across registered modules, in module
// registration order.
//
// The first call freezes the registry. It returns ErrUnknownService if no
// module declares or provides svc, and *ProviderTypeError if a provider does
// not implement T.
func Load[T any](svc Service[T]) ([]T, error) {
	return load(defaultRegistry, svc)
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](svc Service[T]) []T {
	out, err := Load(svc)
	if err != nil {
		panic(err)
	}
	return out
}

// Modules returns the registered modules. Like Load, it freezes the registry.
func Modules() []Module {
	return defaultRegistry.Modules()
}

func load[T any](r *registry.Registry, svc Service[T]) ([]T, error) {
	raw, err := r.Loader().Providers(svc.name)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for i, p := range raw {
		v, ok := p.(T)
		if !ok {
			return nil, &ProviderTypeError{Service: svc.name, Index: i, Provider: p}
		}
		out = append(out, v)
	}
	return out, nil
}
