package registry

import (
	"fmt"
	"slices"
)

// Loader is the immutable aggregate of a registry's modules.
type Loader struct {
	modules []Module

	// declared holds every service some module declares.
	declared map[string]struct{}

	// providersOf maps a service to the modules providing it, in
	// registration order.
	providersOf map[string][]Module
}

// newLoader indexes modules. It calls Services and RequiredServices once
// per module.
func newLoader(modules []Module) *Loader {
	l := &Loader{
		modules:     slices.Clone(modules),
		declared:    make(map[string]struct{}),
		providersOf: make(map[string][]Module),
	}
	for _, m := range l.modules {
		for _, s := range m.Services() {
			l.declared[s] = struct{}{}
		}
		for _, s := range m.RequiredServices() {
			l.providersOf[s] = append(l.providersOf[s], m)
		}
	}
	return l
}

// Modules returns a copy of the aggregated modules in registration order.
func (l *Loader) Modules() []Module {
	return slices.Clone(l.modules)
}

// Providers returns every provider of service across all modules, grouped
// by module in registration order.
//
// A service that is declared but has no providers yields an empty slice and
// no error. ErrUnknownService is returned only when no module declares or
// provides the service.
func (l *Loader) Providers(service string) ([]any, error) {
	mods, provided := l.providersOf[service]
	if _, declared := l.declared[service]; !declared && !provided {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, service)
	}

	var out []any
	for _, m := range mods {
		out = append(out, m.Providers(service)...)
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// Declared reports whether some module declares service.
func (l *Loader) Declared(service string) bool {
	_, ok := l.declared[service]
	return ok
}

// Unresolved returns, sorted, the services that have providers but that no
// registered module declares. This usually means a module was not linked in.
func (l *Loader) Unresolved() []string {
	var out []string
	for s := range l.providersOf {
		if _, ok := l.declared[s]; !ok {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}
