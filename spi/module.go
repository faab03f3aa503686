package spi

// Provider produces one provider instance. It is called on every Load, so a
// Provider that constructs a value yields a fresh instance each time; wrap an
// existing value with Instance to share it.
type Provider func() any

// Instance returns a Provider that always yields v.
func Instance(v any) Provider {
	return func() any { return v }
}

// StaticModule is a Module assembled from plain data. It is what generated
// registration code builds, and it is equally usable by hand.
type StaticModule struct {
	// ModuleName must be a valid Go import path.
	ModuleName string

	// Declares lists the services this module declares.
	Declares []string

	// Provides maps a service name to its providers, in order.
	Provides map[string][]Provider
}

var _ Module = (*StaticModule)(nil)

// Name implements Module.
func (m *StaticModule) Name() string {
	return m.ModuleName
}

// Services implements Module.
func (m *StaticModule) Services() []string {
	return m.Declares
}

// RequiredServices implements Module. Order is unspecified; aggregation
// does not depend on it.
func (m *StaticModule) RequiredServices() []string {
	out := make([]string, 0, len(m.Provides))
	for s := range m.Provides {
		out = append(out, s)
	}
	return out
}

// Providers implements Module.
func (m *StaticModule) Providers(service string) []any {
	ps := m.Provides[service]
	if len(ps) == 0 {
		return nil
	}
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p()
	}
	return out
}
