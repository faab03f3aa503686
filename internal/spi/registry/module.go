package registry

// Module is what a package contributes to the registry. It is normally
// generated: one per package, describing the services the package declares
// and the providers it implements.
type Module interface {
	// Name identifies the module. It must be a valid Go import path,
	// conventionally the declaring package's path.
	Name() string

	// Services lists the services this module declares.
	Services() []string

	// RequiredServices lists the services this module provides for.
	RequiredServices() []string

	// Providers returns this module's implementations of service, in
	// declaration order. It returns nil for services the module does not
	// provide.
	Providers(service string) []any
}
