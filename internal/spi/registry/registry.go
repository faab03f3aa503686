package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/mod/module"

	"github.com/whyoleg/sweet-spi/internal/spi/locking"
)

// Registry is an initialize-once container of modules.
//
// Thread Safety: All methods are safe for concurrent use.
type Registry struct {
	mu     sync.Locker
	logger *slog.Logger

	// initialized flips to true after loader is set, under mu.
	initialized atomic.Bool
	loader      *Loader

	// Guarded by mu until initialized.
	modules []Module
	names   map[string]struct{}
}

// Option configures a Registry.
type Option func(*Registry)

// WithLocker sets the lock guarding registration and initialization.
func WithLocker(l sync.Locker) Option {
	return func(r *Registry) {
		r.mu = l
	}
}

// WithLogger sets the logger for registration and initialization events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry.
//
// Defaults: adaptive locking.Lock on the shared node pool, discarding logger.
func New(opts ...Option) *Registry {
	r := &Registry{
		names: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.mu == nil {
		r.mu = locking.New()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Register adds m to the registry.
//
// Returns:
//   - ErrInvalidModule (wrapped) if m is nil or its name is not a valid import path
//   - ErrDuplicateModule (wrapped) if a module with the same name is registered
//   - ErrAlreadyInitialized if the registry has already been read
func (r *Registry) Register(m Module) error {
	if m == nil {
		return fmt.Errorf("%w: nil module", ErrInvalidModule)
	}
	name := m.Name()
	if err := module.CheckImportPath(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidModule, err)
	}

	err := locking.Do(r.mu, func() error {
		if r.initialized.Load() {
			return ErrAlreadyInitialized
		}
		if _, dup := r.names[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateModule, name)
		}
		r.names[name] = struct{}{}
		r.modules = append(r.modules, m)
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("module registered", "module", name)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// generated init functions, where a failure means the program is wired
// incorrectly.
func (r *Registry) MustRegister(m Module) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Initialized reports whether the registry has been read.
func (r *Registry) Initialized() bool {
	return r.initialized.Load()
}

// Loader returns the aggregated view of all registered modules, building it
// on the first call. Concurrent first callers block until it is built; it is
// built exactly once.
func (r *Registry) Loader() *Loader {
	if r.initialized.Load() {
		return r.loader
	}

	loader, _ := locking.WithLock(r.mu, func() (*Loader, error) {
		if r.initialized.Load() {
			return r.loader, nil
		}
		r.loader = newLoader(r.modules)
		r.initialized.Store(true)
		r.logUnresolved(r.loader)
		return r.loader, nil
	})
	return loader
}

// Modules returns the registered modules in registration order. Like
// Loader, it initializes the registry.
func (r *Registry) Modules() []Module {
	return r.Loader().Modules()
}

func (r *Registry) logUnresolved(l *Loader) {
	r.logger.Debug("registry initialized", "modules", len(l.modules), "services", len(l.declared))
	for _, service := range l.Unresolved() {
		r.logger.Warn("service has providers but no declaring module", "service", service)
	}
}
