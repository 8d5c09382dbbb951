package devservice

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a provider for one launch.
type Factory func(env Environment) Provider

// Registry maps database kinds to provider factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// NormalizeKind lowercases and trims a database kind.
func NormalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

// Register adds a factory for kind. Registering a kind twice is an error.
func (r *Registry) Register(kind string, factory Factory) error {
	kind = NormalizeKind(kind)
	if kind == "" {
		return fmt.Errorf("%w: empty database kind", ErrInvalidConfig)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for %s", ErrInvalidConfig, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("provider already registered for %s", kind)
	}
	r.factories[kind] = factory
	return nil
}

// Lookup returns the factory registered for kind.
func (r *Registry) Lookup(kind string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[NormalizeKind(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownKind, kind, strings.Join(r.kindsLocked(), ", "))
	}
	return factory, nil
}

// Provider builds the provider registered for kind.
func (r *Registry) Provider(kind string, env Environment) (Provider, error) {
	factory, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return factory(env), nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kindsLocked()
}

func (r *Registry) kindsLocked() []string {
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
