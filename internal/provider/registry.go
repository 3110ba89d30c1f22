package provider

import (
	"fmt"
	"sync"
)

// Registry holds the adapter for each provider alias. Registration happens
// at wiring time; lookups are concurrent-safe.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register binds an adapter to a provider alias, replacing any previous
// registration under the same alias.
func (r *Registry) Register(alias string, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[alias] = adapter
}

// Get returns the adapter registered for the alias.
// Returns ErrAdapterNotRegistered if the alias is unknown.
func (r *Registry) Get(alias string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAdapterNotRegistered, alias)
	}
	return adapter, nil
}
