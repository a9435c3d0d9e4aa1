package extr

import (
	"slices"
	"strings"
	"sync"
)

// Registry maps the extension keys to the adapters that own them.
// It is safe for concurrent use.
type Registry struct {
	adapters map[string]Adapter
	mu       sync.RWMutex
}

// NewRegistry returns a registry populated with the extensions of every adapter.
// When two adapters declare the same extension, the later adapter owns it.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{
		adapters: make(map[string]Adapter),
	}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds every extension of the adapter to the registry.
// The extensions are lowercased and any existing owner of an extension is replaced.
// A nil adapter or an empty extension is ignored.
func (r *Registry) Register(a Adapter) {
	if a == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range a.Extensions() {
		key := strings.ToLower(strings.TrimPrefix(ext, "."))
		if key == "" {
			continue
		}
		r.adapters[key] = a
	}
}

// Get returns the adapter that owns the extension key.
// The key is case-insensitive.
func (r *Registry) Get(key string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[strings.ToLower(key)]
	return a, ok
}

// Lookup returns the adapter for the named file and the extension key it was found with.
// The compound tar key of the name has precedence over its last component.
func (r *Registry) Lookup(name string) (Adapter, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range keys(name) {
		if a, ok := r.adapters[key]; ok {
			return a, key, true
		}
	}
	return nil, "", false
}

// Keys returns the registered extension keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.adapters))
	for key := range r.adapters {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of registered extension keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.adapters)
}
