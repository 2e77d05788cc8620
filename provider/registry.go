package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages named provider factories and memoized instances.
type Registry[T Provider] struct {
	mu        sync.Mutex
	factories map[string]Factory[T]
	loads     map[string]*load[T]
}

// load tracks a single in-flight or completed provider creation.
type load[T Provider] struct {
	once  sync.Once
	ready chan struct{}
	inst  T
	err   error
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		loads:     make(map[string]*load[T]),
	}
}

// RegisterFactory registers a named factory for creating providers.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Acquire returns the provider instance for name, creating it on first
// use. Concurrent callers for the same name block on the single in-flight
// factory call; a failed load is memoized and returned to all callers.
func (r *Registry[T]) Acquire(name string, cfg map[string]any) (T, error) {
	r.mu.Lock()
	factory, ok := r.factories[name]
	if !ok {
		r.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("provider factory %q not registered", name)
	}
	ld, ok := r.loads[name]
	if !ok {
		ld = &load[T]{ready: make(chan struct{})}
		r.loads[name] = ld
	}
	r.mu.Unlock()

	ld.once.Do(func() {
		ld.inst, ld.err = factory(cfg)
		close(ld.ready)
	})
	<-ld.ready
	return ld.inst, ld.err
}

// Get returns an already-created provider instance by name. It never
// blocks: an in-flight or failed load reports as absent.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.Lock()
	ld, ok := r.loads[name]
	r.mu.Unlock()

	var zero T
	if !ok {
		return zero, false
	}
	select {
	case <-ld.ready:
		if ld.err != nil {
			return zero, false
		}
		return ld.inst, true
	default:
		return zero, false
	}
}

// List returns sorted names of all registered factories.
func (r *Registry[T]) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
