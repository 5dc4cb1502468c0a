package registry

import (
	"sort"

	"github.com/vk/madrun/internal/config"
)

// Module is the interface that all built-in modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the named callbacks and spec functions for a single
// application instance.
type Registry struct {
	callbacks map[string]config.Callback
	funcs     map[string]config.SpecFunc
}

// New creates and initializes a new Registry instance.
func New(modules ...Module) *Registry {
	r := &Registry{
		callbacks: make(map[string]config.Callback),
		funcs:     make(map[string]config.SpecFunc),
	}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Callback implements config.Resolver.
func (r *Registry) Callback(name string) (config.Callback, bool) {
	cb, ok := r.callbacks[name]
	return cb, ok
}

// Func implements config.Resolver.
func (r *Registry) Func(name string) (config.SpecFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns the sorted names of all registered callbacks and functions.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.callbacks)+len(r.funcs))
	for n := range r.callbacks {
		names = append(names, n)
	}
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
