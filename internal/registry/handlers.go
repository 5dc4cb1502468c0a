package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/madrun/internal/config"
)

// RegisterCallback registers a Go function usable as a step via `{ call = name }`.
func (r *Registry) RegisterCallback(name string, cb config.Callback) {
	if _, exists := r.callbacks[name]; exists {
		panic(fmt.Sprintf("callback with name '%s' already registered", name))
	}
	slog.Debug("Registering callback.", "name", name)
	r.callbacks[name] = cb
}

// RegisterFunc registers a Go function usable as a command via `{ func = name }`.
func (r *Registry) RegisterFunc(name string, fn config.SpecFunc) {
	if _, exists := r.funcs[name]; exists {
		panic(fmt.Sprintf("function with name '%s' already registered", name))
	}
	slog.Debug("Registering spec function.", "name", name)
	r.funcs[name] = fn
}
