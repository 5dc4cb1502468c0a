package testutil

import (
	"context"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
)

// Resolver resolves callback names from a map. It knows no spec functions.
type Resolver map[string]config.Callback

// Callback implements config.Resolver.
func (r Resolver) Callback(name string) (config.Callback, bool) {
	cb, ok := r[name]
	return cb, ok
}

// Func implements config.Resolver.
func (r Resolver) Func(string) (config.SpecFunc, bool) { return nil, false }

// Noop is a callback that does nothing.
func Noop(context.Context, string, argv.Set, *config.Context) error { return nil }
