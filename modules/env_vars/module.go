package env_vars

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnEnv is the `env` callback. It prints the process environment as sorted
// KEY=VALUE lines, restricted to the names given as positional arguments when
// there are any. Variables set by earlier steps are included.
func OnEnv(ctx context.Context, name string, args argv.Set, c *config.Context) error {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}

	keys := args.Positional
	if len(keys) == 0 {
		keys = make([]string, 0, len(envMap))
		for k := range envMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	for _, k := range keys {
		if v, ok := envMap[k]; ok {
			fmt.Fprintf(w, "%s=%s\n", k, v)
		}
	}
	return nil
}

// Register registers the callback with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCallback("env", OnEnv)
}
