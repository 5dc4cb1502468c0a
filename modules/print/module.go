package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"github.com/vk/madrun/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnPrint is the `print` callback. It writes the command's positional
// arguments on one line, followed by the step's env as sorted `K = "v"`
// lines.
func OnPrint(ctx context.Context, name string, args argv.Set, c *config.Context) error {
	ctxlog.FromContext(ctx).Debug("Printing input", "command", name)
	w := stdout(c)

	if len(args.Positional) > 0 {
		fmt.Fprintln(w, strings.Join(args.Positional, " "))
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%s = %q\n", k, c.Env[k])
	}
	return nil
}

func stdout(c *config.Context) io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

// Register registers the callback with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCallback("print", OnPrint)
}
