package config

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/shellquote"
)

// Callback is a step implemented in Go. It receives the invoked command name,
// the command's arguments, and the step's context.
type Callback func(ctx context.Context, name string, args argv.Set, c *Context) error

// SpecFunc produces a command spec lazily, once per invocation.
type SpecFunc func(ctx context.Context, args argv.Set, c *Context) (Raw, error)

// Request describes the invocation a Source is asked to configure.
type Request struct {
	Cmd  string
	Args argv.Set
	Ctx  *Context
}

// Source produces the command mapping for one invocation.
type Source func(ctx context.Context, req Request) (Commands, error)

// Static returns a Source that always yields cmds.
func Static(cmds Commands) Source {
	return func(context.Context, Request) (Commands, error) { return cmds, nil }
}

// Resolver looks up Go functions referenced by name from configuration files.
type Resolver interface {
	Callback(name string) (Callback, bool)
	Func(name string) (SpecFunc, bool)
}

// Shell executes commands for callbacks.
type Shell interface {
	// Exec runs a shell script.
	Exec(ctx context.Context, script string, opts Opts) error
	// Spawn runs a program with arguments.
	Spawn(ctx context.Context, name string, args []string, opts Opts) error
}

// Context is what callbacks and spec functions get to work with.
type Context struct {
	// Cwd is the directory holding the configuration file.
	Cwd        string
	ConfigFile string
	// ConfigFiles are the recognized configuration file names.
	ConfigFiles []string

	Env  Env
	Opts Opts

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Shell  Shell

	// FindConfig searches upward from dir, not past stopAt when non-empty,
	// for a configuration file.
	FindConfig func(dir, stopAt string) (string, error)
}

// Quote shell-quotes s.
func (c *Context) Quote(s string) string {
	return shellquote.Quote(s)
}

// ForStep returns a copy of c carrying a step's env and opts.
func (c *Context) ForStep(env Env, opts Opts) *Context {
	cp := *c
	cp.Env = env.Clone()
	cp.Opts = opts.Clone()
	return &cp
}
