package app

import (
	"io"
	"log/slog"

	"github.com/vk/madrun/internal/envtable"
	"github.com/vk/madrun/internal/registry"
	"github.com/vk/madrun/internal/trace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config   *Config
	logger   *slog.Logger
	registry *registry.Registry
	env      *envtable.Table
	tracer   *trace.Tracer
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Without modules, the built-in ones are registered.
func NewApp(logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "names", reg.Names())

	var tracer *trace.Tracer
	if cfg.Debug {
		tracer = trace.New(cfg.Stderr)
	}

	return &App{
		config:   cfg,
		logger:   logger,
		registry: reg,
		env:      envtable.Process(),
		tracer:   tracer,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
