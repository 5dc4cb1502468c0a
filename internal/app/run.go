package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/madrun/internal/command"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"github.com/vk/madrun/internal/engine"
	"github.com/vk/madrun/internal/fsutil"
	"github.com/vk/madrun/internal/loader"
	"github.com/vk/madrun/internal/registry"
	"github.com/vk/madrun/internal/shell"
)

// Run executes the invocation described by the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.env.PropagateUserVars(); err != nil {
		return err
	}
	if err := a.env.LoadDotenv(a.config.EnvFiles...); err != nil {
		return err
	}

	name, cmdArgs := a.config.Args.Shift()
	if name == "" {
		return command.ErrMissingName
	}

	configFile, err := a.findConfig()
	if err != nil {
		return err
	}
	dir := a.config.Cwd
	if configFile != "" {
		dir = filepath.Dir(configFile)
	}

	a.tracer.Line("cwd", dir)
	a.tracer.Line("configFile", traceConfigFile(configFile))
	a.tracer.Line("args", a.config.Args)
	a.tracer.Line("cmdName", name)
	a.tracer.Line("cmdArgs", cmdArgs)

	runner := shell.NewRunner(dir, a.env)
	runner.Stdout = a.config.Stdout
	runner.Stderr = a.config.Stderr

	base := &config.Context{
		Cwd:         dir,
		ConfigFile:  configFile,
		ConfigFiles: loader.ConfigFiles,
		Env:         config.Env{},
		Opts:        config.Opts{},
		Stdout:      a.config.Stdout,
		Stderr:      a.config.Stderr,
		Logger:      a.logger,
		Shell:       runner,
		FindConfig:  loader.Find,
	}

	cmds, err := a.loadCommands(ctx, configFile, config.Request{Cmd: name, Args: cmdArgs, Ctx: base})
	if err != nil {
		return err
	}
	if err := registry.Validate(cmds); err != nil {
		a.logger.Warn("Some configured commands are invalid and will fail if run.", "error", err)
	}

	driver := engine.New(cmds, base, a.env, a.tracer)
	if err := driver.Run(ctx, name, cmdArgs); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// findConfig returns the nearest configuration file, or "" when there is
// none or the configuration comes from a Source.
func (a *App) findConfig() (string, error) {
	if a.config.Source != nil {
		return "", nil
	}
	path, err := loader.Find(a.config.Cwd, "")
	if errors.Is(err, fsutil.ErrNotFound) {
		a.logger.Debug("No config file found, using built-in defaults.", "cwd", a.config.Cwd)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to search for config file: %w", err)
	}
	return path, nil
}

// traceConfigFile names the built-in configuration "default" in the trace.
func traceConfigFile(path string) string {
	if path == "" {
		return "default"
	}
	return path
}

func (a *App) loadCommands(ctx context.Context, configFile string, req config.Request) (config.Commands, error) {
	switch {
	case a.config.Source != nil:
		cmds, err := a.config.Source(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("config source failed: %w", err)
		}
		if cmds == nil {
			return nil, errors.New("config source returned no commands")
		}
		return cmds, nil
	case configFile == "":
		return loader.Defaults(a.registry), nil
	}

	cmds, err := loader.Load(ctx, configFile, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded.", "file", configFile, "commands", len(cmds))
	return cmds, nil
}
