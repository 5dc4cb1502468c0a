package app

import (
	"fmt"
	"io"
	"os"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Cwd is where the configuration file search starts.
	Cwd string
	// Args is the parsed invocation; the first positional value is the
	// command name.
	Args argv.Set

	Debug     bool
	LogFormat string
	LogLevel  string
	// EnvFiles are dotenv files loaded before the command resolves.
	EnvFiles []string

	// Source, when set, replaces the configuration file search.
	Source config.Source

	Stdout io.Writer
	Stderr io.Writer
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "warn"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		cfg.Cwd = wd
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &cfg, nil
}
