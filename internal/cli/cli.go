package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/madrun/internal/app"
	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/engine"
)

// Version is set at build time.
var Version = "dev"

var (
	helpFlags      = []string{"madrun-help", "madrunHelp"}
	versionFlags   = []string{"madrun-version", "madrunVersion"}
	debugFlags     = []string{"madrun-debug", "madrunDebug"}
	logLevelFlags  = []string{"madrun-log-level", "madrunLogLevel"}
	logFormatFlags = []string{"madrun-log-format", "madrunLogFormat"}
	envFileFlags   = []string{"madrun-env-file", "madrunEnvFile"}
)

// reservedFlags are consumed by madrun and never reach the command.
var reservedFlags = concat(helpFlags, versionFlags, debugFlags, logLevelFlags, logFormatFlags, envFileFlags)

// parser knows which reserved flags never take a value.
var parser = argv.Parser{Booleans: booleans(helpFlags, versionFlags, debugFlags)}

const usage = `Runs commands, shell scripts, or Go callbacks configured by a
.madrun.{hcl,json,jsonc,yaml,yml} file found in the current directory or one
of its parents.

Usage:
  madrun <command> [args...] [--flag value ...]

Options (reserved, removed before the command sees its arguments):
  --madrun-help               Show this help.
  --madrun-version            Show the version.
  --madrun-debug              Trace resolved commands to stderr and log at debug level.
  --madrun-log-level LEVEL    Log level: debug, info, warn, error (default warn).
  --madrun-log-format FORMAT  Log format: text or json (default text).
  --madrun-env-file PATH      Load variables from a dotenv file (repeatable).
`

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg        *app.Config
		shouldExit bool
	)

	root := &cobra.Command{
		Use:                "madrun <command> [args...]",
		Short:              "A config-driven command runner.",
		Long:               usage,
		Version:            Version,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, raw []string) error {
			set := parser.Parse(raw)

			if set.Has(helpFlags...) {
				shouldExit = true
				fmt.Fprint(cmd.OutOrStdout(), usage)
				return nil
			}
			if set.Has(versionFlags...) {
				shouldExit = true
				fmt.Fprintf(cmd.OutOrStdout(), "madrun %s\n", cmd.Version)
				return nil
			}

			c, err := app.NewConfig(app.Config{
				Args:      set.Without(reservedFlags...),
				Debug:     set.Has(debugFlags...),
				LogLevel:  strings.ToLower(set.String(logLevelFlags...)),
				LogFormat: strings.ToLower(set.String(logFormatFlags...)),
				EnvFiles:  envFiles(set),
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			cfg = c
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if shouldExit {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "args", cfg.Args)
	return cfg, false, nil
}

// Exit converts an error from a run into the ExitError reported to the user.
// A failed shell step exits with that step's status. With debug set, every
// wrapped cause is listed.
func Exit(err error, debug bool) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := 1
	var stepErr *engine.StepError
	if errors.As(err, &stepErr) {
		if c, ok := stepErr.ExitCode(); ok && c > 0 {
			code = c
		}
	}

	msg := err.Error()
	if debug {
		msg = describeChain(err)
	}
	return &ExitError{Code: code, Message: msg}
}

func describeChain(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "\n  caused by (%T): %v", cause, cause)
	}
	return b.String()
}

func envFiles(set argv.Set) []string {
	var files []string
	for _, name := range envFileFlags {
		if v, ok := set.Lookup(name); ok {
			files = append(files, v.Items()...)
		}
	}
	return files
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func booleans(lists ...[]string) map[string]bool {
	out := make(map[string]bool)
	for _, l := range lists {
		for _, n := range l {
			out[n] = true
		}
	}
	return out
}
