package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"github.com/vk/madrun/internal/shellquote"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Environ supplies the environment a command starts with.
type Environ interface {
	Environ() []string
}

// Runner executes shell scripts for a single invocation. It implements
// config.Shell.
type Runner struct {
	// Dir is the base directory; a step's relative `cwd` is resolved against it.
	Dir    string
	Env    Environ
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// IsTTY reports whether the parent's output is a terminal.
	IsTTY func() bool
}

var _ config.Shell = (*Runner)(nil)

// NewRunner returns a Runner bound to the process standard streams.
func NewRunner(dir string, env Environ) *Runner {
	return &Runner{
		Dir:    dir,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		IsTTY:  StdoutIsTerminal,
	}
}

// StdoutIsTerminal reports whether the process stdout is a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Exec runs script with the step options opts.
func (r *Runner) Exec(ctx context.Context, script string, opts config.Opts) error {
	o, err := ParseOptions(r.Dir, opts)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executing command.", "shell", o.Shell, "dir", o.Dir, "script", script)

	stdin, stdout, stderr := r.Stdin, r.Stdout, r.Stderr
	if o.Stdin == StdinNull {
		stdin = nil
	}
	if o.Quiet {
		stdout, stderr = io.Discard, io.Discard
	}

	if o.Shell == Builtin {
		return r.interpret(ctx, script, o.Dir, stdin, stdout, stderr)
	}

	cmd := exec.CommandContext(ctx, o.Shell, "-c", script)
	cmd.Dir = o.Dir
	cmd.Env = r.environ()
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return &ExitError{Script: script, Code: exitCode(err), Err: err}
	}
	return nil
}

// Spawn runs name with args through the step's shell. Every word is quoted.
func (r *Runner) Spawn(ctx context.Context, name string, args []string, opts config.Opts) error {
	return r.Exec(ctx, shellquote.Join(append([]string{name}, args...)), opts)
}

func (r *Runner) interpret(ctx context.Context, script, dir string, stdin io.Reader, stdout, stderr io.Writer) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil {
		return fmt.Errorf("failed to parse command: %w", err)
	}
	runner, err := interp.New(
		interp.StdIO(stdin, stdout, stderr),
		interp.Env(expand.ListEnviron(r.environ()...)),
		interp.Dir(dir),
	)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}
	if err := runner.Run(ctx, file); err != nil {
		return &ExitError{Script: script, Code: exitCode(err), Err: err}
	}
	return nil
}

// environ is the table's environment with PARENT_IS_TTY set to "true" when
// the parent is attached to a terminal or the variable already has a value,
// and "false" otherwise.
func (r *Runner) environ() []string {
	var src []string
	if r.Env != nil {
		src = r.Env.Environ()
	} else {
		src = os.Environ()
	}
	tty := r.IsTTY != nil && r.IsTTY()
	env := make([]string, 0, len(src)+1)
	for _, kv := range src {
		if v, ok := strings.CutPrefix(kv, "PARENT_IS_TTY="); ok {
			tty = tty || v != ""
			continue
		}
		env = append(env, kv)
	}
	return append(env, "PARENT_IS_TTY="+strconv.FormatBool(tty))
}

// ExitError is a command that ran and failed.
type ExitError struct {
	Script string
	// Code is the exit status, or -1 when the command never produced one.
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("command exited with status %d: %s", e.Code, e.Script)
	}
	return fmt.Sprintf("command failed: %s: %v", e.Script, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit status carried by err, if any.
func ExitCode(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Code >= 0 {
		return ee.Code, true
	}
	if code := exitCode(err); code >= 0 {
		return code, true
	}
	return 0, false
}

func exitCode(err error) int {
	var execErr *exec.ExitError
	if errors.As(err, &execErr) {
		return execErr.ExitCode()
	}
	if status, ok := interp.IsExitStatus(err); ok {
		return int(status)
	}
	return -1
}
