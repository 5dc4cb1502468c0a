package engine

import (
	"context"
	"fmt"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/command"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"github.com/vk/madrun/internal/placeholder"
	"github.com/vk/madrun/internal/trace"
)

// EnvTable is the process-wide environment callback steps write to.
type EnvTable interface {
	Apply(overlay map[string]string) error
}

// Driver runs a single command invocation.
type Driver struct {
	cmds  config.Commands
	base  *config.Context
	env   EnvTable
	trace *trace.Tracer

	state State
	step  int
}

// New creates a Driver over cmds. base is the context handed to spec
// functions and, per step, to callbacks. tr may be nil.
func New(cmds config.Commands, base *config.Context, env EnvTable, tr *trace.Tracer) *Driver {
	return &Driver{cmds: cmds, base: base, env: env, trace: tr}
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Step returns the 1-based position of the step running or last run.
func (d *Driver) Step() int { return d.step }

// Run resolves name and executes its steps in order.
func (d *Driver) Run(ctx context.Context, name string, args argv.Set) error {
	if d.state != StateIdle {
		return ErrAlreadyRun
	}
	logger := ctxlog.FromContext(ctx).With("command", name)
	ctx = ctxlog.WithLogger(ctx, logger)

	d.state = StateNormalizing
	logger.Debug("Resolving command.")
	spec, err := command.Resolve(ctx, d.cmds, name, args, d.base)
	if err != nil {
		d.state = StateFailed
		return err
	}

	d.state = StateExecuting
	logger.Debug("Command resolved.", "steps", len(spec.Cmds))
	for i, step := range spec.Cmds {
		d.step = i + 1
		if err := d.runStep(ctx, name, args, step); err != nil {
			d.state = StateFailed
			logger.Debug("Step failed, skipping the rest.", "step", d.step, "remaining", len(spec.Cmds)-d.step)
			return &StepError{Command: name, Step: d.step, Err: err}
		}
	}

	d.state = StateDone
	logger.Debug("Command finished.")
	return nil
}

func (d *Driver) runStep(ctx context.Context, name string, args argv.Set, step command.Step) error {
	logger := ctxlog.FromContext(ctx).With("step", d.step)

	d.trace.Line("rawEnv", step.Env)
	if step.IsCallback() {
		d.trace.Line("rawCMD", "[function]")
	} else {
		d.trace.Line("rawCMD", step.Cmd)
	}
	d.trace.Line("rawOpts", step.Opts)

	if step.IsCallback() {
		if err := d.env.Apply(step.Env); err != nil {
			return fmt.Errorf("failed to apply environment: %w", err)
		}
		logger.Debug("Calling callback step.")
		return step.Callback(ctx, name, args, d.base.ForStep(step.Env, step.Opts))
	}

	if d.base.Shell == nil {
		return fmt.Errorf("no shell configured to run %q", step.Cmd)
	}
	cmd := placeholder.Command(step.Env, step.Cmd, args)
	d.trace.Line("cmd", cmd)
	logger.Debug("Running shell step.", "cmd", cmd)
	return d.base.Shell.Exec(ctx, cmd, step.Opts)
}
