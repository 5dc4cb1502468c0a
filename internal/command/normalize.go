package command

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/placeholder"
	"github.com/vk/madrun/internal/shellquote"
)

// EventPrefix marks command names that are optional lifecycle hooks.
const EventPrefix = "on::"

// IsEvent reports whether name is an event hook.
func IsEvent(name string) bool {
	return strings.HasPrefix(name, EventPrefix)
}

// Step is one normalized unit of work. Exactly one of Cmd and Callback is set.
type Step struct {
	Env      config.Env
	Opts     config.Opts
	Cmd      string
	Callback config.Callback
}

// IsCallback reports whether the step runs Go code rather than a shell string.
func (s Step) IsCallback() bool { return s.Callback != nil }

// Spec is the canonical form of a command: command-level env and opts plus
// the ordered steps, each already merged with those defaults.
type Spec struct {
	Env  config.Env
	Opts config.Opts
	Cmds []Step
}

func emptySpec() *Spec {
	return &Spec{Env: config.Env{}, Opts: config.Opts{}}
}

// Resolve looks name up in cmds and normalizes it. A spec function is called
// once with args and c. Event hooks without a listener resolve to a spec with
// no steps.
func Resolve(ctx context.Context, cmds config.Commands, name string, args argv.Set, c *config.Context) (*Spec, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	raw, ok := cmds[name]
	if !ok {
		if IsEvent(name) {
			return emptySpec(), nil
		}
		return nil, fmt.Errorf("`%s` %w", name, ErrUnavailable)
	}
	if raw.Kind == config.KindFunc {
		if raw.Func == nil {
			return nil, commandErr(name, "", "nil function")
		}
		produced, err := raw.Func(ctx, args, c)
		if err != nil {
			return nil, fmt.Errorf("`%s` command config function failed: %w", name, err)
		}
		raw = produced
	}
	return Normalize(name, raw)
}

// Normalize converts an already-evaluated spec into its canonical form.
func Normalize(name string, raw config.Raw) (*Spec, error) {
	env, opts, cmds, err := topLevel(name, raw)
	if err != nil {
		return nil, err
	}
	if len(cmds) == 0 {
		if IsEvent(name) {
			return emptySpec(), nil
		}
		return nil, commandErr(name, "cmds", "no commands")
	}

	spec := &Spec{Env: env, Opts: opts, Cmds: make([]Step, 0, len(cmds))}
	for i, el := range cmds {
		step, err := normalizeStep(name, i, el, env, opts)
		if err != nil {
			return nil, err
		}
		spec.Cmds = append(spec.Cmds, step)
	}
	return spec, nil
}

// topLevel dispatches on the raw command spec's variant and returns its env, opts and the
// raw step elements.
func topLevel(name string, raw config.Raw) (config.Env, config.Opts, []config.Raw, error) {
	env, opts := config.Env{}, config.Opts{}

	switch raw.Kind {
	case config.KindString:
		if raw.Str == "" {
			return env, opts, nil, nil
		}
		return env, opts, []config.Raw{raw}, nil
	case config.KindList:
		return env, opts, raw.List, nil
	case config.KindCallback, config.KindParts:
		return env, opts, []config.Raw{raw}, nil
	case config.KindObject:
		obj := raw.Object
		if obj == nil {
			return nil, nil, nil, commandErr(name, "", "empty object")
		}
		if obj.Env != nil {
			env = obj.Env.Clone()
		}
		if obj.Opts != nil {
			opts = obj.Opts.Clone()
		}
		if obj.Cmds == nil {
			return nil, nil, nil, commandErr(name, "cmds", "missing")
		}
		cmds, err := topLevelCmds(name, *obj.Cmds)
		return env, opts, cmds, err
	case config.KindInvalid:
		return nil, nil, nil, fromInvalid(name, -1, raw.Err)
	default:
		return nil, nil, nil, commandErr(name, "", "unsupported "+raw.Kind.String())
	}
}

func topLevelCmds(name string, cmds config.Raw) ([]config.Raw, error) {
	switch cmds.Kind {
	case config.KindString:
		if cmds.Str == "" {
			return nil, nil
		}
		return []config.Raw{cmds}, nil
	case config.KindList:
		return cmds.List, nil
	case config.KindCallback, config.KindParts:
		return []config.Raw{cmds}, nil
	case config.KindInvalid:
		return nil, fromInvalid(name, -1, cmds.Err)
	default:
		return nil, commandErr(name, "cmds", "unsupported "+cmds.Kind.String())
	}
}

func normalizeStep(name string, i int, el config.Raw, env config.Env, opts config.Opts) (Step, error) {
	step := Step{Env: env.Clone(), Opts: opts.Clone()}

	cmd := el
	if el.Kind == config.KindObject {
		if el.Object == nil || el.Object.Cmd == nil {
			return Step{}, stepErr(name, i, "cmd", "missing")
		}
		maps.Copy(step.Env, el.Object.Env)
		maps.Copy(step.Opts, el.Object.Opts)
		cmd = *el.Object.Cmd
	}

	switch cmd.Kind {
	case config.KindString:
		step.Cmd = cmd.Str
	case config.KindParts:
		step.Cmd = joinParts(cmd.Parts)
	case config.KindCallback:
		step.Callback = cmd.Callback
		if step.Callback == nil {
			return Step{}, stepErr(name, i, "cmd", "nil callback")
		}
		return step, nil
	case config.KindInvalid:
		return Step{}, fromInvalid(name, i, cmd.Err)
	default:
		return Step{}, stepErr(name, i, "cmd", "unsupported "+cmd.Kind.String())
	}
	if strings.TrimSpace(step.Cmd) == "" {
		return Step{}, stepErr(name, i, "cmd", "empty command")
	}
	return step, nil
}

// joinParts quotes each word and joins them, leaving standalone placeholder
// words unquoted so they can still be filled in.
func joinParts(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		if placeholder.IsPlaceholder(w) {
			out[i] = w
			continue
		}
		out[i] = shellquote.Quote(w)
	}
	return strings.Join(out, " ")
}

func fromInvalid(name string, step int, err error) error {
	var pe *config.PropertyError
	if errors.As(err, &pe) {
		if step >= 0 && (pe.Property == "env" || pe.Property == "opts" || pe.Property == "cmd") {
			return stepErr(name, step, pe.Property, pe.Reason)
		}
		return commandErr(name, pe.Property, pe.Reason)
	}
	reason := "invalid"
	if err != nil {
		reason = err.Error()
	}
	if step >= 0 {
		return stepErr(name, step, "cmd", reason)
	}
	return commandErr(name, "", reason)
}
