package shell

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/vk/madrun/internal/config"
)

const (
	// Builtin selects the in-process interpreter.
	Builtin = "builtin"
	// DefaultShell is used when a step does not name one.
	DefaultShell = "bash"

	StdinInherit = "inherit"
	StdinNull    = "null"
)

// Options are the recognized execution options of a step. Unknown keys in a
// step's opts map are ignored.
type Options struct {
	Dir   string
	Quiet bool
	Shell string
	Stdin string
}

// ParseOptions reads opts. A relative `cwd` is resolved against base.
func ParseOptions(base string, opts config.Opts) (Options, error) {
	o := Options{Dir: base, Shell: DefaultShell, Stdin: StdinInherit}

	if v, ok := opts["cwd"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return o, fmt.Errorf("option `cwd` must be a string, got %T", v)
		}
		if filepath.IsAbs(s) {
			o.Dir = s
		} else {
			o.Dir = filepath.Join(base, s)
		}
	}

	if v, ok := opts["quiet"]; ok && v != nil {
		b, err := asBool(v)
		if err != nil {
			return o, fmt.Errorf("option `quiet`: %w", err)
		}
		o.Quiet = b
	}

	if v, ok := opts["shell"]; ok && v != nil {
		s, ok := v.(string)
		if !ok || s == "" {
			return o, fmt.Errorf("option `shell` must be a non-empty string")
		}
		o.Shell = s
	}

	if v, ok := opts["stdin"]; ok && v != nil {
		s, _ := v.(string)
		switch s {
		case StdinInherit, StdinNull:
			o.Stdin = s
		default:
			return o, fmt.Errorf("option `stdin` must be %q or %q, got %v", StdinInherit, StdinNull, v)
		}
	}

	return o, nil
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	}
	return false, fmt.Errorf("expected a boolean, got %T", v)
}
