package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// PropertyError reports a value of the wrong shape for one derived property
// (env, opts, cmds, or cmd).
type PropertyError struct {
	Property string
	Reason   string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("invalid data for derived `%s` property: %s", e.Property, e.Reason)
}

func propErr(prop, format string, a ...any) Raw {
	return Raw{Kind: KindInvalid, Err: &PropertyError{Property: prop, Reason: fmt.Sprintf(format, a...)}}
}

var (
	topLevelKeys = map[string]bool{"env": true, "opts": true, "cmds": true}
	stepKeys     = map[string]bool{"env": true, "opts": true, "cmd": true}
)

// DecodeAll decodes every entry of a generic name → value mapping.
func DecodeAll(entries map[string]any, r Resolver) Commands {
	cmds := make(Commands, len(entries))
	for name, v := range entries {
		cmds[name] = Decode(v, r)
	}
	return cmds
}

// Decode converts a generic value, as produced by a JSON, YAML or HCL decoder,
// into a Raw command spec. Shape problems come back as a KindInvalid Raw.
func Decode(v any, r Resolver) Raw {
	switch t := v.(type) {
	case string:
		return String(t)
	case []any:
		items := make([]Raw, 0, len(t))
		for _, el := range t {
			items = append(items, decodeElement(el, r))
		}
		return List(items...)
	case map[string]any:
		if ref, ok := t["func"]; ok {
			return lookupFunc(ref, r)
		}
		if ref, ok := t["call"]; ok {
			return lookupCallback("cmds", ref, r)
		}
		return decodeObject(t, r)
	case nil:
		return Invalid("command is empty")
	default:
		return Invalid("unsupported value of type %T", v)
	}
}

func decodeObject(m map[string]any, r Resolver) Raw {
	if bad := unknownKeys(m, topLevelKeys); bad != "" {
		return Invalid("unrecognized property %q", bad)
	}
	obj := Object{}
	var err Raw
	if obj.Env, err = decodeEnv(m, "env"); err.Err != nil {
		return err
	}
	if obj.Opts, err = decodeOpts(m, "opts"); err.Err != nil {
		return err
	}
	raw, ok := m["cmds"]
	if !ok {
		return propErr("cmds", "missing")
	}
	var cmds Raw
	switch t := raw.(type) {
	case string:
		cmds = String(t)
	case []any:
		items := make([]Raw, 0, len(t))
		for _, el := range t {
			items = append(items, decodeElement(el, r))
		}
		cmds = List(items...)
	case map[string]any:
		if ref, ok := t["call"]; ok {
			cmds = lookupCallback("cmds", ref, r)
			break
		}
		return propErr("cmds", "expected a string, list, or callback reference")
	default:
		return propErr("cmds", "unsupported value of type %T", raw)
	}
	if cmds.Kind == KindInvalid {
		return cmds
	}
	obj.Cmds = &cmds
	return Obj(obj)
}

// decodeElement decodes one member of a cmds list.
func decodeElement(v any, r Resolver) Raw {
	switch t := v.(type) {
	case string:
		return String(t)
	case []any:
		return decodeParts(t)
	case map[string]any:
		if ref, ok := t["call"]; ok {
			return lookupCallback("cmd", ref, r)
		}
		if bad := unknownKeys(t, stepKeys); bad != "" {
			return Invalid("unrecognized step property %q", bad)
		}
		obj := Object{}
		var err Raw
		if obj.Env, err = decodeEnv(t, "env"); err.Err != nil {
			return err
		}
		if obj.Opts, err = decodeOpts(t, "opts"); err.Err != nil {
			return err
		}
		var cmd Raw
		switch c := t["cmd"].(type) {
		case string:
			cmd = String(c)
		case []any:
			cmd = decodeParts(c)
		case map[string]any:
			ref, ok := c["call"]
			if !ok {
				return propErr("cmd", "expected a string, list of strings, or callback reference")
			}
			cmd = lookupCallback("cmd", ref, r)
		case nil:
			return propErr("cmd", "missing")
		default:
			return propErr("cmd", "unsupported value of type %T", c)
		}
		if cmd.Kind == KindInvalid {
			return cmd
		}
		obj.Cmd = &cmd
		return Obj(obj)
	default:
		return propErr("cmd", "unsupported value of type %T", v)
	}
}

func decodeParts(list []any) Raw {
	words := make([]string, 0, len(list))
	for _, w := range list {
		s, ok := w.(string)
		if !ok {
			return propErr("cmd", "shell command parts must be strings, got %T", w)
		}
		words = append(words, s)
	}
	return Parts(words...)
}

func decodeEnv(m map[string]any, key string) (Env, Raw) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, Raw{}
	}
	vars, ok := raw.(map[string]any)
	if !ok {
		return nil, propErr(key, "expected a key/value map, got %T", raw)
	}
	env := make(Env, len(vars))
	for k, v := range vars {
		s, ok := Scalar(v)
		if !ok {
			return nil, propErr(key, "variable %q has non-scalar value of type %T", k, v)
		}
		env[k] = s
	}
	return env, Raw{}
}

func decodeOpts(m map[string]any, key string) (Opts, Raw) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, Raw{}
	}
	opts, ok := raw.(map[string]any)
	if !ok {
		return nil, propErr(key, "expected a key/value map, got %T", raw)
	}
	return Opts(opts).Clone(), Raw{}
}

func lookupCallback(prop string, ref any, r Resolver) Raw {
	name, ok := ref.(string)
	if !ok || name == "" {
		return propErr(prop, "callback reference must be a non-empty string")
	}
	if r != nil {
		if cb, ok := r.Callback(name); ok {
			return Call(cb)
		}
	}
	return propErr(prop, "no callback registered as %q", name)
}

func lookupFunc(ref any, r Resolver) Raw {
	name, ok := ref.(string)
	if !ok || name == "" {
		return Invalid("function reference must be a non-empty string")
	}
	if r != nil {
		if fn, ok := r.Func(name); ok {
			return Func(fn)
		}
	}
	return Invalid("no function registered as %q", name)
}

func unknownKeys(m map[string]any, allowed map[string]bool) string {
	var bad []string
	for k := range m {
		if !allowed[k] {
			bad = append(bad, k)
		}
	}
	if len(bad) == 0 {
		return ""
	}
	sort.Strings(bad)
	return bad[0]
}

// Scalar renders a scalar configuration value as a string.
func Scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}
