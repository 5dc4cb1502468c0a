package config

import (
	"fmt"
	"maps"
)

// Kind tags the variant held by a Raw command spec.
type Kind int

const (
	// KindInvalid marks an entry whose configured shape could not be decoded.
	// It is kept rather than rejected so that only the command actually
	// invoked reports the problem.
	KindInvalid Kind = iota
	KindString
	KindList
	KindCallback
	KindObject
	KindFunc
	// KindParts is a list of strings meant as the words of one shell command.
	KindParts
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindCallback:
		return "callback"
	case KindObject:
		return "object"
	case KindFunc:
		return "function"
	case KindParts:
		return "parts"
	default:
		return "invalid"
	}
}

// Env is an environment overlay.
type Env map[string]string

// Opts are execution options passed through to the shell runner.
type Opts map[string]any

// Clone returns a value copy of e, never nil.
func (e Env) Clone() Env {
	out := make(Env, len(e))
	maps.Copy(out, e)
	return out
}

// Clone returns a shallow value copy of o, never nil.
func (o Opts) Clone() Opts {
	out := make(Opts, len(o))
	maps.Copy(out, o)
	return out
}

// Raw is a configured command spec in any of its permitted shapes.
type Raw struct {
	Kind     Kind
	Str      string
	Parts    []string
	List     []Raw
	Callback Callback
	Func     SpecFunc
	Object   *Object
	// Err explains a KindInvalid entry.
	Err error
}

// Object is the explicit form. At the top level Cmds holds the steps; as a
// step element Cmd holds the single command. A nil Env or Opts means the
// author did not set it.
type Object struct {
	Env  Env
	Opts Opts
	Cmds *Raw
	Cmd  *Raw
}

// Commands maps command names to their specs.
type Commands map[string]Raw

func String(s string) Raw { return Raw{Kind: KindString, Str: s} }

func List(items ...Raw) Raw { return Raw{Kind: KindList, List: items} }

func Parts(words ...string) Raw { return Raw{Kind: KindParts, Parts: words} }

func Call(cb Callback) Raw { return Raw{Kind: KindCallback, Callback: cb} }

func Func(fn SpecFunc) Raw { return Raw{Kind: KindFunc, Func: fn} }

func Obj(o Object) Raw { return Raw{Kind: KindObject, Object: &o} }

// Invalid wraps a decoding failure.
func Invalid(format string, a ...any) Raw {
	return Raw{Kind: KindInvalid, Err: fmt.Errorf(format, a...)}
}

// Steps builds the explicit top-level form.
func Steps(env Env, opts Opts, cmds ...Raw) Raw {
	l := List(cmds...)
	return Obj(Object{Env: env, Opts: opts, Cmds: &l})
}

// Step builds one explicit step element.
func Step(env Env, opts Opts, cmd Raw) Raw {
	return Obj(Object{Env: env, Opts: opts, Cmd: &cmd})
}
