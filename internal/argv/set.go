package argv

import (
	"encoding/json"
	"strings"
)

// Kind discriminates the three shapes a named argument value can take.
type Kind int

const (
	KindBool Kind = iota
	KindScalar
	KindList
)

// Value is the value of a named argument: a bare boolean flag, a single
// scalar, or an ordered list of scalars.
type Value struct {
	kind  Kind
	b     bool
	items []string
}

// Bool returns a boolean flag value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Scalar returns a single-valued flag value.
func Scalar(s string) Value { return Value{kind: KindScalar, items: []string{s}} }

// List returns a list-valued flag value.
func List(items ...string) Value {
	return Value{kind: KindList, items: append([]string(nil), items...)}
}

func (v Value) Kind() Kind { return v.kind }

// IsTrue reports whether v is the boolean true.
func (v Value) IsTrue() bool { return v.kind == KindBool && v.b }

// IsFalse reports whether v is the boolean false.
func (v Value) IsFalse() bool { return v.kind == KindBool && !v.b }

// Items returns the scalar values carried by v. Booleans carry none.
func (v Value) Items() []string {
	if v.kind == KindBool {
		return nil
	}
	return append([]string(nil), v.items...)
}

// String renders v roughly the way it was given on the command line.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindScalar:
		return v.items[0]
	default:
		return "[" + strings.Join(v.items, " ") + "]"
	}
}

// appendItem adds s to v, promoting a scalar to a list.
func (v Value) appendItem(s string) Value {
	switch v.kind {
	case KindScalar, KindList:
		return Value{kind: KindList, items: append(append([]string(nil), v.items...), s)}
	default:
		return Scalar(s)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindScalar:
		return json.Marshal(v.items[0])
	default:
		return json.Marshal(v.items)
	}
}

// Flag is one named argument.
type Flag struct {
	Name  string
	Value Value
}

// Prefixed returns the flag name with its dash prefix: one dash for
// single-character names, two otherwise.
func (f Flag) Prefixed() string {
	return Prefix(f.Name)
}

// Prefix returns name with its command-line dash prefix.
func Prefix(name string) string {
	if len([]rune(name)) == 1 {
		return "-" + name
	}
	return "--" + name
}

// Set is a parsed command invocation: positional values in order and named
// flags in the order they first appeared.
type Set struct {
	Positional []string
	Named      []Flag
}

// Lookup returns the value of the named flag.
func (s Set) Lookup(name string) (Value, bool) {
	for _, f := range s.Named {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// String returns the first scalar value of the first flag among names that
// is set, or "" when none is.
func (s Set) String(names ...string) string {
	for _, n := range names {
		if v, ok := s.Lookup(n); ok && v.kind != KindBool && len(v.items) > 0 {
			return v.items[0]
		}
	}
	return ""
}

// Has reports whether any of the flags in names is the boolean true.
func (s Set) Has(names ...string) bool {
	for _, n := range names {
		if v, ok := s.Lookup(n); ok && v.IsTrue() {
			return true
		}
	}
	return false
}

// Arg returns the 0-based positional argument i, or "" when absent.
func (s Set) Arg(i int) string {
	if i < 0 || i >= len(s.Positional) {
		return ""
	}
	return s.Positional[i]
}

// Set assigns name, replacing an existing value in place.
func (s *Set) Set(name string, v Value) {
	for i := range s.Named {
		if s.Named[i].Name == name {
			s.Named[i].Value = v
			return
		}
	}
	s.Named = append(s.Named, Flag{Name: name, Value: v})
}

// add records another occurrence of name; repeated scalars accumulate.
func (s *Set) add(name string, v Value) {
	for i := range s.Named {
		if s.Named[i].Name != name {
			continue
		}
		cur := s.Named[i].Value
		switch {
		case v.kind == KindBool || cur.kind == KindBool:
			s.Named[i].Value = v
		default:
			for _, it := range v.items {
				cur = cur.appendItem(it)
			}
			s.Named[i].Value = cur
		}
		return
	}
	s.Named = append(s.Named, Flag{Name: name, Value: v})
}

// Without returns a copy of s minus the named flags.
func (s Set) Without(names ...string) Set {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := Set{Positional: append([]string(nil), s.Positional...)}
	for _, f := range s.Named {
		if _, ok := drop[f.Name]; !ok {
			out.Named = append(out.Named, f)
		}
	}
	return out
}

// Shift splits off the first positional value.
func (s Set) Shift() (string, Set) {
	if len(s.Positional) == 0 {
		return "", s
	}
	rest := s
	rest.Positional = append([]string(nil), s.Positional[1:]...)
	return s.Positional[0], rest
}

// MarshalJSON renders s like the parsed-arguments object of a JS CLI:
// positional values under "_" followed by the flags.
func (s Set) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteString("{")
	pos := s.Positional
	if pos == nil {
		pos = []string{}
	}
	p, err := json.Marshal(pos)
	if err != nil {
		return nil, err
	}
	b.WriteString(`"_":`)
	b.Write(p)
	for _, f := range s.Named {
		k, _ := json.Marshal(f.Name)
		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.WriteString(",")
		b.Write(k)
		b.WriteString(":")
		b.Write(v)
	}
	b.WriteString("}")
	return []byte(b.String()), nil
}
