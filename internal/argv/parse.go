package argv

import (
	"regexp"
	"strings"
)

var negativeNumber = regexp.MustCompile(`^-[0-9]+(?:\.[0-9]+)?$`)

// Parser turns raw process arguments into a Set. Flags are undeclared by
// default; a flag listed in Booleans never consumes the following token as its
// value.
type Parser struct {
	Booleans map[string]bool
}

// Parse parses args with no declared boolean flags.
func Parse(args []string) Set {
	return Parser{}.Parse(args)
}

// Parse parses args. It never fails: anything that is not recognizably a flag
// is a positional value.
func (p Parser) Parse(args []string) Set {
	var s Set
	for i := 0; i < len(args); i++ {
		tok := args[i]

		switch {
		case tok == "--":
			s.Positional = append(s.Positional, args[i+1:]...)
			return s

		case !isFlag(tok):
			s.Positional = append(s.Positional, tok)

		case strings.HasPrefix(tok, "--"):
			body := tok[2:]
			if strings.HasSuffix(body, "[") && !strings.Contains(body, "=") {
				items, next := collectBracket(args, i+1)
				s.add(body, List(items...))
				i = next
				continue
			}
			if name, val, ok := strings.Cut(body, "="); ok {
				if name == "" {
					s.Positional = append(s.Positional, tok)
					continue
				}
				s.add(name, literal(val))
				continue
			}
			if strings.HasPrefix(body, "no-") && len(body) > 3 {
				s.add(body[3:], Bool(false))
				continue
			}
			if next, ok := p.valueAt(body, args, i+1); ok {
				s.add(body, literal(next))
				i++
				continue
			}
			s.add(body, Bool(true))

		default:
			body := tok[1:]
			if name, val, ok := strings.Cut(body, "="); ok {
				if name == "" {
					s.Positional = append(s.Positional, tok)
					continue
				}
				s.add(name, literal(val))
				continue
			}
			chars := []rune(body)
			for _, c := range chars[:len(chars)-1] {
				s.add(string(c), Bool(true))
			}
			last := string(chars[len(chars)-1])
			if next, ok := p.valueAt(last, args, i+1); ok {
				s.add(last, literal(next))
				i++
				continue
			}
			s.add(last, Bool(true))
		}
	}
	return s
}

// valueAt returns args[i] as the value of flag name when it can be one.
func (p Parser) valueAt(name string, args []string, i int) (string, bool) {
	if p.Booleans[name] || i >= len(args) {
		return "", false
	}
	if isFlag(args[i]) || args[i] == "--" {
		return "", false
	}
	return args[i], true
}

// collectBracket gathers tokens up to a closing "]" and returns them with the
// index of the last consumed token.
func collectBracket(args []string, from int) ([]string, int) {
	var items []string
	for j := from; j < len(args); j++ {
		if args[j] == "]" {
			return items, j
		}
		items = append(items, args[j])
	}
	return items, len(args) - 1
}

func isFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if tok == "--" {
		return false
	}
	return !negativeNumber.MatchString(tok)
}

// literal converts the boolean words to booleans and leaves the rest alone.
func literal(v string) Value {
	switch v {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Scalar(v)
}
