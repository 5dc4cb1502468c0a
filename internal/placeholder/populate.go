package placeholder

import (
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/shellquote"
)

var (
	positionKey = regexp.MustCompile(`^[0-9]+$`)
	flagKey     = regexp.MustCompile(`^-{1,2}\S+$`)
	// nameKey excludes dots, so text such as a Go template "{{.ID}}" is never
	// taken for an argument name.
	nameKey      = regexp.MustCompile(`^[A-Za-z0-9_-]+\[?$`)
	horizontalWS = regexp.MustCompile(`[\t ]+`)
)

// token is a run of template text, or one placeholder when keys is set.
type token struct {
	text  string
	value bool
	keys  []string
}

// Populate replaces every placeholder in cmd with the matching argument from
// args and returns the tidied command. The template is scanned once, so text
// coming from an argument is never itself read as a placeholder, and only the
// template's own whitespace is collapsed.
func Populate(cmd string, args argv.Set) string {
	var b strings.Builder
	for _, tok := range scan(cmd) {
		if tok.keys == nil {
			writeText(&b, tok.text)
			continue
		}
		b.WriteString(resolve(tok, args))
	}
	return strings.TrimSpace(b.String())
}

// writeText appends template text with runs of spaces and tabs collapsed,
// including a run that spans a placeholder that rendered to nothing.
func writeText(b *strings.Builder, text string) {
	text = horizontalWS.ReplaceAllLiteralString(text, " ")
	if strings.HasPrefix(text, " ") && strings.HasSuffix(b.String(), " ") {
		text = text[1:]
	}
	b.WriteString(text)
}

// scan splits s into template text and placeholder tokens, left to right.
func scan(s string) []token {
	var out []token
	lit := 0
	for i := 0; i < len(s); {
		tok, n := placeholderAt(s, i)
		if n == 0 {
			i++
			continue
		}
		if lit < i {
			out = append(out, token{text: s[lit:i]})
		}
		out = append(out, tok)
		i += n
		lit = i
	}
	if lit < len(s) {
		out = append(out, token{text: s[lit:]})
	}
	return out
}

// placeholderAt returns the placeholder starting at s[i] and its length, or a
// zero length when there is none.
func placeholderAt(s string, i int) (token, int) {
	var open, closing string
	switch {
	case strings.HasPrefix(s[i:], "{{"):
		open, closing = "{{", "}}"
	case strings.HasPrefix(s[i:], "${"):
		open, closing = "${", "}"
	default:
		return token{}, 0
	}
	rest := s[i+len(open):]
	end := strings.Index(rest, closing)
	if end < 0 {
		return token{}, 0
	}
	body := rest[:end]
	if strings.ContainsAny(body, "{}") || strings.TrimSpace(body) == "" {
		return token{}, 0
	}
	keys := strings.Split(body, "|")
	for k := range keys {
		keys[k] = strings.TrimSpace(keys[k])
	}
	n := len(open) + end + len(closing)
	return token{text: s[i : i+n], value: open == "${", keys: keys}, n
}

// resolve renders one placeholder. Positions take precedence over flags
// within an alias group.
func resolve(tok token, args argv.Set) string {
	if len(tok.keys) == 1 && tok.keys[0] == "@" {
		return All(args)
	}
	for i, v := range args.Positional {
		pos := strconv.Itoa(i + 1)
		if slices.Contains(tok.keys, pos) {
			return shellquote.Quote(v)
		}
	}
	for _, f := range args.Named {
		if slices.Contains(tok.keys, f.Name) || slices.Contains(tok.keys, f.Prefixed()) {
			parts, value := renderFlag(f)
			if tok.value {
				return value
			}
			return parts
		}
	}
	if namesArgument(tok) {
		return ""
	}
	return tok.text
}

// namesArgument reports whether an unfilled placeholder refers to an
// argument, as opposed to shell or template syntax that only looks alike.
// A value form is left for the shell unless it names a position or a dashed
// flag, or uses an alias group, which no shell expansion does.
func namesArgument(tok token) bool {
	if tok.value && len(tok.keys) > 1 {
		return true
	}
	for _, k := range tok.keys {
		if positionKey.MatchString(k) || flagKey.MatchString(k) {
			return true
		}
	}
	if tok.value {
		return false
	}
	for _, k := range tok.keys {
		if !nameKey.MatchString(k) {
			return false
		}
	}
	return true
}

// All renders every argument as quoted words: positional values in order,
// then each flag followed by its values. False flags are left out.
func All(args argv.Set) string {
	words := append([]string(nil), args.Positional...)
	for _, f := range args.Named {
		if f.Value.IsFalse() {
			continue
		}
		words = append(words, f.Prefixed())
		words = append(words, flagWords(f)...)
	}
	return shellquote.Join(words)
}

// Export renders env as a sequence of "export NAME=VALUE;" clauses in name
// order. Values already wrapped in matching quotes are used verbatim.
func Export(env map[string]string) string {
	names := make([]string, 0, len(env))
	for n := range env {
		names = append(names, n)
	}
	sort.Strings(names)

	clauses := make([]string, 0, len(names))
	for _, n := range names {
		v := env[n]
		if !shellquote.IsQuoted(v) {
			v = shellquote.Quote(v)
		}
		clauses = append(clauses, "export "+n+"="+v+";")
	}
	return strings.Join(clauses, " ")
}

// Command returns the full shell string for a step: env exports, then the
// populated command.
func Command(env map[string]string, cmd string, args argv.Set) string {
	populated := Populate(cmd, args)
	if exports := Export(env); exports != "" {
		return exports + " " + populated
	}
	return populated
}

// renderFlag returns the parts-form and value-form renderings of f.
func renderFlag(f argv.Flag) (parts, value string) {
	switch {
	case f.Value.IsFalse():
		return "", ""
	case f.Value.IsTrue():
		return shellquote.Quote(f.Prefixed()), ""
	}
	value = shellquote.Join(flagWords(f))
	return strings.TrimSpace(shellquote.Quote(f.Prefixed()) + " " + value), value
}

// flagWords lists the value words of f. A name ending in "[" opens a bracketed
// list, so its closing "]" is appended.
func flagWords(f argv.Flag) []string {
	words := f.Value.Items()
	if f.Value.Kind() == argv.KindList && strings.HasSuffix(f.Name, "[") {
		words = append(words, "]")
	}
	return words
}

// IsPlaceholder reports whether word, taken alone, is a placeholder token.
func IsPlaceholder(word string) bool {
	word = strings.TrimSpace(word)
	_, n := placeholderAt(word, 0)
	return n > 0 && n == len(word)
}
