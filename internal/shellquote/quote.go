// Package shellquote turns arbitrary strings into words a bash shell reads
// back literally. Strings that need no quoting are returned unchanged.
package shellquote

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Quote returns s as a single shell word.
func Quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only NUL bytes are rejected; bash cannot carry them in argv anyway.
		return "'" + strings.ReplaceAll(strings.ReplaceAll(s, "\x00", ""), "'", `'\''`) + "'"
	}
	return q
}

// QuoteAll quotes every element of list.
func QuoteAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = Quote(s)
	}
	return out
}

// Join quotes every element of list and joins them with single spaces.
func Join(list []string) string {
	return strings.Join(QuoteAll(list), " ")
}

// IsQuoted reports whether s is already wrapped in a matching pair of single
// or double quotes.
func IsQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return first == last && (first == '\'' || first == '"')
}
