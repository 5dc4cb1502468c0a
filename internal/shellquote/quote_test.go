package shellquote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain word", in: "/tmp", want: "/tmp"},
		{name: "flag", in: "--force", want: "--force"},
		{name: "space", in: "hi there", want: "'hi there'"},
		{name: "empty", in: "", want: "''"},
		{name: "variable", in: "$HOME", want: "'$HOME'"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Quote(tc.in))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a 'b c' d", Join([]string{"a", "b c", "d"}))
	assert.Equal(t, "", Join(nil))
}

func TestIsQuoted(t *testing.T) {
	assert.True(t, IsQuoted(`"x y"`))
	assert.True(t, IsQuoted(`'x'`))
	assert.False(t, IsQuoted(`"x'`))
	assert.False(t, IsQuoted(`x`))
	assert.False(t, IsQuoted(`"`))
}
