package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/shellquote"
)

func named(flags ...argv.Flag) argv.Set {
	return argv.Set{Named: flags}
}

func TestPopulate(t *testing.T) {
	testCases := []struct {
		name string
		cmd  string
		args argv.Set
		want string
	}{
		{
			name: "positional is quoted as one word",
			cmd:  "echo {{1}}",
			args: argv.Set{Positional: []string{"hi there"}},
			want: "echo 'hi there'",
		},
		{
			name: "value form drops the flag name",
			cmd:  "ls ${dir}",
			args: named(argv.Flag{Name: "dir", Value: argv.Scalar("/tmp")}),
			want: "ls /tmp",
		},
		{
			name: "parts form keeps the flag name",
			cmd:  "ls {{dir}}",
			args: named(argv.Flag{Name: "dir", Value: argv.Scalar("/tmp")}),
			want: "ls --dir /tmp",
		},
		{
			name: "prefixed key in placeholder",
			cmd:  "tool {{--dir}} {{-n}}",
			args: named(argv.Flag{Name: "dir", Value: argv.Scalar("a b")}, argv.Flag{Name: "n", Value: argv.Scalar("3")}),
			want: "tool --dir 'a b' -n 3",
		},
		{
			name: "false boolean is fully removed",
			cmd:  "build {{verbose}}",
			args: named(argv.Flag{Name: "verbose", Value: argv.Bool(false)}),
			want: "build",
		},
		{
			name: "true boolean renders the bare flag",
			cmd:  "build {{verbose}} --x",
			args: named(argv.Flag{Name: "verbose", Value: argv.Bool(true)}),
			want: "build --verbose --x",
		},
		{
			name: "true boolean in value form is empty",
			cmd:  "build ${verbose} done",
			args: named(argv.Flag{Name: "verbose", Value: argv.Bool(true)}),
			want: "build done",
		},
		{
			name: "all arguments, positional first",
			cmd:  "run ${@}",
			args: argv.Set{Positional: []string{"a"}, Named: []argv.Flag{{Name: "force", Value: argv.Bool(true)}}},
			want: "run a --force",
		},
		{
			name: "all arguments skip false flags and expand lists",
			cmd:  "run {{@}}",
			args: argv.Set{Named: []argv.Flag{
				{Name: "dry", Value: argv.Bool(false)},
				{Name: "tag", Value: argv.List("x", "y z")},
				{Name: "v", Value: argv.Bool(true)},
			}},
			want: "run --tag x 'y z' -v",
		},
		{
			name: "unmatched positional is removed",
			cmd:  "echo {{5}}",
			args: argv.Set{Positional: []string{"only-one"}},
			want: "echo",
		},
		{
			name: "unmatched named forms are removed",
			cmd:  "echo {{--out}} ${-o} {{name}} end",
			args: argv.Set{},
			want: "echo end",
		},
		{
			name: "alias group matches any member",
			cmd:  "greet {{1|n|name}} / ${1|n|name}",
			args: named(argv.Flag{Name: "n", Value: argv.Scalar("bob")}),
			want: "greet -n bob / bob",
		},
		{
			name: "alias group prefers earlier substitution of positional",
			cmd:  "greet ${1|name}",
			args: argv.Set{Positional: []string{"ann"}, Named: []argv.Flag{{Name: "name", Value: argv.Scalar("bob")}}},
			want: "greet ann",
		},
		{
			name: "repeated placeholders all filled",
			cmd:  "cp {{1}} {{1}}.bak",
			args: argv.Set{Positional: []string{"f"}},
			want: "cp f f.bak",
		},
		{
			name: "array value in value form",
			cmd:  "touch ${files}",
			args: named(argv.Flag{Name: "files", Value: argv.List("a", "b")}),
			want: "touch a b",
		},
		{
			name: "bracketed list gets closing bracket",
			cmd:  "tool {{files[}}",
			args: named(argv.Flag{Name: "files[", Value: argv.List("a", "b")}),
			want: "tool " + shellquote.Quote("--files[") + " a b " + shellquote.Quote("]"),
		},
		{
			name: "regex metacharacters in flag names are literal",
			cmd:  "x {{a.b}} {{axb}}",
			args: named(argv.Flag{Name: "a.b", Value: argv.Scalar("1")}),
			want: "x --a.b 1",
		},
		{
			name: "shell variables without matching argument survive",
			cmd:  "echo ${HOME} {{.ID}}",
			args: argv.Set{},
			want: "echo ${HOME} {{.ID}}",
		},
		{
			name: "dollar in value is substituted literally",
			cmd:  "echo ${1}",
			args: argv.Set{Positional: []string{"$1"}},
			want: "echo '$1'",
		},
		{
			name: "whitespace inside braces",
			cmd:  "echo {{ 1 }}\t\t${ 2 }",
			args: argv.Set{Positional: []string{"a", "b"}},
			want: "echo a b",
		},
		{
			name: "unmatched alias group in value form is removed",
			cmd:  "echo ${n|name} ${HOME} end",
			args: argv.Set{},
			want: "echo ${HOME} end",
		},
		{
			name: "position keys do not match longer numbers",
			cmd:  "echo {{11}} {{1}}",
			args: argv.Set{Positional: []string{"one"}},
			want: "echo one",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Populate(tc.cmd, tc.args))
		})
	}
}

func TestPopulate_InsertedValuesAreNotRescanned(t *testing.T) {
	testCases := []struct {
		name string
		cmd  string
		args argv.Set
		want string
	}{
		{
			name: "all-arguments token inside a flag value",
			cmd:  "echo ${msg}",
			args: argv.Parse([]string{"x; touch pwned #", "--msg", "${@}"}),
			want: "echo " + shellquote.Quote("${@}"),
		},
		{
			name: "positional token inside a positional value",
			cmd:  "echo {{1}} {{2}}",
			args: argv.Set{Positional: []string{"{{2}}", "x"}},
			want: "echo " + shellquote.Quote("{{2}}") + " x",
		},
		{
			name: "named token inside a value is kept",
			cmd:  "echo {{1}}",
			args: argv.Set{Positional: []string{"a {{name}} b"}},
			want: "echo " + shellquote.Quote("a {{name}} b"),
		},
		{
			name: "whitespace inside a value is kept",
			cmd:  "echo   {{1}}",
			args: argv.Set{Positional: []string{"a   b"}},
			want: "echo 'a   b'",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Populate(tc.cmd, tc.args))
		})
	}
}

func TestIsPlaceholder(t *testing.T) {
	for _, w := range []string{"{{1}}", "${@}", " {{@}} ", "${name|n}", "{{--out}}"} {
		assert.True(t, IsPlaceholder(w), w)
	}
	for _, w := range []string{"echo", "{{1}}x", "${a}${b}", "{{}}", "${"} {
		assert.False(t, IsPlaceholder(w), w)
	}
}

func TestAll_UsesOriginalArguments(t *testing.T) {
	args := argv.Set{Positional: []string{"a", "b"}}
	assert.Equal(t, "echo a a b", Populate("echo {{1}} ${@}", args))
}

func TestExport(t *testing.T) {
	got := Export(map[string]string{
		"B":      "two words",
		"A":      "plain",
		"QUOTED": `"kept as is"`,
	})
	assert.Equal(t, `export A=plain; export B='two words'; export QUOTED="kept as is";`, got)
	assert.Empty(t, Export(nil))
}

func TestCommand(t *testing.T) {
	args := argv.Set{Positional: []string{"x"}}
	assert.Equal(t, "export K=v; echo x", Command(map[string]string{"K": "v"}, "echo {{1}}", args))
	assert.Equal(t, "echo x", Command(nil, "echo {{1}}", args))
}
