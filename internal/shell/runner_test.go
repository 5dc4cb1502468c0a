package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/madrun/internal/config"
)

type staticEnv []string

func (e staticEnv) Environ() []string { return e }

func newTestRunner(t *testing.T, env ...string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Runner{
		Dir:    t.TempDir(),
		Env:    staticEnv(env),
		Stdout: &out,
		Stderr: &out,
		IsTTY:  func() bool { return false },
	}, &out
}

var builtin = config.Opts{"shell": Builtin}

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions("/base", nil)
	require.NoError(t, err)
	assert.Equal(t, Options{Dir: "/base", Shell: DefaultShell, Stdin: StdinInherit}, o)

	o, err = ParseOptions("/base", config.Opts{"cwd": "web", "quiet": "true", "shell": "zsh", "stdin": "null", "other": 1})
	require.NoError(t, err)
	assert.Equal(t, Options{Dir: filepath.Join("/base", "web"), Quiet: true, Shell: "zsh", Stdin: StdinNull}, o)

	o, err = ParseOptions("/base", config.Opts{"cwd": "/abs"})
	require.NoError(t, err)
	assert.Equal(t, "/abs", o.Dir)

	for _, bad := range []config.Opts{
		{"cwd": 1},
		{"quiet": "maybe"},
		{"shell": ""},
		{"stdin": "pipe"},
	} {
		_, err := ParseOptions("/base", bad)
		assert.Error(t, err, "opts %v", bad)
	}
}

func TestExec_Builtin(t *testing.T) {
	r, out := newTestRunner(t, "GREETING=hello")
	require.NoError(t, r.Exec(context.Background(), `echo "$GREETING world"`, builtin))
	assert.Equal(t, "hello world\n", out.String())
}

func TestExec_BuiltinExportClause(t *testing.T) {
	r, out := newTestRunner(t)
	require.NoError(t, r.Exec(context.Background(), `export A='x y'; echo "$A"`, builtin))
	assert.Equal(t, "x y\n", out.String())
}

func TestExec_Cwd(t *testing.T) {
	r, _ := newTestRunner(t)
	require.NoError(t, os.Mkdir(filepath.Join(r.Dir, "sub"), 0o755))

	opts := config.Opts{"shell": Builtin, "cwd": "sub"}
	require.NoError(t, r.Exec(context.Background(), `echo done > marker.txt`, opts))

	data, err := os.ReadFile(filepath.Join(r.Dir, "sub", "marker.txt"))
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(data))
}

func TestExec_Quiet(t *testing.T) {
	r, out := newTestRunner(t)
	require.NoError(t, r.Exec(context.Background(), `echo hidden`, config.Opts{"shell": Builtin, "quiet": true}))
	assert.Empty(t, out.String())
}

func TestExec_ExitStatus(t *testing.T) {
	r, _ := newTestRunner(t)
	err := r.Exec(context.Background(), `exit 3`, builtin)

	var ee *ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.Code)
	code, ok := ExitCode(err)
	assert.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestExec_ParseError(t *testing.T) {
	r, _ := newTestRunner(t)
	err := r.Exec(context.Background(), `echo "unterminated`, builtin)
	require.Error(t, err)
	_, ok := ExitCode(err)
	assert.False(t, ok)
}

func TestSpawn_QuotesArguments(t *testing.T) {
	r, out := newTestRunner(t)
	require.NoError(t, r.Spawn(context.Background(), "echo", []string{"a b", "$HOME"}, builtin))
	assert.Equal(t, "a b $HOME\n", out.String())
}

func TestEnviron_ParentIsTTY(t *testing.T) {
	r, _ := newTestRunner(t, "A=1")
	assert.Equal(t, []string{"A=1", "PARENT_IS_TTY=false"}, r.environ())

	r.IsTTY = func() bool { return true }
	assert.Equal(t, []string{"A=1", "PARENT_IS_TTY=true"}, r.environ())

	r.IsTTY = func() bool { return false }
	r.Env = staticEnv{"PARENT_IS_TTY=false", "B=2"}
	assert.Equal(t, []string{"B=2", "PARENT_IS_TTY=true"}, r.environ(), "any preset value counts as a terminal parent")

	r.Env = staticEnv{"PARENT_IS_TTY="}
	assert.Equal(t, []string{"PARENT_IS_TTY=false"}, r.environ())
}
