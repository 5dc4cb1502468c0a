package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/madrun/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"--madrun-help"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"build", "--madrun-log-format", "xml"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid log format")
}

func TestRun_CommandFromConfig(t *testing.T) {
	dir := t.TempDir()
	config := `{"greet": {"opts": {"shell": "builtin"}, "cmds": ["echo hello ${@}"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".madrun.jsonc"), []byte(config), 0o600))
	chdir(t, dir)

	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"greet", "world", "--loud"}))
	assert.Equal(t, "hello world --loud\n", out.String())
}

func TestRun_StepExitStatusBecomesExitCode(t *testing.T) {
	dir := t.TempDir()
	config := "fail:\n  opts: {shell: builtin}\n  cmds: [\"exit 3\", \"echo unreachable\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".madrun.yml"), []byte(config), 0o600))
	chdir(t, dir)

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"fail"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, exitErr.Message, "`fail` command failed at CMD #1")
	assert.Empty(t, out.String())
}

func TestRun_UnknownCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".madrun.json"), []byte(`{"a": "echo a"}`), 0o600))
	chdir(t, dir)

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"b"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "`b` command is unavailable")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
