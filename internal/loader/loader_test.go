package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/fsutil"
	"github.com/vk/madrun/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFind_NearestAndOrdered(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".madrun.yaml"), "a: echo a\n")
	writeFile(t, filepath.Join(root, ".madrun.json"), `{"a": "echo a"}`)
	deep := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := Find(deep, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".madrun.json"), got)

	_, err = Find(deep, filepath.Join(root, "x"))
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestLoad_JSONWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".madrun.jsonc")
	writeFile(t, path, `{
  // plain string
  "build": "go build ./...",
  "test": {
    "env": {"CGO_ENABLED": 0, "VERBOSE": true},
    "cmds": ["go vet ./...", ["go", "test", "{{@}}"], {"call": "hello"}],
  },
}`)

	cmds, err := Load(testutil.Context(), path, testutil.Resolver{"hello": testutil.Noop})
	require.NoError(t, err)

	assert.Equal(t, config.String("go build ./..."), cmds["build"])
	test := cmds["test"]
	require.Equal(t, config.KindObject, test.Kind)
	assert.Equal(t, config.Env{"CGO_ENABLED": "0", "VERBOSE": "true"}, test.Object.Env)
	steps := test.Object.Cmds.List
	require.Len(t, steps, 3)
	assert.Equal(t, config.Parts("go", "test", "{{@}}"), steps[1])
	assert.Equal(t, config.KindCallback, steps[2].Kind)
}

func TestLoad_JSONTopLevelMustBeObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".madrun.json")
	writeFile(t, path, `["echo"]`)
	_, err := Load(testutil.Context(), path, nil)
	require.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".madrun.yml")
	writeFile(t, path, `
build: make
deploy:
  env:
    PORT: 8080
  opts:
    cwd: web
  cmds:
    - npm run build
    - cmd: npm publish
      env:
        TAG: next
`)

	cmds, err := Load(testutil.Context(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, config.String("make"), cmds["build"])
	deploy := cmds["deploy"]
	require.Equal(t, config.KindObject, deploy.Kind)
	assert.Equal(t, config.Env{"PORT": "8080"}, deploy.Object.Env)
	assert.Equal(t, config.Opts{"cwd": "web"}, deploy.Object.Opts)
	steps := deploy.Object.Cmds.List
	require.Len(t, steps, 2)
	assert.Equal(t, config.Step(config.Env{"TAG": "next"}, nil, config.String("npm publish")), steps[1])
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(testutil.Context(), "/x/.madrun.toml", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDefaults(t *testing.T) {
	cmds := Defaults(testutil.Resolver{"project.new": testutil.Noop})
	assert.Equal(t, config.KindCallback, cmds["new"].Kind)

	cmds = Defaults(nil)
	assert.Equal(t, config.KindInvalid, cmds["new"].Kind)
}
