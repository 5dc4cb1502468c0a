package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/madrun/internal/argv"
	"github.com/vk/madrun/internal/config"
)

type testModule struct{}

func (testModule) Register(r *Registry) {
	r.RegisterCallback("hello", func(context.Context, string, argv.Set, *config.Context) error { return nil })
	r.RegisterFunc("gen", func(context.Context, argv.Set, *config.Context) (config.Raw, error) {
		return config.String("echo gen"), nil
	})
}

func TestRegistry_ResolvesRegisteredNames(t *testing.T) {
	r := New(testModule{})

	_, ok := r.Callback("hello")
	assert.True(t, ok)
	_, ok = r.Func("gen")
	assert.True(t, ok)
	_, ok = r.Callback("gen")
	assert.False(t, ok)
	assert.Equal(t, []string{"gen", "hello"}, r.Names())

	raw := config.Decode(map[string]any{"func": "gen"}, r)
	require.Equal(t, config.KindFunc, raw.Kind)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := New(testModule{})
	assert.Panics(t, func() { testModule{}.Register(r) })
}

func TestValidate(t *testing.T) {
	r := New(testModule{})
	cmds := config.DecodeAll(map[string]any{
		"ok":  []any{"echo", map[string]any{"call": "hello"}},
		"bad": []any{"echo", map[string]any{"call": "nope"}},
		"odd": 42.0,
	}, r)

	err := Validate(cmds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `command 'bad': step 2: invalid data for derived `+"`cmd`"+` property: no callback registered as "nope"`)
	assert.Contains(t, err.Error(), "command 'odd': unsupported value of type float64")
	assert.NotContains(t, err.Error(), "command 'ok'")

	assert.NoError(t, Validate(config.Commands{"x": config.String("y")}))
}
