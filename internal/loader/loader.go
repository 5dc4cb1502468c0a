package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/fsutil"
	"github.com/vk/madrun/internal/hcl"
)

// ConfigFiles are the recognized configuration file names, in lookup order.
var ConfigFiles = []string{
	".madrun.hcl",
	".madrun.json",
	".madrun.jsonc",
	".madrun.yaml",
	".madrun.yml",
}

// ErrUnsupportedFormat is returned for a file whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Find searches dir and its parents, not past stopAt when it is non-empty, for
// the nearest configuration file. It returns fsutil.ErrNotFound when there is
// none.
func Find(dir, stopAt string) (string, error) {
	return fsutil.FindUp(dir, stopAt, ConfigFiles...)
}

// ForFile returns the loader matching the extension of path.
func ForFile(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".json", ".jsonc":
		return NewJSONLoader(), nil
	case ".yaml", ".yml":
		return NewYAMLLoader(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads path with the loader matching its extension.
func Load(ctx context.Context, path string, r config.Resolver) (config.Commands, error) {
	l, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, path, r)
}

// Defaults are the commands available when no configuration file exists.
func Defaults(r config.Resolver) config.Commands {
	return config.DecodeAll(map[string]any{
		"new": map[string]any{"call": "project.new"},
	}, r)
}
