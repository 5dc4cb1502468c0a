package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads YAML files.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML configuration loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load implements config.Loader.
func (l *YAMLLoader) Load(ctx context.Context, path string, r config.Resolver) (config.Commands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	return l.Decode(ctx, path, data, r)
}

// Decode parses data as YAML. filename is only used in messages.
func (l *YAMLLoader) Decode(ctx context.Context, filename string, data []byte, r config.Resolver) (config.Commands, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "file", filename)

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}

	entries := make(map[string]any, len(doc))
	for k, v := range doc {
		entries[k] = normalizeYAML(v)
	}

	logger.Debug("YAML loading complete.", "commands", len(entries))
	return config.DecodeAll(entries, r), nil
}

// normalizeYAML converts the map[any]any nodes yaml produces for mappings
// with non-string keys into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = normalizeYAML(el)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[fmt.Sprint(k)] = normalizeYAML(el)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalizeYAML(el)
		}
		return out
	}
	return v
}
