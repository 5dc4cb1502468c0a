package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
)

// JSONLoader reads JSON files. Comments and trailing commas are allowed.
type JSONLoader struct{}

// NewJSONLoader creates a new JSON configuration loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load implements config.Loader.
func (l *JSONLoader) Load(ctx context.Context, path string, r config.Resolver) (config.Commands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}
	return l.Decode(ctx, path, data, r)
}

// Decode parses data as JSONC. filename is only used in messages.
func (l *JSONLoader) Decode(ctx context.Context, filename string, data []byte, r config.Resolver) (config.Commands, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("JSON loader started.", "file", filename)

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var entries map[string]any
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse JSON file %s: %w", filename, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("failed to parse JSON file %s: top level must be an object", filename)
	}

	logger.Debug("JSON loading complete.", "commands", len(entries))
	return config.DecodeAll(entries, r), nil
}
