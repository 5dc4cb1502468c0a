package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and decodes every command in
	// it, resolving references to Go functions through r.
	Load(ctx context.Context, path string, r Resolver) (Commands, error)
}
