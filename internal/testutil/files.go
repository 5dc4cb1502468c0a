package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/madrun/internal/ctxlog"
)

// WriteFiles creates a temporary root directory holding files, keyed by
// slash-separated relative path, and returns the root.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// Context returns a background context carrying a logger that discards
// everything.
func Context() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}
