package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/madrun/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// TestOutput collects what an App wrote during a test.
type TestOutput struct {
	Logs   *SafeBuffer
	Stdout *SafeBuffer
	Stderr *SafeBuffer
}

// SetupAppTest creates a new app instance for system testing. Output
// writers in cfg are replaced with buffers.
func SetupAppTest(t *testing.T, cfg Config, modules ...registry.Module) (*App, *TestOutput) {
	t.Helper()

	out := &TestOutput{Logs: &SafeBuffer{}, Stdout: &SafeBuffer{}, Stderr: &SafeBuffer{}}
	cfg.Stdout = out.Stdout
	cfg.Stderr = out.Stderr
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	appConfig, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test app config: %v", err)
	}
	testApp := NewApp(out.Logs, appConfig, modules...)

	t.Cleanup(func() {
		if os.Getenv("MADRUN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.Logs.String())
		}
	})

	return testApp, out
}
