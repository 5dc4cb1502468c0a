package envtable

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// userVars maps a target variable to the USER_ variable it is copied from.
var userVars = []struct{ target, source string }{
	{"NPM_TOKEN", "USER_NPM_TOKEN"},
	{"GH_TOKEN", "USER_GITHUB_TOKEN"},
	{"GITHUB_TOKEN", "USER_GITHUB_TOKEN"},
	{"CLOUDFLARE_API_TOKEN", "USER_CLOUDFLARE_TOKEN"},
}

// Table is a handle on the process environment.
type Table struct{}

// Process returns the table backed by the current process environment.
func Process() *Table {
	return &Table{}
}

// Apply sets every variable in overlay. Keys are applied in sorted order.
func (t *Table) Apply(overlay map[string]string) error {
	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := os.Setenv(k, overlay[k]); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return nil
}

// Lookup returns the value of key.
func (t *Table) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ returns the table as KEY=VALUE pairs.
func (t *Table) Environ() []string {
	return os.Environ()
}

// Map returns a copy of the table as a map.
func (t *Table) Map() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			out[k] = v
		}
	}
	return out
}

// PropagateUserVars copies the per-user token variables (USER_NPM_TOKEN and
// friends) onto the names tools expect. Unset sources are skipped.
func (t *Table) PropagateUserVars() error {
	overlay := make(map[string]string)
	for _, uv := range userVars {
		if v, ok := os.LookupEnv(uv.source); ok && v != "" {
			overlay[uv.target] = v
		}
	}
	return t.Apply(overlay)
}

// LoadDotenv reads each file in order and sets the variables it defines.
// Variables already present in the table are left alone, and earlier files
// win over later ones.
func (t *Table) LoadDotenv(paths ...string) error {
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err != nil {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
		overlay := make(map[string]string, len(vars))
		for k, v := range vars {
			if _, exists := os.LookupEnv(k); !exists {
				overlay[k] = v
			}
		}
		if err := t.Apply(overlay); err != nil {
			return err
		}
	}
	return nil
}
