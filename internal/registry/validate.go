package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/madrun/internal/config"
)

// Validate reports every configured command whose shape, or a step's shape,
// could not be decoded. Nothing is rejected here: a broken entry only fails
// when it is invoked, so callers typically log the result as a warning.
func Validate(cmds config.Commands) error {
	var errs []string

	names := make([]string, 0, len(cmds))
	for n := range cmds {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, problem := range invalidParts(cmds[name]) {
			errs = append(errs, fmt.Sprintf("command '%s': %s", name, problem))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func invalidParts(raw config.Raw) []string {
	switch raw.Kind {
	case config.KindInvalid:
		if raw.Err == nil {
			return []string{"invalid"}
		}
		return []string{raw.Err.Error()}
	case config.KindList:
		var out []string
		for i, el := range raw.List {
			for _, p := range invalidParts(el) {
				out = append(out, fmt.Sprintf("step %d: %s", i+1, p))
			}
		}
		return out
	case config.KindObject:
		if raw.Object == nil {
			return nil
		}
		var out []string
		if raw.Object.Cmds != nil {
			out = append(out, invalidParts(*raw.Object.Cmds)...)
		}
		if raw.Object.Cmd != nil {
			out = append(out, invalidParts(*raw.Object.Cmd)...)
		}
		return out
	}
	return nil
}
