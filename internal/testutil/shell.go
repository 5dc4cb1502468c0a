package testutil

import (
	"context"

	"github.com/vk/madrun/internal/config"
)

// Call is one recorded Exec or Spawn. Exec calls have an empty Name and the
// script in Script.
type Call struct {
	Name   string
	Args   []string
	Script string
	Opts   config.Opts
}

// RecordingShell implements config.Shell by recording every call.
type RecordingShell struct {
	Calls []Call
	// Fail maps a script or program name to the error returned for it.
	Fail map[string]error
	// OnSpawn, when set, runs for every Spawn after it is recorded.
	OnSpawn func(name string, args []string, opts config.Opts) error
}

// Exec implements config.Shell.
func (s *RecordingShell) Exec(_ context.Context, script string, opts config.Opts) error {
	s.Calls = append(s.Calls, Call{Script: script, Opts: opts})
	return s.Fail[script]
}

// Spawn implements config.Shell.
func (s *RecordingShell) Spawn(_ context.Context, name string, args []string, opts config.Opts) error {
	s.Calls = append(s.Calls, Call{Name: name, Args: args, Opts: opts})
	if err := s.Fail[name]; err != nil {
		return err
	}
	if s.OnSpawn != nil {
		return s.OnSpawn(name, args, opts)
	}
	return nil
}

// Scripts returns the scripts passed to Exec, in order.
func (s *RecordingShell) Scripts() []string {
	var out []string
	for _, c := range s.Calls {
		if c.Name == "" {
			out = append(out, c.Script)
		}
	}
	return out
}
