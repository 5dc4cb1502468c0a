package engine

import (
	"errors"
	"fmt"

	"github.com/vk/madrun/internal/shell"
)

// ErrAlreadyRun is returned when Run is called on a Driver that is not idle.
var ErrAlreadyRun = errors.New("driver has already run")

// StepError is a step that failed during execution.
type StepError struct {
	Command string
	// Step is the 1-based position of the failed step.
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("`%s` command failed at CMD #%d: %v", e.Command, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ExitCode returns the exit status of the failed shell command, if it
// produced one.
func (e *StepError) ExitCode() (int, bool) {
	return shell.ExitCode(e.Err)
}
