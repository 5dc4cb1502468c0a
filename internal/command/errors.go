package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingName  = errors.New("missing command name")
	ErrUnavailable  = errors.New("command is unavailable")
	ErrInvalidShape = errors.New("invalid command config")
)

// ShapeError reports a configured spec, or one of its steps, that does not
// have a supported shape.
type ShapeError struct {
	Command string
	// Property is the derived property at fault: env, opts, cmds or cmd.
	// Empty when the whole value has an unsupported type.
	Property string
	// Step is the 0-based step index, or -1 at the command level.
	Step   int
	Reason string
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` command config", e.Command)
	switch {
	case e.Property == "":
		b.WriteString(" has an invalid data type")
	case e.Step >= 0:
		fmt.Fprintf(&b, " contains a CMD (#%d) with invalid data for its derived `%s` property", e.Step+1, e.Property)
	default:
		fmt.Fprintf(&b, " contains invalid data for derived `%s` property", e.Property)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *ShapeError) Unwrap() error { return ErrInvalidShape }

func commandErr(name, prop, reason string) error {
	return &ShapeError{Command: name, Property: prop, Step: -1, Reason: reason}
}

func stepErr(name string, step int, prop, reason string) error {
	return &ShapeError{Command: name, Property: prop, Step: step, Reason: reason}
}
