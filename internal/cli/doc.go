// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// separates madrun's own reserved flags from the arguments passed through to
// the configured command.
package cli
