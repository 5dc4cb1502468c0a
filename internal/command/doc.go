// Package command resolves a command name against the configured commands and
// normalizes its spec, whatever shape the author used, into an ordered list
// of steps, each with its fully merged environment and options.
package command
