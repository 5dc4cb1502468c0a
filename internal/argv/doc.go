// Package argv holds the Argument Set a command runs with: ordered positional
// values plus named flags, and a small parser that builds one from raw process
// arguments without requiring the flags to be declared up front.
package argv
