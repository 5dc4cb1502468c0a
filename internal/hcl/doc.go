// Package hcl provides the HCL implementation of the config.Loader interface.
// It parses .madrun.hcl files, evaluates their expressions against the process
// environment and a small function library, and converts the resulting cty
// values into the generic shape config.Decode understands.
package hcl
