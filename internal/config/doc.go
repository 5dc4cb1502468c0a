// Package config defines the typed, format-agnostic model of a project's
// command configuration: a mapping of command names to Raw command specs, the
// callback and spec-function types that configuration may reference, and the
// Context handed to them at run time.
//
// Concrete file formats (HCL, JSON, YAML) are decoded elsewhere into plain Go
// values and converted here by Decode, so every format obeys the same shape
// rules.
package config
