// Package loader locates the configuration file for an invocation and picks
// the format-specific loader for it.
//
// Supported formats are HCL (.madrun.hcl), JSON with comments (.madrun.json,
// .madrun.jsonc) and YAML (.madrun.yaml, .madrun.yml). All of them produce the
// same generic value tree, which config.DecodeAll turns into command specs.
package loader
