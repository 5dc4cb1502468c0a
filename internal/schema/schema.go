package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the top-level structure of a .madrun.hcl file: any number of
// `command` blocks, plus plain attributes for the simple string and list
// forms.
type File struct {
	Commands []*Command `hcl:"command,block"`
	Remain   hcl.Body   `hcl:",remain"`
}

// Command represents a `command "name" { ... }` block. Its body holds the
// attributes of the explicit form (env, opts, cmds), or a `func` or `call`
// reference to a registered Go function.
type Command struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
