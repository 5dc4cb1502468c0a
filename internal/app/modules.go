package app

import (
	"github.com/vk/madrun/internal/registry"
	"github.com/vk/madrun/modules/env_vars"
	"github.com/vk/madrun/modules/print"
	"github.com/vk/madrun/modules/project"
)

// coreModules is the definitive list of all modules that are compiled into
// the madrun binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&print.Module{},
	&project.Module{},
}
