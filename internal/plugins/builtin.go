// Package plugins assembles the builtin plugin set. Each builtin lives in
// its own package; this file is the only place that knows them all.
package plugins

import (
	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/plugins/core"
	"github.com/trellishq/trellis/internal/plugins/git"
	"github.com/trellishq/trellis/internal/plugins/research"
	"github.com/trellishq/trellis/internal/plugins/webtools"
	"github.com/trellishq/trellis/internal/plugins/workflows"
)

// Builtins returns the statically linked plugin set in registration order.
func Builtins() []plugin.Plugin {
	return []plugin.Plugin{
		core.New(),
		git.New(),
		workflows.New(),
		research.New(),
		webtools.New(),
	}
}

// RegisterBuiltins installs all of the builtin plugins into the provided
// registry.
func RegisterBuiltins(reg *plugin.Registry) {
	if reg == nil {
		return
	}
	for _, p := range Builtins() {
		reg.MustRegister(p)
	}
}
