// Package webtools registers external web tool servers through the
// configured registrar. It contributes no documents; everything it does
// flows through service registrations.
package webtools

import (
	"github.com/trellishq/trellis/internal/plugin"
)

// Priority slots webtools last among the builtins.
const Priority = 60

// searchOption gates the search server; fetch always registers.
const searchOption = "search"

// Plugin implements the webtools builtin.
type Plugin struct{}

// New returns the webtools builtin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:          "webtools",
		CommandName:   "trellis-webtools",
		Version:       "1.0.0",
		Description:   "Fetch and search tool-server registrations",
		Dependencies:  []string{"core"},
		RulesPriority: Priority,
	}
}

func (p *Plugin) Services(cfg plugin.Settings, ctx *plugin.Context) []plugin.ExternalService {
	return []plugin.ExternalService{
		{
			Name:    "fetch",
			Scope:   plugin.ScopeUser,
			Command: "npx",
			Args:    []string{"-y", "web-fetch-server"},
		},
		{
			Name:    "search",
			Scope:   plugin.ScopeProject,
			Command: "{{PROJECT_ROOT}}/tools/search/serve",
			Args:    []string{"--project", "{{PROJECT_NAME}}"},
			Condition: func(cfg plugin.Settings) bool {
				return cfg.BoolOption(searchOption, true)
			},
		},
	}
}
