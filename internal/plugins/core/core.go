// Package core is the builtin every other builtin depends on. It seeds the
// shared store with project facts, contributes the ground-rules section of
// the root document, the conventions rule, and the agent settings file.
package core

import (
	"github.com/trellishq/trellis/internal/plugin"
)

const (
	// Priority slots the conventions rule ahead of every other builtin.
	Priority = 10

	sectionTemplate = "sections/core.md"
	ruleTemplate    = "rules/conventions.md"
)

// defaultSettings matches the agent settings schema with nothing granted.
// Formatting mirrors the JSON merge output so a second run is a no-op.
const defaultSettings = `{
  "permissions": {
    "allow": [],
    "deny": []
  }
}`

// Plugin implements the core builtin.
type Plugin struct{}

// New returns the core builtin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:          "core",
		CommandName:   "trellis-core",
		Version:       "1.0.0",
		Description:   "Ground rules, agent settings, and shared project facts",
		RulesPriority: Priority,
	}
}

// BeforeInit publishes project facts for later plugins, including
// data-driven ones that only see the shared store.
func (p *Plugin) BeforeInit(ctx *plugin.Context) error {
	ctx.Shared.Set("core.project_name", ctx.ProjectName)
	ctx.Shared.Set("core.project_root", ctx.ProjectRoot)
	ctx.Shared.Set("core.run_id", ctx.RunID)
	return nil
}

func (p *Plugin) Prompt() *plugin.PromptContribution {
	return &plugin.PromptContribution{
		Placeholder: "CORE_GUIDELINES",
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			return ctx.Templates.LoadAndRender(sectionTemplate, map[string]string{
				"PROJECT_NAME": ctx.ProjectName,
			})
		},
	}
}

func (p *Plugin) Rule() *plugin.RuleContribution {
	return &plugin.RuleContribution{
		BaseName: "conventions",
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			return ctx.Templates.LoadAndRender(ruleTemplate, map[string]string{
				"PROJECT_NAME": ctx.ProjectName,
			})
		},
	}
}

func (p *Plugin) DataFiles(cfg plugin.Settings, ctx *plugin.Context) []plugin.DataFile {
	return []plugin.DataFile{
		{
			Path:    "settings.json",
			Content: defaultSettings,
			Format:  plugin.FormatJSON,
			Scope:   plugin.ScopeProject,
		},
	}
}
