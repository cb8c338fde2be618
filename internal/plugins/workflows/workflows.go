// Package workflows contributes the plan and review slash commands plus the
// root-document section describing when to reach for them.
package workflows

import (
	"github.com/trellishq/trellis/internal/plugin"
)

// Priority slots the workflows contribution after git.
const Priority = 40

const sectionTemplate = "sections/workflows.md"

// Plugin implements the workflows builtin.
type Plugin struct{}

// New returns the workflows builtin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:          "workflows",
		CommandName:   "trellis-workflows",
		Version:       "1.0.0",
		Description:   "Plan and review slash commands",
		Dependencies:  []string{"core"},
		RulesPriority: Priority,
	}
}

func (p *Plugin) Commands(cfg plugin.Settings, ctx *plugin.Context) []plugin.SlashCommand {
	return []plugin.SlashCommand{
		{
			Name:         "plan",
			Description:  "Draft an ordered implementation plan before coding",
			ArgumentHint: "[task]",
			TemplatePath: "commands/plan.md",
		},
		{
			Name:         "review",
			Description:  "Walk the current diff for defects and style drift",
			TemplatePath: "commands/review.md",
		},
	}
}

func (p *Plugin) Prompt() *plugin.PromptContribution {
	return &plugin.PromptContribution{
		Placeholder: "WORKFLOWS",
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			return ctx.Templates.LoadAndRender(sectionTemplate, map[string]string{
				"PROJECT_NAME": ctx.ProjectName,
			})
		},
	}
}
