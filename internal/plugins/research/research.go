// Package research contributes the deep-research skill behind an opt-in
// gate: an interactive run asks once before installing it.
package research

import (
	"github.com/trellishq/trellis/internal/plugin"
)

// Priority slots the research contribution after workflows.
const Priority = 50

const (
	skillTemplate   = "skills/deep-research.md"
	sectionTemplate = "sections/research.md"

	// installKey records the gate's answer in the shared store.
	installKey = "research.install"
)

// Plugin implements the research builtin.
type Plugin struct{}

// New returns the research builtin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:          "research",
		CommandName:   "trellis-research",
		Version:       "1.0.0",
		Description:   "Deep-research skill for multi-hop questions",
		Dependencies:  []string{"core"},
		RulesPriority: Priority,
	}
}

// BeforeInit asks whether to install the skill. Without a prompter the
// answer defaults to yes, so scripted runs install everything.
func (p *Plugin) BeforeInit(ctx *plugin.Context) error {
	install := true
	if ctx.UI != nil {
		question := "install the deep-research skill?"
		if ctx.I18n != nil {
			question = ctx.I18n.T("prompt.research.confirm")
		}
		answer, err := ctx.UI.Confirm(question, true)
		if err != nil {
			return err
		}
		install = answer
	}
	ctx.Shared.Set(installKey, install)
	return nil
}

func (p *Plugin) Skills(cfg plugin.Settings, ctx *plugin.Context) []plugin.Skill {
	if !installWanted(ctx) {
		return nil
	}
	return []plugin.Skill{
		{
			Name:         "deep-research",
			Description:  "Layered digging when one lookup is not enough",
			Version:      "1.0.0",
			TemplatePath: skillTemplate,
		},
	}
}

func (p *Plugin) Prompt() *plugin.PromptContribution {
	return &plugin.PromptContribution{
		Placeholder: "RESEARCH_SKILLS",
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			if !installWanted(ctx) {
				return "", nil
			}
			return ctx.Templates.LoadAndRender(sectionTemplate, map[string]string{
				"PROJECT_NAME": ctx.ProjectName,
			})
		},
	}
}

// installWanted reads the gate's answer; a run that never fired beforeInit
// counts as accepting.
func installWanted(ctx *plugin.Context) bool {
	if ctx.Shared == nil || !ctx.Shared.Has(installKey) {
		return true
	}
	return ctx.Shared.Bool(installKey)
}
