package plugins

import (
	"github.com/trellishq/trellis/internal/plugin"
)

// declared adapts a normalized Definition into a plugin value. Every
// provider surface is present; empty declarations contribute nothing.
type declared struct {
	def Definition
}

func newDeclared(def Definition) *declared {
	return &declared{def: def}
}

func (d *declared) Descriptor() plugin.Descriptor {
	return d.def.Descriptor()
}

func (d *declared) Commands(cfg plugin.Settings, ctx *plugin.Context) []plugin.SlashCommand {
	out := make([]plugin.SlashCommand, 0, len(d.def.Commands))
	for _, cmd := range d.def.Commands {
		out = append(out, plugin.SlashCommand{
			Name:         cmd.Name,
			Description:  cmd.Description,
			ArgumentHint: cmd.ArgumentHint,
			TemplatePath: cmd.Template,
			Vars:         d.def.Variables,
		})
	}
	return out
}

func (d *declared) Skills(cfg plugin.Settings, ctx *plugin.Context) []plugin.Skill {
	out := make([]plugin.Skill, 0, len(d.def.Skills))
	for _, skill := range d.def.Skills {
		out = append(out, plugin.Skill{
			Name:         skill.Name,
			Description:  skill.Description,
			Version:      skill.Version,
			TemplatePath: skill.Template,
			Vars:         d.def.Variables,
		})
	}
	return out
}

func (d *declared) Rule() *plugin.RuleContribution {
	rule := d.def.Rule
	if rule == nil {
		return nil
	}
	return &plugin.RuleContribution{
		BaseName:    rule.BaseName,
		PathsFilter: append([]string{}, rule.Paths...),
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			return ctx.Templates.LoadAndRender(rule.Template, d.renderVars(ctx))
		},
	}
}

func (d *declared) Prompt() *plugin.PromptContribution {
	prompt := d.def.Prompt
	if prompt == nil {
		return nil
	}
	return &plugin.PromptContribution{
		Placeholder: prompt.Placeholder,
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			return ctx.Templates.LoadAndRender(prompt.Template, d.renderVars(ctx))
		},
	}
}

func (d *declared) Services(cfg plugin.Settings, ctx *plugin.Context) []plugin.ExternalService {
	out := make([]plugin.ExternalService, 0, len(d.def.Services))
	for _, svc := range d.def.Services {
		scope, err := parseScope(svc.Scope)
		if err != nil {
			// Validate already rejected unknown scopes.
			continue
		}
		service := plugin.ExternalService{
			Name:    svc.Name,
			Scope:   scope,
			Command: svc.Command,
			Args:    append([]string{}, svc.Args...),
		}
		if option := svc.Option; option != "" {
			service.Condition = func(cfg plugin.Settings) bool {
				return cfg.BoolOption(option, true)
			}
		}
		out = append(out, service)
	}
	return out
}

func (d *declared) DataFiles(cfg plugin.Settings, ctx *plugin.Context) []plugin.DataFile {
	out := make([]plugin.DataFile, 0, len(d.def.DataFiles))
	for _, df := range d.def.DataFiles {
		format, err := parseFormat(df.Format)
		if err != nil {
			continue
		}
		scope, err := parseScope(df.Scope)
		if err != nil {
			continue
		}
		content := df.Content
		if df.Template != "" {
			rendered, err := ctx.Templates.LoadAndRender(df.Template, d.renderVars(ctx))
			if err != nil {
				ctx.Console.Warning("plugins: %s: data file %s: %v", d.def.Name, df.Path, err)
				continue
			}
			content = rendered
		}
		out = append(out, plugin.DataFile{
			Path:    df.Path,
			Content: content,
			Format:  format,
			Scope:   scope,
		})
	}
	return out
}

// renderVars merges the standard project tokens with the definition's own
// variables. Definition values win on collision.
func (d *declared) renderVars(ctx *plugin.Context) map[string]string {
	vars := map[string]string{
		"PROJECT_NAME": ctx.ProjectName,
		"PROJECT_ROOT": ctx.ProjectRoot,
		"RUN_ID":       ctx.RunID,
	}
	for key, value := range d.def.Variables {
		vars[key] = value
	}
	return vars
}
