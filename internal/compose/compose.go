// Package compose assembles the root document from a template, static
// variables, and every enabled plugin's prompt contribution. Assembly never
// fails on a token: unknown placeholders strip to nothing and a broken
// contribution degrades to an empty section, so the document always renders.
package compose

import (
	"fmt"

	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/template"
)

// Assembler renders one root template.
type Assembler struct {
	templatePath string
	vars         map[string]string
}

// New builds an assembler for the template at templatePath with the given
// static variables.
func New(templatePath string, vars map[string]string) *Assembler {
	return &Assembler{templatePath: templatePath, vars: vars}
}

// Assemble loads the template, substitutes static variables, renders each
// plugin's prompt section in the given order, strips leftover tokens, and
// normalizes whitespace. A disabled plugin's placeholder resolves to the
// empty string.
func (a *Assembler) Assemble(plugins []plugin.Plugin, cfg plugin.RunConfig, ctx *plugin.Context) (string, error) {
	text, err := ctx.Templates.Load(a.templatePath)
	if err != nil {
		return "", fmt.Errorf("compose: root template: %w", err)
	}
	text = template.ReplaceAll(text, a.vars)
	for _, p := range plugins {
		provider, ok := p.(plugin.PromptProvider)
		if !ok {
			continue
		}
		contribution := provider.Prompt()
		if contribution == nil {
			continue
		}
		name := p.Descriptor().Name
		section := ""
		if cfg.IsEnabled(name) {
			generated, err := contribution.Generate(cfg.For(name), ctx)
			if err != nil {
				ctx.Console.Warning("compose: %s section: %v", name, err)
			} else {
				section = generated
			}
		}
		text = template.Replace(text, contribution.Placeholder, section)
	}
	text = template.Strip(text)
	return template.Normalize(text), nil
}

// Check extracts every placeholder in the template and reports the ones no
// static variable and no plugin contribution covers, in first-appearance
// order. Disabled plugins still count as coverage; their sections resolve to
// empty at assembly time rather than leaking a token.
func (a *Assembler) Check(plugins []plugin.Plugin, ctx *plugin.Context) ([]string, error) {
	text, err := ctx.Templates.Load(a.templatePath)
	if err != nil {
		return nil, fmt.Errorf("compose: root template: %w", err)
	}
	covered := make(map[string]struct{}, len(a.vars))
	for name := range a.vars {
		covered[name] = struct{}{}
	}
	for _, p := range plugins {
		provider, ok := p.(plugin.PromptProvider)
		if !ok {
			continue
		}
		if contribution := provider.Prompt(); contribution != nil {
			covered[contribution.Placeholder] = struct{}{}
		}
	}
	var unmatched []string
	for _, token := range template.Extract(text) {
		if _, ok := covered[token]; !ok {
			unmatched = append(unmatched, token)
		}
	}
	return unmatched, nil
}
