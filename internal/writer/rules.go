package writer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/plugin"
)

// RulesWriter materializes one prioritized rule file per contributing plugin.
// Plugins write in ascending rules priority; equal priorities keep
// registration order.
type RulesWriter struct {
	layout *layout.Layout
	files  plugin.Files
}

// NewRulesWriter builds a writer over the given layout and file facade.
func NewRulesWriter(lay *layout.Layout, files plugin.Files) *RulesWriter {
	return &RulesWriter{layout: lay, files: files}
}

// Write runs one rules pass over the given plugins.
func (w *RulesWriter) Write(plugins []plugin.Plugin, cfg plugin.RunConfig, ctx *plugin.Context) []Result {
	ordered := make([]plugin.Plugin, len(plugins))
	copy(ordered, plugins)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Descriptor().RulesPriority < ordered[j].Descriptor().RulesPriority
	})

	var results []Result
	for _, p := range ordered {
		desc := p.Descriptor()
		settings := cfg.For(desc.Name)
		if !settings.IsEnabled() {
			continue
		}
		provider, ok := p.(plugin.RuleProvider)
		if !ok {
			continue
		}
		rule := provider.Rule()
		if rule == nil {
			continue
		}
		result := Result{Kind: KindRule, Plugin: desc.Name, Name: rule.BaseName, Path: w.layout.RulePath(desc.RulesPriority, rule.BaseName)}
		text, err := rule.Generate(settings, ctx)
		if err != nil {
			result.Err = fmt.Errorf("writer: rule %s: %w", rule.BaseName, err)
			ctx.Console.Warning("%s", result.Err)
			results = append(results, result)
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			// A plugin with nothing to say contributes no file.
			continue
		}
		content := trimmed + "\n"
		if len(rule.PathsFilter) > 0 {
			header, err := ruleHeader(rule.PathsFilter)
			if err != nil {
				result.Err = fmt.Errorf("writer: rule %s: %w", rule.BaseName, err)
				ctx.Console.Warning("%s", result.Err)
				results = append(results, result)
				continue
			}
			content = header + content
		}
		if err := w.files.WriteText(result.Path, content); err != nil {
			result.Err = fmt.Errorf("writer: rule %s: %w", rule.BaseName, err)
			ctx.Console.Warning("%s", result.Err)
			results = append(results, result)
			continue
		}
		ctx.Console.Success("wrote %s", rel(w.layout.Root(), result.Path))
		results = append(results, result)
	}
	return results
}
