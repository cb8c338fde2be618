package writer

import (
	"fmt"
	"strings"

	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/merge"
	"github.com/trellishq/trellis/internal/plugin"
)

// ResourceWriter materializes slash commands, skills, and scoped data files.
// Plugins are visited in registration order; within one plugin, declarations
// write in declaration order.
type ResourceWriter struct {
	layout *layout.Layout
	files  plugin.Files
	vars   map[string]string
}

// ResourceOption adjusts a ResourceWriter at construction.
type ResourceOption func(*ResourceWriter)

// WithVars supplies static variables rendered into command and skill
// templates.
func WithVars(vars map[string]string) ResourceOption {
	return func(w *ResourceWriter) {
		w.vars = vars
	}
}

// NewResourceWriter builds a writer over the given layout and file facade.
func NewResourceWriter(lay *layout.Layout, files plugin.Files, opts ...ResourceOption) *ResourceWriter {
	w := &ResourceWriter{layout: lay, files: files}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write runs one resource pass over the given plugins.
func (w *ResourceWriter) Write(plugins []plugin.Plugin, cfg plugin.RunConfig, ctx *plugin.Context) []Result {
	var results []Result
	for _, p := range plugins {
		desc := p.Descriptor()
		settings := cfg.For(desc.Name)
		if !settings.IsEnabled() {
			continue
		}
		if provider, ok := p.(plugin.CommandProvider); ok {
			for _, cmd := range provider.Commands(settings, ctx) {
				results = append(results, w.writeCommand(desc.Name, cmd, ctx))
			}
		}
		if provider, ok := p.(plugin.SkillProvider); ok {
			for _, skill := range provider.Skills(settings, ctx) {
				results = append(results, w.writeSkill(desc.Name, skill, ctx))
			}
		}
		if provider, ok := p.(plugin.DataFileProvider); ok {
			for _, df := range provider.DataFiles(settings, ctx) {
				results = append(results, w.writeDataFile(desc.Name, df, ctx))
			}
		}
	}
	return results
}

func (w *ResourceWriter) writeCommand(pluginName string, cmd plugin.SlashCommand, ctx *plugin.Context) Result {
	result := Result{Kind: KindCommand, Plugin: pluginName, Name: cmd.Name, Path: w.layout.CommandPath(cmd.Name)}
	body, err := ctx.Templates.LoadAndRender(cmd.TemplatePath, w.renderVars(cmd.Vars))
	if err != nil {
		return w.fail(result, fmt.Errorf("writer: command %s: %w", cmd.Name, err), ctx)
	}
	header, err := commandHeader(cmd)
	if err != nil {
		return w.fail(result, fmt.Errorf("writer: command %s: %w", cmd.Name, err), ctx)
	}
	if err := w.files.WriteText(result.Path, header+ensureTrailingNewline(strings.TrimSpace(body))); err != nil {
		return w.fail(result, fmt.Errorf("writer: command %s: %w", cmd.Name, err), ctx)
	}
	ctx.Console.Success("wrote %s", rel(w.layout.Root(), result.Path))
	return result
}

func (w *ResourceWriter) writeSkill(pluginName string, skill plugin.Skill, ctx *plugin.Context) Result {
	result := Result{Kind: KindSkill, Plugin: pluginName, Name: skill.Name, Path: w.layout.SkillPath(skill.Name)}
	body, err := ctx.Templates.LoadAndRender(skill.TemplatePath, w.renderVars(skill.Vars))
	if err != nil {
		return w.fail(result, fmt.Errorf("writer: skill %s: %w", skill.Name, err), ctx)
	}
	header, err := skillHeader(skill)
	if err != nil {
		return w.fail(result, fmt.Errorf("writer: skill %s: %w", skill.Name, err), ctx)
	}
	if err := w.files.WriteText(result.Path, header+ensureTrailingNewline(strings.TrimSpace(body))); err != nil {
		return w.fail(result, fmt.Errorf("writer: skill %s: %w", skill.Name, err), ctx)
	}
	ctx.Console.Success("wrote %s", rel(w.layout.Root(), result.Path))
	return result
}

func (w *ResourceWriter) writeDataFile(pluginName string, df plugin.DataFile, ctx *plugin.Context) Result {
	result := Result{Kind: KindDataFile, Plugin: pluginName, Name: df.Path, Path: w.layout.DataFilePath(df.Scope, df.Path)}
	content := df.Content
	if w.files.Exists(result.Path) {
		prior, err := w.files.ReadText(result.Path)
		if err != nil {
			return w.fail(result, fmt.Errorf("writer: data file %s: %w", df.Path, err), ctx)
		}
		merged := mergeData(df.Format, prior, content)
		// Nothing new, byte for byte or modulo the trailing newline we
		// would add: leave the file untouched.
		if merged == prior || ensureTrailingNewline(merged) == prior {
			return result
		}
		content = merged
	}
	if err := w.files.WriteText(result.Path, ensureTrailingNewline(content)); err != nil {
		return w.fail(result, fmt.Errorf("writer: data file %s: %w", df.Path, err), ctx)
	}
	ctx.Console.Success("wrote %s", rel(w.layout.Root(), result.Path))
	return result
}

func (w *ResourceWriter) fail(result Result, err error, ctx *plugin.Context) Result {
	result.Err = err
	ctx.Console.Warning("%s", err)
	return result
}

// renderVars layers declaration-specific variables over the run's static
// set. Declaration values win on collision.
func (w *ResourceWriter) renderVars(extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return w.vars
	}
	merged := make(map[string]string, len(w.vars)+len(extra))
	for key, value := range w.vars {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}

// mergeData reconciles generated content with what is already on disk. Text
// files are generator-owned and overwrite; the other formats merge.
func mergeData(format plugin.DataFormat, prior, next string) string {
	switch format {
	case plugin.FormatJSON:
		return merge.JSON(prior, next, "  ")
	case plugin.FormatMarkdown:
		return merge.Markdown(prior, next, merge.MarkdownOptions{})
	case plugin.FormatIgnore:
		return merge.IgnoreFile(prior, next, "")
	default:
		return next
	}
}
