// Package git keeps generated state out of version control. Its execute
// hook detects whether the project is a git repository and, when it is,
// folds the trellis state entries into the root .gitignore.
package git

import (
	"path/filepath"

	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/merge"
	"github.com/trellishq/trellis/internal/plugin"
)

// Priority slots the git rule after core's conventions.
const Priority = 30

const ruleTemplate = "rules/git.md"

// ignoreHeader labels the block of entries this plugin appends.
const ignoreHeader = "# trellis state"

// Plugin implements the git builtin.
type Plugin struct{}

// New returns the git builtin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:          "git",
		CommandName:   "trellis-git",
		Version:       "1.0.0",
		Description:   "Git hygiene rule and .gitignore upkeep",
		Dependencies:  []string{"core"},
		RulesPriority: Priority,
	}
}

// Execute publishes repository detection and, inside a repository, merges
// the trellis ignore entries into .gitignore. Data files route into the
// agents trees, so the root-level .gitignore belongs to this hook.
func (p *Plugin) Execute(ctx *plugin.Context) error {
	repo := ctx.Files.Exists(filepath.Join(ctx.ProjectRoot, ".git"))
	ctx.Shared.Set("git.repo", repo)
	if !repo {
		ctx.Console.Info("no git repository detected, leaving .gitignore alone")
		return nil
	}

	path := filepath.Join(ctx.ProjectRoot, ".gitignore")
	prior := ""
	if ctx.Files.Exists(path) {
		text, err := ctx.Files.ReadText(path)
		if err != nil {
			return err
		}
		prior = text
	}

	merged := merge.IgnoreFile(prior, ignoreEntries(), ignoreHeader)
	if merged == prior {
		return nil
	}
	if err := ctx.Files.WriteText(path, merged); err != nil {
		return err
	}
	ctx.Console.Success("updated .gitignore with trellis state entries")
	return nil
}

func (p *Plugin) Rule() *plugin.RuleContribution {
	return &plugin.RuleContribution{
		BaseName: "git",
		Generate: func(cfg plugin.Settings, ctx *plugin.Context) (string, error) {
			return ctx.Templates.LoadAndRender(ruleTemplate, map[string]string{
				"PROJECT_NAME": ctx.ProjectName,
			})
		},
	}
}

// ignoreEntries lists the state paths that never belong in version control.
func ignoreEntries() string {
	return layout.TrellisDirName + "/" + layout.LogsDirName + "/\n"
}
