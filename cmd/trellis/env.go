package main

import (
	"path/filepath"
	"strings"

	"github.com/trellishq/trellis/internal/config"
	"github.com/trellishq/trellis/internal/i18n"
	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/plugin"
	builtins "github.com/trellishq/trellis/internal/plugins"
	"github.com/trellishq/trellis/internal/template"
	"github.com/trellishq/trellis/plugins"
)

// rootTemplate is the template the root document assembles from, relative
// to the configured template directory.
const rootTemplate = "root.md"

// runEnv bundles everything a subcommand resolves before touching the
// project: configuration, path routing, the populated registry, the
// language, and the template engine.
type runEnv struct {
	cfg      *config.Config
	layout   *layout.Layout
	registry *plugin.Registry
	locale   *i18n.Locale
	engine   *template.Engine
}

// newRunEnv loads the project configuration and assembles the plugin
// registry: builtins first, then any local definitions discovered under
// .trellis/plugins/.
func newRunEnv(projectDir string) (*runEnv, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, err
	}
	lay := cfg.Layout()

	bundle, err := i18n.Load()
	if err != nil {
		return nil, err
	}

	registry := plugin.NewRegistry()
	builtins.RegisterBuiltins(registry)
	defs, err := plugins.Discover(lay.LocalPluginsDir())
	if err != nil {
		return nil, err
	}
	if err := plugins.RegisterLocal(registry, defs); err != nil {
		return nil, err
	}

	return &runEnv{
		cfg:      cfg,
		layout:   lay,
		registry: registry,
		locale:   bundle.Resolve(cfg.Language()),
		engine:   template.NewEngine(cfg.TemplatesDir()),
	}, nil
}

// staticVars lists the variables every run substitutes into templates and
// the root document.
func staticVars(projectRoot, projectName, runID string) map[string]string {
	return map[string]string{
		"PROJECT_NAME": projectName,
		"PROJECT_ROOT": projectRoot,
		"RUN_ID":       runID,
	}
}

// displayPath shortens a path to project-relative form for console output.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
