// Package config loads the project configuration from the .trellis state
// directory and materializes that directory on first run. Settings follow a
// strict chain on every load: parse, apply defaults, normalize, validate. A
// missing config file is not an error; it simply means defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/plugin"
)

const (
	// Version is the config schema version this build reads and writes.
	Version = 1

	// DefaultLanguage selects run output wording when the config is silent.
	DefaultLanguage = "en"

	// DefaultRegistrarCommand registers external tool servers.
	DefaultRegistrarCommand = "agentctl"
)

// defaultRegistrarArgs lead every registrar invocation.
var defaultRegistrarArgs = []string{"mcp", "add"}

// ProjectConfig models .trellis/config.yaml.
type ProjectConfig struct {
	Version   int              `yaml:"version"`
	Language  string           `yaml:"language,omitempty"`
	Agent     AgentConfig      `yaml:"agent,omitempty"`
	Registrar RegistrarConfig  `yaml:"registrar,omitempty"`
	Templates TemplatesConfig  `yaml:"templates,omitempty"`
	Plugins   plugin.RunConfig `yaml:"plugins,omitempty"`
}

// AgentConfig names the generated tree.
type AgentConfig struct {
	// Dir is the generated assets directory, relative to the project root.
	Dir string `yaml:"dir,omitempty"`
	// UserDir receives user-scoped assets. A leading ~/ expands to the home
	// directory; empty falls back to ~/.agents.
	UserDir string `yaml:"user_dir,omitempty"`
	// RootDoc is the assembled document at the project root.
	RootDoc string `yaml:"root_doc,omitempty"`
}

// RegistrarConfig is the external command that registers tool servers. A
// command written as one line splits into command plus leading args on load.
type RegistrarConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// TemplatesConfig optionally points template lookups somewhere other than
// .trellis/templates.
type TemplatesConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Config is the resolved configuration for one project.
type Config struct {
	// ProjectDir is the absolute project root.
	ProjectDir string
	// Project is the parsed, normalized, validated config file content.
	Project ProjectConfig
}

// Load reads .trellis/config.yaml under projectDir. A missing file yields
// pure defaults; a malformed or invalid one is an error.
func Load(projectDir string) (*Config, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve project dir: %w", err)
	}
	cfg := &Config{ProjectDir: abs}

	path := layout.New(abs).ConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run; everything below fills in defaults.
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg.Project); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Project.applyDefaults()
	if err := cfg.Project.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Project.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Layout builds the path helper the rest of the run shares.
func (c *Config) Layout() *layout.Layout {
	return layout.New(c.ProjectDir,
		layout.WithAgentDir(c.Project.Agent.Dir),
		layout.WithUserDir(c.Project.Agent.UserDir),
		layout.WithRootDoc(c.Project.Agent.RootDoc),
	)
}

// Plugins returns the per-plugin run settings.
func (c *Config) Plugins() plugin.RunConfig {
	return c.Project.Plugins
}

// Language returns the normalized output language tag.
func (c *Config) Language() string {
	return c.Project.Language
}

// Registrar returns the registrar command and a copy of its leading args.
func (c *Config) Registrar() (string, []string) {
	return c.Project.Registrar.Command, append([]string{}, c.Project.Registrar.Args...)
}

// TemplatesDir returns the directory template lookups resolve under.
func (c *Config) TemplatesDir() string {
	if c.Project.Templates.Dir != "" {
		return resolvePath(c.ProjectDir, c.Project.Templates.Dir)
	}
	return c.Layout().TemplatesDir()
}

func (p *ProjectConfig) applyDefaults() {
	if p.Version == 0 {
		p.Version = Version
	}
	if strings.TrimSpace(p.Language) == "" {
		p.Language = DefaultLanguage
	}
	if strings.TrimSpace(p.Agent.Dir) == "" {
		p.Agent.Dir = layout.DefaultAgentDir
	}
	if strings.TrimSpace(p.Agent.RootDoc) == "" {
		p.Agent.RootDoc = layout.DefaultRootDoc
	}
	if strings.TrimSpace(p.Registrar.Command) == "" && len(p.Registrar.Args) == 0 {
		p.Registrar.Command = DefaultRegistrarCommand
		p.Registrar.Args = append([]string{}, defaultRegistrarArgs...)
	}
}

func (p *ProjectConfig) normalize() error {
	p.Language = strings.ToLower(strings.TrimSpace(p.Language))
	p.Agent.Dir = strings.TrimSpace(p.Agent.Dir)
	p.Agent.RootDoc = strings.TrimSpace(p.Agent.RootDoc)
	p.Templates.Dir = strings.TrimSpace(p.Templates.Dir)

	p.Agent.UserDir = strings.TrimSpace(p.Agent.UserDir)
	if p.Agent.UserDir == "~" || strings.HasPrefix(p.Agent.UserDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: expand agent.user_dir: %w", err)
		}
		p.Agent.UserDir = filepath.Join(home, strings.TrimPrefix(p.Agent.UserDir, "~"))
	}

	p.Registrar.Command = strings.TrimSpace(p.Registrar.Command)
	if fields := strings.Fields(p.Registrar.Command); len(fields) > 1 {
		p.Registrar.Command = fields[0]
		p.Registrar.Args = append(fields[1:], p.Registrar.Args...)
	}
	return nil
}

func (p *ProjectConfig) validate() error {
	if p.Version < 1 {
		return fmt.Errorf("config: version must be at least 1, got %d", p.Version)
	}
	if p.Version > Version {
		return fmt.Errorf("config: version %d is newer than this build understands (max %d)", p.Version, Version)
	}
	if p.Language == "" {
		return fmt.Errorf("config: language must not be empty")
	}
	if p.Agent.Dir == "" {
		return fmt.Errorf("config: agent.dir must not be empty")
	}
	if filepath.IsAbs(p.Agent.Dir) {
		return fmt.Errorf("config: agent.dir must be relative to the project root, got %s", p.Agent.Dir)
	}
	if p.Agent.RootDoc == "" {
		return fmt.Errorf("config: agent.root_doc must not be empty")
	}
	if p.Agent.RootDoc != filepath.Base(p.Agent.RootDoc) {
		return fmt.Errorf("config: agent.root_doc must be a bare file name, got %s", p.Agent.RootDoc)
	}
	if p.Registrar.Command == "" {
		return fmt.Errorf("config: registrar.command must not be empty")
	}
	for name := range p.Plugins {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: plugins section names an empty plugin")
		}
	}
	return nil
}

// resolvePath interprets candidate relative to base unless already absolute.
func resolvePath(base, candidate string) string {
	if filepath.IsAbs(candidate) {
		return filepath.Clean(candidate)
	}
	return filepath.Join(base, candidate)
}
