// Package layout maps logical artifact categories to concrete paths. Writers
// never build paths themselves; they ask the Layout where a slash command, a
// skill, a rule, or a scoped data file belongs. Layout is pure path math so
// tests can exercise routing without touching a file system.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/trellishq/trellis/internal/plugin"
)

// Generated-tree defaults. The agent directory name and root document are
// configurable; the structure below them is not.
const (
	DefaultAgentDir = ".agents"
	DefaultRootDoc  = "AGENTS.md"

	CommandsDirName = "commands"
	SkillsDirName   = "skills"
	RulesDirName    = "rules"
	SkillFileName   = "SKILL.md"
)

// Tool state directory names under the project root.
const (
	TrellisDirName   = ".trellis"
	ConfigFileName   = "config.yaml"
	LogsDirName      = "logs"
	JournalFileName  = "trellis.log"
	TemplatesDirName = "templates"
	PluginsDirName   = "plugins"
)

// Layout resolves every path one run writes or reads.
type Layout struct {
	projectRoot string
	agentDir    string
	userDir     string
	rootDoc     string
}

// Option adjusts a Layout at construction.
type Option func(*Layout)

// WithAgentDir overrides the generated directory name (default ".agents").
func WithAgentDir(name string) Option {
	return func(l *Layout) {
		if name != "" {
			l.agentDir = name
		}
	}
}

// WithUserDir overrides the user-global artifact directory.
func WithUserDir(dir string) Option {
	return func(l *Layout) {
		if dir != "" {
			l.userDir = dir
		}
	}
}

// WithRootDoc overrides the root document file name (default "AGENTS.md").
func WithRootDoc(name string) Option {
	return func(l *Layout) {
		if name != "" {
			l.rootDoc = name
		}
	}
}

// New builds a Layout rooted at projectRoot. Without options the user
// directory falls back to ~/.agents when a home directory is known.
func New(projectRoot string, opts ...Option) *Layout {
	l := &Layout{
		projectRoot: filepath.Clean(projectRoot),
		agentDir:    DefaultAgentDir,
		rootDoc:     DefaultRootDoc,
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.userDir = filepath.Join(home, DefaultAgentDir)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the project root.
func (l *Layout) Root() string {
	return l.projectRoot
}

// ProjectName derives the project's display name from its root directory.
func (l *Layout) ProjectName() string {
	abs, err := filepath.Abs(l.projectRoot)
	if err != nil {
		return filepath.Base(l.projectRoot)
	}
	return filepath.Base(abs)
}

// AgentsDir returns the generated tree's base directory.
func (l *Layout) AgentsDir() string {
	return filepath.Join(l.projectRoot, l.agentDir)
}

// UserAgentsDir returns the user-global artifact directory.
func (l *Layout) UserAgentsDir() string {
	return l.userDir
}

// CommandsDir returns the slash-command directory.
func (l *Layout) CommandsDir() string {
	return filepath.Join(l.AgentsDir(), CommandsDirName)
}

// CommandPath returns the file path for a slash command.
func (l *Layout) CommandPath(name string) string {
	return filepath.Join(l.CommandsDir(), name+".md")
}

// SkillsDir returns the skills directory.
func (l *Layout) SkillsDir() string {
	return filepath.Join(l.AgentsDir(), SkillsDirName)
}

// SkillDir returns a named skill's directory.
func (l *Layout) SkillDir(name string) string {
	return filepath.Join(l.SkillsDir(), name)
}

// SkillPath returns the file path for a skill's document.
func (l *Layout) SkillPath(name string) string {
	return filepath.Join(l.SkillDir(name), SkillFileName)
}

// RulesDir returns the rules directory.
func (l *Layout) RulesDir() string {
	return filepath.Join(l.AgentsDir(), RulesDirName)
}

// RulePath returns the file path for a rule. Priority is zero-padded to two
// digits so lexical order equals priority order.
func (l *Layout) RulePath(priority int, baseName string) string {
	return filepath.Join(l.RulesDir(), fmt.Sprintf("%02d-%s.md", priority, baseName))
}

// RootDocPath returns the assembled root document's path at the project root.
func (l *Layout) RootDocPath() string {
	return filepath.Join(l.projectRoot, l.rootDoc)
}

// DataFileDir returns the base directory for a scope: the generated tree for
// project scope, the user-global directory otherwise.
func (l *Layout) DataFileDir(scope plugin.Scope) string {
	if scope == plugin.ScopeUser {
		return l.userDir
	}
	return l.AgentsDir()
}

// DataFilePath resolves a declared data-file path inside its scope.
func (l *Layout) DataFilePath(scope plugin.Scope, rel string) string {
	return filepath.Join(l.DataFileDir(scope), rel)
}

// TrellisDir returns the tool state directory.
func (l *Layout) TrellisDir() string {
	return filepath.Join(l.projectRoot, TrellisDirName)
}

// ConfigPath returns the config file path.
func (l *Layout) ConfigPath() string {
	return filepath.Join(l.TrellisDir(), ConfigFileName)
}

// LogsDir returns the journal directory.
func (l *Layout) LogsDir() string {
	return filepath.Join(l.TrellisDir(), LogsDirName)
}

// JournalPath returns the run journal's path.
func (l *Layout) JournalPath() string {
	return filepath.Join(l.LogsDir(), JournalFileName)
}

// TemplatesDir returns the editable template directory.
func (l *Layout) TemplatesDir() string {
	return filepath.Join(l.TrellisDir(), TemplatesDirName)
}

// TemplatePath resolves a template-relative path.
func (l *Layout) TemplatePath(rel string) string {
	return filepath.Join(l.TemplatesDir(), rel)
}

// LocalPluginsDir returns the local plugin definition directory.
func (l *Layout) LocalPluginsDir() string {
	return filepath.Join(l.TrellisDir(), PluginsDirName)
}

// StateDirs lists every tool state directory a fresh workspace needs.
func (l *Layout) StateDirs() []string {
	return []string{
		l.TrellisDir(),
		l.LogsDir(),
		l.TemplatesDir(),
		l.LocalPluginsDir(),
	}
}
