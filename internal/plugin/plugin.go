// Package plugin defines the contributor contract at the heart of trellis:
// descriptors and their registry, dependency-ordered loading, the lifecycle
// hooks, and the per-run context handed into every plugin call. Plugins are
// trusted, statically linked values; their capabilities are optional
// interfaces checked by type assertion, never a class hierarchy.
package plugin

// Hook names the lifecycle points a plugin may implement. The set is
// closed; the loader rejects anything else.
type Hook string

const (
	HookBeforeInit Hook = "beforeInit"
	HookExecute    Hook = "execute"
	HookAfterInit  Hook = "afterInit"
	HookCleanup    Hook = "cleanup"
)

// Lifecycle lists the hooks in the order a full run fires them.
var Lifecycle = []Hook{HookBeforeInit, HookExecute, HookAfterInit, HookCleanup}

// Valid reports whether the hook belongs to the closed set.
func (h Hook) Valid() bool {
	switch h {
	case HookBeforeInit, HookExecute, HookAfterInit, HookCleanup:
		return true
	}
	return false
}

// Plugin is implemented by every contributor. Everything beyond identity is
// an optional capability.
type Plugin interface {
	Descriptor() Descriptor
}

// BeforeInitializer runs before any plugin executes.
type BeforeInitializer interface {
	BeforeInit(ctx *Context) error
}

// Executor performs the plugin's main work.
type Executor interface {
	Execute(ctx *Context) error
}

// AfterInitializer runs after every plugin has executed.
type AfterInitializer interface {
	AfterInit(ctx *Context) error
}

// Cleaner releases whatever the plugin acquired.
type Cleaner interface {
	Cleanup(ctx *Context) error
}

// runHook fires one hook on one plugin when implemented. The bool reports
// whether the plugin exposed the hook at all.
func runHook(p Plugin, hook Hook, ctx *Context) (bool, error) {
	switch hook {
	case HookBeforeInit:
		if h, ok := p.(BeforeInitializer); ok {
			return true, h.BeforeInit(ctx)
		}
	case HookExecute:
		if h, ok := p.(Executor); ok {
			return true, h.Execute(ctx)
		}
	case HookAfterInit:
		if h, ok := p.(AfterInitializer); ok {
			return true, h.AfterInit(ctx)
		}
	case HookCleanup:
		if h, ok := p.(Cleaner); ok {
			return true, h.Cleanup(ctx)
		}
	}
	return false, nil
}

// Scope places a generated artifact in the project tree or the user's home
// tree.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeUser    Scope = "user"
)

// Valid reports whether the scope is one of the two known placements.
func (s Scope) Valid() bool {
	return s == ScopeProject || s == ScopeUser
}

// DataFormat selects the merge strategy when a data file collides with
// content already on disk.
type DataFormat string

const (
	FormatText     DataFormat = "text"
	FormatMarkdown DataFormat = "markdown"
	FormatJSON     DataFormat = "json"
	FormatIgnore   DataFormat = "ignore"
)

// SlashCommand declares a command document rendered from a template.
type SlashCommand struct {
	Name         string
	Description  string
	ArgumentHint string
	TemplatePath string
	// Vars layer plugin-specific variables over the run's template
	// variables.
	Vars map[string]string
}

// Skill declares a skill document rendered from a template.
type Skill struct {
	Name         string
	Description  string
	Version      string
	TemplatePath string
	Vars         map[string]string
}

// RuleContribution declares one prioritized policy rule file. Generate is a
// pure function of config and context; all I/O belongs to the writer.
type RuleContribution struct {
	BaseName string
	// PathsFilter scopes the rule to matching paths; emitted as a structured
	// header above the rule body.
	PathsFilter []string
	Generate    func(cfg Settings, ctx *Context) (string, error)
}

// ExternalService declares a tool-server registration performed through the
// configured registrar command.
type ExternalService struct {
	Name    string
	Scope   Scope
	Command string
	Args    []string
	// Condition, when set, gates the registration on run config.
	Condition func(cfg Settings) bool
}

// DataFile declares a generic file artifact.
type DataFile struct {
	// Path is relative to the scope root.
	Path    string
	Content string
	Format  DataFormat
	Scope   Scope
}

// PromptContribution declares a section of the root document, keyed by the
// placeholder token it fills.
type PromptContribution struct {
	Placeholder string
	Generate    func(cfg Settings, ctx *Context) (string, error)
}

// CommandProvider contributes slash commands.
type CommandProvider interface {
	Commands(cfg Settings, ctx *Context) []SlashCommand
}

// SkillProvider contributes skills.
type SkillProvider interface {
	Skills(cfg Settings, ctx *Context) []Skill
}

// RuleProvider contributes at most one prioritized rule file.
type RuleProvider interface {
	Rule() *RuleContribution
}

// ServiceProvider contributes external-service registrations.
type ServiceProvider interface {
	Services(cfg Settings, ctx *Context) []ExternalService
}

// DataFileProvider contributes generic file artifacts.
type DataFileProvider interface {
	DataFiles(cfg Settings, ctx *Context) []DataFile
}

// PromptProvider contributes one root-document section.
type PromptProvider interface {
	Prompt() *PromptContribution
}
