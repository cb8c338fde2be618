// Package plugins loads declarative plugin definitions from a project's
// .trellis/plugins directory. A definition file, YAML or interpreted Go,
// describes a plugin's identity and its contributions; the content itself
// lives in template files. Definitions carry no executable hooks and are
// trusted input, the same trust level as the project's own templates.
package plugins

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/trellishq/trellis/internal/plugin"
)

// tokenName is the placeholder grammar variable names must follow.
var tokenName = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Definition mirrors the on-disk schema of one declarative plugin.
type Definition struct {
	Name         string   `json:"name" yaml:"name"`
	CommandName  string   `json:"command_name,omitempty" yaml:"command_name,omitempty"`
	Version      string   `json:"version" yaml:"version"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	// RulesPriority orders the rule file, 0 through 99.
	RulesPriority int `json:"rules_priority,omitempty" yaml:"rules_priority,omitempty"`
	// Variables render into every template this definition references, on
	// top of the standard project tokens.
	Variables map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`

	Commands  []CommandDecl  `json:"commands,omitempty" yaml:"commands,omitempty"`
	Skills    []SkillDecl    `json:"skills,omitempty" yaml:"skills,omitempty"`
	Rule      *RuleDecl      `json:"rule,omitempty" yaml:"rule,omitempty"`
	Prompt    *PromptDecl    `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Services  []ServiceDecl  `json:"services,omitempty" yaml:"services,omitempty"`
	DataFiles []DataFileDecl `json:"data_files,omitempty" yaml:"data_files,omitempty"`
}

// CommandDecl declares one slash command rendered from a template.
type CommandDecl struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	ArgumentHint string `json:"argument_hint,omitempty" yaml:"argument_hint,omitempty"`
	Template     string `json:"template" yaml:"template"`
}

// SkillDecl declares one skill document rendered from a template.
type SkillDecl struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Template    string `json:"template" yaml:"template"`
}

// RuleDecl declares the plugin's prioritized rule file.
type RuleDecl struct {
	BaseName string   `json:"base_name" yaml:"base_name"`
	Paths    []string `json:"paths,omitempty" yaml:"paths,omitempty"`
	Template string   `json:"template" yaml:"template"`
}

// PromptDecl declares the plugin's root-document section.
type PromptDecl struct {
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Template    string `json:"template" yaml:"template"`
}

// ServiceDecl declares one external tool-server registration. Option, when
// set, gates the registration on a boolean plugin option of that name.
type ServiceDecl struct {
	Name    string   `json:"name" yaml:"name"`
	Scope   string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
	Option  string   `json:"option,omitempty" yaml:"option,omitempty"`
}

// DataFileDecl declares one generic artifact, either inline content or a
// template reference.
type DataFileDecl struct {
	Path     string `json:"path" yaml:"path"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty"`
	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
}

// Normalized returns a trimmed copy of the definition.
func (def Definition) Normalized() Definition {
	clone := Definition{
		Name:          strings.TrimSpace(def.Name),
		CommandName:   strings.TrimSpace(def.CommandName),
		Version:       strings.TrimSpace(def.Version),
		Description:   strings.TrimSpace(def.Description),
		RulesPriority: def.RulesPriority,
	}
	if clone.CommandName == "" {
		clone.CommandName = clone.Name
	}
	for _, dep := range def.Dependencies {
		if trimmed := strings.TrimSpace(dep); trimmed != "" {
			clone.Dependencies = append(clone.Dependencies, trimmed)
		}
	}
	if len(def.Variables) > 0 {
		clone.Variables = make(map[string]string, len(def.Variables))
		for key, value := range def.Variables {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Variables[trimmed] = value
		}
	}
	for _, cmd := range def.Commands {
		clone.Commands = append(clone.Commands, CommandDecl{
			Name:         strings.TrimSpace(cmd.Name),
			Description:  strings.TrimSpace(cmd.Description),
			ArgumentHint: strings.TrimSpace(cmd.ArgumentHint),
			Template:     strings.TrimSpace(cmd.Template),
		})
	}
	for _, skill := range def.Skills {
		clone.Skills = append(clone.Skills, SkillDecl{
			Name:        strings.TrimSpace(skill.Name),
			Description: strings.TrimSpace(skill.Description),
			Version:     strings.TrimSpace(skill.Version),
			Template:    strings.TrimSpace(skill.Template),
		})
	}
	if def.Rule != nil {
		rule := RuleDecl{
			BaseName: strings.TrimSpace(def.Rule.BaseName),
			Template: strings.TrimSpace(def.Rule.Template),
		}
		for _, p := range def.Rule.Paths {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				rule.Paths = append(rule.Paths, trimmed)
			}
		}
		clone.Rule = &rule
	}
	if def.Prompt != nil {
		clone.Prompt = &PromptDecl{
			Placeholder: strings.TrimSpace(def.Prompt.Placeholder),
			Template:    strings.TrimSpace(def.Prompt.Template),
		}
	}
	for _, svc := range def.Services {
		clone.Services = append(clone.Services, ServiceDecl{
			Name:    strings.TrimSpace(svc.Name),
			Scope:   strings.ToLower(strings.TrimSpace(svc.Scope)),
			Command: strings.TrimSpace(svc.Command),
			Args:    append([]string{}, svc.Args...),
			Option:  strings.TrimSpace(svc.Option),
		})
	}
	for _, df := range def.DataFiles {
		clone.DataFiles = append(clone.DataFiles, DataFileDecl{
			Path:     strings.TrimSpace(df.Path),
			Format:   strings.ToLower(strings.TrimSpace(df.Format)),
			Scope:    strings.ToLower(strings.TrimSpace(df.Scope)),
			Content:  df.Content,
			Template: strings.TrimSpace(df.Template),
		})
	}
	return clone
}

// Validate ensures the definition is well-formed. The descriptor fields get
// the same checks a builtin's descriptor would.
func (def Definition) Validate() error {
	normalized := def.Normalized()
	if err := normalized.Descriptor().Validate(); err != nil {
		return err
	}
	name := normalized.Name
	for key := range normalized.Variables {
		if !tokenName.MatchString(key) {
			return fmt.Errorf("plugins: %s: variable %q must match %s", name, key, tokenName.String())
		}
	}
	for idx, cmd := range normalized.Commands {
		if cmd.Name == "" || cmd.Description == "" || cmd.Template == "" {
			return fmt.Errorf("plugins: %s: commands[%d] needs name, description, and template", name, idx)
		}
	}
	for idx, skill := range normalized.Skills {
		if skill.Name == "" || skill.Description == "" || skill.Template == "" {
			return fmt.Errorf("plugins: %s: skills[%d] needs name, description, and template", name, idx)
		}
	}
	if rule := normalized.Rule; rule != nil {
		if rule.BaseName == "" || rule.Template == "" {
			return fmt.Errorf("plugins: %s: rule needs base_name and template", name)
		}
	}
	if prompt := normalized.Prompt; prompt != nil {
		if prompt.Template == "" {
			return fmt.Errorf("plugins: %s: prompt needs a template", name)
		}
		if !tokenName.MatchString(prompt.Placeholder) {
			return fmt.Errorf("plugins: %s: prompt placeholder %q must match %s", name, prompt.Placeholder, tokenName.String())
		}
	}
	for idx, svc := range normalized.Services {
		if svc.Name == "" || svc.Command == "" {
			return fmt.Errorf("plugins: %s: services[%d] needs name and command", name, idx)
		}
		if _, err := parseScope(svc.Scope); err != nil {
			return fmt.Errorf("plugins: %s: services[%d]: %w", name, idx, err)
		}
	}
	for idx, df := range normalized.DataFiles {
		if df.Path == "" {
			return fmt.Errorf("plugins: %s: data_files[%d] needs a path", name, idx)
		}
		if (df.Content == "") == (df.Template == "") {
			return fmt.Errorf("plugins: %s: data_files[%d] needs exactly one of content or template", name, idx)
		}
		if _, err := parseFormat(df.Format); err != nil {
			return fmt.Errorf("plugins: %s: data_files[%d]: %w", name, idx, err)
		}
		if _, err := parseScope(df.Scope); err != nil {
			return fmt.Errorf("plugins: %s: data_files[%d]: %w", name, idx, err)
		}
	}
	return nil
}

// Descriptor maps the definition's identity onto the plugin contract.
func (def Definition) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:          def.Name,
		CommandName:   def.CommandName,
		Version:       def.Version,
		Description:   def.Description,
		Dependencies:  append([]string{}, def.Dependencies...),
		RulesPriority: def.RulesPriority,
	}
}

// parseScope maps the on-disk scope word to the plugin scope. Empty means
// project.
func parseScope(raw string) (plugin.Scope, error) {
	switch raw {
	case "", string(plugin.ScopeProject):
		return plugin.ScopeProject, nil
	case string(plugin.ScopeUser):
		return plugin.ScopeUser, nil
	default:
		return "", fmt.Errorf("unknown scope %q", raw)
	}
}

// parseFormat maps the on-disk format word to the merge format. Empty means
// text.
func parseFormat(raw string) (plugin.DataFormat, error) {
	switch raw {
	case "", string(plugin.FormatText):
		return plugin.FormatText, nil
	case string(plugin.FormatMarkdown):
		return plugin.FormatMarkdown, nil
	case string(plugin.FormatJSON):
		return plugin.FormatJSON, nil
	case string(plugin.FormatIgnore):
		return plugin.FormatIgnore, nil
	default:
		return "", fmt.Errorf("unknown format %q", raw)
	}
}
