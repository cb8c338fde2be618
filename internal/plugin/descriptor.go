package plugin

import (
	"fmt"
	"strings"
)

// MaxRulesPriority bounds the rules ordering band. Priorities render as two
// zero-padded digits in rule filenames, so 99 is the ceiling.
const MaxRulesPriority = 99

// Descriptor is a plugin's static identity. It is immutable once registered;
// the registry keeps its own clone.
type Descriptor struct {
	// Name uniquely identifies the plugin inside the registry.
	Name string
	// CommandName is the plugin's external command identity, unique across
	// the registry as well.
	CommandName string
	Version     string
	Description string
	// Dependencies lists plugin names that must execute earlier.
	Dependencies []string
	// RulesPriority orders this plugin's rule file, 0 through 99.
	RulesPriority int
}

// Validate ensures the descriptor is well-formed.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("plugin: name is required")
	}
	if strings.TrimSpace(d.CommandName) == "" {
		return fmt.Errorf("plugin: command name is required for %s", d.Name)
	}
	if strings.TrimSpace(d.Version) == "" {
		return fmt.Errorf("plugin: version is required for %s", d.Name)
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("plugin: description is required for %s", d.Name)
	}
	for _, dep := range d.Dependencies {
		if strings.TrimSpace(dep) == "" {
			return fmt.Errorf("plugin: %s declares an empty dependency name", d.Name)
		}
	}
	if d.RulesPriority < 0 || d.RulesPriority > MaxRulesPriority {
		return fmt.Errorf("plugin: %s rules priority %d outside 0..%d", d.Name, d.RulesPriority, MaxRulesPriority)
	}
	return nil
}

// Clone returns a copy with its own dependency slice.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Dependencies = append([]string{}, d.Dependencies...)
	return out
}

// Settings is one plugin's slice of the run configuration: an enable flag
// plus an opaque options map. The zero value means enabled with no options.
type Settings struct {
	Enabled *bool
	Options map[string]any
}

// IsEnabled reports whether the plugin participates in the run. Only an
// explicit false disables it.
func (s Settings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Option returns a raw option value.
func (s Settings) Option(key string) (any, bool) {
	value, ok := s.Options[key]
	return value, ok
}

// StringOption returns a string-typed option or the fallback.
func (s Settings) StringOption(key, fallback string) string {
	if value, ok := s.Options[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return fallback
}

// BoolOption returns a bool-typed option or the fallback.
func (s Settings) BoolOption(key string, fallback bool) bool {
	if value, ok := s.Options[key]; ok {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return fallback
}

// RunConfig maps plugin names to their per-run settings. Plugins absent
// from the map run with default settings.
type RunConfig map[string]Settings

// For returns the settings for one plugin, zero value when absent.
func (c RunConfig) For(name string) Settings {
	return c[name]
}

// IsEnabled reports whether the named plugin participates in the run.
func (c RunConfig) IsEnabled(name string) bool {
	return c.For(name).IsEnabled()
}
