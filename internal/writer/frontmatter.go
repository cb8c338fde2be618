package writer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/trellishq/trellis/internal/plugin"
)

// commandEnvelope is the YAML header written above a slash command's body.
type commandEnvelope struct {
	Description  string `yaml:"description"`
	ArgumentHint string `yaml:"argument-hint,omitempty"`
}

// skillEnvelope is the YAML header written above a skill document.
type skillEnvelope struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version,omitempty"`
}

// ruleEnvelope carries a rule's path filter so downstream tools can scope it.
type ruleEnvelope struct {
	Paths []string `yaml:"paths"`
}

func commandHeader(cmd plugin.SlashCommand) (string, error) {
	return frontMatter(commandEnvelope{
		Description:  cmd.Description,
		ArgumentHint: cmd.ArgumentHint,
	})
}

func skillHeader(skill plugin.Skill) (string, error) {
	return frontMatter(skillEnvelope{
		Name:        skill.Name,
		Description: skill.Description,
		Version:     skill.Version,
	})
}

func ruleHeader(paths []string) (string, error) {
	return frontMatter(ruleEnvelope{Paths: paths})
}

// frontMatter renders v between YAML fences with a blank line before the body.
func frontMatter(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("writer: encode header: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	return buf.String(), nil
}
