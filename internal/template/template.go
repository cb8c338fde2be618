// Package template implements the placeholder grammar used across generated
// documents: an uppercase token wrapped in double braces, {{PROJECT_NAME}}
// style. Tokens a caller never binds degrade to the empty string rather than
// failing a run, so a stale template keeps producing usable output.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	tokenRE      = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)
	blankRunRE   = regexp.MustCompile(`\n{3,}`)
	trailingWSRE = regexp.MustCompile(`[ \t\r]+\n`)
)

// Placeholder wraps a token name in the {{...}} delimiters.
func Placeholder(name string) string {
	return "{{" + name + "}}"
}

// Extract returns every distinct token name in the text, first-appearance
// order.
func Extract(text string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, match := range tokenRE.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Replace substitutes every occurrence of one token.
func Replace(text, name, value string) string {
	return strings.ReplaceAll(text, Placeholder(name), value)
}

// ReplaceAll substitutes every provided token, in sorted key order so the
// result never depends on map iteration.
func ReplaceAll(text string, vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text = Replace(text, name, vars[name])
	}
	return text
}

// Strip removes every remaining token from the text.
func Strip(text string) string {
	return tokenRE.ReplaceAllString(text, "")
}

// Normalize applies the output whitespace contract: runs of three or more
// newlines collapse to two, trailing whitespace drops from every line, and
// the text ends with exactly one newline.
func Normalize(text string) string {
	text = trailingWSRE.ReplaceAllString(text, "\n")
	text = blankRunRE.ReplaceAllString(text, "\n\n")
	text = strings.TrimRight(text, " \t\n")
	return text + "\n"
}

// Engine is the file-backed template facade handed to plugins: load a
// template by path, render tokens into text, or both at once. Relative
// paths resolve under the engine's root directory.
type Engine struct {
	root string
}

// NewEngine returns an engine resolving relative paths under root.
func NewEngine(root string) *Engine {
	return &Engine{root: root}
}

// Load reads a template file as text.
func (e *Engine) Load(path string) (string, error) {
	resolved := e.resolve(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("template: read %s: %w", resolved, err)
	}
	return string(data), nil
}

// Render substitutes the provided tokens into the text.
func (e *Engine) Render(text string, vars map[string]string) string {
	return ReplaceAll(text, vars)
}

// LoadAndRender loads a template and renders it in one step.
func (e *Engine) LoadAndRender(path string, vars map[string]string) (string, error) {
	text, err := e.Load(path)
	if err != nil {
		return "", err
	}
	return e.Render(text, vars), nil
}

func (e *Engine) resolve(path string) string {
	if e.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.root, path)
}
