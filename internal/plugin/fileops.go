package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Files is the file-operations facade on the context. Calls are synchronous
// and never retried; a caller sees every failure exactly once.
type Files interface {
	Exists(path string) bool
	ReadText(path string) (string, error)
	WriteText(path, content string) error
	EnsureDir(path string) error
	ReadJSON(path string, v any) error
	WriteJSON(path string, v any) error
	ReadYAML(path string, v any) error
	WriteYAML(path string, v any) error
}

// OSFiles implements Files against the local tree. Writes create parent
// directories; directory creation is idempotent.
type OSFiles struct{}

// Exists reports whether path names an existing file or directory.
func (OSFiles) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadText reads a file as a string.
func (OSFiles) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("plugin: read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText writes content, creating parent directories as needed.
func (f OSFiles) WriteText(path, content string) error {
	if err := f.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("plugin: write %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates the directory and its parents.
func (OSFiles) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("plugin: ensure dir %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes a JSON file into v.
func (f OSFiles) ReadJSON(path string, v any) error {
	text, err := f.ReadText(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("plugin: decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON encodes v with two-space indentation and a trailing newline.
func (f OSFiles) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("plugin: encode %s: %w", path, err)
	}
	return f.WriteText(path, string(data)+"\n")
}

// ReadYAML decodes a YAML file into v.
func (f OSFiles) ReadYAML(path string, v any) error {
	text, err := f.ReadText(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("plugin: decode %s: %w", path, err)
	}
	return nil
}

// WriteYAML encodes v as YAML.
func (f OSFiles) WriteYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("plugin: encode %s: %w", path, err)
	}
	return f.WriteText(path, string(data))
}
