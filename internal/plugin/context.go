package plugin

import (
	"sort"

	"github.com/trellishq/trellis/internal/logging"
)

// Templates is the template facade plugins render through: load a file by
// path, render tokens into text, or both.
type Templates interface {
	Load(path string) (string, error)
	Render(text string, vars map[string]string) string
	LoadAndRender(path string, vars map[string]string) (string, error)
}

// Prompter is the interactive facade. Every call blocks until a human or a
// scripted double answers.
type Prompter interface {
	MultiSelect(title string, options []string, preselected []string) ([]string, error)
	Select(title string, options []string) (string, error)
	Confirm(question string, fallback bool) (bool, error)
	Input(prompt, placeholder string) (string, error)
}

// Translator resolves user-facing strings for the active language.
type Translator interface {
	T(key string) string
	Language() string
}

// Context is the per-run bundle of collaborator handles injected into every
// plugin call. One Context lives for exactly one run.
type Context struct {
	Console   *logging.Console
	Files     Files
	Templates Templates
	UI        Prompter
	I18n      Translator

	// Shared is the run's only cross-plugin mutable state: plugins executed
	// earlier publish values for later plugins to read.
	Shared *Store

	RunID       string
	ProjectRoot string
	ProjectName string
}

// NewContext builds a context with a fresh shared store.
func NewContext(console *logging.Console, files Files, templates Templates, ui Prompter, translator Translator) *Context {
	return &Context{
		Console:   console,
		Files:     files,
		Templates: templates,
		UI:        ui,
		I18n:      translator,
		Shared:    NewStore(),
	}
}

// WithRun clones the context with a run identifier.
func (ctx *Context) WithRun(runID string) *Context {
	clone := *ctx
	clone.RunID = runID
	return &clone
}

// WithProject clones the context with the target project's root and name.
func (ctx *Context) WithProject(root, name string) *Context {
	clone := *ctx
	clone.ProjectRoot = root
	clone.ProjectName = name
	return &clone
}

// Store is the run-scoped key-value channel between plugins. Execution is
// single-threaded, so access is unlocked.
type Store struct {
	values map[string]any
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: map[string]any{}}
}

// Set publishes a value under key.
func (s *Store) Set(key string, value any) {
	s.values[key] = value
}

// Get returns the value under key.
func (s *Store) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Delete removes key.
func (s *Store) Delete(key string) {
	delete(s.values, key)
}

// Keys returns every present key, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value under key when it is a string, "" otherwise.
func (s *Store) String(key string) string {
	if value, ok := s.values[key].(string); ok {
		return value
	}
	return ""
}

// Bool returns the value under key when it is a bool, false otherwise.
func (s *Store) Bool(key string) bool {
	if value, ok := s.values[key].(bool); ok {
		return value
	}
	return false
}
