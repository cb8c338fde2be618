package plugin

import (
	"fmt"
	"strings"
)

// Loader resolves a dependency-respecting execution order over the enabled
// plugins and drives their lifecycle hooks in that order.
type Loader struct {
	registry *Registry
	loaded   []Plugin
	order    []string
}

// NewLoader returns a loader over the registry.
func NewLoader(registry *Registry) *Loader {
	return &Loader{registry: registry}
}

// Load resolves the execution order over the enabled set and records the
// loaded plugins. No hook fires here. Resolution failures (missing
// dependency, cycle) abort before anything runs.
func (l *Loader) Load(cfg RunConfig, ctx *Context) error {
	if l.registry == nil {
		return fmt.Errorf("plugin: loader has no registry")
	}
	enabled := l.registry.Enabled(cfg)
	entries := make([]OrderEntry, 0, len(enabled))
	byName := make(map[string]Plugin, len(enabled))
	for _, p := range enabled {
		desc := p.Descriptor()
		entries = append(entries, OrderEntry{Name: desc.Name, Dependencies: desc.Dependencies})
		byName[desc.Name] = p
	}
	order, err := ResolveOrder(entries)
	if err != nil {
		return err
	}
	l.order = order
	l.loaded = make([]Plugin, 0, len(order))
	for _, name := range order {
		l.loaded = append(l.loaded, byName[name])
	}
	if ctx != nil && len(order) > 0 {
		ctx.Console.Info("resolved plugin order: %s", strings.Join(order, ", "))
	}
	return nil
}

// Loaded returns the loaded plugins in execution order.
func (l *Loader) Loaded() []Plugin {
	return append([]Plugin{}, l.loaded...)
}

// Order returns the resolved plugin names in execution order.
func (l *Loader) Order() []string {
	return append([]string{}, l.order...)
}

// ExecuteHook fires the named hook on every loaded plugin that exposes it,
// in execution order. The first failure stops the pass immediately and
// comes back wrapped with the plugin and hook identity; lifecycle hooks are
// never best-effort.
func (l *Loader) ExecuteHook(hook Hook, ctx *Context) error {
	if !hook.Valid() {
		return fmt.Errorf("plugin: unknown hook %q", hook)
	}
	for _, p := range l.loaded {
		if _, err := runHook(p, hook, ctx); err != nil {
			return fmt.Errorf("plugin: %s: %s hook: %w", p.Descriptor().Name, hook, err)
		}
	}
	return nil
}
