package plugin

import (
	"fmt"
	"sync"
)

// Registry is the validated in-memory catalog of plugins, indexed by name
// and by external command name. Iteration preserves registration order.
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]Plugin
	byCommand map[string]string
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    map[string]Plugin{},
		byCommand: map[string]string{},
	}
}

// Register installs a plugin after validating its descriptor. Both the name
// and the command name must be unused.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin: plugin is required")
	}
	desc := p.Descriptor()
	if err := desc.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[desc.Name]; exists {
		return fmt.Errorf("plugin: %s already registered", desc.Name)
	}
	if owner, exists := r.byCommand[desc.CommandName]; exists {
		return fmt.Errorf("plugin: command name %s already registered by %s", desc.CommandName, owner)
	}
	r.byName[desc.Name] = p
	r.byCommand[desc.CommandName] = desc.Name
	r.order = append(r.order, desc.Name)
	return nil
}

// MustRegister panics if registration fails. Meant for the builtin set,
// where a failure is a programming error.
func (r *Registry) MustRegister(p Plugin) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("plugin: unknown plugin %s", name)
	}
	return p, nil
}

// ByCommand returns the plugin owning the external command name.
func (r *Registry) ByCommand(command string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byCommand[command]
	if !ok {
		return nil, fmt.Errorf("plugin: unknown command name %s", command)
	}
	return r.byName[name], nil
}

// Names returns plugin names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.order...)
}

// All returns every plugin in registration order.
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Enabled returns every plugin whose run config does not explicitly disable
// it, in registration order.
func (r *Registry) Enabled(cfg RunConfig) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		if cfg.IsEnabled(name) {
			out = append(out, r.byName[name])
		}
	}
	return out
}
