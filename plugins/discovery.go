package plugins

import (
	"fmt"
	"sort"

	"github.com/trellishq/trellis/internal/plugin"
)

// Discover loads every YAML and interpreted Go definition under dir, sorted
// by path. A missing directory means no local plugins.
func Discover(dir string) ([]DefinitionFile, error) {
	yamlDefs, err := LoadDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	goDefs, err := LoadGoDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	defs := append(yamlDefs, goDefs...)
	if len(defs) == 0 {
		return nil, nil
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Path < defs[j].Path })
	return defs, nil
}

// RegisterLocal installs discovered definitions into the registry as
// data-driven plugins.
func RegisterLocal(reg *plugin.Registry, defs []DefinitionFile) error {
	if reg == nil || len(defs) == 0 {
		return nil
	}
	seen := make(map[string]string, len(defs))
	for _, file := range defs {
		def := file.Definition
		if existing, ok := seen[def.Name]; ok {
			return fmt.Errorf("plugins: duplicate plugin %s (%s and %s)", def.Name, existing, file.Path)
		}
		seen[def.Name] = file.Path
		if err := reg.Register(newDeclared(def)); err != nil {
			return fmt.Errorf("plugins: register %s from %s: %w", def.Name, file.Path, err)
		}
	}
	return nil
}
