package plugin

import (
	"fmt"
	"strings"
)

// OrderEntry feeds ResolveOrder: one plugin name plus the names it depends
// on. Entry order is the discovery order used to break ties.
type OrderEntry struct {
	Name         string
	Dependencies []string
}

// MissingDependencyError reports a dependency absent from the enabled set.
// It fires before any ordering is attempted.
type MissingDependencyError struct {
	Plugin     string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("plugin: %s depends on %s, which is not in the enabled set", e.Plugin, e.Dependency)
}

// CycleError reports the plugins left unsorted: every member either sits on
// a dependency cycle or depends on one.
type CycleError struct {
	Blocked []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("plugin: %s form or depend on a dependency cycle", strings.Join(e.Blocked, ", "))
}

// ResolveOrder computes a dependency-respecting total order via Kahn's
// algorithm. Ties among simultaneously ready plugins break by discovery
// order, so identical input always yields identical output. A dependency
// missing from the input fails before sorting; a cycle fails after, naming
// exactly the plugins that never became ready.
func ResolveOrder(entries []OrderEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		if _, exists := index[entry.Name]; exists {
			return nil, fmt.Errorf("plugin: %s appears twice in the enabled set", entry.Name)
		}
		index[entry.Name] = i
	}
	for _, entry := range entries {
		for _, dep := range entry.Dependencies {
			if _, ok := index[dep]; !ok {
				return nil, &MissingDependencyError{Plugin: entry.Name, Dependency: dep}
			}
		}
	}

	inDegree := make([]int, len(entries))
	dependents := make([][]int, len(entries))
	for i, entry := range entries {
		seen := make(map[int]struct{}, len(entry.Dependencies))
		for _, dep := range entry.Dependencies {
			depIdx := index[dep]
			if _, dup := seen[depIdx]; dup {
				continue
			}
			seen[depIdx] = struct{}{}
			dependents[depIdx] = append(dependents[depIdx], i)
			inDegree[i]++
		}
	}

	queue := make([]int, 0, len(entries))
	for i := range entries {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]string, 0, len(entries))
	removed := make([]bool, len(entries))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		removed[current] = true
		order = append(order, entries[current].Name)
		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}
	if len(order) != len(entries) {
		var blocked []string
		for i, entry := range entries {
			if !removed[i] {
				blocked = append(blocked, entry.Name)
			}
		}
		return nil, &CycleError{Blocked: blocked}
	}
	return order, nil
}
