package reconcile

import (
	"fmt"

	"github.com/ziadkadry99/orgsync/internal/config"
)

// OrderAll returns the team names ordered so that every parent precedes its
// children. Siblings and independent roots keep configuration order. A
// cyclic parent chain is rejected with an error instead of recursing
// forever.
func OrderAll(teams []config.TeamSpec) ([]string, error) {
	children := make(map[string][]string, len(teams))
	for _, t := range teams {
		if _, ok := children[t.Name]; !ok {
			children[t.Name] = nil
		}
	}
	for _, t := range teams {
		if t.Parent != "" {
			children[t.Parent] = append(children[t.Parent], t.Name)
		}
	}

	var (
		result  []string
		visited = make(map[string]bool, len(teams))
		onStack = make(map[string]bool, len(teams))
	)
	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = true
		onStack[name] = true
		for _, child := range children[name] {
			if onStack[child] {
				return fmt.Errorf("team hierarchy contains a cycle through %q", child)
			}
			if !visited[child] {
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		onStack[name] = false
		result = append(result, name)
		return nil
	}
	for _, t := range teams {
		if !visited[t.Name] {
			if err := visit(t.Name); err != nil {
				return nil, err
			}
		}
	}

	// Post-order lists children first; reverse for parents-first.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

// OrderAncestors returns the ancestor chain of target, furthest ancestor
// first, excluding target itself. An ancestor not declared in the
// configuration ends the chain and is left out of it: there is no spec to
// reconcile it against, and the dangling reference surfaces as a remote
// lookup failure when the child's parent is resolved. A cyclic chain is
// rejected.
func OrderAncestors(target string, byName map[string]config.TeamSpec) ([]string, error) {
	var chain []string
	seen := map[string]bool{target: true}
	current := target
	for {
		spec, ok := byName[current]
		if !ok || spec.Parent == "" {
			break
		}
		if seen[spec.Parent] {
			return nil, fmt.Errorf("team hierarchy contains a cycle through %q", spec.Parent)
		}
		if _, declared := byName[spec.Parent]; !declared {
			break
		}
		seen[spec.Parent] = true
		chain = append(chain, spec.Parent)
		current = spec.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
