// Package reconcile computes and applies the minimal set of mutations that
// bring a GitHub organization's teams and repository grants in line with
// the declared configuration.
package reconcile

import (
	"fmt"
	"io"
	"sort"
)

// ChangeSet groups the pending or applied actions for one entity by kind.
// Instances are built fresh per entity and never persisted; the apply phase
// re-derives its own view of remote state instead of replaying one.
type ChangeSet struct {
	Create []string
	Update []string
	Add    []string
	Remove []string
	Errors []string
}

// Empty reports whether the ChangeSet contains no actions and no errors.
func (c *ChangeSet) Empty() bool {
	return len(c.Create) == 0 && len(c.Update) == 0 && len(c.Add) == 0 &&
		len(c.Remove) == 0 && len(c.Errors) == 0
}

// Merge appends every action from other, preserving category order.
func (c *ChangeSet) Merge(other *ChangeSet) {
	c.Create = append(c.Create, other.Create...)
	c.Update = append(c.Update, other.Update...)
	c.Add = append(c.Add, other.Add...)
	c.Remove = append(c.Remove, other.Remove...)
	c.Errors = append(c.Errors, other.Errors...)
}

// Render writes the non-empty categories to w, one header per category.
func (c *ChangeSet) Render(w io.Writer) {
	renderCategory(w, "Create", c.Create)
	renderCategory(w, "Update", c.Update)
	renderCategory(w, "Add", c.Add)
	renderCategory(w, "Remove", c.Remove)
	renderCategory(w, "Error", c.Errors)
}

func renderCategory(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

// sortedKeys returns the keys of a string-keyed set in lexical order, so
// diff output and mutation order are deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
