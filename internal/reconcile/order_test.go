package reconcile

import (
	"testing"

	"github.com/ziadkadry99/orgsync/internal/config"
)

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestOrderAllParentsFirst(t *testing.T) {
	teams := []config.TeamSpec{
		{Name: "leaf", Parent: "mid"},
		{Name: "root"},
		{Name: "mid", Parent: "root"},
		{Name: "sibling", Parent: "root"},
		{Name: "island"},
	}

	order, err := OrderAll(teams)
	if err != nil {
		t.Fatalf("OrderAll failed: %v", err)
	}

	if len(order) != len(teams) {
		t.Fatalf("expected %d teams in order, got %d: %v", len(teams), len(order), order)
	}
	seen := map[string]bool{}
	for _, name := range order {
		if seen[name] {
			t.Errorf("team %q appears more than once: %v", name, order)
		}
		seen[name] = true
	}

	pairs := [][2]string{{"root", "mid"}, {"mid", "leaf"}, {"root", "sibling"}, {"root", "leaf"}}
	for _, p := range pairs {
		if indexOf(order, p[0]) >= indexOf(order, p[1]) {
			t.Errorf("expected %q before %q, got %v", p[0], p[1], order)
		}
	}
}

func TestOrderAllCycle(t *testing.T) {
	teams := []config.TeamSpec{
		{Name: "a", Parent: "b"},
		{Name: "b", Parent: "a"},
	}

	if _, err := OrderAll(teams); err == nil {
		t.Fatal("expected an error for a cyclic hierarchy")
	}
}

func TestOrderAllDanglingParent(t *testing.T) {
	// A parent missing from the configuration must not break ordering; it
	// surfaces later as a remote lookup failure.
	teams := []config.TeamSpec{
		{Name: "orphan", Parent: "ghost"},
	}

	order, err := OrderAll(teams)
	if err != nil {
		t.Fatalf("OrderAll failed: %v", err)
	}
	if len(order) != 1 || order[0] != "orphan" {
		t.Errorf("expected [orphan], got %v", order)
	}
}

func TestOrderAncestors(t *testing.T) {
	byName := map[string]config.TeamSpec{
		"root": {Name: "root"},
		"mid":  {Name: "mid", Parent: "root"},
		"x":    {Name: "x", Parent: "mid"},
	}

	chain, err := OrderAncestors("x", byName)
	if err != nil {
		t.Fatalf("OrderAncestors failed: %v", err)
	}
	want := []string{"root", "mid"}
	if len(chain) != len(want) {
		t.Fatalf("expected %v, got %v", want, chain)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("chain[%d]: got %q, want %q", i, chain[i], want[i])
		}
	}
}

func TestOrderAncestorsDanglingParent(t *testing.T) {
	// An ancestor missing from the configuration has no spec to reconcile;
	// it must not appear in the chain.
	byName := map[string]config.TeamSpec{
		"mid": {Name: "mid", Parent: "ghost"},
		"x":   {Name: "x", Parent: "mid"},
	}

	chain, err := OrderAncestors("x", byName)
	if err != nil {
		t.Fatalf("OrderAncestors failed: %v", err)
	}
	if len(chain) != 1 || chain[0] != "mid" {
		t.Errorf("expected [mid], got %v", chain)
	}

	chain, err = OrderAncestors("mid", byName)
	if err != nil {
		t.Fatalf("OrderAncestors failed: %v", err)
	}
	if len(chain) != 0 {
		t.Errorf("expected no ancestors when the parent is unconfigured, got %v", chain)
	}
}

func TestOrderAncestorsRoot(t *testing.T) {
	byName := map[string]config.TeamSpec{
		"root": {Name: "root"},
	}

	chain, err := OrderAncestors("root", byName)
	if err != nil {
		t.Fatalf("OrderAncestors failed: %v", err)
	}
	if len(chain) != 0 {
		t.Errorf("expected no ancestors for a root, got %v", chain)
	}
}

func TestOrderAncestorsCycle(t *testing.T) {
	byName := map[string]config.TeamSpec{
		"a": {Name: "a", Parent: "b"},
		"b": {Name: "b", Parent: "a"},
	}

	if _, err := OrderAncestors("a", byName); err == nil {
		t.Fatal("expected an error for a cyclic parent chain")
	}
}
