package reconcile

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/orgsync/internal/config"
	"github.com/ziadkadry99/orgsync/internal/gh"
	"github.com/ziadkadry99/orgsync/internal/progress"
)

// Runner drives a two-phase reconciliation: compute and display the diff
// for every entity, then, behind confirmation, apply changes in the same
// order. Phase 2 recomputes every diff from live remote state; phase 1
// output is advisory, never a literal transcript of what will be applied.
type Runner struct {
	Service gh.Service
	Config  *config.Config
	Out     io.Writer
	DryRun  bool
	Verbose bool

	// Confirm gates phase 2. It is the only cancellation point: once the
	// apply phase starts there is no way to abort a partially applied run.
	Confirm func() (bool, error)

	// Progress reports per-entity apply progress. Optional.
	Progress progress.Reporter
}

// RunTeams reconciles the team hierarchy and membership. With a target, only
// the target and its ancestor chain are processed, ancestors first.
func (r *Runner) RunTeams(ctx context.Context, target string) error {
	byName := r.Config.TeamsByName()

	var order []string
	if target != "" {
		if _, ok := byName[target]; !ok {
			return fmt.Errorf("team %q not found in the configuration", target)
		}
		chain, err := OrderAncestors(target, byName)
		if err != nil {
			return err
		}
		order = append(chain, target)
	} else {
		var err error
		order, err = OrderAll(r.Config.Teams)
		if err != nil {
			return err
		}
	}

	if r.Verbose {
		fmt.Fprintf(r.Out, "Processing %d teams: %s\n", len(order), strings.Join(order, ", "))
	}

	combined := &ChangeSet{}
	for _, name := range order {
		spec := byName[name]
		cs, err := DiffTeam(ctx, r.Service, spec, false)
		if err != nil {
			return fmt.Errorf("computing diff for team %s: %w", name, err)
		}
		combined.Merge(cs)

		fmt.Fprintf(r.Out, "\nChanges for team %s:\n", name)
		cs.Render(r.Out)
		r.printTeamStructure(spec)
	}
	r.printSummary(combined, len(order))

	if r.DryRun {
		fmt.Fprintln(r.Out, "\nDry run completed. No changes were made.")
		return nil
	}
	ok, err := r.Confirm()
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(r.Out, "\nOperation cancelled. No changes were made.")
		return nil
	}

	runID := uuid.NewString()
	fmt.Fprintf(r.Out, "\nApplying changes (run %s)...\n", runID)
	r.progressStart(len(order))
	for i, name := range order {
		if err := ApplyTeam(ctx, r.Service, byName[name], r.Out); err != nil {
			r.progressFinish()
			return err
		}
		r.progressUpdate(i+1, fmt.Sprintf("team %s", name))
	}
	r.progressFinish()

	fmt.Fprintln(r.Out, "\nRemoving current user from teams where they're not explicitly listed...")
	login, err := r.Service.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("resolving current user: %w", err)
	}
	SweepUnlistedUser(ctx, r.Service, r.Config.Teams, login, r.Out)

	fmt.Fprintln(r.Out, "\nTeam structure update completed.")
	return nil
}

// RunRepos reconciles repository team permission grants. Repositories have
// no ordering dependency; a target scopes the run to that one repository.
func (r *Runner) RunRepos(ctx context.Context, target string) error {
	byName := r.Config.ReposByName()

	var order []string
	if target != "" {
		if _, ok := byName[target]; !ok {
			return fmt.Errorf("repository %q not found in the configuration", target)
		}
		order = []string{target}
	} else {
		for _, repo := range r.Config.Repositories {
			order = append(order, repo.Name)
		}
	}

	if r.Verbose {
		fmt.Fprintf(r.Out, "Processing %d repositories: %s\n", len(order), strings.Join(order, ", "))
	}

	combined := &ChangeSet{}
	for _, name := range order {
		cs := DiffRepoPermissions(ctx, r.Service, byName[name])
		combined.Merge(cs)

		fmt.Fprintf(r.Out, "\nChanges for repository %s:\n", name)
		cs.Render(r.Out)
	}
	r.printSummary(combined, len(order))

	if r.DryRun {
		fmt.Fprintln(r.Out, "\nDry run completed. No changes were made.")
		return nil
	}
	ok, err := r.Confirm()
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(r.Out, "\nOperation cancelled. No changes were made.")
		return nil
	}

	runID := uuid.NewString()
	fmt.Fprintf(r.Out, "\nApplying changes (run %s)...\n", runID)
	r.progressStart(len(order))
	for i, name := range order {
		applied := ApplyRepoPermissions(ctx, r.Service, byName[name], r.Out)
		for _, e := range applied.Errors {
			fmt.Fprintf(r.Out, "%s\n", e)
		}
		r.progressUpdate(i+1, fmt.Sprintf("repository %s", name))
	}
	r.progressFinish()

	fmt.Fprintln(r.Out, "\nRepository team permissions update completed.")
	return nil
}

func (r *Runner) printTeamStructure(spec config.TeamSpec) {
	parent := spec.Parent
	if parent == "" {
		parent = "None"
	}
	fmt.Fprintf(r.Out, "\nCurrent team structure:\n")
	fmt.Fprintf(r.Out, "  Maintainers: %s\n", strings.Join(spec.Maintainers, ", "))
	fmt.Fprintf(r.Out, "  Members: %s\n", strings.Join(spec.Members, ", "))
	fmt.Fprintf(r.Out, "  Parent: %s\n", parent)
	fmt.Fprintf(r.Out, "  Visibility: closed\n")
}

// printSummary shows the combined changeset across all entities. It is for
// display only; the apply phase never reads it.
func (r *Runner) printSummary(combined *ChangeSet, entities int) {
	if combined.Empty() {
		fmt.Fprintf(r.Out, "\nEverything up to date across %d entities.\n", entities)
		return
	}
	fmt.Fprintf(r.Out, "\nSummary of all pending changes:\n")
	combined.Render(r.Out)
}

func (r *Runner) progressStart(total int) {
	if r.Progress != nil {
		r.Progress.Start(total)
	}
}

func (r *Runner) progressUpdate(current int, message string) {
	if r.Progress != nil {
		r.Progress.Update(current, message)
	}
}

func (r *Runner) progressFinish() {
	if r.Progress != nil {
		r.Progress.Finish()
	}
}
