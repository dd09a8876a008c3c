package reconcile

import (
	"context"
	"fmt"
	"io"

	"github.com/ziadkadry99/orgsync/internal/config"
	"github.com/ziadkadry99/orgsync/internal/gh"
)

// TranslatePermission maps the configuration permission vocabulary to the
// GitHub-native one. admin, maintain, and triage pass through unchanged.
func TranslatePermission(p config.Permission) string {
	switch p {
	case config.PermissionRead:
		return "pull"
	case config.PermissionWrite:
		return "push"
	default:
		return string(p)
	}
}

// DiffRepoPermissions computes the grant changes for one repository without
// mutating anything. A missing repository yields a single error entry;
// per-team lookup failures are recorded as error entries too, and the rest
// of the repository is still processed.
func DiffRepoPermissions(ctx context.Context, svc gh.Service, spec config.RepoSpec) *ChangeSet {
	return reconcileRepoPermissions(ctx, svc, spec, false, io.Discard)
}

// ApplyRepoPermissions re-derives the grant changes from live remote state
// and executes them, reporting each applied grant on out. Failures are
// recorded per team and never abort the repository.
func ApplyRepoPermissions(ctx context.Context, svc gh.Service, spec config.RepoSpec, out io.Writer) *ChangeSet {
	return reconcileRepoPermissions(ctx, svc, spec, true, out)
}

// reconcileRepoPermissions walks desired grants against current grants. The
// diff and apply entry points share the walk so the two phases can never
// disagree about what a change is; apply merely executes what the walk
// decides.
func reconcileRepoPermissions(ctx context.Context, svc gh.Service, spec config.RepoSpec, apply bool, out io.Writer) *ChangeSet {
	cs := &ChangeSet{}

	repo, err := svc.FindRepository(ctx, spec.Name)
	if gh.IsNotFound(err) {
		cs.Errors = append(cs.Errors, fmt.Sprintf("Repository %s not found", spec.Name))
		return cs
	}
	if err != nil {
		cs.Errors = append(cs.Errors, fmt.Sprintf("Error fetching repository %s: %v", spec.Name, err))
		return cs
	}

	current, err := svc.ListRepositoryTeams(ctx, repo)
	if err != nil {
		cs.Errors = append(cs.Errors, fmt.Sprintf("Error listing team grants on %s: %v", spec.Name, err))
		return cs
	}

	for _, teamName := range sortedKeys(spec.Teams) {
		level := spec.Teams[teamName]
		native := TranslatePermission(level)

		team, err := svc.FindTeam(ctx, teamName)
		if err != nil {
			cs.Errors = append(cs.Errors, fmt.Sprintf("Error processing team %s for %s: %v", teamName, spec.Name, err))
			continue
		}

		granted, ok := current[teamName]
		if !ok {
			cs.Add = append(cs.Add, fmt.Sprintf("Add team %s to %s with %s permission", teamName, spec.Name, level))
		} else if granted != native {
			cs.Update = append(cs.Update, fmt.Sprintf("Update team %s permission on %s from %s to %s", teamName, spec.Name, granted, level))
		}

		if !apply {
			continue
		}
		// The grant call is idempotent and issued for every desired team,
		// so a drifted grant is corrected even when the listing was stale.
		if err := svc.GrantRepositoryPermission(ctx, team, repo, native); err != nil {
			cs.Errors = append(cs.Errors, fmt.Sprintf("Error processing team %s for %s: %v", teamName, spec.Name, err))
			continue
		}
		fmt.Fprintf(out, "Set team %s permission on %s to %s\n", teamName, spec.Name, level)
	}

	for _, teamName := range sortedKeys(current) {
		if _, ok := spec.Teams[teamName]; ok {
			continue
		}
		cs.Remove = append(cs.Remove, fmt.Sprintf("Remove team %s from %s", teamName, spec.Name))
		if !apply {
			continue
		}
		team, err := svc.FindTeam(ctx, teamName)
		if err != nil {
			cs.Errors = append(cs.Errors, fmt.Sprintf("Error processing team %s for %s: %v", teamName, spec.Name, err))
			continue
		}
		if err := svc.RevokeRepositoryPermission(ctx, team, repo); err != nil {
			cs.Errors = append(cs.Errors, fmt.Sprintf("Error processing team %s for %s: %v", teamName, spec.Name, err))
			continue
		}
		fmt.Fprintf(out, "Removed team %s from %s\n", teamName, spec.Name)
	}

	return cs
}
