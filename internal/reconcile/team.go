package reconcile

import (
	"context"
	"fmt"
	"io"

	"github.com/ziadkadry99/orgsync/internal/config"
	"github.com/ziadkadry99/orgsync/internal/gh"
)

// DiffTeam computes the changes needed to converge one team to its spec
// without mutating anything. In live mode the desired parent is resolved
// remotely so the comparison matches what ApplyTeam will see; dry-run
// display skips that extra lookup.
func DiffTeam(ctx context.Context, svc gh.Service, spec config.TeamSpec, live bool) (*ChangeSet, error) {
	cs := &ChangeSet{}

	team, err := svc.FindTeam(ctx, spec.Name)
	switch {
	case gh.IsNotFound(err):
		cs.Create = append(cs.Create, fmt.Sprintf("Create team %s with closed visibility", spec.Name))
		team = nil
	case err != nil:
		return nil, err
	default:
		if team.Privacy != gh.PrivacyClosed {
			cs.Update = append(cs.Update, fmt.Sprintf("Change %s visibility to closed", spec.Name))
		}
	}

	if live && team != nil && spec.Parent != "" {
		parent, err := svc.FindTeam(ctx, spec.Parent)
		if err != nil {
			return nil, fmt.Errorf("resolving parent of %s: %w", spec.Name, err)
		}
		if team.ParentSlug != parent.Slug {
			cs.Update = append(cs.Update, fmt.Sprintf("Set parent team of %s to %s", spec.Name, spec.Parent))
		}
	}

	current := map[string]bool{}
	if team != nil {
		logins, err := svc.ListTeamMembers(ctx, team)
		if err != nil {
			return nil, err
		}
		for _, login := range logins {
			current[login] = true
		}
	}
	desired := spec.DesiredMembers()

	for _, login := range sortedKeys(desired) {
		if !current[login] {
			cs.Add = append(cs.Add, fmt.Sprintf("Add %s to %s as %s", login, spec.Name, spec.Role(login)))
		}
	}
	for _, login := range sortedKeys(current) {
		if !desired[login] {
			cs.Remove = append(cs.Remove, fmt.Sprintf("Remove %s from %s", login, spec.Name))
		}
	}

	return cs, nil
}

// ApplyTeam idempotently converges one team to its spec, re-reading remote
// state rather than replaying a previously computed ChangeSet. Each applied
// action is reported on out. A failed call aborts the team; partially
// applied state is accepted.
func ApplyTeam(ctx context.Context, svc gh.Service, spec config.TeamSpec, out io.Writer) error {
	team, err := svc.FindTeam(ctx, spec.Name)
	if gh.IsNotFound(err) {
		team, err = svc.CreateTeam(ctx, spec.Name, gh.PrivacyClosed)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created team %s\n", spec.Name)
	} else if err != nil {
		return err
	}

	if team.Privacy != gh.PrivacyClosed {
		if err := svc.UpdateTeamPrivacy(ctx, team, gh.PrivacyClosed); err != nil {
			return err
		}
		fmt.Fprintf(out, "Changed %s visibility to closed\n", spec.Name)
	}

	if spec.Parent != "" {
		parent, err := svc.FindTeam(ctx, spec.Parent)
		if err != nil {
			return fmt.Errorf("resolving parent of %s: %w", spec.Name, err)
		}
		if team.ParentSlug != parent.Slug {
			if err := svc.UpdateTeamParent(ctx, team, parent); err != nil {
				return err
			}
			fmt.Fprintf(out, "Set parent team of %s to %s\n", spec.Name, spec.Parent)
		}
	}

	logins, err := svc.ListTeamMembers(ctx, team)
	if err != nil {
		return err
	}
	current := make(map[string]bool, len(logins))
	for _, login := range logins {
		current[login] = true
	}
	desired := spec.DesiredMembers()

	for _, login := range sortedKeys(desired) {
		if current[login] {
			continue
		}
		role := spec.Role(login)
		if err := svc.GrantTeamMembership(ctx, team, login, role); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s to %s as %s\n", login, spec.Name, role)
	}
	for _, login := range sortedKeys(current) {
		if desired[login] {
			continue
		}
		if err := svc.RevokeTeamMembership(ctx, team, login); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %s from %s\n", login, spec.Name)
	}

	return nil
}

// SweepUnlistedUser removes login from every configured team that does not
// explicitly list it. The remote API adds the acting identity to teams it
// creates; this undoes that unless the membership is declared. Per-team
// failures are reported on out and do not stop the sweep.
func SweepUnlistedUser(ctx context.Context, svc gh.Service, teams []config.TeamSpec, login string, out io.Writer) {
	for _, spec := range teams {
		if spec.Listed(login) {
			continue
		}
		removed, err := sweepTeam(ctx, svc, spec.Name, login)
		if err != nil {
			fmt.Fprintf(out, "Failed to remove %s from %s: %v\n", login, spec.Name, err)
			continue
		}
		if removed {
			fmt.Fprintf(out, "Removed %s from %s\n", login, spec.Name)
		}
	}
}

func sweepTeam(ctx context.Context, svc gh.Service, teamName, login string) (bool, error) {
	team, err := svc.FindTeam(ctx, teamName)
	if err != nil {
		return false, err
	}
	member, err := svc.IsTeamMember(ctx, team, login)
	if err != nil {
		return false, err
	}
	if !member {
		return false, nil
	}
	if err := svc.RevokeTeamMembership(ctx, team, login); err != nil {
		return false, err
	}
	return true, nil
}
