// Package gh wraps the GitHub organization API behind a narrow Service
// interface so the reconciliation engine can be exercised without a live
// remote.
package gh

import (
	"context"
	"errors"
)

// ErrNotFound signals that an entity does not exist on the remote side.
// Only an HTTP 404 maps to it; transient failures propagate as themselves
// and must never be mistaken for absence.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err indicates a missing remote entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// PrivacyClosed is the team visibility every managed team is converged to.
const PrivacyClosed = "closed"

// Membership roles accepted by the remote API.
const (
	RoleMaintainer = "maintainer"
	RoleMember     = "member"
)

// Team is an observed snapshot of an organization team. Snapshots are
// fetched per operation and never cached across operations.
type Team struct {
	ID         int64
	Slug       string
	Name       string
	Privacy    string
	ParentSlug string
}

// Repo is an observed snapshot of an organization repository.
type Repo struct {
	Name string
}

// Service is the remote organization API consumed by the reconciliation
// engine. Every call is a synchronous round trip; lookups return ErrNotFound
// when the entity is absent.
type Service interface {
	CurrentUser(ctx context.Context) (string, error)

	FindTeam(ctx context.Context, slug string) (*Team, error)
	CreateTeam(ctx context.Context, name, privacy string) (*Team, error)
	UpdateTeamPrivacy(ctx context.Context, team *Team, privacy string) error
	UpdateTeamParent(ctx context.Context, team, parent *Team) error
	ListTeamMembers(ctx context.Context, team *Team) ([]string, error)
	GrantTeamMembership(ctx context.Context, team *Team, login, role string) error
	RevokeTeamMembership(ctx context.Context, team *Team, login string) error
	IsTeamMember(ctx context.Context, team *Team, login string) (bool, error)

	FindRepository(ctx context.Context, name string) (*Repo, error)
	ListRepositoryTeams(ctx context.Context, repo *Repo) (map[string]string, error)
	GrantRepositoryPermission(ctx context.Context, team *Team, repo *Repo, permission string) error
	RevokeRepositoryPermission(ctx context.Context, team *Team, repo *Repo) error
}
