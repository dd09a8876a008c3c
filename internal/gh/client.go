package gh

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

// Client implements Service against the GitHub REST API, scoped to a single
// organization.
type Client struct {
	api *github.Client
	org string
}

var _ Service = (*Client)(nil)

// NewClient builds a Client authenticated with the given access token.
func NewClient(ctx context.Context, token, org string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &Client{api: github.NewClient(tc), org: org}
}

// isNotFound reports whether the API call failed with an HTTP 404.
func isNotFound(err error) bool {
	var resp *github.ErrorResponse
	return errors.As(err, &resp) && resp.Response != nil && resp.Response.StatusCode == http.StatusNotFound
}

func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	user, _, err := c.api.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("fetching authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

func teamSnapshot(t *github.Team) *Team {
	team := &Team{
		ID:      t.GetID(),
		Slug:    t.GetSlug(),
		Name:    t.GetName(),
		Privacy: t.GetPrivacy(),
	}
	if parent := t.GetParent(); parent != nil {
		team.ParentSlug = parent.GetSlug()
	}
	return team
}

func (c *Client) FindTeam(ctx context.Context, slug string) (*Team, error) {
	t, _, err := c.api.Teams.GetTeamBySlug(ctx, c.org, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("team %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching team %s: %w", slug, err)
	}
	return teamSnapshot(t), nil
}

func (c *Client) CreateTeam(ctx context.Context, name, privacy string) (*Team, error) {
	t, _, err := c.api.Teams.CreateTeam(ctx, c.org, github.NewTeam{
		Name:    name,
		Privacy: github.String(privacy),
	})
	if err != nil {
		return nil, fmt.Errorf("creating team %s: %w", name, err)
	}
	return teamSnapshot(t), nil
}

func (c *Client) UpdateTeamPrivacy(ctx context.Context, team *Team, privacy string) error {
	_, _, err := c.api.Teams.EditTeamBySlug(ctx, c.org, team.Slug, github.NewTeam{
		Name:    team.Name,
		Privacy: github.String(privacy),
	}, false)
	if err != nil {
		return fmt.Errorf("updating privacy of team %s: %w", team.Slug, err)
	}
	return nil
}

func (c *Client) UpdateTeamParent(ctx context.Context, team, parent *Team) error {
	_, _, err := c.api.Teams.EditTeamBySlug(ctx, c.org, team.Slug, github.NewTeam{
		Name:         team.Name,
		ParentTeamID: github.Int64(parent.ID),
	}, false)
	if err != nil {
		return fmt.Errorf("setting parent of team %s to %s: %w", team.Slug, parent.Slug, err)
	}
	return nil
}

func (c *Client) ListTeamMembers(ctx context.Context, team *Team) ([]string, error) {
	opts := &github.TeamListTeamMembersOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var logins []string
	for {
		members, resp, err := c.api.Teams.ListTeamMembersBySlug(ctx, c.org, team.Slug, opts)
		if err != nil {
			return nil, fmt.Errorf("listing members of team %s: %w", team.Slug, err)
		}
		for _, m := range members {
			logins = append(logins, m.GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return logins, nil
}

func (c *Client) GrantTeamMembership(ctx context.Context, team *Team, login, role string) error {
	_, _, err := c.api.Teams.AddTeamMembershipBySlug(ctx, c.org, team.Slug, login, &github.TeamAddTeamMembershipOptions{
		Role: role,
	})
	if err != nil {
		return fmt.Errorf("adding %s to team %s: %w", login, team.Slug, err)
	}
	return nil
}

func (c *Client) RevokeTeamMembership(ctx context.Context, team *Team, login string) error {
	_, err := c.api.Teams.RemoveTeamMembershipBySlug(ctx, c.org, team.Slug, login)
	if err != nil {
		return fmt.Errorf("removing %s from team %s: %w", login, team.Slug, err)
	}
	return nil
}

func (c *Client) IsTeamMember(ctx context.Context, team *Team, login string) (bool, error) {
	_, _, err := c.api.Teams.GetTeamMembershipBySlug(ctx, c.org, team.Slug, login)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking membership of %s in team %s: %w", login, team.Slug, err)
	}
	return true, nil
}

func (c *Client) FindRepository(ctx context.Context, name string) (*Repo, error) {
	repo, _, err := c.api.Repositories.Get(ctx, c.org, name)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("repository %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching repository %s: %w", name, err)
	}
	return &Repo{Name: repo.GetName()}, nil
}

func (c *Client) ListRepositoryTeams(ctx context.Context, repo *Repo) (map[string]string, error) {
	opts := &github.ListOptions{PerPage: 100}
	grants := map[string]string{}
	for {
		teams, resp, err := c.api.Repositories.ListTeams(ctx, c.org, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("listing team grants on %s: %w", repo.Name, err)
		}
		for _, t := range teams {
			grants[t.GetSlug()] = t.GetPermission()
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return grants, nil
}

func (c *Client) GrantRepositoryPermission(ctx context.Context, team *Team, repo *Repo, permission string) error {
	_, err := c.api.Teams.AddTeamRepoBySlug(ctx, c.org, team.Slug, c.org, repo.Name, &github.TeamAddTeamRepoOptions{
		Permission: permission,
	})
	if err != nil {
		return fmt.Errorf("granting team %s %s on %s: %w", team.Slug, permission, repo.Name, err)
	}
	return nil
}

func (c *Client) RevokeRepositoryPermission(ctx context.Context, team *Team, repo *Repo) error {
	_, err := c.api.Teams.RemoveTeamRepoBySlug(ctx, c.org, team.Slug, c.org, repo.Name)
	if err != nil {
		return fmt.Errorf("revoking team %s access to %s: %w", team.Slug, repo.Name, err)
	}
	return nil
}
