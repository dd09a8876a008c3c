package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/ziadkadry99/orgsync/internal/gh"
)

// fakeService is an in-memory gh.Service. Mutating calls are recorded so
// tests can assert that dry runs and declined confirmations never mutate.
type fakeService struct {
	user  string
	teams map[string]*fakeTeam
	repos map[string]map[string]string // repo name -> team slug -> native permission

	// failTeams simulates transient lookup failures per team slug.
	failTeams map[string]error

	mutations []string
}

type fakeTeam struct {
	team    gh.Team
	members map[string]string // login -> role
}

func newFakeService() *fakeService {
	return &fakeService{
		user:      "operator",
		teams:     map[string]*fakeTeam{},
		repos:     map[string]map[string]string{},
		failTeams: map[string]error{},
	}
}

func (s *fakeService) addTeam(slug, privacy, parent string, members map[string]string) {
	if members == nil {
		members = map[string]string{}
	}
	s.teams[slug] = &fakeTeam{
		team:    gh.Team{ID: int64(len(s.teams) + 1), Slug: slug, Name: slug, Privacy: privacy, ParentSlug: parent},
		members: members,
	}
}

func (s *fakeService) record(format string, args ...any) {
	s.mutations = append(s.mutations, fmt.Sprintf(format, args...))
}

func (s *fakeService) CurrentUser(ctx context.Context) (string, error) {
	return s.user, nil
}

func (s *fakeService) FindTeam(ctx context.Context, slug string) (*gh.Team, error) {
	if err := s.failTeams[slug]; err != nil {
		return nil, err
	}
	t, ok := s.teams[slug]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", slug, gh.ErrNotFound)
	}
	snapshot := t.team
	return &snapshot, nil
}

func (s *fakeService) CreateTeam(ctx context.Context, name, privacy string) (*gh.Team, error) {
	s.record("create-team %s %s", name, privacy)
	s.addTeam(name, privacy, "", nil)
	snapshot := s.teams[name].team
	return &snapshot, nil
}

func (s *fakeService) UpdateTeamPrivacy(ctx context.Context, team *gh.Team, privacy string) error {
	s.record("update-privacy %s %s", team.Slug, privacy)
	s.teams[team.Slug].team.Privacy = privacy
	return nil
}

func (s *fakeService) UpdateTeamParent(ctx context.Context, team, parent *gh.Team) error {
	s.record("update-parent %s %s", team.Slug, parent.Slug)
	s.teams[team.Slug].team.ParentSlug = parent.Slug
	return nil
}

func (s *fakeService) ListTeamMembers(ctx context.Context, team *gh.Team) ([]string, error) {
	t := s.teams[team.Slug]
	logins := make([]string, 0, len(t.members))
	for login := range t.members {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	return logins, nil
}

func (s *fakeService) GrantTeamMembership(ctx context.Context, team *gh.Team, login, role string) error {
	s.record("grant-membership %s %s %s", team.Slug, login, role)
	s.teams[team.Slug].members[login] = role
	return nil
}

func (s *fakeService) RevokeTeamMembership(ctx context.Context, team *gh.Team, login string) error {
	s.record("revoke-membership %s %s", team.Slug, login)
	delete(s.teams[team.Slug].members, login)
	return nil
}

func (s *fakeService) IsTeamMember(ctx context.Context, team *gh.Team, login string) (bool, error) {
	_, ok := s.teams[team.Slug].members[login]
	return ok, nil
}

func (s *fakeService) FindRepository(ctx context.Context, name string) (*gh.Repo, error) {
	if _, ok := s.repos[name]; !ok {
		return nil, fmt.Errorf("repository %s: %w", name, gh.ErrNotFound)
	}
	return &gh.Repo{Name: name}, nil
}

func (s *fakeService) ListRepositoryTeams(ctx context.Context, repo *gh.Repo) (map[string]string, error) {
	grants := map[string]string{}
	for team, perm := range s.repos[repo.Name] {
		grants[team] = perm
	}
	return grants, nil
}

func (s *fakeService) GrantRepositoryPermission(ctx context.Context, team *gh.Team, repo *gh.Repo, permission string) error {
	s.record("grant-permission %s %s %s", repo.Name, team.Slug, permission)
	s.repos[repo.Name][team.Slug] = permission
	return nil
}

func (s *fakeService) RevokeRepositoryPermission(ctx context.Context, team *gh.Team, repo *gh.Repo) error {
	s.record("revoke-permission %s %s", repo.Name, team.Slug)
	delete(s.repos[repo.Name], team.Slug)
	return nil
}
