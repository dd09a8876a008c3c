package config

// Permission is a repository permission level in the configuration
// vocabulary. It is translated to the GitHub-native vocabulary before any
// API call (read -> pull, write -> push).
type Permission string

const (
	PermissionRead     Permission = "read"
	PermissionWrite    Permission = "write"
	PermissionAdmin    Permission = "admin"
	PermissionMaintain Permission = "maintain"
	PermissionTriage   Permission = "triage"
)

// TeamSpec is the desired state of one organization team. Parent, when set,
// names another team in the same configuration; the teams form a forest.
type TeamSpec struct {
	Name        string   `yaml:"name" koanf:"name"`
	Maintainers []string `yaml:"maintainers,omitempty" koanf:"maintainers"`
	Members     []string `yaml:"members,omitempty" koanf:"members"`
	Parent      string   `yaml:"parent,omitempty" koanf:"parent"`
}

// RepoSpec is the desired set of team permission grants on one repository.
type RepoSpec struct {
	Name  string                `yaml:"name" koanf:"name"`
	Teams map[string]Permission `yaml:"teams" koanf:"teams"`
}

// Config is the top-level orgsync configuration, corresponding to orgsync.yml.
type Config struct {
	Org          string     `yaml:"org" koanf:"org"`
	Teams        []TeamSpec `yaml:"teams" koanf:"teams"`
	Repositories []RepoSpec `yaml:"repositories,omitempty" koanf:"repositories"`
}

// DesiredMembers returns the union of maintainers and members.
func (t TeamSpec) DesiredMembers() map[string]bool {
	desired := make(map[string]bool, len(t.Maintainers)+len(t.Members))
	for _, login := range t.Maintainers {
		desired[login] = true
	}
	for _, login := range t.Members {
		desired[login] = true
	}
	return desired
}

// Role returns the membership role for a login. A login listed under both
// maintainers and members is a maintainer.
func (t TeamSpec) Role(login string) string {
	for _, m := range t.Maintainers {
		if m == login {
			return "maintainer"
		}
	}
	return "member"
}

// Listed reports whether the login appears in the team's maintainers or
// members.
func (t TeamSpec) Listed(login string) bool {
	for _, m := range t.Maintainers {
		if m == login {
			return true
		}
	}
	for _, m := range t.Members {
		if m == login {
			return true
		}
	}
	return false
}

// TeamsByName indexes the configured teams by name.
func (c *Config) TeamsByName() map[string]TeamSpec {
	byName := make(map[string]TeamSpec, len(c.Teams))
	for _, t := range c.Teams {
		byName[t.Name] = t
	}
	return byName
}

// ReposByName indexes the configured repositories by name.
func (c *Config) ReposByName() map[string]RepoSpec {
	byName := make(map[string]RepoSpec, len(c.Repositories))
	for _, r := range c.Repositories {
		byName[r.Name] = r
	}
	return byName
}
