package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ORGSYNC_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	// Overlay environment variables: ORGSYNC_ORG -> org, etc.
	if err := k.Load(env.Provider("ORGSYNC_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ORGSYNC_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validPermissions is the set of recognized permission levels.
var validPermissions = map[Permission]bool{
	PermissionRead:     true,
	PermissionWrite:    true,
	PermissionAdmin:    true,
	PermissionMaintain: true,
	PermissionTriage:   true,
}

// Validate checks that the configuration contains valid values. Parent
// references are deliberately not checked against the declared teams: a
// dangling parent surfaces as a remote lookup failure when the team is
// reconciled.
func (c *Config) Validate() error {
	if c.Org == "" {
		return fmt.Errorf("org is required")
	}

	teamNames := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.Name == "" {
			return fmt.Errorf("every team needs a name")
		}
		if teamNames[t.Name] {
			return fmt.Errorf("duplicate team %q", t.Name)
		}
		teamNames[t.Name] = true
		if t.Parent == t.Name {
			return fmt.Errorf("team %q lists itself as parent", t.Name)
		}
	}

	repoNames := make(map[string]bool, len(c.Repositories))
	for _, r := range c.Repositories {
		if r.Name == "" {
			return fmt.Errorf("every repository needs a name")
		}
		if repoNames[r.Name] {
			return fmt.Errorf("duplicate repository %q", r.Name)
		}
		repoNames[r.Name] = true
		for team, perm := range r.Teams {
			if !validPermissions[perm] {
				return fmt.Errorf("invalid permission %q for team %q on repository %q: must be one of read, write, admin, maintain, triage", perm, team, r.Name)
			}
		}
	}

	return nil
}
