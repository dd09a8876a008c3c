package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive wizard that collects the organization
// settings and writes a starter configuration to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to orgsync! Let's set up your configuration.")
	fmt.Println()

	orgPrompt := promptui.Prompt{
		Label: "GitHub organization",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("organization is required")
			}
			return nil
		},
	}
	org, err := orgPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("organization: %w", err)
	}

	teamPrompt := promptui.Prompt{
		Label:   "First team name",
		Default: "maintainers",
	}
	team, err := teamPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("team name: %w", err)
	}

	maintainersPrompt := promptui.Prompt{
		Label:   "Team maintainers (comma-separated logins)",
		Default: "",
	}
	maintainersStr, err := maintainersPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("maintainers: %w", err)
	}

	cfg := &Config{
		Org: strings.TrimSpace(org),
		Teams: []TeamSpec{
			{Name: strings.TrimSpace(team), Maintainers: splitAndTrim(maintainersStr)},
		},
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Configuration written to %s\n", path)
	fmt.Println("Add more teams and repositories there, then run `orgsync teams --dry-run`.")
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
