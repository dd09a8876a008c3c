package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/orgsync/internal/config"
	"github.com/ziadkadry99/orgsync/internal/gh"
	"github.com/ziadkadry99/orgsync/internal/progress"
	"github.com/ziadkadry99/orgsync/internal/reconcile"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `orgsync init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newRunner wires the GitHub client and the interactive pieces into a
// reconcile.Runner. The access token comes from GITHUB_TOKEN; its absence
// is fatal before any remote call is made.
func newRunner(ctx context.Context, cfg *config.Config) (*reconcile.Runner, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable must be set")
	}
	return &reconcile.Runner{
		Service:  gh.NewClient(ctx, token, cfg.Org),
		Config:   cfg,
		Out:      os.Stdout,
		DryRun:   dryRun,
		Verbose:  verbose,
		Confirm:  confirmChanges,
		Progress: progress.NewReporter(),
	}, nil
}

// confirmChanges prompts before any mutation is issued. Declining (or
// interrupting the prompt) cancels the run without error.
func confirmChanges() (bool, error) {
	prompt := promptui.Prompt{
		Label:     "Do you want to proceed with these changes",
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
