package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Reconcile repository team permission grants",
	Long: `Computes and displays the difference between the configured repository
permission grants and the live organization, then applies it after
confirmation. Failures on individual teams or repositories are reported
and do not stop the run.`,
	RunE: runRepos,
}

func init() {
	rootCmd.AddCommand(reposCmd)
}

func runRepos(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	return runner.RunRepos(ctx, target)
}
