package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Reconcile the team hierarchy and membership",
	Long: `Computes and displays the difference between the configured team
hierarchy and the live organization, then applies it after confirmation.
Parents are always processed before their children. After applying, the
current user is removed from teams that do not explicitly list them.`,
	RunE: runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	return runner.RunTeams(ctx, target)
}
