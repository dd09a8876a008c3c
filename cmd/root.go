package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dryRun  bool
	target  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "orgsync",
	Short: "Reconcile GitHub teams and repository permissions from YAML",
	Long: `orgsync compares a declarative YAML description of your organization's
team hierarchy, membership, and repository permission grants against the
live organization, shows the difference, and applies it after an explicit
confirmation.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "orgsync.yml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "compute and display changes without applying them")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "limit the run to a single team or repository")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
