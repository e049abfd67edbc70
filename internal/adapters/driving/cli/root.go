// Package cli wires the cobra commands that drive the report pipeline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/reachlab/targetreport/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Persistent flags.
var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "targetreport",
	Short: "Assemble drugs-for-target reports",
	Long: `targetreport assembles small-molecule inhibition claims about a set of
target proteins from a curated statement database and an experimental
assay dataset, deduplicates and curates them, renders one HTML report
per target, and publishes the reports plus a ranked drug list.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default ~/.targetreport/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"verbose output")
}

// Execute runs the root command with the build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
