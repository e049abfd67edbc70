package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/reachlab/targetreport/internal/adapters/driven/config/file"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show the configured target proteins",
	RunE:  runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(flagConfig)
	if err != nil {
		return err
	}

	for _, target := range cfg.Targets {
		line := target
		if bad := cfg.Misgroundings[target]; len(bad) > 0 {
			line += "  (misgrounded texts: " + strings.Join(bad, ", ") + ")"
		}
		cmd.Println(line)
	}
	return nil
}
