package cmd

import (
	"github.com/gitsignals/gitsignals/core"
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/spf13/cobra"
)

// trendCmd shows the recorded score history for one repository.
var trendCmd = &cobra.Command{
	Use:   "trend <owner/name>",
	Short: "Show the recorded score history for a repository.",
	Long: `Display the dated score history for a single repository.

Reads snapshots from the configured history backend and renders the most
recent periods inside the trend window, newest last. Periods where the
repository was absent from the snapshot are skipped rather than zero-filled.

Examples:
  # Last three recorded scores
  gitsignals trend astral-sh/uv

  # A longer window, as JSON for further processing
  gitsignals trend astral-sh/uv --trend-window 12 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: trendSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteTrend(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot show trend", err)
		}
	},
}
