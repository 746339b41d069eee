package cmd

import (
	"github.com/gitsignals/gitsignals/core"
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores a batch of repository metrics and prints the ranking.
var scoreCmd = &cobra.Command{
	Use:   "score [input-file]",
	Short: "Score repositories by momentum and show the ranking.",
	Long: `Score a batch of collected repository metrics and rank them by momentum.

Each repository gets a 0-10 score from four bounded signals:
- Commit surge: sustained commit volume with feature work
- Star velocity: stars gained over the collection window
- Team traction: multiple genuinely active contributors
- Ecosystem fit: developer-tool languages and topics

The run is recorded as a dated snapshot so week-over-week changes and
trends stay available. Pass '-' (or no argument) to read metrics from stdin.

Examples:
  # Score this week's collected metrics
  gitsignals score metrics.json

  # Score from stdin without recording a snapshot
  cat metrics.json | gitsignals score --dry-run

  # Re-run a past week with a stricter bar
  gitsignals score metrics.json --date 2026-08-20 --threshold 8.0

  # Export the full ranking to CSV for tracking
  gitsignals score metrics.json --output csv --output-file scores.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run scoring", err)
		}
	},
}
