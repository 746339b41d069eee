package cmd

import (
	"github.com/gitsignals/gitsignals/core"
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd produces the weekly digest artifacts.
var reportCmd = &cobra.Command{
	Use:   "report [input-file]",
	Short: "Generate the weekly markdown digest and JSON API files.",
	Long: `Run the scoring pipeline and write the weekly report artifacts.

Produces under the report directory:
- weekly_gems_<date>.md and weekly_gems_latest.md markdown digests
- <date>.json and latest.json API payloads for dashboards

Only repositories at or above the quality threshold make the digest, so a
quiet week yields an honest "no discoveries" report rather than filler.

Examples:
  # Generate this week's report
  gitsignals report metrics.json

  # Write artifacts somewhere a static site can serve them
  gitsignals report metrics.json --report-dir docs/api

  # Preview a report without recording the snapshot
  gitsignals report metrics.json --dry-run`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
	},
}
