// Package cmd defines the command-line interface for gitsignals.
package cmd

import (
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("date", "", "Snapshot date in YYYY-MM-DD (defaults to today in UTC)")
	rootCmd.PersistentFlags().Float64("threshold", contract.DefaultThreshold, "Minimum score for a repository to qualify")
	rootCmd.PersistentFlags().Int("trend-window", contract.DefaultTrendWindow, "Number of recent periods shown in trends")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.OutputText), "Output format: text or csv or json or markdown")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("languages", "", "Comma-separated language allowlist for ecosystem fit")
	rootCmd.PersistentFlags().String("keywords", "", "Comma-separated topic keywords for ecosystem fit")
	rootCmd.PersistentFlags().Int("min-active-commits", contract.DefaultMinActiveCommits, "Commits required for a contributor to count as active")
	rootCmd.PersistentFlags().Int("team-sweet-spot", contract.DefaultTeamSweetSpot, "Active contributor count that maxes out team traction")
	rootCmd.PersistentFlags().String("history-backend", string(schema.HistoryFS), "History backend: fs or sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-path", "", "Directory (fs) or file path (sqlite) for snapshot storage")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("dry-run", false, "Score without recording a snapshot")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("report-dir", "reports", "Directory for weekly report artifacts")
	reportCmd.Flags().Bool("dry-run", false, "Generate the report without recording a snapshot")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
