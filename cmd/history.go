package cmd

import (
	"fmt"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/internal/history"
	"github.com/gitsignals/gitsignals/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.HistoryBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryPath = viper.GetString("history-path")
	cfg.HistoryDBConnect = connStr

	// Get output-related config values (used by export command)
	cfg.OutputFile = viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := history.InitHistory(cfg); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.HistoryBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.HistorySQLite && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on snapshot history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by scoring commands. This avoids input file
// handling and scoring config processing for simple storage operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded momentum snapshots",
	Long: `Manage the dated score snapshots that power change and trend tracking.

Every score or report run records one snapshot per date, storing the final
score of each repository in the batch. Snapshots enable:
- Week-over-week score change in the ranking output
- Trend sparklines over the configured window
- Data export for analytics tools

Supported backends: flat files (default), SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show snapshot storage statistics
  export  - Export snapshots to Parquet for analytics
  clear   - Remove all recorded snapshots
  migrate - Run database schema migrations

Examples:
  # Check snapshot storage status
  gitsignals history status

  # Export for analysis in pandas/DuckDB
  gitsignals history export --output-file snapshots.parquet`,
}

// historyStatusCmd shows snapshot storage status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot storage statistics and connection details",
	Long: `Show detailed information about recorded momentum snapshots.

Displays:
- Backend type and storage location
- Total number of snapshots stored
- Total scored entries across all snapshots
- Oldest and newest snapshot dates

Use this to:
- Verify snapshot recording is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check snapshot storage status
  gitsignals history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears recorded snapshots.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded momentum snapshots",
	Long: `Delete all stored snapshots from the configured backend.

This removes:
- All dated score snapshots
- The week-over-week change baseline
- All trend history

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting trend tracking after a scoring change
- Starting a fresh observation period
- Testing history features

Examples:
  # Export before clearing
  gitsignals history export --output-file backup.parquet
  gitsignals history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, history.ResolveLocation(cfg)); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports snapshots to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export snapshot history to Parquet for BI tools and analytics",
	Long: `Export all recorded snapshots to Parquet format for use with analytics tools.

Each row is one (date, repository, score) observation, which makes the
dataset trivial to pivot into score-over-time views.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all snapshots
  gitsignals history export --output-file snapshots.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('snapshots.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot history store.

Migrations allow:
- Upgrading to new schema versions when gitsignals is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gitsignals history migrate --history-backend sqlite

  # Rollback to previous version
  gitsignals history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
