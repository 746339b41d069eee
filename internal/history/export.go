package history

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gitsignals/gitsignals/internal/parquet"
	"github.com/gitsignals/gitsignals/schema"
)

// ExecuteHistoryExport exports the recorded snapshot history to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.SnapshotCount == 0 {
		return errors.New("no snapshot history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshots: %d\n", status.SnapshotCount)
	fmt.Printf("Total scored entries: %d\n", status.EntryCount)

	dates, err := store.ListDates()
	if err != nil {
		return fmt.Errorf("failed to list snapshot dates: %w", err)
	}

	snaps := make([]schema.Snapshot, 0, len(dates))
	for _, date := range dates {
		snap, err := store.ReadSnapshot(date)
		if err != nil {
			return fmt.Errorf("failed to read snapshot for %s: %w", date, err)
		}
		snaps = append(snaps, snap)
	}

	rows := parquet.ConvertSnapshots(snaps)

	target := outputFile
	if !strings.HasSuffix(target, ".parquet") {
		target += ".parquet"
	}
	if err := parquet.WriteSnapshotsParquet(rows, target); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	fmt.Printf("Exported %d snapshot rows to: %s\n", len(rows), target)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
