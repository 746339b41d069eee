// Package parquet provides data structures and functions for exporting
// momentum snapshot history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"

	"github.com/gitsignals/gitsignals/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotEntry represents one (date, repository, score) row of history.
// This struct maps to the momentum_snapshots table and the per-date JSON files.
type SnapshotEntry struct {
	// SnapshotDate is the run date in YYYY-MM-DD form
	SnapshotDate string `parquet:"snapshot_date,snappy"`

	// FullName is the "owner/repo" repository identity
	FullName string `parquet:"full_name,snappy"`

	// Score is the composite momentum score recorded for that date
	Score float64 `parquet:"score,snappy"`
}

// ConvertSnapshots flattens dated snapshots into parquet rows, preserving
// chronological order across snapshots.
func ConvertSnapshots(snaps []schema.Snapshot) []SnapshotEntry {
	var rows []SnapshotEntry
	for _, snap := range snaps {
		names := make([]string, 0, len(snap.Entries))
		for name := range snap.Entries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rows = append(rows, SnapshotEntry{
				SnapshotDate: snap.Date,
				FullName:     name,
				Score:        snap.Entries[name],
			})
		}
	}
	return rows
}

// WriteSnapshotsParquet writes a slice of SnapshotEntry structs to a Parquet file.
func WriteSnapshotsParquet(data []SnapshotEntry, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SnapshotEntry struct tags
	writer := parquet.NewGenericWriter[SnapshotEntry](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchSnapshots generates sample snapshot data for demonstration.
func MockFetchSnapshots() []schema.Snapshot {
	return []schema.Snapshot{
		{
			Date: "2026-08-13",
			Entries: map[string]float64{
				"acme/rustkit": 6.0,
				"ghost/town":   0.0,
			},
		},
		{
			Date: "2026-08-20",
			Entries: map[string]float64{
				"acme/rustkit": 7.5,
				"acme/rising":  8.2,
			},
		},
	}
}
