package history

import (
	"fmt"

	"github.com/gitsignals/gitsignals/schema"
)

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Snapshots: %d\n", status.SnapshotCount)
	if status.SnapshotCount == 0 {
		return
	}
	fmt.Printf("Scored Entries: %d\n", status.EntryCount)
	fmt.Printf("Oldest Snapshot: %s\n", status.OldestDate)
	fmt.Printf("Newest Snapshot: %s\n", status.NewestDate)
}
