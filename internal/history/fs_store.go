package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// FSStoreImpl stores one JSON snapshot file per run date in a directory.
// This is the default backend: no server, human-inspectable files, and the
// lexicographic file order matches chronological order.
type FSStoreImpl struct {
	dir string
}

var _ contract.HistoryStore = &FSStoreImpl{} // Compile-time check

// NewFSStore initializes a flat-file snapshot store rooted at dir.
func NewFSStore(dir string) (*FSStoreImpl, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %q: %w. Ensure the parent is writable", dir, err)
	}
	return &FSStoreImpl{dir: dir}, nil
}

// snapshotPath returns the file path for a snapshot date.
func (fs *FSStoreImpl) snapshotPath(date string) string {
	return filepath.Join(fs.dir, date+".json")
}

// WriteSnapshot persists the snapshot via a temp file and rename, so readers
// never observe a half-written snapshot. Re-writing a date overwrites it.
func (fs *FSStoreImpl) WriteSnapshot(snap schema.Snapshot) error {
	if _, err := time.Parse(schema.DateLayout, snap.Date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", snap.Date, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %s: %w", snap.Date, err)
	}

	tmp, err := os.CreateTemp(fs.dir, snap.Date+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot for %s: %w", snap.Date, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot file for %s: %w", snap.Date, err)
	}

	if err := os.Rename(tmpPath, fs.snapshotPath(snap.Date)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize snapshot for %s: %w", snap.Date, err)
	}
	return nil
}

// ReadSnapshot loads the snapshot for a date.
func (fs *FSStoreImpl) ReadSnapshot(date string) (schema.Snapshot, error) {
	data, err := os.ReadFile(fs.snapshotPath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return schema.Snapshot{}, fmt.Errorf("%w: %s", contract.ErrSnapshotNotFound, date)
		}
		return schema.Snapshot{}, fmt.Errorf("failed to read snapshot for %s: %w", date, err)
	}

	var snap schema.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return schema.Snapshot{}, fmt.Errorf("failed to decode snapshot for %s: %w", date, err)
	}
	if snap.Entries == nil {
		snap.Entries = map[string]float64{}
	}
	return snap, nil
}

// ListDates returns all snapshot dates in chronological order.
func (fs *FSStoreImpl) ListDates() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		date, ok := strings.CutSuffix(name, ".json")
		if !ok {
			continue
		}
		if _, err := time.Parse(schema.DateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}

// GetStatus returns status information about the snapshot directory.
func (fs *FSStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:  schema.HistoryFS,
		Location: fs.dir,
	}

	dates, err := fs.ListDates()
	if err != nil {
		return status, err
	}
	status.SnapshotCount = len(dates)
	if len(dates) == 0 {
		return status, nil
	}
	status.OldestDate = dates[0]
	status.NewestDate = dates[len(dates)-1]

	for _, date := range dates {
		snap, err := fs.ReadSnapshot(date)
		if err != nil {
			return status, err
		}
		status.EntryCount += len(snap.Entries)
	}
	return status, nil
}

// Close is a no-op for the flat-file store.
func (fs *FSStoreImpl) Close() error { return nil }
