// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/gitsignals/gitsignals/schema"
)

// Sentinel errors shared across packages.
var (
	// ErrInvalidInput marks repository metrics that fail structural validation.
	ErrInvalidInput = errors.New("invalid repository metrics")

	// ErrSnapshotNotFound marks a read for a date with no recorded snapshot.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// MetricsSource defines where raw repository metrics come from.
// This allows the scoring pipeline to be tested without real input files.
type MetricsSource interface {
	// Collect returns the raw metrics for all repositories in one batch.
	Collect(ctx context.Context) ([]schema.RawRepoMetrics, error)
}

// HistoryManager defines the interface for managing history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for dated snapshot storage.
// This allows mocking the store for testing.
type HistoryStore interface {
	// WriteSnapshot persists one dated snapshot, replacing any snapshot
	// already recorded for the same date.
	WriteSnapshot(snap schema.Snapshot) error

	// ReadSnapshot returns the snapshot for a date, or ErrSnapshotNotFound.
	ReadSnapshot(date string) (schema.Snapshot, error)

	// ListDates returns all recorded snapshot dates in chronological order.
	ListDates() ([]string, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
