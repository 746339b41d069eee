package core

import (
	"errors"
	"fmt"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// Tracker maintains and queries the bounded per-repository score history.
type Tracker struct {
	store  contract.HistoryStore
	window int
}

// NewTracker creates a tracker over a history store with a trend window.
func NewTracker(store contract.HistoryStore, window int) *Tracker {
	if window < 1 {
		window = contract.DefaultTrendWindow
	}
	return &Tracker{store: store, window: window}
}

// Record persists one dated snapshot of all scores in the run. Recording the
// same date twice overwrites the earlier snapshot, so a failed day's job can
// be re-run without creating phantom history entries.
func (t *Tracker) Record(date string, repos []schema.ScoredRepo) error {
	entries := make(map[string]float64, len(repos))
	for _, r := range repos {
		entries[r.FullName] = r.Score
	}
	snap := schema.Snapshot{Date: date, Entries: entries}
	if err := t.store.WriteSnapshot(snap); err != nil {
		return fmt.Errorf("record snapshot for %s: %w", date, err)
	}
	return nil
}

// GetTrend returns up to the window's worth of most recent scores for a
// repository at or before the given date, in chronological order. Snapshots
// where the repository is absent are skipped rather than padded with zeros.
func (t *Tracker) GetTrend(fullName, upTo string) ([]float64, error) {
	dates, err := t.store.ListDates()
	if err != nil {
		return nil, err
	}

	var reversed []float64
	for i := len(dates) - 1; i >= 0 && len(reversed) < t.window; i-- {
		if dates[i] > upTo {
			continue
		}
		snap, err := t.store.ReadSnapshot(dates[i])
		if err != nil {
			if errors.Is(err, contract.ErrSnapshotNotFound) {
				continue
			}
			return nil, err
		}
		if score, ok := snap.Entries[fullName]; ok {
			reversed = append(reversed, score)
		}
	}

	trend := make([]float64, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		trend = append(trend, reversed[i])
	}
	return trend, nil
}

// GetTrendPoints is GetTrend with the snapshot dates attached, for renderers
// that show when each score was recorded.
func (t *Tracker) GetTrendPoints(fullName, upTo string) ([]schema.TrendPoint, error) {
	dates, err := t.store.ListDates()
	if err != nil {
		return nil, err
	}

	var reversed []schema.TrendPoint
	for i := len(dates) - 1; i >= 0 && len(reversed) < t.window; i-- {
		if dates[i] > upTo {
			continue
		}
		snap, err := t.store.ReadSnapshot(dates[i])
		if err != nil {
			if errors.Is(err, contract.ErrSnapshotNotFound) {
				continue
			}
			return nil, err
		}
		if score, ok := snap.Entries[fullName]; ok {
			reversed = append(reversed, schema.TrendPoint{Date: dates[i], Score: score})
		}
	}

	points := make([]schema.TrendPoint, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		points = append(points, reversed[i])
	}
	return points, nil
}

// PreviousSnapshot returns the single most recent snapshot strictly before
// the given date. The boolean is false when no earlier snapshot exists.
func (t *Tracker) PreviousSnapshot(before string) (schema.Snapshot, bool, error) {
	dates, err := t.store.ListDates()
	if err != nil {
		return schema.Snapshot{}, false, err
	}
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i] >= before {
			continue
		}
		snap, err := t.store.ReadSnapshot(dates[i])
		if err != nil {
			return schema.Snapshot{}, false, err
		}
		return snap, true, nil
	}
	return schema.Snapshot{}, false, nil
}

// GetPreviousScore returns the repository's score from the immediately
// preceding snapshot, or nil when no earlier snapshot exists or the
// repository is absent from it.
func (t *Tracker) GetPreviousScore(fullName, before string) (*float64, error) {
	snap, ok, err := t.PreviousSnapshot(before)
	if err != nil || !ok {
		return nil, err
	}
	if score, found := snap.Entries[fullName]; found {
		return &score, nil
	}
	return nil, nil
}
