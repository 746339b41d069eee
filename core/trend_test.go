package core

import (
	"testing"

	"github.com/gitsignals/gitsignals/internal/history"
	"github.com/gitsignals/gitsignals/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, window int) *Tracker {
	t.Helper()
	store, err := history.NewFSStore(t.TempDir())
	require.NoError(t, err)
	return NewTracker(store, window)
}

func record(t *testing.T, tracker *Tracker, date string, scores map[string]float64) {
	t.Helper()
	var repos []schema.ScoredRepo
	for name, score := range scores {
		repos = append(repos, schema.ScoredRepo{FullName: name, Score: score})
	}
	require.NoError(t, tracker.Record(date, repos))
}

func TestTrackerTrendLength(t *testing.T) {
	tracker := newTestTracker(t, 3)

	// First appearance yields a trend of length 1.
	record(t, tracker, "2026-08-06", map[string]float64{"a/a": 5.0})
	trend, err := tracker.GetTrend("a/a", "2026-08-06")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0}, trend)

	// Three consecutive runs fill the window.
	record(t, tracker, "2026-08-13", map[string]float64{"a/a": 6.0})
	record(t, tracker, "2026-08-20", map[string]float64{"a/a": 7.0})
	trend, err = tracker.GetTrend("a/a", "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0, 6.0, 7.0}, trend)

	// A fourth run drops the oldest score.
	record(t, tracker, "2026-08-27", map[string]float64{"a/a": 8.0})
	trend, err = tracker.GetTrend("a/a", "2026-08-27")
	require.NoError(t, err)
	assert.Equal(t, []float64{6.0, 7.0, 8.0}, trend)
}

func TestTrackerTrendSkipsAbsentPeriods(t *testing.T) {
	tracker := newTestTracker(t, 3)

	record(t, tracker, "2026-08-06", map[string]float64{"a/a": 5.0, "b/b": 4.0})
	record(t, tracker, "2026-08-13", map[string]float64{"b/b": 4.5})
	record(t, tracker, "2026-08-20", map[string]float64{"a/a": 6.0, "b/b": 5.0})

	// No zero padding for the week a/a was absent.
	trend, err := tracker.GetTrend("a/a", "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0, 6.0}, trend)

	// Unknown repositories have an empty trend, not an error.
	trend, err = tracker.GetTrend("c/c", "2026-08-20")
	require.NoError(t, err)
	assert.Empty(t, trend)
}

func TestTrackerTrendIgnoresFutureSnapshots(t *testing.T) {
	tracker := newTestTracker(t, 3)

	record(t, tracker, "2026-08-06", map[string]float64{"a/a": 5.0})
	record(t, tracker, "2026-08-13", map[string]float64{"a/a": 6.0})

	trend, err := tracker.GetTrend("a/a", "2026-08-06")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0}, trend)
}

func TestTrackerGetTrendPoints(t *testing.T) {
	tracker := newTestTracker(t, 2)

	record(t, tracker, "2026-08-06", map[string]float64{"a/a": 5.0})
	record(t, tracker, "2026-08-13", map[string]float64{"a/a": 6.0})
	record(t, tracker, "2026-08-20", map[string]float64{"a/a": 7.0})

	points, err := tracker.GetTrendPoints("a/a", "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, []schema.TrendPoint{
		{Date: "2026-08-13", Score: 6.0},
		{Date: "2026-08-20", Score: 7.0},
	}, points)
}

func TestTrackerRecordIdempotent(t *testing.T) {
	tracker := newTestTracker(t, 3)

	record(t, tracker, "2026-08-20", map[string]float64{"a/a": 6.0})
	record(t, tracker, "2026-08-20", map[string]float64{"a/a": 6.0})

	trend, err := tracker.GetTrend("a/a", "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, []float64{6.0}, trend)
}

func TestTrackerPreviousScore(t *testing.T) {
	tracker := newTestTracker(t, 3)

	// No history at all.
	prev, err := tracker.GetPreviousScore("a/a", "2026-08-20")
	require.NoError(t, err)
	assert.Nil(t, prev)

	record(t, tracker, "2026-08-06", map[string]float64{"a/a": 5.0})
	record(t, tracker, "2026-08-13", map[string]float64{"b/b": 4.0})

	// Only the immediately preceding snapshot counts, even when an older
	// one contains the repository.
	prev, err = tracker.GetPreviousScore("a/a", "2026-08-20")
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = tracker.GetPreviousScore("b/b", "2026-08-20")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, 4.0, *prev)

	// The current run's own date is excluded.
	prev, err = tracker.GetPreviousScore("a/a", "2026-08-06")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestScoreBatchAbortsOnInvalidInput(t *testing.T) {
	raws := []schema.RawRepoMetrics{
		{FullName: "good/repo", Commits: 12},
		{FullName: "", Commits: 3},
	}

	scored, err := ScoreBatch(raws, DefaultRules(), 7.0, schema.Snapshot{})
	assert.Error(t, err)
	assert.Nil(t, scored)
}

func TestScoreBatchUsesPreviousSnapshot(t *testing.T) {
	raws := []schema.RawRepoMetrics{
		{FullName: "seen/before", Commits: 20, FeatureCommits: 4},
		{FullName: "brand/new", Commits: 20, FeatureCommits: 4},
	}
	prev := schema.Snapshot{
		Date:    "2026-08-13",
		Entries: map[string]float64{"seen/before": 1.0},
	}

	scored, err := ScoreBatch(raws, DefaultRules(), 7.0, prev)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	require.NotNil(t, scored[0].ScoreChange)
	assert.Equal(t, RoundScore(scored[0].Score-1.0), *scored[0].ScoreChange)
	assert.Nil(t, scored[1].ScoreChange)
}
