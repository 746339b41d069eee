package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repos.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isFeature(msg string) bool {
	return strings.HasPrefix(strings.ToLower(msg), "feat")
}

func TestFileSourceCollect(t *testing.T) {
	path := writeInput(t, `[
		{
			"full_name": "acme/rustkit",
			"stars": 420,
			"forks": 12,
			"stars_gained_14d": 35,
			"commits_14d": 18,
			"feature_commits_14d": 4,
			"language": "Rust",
			"topics": ["cli", "terminal"],
			"contributors_30d": [{"id": "alice", "commits": 9}, {"id": "bob", "commits": 6}]
		},
		{
			"full_name": "ghost/town"
		}
	]`)

	raws, err := NewFileSource(path, isFeature).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.Equal(t, "acme/rustkit", raws[0].FullName)
	assert.Equal(t, 420, raws[0].Stars)
	assert.Equal(t, 35, raws[0].StarsGained)
	assert.Equal(t, 18, raws[0].Commits)
	assert.Equal(t, 4, raws[0].FeatureCommits)
	assert.Equal(t, []string{"cli", "terminal"}, raws[0].Topics)
	require.Len(t, raws[0].Contributors, 2)
	assert.Equal(t, "alice", raws[0].Contributors[0].ID)

	// Absent fields decode to zero values, not errors.
	assert.Zero(t, raws[1].Commits)
	assert.Empty(t, raws[1].Language)
}

func TestFileSourceDerivesFeatureCommits(t *testing.T) {
	path := writeInput(t, `[
		{
			"full_name": "acme/derive",
			"commits_14d": 3,
			"commit_messages": ["feat: add parser", "fix: typo", "feat: add emitter"]
		}
	]`)

	raws, err := NewFileSource(path, isFeature).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, 2, raws[0].FeatureCommits)
}

func TestFileSourceClampsStarLosses(t *testing.T) {
	path := writeInput(t, `[
		{
			"full_name": "acme/fading",
			"stars": 50,
			"stars_gained_14d": -12
		}
	]`)

	raws, err := NewFileSource(path, isFeature).Collect(context.Background())
	require.NoError(t, err)
	assert.Zero(t, raws[0].StarsGained)
}

func TestFileSourcePrecomputedCountWins(t *testing.T) {
	path := writeInput(t, `[
		{
			"full_name": "acme/precomputed",
			"commits_14d": 5,
			"feature_commits_14d": 1,
			"commit_messages": ["feat: a", "feat: b", "feat: c"]
		}
	]`)

	raws, err := NewFileSource(path, isFeature).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, raws[0].FeatureCommits)
}

func TestFileSourceErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFileSource("", isFeature).Collect(ctx)
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json"), isFeature).Collect(ctx)
	assert.Error(t, err)

	path := writeInput(t, `{"not": "an array"`)
	_, err = NewFileSource(path, isFeature).Collect(ctx)
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

func TestFileSourceHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeInput(t, `[]`)
	_, err := NewFileSource(path, isFeature).Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
