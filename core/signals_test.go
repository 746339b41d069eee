package core

import (
	"testing"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
	"github.com/stretchr/testify/assert"
)

// TestCommitSurge tests the commit surge signal boundaries.
func TestCommitSurge(t *testing.T) {
	tests := []struct {
		name           string
		commits        int
		featureCommits int
		expected       float64
		delta          float64
	}{
		{
			name:     "zero commits",
			commits:  0,
			expected: 0.0,
			delta:    0.001,
		},
		{
			name:     "just below floor",
			commits:  9,
			expected: 0.0,
			delta:    0.001,
		},
		{
			name:     "exactly at floor",
			commits:  10,
			expected: 1.0,
			delta:    0.001,
		},
		{
			name:           "floor with feature bonus",
			commits:        10,
			featureCommits: 3,
			expected:       2.0,
			delta:          0.001,
		},
		{
			name:           "floor with excess and bonus",
			commits:        20,
			featureCommits: 4,
			expected:       2.5,
			delta:          0.001,
		},
		{
			name:           "saturates at maximum",
			commits:        500,
			featureCommits: 100,
			expected:       3.0,
			delta:          0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, commitSurge(tt.commits, tt.featureCommits), tt.delta)
		})
	}
}

// TestStarVelocity tests the star velocity curve boundaries.
func TestStarVelocity(t *testing.T) {
	tests := []struct {
		name     string
		gained   int
		expected float64
		delta    float64
	}{
		{
			name:     "stars lost reads as zero",
			gained:   -50,
			expected: 0.0,
			delta:    0.001,
		},
		{
			name:     "just below floor",
			gained:   9,
			expected: 0.0,
			delta:    0.001,
		},
		{
			name:     "exactly at floor",
			gained:   10,
			expected: 1.0,
			delta:    0.001,
		},
		{
			name:     "exactly at saturation",
			gained:   300,
			expected: 3.0,
			delta:    0.001,
		},
		{
			name:     "beyond saturation stays capped",
			gained:   100000,
			expected: 3.0,
			delta:    0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, starVelocity(tt.gained), tt.delta)
		})
	}
}

// TestStarVelocityMonotonic checks the curve never decreases as gains grow.
func TestStarVelocityMonotonic(t *testing.T) {
	prev := 0.0
	for g := 0; g <= 500; g++ {
		v := starVelocity(g)
		assert.GreaterOrEqual(t, v, prev, "velocity dipped at %d stars", g)
		prev = v
	}
}

// TestCommitSurgeMonotonic checks more commits never lowers the surge.
func TestCommitSurgeMonotonic(t *testing.T) {
	for _, feature := range []int{0, 3} {
		prev := 0.0
		for c := 0; c <= 100; c++ {
			v := commitSurge(c, feature)
			assert.GreaterOrEqual(t, v, prev, "surge dipped at %d commits (%d feature)", c, feature)
			prev = v
		}
	}
}

// TestTeamTraction tests the active-team signal boundaries.
func TestTeamTraction(t *testing.T) {
	team := func(commits ...int) []schema.ContributorActivity {
		var cs []schema.ContributorActivity
		for i, c := range commits {
			cs = append(cs, schema.ContributorActivity{ID: string(rune('a' + i)), Commits: c})
		}
		return cs
	}

	tests := []struct {
		name         string
		contributors []schema.ContributorActivity
		expected     float64
		delta        float64
	}{
		{
			name:         "no contributors",
			contributors: nil,
			expected:     0.0,
			delta:        0.001,
		},
		{
			name:         "solo active contributor",
			contributors: team(20),
			expected:     0.0,
			delta:        0.001,
		},
		{
			name:         "busy drive-by contributors do not count",
			contributors: team(4, 4, 4, 4),
			expected:     0.0,
			delta:        0.001,
		},
		{
			name:         "two active contributors",
			contributors: team(5, 8),
			expected:     1.0,
			delta:        0.001,
		},
		{
			name:         "halfway to sweet spot",
			contributors: team(5, 8, 12, 1),
			expected:     1.333,
			delta:        0.001,
		},
		{
			name:         "at sweet spot",
			contributors: team(5, 5, 5, 5, 5),
			expected:     2.0,
			delta:        0.001,
		},
		{
			name:         "big team does not score higher",
			contributors: team(9, 9, 9, 9, 9, 9, 9, 9, 9, 9),
			expected:     2.0,
			delta:        0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := teamTraction(tt.contributors, contract.DefaultMinActiveCommits, contract.DefaultTeamSweetSpot)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

// TestEcosystemFit tests language and topic matching.
func TestEcosystemFit(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		language string
		topics   []string
		expected float64
	}{
		{
			name:     "no language no topics",
			expected: 0.0,
		},
		{
			name:     "language only",
			language: "Rust",
			expected: 1.0,
		},
		{
			name:     "language case insensitive",
			language: "PYTHON",
			expected: 1.0,
		},
		{
			name:     "unlisted language",
			language: "COBOL",
			expected: 0.0,
		},
		{
			name:     "topic only",
			topics:   []string{"gaming", "CLI"},
			expected: 1.0,
		},
		{
			name:     "language and topic",
			language: "typescript",
			topics:   []string{"sdk"},
			expected: 2.0,
		},
		{
			name:     "several matching topics still cap at one point",
			language: "rust",
			topics:   []string{"cli", "sdk", "devops"},
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ecosystemFit(tt.language, tt.topics, rules.Languages, rules.Keywords)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestExtractSignalsBounds checks every signal respects its declared bound.
func TestExtractSignalsBounds(t *testing.T) {
	raw := &schema.RawRepoMetrics{
		FullName:    "acme/turbo",
		Language:    "rust",
		Topics:      []string{"cli", "devops"},
		Stars:       90000,
		StarsGained: 50000,
		Commits:     5000,

		FeatureCommits: 2500,
		Contributors: []schema.ContributorActivity{
			{ID: "a", Commits: 900}, {ID: "b", Commits: 800}, {ID: "c", Commits: 700},
			{ID: "d", Commits: 600}, {ID: "e", Commits: 500}, {ID: "f", Commits: 400},
		},
	}

	signals := ExtractSignals(raw, DefaultRules())
	for _, key := range schema.SignalOrder {
		assert.GreaterOrEqual(t, signals.Get(key), 0.0, "signal %s below zero", key)
		assert.LessOrEqual(t, signals.Get(key), schema.SignalMax[key], "signal %s above bound", key)
	}
	assert.LessOrEqual(t, signals.Sum(), schema.MaxScore)
}

// TestExtractSignalsMissingData treats absent optional fields as zero signal.
func TestExtractSignalsMissingData(t *testing.T) {
	raw := &schema.RawRepoMetrics{FullName: "ghost/town"}
	signals := ExtractSignals(raw, DefaultRules())
	assert.Zero(t, signals.Sum())
}

func TestDefaultFeatureCommit(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"feat: add websocket transport", true},
		{"feat(parser): handle BOM", true},
		{"Add retry support", true},
		{"FEAT: shout case", true},
		{"fix: crash on empty input", false},
		{"docs: readme typo", false},
		{"address review comments", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultFeatureCommit(tt.message), "message %q", tt.message)
	}
}

func TestCountFeatureCommits(t *testing.T) {
	messages := []string{"feat: a", "fix: b", "add c support", "chore: d"}
	assert.Equal(t, 2, CountFeatureCommits(messages, nil))

	// Custom predicate wins over the default.
	all := func(string) bool { return true }
	assert.Equal(t, 4, CountFeatureCommits(messages, all))
}

func TestValidateMetrics(t *testing.T) {
	valid := schema.RawRepoMetrics{FullName: "acme/turbo", Stars: 10, Commits: 5, FeatureCommits: 2}
	assert.NoError(t, ValidateMetrics(&valid))

	tests := []struct {
		name   string
		mutate func(*schema.RawRepoMetrics)
	}{
		{"empty full name", func(r *schema.RawRepoMetrics) { r.FullName = "" }},
		{"missing owner separator", func(r *schema.RawRepoMetrics) { r.FullName = "turbo" }},
		{"negative stars", func(r *schema.RawRepoMetrics) { r.Stars = -1 }},
		{"negative forks", func(r *schema.RawRepoMetrics) { r.Forks = -1 }},
		{"negative commits", func(r *schema.RawRepoMetrics) { r.Commits = -1 }},
		{"negative feature commits", func(r *schema.RawRepoMetrics) { r.FeatureCommits = -1 }},
		{"feature commits exceed commits", func(r *schema.RawRepoMetrics) { r.FeatureCommits = r.Commits + 1 }},
		{
			"negative contributor commits",
			func(r *schema.RawRepoMetrics) {
				r.Contributors = []schema.ContributorActivity{{ID: "x", Commits: -3}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mutate(&raw)
			err := ValidateMetrics(&raw)
			assert.ErrorIs(t, err, contract.ErrInvalidInput)
		})
	}

	// Lost stars are legitimate input, not a contract violation.
	lost := valid
	lost.StarsGained = -40
	assert.NoError(t, ValidateMetrics(&lost))
}
