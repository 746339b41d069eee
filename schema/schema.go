// Package schema has configs, models and shared helpers for all parts of gitsignals.
package schema

// ContributorActivity is one (contributor, commit count) pair observed
// within the team-traction lookback window.
type ContributorActivity struct {
	ID      string `json:"id"`
	Commits int    `json:"commits"`
}

// RawRepoMetrics represents the activity metrics collected for a single
// GitHub repository. It is produced by the external collector layer and
// consumed read-only by the scoring core for the duration of one run.
type RawRepoMetrics struct {
	FullName    string   `json:"full_name"`             // Unique "owner/repo" identity
	Description string   `json:"description,omitempty"` // Repository description, may be absent
	Language    string   `json:"language,omitempty"`    // Primary language, may be absent
	Topics      []string `json:"topics,omitempty"`      // Repository topics/tags

	Stars       int `json:"stars"`            // Total star count
	Forks       int `json:"forks"`            // Total fork count
	StarsGained int `json:"stars_gained_14d"` // Stars gained in the trailing 14-day window, may be negative

	Commits        int `json:"commits_14d"`         // Commits in the trailing 14-day window
	FeatureCommits int `json:"feature_commits_14d"` // Feature-like commits within the same window

	// CommitMessages optionally carries the raw messages for the window.
	// When present and FeatureCommits is zero, the collector derives the
	// feature commit count with the configured predicate.
	CommitMessages []string `json:"commit_messages,omitempty"`

	Contributors []ContributorActivity `json:"contributors_30d,omitempty"` // Per-contributor commits in the trailing 30-day window
}
