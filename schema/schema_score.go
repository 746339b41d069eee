package schema

// SignalVector holds the four component signals extracted for a repository.
// Each value is clamped to its SignalMax bound before it lands here.
type SignalVector struct {
	CommitSurge  float64 `json:"commit_surge"`
	StarVelocity float64 `json:"star_velocity"`
	TeamTraction float64 `json:"team_traction"`
	EcosystemFit float64 `json:"ecosystem_fit"`
}

// Sum returns the unrounded composite of all four signals.
func (v SignalVector) Sum() float64 {
	return v.CommitSurge + v.StarVelocity + v.TeamTraction + v.EcosystemFit
}

// Get returns the value for a signal key, zero for unknown keys.
func (v SignalVector) Get(key SignalKey) float64 {
	switch key {
	case SignalCommitSurge:
		return v.CommitSurge
	case SignalStarVelocity:
		return v.StarVelocity
	case SignalTeamTraction:
		return v.TeamTraction
	case SignalEcosystemFit:
		return v.EcosystemFit
	}
	return 0
}

// ScoredRepo is the scored result for a single repository in one run.
type ScoredRepo struct {
	FullName string       `json:"full_name"`
	Score    float64      `json:"score"`
	Signals  SignalVector `json:"signals"`

	// Qualifies is true when Score meets the inclusive threshold.
	Qualifies bool `json:"qualifies"`

	// ScoreChange is Score minus the repository's score in the most recent
	// prior snapshot, nil when no prior snapshot contains the repository.
	ScoreChange *float64 `json:"score_change"`

	// WhyMatters is a short human-readable summary of the strongest signals.
	WhyMatters string `json:"why_matters"`

	// Trend has up to the last N recorded scores in chronological order,
	// ending with the current run. Periods with no record are skipped.
	Trend []float64 `json:"trend,omitempty"`

	Language string `json:"language,omitempty"`
	Stars    int    `json:"stars"`
}
