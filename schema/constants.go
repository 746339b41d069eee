package schema

// SignalKey identifies one of the four momentum signals.
type SignalKey string

// Signal key constants, in canonical order.
const (
	SignalCommitSurge  SignalKey = "commit_surge"
	SignalStarVelocity SignalKey = "star_velocity"
	SignalTeamTraction SignalKey = "team_traction"
	SignalEcosystemFit SignalKey = "ecosystem_fit"
)

// SignalOrder is the canonical presentation and tie-break order.
var SignalOrder = []SignalKey{
	SignalCommitSurge,
	SignalStarVelocity,
	SignalTeamTraction,
	SignalEcosystemFit,
}

// SignalMax maps each signal to its inclusive upper bound.
var SignalMax = map[SignalKey]float64{
	SignalCommitSurge:  3.0,
	SignalStarVelocity: 3.0,
	SignalTeamTraction: 2.0,
	SignalEcosystemFit: 2.0,
}

// MaxScore is the highest composite score a repository can reach.
const MaxScore = 10.0

// DefaultThreshold is the inclusive qualification cutoff.
const DefaultThreshold = 7.0

// OutputMode is the output mode for rendering scored results.
type OutputMode string

// Output mode constants.
const (
	OutputText     OutputMode = "text"
	OutputCSV      OutputMode = "csv"
	OutputJSON     OutputMode = "json"
	OutputMarkdown OutputMode = "markdown"
)

// ValidOutputModes has all supported output modes for easy membership checks.
var ValidOutputModes = map[OutputMode]bool{
	OutputText:     true,
	OutputCSV:      true,
	OutputJSON:     true,
	OutputMarkdown: true,
}

// HistoryBackend selects where dated score snapshots live.
type HistoryBackend string

// History backend constants.
const (
	HistoryFS         HistoryBackend = "fs"
	HistorySQLite     HistoryBackend = "sqlite"
	HistoryMySQL      HistoryBackend = "mysql"
	HistoryPostgreSQL HistoryBackend = "postgresql"
	HistoryNone       HistoryBackend = "none"
)

// ValidHistoryBackends has all supported history backends for easy membership checks.
var ValidHistoryBackends = map[HistoryBackend]bool{
	HistoryFS:         true,
	HistorySQLite:     true,
	HistoryMySQL:      true,
	HistoryPostgreSQL: true,
	HistoryNone:       true,
}

// SQLHistoryBackends has the backends served by the SQL store.
var SQLHistoryBackends = map[HistoryBackend]bool{
	HistorySQLite:     true,
	HistoryMySQL:      true,
	HistoryPostgreSQL: true,
}

// DateLayout is the snapshot date format, lexicographic order matches
// chronological order.
const DateLayout = "2006-01-02"
