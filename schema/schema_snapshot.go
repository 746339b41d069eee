package schema

// Snapshot is one dated record of repository scores.
type Snapshot struct {
	Date    string             `json:"date"`
	Entries map[string]float64 `json:"entries"`
}

// TrendPoint is one (date, score) observation for a repository.
type TrendPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// HistoryStatus summarizes the state of a history store.
type HistoryStatus struct {
	Backend       HistoryBackend `json:"backend"`
	Location      string         `json:"location"`
	SnapshotCount int            `json:"snapshot_count"`
	EntryCount    int            `json:"entry_count"`
	OldestDate    string         `json:"oldest_date,omitempty"`
	NewestDate    string         `json:"newest_date,omitempty"`
}
