package contract

import (
	"testing"

	"github.com/gitsignals/gitsignals/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputFileStr:     "repos.json",
		Threshold:        7.0,
		TrendWindow:      3,
		Limit:            25,
		Precision:        1,
		Output:           "text",
		MinActiveCommits: 5,
		TeamSweetSpot:    5,
		HistoryBackend:   "fs",
		Emoji:            "yes",
		Color:            "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(*ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "yaml" },
			expectError: true,
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "limit exceeds maximum",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "threshold above scale",
			mutate:      func(in *ConfigRawInput) { in.Threshold = 10.1 },
			expectError: true,
		},
		{
			name:        "negative threshold",
			mutate:      func(in *ConfigRawInput) { in.Threshold = -1 },
			expectError: true,
		},
		{
			name:        "trend window too small",
			mutate:      func(in *ConfigRawInput) { in.TrendWindow = 0 },
			expectError: true,
		},
		{
			name:        "invalid precision",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "invalid date format",
			mutate:      func(in *ConfigRawInput) { in.Date = "08/27/2026" },
			expectError: true,
		},
		{
			name:        "valid explicit date",
			mutate:      func(in *ConfigRawInput) { in.Date = "2026-08-27" },
			expectError: false,
		},
		{
			name:        "invalid history backend",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "redis" },
			expectError: true,
		},
		{
			name: "mysql backend requires connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "mysql"
				in.HistoryDBConnect = ""
			},
			expectError: true,
		},
		{
			name: "mysql backend with valid connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "mysql"
				in.HistoryDBConnect = "user:pass@tcp(localhost:3306)/signals"
			},
			expectError: false,
		},
		{
			name: "postgresql backend with malformed connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "postgresql"
				in.HistoryDBConnect = "localhost:5432"
			},
			expectError: true,
		},
		{
			name:        "invalid emoji value",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: true,
		},
		{
			name:        "min active commits below one",
			mutate:      func(in *ConfigRawInput) { in.MinActiveCommits = 0 },
			expectError: true,
		},
		{
			name:        "team sweet spot below two",
			mutate:      func(in *ConfigRawInput) { in.TeamSweetSpot = 1 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	// RunDate defaults to today and must parse back.
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, cfg.RunDate)

	// Default vocabularies are installed when flags are empty.
	assert.Contains(t, cfg.Languages, "python")
	assert.Contains(t, cfg.Languages, "rust")
	assert.Contains(t, cfg.Keywords, "cli")
	assert.Contains(t, cfg.Keywords, "developer-tools")
}

func TestProcessAndValidateCustomVocabularies(t *testing.T) {
	input := validRawInput()
	input.Languages = "Go, Zig"
	input.Keywords = "observability"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, map[string]struct{}{"go": {}, "zig": {}}, cfg.Languages)
	assert.Equal(t, map[string]struct{}{"observability": {}}, cfg.Keywords)
	assert.NotContains(t, cfg.Languages, "python")
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	clone := cfg.Clone()
	assert.Equal(t, cfg, clone)

	clone.Languages["go"] = struct{}{}
	assert.NotContains(t, cfg.Languages, "go")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.HistorySQLite, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.HistoryFS, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.HistoryMySQL, "user:pass@localhost/db"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.HistoryPostgreSQL, "host=localhost dbname=signals"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.HistoryPostgreSQL, "host=localhost"))
}
