package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitsignals/gitsignals/schema"
)

// Default values for configuration.
const (
	DefaultThreshold   = schema.DefaultThreshold
	DefaultTrendWindow = 3
	MaxTrendWindow     = 52
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1

	DefaultMinActiveCommits = 5
	DefaultTeamSweetSpot    = 5
)

// Default ecosystem-fit vocabularies. Both are matched case-insensitively.
var (
	DefaultLanguages = []string{"python", "typescript", "rust"}
	DefaultKeywords  = []string{"devops", "cli", "sdk", "api", "developer-tools"}
)

// Config holds the runtime configuration for a scoring run.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile string
	RunDate   string // YYYY-MM-DD, snapshot identity for the run

	Threshold   float64
	TrendWindow int
	ResultLimit int
	Precision   int

	Output     schema.OutputMode
	OutputFile string
	ReportDir  string
	Width      int // Terminal width override (0 = auto-detect)

	// Ecosystem-fit vocabularies, lowercased for membership checks.
	Languages map[string]struct{}
	Keywords  map[string]struct{}

	MinActiveCommits int
	TeamSweetSpot    int

	HistoryBackend   schema.HistoryBackend
	HistoryPath      string
	HistoryDBConnect string // Please use env var as this is plaintext

	DryRun    bool // Score without recording a snapshot
	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Date             string  `mapstructure:"date"`
	Threshold        float64 `mapstructure:"threshold"`
	TrendWindow      int     `mapstructure:"trend-window"`
	Limit            int     `mapstructure:"limit"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Width            int     `mapstructure:"width"`
	Languages        string  `mapstructure:"languages"`
	Keywords         string  `mapstructure:"keywords"`
	MinActiveCommits int     `mapstructure:"min-active-commits"`
	TeamSweetSpot    int     `mapstructure:"team-sweet-spot"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryPath      string  `mapstructure:"history-path"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	Emoji            string  `mapstructure:"emoji"`
	Color            string  `mapstructure:"color"`

	// --- Fields from scoreCmd.Flags() ---
	DryRun bool `mapstructure:"dry-run"`

	// --- Fields from reportCmd.Flags() ---
	ReportDir string `mapstructure:"report-dir"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Languages != nil {
		clone.Languages = make(map[string]struct{}, len(c.Languages))
		for k := range c.Languages {
			clone.Languages[k] = struct{}{}
		}
	}
	if c.Keywords != nil {
		clone.Keywords = make(map[string]struct{}, len(c.Keywords))
		for k := range c.Keywords {
			clone.Keywords[k] = struct{}{}
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRunDate(cfg, input); err != nil {
		return err
	}
	if err := processVocabularies(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.HistoryBackend, connStr string) error {
	switch backend {
	case schema.HistorySQLite, schema.HistoryFS, schema.HistoryNone:
		return nil
	case schema.HistoryMySQL:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.HistoryPostgreSQL:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-date related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = input.InputFileStr
	cfg.OutputFile = input.OutputFile
	cfg.ReportDir = input.ReportDir
	cfg.Width = input.Width
	cfg.DryRun = input.DryRun

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Threshold Validation ---
	if input.Threshold < 0 || input.Threshold > schema.MaxScore {
		return fmt.Errorf("threshold must be between 0 and %.1f (received %.1f)", schema.MaxScore, input.Threshold)
	}
	cfg.Threshold = input.Threshold

	// --- 2. TrendWindow and ResultLimit Validation ---
	if input.TrendWindow < 1 || input.TrendWindow > MaxTrendWindow {
		return fmt.Errorf("trend-window must be between 1 and %d (received %d)", MaxTrendWindow, input.TrendWindow)
	}
	cfg.TrendWindow = input.TrendWindow

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, markdown", cfg.Output)
	}

	// --- 4. Team Signal Validation ---
	if input.MinActiveCommits < 1 {
		return fmt.Errorf("min-active-commits must be at least 1 (received %d)", input.MinActiveCommits)
	}
	cfg.MinActiveCommits = input.MinActiveCommits

	if input.TeamSweetSpot < 2 {
		return fmt.Errorf("team-sweet-spot must be at least 2 (received %d)", input.TeamSweetSpot)
	}
	cfg.TeamSweetSpot = input.TeamSweetSpot

	return nil
}

// processRunDate validates the snapshot date, defaulting to today in UTC.
func processRunDate(cfg *Config, input *ConfigRawInput) error {
	if input.Date == "" {
		cfg.RunDate = time.Now().UTC().Format(schema.DateLayout)
		return nil
	}

	t, err := time.Parse(schema.DateLayout, input.Date)
	if err != nil {
		return fmt.Errorf("invalid date '%s'. Expected YYYY-MM-DD: %w", input.Date, err)
	}
	cfg.RunDate = t.Format(schema.DateLayout)
	return nil
}

// processVocabularies builds the ecosystem-fit language and keyword sets.
func processVocabularies(cfg *Config, input *ConfigRawInput) error {
	languages := DefaultLanguages
	if input.Languages != "" {
		languages = SplitCSVList(input.Languages)
	}
	if len(languages) == 0 {
		return fmt.Errorf("languages list cannot be empty")
	}
	cfg.Languages = make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		cfg.Languages[lang] = struct{}{}
	}

	keywords := DefaultKeywords
	if input.Keywords != "" {
		keywords = SplitCSVList(input.Keywords)
	}
	if len(keywords) == 0 {
		return fmt.Errorf("keywords list cannot be empty")
	}
	cfg.Keywords = make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		cfg.Keywords[kw] = struct{}{}
	}

	return nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.HistoryBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be fs, sqlite, mysql, postgresql, none", input.HistoryBackend)
	}

	cfg.HistoryPath = input.HistoryPath
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}
