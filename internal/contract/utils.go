package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gitsignals/gitsignals/schema"
)

// Color variables for console output.
var (
	ExceptionalColor = color.New(color.FgGreen, color.Bold) // exceptionalColor marks the top tier.
	PromisingColor   = color.New(color.FgGreen)             // promisingColor marks qualified repositories.
	EmergingColor    = color.New(color.FgYellow)            // emergingColor marks borderline momentum.
	QuietColor       = color.New(color.FgCyan)              // quietColor represents low-priority signal.
)

// GetPlainLabel returns a plain text label for the momentum tier based on
// the composite score. This is the core logic used for CSV, JSON, and
// table printing.
func GetPlainLabel(score float64) string {
	return schema.ScoreLabel(score)
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case "exceptional":
		return ExceptionalColor.Sprint(text)
	case "promising":
		return PromisingColor.Sprint(text)
	case "emerging":
		return EmergingColor.Sprint(text)
	default: // "quiet"
		return QuietColor.Sprint(text)
	}
}

// FormatChange renders a score change as a signed delta, or "new" when the
// repository has no prior snapshot.
func FormatChange(change *float64) string {
	if change == nil {
		return "new"
	}
	return fmt.Sprintf("%+.1f", *change)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDirPath returns the default directory for flat-file snapshots.
func GetHistoryDirPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitsignals_history"
	}
	return filepath.Join(homeDir, ".gitsignals_history")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitsignals_history.db"
	}
	return filepath.Join(homeDir, ".gitsignals_history.db")
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the suffix.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// SplitCSVList splits a comma-separated flag value into trimmed, lowercased,
// non-empty parts.
func SplitCSVList(s string) []string {
	var parts []string
	for p := range strings.SplitSeq(s, ",") {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
