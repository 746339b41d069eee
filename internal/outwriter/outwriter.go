// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/gitsignals/gitsignals/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableRepoWidth calculates the maximum width for repository names in
// table output based on terminal width and table configuration.
func GetMaxTableRepoWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 30 // Rank + Score + Change + Label with borders/padding

	// Trend sparkline column
	baseWidth += cfg.TrendWindow + 5

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	// Calculate available space for the repository name
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 45 {
		// Maximum name width to keep room for the reason column
		return 45
	}
	return available
}

// getMaxTableReasonWidth calculates the width left over for the reason column
// after the fixed columns and the repository name column are accounted for.
func getMaxTableReasonWidth(cfg *contract.Config) int {
	repoWidth := GetMaxTableRepoWidth(cfg)

	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	available := termWidth - repoWidth - 55
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
