package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// reportFilePerm is the mode for generated report files.
const reportFilePerm = 0o644

// apiReport is the JSON payload consumed by dashboards and other API clients.
type apiReport struct {
	Name          string          `json:"name"`
	Date          string          `json:"date"`
	DateGenerated string          `json:"date_generated"`
	Threshold     float64         `json:"threshold"`
	Repositories  []apiRepository `json:"repositories"`
}

// apiRepository is a scored repository with its rank and label attached.
type apiRepository struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	schema.ScoredRepo
}

// WriteWeeklyReport renders the weekly digest for the qualifying repositories.
// It writes a markdown report plus JSON API files under cfg.ReportDir:
// weekly_gems_<date>.md, weekly_gems_latest.md, <date>.json and latest.json.
func WriteWeeklyReport(repos []schema.ScoredRepo, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	qualified := qualifiedRepos(repos)

	// Markdown digest, dated copy first and then the latest alias
	datedMD := filepath.Join(cfg.ReportDir, fmt.Sprintf("weekly_gems_%s.md", cfg.RunDate))
	if err := writeReportFile(datedMD, func(w io.Writer) error {
		return writeMarkdownDigest(w, repos, cfg, fmtFloat)
	}); err != nil {
		return err
	}
	latestMD := filepath.Join(cfg.ReportDir, "weekly_gems_latest.md")
	if err := writeReportFile(latestMD, func(w io.Writer) error {
		return writeMarkdownDigest(w, repos, cfg, fmtFloat)
	}); err != nil {
		return err
	}

	// JSON API payload, dated copy plus latest.json
	payload := buildAPIReport(qualified, cfg)
	datedJSON := filepath.Join(cfg.ReportDir, fmt.Sprintf("%s.json", cfg.RunDate))
	if err := writeReportFile(datedJSON, func(w io.Writer) error {
		return writeJSON(w, payload)
	}); err != nil {
		return err
	}
	latestJSON := filepath.Join(cfg.ReportDir, "latest.json")
	if err := writeReportFile(latestJSON, func(w io.Writer) error {
		return writeJSON(w, payload)
	}); err != nil {
		return err
	}

	if cfg.UseEmojis {
		fmt.Printf("📝 Weekly report written to %s\n", datedMD)
	} else {
		fmt.Printf("Weekly report written to %s\n", datedMD)
	}
	fmt.Printf("API files written to %s and %s\n", datedJSON, latestJSON)
	fmt.Printf("Repositories above threshold %s: %d of %d\n", fmtFloat(cfg.Threshold), len(qualified), len(repos))
	return nil
}

// writeReportFile creates the target file and delegates to the writer function.
func writeReportFile(path string, writer func(io.Writer) error) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, reportFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := writer(file); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return nil
}

// buildAPIReport assembles the JSON payload for the given run.
func buildAPIReport(qualified []schema.ScoredRepo, cfg *contract.Config) apiReport {
	payload := apiReport{
		Name:          fmt.Sprintf("Weekly Dev Tools Gems - %s", cfg.RunDate),
		Date:          cfg.RunDate,
		DateGenerated: time.Now().UTC().Format(time.RFC3339),
		Threshold:     cfg.Threshold,
		Repositories:  make([]apiRepository, len(qualified)),
	}
	for i, r := range qualified {
		payload.Repositories[i] = apiRepository{
			Rank:       i + 1,
			Label:      contract.GetPlainLabel(r.Score),
			ScoredRepo: r,
		}
	}
	return payload
}

// writeMarkdownDigest renders the weekly digest in markdown format. Only
// repositories above the configured threshold make the list.
func writeMarkdownDigest(w io.Writer, repos []schema.ScoredRepo, cfg *contract.Config, fmtFloat func(float64) string) error {
	qualified := qualifiedRepos(repos)

	if _, err := fmt.Fprintf(w, "# Weekly Dev Tools Gems - %s\n\n", cfg.RunDate); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "*Quality threshold: %s+/%s points*\n\n", fmtFloat(cfg.Threshold), fmtFloat(schema.MaxScore)); err != nil {
		return err
	}

	if len(qualified) == 0 {
		_, err := fmt.Fprintf(w, "**No discoveries met the quality threshold this week.**\n\nStrict quality criteria ensure only repositories with genuine momentum are highlighted.\n")
		return err
	}

	for i, r := range qualified {
		if _, err := fmt.Fprintf(w, "%d. **[%s](https://github.com/%s)** - %s/%s points (%s)\n",
			i+1, r.FullName, r.FullName, fmtFloat(r.Score), fmtFloat(schema.MaxScore), contract.GetPlainLabel(r.Score)); err != nil {
			return err
		}
		if r.WhyMatters != "" {
			if _, err := fmt.Fprintf(w, "   - Signals: %s\n", r.WhyMatters); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "   - Change: %s", contract.FormatChange(r.ScoreChange)); err != nil {
			return err
		}
		if len(r.Trend) > 1 {
			if _, err := fmt.Fprintf(w, " | Trend: %s", schema.Sparkline(r.Trend)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// qualifiedRepos keeps the repositories at or above the scoring threshold.
// The input is already ranked, so the order carries over.
func qualifiedRepos(repos []schema.ScoredRepo) []schema.ScoredRepo {
	var out []schema.ScoredRepo
	for _, r := range repos {
		if r.Qualifies {
			out = append(out, r)
		}
	}
	return out
}
