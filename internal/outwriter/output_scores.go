package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintScoredResults outputs the scored repositories, dispatching based on the output format configured.
func PrintScoredResults(repos []schema.ScoredRepo, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.OutputJSON:
		if err := printScoredJSONResults(repos, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.OutputCSV:
		if err := printScoredCSVResults(repos, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.OutputMarkdown:
		if err := printScoredMarkdownResults(repos, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing markdown output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoredTable(repos, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printScoredJSONResults handles opening the file and calling the JSON writer.
func printScoredJSONResults(repos []schema.ScoredRepo, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONScoredResults(w, repos)
	}, "Wrote JSON")
}

// printScoredCSVResults handles opening the file and calling the CSV writer.
func printScoredCSVResults(repos []schema.ScoredRepo, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVScoredResults(csvWriter, repos, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// printScoredMarkdownResults handles opening the file and calling the digest writer.
func printScoredMarkdownResults(repos []schema.ScoredRepo, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeMarkdownDigest(w, repos, cfg, fmtFloat)
	}, "Wrote markdown")
}

// writeScoredTable generates and writes the human-readable table.
func writeScoredTable(repos []schema.ScoredRepo, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if cfg.UseEmojis {
		if _, err := fmt.Fprintf(writer, "🚀 Momentum scores for %s\n", cfg.RunDate); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Repository", "Score", "Change", "Label", "Trend", "Why It Matters"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, r := range repos {
		label := contract.GetPlainLabel(r.Score)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Score)
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.FullName, GetMaxTableRepoWidth(cfg)),
			fmtFloat(r.Score),
			contract.FormatChange(r.ScoreChange),
			label,
			schema.Sparkline(r.Trend),
			contract.TruncateText(r.WhyMatters, getMaxTableReasonWidth(cfg)),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	numRepos := len(repos)
	numQualified := 0
	for _, r := range repos {
		if r.Qualifies {
			numQualified++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d repositories (%d above threshold %s)\n", numRepos, numQualified, fmtFloat(cfg.Threshold)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVScoredResults writes the scored repositories in CSV format.
func writeCSVScoredResults(w *csv.Writer, repos []schema.ScoredRepo, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"full_name",
		"score",
		"change",
		"label",
		"qualifies",
		"commit_surge",
		"star_velocity",
		"team_traction",
		"ecosystem_fit",
		"language",
		"stars",
		"why_matters",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range repos {
		rec := []string{
			strconv.Itoa(i + 1),                  // Rank
			r.FullName,                           // Repository
			fmtFloat(r.Score),                    // Score
			contract.FormatChange(r.ScoreChange), // Change vs previous run
			contract.GetPlainLabel(r.Score),      // Label
			strconv.FormatBool(r.Qualifies),      // Qualifies
			fmtFloat(r.Signals.CommitSurge),      // Commit surge
			fmtFloat(r.Signals.StarVelocity),     // Star velocity
			fmtFloat(r.Signals.TeamTraction),     // Team traction
			fmtFloat(r.Signals.EcosystemFit),     // Ecosystem fit
			r.Language,                           // Primary language
			fmt.Sprintf(intFmt, r.Stars),         // Stars
			r.WhyMatters,                         // Reason summary
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONScoredResults writes the scored repositories in JSON format.
func writeJSONScoredResults(w io.Writer, repos []schema.ScoredRepo) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONScoredRepo struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ScoredRepo
	}

	output := make([]JSONScoredRepo, len(repos))
	for i, r := range repos {
		output[i] = JSONScoredRepo{
			Rank:       i + 1,
			Label:      contract.GetPlainLabel(r.Score),
			ScoredRepo: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
