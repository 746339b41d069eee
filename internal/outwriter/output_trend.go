package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTrend outputs the score history for a single repository, dispatching
// based on the output format configured.
func PrintTrend(fullName string, points []schema.TrendPoint, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.OutputJSON:
		if err := printTrendJSONResults(fullName, points, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.OutputCSV:
		if err := printTrendCSVResults(fullName, points, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(fullName, points, cfg, fmtFloat, w)
		}, "Wrote table")
	}
	return nil
}

// printTrendJSONResults handles opening the file and calling the JSON writer.
func printTrendJSONResults(fullName string, points []schema.TrendPoint, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONTrend(w, fullName, points)
	}, "Wrote JSON trend")
}

// printTrendCSVResults handles opening the file and calling the CSV writer.
func printTrendCSVResults(fullName string, points []schema.TrendPoint, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"date", "full_name", "score", "label"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range points {
				rec := []string{
					p.Date,
					fullName,
					fmtFloat(p.Score),
					contract.GetPlainLabel(p.Score),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV trend")
}

// writeTrendTable prints the trend in a three-column table with a sparkline footer.
func writeTrendTable(fullName string, points []schema.TrendPoint, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	if len(points) == 0 {
		_, err := fmt.Fprintf(writer, "No recorded history for %s\n", fullName)
		return err
	}

	if cfg.UseEmojis {
		if _, err := fmt.Fprintf(writer, "📈 Score history for %s\n", fullName); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(writer, "Score history for %s\n", fullName); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Date", "Score", "Label"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	scores := make([]float64, 0, len(points))
	for _, p := range points {
		label := contract.GetPlainLabel(p.Score)
		if cfg.UseColors {
			label = contract.GetColorLabel(p.Score)
		}
		row := []string{
			p.Date,
			fmtFloat(p.Score),
			label,
		}
		data = append(data, row)
		scores = append(scores, p.Score)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Trend: %s (%d of %d periods recorded)\n", schema.Sparkline(scores), len(points), cfg.TrendWindow)
	return err
}

// writeJSONTrend writes the trend points in JSON format.
func writeJSONTrend(w io.Writer, fullName string, points []schema.TrendPoint) error {
	type JSONTrend struct {
		FullName string              `json:"full_name"`
		Points   []schema.TrendPoint `json:"points"`
	}

	return writeJSON(w, JSONTrend{FullName: fullName, Points: points})
}
