// Package core has core logic for signal extraction, scoring and ranking.
package core

import (
	"context"
	"time"

	"github.com/gitsignals/gitsignals/internal/collector"
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/internal/history"
	"github.com/gitsignals/gitsignals/internal/outwriter"
	"github.com/gitsignals/gitsignals/schema"
)

// ScoreBatch validates and scores one batch of raw metrics against the
// previous snapshot. A single malformed record aborts the whole batch so a
// collector bug cannot produce a partial-but-wrong report.
func ScoreBatch(raws []schema.RawRepoMetrics, rules Rules, threshold float64, prev schema.Snapshot) ([]schema.ScoredRepo, error) {
	for i := range raws {
		if err := ValidateMetrics(&raws[i]); err != nil {
			return nil, err
		}
	}

	scored := make([]schema.ScoredRepo, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		var prevScore *float64
		if score, ok := prev.Entries[raw.FullName]; ok {
			val := score
			prevScore = &val
		}
		scored = append(scored, ScoreRepo(raw, rules, threshold, prevScore))
	}
	return scored, nil
}

// RunPipeline executes one full scoring run: collect raw metrics, score
// against the previous snapshot, record the new snapshot (unless dry-run),
// rank, and attach trends. The returned slice is ready for any renderer.
func RunPipeline(ctx context.Context, cfg *contract.Config) ([]schema.ScoredRepo, error) {
	source := collector.NewFileSource(cfg.InputFile, DefaultFeatureCommit)
	raws, err := source.Collect(ctx)
	if err != nil {
		return nil, err
	}

	store, err := history.GetHistoryStore(cfg)
	if err != nil {
		return nil, err
	}
	tracker := NewTracker(store, cfg.TrendWindow)

	prev, _, err := tracker.PreviousSnapshot(cfg.RunDate)
	if err != nil {
		return nil, err
	}

	scored, err := ScoreBatch(raws, RulesFromConfig(cfg), cfg.Threshold, prev)
	if err != nil {
		return nil, err
	}

	if !cfg.DryRun {
		if err := tracker.Record(cfg.RunDate, scored); err != nil {
			return nil, err
		}
	}

	ranked := RankRepos(scored, cfg.ResultLimit)
	for i := range ranked {
		trend, err := tracker.GetTrend(ranked[i].FullName, cfg.RunDate)
		if err != nil {
			return nil, err
		}
		// A dry run records nothing, so the current score is appended here
		// to keep the trend shape consistent with a recorded run.
		if cfg.DryRun {
			trend = append(trend, ranked[i].Score)
			if len(trend) > cfg.TrendWindow {
				trend = trend[len(trend)-cfg.TrendWindow:]
			}
		}
		ranked[i].Trend = trend
	}
	return ranked, nil
}

// ExecuteScore runs the scoring pipeline and prints results to stdout.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ranked, err := RunPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintScoredResults(ranked, cfg, duration)
}

// ExecuteReport runs the scoring pipeline and writes the weekly report
// artifacts (Markdown digest plus JSON API files) to the report directory.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	ranked, err := RunPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteWeeklyReport(ranked, cfg)
}

// ExecuteTrend prints the recorded score history for one repository.
// It serves as the main entry point for the 'trend' command.
func ExecuteTrend(_ context.Context, cfg *contract.Config, fullName string) error {
	store, err := history.GetHistoryStore(cfg)
	if err != nil {
		return err
	}
	tracker := NewTracker(store, cfg.TrendWindow)

	points, err := tracker.GetTrendPoints(fullName, cfg.RunDate)
	if err != nil {
		return err
	}
	return outwriter.PrintTrend(fullName, points, cfg)
}
