// Package collector loads raw repository metrics produced by external
// collection jobs.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// FileSource reads one batch of raw repository metrics from a JSON file.
// The file holds an array of records in the collector output shape. A path
// of "-" reads from stdin so the scorer can sit at the end of a pipe.
type FileSource struct {
	path string

	// isFeature derives the feature commit count from raw commit messages
	// when the collector did not precompute one.
	isFeature func(message string) bool
}

var _ contract.MetricsSource = &FileSource{} // Compile-time check

// NewFileSource creates a metrics source over a JSON batch file.
func NewFileSource(path string, isFeature func(string) bool) *FileSource {
	return &FileSource{path: path, isFeature: isFeature}
}

// Collect implements the MetricsSource interface.
func (s *FileSource) Collect(ctx context.Context) ([]schema.RawRepoMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, fmt.Errorf("%w: no input file given", contract.ErrInvalidInput)
	}

	var reader io.Reader
	if s.path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file %q: %w", s.path, err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	var raws []schema.RawRepoMetrics
	if err := json.NewDecoder(reader).Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: failed to decode input %q: %v", contract.ErrInvalidInput, s.path, err)
	}

	for i := range raws {
		raw := &raws[i]
		// Collectors report star losses as negative deltas; momentum treats
		// any loss the same as no gain.
		if raw.StarsGained < 0 {
			raw.StarsGained = 0
		}
		if raw.FeatureCommits == 0 && len(raw.CommitMessages) > 0 && s.isFeature != nil {
			count := 0
			for _, msg := range raw.CommitMessages {
				if s.isFeature(msg) {
					count++
				}
			}
			raw.FeatureCommits = count
		}
	}
	return raws, nil
}
