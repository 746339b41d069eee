package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// whyMattersMaxLen caps the justification text for report layouts.
const whyMattersMaxLen = 80

// RoundScore rounds a composite score to one decimal.
func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// ScoreRepo combines a repository's signals into a scored record.
// prevScore is the repository's score in the immediately preceding snapshot,
// nil when the repository was absent from it or no snapshot exists.
func ScoreRepo(raw *schema.RawRepoMetrics, rules Rules, threshold float64, prevScore *float64) schema.ScoredRepo {
	signals := ExtractSignals(raw, rules)
	score := RoundScore(signals.Sum())

	var change *float64
	if prevScore != nil {
		delta := RoundScore(score - *prevScore)
		change = &delta
	}

	return schema.ScoredRepo{
		FullName:    raw.FullName,
		Score:       score,
		Signals:     signals,
		Qualifies:   score >= threshold,
		ScoreChange: change,
		WhyMatters:  buildWhyMatters(raw, signals, rules),
		Language:    raw.Language,
		Stars:       raw.Stars,
	}
}

// buildWhyMatters summarizes the top one to three non-zero signals, strongest
// first, ties broken by the canonical signal order for determinism.
func buildWhyMatters(raw *schema.RawRepoMetrics, signals schema.SignalVector, rules Rules) string {
	type rankedSignal struct {
		key   schema.SignalKey
		value float64
		order int
	}

	var ranked []rankedSignal
	for i, key := range schema.SignalOrder {
		if v := signals.Get(key); v > 0 {
			ranked = append(ranked, rankedSignal{key: key, value: v, order: i})
		}
	}
	if len(ranked) == 0 {
		return ""
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].value != ranked[j].value {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].order < ranked[j].order
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	phrases := make([]string, 0, len(ranked))
	for _, rs := range ranked {
		phrases = append(phrases, signalPhrase(rs.key, raw, rules))
	}
	return contract.TruncateText(strings.Join(phrases, " • "), whyMattersMaxLen)
}

// signalPhrase renders one signal as a short factual clause.
func signalPhrase(key schema.SignalKey, raw *schema.RawRepoMetrics, rules Rules) string {
	switch key {
	case schema.SignalCommitSurge:
		if raw.FeatureCommits > 0 {
			return fmt.Sprintf("%d commits in last 14 days (%d feature)", raw.Commits, raw.FeatureCommits)
		}
		return fmt.Sprintf("%d commits in last 14 days", raw.Commits)
	case schema.SignalStarVelocity:
		return fmt.Sprintf("%d stars gained in last 14 days", raw.StarsGained)
	case schema.SignalTeamTraction:
		active := 0
		for _, c := range raw.Contributors {
			if c.Commits >= rules.MinActiveCommits {
				active++
			}
		}
		return fmt.Sprintf("%d active contributors", active)
	case schema.SignalEcosystemFit:
		return ecosystemPhrase(raw, rules)
	}
	return ""
}

// ecosystemPhrase names what actually matched, language first then topics
// in input order.
func ecosystemPhrase(raw *schema.RawRepoMetrics, rules Rules) string {
	var matched []string
	if raw.Language != "" {
		lang := strings.ToLower(raw.Language)
		if _, ok := rules.Languages[lang]; ok {
			matched = append(matched, lang)
		}
	}
	for _, topic := range raw.Topics {
		lowered := strings.ToLower(topic)
		if _, ok := rules.Keywords[lowered]; ok {
			matched = append(matched, lowered)
			break
		}
	}
	if len(matched) == 0 {
		return "developer-tool fit"
	}
	return fmt.Sprintf("developer-tool fit (%s)", strings.Join(matched, ", "))
}
