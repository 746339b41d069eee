package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// Tunable extraction constants.
const (
	surgeCommitFloor  = 10   // commits per 14 days below this yield no surge
	surgeFeatureMin   = 3    // feature commits needed for the bonus point
	surgeExcessScale  = 20.0 // excess commits beyond the floor that add one full point
	velocityStarFloor = 10.0 // stars gained below this yield no velocity
	velocityStarMax   = 300.0
	tractionMinActive = 2 // fewer active contributors than this yields no traction
)

// Rules holds the extraction thresholds and vocabularies for one run.
// Fixed for the whole run so all repositories score under the same rules.
type Rules struct {
	MinActiveCommits int
	TeamSweetSpot    int

	// Lowercased allow-lists for the ecosystem-fit signal.
	Languages map[string]struct{}
	Keywords  map[string]struct{}

	// IsFeatureCommit classifies a commit message as feature work.
	IsFeatureCommit func(message string) bool
}

// RulesFromConfig builds the extraction rules from a validated config.
func RulesFromConfig(cfg *contract.Config) Rules {
	return Rules{
		MinActiveCommits: cfg.MinActiveCommits,
		TeamSweetSpot:    cfg.TeamSweetSpot,
		Languages:        cfg.Languages,
		Keywords:         cfg.Keywords,
		IsFeatureCommit:  DefaultFeatureCommit,
	}
}

// DefaultRules returns rules with the standard thresholds and vocabularies.
func DefaultRules() Rules {
	languages := make(map[string]struct{}, len(contract.DefaultLanguages))
	for _, lang := range contract.DefaultLanguages {
		languages[lang] = struct{}{}
	}
	keywords := make(map[string]struct{}, len(contract.DefaultKeywords))
	for _, kw := range contract.DefaultKeywords {
		keywords[kw] = struct{}{}
	}
	return Rules{
		MinActiveCommits: contract.DefaultMinActiveCommits,
		TeamSweetSpot:    contract.DefaultTeamSweetSpot,
		Languages:        languages,
		Keywords:         keywords,
		IsFeatureCommit:  DefaultFeatureCommit,
	}
}

// DefaultFeatureCommit reports whether a commit message looks like feature work.
// Matches conventional-commit "feat" prefixes and plain "add ..." messages.
func DefaultFeatureCommit(message string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))
	return strings.HasPrefix(msg, "feat") || strings.Contains(msg, "add ")
}

// CountFeatureCommits counts commit messages matched by the predicate.
func CountFeatureCommits(messages []string, isFeature func(string) bool) int {
	if isFeature == nil {
		isFeature = DefaultFeatureCommit
	}
	count := 0
	for _, msg := range messages {
		if isFeature(msg) {
			count++
		}
	}
	return count
}

// ValidateMetrics checks the collector's input contract. Malformed records
// abort the run rather than produce partial momentum data.
func ValidateMetrics(raw *schema.RawRepoMetrics) error {
	if raw.FullName == "" {
		return fmt.Errorf("%w: empty full_name", contract.ErrInvalidInput)
	}
	if !strings.Contains(raw.FullName, "/") {
		return fmt.Errorf("%w: full_name %q is not owner/repo", contract.ErrInvalidInput, raw.FullName)
	}
	if raw.Stars < 0 || raw.Forks < 0 {
		return fmt.Errorf("%w: %s has negative star or fork count", contract.ErrInvalidInput, raw.FullName)
	}
	if raw.Commits < 0 || raw.FeatureCommits < 0 {
		return fmt.Errorf("%w: %s has negative commit count", contract.ErrInvalidInput, raw.FullName)
	}
	if raw.FeatureCommits > raw.Commits {
		return fmt.Errorf("%w: %s has more feature commits than commits", contract.ErrInvalidInput, raw.FullName)
	}
	for _, c := range raw.Contributors {
		if c.Commits < 0 {
			return fmt.Errorf("%w: %s has negative contributor commits", contract.ErrInvalidInput, raw.FullName)
		}
	}
	return nil
}

// ExtractSignals derives the four momentum signals from one repository's raw
// metrics. Pure and deterministic: no I/O, no clock, same input same output.
// Missing optional data (language, topics, contributors) reads as zero signal.
func ExtractSignals(raw *schema.RawRepoMetrics, rules Rules) schema.SignalVector {
	return schema.SignalVector{
		CommitSurge:  commitSurge(raw.Commits, raw.FeatureCommits),
		StarVelocity: starVelocity(raw.StarsGained),
		TeamTraction: teamTraction(raw.Contributors, rules.MinActiveCommits, rules.TeamSweetSpot),
		EcosystemFit: ecosystemFit(raw.Language, raw.Topics, rules.Languages, rules.Keywords),
	}
}

// commitSurge scores sustained commit activity in the trailing 14 days.
// One point for clearing the floor, one bonus point for feature work,
// and a scaled contribution for commits beyond the floor.
func commitSurge(commits, featureCommits int) float64 {
	if commits < surgeCommitFloor {
		return 0
	}
	surge := 1.0
	if featureCommits >= surgeFeatureMin {
		surge += 1.0
	}
	surge += float64(commits-surgeCommitFloor) / surgeExcessScale
	return clampSignal(surge, schema.SignalCommitSurge)
}

// starVelocity scores stars gained in the trailing 14 days on a logarithmic
// curve from 1.0 at the floor to 3.0 at saturation, so a viral spike does
// not dominate the composite. Lost stars read as zero, never negative.
func starVelocity(gained int) float64 {
	g := float64(gained)
	if g < velocityStarFloor {
		return 0
	}
	v := 1.0 + 2.0*math.Log(g/velocityStarFloor)/math.Log(velocityStarMax/velocityStarFloor)
	return clampSignal(v, schema.SignalStarVelocity)
}

// teamTraction scores small active teams. An active contributor has at least
// minCommits commits in the trailing 30 days. Solo projects score zero and
// the signal saturates at the sweet spot rather than rewarding big teams.
func teamTraction(contributors []schema.ContributorActivity, minCommits, sweetSpot int) float64 {
	active := 0
	for _, c := range contributors {
		if c.Commits >= minCommits {
			active++
		}
	}
	if active < tractionMinActive {
		return 0
	}
	if active >= sweetSpot {
		return schema.SignalMax[schema.SignalTeamTraction]
	}
	traction := 1.0 + float64(active-tractionMinActive)/float64(sweetSpot-tractionMinActive)
	return clampSignal(traction, schema.SignalTeamTraction)
}

// ecosystemFit scores language and topic alignment with the developer-tool
// vocabularies. The two points are independent and additive.
func ecosystemFit(language string, topics []string, languages, keywords map[string]struct{}) float64 {
	var fit float64
	if language != "" {
		if _, ok := languages[strings.ToLower(language)]; ok {
			fit += 1.0
		}
	}
	for _, topic := range topics {
		if _, ok := keywords[strings.ToLower(topic)]; ok {
			fit += 1.0
			break
		}
	}
	return clampSignal(fit, schema.SignalEcosystemFit)
}

func clampSignal(v float64, key schema.SignalKey) float64 {
	if v < 0 {
		return 0
	}
	if limit := schema.SignalMax[key]; v > limit {
		return limit
	}
	return v
}
