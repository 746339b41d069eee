package schema

import "strings"

// ScoreLabel buckets a composite score into a coarse tier.
func ScoreLabel(score float64) string {
	switch {
	case score >= 9.0:
		return "exceptional"
	case score >= DefaultThreshold:
		return "promising"
	case score >= 5.0:
		return "emerging"
	default:
		return "quiet"
	}
}

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a compact unicode chart of scores on the 0..MaxScore scale.
func Sparkline(scores []float64) string {
	if len(scores) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range scores {
		idx := int(s / MaxScore * float64(len(sparkTicks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkTicks) {
			idx = len(sparkTicks) - 1
		}
		sb.WriteRune(sparkTicks[idx])
	}
	return sb.String()
}
