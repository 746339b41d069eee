package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{10.0, "exceptional"},
		{9.0, "exceptional"},
		{8.9, "promising"},
		{7.0, "promising"}, // threshold boundary is inclusive
		{6.9, "emerging"},
		{5.0, "emerging"},
		{4.9, "quiet"},
		{0.0, "quiet"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLabel(tt.score), "score %.1f", tt.score)
	}
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "▁", Sparkline([]float64{0}))
	assert.Equal(t, "█", Sparkline([]float64{10}))

	// Monotone input yields nondecreasing ticks.
	line := []rune(Sparkline([]float64{0, 2.5, 5, 7.5, 10}))
	for i := 1; i < len(line); i++ {
		assert.LessOrEqual(t, line[i-1], line[i])
	}

	// Out-of-range values clamp instead of panicking.
	assert.Equal(t, "▁█", Sparkline([]float64{-1, 12}))
}
