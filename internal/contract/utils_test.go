package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: "quiet",
		},
		{
			name:     "just before emerging",
			input:    4.9,
			expected: "quiet",
		},
		{
			name:     "exactly emerging",
			input:    5.0,
			expected: "emerging",
		},
		{
			name:     "just before promising",
			input:    6.9,
			expected: "emerging",
		},
		{
			name:     "exactly promising",
			input:    7.0,
			expected: "promising",
		},
		{
			name:     "just before exceptional",
			input:    8.9,
			expected: "promising",
		},
		{
			name:     "exactly exceptional",
			input:    9.0,
			expected: "exceptional",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	for _, score := range []float64{0, 5.5, 7.5, 9.5} {
		assert.Contains(t, GetColorLabel(score), GetPlainLabel(score))
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "new", FormatChange(nil))

	up := 1.5
	assert.Equal(t, "+1.5", FormatChange(&up))

	down := -0.3
	assert.Equal(t, "-0.3", FormatChange(&down))

	flat := 0.0
	assert.Equal(t, "+0.0", FormatChange(&flat))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.json")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.NotEqual(t, os.Stdout, f)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "longer-...", TruncateText("longer-than-ten", 10))
	// Width too small to truncate safely is left alone.
	assert.Equal(t, "abcd", TruncateText("abcd", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestSplitCSVList(t *testing.T) {
	assert.Equal(t, []string{"python", "rust"}, SplitCSVList(" Python , RUST ,, "))
	assert.Nil(t, SplitCSVList(""))
}
