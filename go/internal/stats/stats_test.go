package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	avg, ok := Average([]string{"1", "2", "3", "8"})
	require.True(t, ok)
	assert.InDelta(t, 3.5, avg, 1e-9)

	reordered, ok := Average([]string{"8", "3", "1", "2"})
	require.True(t, ok)
	assert.InDelta(t, avg, reordered, 1e-9)

	avg, ok = Average([]string{"5", "?", "☕", "13"})
	require.True(t, ok)
	assert.InDelta(t, 9.0, avg, 1e-9)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		votes []string
		want  float64
	}{
		{[]string{"1", "2", "3", "8"}, 2.5},
		{[]string{"1", "3", "5"}, 3},
		{[]string{"2", "13", "8"}, 8},
		{[]string{"21", "?", "3"}, 12},
	}
	for _, tt := range tests {
		got, ok := Median(tt.votes)
		require.True(t, ok, tt.votes)
		assert.InDelta(t, tt.want, got, 1e-9, tt.votes)
	}
}

func TestMode(t *testing.T) {
	assert.ElementsMatch(t, []string{"3", "5"}, Mode([]string{"3", "3", "5", "5"}))
	assert.Equal(t, []string{"?"}, Mode([]string{"?", "?", "5"}))
	assert.Equal(t, []string{"8"}, Mode([]string{"8"}))
	assert.Empty(t, Mode(nil))
}

func TestDistribution(t *testing.T) {
	assert.Equal(t, map[string]int{"3": 2, "?": 1, "XL": 1}, Distribution([]string{"3", "?", "3", "XL"}))
	assert.Empty(t, Distribution(nil))
}

func TestOnlySpecialCards(t *testing.T) {
	votes := []string{"?", "☕", "?", "∞"}

	_, ok := Average(votes)
	assert.False(t, ok)
	_, ok = Median(votes)
	assert.False(t, ok)

	assert.Equal(t, []string{"?"}, Mode(votes))
	assert.Equal(t, map[string]int{"?": 2, "☕": 1, "∞": 1}, Distribution(votes))
}

func TestSummarize(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.Nil(t, s.Average)
	assert.Nil(t, s.Median)
	assert.Empty(t, s.Mode)
	assert.Empty(t, s.Distribution)

	s = Summarize([]string{"5", "8", "8", "?"})
	assert.Equal(t, 4, s.Count)
	require.NotNil(t, s.Average)
	assert.InDelta(t, 7.0, *s.Average, 1e-9)
	require.NotNil(t, s.Median)
	assert.InDelta(t, 8.0, *s.Median, 1e-9)
	assert.Equal(t, []string{"8"}, s.Mode)
}
