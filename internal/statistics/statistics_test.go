package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/snowbattle/internal/match"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.RedWinRate())
	assert.Zero(t, stats.DrawRate())
	assert.Zero(t, stats.HitRate())
	assert.Zero(t, stats.MeanRounds())
	assert.Zero(t, stats.RoundsStdDev())
	assert.Zero(t, stats.MeanMVPKills())
	assert.Zero(t, stats.MeanDuration())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Error(t, stats.Validate())
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	stats.Add(MatchResult{
		Winner: match.Red, ScoreRed: 3, ScoreBlue: 1, Rounds: 5, Draws: 1, Timeouts: 1,
		Throws: 40, Hits: 12, MVPKills: 4, Duration: 6 * time.Minute,
	})
	stats.Add(MatchResult{
		Winner: match.Blue, ScoreRed: 0, ScoreBlue: 3, Rounds: 3,
		Throws: 20, Hits: 9, MVPKills: 2, Duration: 2 * time.Minute,
	})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 2, stats.Matches)
	assert.InDelta(t, 0.5, stats.RedWinRate(), 1e-9)
	assert.InDelta(t, 1.0/8.0, stats.DrawRate(), 1e-9)
	assert.InDelta(t, 21.0/60.0, stats.HitRate(), 1e-9)
	assert.InDelta(t, 4.0, stats.MeanRounds(), 1e-9)
	assert.InDelta(t, 1.41421356, stats.RoundsStdDev(), 1e-6)
	assert.InDelta(t, 3.0, stats.MeanMVPKills(), 1e-9)
	assert.Equal(t, 4, stats.MaxMVPKills)
	assert.Equal(t, 4*time.Minute, stats.MeanDuration())
	assert.InDelta(t, 4.0, stats.Percentile(0.5), 1e-9)
	assert.InDelta(t, 5.0, stats.Percentile(1), 1e-9)
}

func TestStatistics_ValidateInconsistent(t *testing.T) {
	stats := &Statistics{Matches: 1, RedWins: 1, RoundsPerMatch: []float64{3}, Throws: 1, Hits: 2}
	err := stats.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hits")
}
