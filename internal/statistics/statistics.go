package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/snowbattle/internal/match"
)

// MatchResult represents the outcome of a single simulated match
type MatchResult struct {
	Seed      int64         // RNG seed for this match (for replay)
	Winner    match.Team    // Team that reached the win score
	ScoreRed  int           // Rounds won by red
	ScoreBlue int           // Rounds won by blue
	Rounds    int           // Rounds played, draws included
	Draws     int           // Rounds that ended without a winner
	Timeouts  int           // Rounds that ended on the clock
	Throws    int           // Snowballs thrown
	Hits      int           // Hits that changed a player's health
	MVPKills  int           // Kills of the MVP, 0 when none
	Duration  time.Duration // Simulated match length
}

// Statistics aggregates simulated match results
type Statistics struct {
	Matches  int
	RedWins  int
	BlueWins int

	Rounds   int
	Draws    int
	Timeouts int

	Throws int
	Hits   int

	SumMVPKills int
	MaxMVPKills int

	RoundsPerMatch []float64 // Stored for median/percentile calculation
	Duration       time.Duration
}

// Add incorporates a match result
func (s *Statistics) Add(result MatchResult) {
	s.Matches++
	if result.Winner == match.Red {
		s.RedWins++
	} else {
		s.BlueWins++
	}

	s.Rounds += result.Rounds
	s.Draws += result.Draws
	s.Timeouts += result.Timeouts
	s.Throws += result.Throws
	s.Hits += result.Hits

	s.SumMVPKills += result.MVPKills
	if result.MVPKills > s.MaxMVPKills {
		s.MaxMVPKills = result.MVPKills
	}

	s.RoundsPerMatch = append(s.RoundsPerMatch, float64(result.Rounds))
	s.Duration += result.Duration
}

// RedWinRate returns the fraction of matches won by red
func (s *Statistics) RedWinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.RedWins) / float64(s.Matches)
}

// DrawRate returns the fraction of rounds that ended in a draw
func (s *Statistics) DrawRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.Rounds)
}

// HitRate returns the fraction of throws that landed a hit
func (s *Statistics) HitRate() float64 {
	if s.Throws == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Throws)
}

// MeanRounds returns the average number of rounds per match
func (s *Statistics) MeanRounds() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Matches)
}

// RoundsStdDev returns the sample standard deviation of rounds per match
func (s *Statistics) RoundsStdDev() float64 {
	n := len(s.RoundsPerMatch)
	if n < 2 {
		return 0
	}
	mean := s.MeanRounds()
	var sum float64
	for _, v := range s.RoundsPerMatch {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(n-1))
}

// MeanMVPKills returns the average MVP kill count
func (s *Statistics) MeanMVPKills() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.SumMVPKills) / float64(s.Matches)
}

// MeanDuration returns the average simulated match length
func (s *Statistics) MeanDuration() time.Duration {
	if s.Matches == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Matches)
}

// Percentile returns the rounds-per-match value at p (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.RoundsPerMatch) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.RoundsPerMatch))
	copy(sorted, s.RoundsPerMatch)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the aggregate is internally consistent
func (s *Statistics) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid match count: %d", s.Matches)
	}
	if s.RedWins+s.BlueWins != s.Matches {
		return fmt.Errorf("wins (%d red + %d blue) do not match match count (%d)",
			s.RedWins, s.BlueWins, s.Matches)
	}
	if len(s.RoundsPerMatch) != s.Matches {
		return fmt.Errorf("rounds array length (%d) does not match match count (%d)",
			len(s.RoundsPerMatch), s.Matches)
	}
	if s.Draws > s.Rounds {
		return fmt.Errorf("draws (%d) exceed rounds (%d)", s.Draws, s.Rounds)
	}
	if s.Hits > s.Throws {
		return fmt.Errorf("hits (%d) exceed throws (%d)", s.Hits, s.Throws)
	}
	return nil
}
