package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/snowbattle/internal/arena"
	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/randutil"
	"github.com/lox/snowbattle/internal/statistics"
)

// Defaults for the virtual clock
const (
	DefaultStep        = 50 * time.Millisecond
	DefaultMaxDuration = 6 * time.Hour
)

// epoch is the virtual start time of every simulated match
var epoch = time.Date(2025, time.December, 24, 18, 0, 0, 0, time.UTC)

// Config holds configuration for running simulations
type Config struct {
	Matches     int
	Players     int
	Workers     int
	Seed        int64
	Rules       match.Rules
	Arena       arena.Config
	Step        time.Duration // virtual time per tick
	MaxDuration time.Duration // virtual time after which a match is abandoned
	Logger      *log.Logger
}

// Simulator runs headless bot-only matches on a virtual clock
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Step <= 0 {
		config.Step = DefaultStep
	}
	if config.MaxDuration <= 0 {
		config.MaxDuration = DefaultMaxDuration
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	return &Simulator{config: config}
}

// Run plays every match and returns the aggregate. Matches run in parallel
// but each one is seeded from its index, so results do not depend on
// scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.MatchResult, s.config.Matches)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range results {
		if gctx.Err() != nil {
			break
		}
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			result, err := s.PlayMatch(gctx, seed)
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayMatch plays a single match to completion
func (s *Simulator) PlayMatch(ctx context.Context, seed int64) (statistics.MatchResult, error) {
	logger := s.config.Logger.With("seed", seed)
	session := match.NewSession(s.config.Rules, logger)

	tracker := &tracker{}
	session.Subscribe(tracker)

	a := arena.New(s.config.Arena, randutil.New(seed), logger)
	a.Attach(session)

	now := epoch
	for i := 1; i <= s.config.Players; i++ {
		a.AddBot(session, fmt.Sprintf("bot%d", i), now)
	}
	session.StartMatch(now)

	for tracker.end == nil {
		if now.Sub(epoch) > s.config.MaxDuration {
			return statistics.MatchResult{}, fmt.Errorf("no winner after %v (seed: %d)", s.config.MaxDuration, seed)
		}
		if err := ctx.Err(); err != nil {
			return statistics.MatchResult{}, err
		}
		now = now.Add(s.config.Step)
		a.Step(session, now)
		session.Tick(now)
	}

	end := tracker.end
	result := statistics.MatchResult{
		Seed:      seed,
		Winner:    end.Winner,
		ScoreRed:  end.ScoreRed,
		ScoreBlue: end.ScoreBlue,
		Rounds:    end.Rounds,
		Draws:     tracker.draws,
		Timeouts:  tracker.timeouts,
		Throws:    a.Physics().Throws,
		Hits:      a.Physics().Hits,
		Duration:  now.Sub(epoch),
	}
	if end.MVP != nil {
		result.MVPKills = end.MVP.Kills
	}

	logger.Debug("Match simulated",
		"winner", result.Winner,
		"score", fmt.Sprintf("%d:%d", result.ScoreRed, result.ScoreBlue),
		"rounds", result.Rounds,
		"duration", result.Duration)

	return result, nil
}

// tracker collects round outcomes as the match publishes them
type tracker struct {
	draws    int
	timeouts int
	end      *match.MatchEndEvent
}

func (t *tracker) OnEvent(event match.GameEvent) {
	switch e := event.(type) {
	case match.RoundEndEvent:
		if e.Outcome.Winner == match.Draw {
			t.draws++
		}
		if e.Outcome.Reason == match.EndTimeout {
			t.timeouts++
		}
	case match.MatchEndEvent:
		t.end = &e
	}
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Matches played: %d\n", stats.Matches)
	fmt.Fprintf(w, "Red wins: %d (%.1f%%)\n", stats.RedWins, stats.RedWinRate()*100)
	fmt.Fprintf(w, "Blue wins: %d (%.1f%%)\n", stats.BlueWins, (1-stats.RedWinRate())*100)

	fmt.Fprintf(w, "\n=== ROUNDS ===\n")
	fmt.Fprintf(w, "Rounds played: %d (%.2f per match, std dev %.2f)\n",
		stats.Rounds, stats.MeanRounds(), stats.RoundsStdDev())
	fmt.Fprintf(w, "Percentiles: P50=%.1f, P95=%.1f\n", stats.Percentile(0.5), stats.Percentile(0.95))
	fmt.Fprintf(w, "Draws: %d (%.1f%% of rounds)\n", stats.Draws, stats.DrawRate()*100)
	fmt.Fprintf(w, "Timeouts: %d\n", stats.Timeouts)

	fmt.Fprintf(w, "\n=== COMBAT ===\n")
	fmt.Fprintf(w, "Throws: %d, hits: %d (%.1f%%)\n", stats.Throws, stats.Hits, stats.HitRate()*100)
	fmt.Fprintf(w, "MVP kills: %.2f avg, %d max\n", stats.MeanMVPKills(), stats.MaxMVPKills)
	fmt.Fprintf(w, "Match length: %v avg\n", stats.MeanDuration().Round(time.Second))
}
