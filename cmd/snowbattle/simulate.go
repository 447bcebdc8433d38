package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/snowbattle/internal/arena"
	"github.com/lox/snowbattle/internal/simulator"
	"github.com/lox/snowbattle/internal/statistics"
)

// SimulateCmd runs bot-only matches on a virtual clock
type SimulateCmd struct {
	Matches   int     `short:"m" help:"Number of matches (overrides config)"`
	Players   int     `short:"p" help:"Players per match (overrides config)"`
	Workers   int     `short:"w" help:"Parallel workers (overrides config)"`
	HitChance float64 `help:"Probability a snowball hits (overrides config)"`
	Seed      int64   `help:"RNG seed, 0 for random (overrides config)"`
	Output    string  `short:"o" help:"Write a JSON report to this file"`
	Chart     string  `help:"Write a PNG histogram of rounds per match to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	if c.Matches > 0 {
		cfg.Simulation.Matches = c.Matches
	}
	if c.Players > 0 {
		cfg.Simulation.Players = c.Players
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.HitChance > 0 {
		cfg.Simulation.HitChance = c.HitChance
	}
	if c.Seed != 0 {
		cfg.Simulation.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := g.setupLogger(os.Stderr, cfg.Arena.LogLevel)
	if err != nil {
		return err
	}

	rules, err := cfg.ToRules()
	if err != nil {
		return err
	}
	flight, err := cfg.FlightTime()
	if err != nil {
		return err
	}

	arenaCfg := arena.DefaultConfig()
	arenaCfg.HitChance = cfg.Simulation.HitChance
	arenaCfg.FlightTime = flight

	seed := resolveSeed(cfg.Simulation.Seed)
	logger.Info("Starting simulation",
		"matches", cfg.Simulation.Matches,
		"players", cfg.Simulation.Players,
		"workers", cfg.Simulation.Workers,
		"seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	sim := simulator.New(simulator.Config{
		Matches: cfg.Simulation.Matches,
		Players: cfg.Simulation.Players,
		Workers: cfg.Simulation.Workers,
		Seed:    seed,
		Rules:   rules,
		Arena:   arenaCfg,
		Logger:  logger,
	})

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Simulation complete", "elapsed", time.Since(start).Round(time.Millisecond))
	simulator.PrintSummary(os.Stdout, stats)

	if c.Output != "" {
		if err := statistics.WriteReport(c.Output, stats.Report(seed)); err != nil {
			return err
		}
		logger.Info("Wrote report", "file", c.Output)
	}
	if c.Chart != "" {
		if err := stats.WriteChart(c.Chart); err != nil {
			return err
		}
		logger.Info("Wrote chart", "file", c.Chart)
	}
	return nil
}
