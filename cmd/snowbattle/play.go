package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/snowbattle/internal/arena"
	"github.com/lox/snowbattle/internal/display"
	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/metrics"
	"github.com/lox/snowbattle/internal/randutil"
	"github.com/lox/snowbattle/internal/spectate"
	"github.com/lox/snowbattle/internal/tui"
)

// PlayCmd runs an interactive match in the terminal
type PlayCmd struct {
	Name     string `short:"n" default:"you" help:"Your player name"`
	Bots     int    `short:"b" help:"Number of bot players (overrides config)"`
	Spectate string `help:"Address to serve the spectator feed on (overrides config)"`
	Seed     int64  `help:"RNG seed for bots, 0 for random"`
	LogFile  string `default:"snowbattle.log" help:"File to write logs to while the terminal UI is running"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Bots > 0 {
		cfg.Arena.Bots = c.Bots
	}
	if c.Spectate != "" {
		cfg.Arena.SpectateAddr = c.Spectate
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger, err := g.setupLogger(logFile, cfg.Arena.LogLevel)
	if err != nil {
		return err
	}

	rules, err := cfg.ToRules()
	if err != nil {
		return err
	}
	tick, err := cfg.TickInterval()
	if err != nil {
		return err
	}
	flight, err := cfg.FlightTime()
	if err != nil {
		return err
	}

	seed := resolveSeed(c.Seed)
	logger.Info("Starting arena", "player", c.Name, "bots", cfg.Arena.Bots, "seed", seed)

	session := match.NewSession(rules, logger)

	screen := tui.NewSink(c.Name)
	sinks := display.MultiSink{screen, display.NewLogSink(logger)}

	var hub *spectate.Hub
	var runner *match.Runner
	if cfg.Arena.SpectateAddr != "" {
		stats := metrics.New()
		session.Subscribe(stats)

		opts := []spectate.HubOption{
			spectate.WithMetrics(stats),
			spectate.WithSnapshot(func() match.Snapshot { return runner.Snapshot() }),
			spectate.WithRateLimit(spectate.RateLimit{
				PerSecond: cfg.Arena.SpectateRate,
				Burst:     cfg.Arena.SpectateBurst,
			}),
		}
		if len(cfg.Arena.SpectateOrigins) > 0 {
			opts = append(opts, spectate.WithAllowedOrigins(cfg.Arena.SpectateOrigins...))
		}
		hub = spectate.NewHub(logger, opts...)
		sinks = append(sinks, hub)
	}
	session.Subscribe(display.NewPresenter(sinks, logger))

	arenaCfg := arena.DefaultConfig()
	arenaCfg.HitChance = cfg.Simulation.HitChance
	arenaCfg.FlightTime = flight
	bots := arena.New(arenaCfg, randutil.New(seed), logger)
	bots.Attach(session)

	runner = match.NewRunner(session, quartz.NewReal(), tick, logger)
	runner.Do(func(s *match.Session, now time.Time) {
		s.Join(c.Name, now)
		for i := 1; i <= cfg.Arena.Bots; i++ {
			bots.AddBot(s, fmt.Sprintf("bot%d", i), now)
		}
	})
	runner.BeforeTick(bots.Step)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(egCtx)
	defer cancel()

	eg.Go(func() error { return runner.Run(runCtx) })
	if hub != nil {
		eg.Go(func() error { return hub.ListenAndServe(runCtx, cfg.Arena.SpectateAddr) })
	}

	model := tui.NewModel(runner, c.Name, logger)
	model.SetAutoStart(true)
	eg.Go(func() error {
		defer cancel()
		return tui.Run(runCtx, model, screen)
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	snap := runner.Snapshot()
	fmt.Printf("Final score: RED %d : %d BLUE after %d rounds\n", snap.ScoreRed, snap.ScoreBlue, snap.Round)
	return nil
}
