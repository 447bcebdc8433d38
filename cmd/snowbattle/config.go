package main

import (
	"fmt"
	"os"
)

type ConfigCmd struct {
	Check ConfigCheckCmd `cmd:"" help:"Validate a configuration file and print the effective rules"`
}

type ConfigCheckCmd struct{}

func (c *ConfigCheckCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
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

	if _, err := os.Stat(g.ConfigFile); os.IsNotExist(err) {
		fmt.Printf("%s not found, using defaults\n", g.ConfigFile)
	}
	fmt.Printf("Rules: health=%d ammo=%d round=%v rounds=%d win=%d restart=%v cooldown=%v (enforced: %t) status=%v\n",
		rules.MaxHealth, rules.MaxAmmo, rules.RoundDuration, rules.MaxRounds, rules.WinScore,
		rules.RestartDelay, rules.ThrowCooldown, rules.EnforceCooldown, rules.StatusInterval)
	fmt.Printf("Arena: tick=%v log=%s bots=%d spectate=%q rate=%.1f/s burst=%d\n",
		tick, cfg.Arena.LogLevel, cfg.Arena.Bots, cfg.Arena.SpectateAddr,
		cfg.Arena.SpectateRate, cfg.Arena.SpectateBurst)
	fmt.Printf("Simulation: matches=%d players=%d hit=%.2f flight=%s seed=%d workers=%d\n",
		cfg.Simulation.Matches, cfg.Simulation.Players, cfg.Simulation.HitChance,
		cfg.Simulation.FlightTime, cfg.Simulation.Seed, cfg.Simulation.Workers)
	fmt.Println("Configuration OK")
	return nil
}
