// Package config loads snowbattle settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/snowbattle/internal/match"
)

// Config represents the complete snowbattle configuration
type Config struct {
	Rules      RulesConfig      `hcl:"rules,block"`
	Arena      ArenaConfig      `hcl:"arena,block"`
	Simulation SimulationConfig `hcl:"simulation,block"`
}

// RulesConfig holds the match constants. Durations use Go duration syntax.
type RulesConfig struct {
	MaxHealth       int    `hcl:"max_health,optional"`
	MaxAmmo         int    `hcl:"max_ammo,optional"`
	RoundDuration   string `hcl:"round_duration,optional"`
	MaxRounds       int    `hcl:"max_rounds,optional"`
	WinScore        int    `hcl:"win_score,optional"`
	RestartDelay    string `hcl:"restart_delay,optional"`
	ThrowCooldown   string `hcl:"throw_cooldown,optional"`
	EnforceCooldown bool   `hcl:"enforce_cooldown,optional"`
	StatusInterval  string `hcl:"status_interval,optional"`
}

// ArenaConfig configures the live arena
type ArenaConfig struct {
	TickInterval string `hcl:"tick_interval,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	SpectateAddr string `hcl:"spectate_addr,optional"`
	Bots         int    `hcl:"bots,optional"`

	// Spectator feed HTTP settings, unused unless spectate_addr is set
	SpectateOrigins []string `hcl:"spectate_origins,optional"`
	SpectateRate    float64  `hcl:"spectate_rate,optional"`
	SpectateBurst   int      `hcl:"spectate_burst,optional"`
}

// SimulationConfig configures headless batch runs
type SimulationConfig struct {
	Matches    int     `hcl:"matches,optional"`
	Players    int     `hcl:"players,optional"`
	HitChance  float64 `hcl:"hit_chance,optional"`
	FlightTime string  `hcl:"flight_time,optional"`
	Seed       int64   `hcl:"seed,optional"`
	Workers    int     `hcl:"workers,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	rules := match.DefaultRules()
	return &Config{
		Rules: RulesConfig{
			MaxHealth:      rules.MaxHealth,
			MaxAmmo:        rules.MaxAmmo,
			RoundDuration:  rules.RoundDuration.String(),
			MaxRounds:      rules.MaxRounds,
			WinScore:       rules.WinScore,
			RestartDelay:   rules.RestartDelay.String(),
			ThrowCooldown:  rules.ThrowCooldown.String(),
			StatusInterval: rules.StatusInterval.String(),
		},
		Arena: ArenaConfig{
			TickInterval:  match.DefaultTickInterval.String(),
			LogLevel:      "info",
			Bots:          3,
			SpectateRate:  2,
			SpectateBurst: 5,
		},
		Simulation: SimulationConfig{
			Matches:    100,
			Players:    6,
			HitChance:  0.4,
			FlightTime: "400ms",
			Seed:       1,
			Workers:    4,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; attributes left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	d := Default()

	setInt(&c.Rules.MaxHealth, d.Rules.MaxHealth)
	setInt(&c.Rules.MaxAmmo, d.Rules.MaxAmmo)
	setString(&c.Rules.RoundDuration, d.Rules.RoundDuration)
	setInt(&c.Rules.MaxRounds, d.Rules.MaxRounds)
	setInt(&c.Rules.WinScore, d.Rules.WinScore)
	setString(&c.Rules.RestartDelay, d.Rules.RestartDelay)
	setString(&c.Rules.ThrowCooldown, d.Rules.ThrowCooldown)
	setString(&c.Rules.StatusInterval, d.Rules.StatusInterval)

	setString(&c.Arena.TickInterval, d.Arena.TickInterval)
	setString(&c.Arena.LogLevel, d.Arena.LogLevel)
	setInt(&c.Arena.SpectateBurst, d.Arena.SpectateBurst)
	if c.Arena.SpectateRate == 0 {
		c.Arena.SpectateRate = d.Arena.SpectateRate
	}

	setInt(&c.Simulation.Matches, d.Simulation.Matches)
	setInt(&c.Simulation.Players, d.Simulation.Players)
	setString(&c.Simulation.FlightTime, d.Simulation.FlightTime)
	setInt(&c.Simulation.Workers, d.Simulation.Workers)
	if c.Simulation.HitChance == 0 {
		c.Simulation.HitChance = d.Simulation.HitChance
	}
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if _, err := c.ToRules(); err != nil {
		return err
	}

	if _, err := c.TickInterval(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Arena.LogLevel); err != nil {
		return fmt.Errorf("arena: invalid log level %q", c.Arena.LogLevel)
	}
	if c.Arena.Bots < 0 {
		return fmt.Errorf("arena: bots must not be negative")
	}
	if c.Arena.SpectateRate < 0 || c.Arena.SpectateBurst < 0 {
		return fmt.Errorf("arena: spectate rate and burst must not be negative")
	}

	if c.Simulation.Matches < 1 {
		return fmt.Errorf("simulation: matches must be positive")
	}
	if c.Simulation.Players < 2 {
		return fmt.Errorf("simulation: at least two players are required")
	}
	if c.Simulation.HitChance < 0 || c.Simulation.HitChance > 1 {
		return fmt.Errorf("simulation: hit chance must be between 0 and 1")
	}
	if _, err := c.FlightTime(); err != nil {
		return err
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive")
	}

	return nil
}

// ToRules converts the rules block into match rules
func (c *Config) ToRules() (match.Rules, error) {
	r := c.Rules
	rules := match.Rules{
		MaxHealth:       r.MaxHealth,
		MaxAmmo:         r.MaxAmmo,
		MaxRounds:       r.MaxRounds,
		WinScore:        r.WinScore,
		EnforceCooldown: r.EnforceCooldown,
	}

	var err error
	if rules.RoundDuration, err = parseDuration("rules.round_duration", r.RoundDuration); err != nil {
		return match.Rules{}, err
	}
	if rules.RestartDelay, err = parseDuration("rules.restart_delay", r.RestartDelay); err != nil {
		return match.Rules{}, err
	}
	if rules.ThrowCooldown, err = parseDuration("rules.throw_cooldown", r.ThrowCooldown); err != nil {
		return match.Rules{}, err
	}
	if rules.StatusInterval, err = parseDuration("rules.status_interval", r.StatusInterval); err != nil {
		return match.Rules{}, err
	}

	switch {
	case rules.MaxHealth < 1:
		return match.Rules{}, fmt.Errorf("rules: max health must be positive")
	case rules.MaxAmmo < 1:
		return match.Rules{}, fmt.Errorf("rules: max ammo must be positive")
	case rules.WinScore < 1:
		return match.Rules{}, fmt.Errorf("rules: win score must be positive")
	case rules.MaxRounds < 1:
		return match.Rules{}, fmt.Errorf("rules: max rounds must be positive")
	case rules.RoundDuration <= 0:
		return match.Rules{}, fmt.Errorf("rules: round duration must be positive")
	}

	return rules, nil
}

// TickInterval returns the arena tick cadence
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := parseDuration("arena.tick_interval", c.Arena.TickInterval)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("arena: tick interval must be positive")
	}
	return d, nil
}

// FlightTime returns how long a simulated snowball is in the air
func (c *Config) FlightTime() (time.Duration, error) {
	return parseDuration("simulation.flight_time", c.Simulation.FlightTime)
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must not be negative", field)
	}
	return d, nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
