package arena

import (
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/randutil"
)

// Config tunes the simulated arena
type Config struct {
	HitChance  float64       // probability a landing snowball finds a target
	FlightTime time.Duration // time between throw and landing
	Think      time.Duration // average delay between bot actions
}

// DefaultConfig returns a config that produces quick, decisive rounds
func DefaultConfig() Config {
	return Config{
		HitChance:  0.4,
		FlightTime: 400 * time.Millisecond,
		Think:      300 * time.Millisecond,
	}
}

// Arena bundles the physics model with a set of bots
type Arena struct {
	config  Config
	rng     *rand.Rand
	physics *Physics
	bots    []*Bot
}

// New creates an arena. rng drives both physics and bots.
func New(config Config, rng *rand.Rand, logger *log.Logger) *Arena {
	return &Arena{
		config:  config,
		rng:     rng,
		physics: NewPhysics(rng, config.HitChance, config.FlightTime, logger),
	}
}

// Attach subscribes the physics model to the session's throws
func (a *Arena) Attach(s *match.Session) {
	s.Subscribe(a.physics)
}

// Physics returns the physics model
func (a *Arena) Physics() *Physics { return a.physics }

// Bots returns the bots in the order they were added
func (a *Arena) Bots() []*Bot { return a.bots }

// AddBot joins a new player driven by a bot
func (a *Arena) AddBot(s *match.Session, id string, now time.Time) *Bot {
	s.Join(id, now)
	bot := NewBot(id, randutil.New(a.rng.Int64()), a.config.Think)
	a.bots = append(a.bots, bot)
	return bot
}

// Step lets every bot act, then lands due snowballs
func (a *Arena) Step(s *match.Session, now time.Time) {
	for _, b := range a.bots {
		b.Act(s, now)
	}
	a.physics.Land(s, now)
}
