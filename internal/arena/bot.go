package arena

import (
	rand "math/rand/v2"
	"time"

	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/randutil"
)

// Bot is a player that throws whenever it can and refills when empty.
// Decisions are spaced by a jittered think time.
type Bot struct {
	id    string
	rng   *rand.Rand
	think time.Duration
	next  time.Time
}

// NewBot creates a bot controlling the player id
func NewBot(id string, rng *rand.Rand, think time.Duration) *Bot {
	return &Bot{id: id, rng: rng, think: think}
}

// ID returns the player the bot controls
func (b *Bot) ID() string { return b.id }

// Act lets the bot take at most one action
func (b *Bot) Act(s *match.Session, now time.Time) {
	if !s.RoundActive() || now.Before(b.next) {
		return
	}
	p, ok := s.Registry().Lookup(b.id)
	if !ok || !p.Present || !p.Alive {
		return
	}

	b.next = now.Add(randutil.Jitter(b.rng, b.think))
	if p.Ammo == 0 {
		s.Refill(b.id, now)
		return
	}
	s.Throw(b.id, now)
}
