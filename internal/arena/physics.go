package arena

import (
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/randutil"
)

type flight struct {
	thrower string
	team    match.Team
	lands   time.Time
}

// Physics turns throws into hits. It records throws as they are published
// and resolves them in Land once their flight time has passed.
type Physics struct {
	rng        *rand.Rand
	hitChance  float64
	flightTime time.Duration
	logger     *log.Logger

	inFlight []flight

	Throws int // snowballs seen leaving a hand
	Hits   int // landings that changed a player's health
}

// NewPhysics creates a physics model
func NewPhysics(rng *rand.Rand, hitChance float64, flightTime time.Duration, logger *log.Logger) *Physics {
	return &Physics{
		rng:        rng,
		hitChance:  hitChance,
		flightTime: flightTime,
		logger:     logger.WithPrefix("physics"),
	}
}

// OnEvent implements match.EventSubscriber
func (p *Physics) OnEvent(event match.GameEvent) {
	throw, ok := event.(match.ThrowEvent)
	if !ok {
		return
	}
	p.Throws++
	p.inFlight = append(p.inFlight, flight{
		thrower: throw.PlayerID,
		team:    throw.Team,
		lands:   throw.Timestamp().Add(p.flightTime),
	})
}

// InFlight returns the number of snowballs still in the air
func (p *Physics) InFlight() int {
	return len(p.inFlight)
}

// Land resolves every snowball due by now and returns how many hit
func (p *Physics) Land(s *match.Session, now time.Time) int {
	var due []flight
	kept := p.inFlight[:0]
	for _, f := range p.inFlight {
		if f.lands.After(now) {
			kept = append(kept, f)
		} else {
			due = append(due, f)
		}
	}
	p.inFlight = kept

	hits := 0
	for _, f := range due {
		target, ok := p.pickTarget(s, f.team)
		if !ok || !randutil.Chance(p.rng, p.hitChance) {
			continue
		}
		if result := s.Hit(f.thrower, target, now); result.Applied {
			hits++
		}
	}
	p.Hits += hits
	if hits > 0 {
		p.logger.Debug("Snowballs landed", "due", len(due), "hits", hits)
	}
	return hits
}

func (p *Physics) pickTarget(s *match.Session, team match.Team) (string, bool) {
	var targets []string
	for _, pl := range s.Registry().Players() {
		if pl.Alive && pl.Team != team {
			targets = append(targets, pl.ID)
		}
	}
	if len(targets) == 0 {
		return "", false
	}
	return targets[p.rng.IntN(len(targets))], true
}
