package match

import (
	"time"

	"github.com/charmbracelet/log"
)

// Session owns one running match: the player registry, the round and match
// controllers, deferred work and the outbound event bus. It is not safe for
// concurrent use; live drivers serialize access through Runner.
type Session struct {
	rules     Rules
	logger    *log.Logger
	bus       EventBus
	registry  *Registry
	combat    *Combat
	rounds    *Rounds
	match     *Match
	scheduler *Scheduler

	restart    *Task
	lastStatus time.Time
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithEventBus replaces the default in-memory bus
func WithEventBus(bus EventBus) SessionOption {
	return func(s *Session) { s.bus = bus }
}

// NewSession creates an idle session
func NewSession(rules Rules, logger *log.Logger, opts ...SessionOption) *Session {
	registry := NewRegistry(rules)
	s := &Session{
		rules:     rules,
		logger:    logger.WithPrefix("match"),
		bus:       NewEventBus(),
		registry:  registry,
		combat:    NewCombat(registry),
		rounds:    NewRounds(rules, registry),
		match:     NewMatch(rules),
		scheduler: NewScheduler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the rules the session was created with
func (s *Session) Rules() Rules { return s.rules }

// Subscribe registers an event subscriber
func (s *Session) Subscribe(sub EventSubscriber) { s.bus.Subscribe(sub) }

// Registry exposes the player registry
func (s *Session) Registry() *Registry { return s.registry }

// Running reports whether the match is in progress
func (s *Session) Running() bool { return s.match.Running }

// RoundActive reports whether a round is in progress
func (s *Session) RoundActive() bool { return s.rounds.Active() }

// CurrentRound returns the round counter
func (s *Session) CurrentRound() int { return s.match.CurrentRound }

// Score returns the red and blue scores
func (s *Session) Score() (red, blue int) { return s.match.ScoreRed, s.match.ScoreBlue }

// RestartPending reports whether a next round is scheduled
func (s *Session) RestartPending() bool { return s.restart.Pending() }

// Join adds a player to the arena. New players take the next team.
func (s *Session) Join(id string, now time.Time) *PlayerState {
	p := s.registry.Join(id)
	s.logger.Debug("Player joined", "player", id, "team", p.Team)
	if s.match.Running {
		s.publishState(p, now)
	}
	return p
}

// Leave removes a player from the arena while keeping their record
func (s *Session) Leave(id string) {
	if s.registry.Leave(id) {
		s.logger.Debug("Player left", "player", id)
	}
}

// StartMatch resets the score and counters and begins round one. Any round
// restart still pending from an earlier match is cancelled.
func (s *Session) StartMatch(now time.Time) {
	s.restart.Cancel()
	s.restart = nil

	if _, ok := s.rounds.End(EndAborted); ok {
		s.logger.Warn("Aborted active round for new match")
	}

	s.match.Start()
	s.registry.ResetStats()
	s.logger.Info("Match started", "players", len(s.registry.Players()))
	s.startRound(now)
}

// Throw spends one snowball. It is ignored outside an active round or for a
// dead player and refused with a notice when the player has no ammo.
func (s *Session) Throw(id string, now time.Time) bool {
	if !s.match.Running || !s.rounds.Active() {
		return false
	}

	p := s.registry.GetOrCreate(id)
	if !p.Alive {
		return false
	}

	if s.rules.EnforceCooldown && !p.LastThrow.IsZero() && now.Sub(p.LastThrow) < s.rules.ThrowCooldown {
		s.notice(p.ID, NoticeCooldown, now)
		return false
	}

	if p.Ammo <= 0 {
		s.notice(p.ID, NoticeNoAmmo, now)
		return false
	}

	p.Ammo--
	p.LastThrow = now
	s.bus.Publish(ThrowEvent{PlayerID: p.ID, Team: p.Team, timestamp: now})
	s.publishState(p, now)
	return true
}

// Refill restores a player's ammo to the maximum
func (s *Session) Refill(id string, now time.Time) bool {
	if !s.match.Running || !s.rounds.Active() {
		return false
	}

	p := s.registry.GetOrCreate(id)
	if !p.Alive {
		return false
	}

	if p.Ammo >= s.rules.MaxAmmo {
		s.notice(p.ID, NoticeAmmoFull, now)
		return false
	}

	p.Ammo = s.rules.MaxAmmo
	s.notice(p.ID, NoticeRefilled, now)
	s.publishState(p, now)
	return true
}

// Hit applies a snowball from attacker landing on target. Hits arriving
// while no round is active are dropped.
func (s *Session) Hit(attackerID, targetID string, now time.Time) HitResult {
	if !s.match.Running || !s.rounds.Active() {
		return HitResult{}
	}

	result := s.combat.ApplyHit(attackerID, targetID)
	if !result.Applied {
		return result
	}

	if result.Eliminated {
		s.logger.Info("Player eliminated", "attacker", attackerID, "target", targetID)
		s.bus.Publish(EliminationEvent{AttackerID: attackerID, TargetID: targetID, timestamp: now})
		s.notice(targetID, NoticeEliminated, now)
	}

	s.publishState(result.Attacker, now)
	s.publishState(result.Target, now)
	return result
}

// Tick runs due deferred work, checks the round end conditions and pushes
// the periodic overlay refresh
func (s *Session) Tick(now time.Time) {
	s.scheduler.RunDue(now)

	if !s.match.Running {
		return
	}

	if outcome, ok := s.rounds.Poll(now); ok {
		s.endRound(outcome, now)
	}

	if s.match.Running && now.Sub(s.lastStatus) >= s.rules.StatusInterval {
		s.refreshStatus(now)
	}
}

// EndRound forces the active round to end, as a timeout would
func (s *Session) EndRound(now time.Time) bool {
	outcome, ok := s.rounds.End(EndTimeout)
	if !ok {
		return false
	}
	s.endRound(outcome, now)
	return true
}

// Status returns the overlay payload for one player
func (s *Session) Status(id string, now time.Time) (Status, bool) {
	p, ok := s.registry.Lookup(id)
	if !ok {
		return Status{}, false
	}
	return s.status(p, now), true
}

// Snapshot returns the whole match state for display
func (s *Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Round:            s.match.CurrentRound,
		MaxRounds:        s.rules.MaxRounds,
		ScoreRed:         s.match.ScoreRed,
		ScoreBlue:        s.match.ScoreBlue,
		Running:          s.match.Running,
		RoundActive:      s.rounds.Active(),
		SecondsRemaining: secondsRemaining(s.rounds.Deadline(), now),
	}
	for _, p := range s.registry.Players() {
		snap.Players = append(snap.Players, s.status(p, now))
	}
	return snap
}

func (s *Session) startRound(now time.Time) {
	if !s.rounds.Start(now) {
		return
	}

	s.logger.Info("Round started", "round", s.match.CurrentRound, "deadline", s.rounds.Deadline())
	s.bus.Publish(RoundStartEvent{
		Round:     s.match.CurrentRound,
		MaxRounds: s.rules.MaxRounds,
		Deadline:  s.rounds.Deadline(),
		timestamp: now,
	})
	s.refreshStatus(now)
}

func (s *Session) endRound(outcome RoundOutcome, now time.Time) {
	decided := s.match.RecordRound(outcome)

	s.logger.Info("Round ended",
		"round", s.match.CurrentRound,
		"winner", outcome.Winner,
		"reason", outcome.Reason,
		"redAlive", outcome.RedAlive,
		"blueAlive", outcome.BlueAlive,
		"score", [2]int{s.match.ScoreRed, s.match.ScoreBlue})

	s.bus.Publish(RoundEndEvent{
		Round:     s.match.CurrentRound,
		Outcome:   outcome,
		ScoreRed:  s.match.ScoreRed,
		ScoreBlue: s.match.ScoreBlue,
		timestamp: now,
	})

	if decided {
		s.declareMatchWinner(now)
		return
	}

	s.match.AdvanceRound()
	generation := s.match.Generation()
	s.restart = s.scheduler.After(now, s.rules.RestartDelay, func(now time.Time) {
		if !s.match.Running || s.rounds.Active() || s.match.Generation() != generation {
			s.logger.Debug("Skipping stale round restart", "generation", generation)
			return
		}
		s.startRound(now)
	})
}

func (s *Session) declareMatchWinner(now time.Time) {
	winner := s.match.DeclareWinner()
	mvp := FindMVP(s.registry.Players())

	logger := s.logger.With("winner", winner, "scoreRed", s.match.ScoreRed, "scoreBlue", s.match.ScoreBlue)
	if mvp != nil {
		logger = logger.With("mvp", mvp.PlayerID, "kills", mvp.Kills)
	}
	logger.Info("Match over")

	s.bus.Publish(MatchEndEvent{
		Winner:    winner,
		ScoreRed:  s.match.ScoreRed,
		ScoreBlue: s.match.ScoreBlue,
		Rounds:    s.match.CurrentRound,
		MVP:       mvp,
		timestamp: now,
	})
}

func (s *Session) refreshStatus(now time.Time) {
	s.lastStatus = now
	players := s.registry.Players()
	statuses := make([]Status, 0, len(players))
	for _, p := range players {
		statuses = append(statuses, s.status(p, now))
	}
	s.bus.Publish(StatusRefreshEvent{Statuses: statuses, timestamp: now})
}

func (s *Session) publishState(p *PlayerState, now time.Time) {
	s.bus.Publish(StateChangedEvent{Status: s.status(p, now), timestamp: now})
}

func (s *Session) notice(id string, kind NoticeKind, now time.Time) {
	s.bus.Publish(NoticeEvent{PlayerID: id, Kind: kind, timestamp: now})
}

func (s *Session) status(p *PlayerState, now time.Time) Status {
	return Status{
		PlayerID:         p.ID,
		Round:            s.match.CurrentRound,
		MaxRounds:        s.rules.MaxRounds,
		ScoreRed:         s.match.ScoreRed,
		ScoreBlue:        s.match.ScoreBlue,
		Team:             p.Team,
		Health:           p.Health,
		MaxHealth:        s.rules.MaxHealth,
		Ammo:             p.Ammo,
		MaxAmmo:          s.rules.MaxAmmo,
		Kills:            p.Kills,
		Deaths:           p.Deaths,
		Alive:            p.Alive,
		SecondsRemaining: secondsRemaining(s.rounds.Deadline(), now),
	}
}
