package match

import (
	"time"
)

// RoundPhase is the lifecycle state of the round controller
type RoundPhase int

const (
	PhaseIdle RoundPhase = iota
	PhaseActive
	PhaseEnding
)

// String returns the string representation of a round phase
func (p RoundPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnding:
		return "ending"
	default:
		return "unknown"
	}
}

// EndReason records what triggered the end of a round
type EndReason string

const (
	EndElimination EndReason = "elimination"
	EndTimeout     EndReason = "timeout"
	EndAborted     EndReason = "aborted"
)

// RoundOutcome is the scored result of a finished round
type RoundOutcome struct {
	Winner    Winner
	RedAlive  int
	BlueAlive int
	Reason    EndReason
}

// Rounds drives a single round from start to outcome
type Rounds struct {
	rules    Rules
	registry *Registry
	phase    RoundPhase
	deadline time.Time
}

// NewRounds creates an idle round controller
func NewRounds(rules Rules, registry *Registry) *Rounds {
	return &Rounds{
		rules:    rules,
		registry: registry,
		phase:    PhaseIdle,
	}
}

// Phase returns the current phase
func (r *Rounds) Phase() RoundPhase {
	return r.phase
}

// Active reports whether a round is running
func (r *Rounds) Active() bool {
	return r.phase == PhaseActive
}

// Deadline returns the time at which the current or last round times out
func (r *Rounds) Deadline() time.Time {
	return r.deadline
}

// Start resets every present player and opens a new round. It only works
// from the idle phase.
func (r *Rounds) Start(now time.Time) bool {
	if r.phase != PhaseIdle {
		return false
	}

	for _, p := range r.registry.Players() {
		r.registry.ResetForRound(p.ID)
	}

	r.phase = PhaseActive
	r.deadline = now.Add(r.rules.RoundDuration)
	return true
}

// Poll checks the end conditions. A round ends on timeout, or once either
// team has no alive players (both at once included).
func (r *Rounds) Poll(now time.Time) (RoundOutcome, bool) {
	if r.phase != PhaseActive {
		return RoundOutcome{}, false
	}

	if now.After(r.deadline) {
		return r.End(EndTimeout)
	}

	if r.registry.CountAliveByTeam().AnyTeamEliminated() {
		return r.End(EndElimination)
	}

	return RoundOutcome{}, false
}

// End closes the active round and scores it from a fresh alive count.
// Calling End on a round that is not active does nothing.
func (r *Rounds) End(reason EndReason) (RoundOutcome, bool) {
	if r.phase != PhaseActive {
		return RoundOutcome{}, false
	}
	r.phase = PhaseEnding

	count := r.registry.CountAliveByTeam()
	outcome := RoundOutcome{
		Winner:    count.Winner(),
		RedAlive:  count.Red,
		BlueAlive: count.Blue,
		Reason:    reason,
	}

	r.phase = PhaseIdle
	return outcome, true
}
