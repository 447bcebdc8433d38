// Package match implements the round-based, two-team elimination rules of a
// snowball fight.
//
// The main type is Session, which owns the player registry, the round and
// match controllers and the outbound event bus for one match.
//
// # Basic Usage
//
//	s := match.NewSession(match.DefaultRules(), logger)
//	s.Join("alice", now) // red
//	s.Join("bob", now)   // blue
//	s.StartMatch(now)
//	s.Throw("alice", now)
//	s.Hit("alice", "bob", now)
//	s.Tick(now) // detects elimination or timeout
//
// # Time
//
// Every operation takes an explicit now, so the session never reads a clock
// and tests are deterministic. Runner feeds it from a quartz.Clock for live
// play and serializes access.
//
// # Architecture
//
// Session delegates to specialized components:
//   - Registry: per-player state and alternating team assignment
//   - Combat: hit resolution and elimination
//   - Rounds: round lifecycle and end conditions
//   - Match: score, round counter and winner
//   - Scheduler: deferred round restarts fired from Tick
//
// Subscribers registered on the bus are called synchronously while the
// session is being mutated and must not call back into it.
package match
