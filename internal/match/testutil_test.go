package match

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var testStart = time.Date(2025, time.December, 24, 18, 0, 0, 0, time.UTC)

// eventRecorder captures published events for assertions
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

func (r *eventRecorder) notices(playerID string) []NoticeKind {
	var out []NoticeKind
	for _, e := range r.ofType(EventTypeNotice) {
		n := e.(NoticeEvent)
		if n.PlayerID == playerID {
			out = append(out, n.Kind)
		}
	}
	return out
}

func (r *eventRecorder) reset() {
	r.events = nil
}

type testSessionBuilder struct {
	rules   Rules
	players []string
	start   bool
}

// TestSessionOption configures test session creation
type TestSessionOption func(*testSessionBuilder)

func withRules(fn func(*Rules)) TestSessionOption {
	return func(b *testSessionBuilder) { fn(&b.rules) }
}

func withPlayers(ids ...string) TestSessionOption {
	return func(b *testSessionBuilder) { b.players = ids }
}

func started() TestSessionOption {
	return func(b *testSessionBuilder) { b.start = true }
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestSession creates a session with a recorder subscribed, players
// joined at testStart and optionally the match started
func newTestSession(t *testing.T, opts ...TestSessionOption) (*Session, *eventRecorder) {
	t.Helper()

	b := &testSessionBuilder{rules: DefaultRules()}
	for _, opt := range opts {
		opt(b)
	}

	s := NewSession(b.rules, testLogger())
	rec := &eventRecorder{}
	s.Subscribe(rec)

	for _, id := range b.players {
		s.Join(id, testStart)
	}
	if b.start {
		s.StartMatch(testStart)
	}
	return s, rec
}

func at(d time.Duration) time.Time {
	return testStart.Add(d)
}

func eliminate(s *Session, attackerID, targetID string, now time.Time) {
	for i := 0; i < s.Rules().MaxHealth; i++ {
		s.Hit(attackerID, targetID, now)
	}
}
