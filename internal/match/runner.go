package match

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultTickInterval is the cadence at which a Runner polls the session
const DefaultTickInterval = 50 * time.Millisecond

// Runner drives a Session from a clock. Input, hit and tick calls may come
// from different goroutines; the runner serializes them so the session only
// ever sees one caller at a time.
type Runner struct {
	mu       sync.Mutex
	session  *Session
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger
	hooks    []func(s *Session, now time.Time)
}

// NewRunner creates a runner ticking every interval
func NewRunner(session *Session, clock quartz.Clock, interval time.Duration, logger *log.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		session:  session,
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("runner"),
	}
}

// Start registers the tick loop and returns immediately. The returned
// waiter completes when ctx is done.
func (r *Runner) Start(ctx context.Context) quartz.Waiter {
	r.logger.Debug("Starting tick loop", "interval", r.interval)
	return r.clock.TickerFunc(ctx, r.interval, func() error {
		r.Tick()
		return nil
	}, "runner", "tick")
}

// Run ticks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	err := r.Start(ctx).Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Do runs fn with exclusive access to the session
func (r *Runner) Do(fn func(s *Session, now time.Time)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.session, r.clock.Now("runner", "now"))
}

// BeforeTick registers fn to run ahead of every session tick, under the
// same lock. Register hooks before Start.
func (r *Runner) BeforeTick(fn func(s *Session, now time.Time)) {
	r.hooks = append(r.hooks, fn)
}

// Tick runs the tick hooks and advances the session by one tick
func (r *Runner) Tick() {
	r.Do(func(s *Session, now time.Time) {
		for _, hook := range r.hooks {
			hook(s, now)
		}
		s.Tick(now)
	})
}

// StartMatch begins a new match
func (r *Runner) StartMatch() {
	r.Do(func(s *Session, now time.Time) { s.StartMatch(now) })
}

// Join adds a player
func (r *Runner) Join(id string) {
	r.Do(func(s *Session, now time.Time) { s.Join(id, now) })
}

// Leave removes a player
func (r *Runner) Leave(id string) {
	r.Do(func(s *Session, now time.Time) { s.Leave(id) })
}

// Throw forwards a throw action
func (r *Runner) Throw(id string) (ok bool) {
	r.Do(func(s *Session, now time.Time) { ok = s.Throw(id, now) })
	return ok
}

// Refill forwards a refill action
func (r *Runner) Refill(id string) (ok bool) {
	r.Do(func(s *Session, now time.Time) { ok = s.Refill(id, now) })
	return ok
}

// Hit forwards a hit from the physics layer
func (r *Runner) Hit(attackerID, targetID string) (result HitResult) {
	r.Do(func(s *Session, now time.Time) { result = s.Hit(attackerID, targetID, now) })
	return result
}

// Snapshot returns the current match state
func (r *Runner) Snapshot() (snap Snapshot) {
	r.Do(func(s *Session, now time.Time) { snap = s.Snapshot(now) })
	return snap
}
