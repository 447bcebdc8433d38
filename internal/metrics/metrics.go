// Package metrics exposes match activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/snowbattle/internal/match"
)

// Metrics counts match events and spectator traffic. Labels are bounded:
// teams, end reasons and rejection reasons only, never player ids.
type Metrics struct {
	registry *prometheus.Registry

	rounds       *prometheus.CounterVec
	matches      *prometheus.CounterVec
	eliminations prometheus.Counter
	throws       prometheus.Counter
	roundActive  prometheus.Gauge

	spectators prometheus.Gauge
	frames     prometheus.Counter
	rejected   *prometheus.CounterVec
}

// New creates metrics on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snowbattle_rounds_total",
			Help: "Rounds ended, by winner and end reason",
		}, []string{"winner", "reason"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snowbattle_matches_total",
			Help: "Matches completed, by winning team",
		}, []string{"winner"}),
		eliminations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snowbattle_eliminations_total",
			Help: "Players eliminated",
		}),
		throws: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snowbattle_throws_total",
			Help: "Snowballs thrown",
		}),
		roundActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snowbattle_round_active",
			Help: "1 while a round is in progress",
		}),
		spectators: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snowbattle_spectators",
			Help: "Connected spectators",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snowbattle_spectator_frames_total",
			Help: "Frames queued to spectators",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snowbattle_spectator_rejected_total",
			Help: "Spectator requests rejected",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		m.rounds, m.matches, m.eliminations, m.throws, m.roundActive,
		m.spectators, m.frames, m.rejected,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OnEvent implements match.EventSubscriber
func (m *Metrics) OnEvent(event match.GameEvent) {
	switch e := event.(type) {
	case match.RoundStartEvent:
		m.roundActive.Set(1)
	case match.RoundEndEvent:
		m.roundActive.Set(0)
		m.rounds.WithLabelValues(e.Outcome.Winner.String(), string(e.Outcome.Reason)).Inc()
	case match.MatchEndEvent:
		m.matches.WithLabelValues(e.Winner.String()).Inc()
	case match.EliminationEvent:
		m.eliminations.Inc()
	case match.ThrowEvent:
		m.throws.Inc()
	}
}

// SpectatorConnected records a new spectator
func (m *Metrics) SpectatorConnected() { m.spectators.Inc() }

// SpectatorDisconnected records a spectator leaving
func (m *Metrics) SpectatorDisconnected() { m.spectators.Dec() }

// FrameSent records a frame queued to a spectator
func (m *Metrics) FrameSent() { m.frames.Inc() }

// Rejected records a refused spectator request
func (m *Metrics) Rejected(reason string) { m.rejected.WithLabelValues(reason).Inc() }
