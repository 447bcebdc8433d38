package display

import (
	"github.com/charmbracelet/log"
	"github.com/lox/snowbattle/internal/match"
)

// Presenter turns match events into sink output. It is the only bridge
// between the match core and any screen.
type Presenter struct {
	sink   Sink
	names  func(playerID string) string
	logger *log.Logger
}

// PresenterOption configures a Presenter
type PresenterOption func(*Presenter)

// WithNames sets how player ids are turned into display names
func WithNames(names func(playerID string) string) PresenterOption {
	return func(p *Presenter) { p.names = names }
}

// NewPresenter creates a presenter writing to sink
func NewPresenter(sink Sink, logger *log.Logger, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		sink:   sink,
		names:  func(id string) string { return id },
		logger: logger.WithPrefix("display"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnEvent implements match.EventSubscriber
func (p *Presenter) OnEvent(event match.GameEvent) {
	switch e := event.(type) {
	case match.RoundStartEvent:
		p.sink.Announce(RoundStartAnnouncement(e.Round))
	case match.RoundEndEvent:
		p.sink.Announce(RoundWinnerAnnouncement(e.Outcome.Winner))
	case match.MatchEndEvent:
		p.sink.Announce(MatchWinnerAnnouncement(e.Winner))
		if e.MVP != nil {
			p.sink.Announce(MVPAnnouncement(p.names(e.MVP.PlayerID), e.MVP.Kills))
		}
	case match.NoticeEvent:
		p.sink.ShowNotice(e.PlayerID, NoticeFor(e.Kind))
	case match.StateChangedEvent:
		p.sink.ShowStatus(e.Status.PlayerID, StatusLabel(e.Status))
	case match.StatusRefreshEvent:
		for _, s := range e.Statuses {
			p.sink.ShowStatus(s.PlayerID, StatusLabel(s))
		}
	case match.EliminationEvent, match.ThrowEvent:
		// carried by the notice and state events
	default:
		p.logger.Debug("Ignoring event", "type", event.EventType())
	}
}
