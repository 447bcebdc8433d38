package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/snowbattle/internal/display"
)

type statusMsg struct{ label display.Label }

type noticeMsg struct{ notice display.Notice }

type announceMsg struct{ announcement display.Announcement }

type clearNoticeMsg struct{ seq int }

// Sink forwards the local player's overlay and every announcement into a
// running program as messages
type Sink struct {
	mu       sync.Mutex
	playerID string
	send     func(tea.Msg)
}

// NewSink creates a sink for the player shown on this terminal
func NewSink(playerID string) *Sink {
	return &Sink{playerID: playerID}
}

// Attach sets where messages go, typically tea.Program.Send
func (s *Sink) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *Sink) ShowStatus(playerID string, label display.Label) {
	if playerID == s.playerID {
		s.emit(statusMsg{label: label})
	}
}

func (s *Sink) ShowNotice(playerID string, notice display.Notice) {
	if playerID == s.playerID {
		s.emit(noticeMsg{notice: notice})
	}
}

func (s *Sink) Announce(announcement display.Announcement) {
	s.emit(announceMsg{announcement: announcement})
}

func (s *Sink) emit(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
