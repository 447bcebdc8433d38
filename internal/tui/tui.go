package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/snowbattle/internal/display"
	"github.com/lox/snowbattle/internal/match"
)

const (
	snapshotInterval = 250 * time.Millisecond
	sidebarWidth     = 28
)

// Controller is the part of match.Runner the terminal drives
type Controller interface {
	StartMatch()
	Throw(playerID string) bool
	Refill(playerID string) bool
	Snapshot() match.Snapshot
}

type snapshotMsg struct{ snap match.Snapshot }

// Model is the Bubble Tea model for one local player in the arena
type Model struct {
	controller Controller
	playerID   string
	logger     *log.Logger

	// UI components
	logViewport viewport.Model

	// State
	announcements []string
	status        display.Label
	hasStatus     bool
	notice        string
	noticeSeq     int
	snapshot      match.Snapshot
	quitting      bool
	autoStart     bool

	// Dimensions
	width  int
	height int

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewModel creates a model for playerID
func NewModel(controller Controller, playerID string, logger *log.Logger) *Model {
	return NewModelWithOptions(controller, playerID, logger, false)
}

// NewModelWithOptions creates a model with test mode option. In test mode
// announcements are captured as plain text.
func NewModelWithOptions(controller Controller, playerID string, logger *log.Logger, testMode bool) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		controller:  controller,
		playerID:    playerID,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		testMode:    testMode,
	}
}

// SetAutoStart makes the model start a match as soon as the program runs
func (m *Model) SetAutoStart(autoStart bool) {
	m.autoStart = autoStart
}

// Init starts the snapshot poll, and the match if requested
func (m *Model) Init() tea.Cmd {
	if m.autoStart {
		return m.startMatch
	}
	return m.fetchSnapshot
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case statusMsg:
		m.status = msg.label
		m.hasStatus = true

	case noticeMsg:
		m.notice = msg.notice.Text
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Tick(msg.notice.Duration, func(time.Time) tea.Msg {
			return clearNoticeMsg{seq: seq}
		})

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}

	case announceMsg:
		m.AddAnnouncement(msg.announcement)

	case snapshotMsg:
		m.snapshot = msg.snap
		return m, tea.Tick(snapshotInterval, func(time.Time) tea.Msg {
			return m.fetchSnapshot()
		})
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	case "z", " ":
		return m.throw
	case "k":
		return m.refill
	case "n":
		if !m.snapshot.Running {
			return m.startMatch
		}
	case "up", "pgup", "down", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return cmd
	}
	return nil
}

// Runner calls happen in commands so the event loop never waits on the
// match lock while a tick is publishing into the program.
func (m *Model) throw() tea.Msg {
	m.controller.Throw(m.playerID)
	return nil
}

func (m *Model) refill() tea.Msg {
	m.controller.Refill(m.playerID)
	return nil
}

func (m *Model) startMatch() tea.Msg {
	m.controller.StartMatch()
	return m.fetchSnapshot()
}

func (m *Model) fetchSnapshot() tea.Msg {
	return snapshotMsg{snap: m.controller.Snapshot()}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Width(m.width).Render(m.renderHeader())
	bottom := m.renderBottomPane()

	paneHeight := m.height - lipgloss.Height(header) - lipgloss.Height(bottom) - 2
	if paneHeight < 1 {
		paneHeight = 1
	}
	logWidth := m.width - sidebarWidth - 4
	if logWidth < 1 {
		logWidth = 1
	}

	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusedColor).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	sidebar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebar())

	middle := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, middle, bottom)
}

func (m *Model) renderHeader() string {
	s := m.snapshot
	if !s.Running && s.Round == 0 {
		return "❄ Snowbattle ❄  waiting for match"
	}
	return fmt.Sprintf("❄ Snowbattle ❄  Round %d/%d  %s %d : %d %s  %ds",
		s.Round, s.MaxRounds,
		TeamStyle(match.Red).Render("RED"), s.ScoreRed,
		s.ScoreBlue, TeamStyle(match.Blue).Render("BLUE"),
		s.SecondsRemaining)
}

func (m *Model) renderSidebar() string {
	var content strings.Builder
	content.WriteString(InfoStyle.Render("Players:"))
	content.WriteString("\n")

	for _, p := range m.snapshot.Players {
		name := p.PlayerID
		if p.PlayerID == m.playerID {
			name += " (you)"
		}
		line := fmt.Sprintf("%s %d/%d", name, p.Kills, p.Deaths)
		if p.Alive {
			line = TeamStyle(p.Team).Render(line)
		} else {
			line = EliminatedStyle.Render(line)
		}
		content.WriteString("  " + line + "\n")
	}
	return content.String()
}

func (m *Model) renderBottomPane() string {
	var content strings.Builder
	if m.hasStatus {
		content.WriteString(StatusStyle.Render(m.status.Text))
		content.WriteString("\n")
	}
	if m.notice != "" {
		content.WriteString(NoticeStyle.Render(m.notice))
		content.WriteString("\n")
	}

	help := "z/space throw • k refill • ↑↓ scroll • q quit"
	if !m.snapshot.Running {
		help = "n new match • q quit"
	}
	content.WriteString(InfoStyle.Render(help))
	return content.String()
}

// AddAnnouncement appends an announcement to the log pane
func (m *Model) AddAnnouncement(a display.Announcement) {
	m.announcements = append(m.announcements, AnnouncementStyle(a.Color).Render(a.Text))

	if m.testMode {
		m.capturedLog = append(m.capturedLog, a.Text)
		return
	}

	m.logViewport.SetContent(strings.Join(m.announcements, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Status returns the overlay currently shown, if any
func (m *Model) Status() (display.Label, bool) {
	return m.status, m.hasStatus
}

// Notice returns the notice currently shown
func (m *Model) Notice() string {
	return m.notice
}

// GetCapturedLog returns the captured announcements (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// Run shows the model until the player quits or ctx is done. sink is
// attached to the program for the duration of the run.
func Run(ctx context.Context, m *Model, sink *Sink, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(m, opts...)

	sink.Attach(program.Send)
	defer sink.Attach(nil)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
