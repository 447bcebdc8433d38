package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/snowbattle/internal/display"
	"github.com/lox/snowbattle/internal/match"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1F4E79")).
			Bold(true).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#000000")).
			Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	RedTeamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlueTeamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAFF")).
			Bold(true)

	EliminatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	BorderColor  = lipgloss.Color("#626262")
	FocusedColor = lipgloss.Color("#04B575")
)

// TeamStyle returns the style used for a team's players
func TeamStyle(t match.Team) lipgloss.Style {
	if t == match.Red {
		return RedTeamStyle
	}
	return BlueTeamStyle
}

// AnnouncementStyle renders an announcement in its own colour
func AnnouncementStyle(c display.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%06x", uint32(c)))).
		Bold(true)
}
