package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/snowbattle/internal/match"
)

// Overlay placement and lifetime, refreshed well before it expires
const (
	labelOffsetX  = -40
	labelOffsetY  = 200
	labelScale    = 0.6
	labelDuration = 500 * time.Millisecond

	noticeDuration = 800 * time.Millisecond
)

// FormatStatus renders the four-line overlay for one player
func FormatStatus(s match.Status) string {
	hp := bar("❤️", "🤍", s.Health, s.MaxHealth)
	ammo := bar("❄️", "🤍", s.Ammo, s.MaxAmmo)

	var b strings.Builder
	fmt.Fprintf(&b, "Round %d/%d　  %d : %d\n", s.Round, s.MaxRounds, s.ScoreRed, s.ScoreBlue)
	b.WriteString(TeamLabel(s.Team) + "\n")
	fmt.Fprintf(&b, "HP: %s　Ammo: %s\n", hp, ammo)
	fmt.Fprintf(&b, "K:%d / D:%d　 Time:%ds", s.Kills, s.Deaths, s.SecondsRemaining)
	return b.String()
}

// StatusLabel wraps FormatStatus with the overlay display parameters
func StatusLabel(s match.Status) Label {
	return Label{
		Text:       FormatStatus(s),
		Foreground: White,
		Background: Black,
		OffsetX:    labelOffsetX,
		OffsetY:    labelOffsetY,
		Scale:      labelScale,
		Duration:   labelDuration,
	}
}

// TeamLabel returns the coloured team marker
func TeamLabel(t match.Team) string {
	if t == match.Red {
		return "🔴 RED"
	}
	return "🔵 BLUE"
}

// NoticeFor returns the notice shown for kind
func NoticeFor(kind match.NoticeKind) Notice {
	var text string
	switch kind {
	case match.NoticeNoAmmo:
		text = "❄️  Out of snowballs! Press K to refill"
	case match.NoticeAmmoFull:
		text = "🧊 Already full!"
	case match.NoticeRefilled:
		text = "🧊 Refilled!"
	case match.NoticeEliminated:
		text = "⚡ Eliminated!"
	case match.NoticeCooldown:
		text = "❄️  Too fast!"
	default:
		text = string(kind)
	}
	return Notice{Text: text, Foreground: White, Background: Black, Duration: noticeDuration}
}

// RoundStartAnnouncement announces a new round
func RoundStartAnnouncement(round int) Announcement {
	return Announcement{Text: fmt.Sprintf("🎄 Round %d START!", round), Color: White}
}

// RoundWinnerAnnouncement announces the winner of a round
func RoundWinnerAnnouncement(w match.Winner) Announcement {
	switch w {
	case match.RedWins:
		return Announcement{Text: "🔴 RED TEAM WINS THE ROUND!", Color: Red}
	case match.BlueWins:
		return Announcement{Text: "🔵 BLUE TEAM WINS THE ROUND!", Color: Blue}
	default:
		return Announcement{Text: "⚔️ DRAW!", Color: White}
	}
}

// MatchWinnerAnnouncement announces the match winner
func MatchWinnerAnnouncement(t match.Team) Announcement {
	if t == match.Red {
		return Announcement{Text: "🏆 🔴 RED TEAM WINS THE MATCH!", Color: Yellow}
	}
	return Announcement{Text: "🏆 🔵 BLUE TEAM WINS THE MATCH!", Color: Yellow}
}

// MVPAnnouncement names the most valuable player
func MVPAnnouncement(name string, kills int) Announcement {
	return Announcement{Text: fmt.Sprintf("⭐ MVP: %s (%d Kills)", name, kills), Color: Yellow}
}

func bar(full, empty string, n, total int) string {
	if n < 0 {
		n = 0
	}
	if n > total {
		n = total
	}
	return strings.Repeat(full, n) + strings.Repeat(empty, total-n)
}
