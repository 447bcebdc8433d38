package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/snowbattle/internal/match"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   match.Status
		expected string
	}{
		{
			name: "fresh red player",
			status: match.Status{
				Round: 1, MaxRounds: 5, Team: match.Red,
				Health: 3, MaxHealth: 3, Ammo: 3, MaxAmmo: 3,
				SecondsRemaining: 120,
			},
			expected: "Round 1/5　  0 : 0\n" +
				"🔴 RED\n" +
				"HP: ❤️❤️❤️　Ammo: ❄️❄️❄️\n" +
				"K:0 / D:0　 Time:120s",
		},
		{
			name: "wounded blue player",
			status: match.Status{
				Round: 3, MaxRounds: 5, ScoreRed: 1, ScoreBlue: 1, Team: match.Blue,
				Health: 1, MaxHealth: 3, Ammo: 0, MaxAmmo: 3,
				Kills: 2, Deaths: 1, SecondsRemaining: 7,
			},
			expected: "Round 3/5　  1 : 1\n" +
				"🔵 BLUE\n" +
				"HP: ❤️🤍🤍　Ammo: 🤍🤍🤍\n" +
				"K:2 / D:1　 Time:7s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatStatus(tt.status))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	label := StatusLabel(match.Status{MaxHealth: 3, MaxAmmo: 3})
	assert.Equal(t, White, label.Foreground)
	assert.Equal(t, Black, label.Background)
	assert.Equal(t, -40, label.OffsetX)
	assert.Equal(t, 200, label.OffsetY)
	assert.InDelta(t, 0.6, label.Scale, 1e-9)
	assert.Equal(t, labelDuration, label.Duration)
}

func TestBarClamps(t *testing.T) {
	assert.Equal(t, "🤍🤍", bar("❤️", "🤍", -1, 2))
	assert.Equal(t, "❤️❤️", bar("❤️", "🤍", 5, 2))
}

func TestAnnouncements(t *testing.T) {
	assert.Equal(t, Announcement{Text: "🎄 Round 2 START!", Color: White}, RoundStartAnnouncement(2))
	assert.Equal(t, Red, RoundWinnerAnnouncement(match.RedWins).Color)
	assert.Equal(t, Blue, RoundWinnerAnnouncement(match.BlueWins).Color)
	assert.Equal(t, "⚔️ DRAW!", RoundWinnerAnnouncement(match.Draw).Text)
	assert.Equal(t, "🏆 🔵 BLUE TEAM WINS THE MATCH!", MatchWinnerAnnouncement(match.Blue).Text)
	assert.Equal(t, "⭐ MVP: alice (4 Kills)", MVPAnnouncement("alice", 4).Text)
}

func TestNoticeFor(t *testing.T) {
	for _, kind := range []match.NoticeKind{
		match.NoticeNoAmmo, match.NoticeAmmoFull, match.NoticeRefilled,
		match.NoticeEliminated, match.NoticeCooldown,
	} {
		n := NoticeFor(kind)
		assert.NotEmpty(t, n.Text, kind)
		assert.NotEqual(t, string(kind), n.Text, kind)
		assert.Equal(t, noticeDuration, n.Duration)
	}
}
