package display

import "time"

// Color is a 24-bit RGB colour, 0xRRGGBB
type Color uint32

// Colours used by the overlay and announcements
const (
	White  Color = 0xffffff
	Black  Color = 0x000000
	Red    Color = 0xff0000
	Blue   Color = 0x00aaff
	Yellow Color = 0xffff00
)

// Label is the persistent per-player status overlay
type Label struct {
	Text       string
	Foreground Color
	Background Color
	OffsetX    int
	OffsetY    int
	Scale      float64
	Duration   time.Duration
}

// Notice is a transient centre-screen message for one player
type Notice struct {
	Text       string
	Foreground Color
	Background Color
	Duration   time.Duration
}

// Announcement is a message broadcast to every player
type Announcement struct {
	Text  string
	Color Color
}

// Sink receives rendered output. Implementations must not call back into
// the match session.
type Sink interface {
	ShowStatus(playerID string, label Label)
	ShowNotice(playerID string, notice Notice)
	Announce(announcement Announcement)
}

// MultiSink fans output out to several sinks
type MultiSink []Sink

func (m MultiSink) ShowStatus(playerID string, label Label) {
	for _, s := range m {
		s.ShowStatus(playerID, label)
	}
}

func (m MultiSink) ShowNotice(playerID string, notice Notice) {
	for _, s := range m {
		s.ShowNotice(playerID, notice)
	}
}

func (m MultiSink) Announce(announcement Announcement) {
	for _, s := range m {
		s.Announce(announcement)
	}
}
