package display

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// LogSink writes announcements and notices to a logger. Status overlays are
// only logged at debug level since they refresh several times a second.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging through logger
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger.WithPrefix("arena")}
}

func (s *LogSink) ShowStatus(playerID string, label Label) {
	s.logger.Debug("Status", "player", playerID, "label", label.Text)
}

func (s *LogSink) ShowNotice(playerID string, notice Notice) {
	s.logger.Info(notice.Text, "player", playerID)
}

func (s *LogSink) Announce(announcement Announcement) {
	s.logger.Info(announcement.Text, "color", fmt.Sprintf("#%06x", uint32(announcement.Color)))
}
