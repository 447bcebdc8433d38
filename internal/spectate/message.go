package spectate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lox/snowbattle/internal/display"
	"github.com/lox/snowbattle/internal/match"
)

// MessageType identifies a spectator frame
type MessageType string

const (
	MessageTypeStatus       MessageType = "status"
	MessageTypeNotice       MessageType = "notice"
	MessageTypeAnnouncement MessageType = "announcement"
)

// Format selects the wire encoding for one spectator
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// ParseFormat maps the ?format= query value to a Format. Unknown values
// fall back to JSON.
func ParseFormat(s string) Format {
	if s == "msgpack" {
		return FormatMsgpack
	}
	return FormatJSON
}

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// frameType is the websocket message type carrying f
func (f Format) frameType() int {
	if f == FormatMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Message is the JSON frame sent to spectators
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// BinaryMessage is the msgpack frame sent to spectators that asked for it.
// Data is encoded inline rather than as nested bytes.
type BinaryMessage struct {
	Type      MessageType `msgpack:"type"`
	Data      any         `msgpack:"data"`
	Timestamp time.Time   `msgpack:"timestamp"`
}

// encodeFrame renders one frame in the given format
func encodeFrame(format Format, messageType MessageType, data any, now time.Time) ([]byte, error) {
	switch format {
	case FormatMsgpack:
		return msgpack.Marshal(&BinaryMessage{Type: messageType, Data: data, Timestamp: now})
	default:
		msg, err := NewMessage(messageType, data)
		if err != nil {
			return nil, err
		}
		msg.Timestamp = now
		return json.Marshal(msg)
	}
}

type StatusData struct {
	PlayerID string `json:"playerId" msgpack:"playerId"`
	Text     string `json:"text" msgpack:"text"`
}

type NoticeData struct {
	PlayerID string `json:"playerId" msgpack:"playerId"`
	Text     string `json:"text" msgpack:"text"`
}

type AnnouncementData struct {
	Text  string `json:"text" msgpack:"text"`
	Color string `json:"color" msgpack:"color"`
}

// PlayerData is one player in a snapshot response
type PlayerData struct {
	ID               string `json:"id"`
	Team             string `json:"team"`
	Health           int    `json:"health"`
	Ammo             int    `json:"ammo"`
	Kills            int    `json:"kills"`
	Deaths           int    `json:"deaths"`
	Alive            bool   `json:"alive"`
	SecondsRemaining int    `json:"secondsRemaining"`
}

// SnapshotData is the body of GET /api/snapshot
type SnapshotData struct {
	Round            int          `json:"round"`
	MaxRounds        int          `json:"maxRounds"`
	ScoreRed         int          `json:"scoreRed"`
	ScoreBlue        int          `json:"scoreBlue"`
	Running          bool         `json:"running"`
	RoundActive      bool         `json:"roundActive"`
	SecondsRemaining int          `json:"secondsRemaining"`
	Players          []PlayerData `json:"players"`
}

func newSnapshotData(snap match.Snapshot) SnapshotData {
	data := SnapshotData{
		Round:            snap.Round,
		MaxRounds:        snap.MaxRounds,
		ScoreRed:         snap.ScoreRed,
		ScoreBlue:        snap.ScoreBlue,
		Running:          snap.Running,
		RoundActive:      snap.RoundActive,
		SecondsRemaining: snap.SecondsRemaining,
		Players:          make([]PlayerData, 0, len(snap.Players)),
	}
	for _, p := range snap.Players {
		data.Players = append(data.Players, PlayerData{
			ID:               p.PlayerID,
			Team:             p.Team.String(),
			Health:           p.Health,
			Ammo:             p.Ammo,
			Kills:            p.Kills,
			Deaths:           p.Deaths,
			Alive:            p.Alive,
			SecondsRemaining: p.SecondsRemaining,
		})
	}
	return data
}

func hexColor(c display.Color) string {
	return fmt.Sprintf("#%06x", uint32(c))
}
