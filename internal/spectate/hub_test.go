package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lox/snowbattle/internal/display"
	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/metrics"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func dialSpectator(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	return dialSpectatorPath(t, hub, "/ws")
}

func dialSpectatorPath(t *testing.T, hub *Hub, path string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Connections() == 1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_BroadcastsAnnouncements(t *testing.T) {
	hub := NewHub(testLogger())
	conn := dialSpectator(t, hub)

	hub.Announce(display.RoundWinnerAnnouncement(match.BlueWins))

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeAnnouncement, msg.Type)

	var data AnnouncementData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "🔵 BLUE TEAM WINS THE ROUND!", data.Text)
	assert.Equal(t, "#00aaff", data.Color)
}

func TestHub_MirrorsMatch(t *testing.T) {
	logger := testLogger()
	hub := NewHub(logger)
	conn := dialSpectator(t, hub)

	now := time.Date(2025, time.December, 24, 18, 0, 0, 0, time.UTC)
	session := match.NewSession(match.DefaultRules(), logger)
	session.Subscribe(display.NewPresenter(hub, logger))
	session.Join("alice", now)
	session.Join("bob", now)
	session.StartMatch(now)

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeAnnouncement, msg.Type)

	var statuses []StatusData
	for i := 0; i < 2; i++ {
		msg = readMessage(t, conn)
		require.Equal(t, MessageTypeStatus, msg.Type)
		var data StatusData
		require.NoError(t, json.Unmarshal(msg.Data, &data))
		statuses = append(statuses, data)
	}
	assert.Equal(t, "alice", statuses[0].PlayerID)
	assert.Contains(t, statuses[0].Text, "🔴 RED")
	assert.Equal(t, "bob", statuses[1].PlayerID)

	session.Refill("bob", now)
	msg = readMessage(t, conn)
	require.Equal(t, MessageTypeNotice, msg.Type)
	var notice NoticeData
	require.NoError(t, json.Unmarshal(msg.Data, &notice))
	assert.Equal(t, NoticeData{PlayerID: "bob", Text: "🧊 Already full!"}, notice)
}

func TestHub_SpectatorDisconnect(t *testing.T) {
	hub := NewHub(testLogger())
	conn := dialSpectator(t, hub)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Connections() == 0 }, 2*time.Second, 10*time.Millisecond)

	assert.NotPanics(t, func() {
		hub.Announce(display.Announcement{Text: "nobody"})
	})
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(testLogger())
	dialSpectator(t, hub)

	hub.Close()
	assert.Equal(t, 0, hub.Connections())
}

func TestHub_Health(t *testing.T) {
	srv := httptest.NewServer(NewHub(testLogger()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestConnection_SendAfterClose(t *testing.T) {
	hub := NewHub(testLogger())
	dialSpectator(t, hub)

	hub.mu.RLock()
	var conn *Connection
	for c := range hub.connections {
		conn = c
	}
	hub.mu.RUnlock()
	require.NotNil(t, conn)

	require.NoError(t, conn.Close())
	frame, err := encodeFrame(FormatJSON, MessageTypeAnnouncement, AnnouncementData{Text: "late"}, time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, conn.Send(frame), ErrConnectionClosed)
}

func TestHub_MsgpackFrames(t *testing.T) {
	hub := NewHub(testLogger())
	conn := dialSpectatorPath(t, hub, "/ws?format=msgpack")

	hub.Announce(display.MatchWinnerAnnouncement(match.Red))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	kind, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)

	var msg struct {
		Type MessageType      `msgpack:"type"`
		Data AnnouncementData `msgpack:"data"`
	}
	require.NoError(t, msgpack.Unmarshal(raw, &msg))
	assert.Equal(t, MessageTypeAnnouncement, msg.Type)
	assert.Equal(t, "#ffff00", msg.Data.Color)
}

func TestHub_Snapshot(t *testing.T) {
	logger := testLogger()
	now := time.Date(2025, time.December, 24, 18, 0, 0, 0, time.UTC)
	session := match.NewSession(match.DefaultRules(), logger)
	session.Join("alice", now)
	session.Join("bob", now)
	session.StartMatch(now)

	hub := NewHub(logger, WithSnapshot(func() match.Snapshot { return session.Snapshot(now) }))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap SnapshotData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, 1, snap.Round)
	assert.True(t, snap.RoundActive)
	assert.Equal(t, 120, snap.SecondsRemaining)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "red", snap.Players[0].Team)
	assert.Equal(t, "blue", snap.Players[1].Team)
}

func TestHub_SnapshotRouteDisabled(t *testing.T) {
	srv := httptest.NewServer(NewHub(testLogger()).Handler())
	defer srv.Close()

	for _, path := range []string{"/api/snapshot", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestHub_Metrics(t *testing.T) {
	m := metrics.New()
	hub := NewHub(testLogger(), WithMetrics(m))
	conn := dialSpectator(t, hub)

	hub.Announce(display.Announcement{Text: "hello"})
	readMessage(t, conn)

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "snowbattle_spectators 1")
	assert.Contains(t, string(body), "snowbattle_spectator_frames_total 1")
}

func TestHub_RateLimitsUpgrades(t *testing.T) {
	hub := NewHub(testLogger(), WithRateLimit(RateLimit{PerSecond: 0.001, Burst: 1}))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestHub_CORS(t *testing.T) {
	srv := httptest.NewServer(NewHub(testLogger(), WithAllowedOrigins("https://dash.example")).Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dash.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "https://dash.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"remote addr", nil, "10.0.0.1:5555", "10.0.0.1"},
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, "10.0.0.1:5555", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": " 5.6.7.8 "}, "10.0.0.1:5555", "5.6.7.8"},
		{"bare remote", nil, "pipe", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
