package spectate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/snowbattle/internal/display"
	"github.com/lox/snowbattle/internal/match"
	"github.com/lox/snowbattle/internal/metrics"
)

// Hub is a display.Sink that mirrors every overlay, notice and announcement
// to connected websocket spectators. Spectators cannot send actions.
type Hub struct {
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	mu          sync.RWMutex

	origins  []string
	limit    RateLimit
	limiter  *ipLimiter
	metrics  *metrics.Metrics
	snapshot func() match.Snapshot
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithMetrics records spectator traffic and serves /metrics
func WithMetrics(m *metrics.Metrics) HubOption {
	return func(h *Hub) { h.metrics = m }
}

// WithSnapshot serves /api/snapshot from fn. fn is called from HTTP
// handler goroutines and must be safe for that.
func WithSnapshot(fn func() match.Snapshot) HubOption {
	return func(h *Hub) { h.snapshot = fn }
}

// WithAllowedOrigins sets the CORS origins for the HTTP endpoints
func WithAllowedOrigins(origins ...string) HubOption {
	return func(h *Hub) { h.origins = origins }
}

// WithRateLimit overrides DefaultRateLimit for socket upgrades
func WithRateLimit(limit RateLimit) HubOption {
	return func(h *Hub) { h.limit = limit }
}

// NewHub creates a hub with no spectators
func NewHub(logger *log.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("spectate"),
		origins:     DefaultOrigins,
		limit:       DefaultRateLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.limiter = newIPLimiter(h.limit, func() {
		if h.metrics != nil {
			h.metrics.Rejected("rate_limit")
		}
	})
	return h
}

// ListenAndServe serves spectators on addr until ctx is done
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		h.logger.Info("Starting spectator feed", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("spectator feed: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectator feed shutdown: %w", err)
	}
	return nil
}

// Close disconnects every spectator
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// Connections returns the number of connected spectators
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) ShowStatus(playerID string, label display.Label) {
	h.broadcast(MessageTypeStatus, StatusData{PlayerID: playerID, Text: label.Text})
}

func (h *Hub) ShowNotice(playerID string, notice display.Notice) {
	h.broadcast(MessageTypeNotice, NoticeData{PlayerID: playerID, Text: notice.Text})
}

func (h *Hub) Announce(announcement display.Announcement) {
	h.broadcast(MessageTypeAnnouncement, AnnouncementData{
		Text:  announcement.Text,
		Color: hexColor(announcement.Color),
	})
}

// broadcast encodes the frame at most once per format in use
func (h *Hub) broadcast(messageType MessageType, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.connections) == 0 {
		return
	}

	now := time.Now()
	frames := make(map[Format][]byte, 2)
	for conn := range h.connections {
		format := conn.Format()
		frame, ok := frames[format]
		if !ok {
			var err error
			frame, err = encodeFrame(format, messageType, data, now)
			if err != nil {
				h.logger.Error("Failed to encode message", "type", messageType, "format", format, "error", err)
				return
			}
			frames[format] = frame
		}

		if err := conn.Send(frame); err != nil {
			h.logger.Debug("Dropping frame for closed spectator", "error", err)
			continue
		}
		if h.metrics != nil {
			h.metrics.FrameSent()
		}
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		if h.metrics != nil {
			h.metrics.Rejected("upgrade")
		}
		return
	}

	conn := NewConnection(ws, ParseFormat(r.URL.Query().Get("format")), h.logger)
	h.mu.Lock()
	h.connections[conn] = true
	total := len(h.connections)
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.SpectatorConnected()
	}
	h.logger.Info("Spectator connected", "total", total, "format", conn.Format(), "remote", clientIP(r))

	conn.Start()

	go func() {
		<-conn.Done()
		h.mu.Lock()
		_, tracked := h.connections[conn]
		delete(h.connections, conn)
		total := len(h.connections)
		h.mu.Unlock()
		if h.metrics != nil {
			h.metrics.SpectatorDisconnected()
		}
		if tracked {
			h.logger.Info("Spectator disconnected", "total", total)
		}
	}()
}
