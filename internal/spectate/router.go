package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultOrigins allows local dashboards on any port
var DefaultOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// Handler returns the HTTP routes for the spectator feed:
//
//	GET /ws            websocket feed, ?format=msgpack for binary frames
//	GET /health        liveness
//	GET /api/snapshot  current match state, when WithSnapshot is set
//	GET /metrics       Prometheus metrics, when WithMetrics is set
func (h *Hub) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)
	r.With(h.limiter.middleware).Get("/ws", h.handleWebSocket)

	if h.snapshot != nil {
		r.Get("/api/snapshot", h.handleSnapshot)
	}
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	return r
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newSnapshotData(h.snapshot())); err != nil {
		h.logger.Debug("Failed to write snapshot", "error", err)
	}
}
