package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sipas-org/sipas-api/internal/http/respond"
)

// Caller runs a database function. *postgres.Store satisfies it.
type Caller interface {
	Call(ctx context.Context, function string, args ...any) (any, error)
}

// HealthHandler returns uptime and database readiness.
type HealthHandler struct {
	startedAt time.Time
	db        Caller
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, db Caller) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, db: db}
}

func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.live)
	r.Get("/ready", h.ready)
	return r
}

func (h *HealthHandler) live(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, "ok", map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

func (h *HealthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	version, err := h.db.Call(ctx, "version")
	if err != nil {
		slog.Warn("readiness check failed", "error", err)
		respond.Error(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respond.JSON(w, r, http.StatusOK, "ready", map[string]any{
		"status":   "ready",
		"database": version,
	})
}
