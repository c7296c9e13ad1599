// Package admin serves health and development maintenance endpoints.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/api"
)

// Sessions is the part of the session store the admin endpoints read.
type Sessions interface {
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// AdminHandler holds the dependencies for admin handlers.
type AdminHandler struct {
	Sessions    Sessions
	Development bool
	started     time.Time
	now         func() time.Time
}

// NewAdminHandler creates a new AdminHandler. Destructive endpoints are only
// served when development is true.
func NewAdminHandler(sessions Sessions, development bool) *AdminHandler {
	return &AdminHandler{
		Sessions:    sessions,
		Development: development,
		started:     time.Now(),
		now:         time.Now,
	}
}

// Health reports uptime and the number of live USSD sessions.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.Sessions.Count(r.Context())
	if err != nil {
		slog.Error("failed to count sessions", "error", err)
		api.WriteJSON(w, http.StatusServiceUnavailable, api.Health{Status: "degraded"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Health{
		Status:         "ok",
		UptimeSeconds:  int64(h.now().Sub(h.started) / time.Second),
		ActiveSessions: count,
	})
}

// ClearSessions drops every USSD session. Outside development it answers 404.
func (h *AdminHandler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	if !h.Development {
		http.NotFound(w, r)
		return
	}

	if err := h.Sessions.Clear(r.Context()); err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to clear sessions: %v", err))
		return
	}

	slog.Warn("all ussd sessions cleared")
	w.WriteHeader(http.StatusNoContent)
}
