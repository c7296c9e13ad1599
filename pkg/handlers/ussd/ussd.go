// Package ussd serves the gateway callback that drives USSD sessions.
package ussd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/ussd"
)

// Navigator advances a session by one gateway callback.
type Navigator interface {
	Handle(ctx context.Context, req ussd.Request) (ussd.Response, error)
}

// Handler answers gateway callbacks in plain text ("CON ..." or "END ...").
type Handler struct {
	machine  Navigator
	fallback i18n.Lang
}

// NewHandler creates a Handler. fallback is the language of the reply sent
// when the session store is unreachable.
func NewHandler(machine Navigator, fallback i18n.Lang) *Handler {
	return &Handler{machine: machine, fallback: fallback}
}

// ServeHTTP reads the form-encoded callback fields sessionId, phoneNumber and text.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	req := ussd.Request{
		SessionID:   r.PostForm.Get("sessionId"),
		PhoneNumber: r.PostForm.Get("phoneNumber"),
		Text:        r.PostForm.Get("text"),
	}
	if req.SessionID == "" || req.PhoneNumber == "" {
		http.Error(w, "sessionId and phoneNumber are required", http.StatusBadRequest)
		return
	}

	resp, err := h.machine.Handle(r.Context(), req)
	if err != nil {
		// The gateway shows whatever we return, so a failure still ends the session politely.
		slog.Error("failed to handle ussd callback", "session_id", req.SessionID, "error", err)
		resp = ussd.Response{Text: i18n.T(h.fallback, i18n.KeyServiceError), End: true}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(resp.String())); err != nil {
		slog.Error("failed to write ussd response", "error", err)
	}
}
