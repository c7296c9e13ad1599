package ledger

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chris/cash-agent-exchange/pkg/api"
	"github.com/chris/cash-agent-exchange/pkg/mapping"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// HistoryReader lists a principal's ledger entries, newest first.
type HistoryReader interface {
	History(ctx context.Context, principal string, limit int32) ([]models.LedgerEntry, error)
}

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Ledger HistoryReader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(l HistoryReader) *LedgerHandler {
	return &LedgerHandler{Ledger: l}
}

// ListLedgerEntries serves GET /principals/{principal}/ledger?limit=N.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxLimit {
			api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
			return
		}
		limit = int32(n)
	}

	entries, err := h.Ledger.History(r.Context(), chi.URLParam(r, "principal"), limit)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve ledger entries: %v", err))
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}
	api.WriteJSON(w, http.StatusOK, apiEntries)
}
