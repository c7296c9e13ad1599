package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/cash-agent-exchange/pkg/api"
	"github.com/chris/cash-agent-exchange/pkg/mapping"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WalletsHandler serves the development ledger's wallets.
type WalletsHandler struct {
	Store       storage.LedgerStore
	Development bool
}

// NewWalletsHandler creates a new WalletsHandler. Crediting is only served when development is true.
func NewWalletsHandler(store storage.LedgerStore, development bool) *WalletsHandler {
	return &WalletsHandler{Store: store, Development: development}
}

func pathAsset(w http.ResponseWriter, r *http.Request) (models.Asset, bool) {
	asset, ok := models.ParseAsset(chi.URLParam(r, "asset"))
	if !ok {
		api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported asset %q", chi.URLParam(r, "asset")))
	}
	return asset, ok
}

// GetWallet serves GET /principals/{principal}/wallets/{asset}. The wallet and
// its deposit address are created on first access.
func (h *WalletsHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	asset, ok := pathAsset(w, r)
	if !ok {
		return
	}

	wallet, err := h.Store.EnsureWallet(r.Context(), chi.URLParam(r, "principal"), asset)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve wallet: %v", err))
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}

// CreditWallet serves POST /principals/{principal}/wallets/{asset}/credit.
// It seeds balances for local runs and answers 404 outside development.
func (h *WalletsHandler) CreditWallet(w http.ResponseWriter, r *http.Request) {
	if !h.Development {
		http.NotFound(w, r)
		return
	}
	asset, ok := pathAsset(w, r)
	if !ok {
		return
	}

	var credit api.Credit
	if err := json.NewDecoder(r.Body).Decode(&credit); err != nil {
		api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if credit.Amount <= 0 {
		api.WriteError(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}
	if credit.Memo == "" {
		credit.Memo = "dev credit"
	}

	principal := chi.URLParam(r, "principal")
	if err := h.Store.Credit(r.Context(), uuid.NewString(), principal, asset, credit.Amount, credit.Memo); err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to credit wallet: %v", err))
		return
	}

	wallet, err := h.Store.GetWallet(r.Context(), principal, asset)
	if errors.Is(err, storage.ErrNotFound) {
		api.WriteError(w, http.StatusInternalServerError, "Wallet missing after credit")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve wallet: %v", err))
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}
