// Package agents serves the agent-facing side of the exchange: looking up an
// exchange code, claiming and funding buy agreements, completing a handover
// and reporting commission.
package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/chris/cash-agent-exchange/pkg/api"
	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/mapping"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// Exchange is the part of the escrow engine the agent API drives.
type Exchange interface {
	Get(ctx context.Context, code string) (*models.Agreement, error)
	Claim(ctx context.Context, code, agentID string) (*models.Agreement, error)
	Fund(ctx context.Context, code, reference string) (*models.Agreement, error)
	VerifyAndComplete(ctx context.Context, code, agentID string) (*models.Agreement, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.Agreement, error)
}

var _ Exchange = (*escrow.Engine)(nil)

// AgentsHandler holds the dependencies for agent handlers.
type AgentsHandler struct {
	Exchange  Exchange
	Agents    storage.AgentStore
	Ledger    ledger.Client
	Principal string
	// Auth, when set, guards every agent route.
	Auth func(http.Handler) http.Handler
}

// NewAgentsHandler creates a new AgentsHandler. principal is the ledger
// principal that holds escrowed funds.
func NewAgentsHandler(exchange Exchange, agents storage.AgentStore, l ledger.Client, principal string) *AgentsHandler {
	return &AgentsHandler{Exchange: exchange, Agents: agents, Ledger: l, Principal: principal}
}

// Routes mounts the agent endpoints under /agents/{agentID}.
func (h *AgentsHandler) Routes(r chi.Router) {
	r.Route("/agents/{agentID}", func(r chi.Router) {
		if h.Auth != nil {
			r.Use(h.Auth)
		}
		r.Get("/agreements/{code}", h.GetAgreement)
		r.Post("/agreements/{code}/claim", h.ClaimAgreement)
		r.Post("/agreements/{code}/fund", h.FundAgreement)
		r.Post("/agreements/{code}/verify", h.VerifyAgreement)
		r.Get("/commissions", h.GetCommissions)
	})
}

// activeAgent resolves the path agent. It writes the error response itself
// and returns nil when the request must stop.
func (h *AgentsHandler) activeAgent(w http.ResponseWriter, r *http.Request) *models.Agent {
	agentID := chi.URLParam(r, "agentID")
	agent, err := h.Agents.GetAgent(r.Context(), agentID)
	if errors.Is(err, storage.ErrNotFound) {
		api.WriteError(w, http.StatusNotFound, "Agent not found")
		return nil
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve agent: %v", err))
		return nil
	}
	if !agent.IsActive {
		api.WriteError(w, http.StatusForbidden, "Agent is not active")
		return nil
	}
	return agent
}

// GetAgreement looks up an exchange code. An agreement bound to another agent is hidden.
func (h *AgentsHandler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	agent := h.activeAgent(w, r)
	if agent == nil {
		return
	}

	a, err := h.Exchange.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeEscrowError(w, err)
		return
	}
	if a.AssignedAgentId != "" && a.AssignedAgentId != agent.AgentId {
		writeEscrowError(w, escrow.ErrUnauthorizedAgent)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiAgreement(a))
}

// ClaimAgreement binds an unassigned agreement to the agent.
func (h *AgentsHandler) ClaimAgreement(w http.ResponseWriter, r *http.Request) {
	agent := h.activeAgent(w, r)
	if agent == nil {
		return
	}

	a, err := h.Exchange.Claim(r.Context(), chi.URLParam(r, "code"), agent.AgentId)
	if err != nil {
		writeEscrowError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiAgreement(a))
}

// FundAgreement moves the agent's crypto into escrow for a buy agreement.
// An unassigned agreement is claimed first. When the ledger confirms the
// transfer synchronously the agreement is funded here; otherwise 202 is
// returned and the funding confirmation arrives on the funding queue.
func (h *AgentsHandler) FundAgreement(w http.ResponseWriter, r *http.Request) {
	agent := h.activeAgent(w, r)
	if agent == nil {
		return
	}
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	a, err := h.Exchange.Get(ctx, code)
	if err != nil {
		writeEscrowError(w, err)
		return
	}
	if a.Direction != models.BUY {
		api.WriteError(w, http.StatusUnprocessableEntity, "Only buy agreements are funded by the agent")
		return
	}
	if a.Status != models.PENDING {
		writeEscrowError(w, statusError(a.Status))
		return
	}

	a, err = h.Exchange.Claim(ctx, a.ExchangeCode, agent.AgentId)
	if err != nil {
		writeEscrowError(w, err)
		return
	}

	receipt, err := h.Ledger.Transfer(ctx, ledger.TransferRequest{
		From:   agent.AgentId,
		To:     h.Principal,
		Asset:  a.AssetType,
		Amount: a.AssetAmount,
		Memo:   "fund " + a.ExchangeCode,
	})
	if errors.Is(err, ledger.ErrInsufficientFunds) {
		api.WriteError(w, http.StatusUnprocessableEntity, "Insufficient funds")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to transfer into escrow: %v", err))
		return
	}
	if !receipt.Confirmed {
		slog.Info("escrow funding awaiting confirmation", "code", a.ExchangeCode, "reference", receipt.Reference)
		api.WriteJSON(w, http.StatusAccepted, mapping.ToApiAgreement(a))
		return
	}

	funded, err := h.Exchange.Fund(ctx, a.ExchangeCode, receipt.Reference)
	if err != nil {
		h.returnFunds(ctx, a, receipt.Reference)
		writeEscrowError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiAgreement(funded))
}

// returnFunds sends a confirmed deposit back to the agent when the agreement
// refused it, e.g. because it expired between the transfer and the transition.
func (h *AgentsHandler) returnFunds(ctx context.Context, a *models.Agreement, reference string) {
	_, err := h.Ledger.Transfer(ctx, ledger.TransferRequest{
		From:   h.Principal,
		To:     a.AssignedAgentId,
		Asset:  a.AssetType,
		Amount: a.AssetAmount,
		Memo:   "return " + a.ExchangeCode,
	})
	if err != nil {
		slog.Error("failed to return unfunded deposit", "code", a.ExchangeCode, "reference", reference, "error", err)
	}
}

// VerifyAgreement completes the handover and triggers the release.
func (h *AgentsHandler) VerifyAgreement(w http.ResponseWriter, r *http.Request) {
	agent := h.activeAgent(w, r)
	if agent == nil {
		return
	}

	a, err := h.Exchange.VerifyAndComplete(r.Context(), chi.URLParam(r, "code"), agent.AgentId)
	if err != nil {
		writeEscrowError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiAgreement(a))
}

type commissionKey struct {
	asset    models.Asset
	currency string
}

// GetCommissions sums the agent's commission over completed agreements,
// grouped by asset and currency.
func (h *AgentsHandler) GetCommissions(w http.ResponseWriter, r *http.Request) {
	agent := h.activeAgent(w, r)
	if agent == nil {
		return
	}

	rate, err := escrow.ParseRate(agent.CommissionRate)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	agreements, err := h.Exchange.ListByAgent(r.Context(), agent.AgentId)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve agreements: %v", err))
		return
	}

	sums := make(map[commissionKey]escrow.Commission)
	counts := make(map[commissionKey]int)
	for i := range agreements {
		a := &agreements[i]
		if a.Status != models.COMPLETED {
			continue
		}
		k := commissionKey{asset: a.AssetType, currency: a.Currency}
		sums[k] = sums[k].Add(escrow.CommissionFor(a, rate))
		counts[k]++
	}

	totals := make([]api.CommissionTotal, 0, len(sums))
	for k, c := range sums {
		totals = append(totals, mapping.ToApiCommissionTotal(k.asset, k.currency, counts[k], c))
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Asset != totals[j].Asset {
			return totals[i].Asset < totals[j].Asset
		}
		return totals[i].Currency < totals[j].Currency
	})

	api.WriteJSON(w, http.StatusOK, api.Commissions{
		AgentId: agent.AgentId,
		Rate:    rate.String(),
		Totals:  totals,
	})
}

// statusError explains why an agreement that left pending cannot be funded.
func statusError(s models.AgreementStatus) error {
	switch s {
	case models.FUNDED:
		return escrow.ErrAlreadyFunded
	case models.COMPLETED:
		return escrow.ErrAlreadyCompleted
	case models.EXPIRED:
		return escrow.ErrExpired
	case models.CANCELLED:
		return escrow.ErrCancelled
	}
	return escrow.ErrConflict
}

func writeEscrowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, escrow.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, escrow.ErrUnauthorizedAgent):
		api.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, escrow.ErrExpired):
		api.WriteError(w, http.StatusGone, err.Error())
	case errors.Is(err, escrow.ErrNotFunded),
		errors.Is(err, escrow.ErrAlreadyFunded),
		errors.Is(err, escrow.ErrAlreadyCompleted),
		errors.Is(err, escrow.ErrCancelled),
		errors.Is(err, escrow.ErrNotCancellable),
		errors.Is(err, escrow.ErrConflict):
		api.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, escrow.ErrInvalidRequest):
		api.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("escrow operation failed", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Internal error")
	}
}
