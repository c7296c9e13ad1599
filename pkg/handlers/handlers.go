// Package handlers assembles the HTTP surface of the service.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chris/cash-agent-exchange/pkg/handlers/admin"
	"github.com/chris/cash-agent-exchange/pkg/handlers/agents"
	"github.com/chris/cash-agent-exchange/pkg/handlers/ledger"
	"github.com/chris/cash-agent-exchange/pkg/handlers/ussd"
	"github.com/chris/cash-agent-exchange/pkg/handlers/wallets"
	"github.com/chris/cash-agent-exchange/pkg/metrics"
	"github.com/chris/cash-agent-exchange/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups the endpoint handlers. Any of Ledger, Wallets and Feed may
// be nil, in which case their routes are not mounted.
type Handlers struct {
	USSD    *ussd.Handler
	Agents  *agents.AgentsHandler
	Admin   *admin.AdminHandler
	Ledger  *ledger.LedgerHandler
	Wallets *wallets.WalletsHandler
	Feed    http.Handler

	// Metrics, when set, instruments every route and serves GET /metrics.
	Metrics *metrics.Metrics
	// Origins enables CORS for the agent dashboard when non-empty.
	Origins []string
}

// NewRouter mounts every handler on a chi router with request logging.
//
//	POST /ussd
//	GET  /health
//	POST /admin/sessions/clear
//	     /agents/{agentID}/...
//	GET  /principals/{principal}/ledger
//	GET  /principals/{principal}/wallets/{asset}
//	POST /principals/{principal}/wallets/{asset}/credit
//	GET  /metrics
//	GET  /ws
func NewRouter(logger *slog.Logger, h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewStructuredLogger(logger))
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	if len(h.Origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Origins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Method(http.MethodPost, "/ussd", h.USSD)
	r.Get("/health", h.Admin.Health)
	r.Post("/admin/sessions/clear", h.Admin.ClearSessions)
	h.Agents.Routes(r)

	if h.Ledger != nil {
		r.Get("/principals/{principal}/ledger", h.Ledger.ListLedgerEntries)
	}
	if h.Wallets != nil {
		r.Get("/principals/{principal}/wallets/{asset}", h.Wallets.GetWallet)
		r.Post("/principals/{principal}/wallets/{asset}/credit", h.Wallets.CreditWallet)
	}
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}
	if h.Feed != nil {
		r.Handle("/ws", h.Feed)
	}
	return r
}
