package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

// Direct settles immediately against a ledger that confirms synchronously.
// It stands in for the settlement queue when running against the development
// ledger, and is what the settlement consumer runs for each queued request.
type Direct struct {
	Ledger          ledger.Client
	Agreements      storage.AgreementStore
	EscrowPrincipal string
}

var _ Scheduler = (*Direct)(nil)

// ScheduleSettlement pays out of escrow and records the ledger reference.
// A request whose reference is already recorded is skipped, so redelivery
// never pays twice.
func (d *Direct) ScheduleSettlement(ctx context.Context, req SettlementRequest) error {
	a, err := d.Agreements.GetAgreement(ctx, req.ExchangeCode)
	if err != nil {
		return fmt.Errorf("failed to load agreement %s: %w", req.ExchangeCode, err)
	}
	if settled(a, req.Kind) {
		slog.Info("settlement already recorded", "code", req.ExchangeCode, "kind", req.Kind)
		return nil
	}

	receipt, err := d.Ledger.Transfer(ctx, ledger.TransferRequest{
		From:   d.EscrowPrincipal,
		To:     req.To,
		Asset:  req.Asset,
		Amount: req.Amount,
		Memo:   fmt.Sprintf("%s %s", req.Kind, req.ExchangeCode),
	})
	if err != nil {
		return fmt.Errorf("failed to settle %s: %w", req.ExchangeCode, err)
	}

	if err := d.Agreements.RecordSettlement(ctx, req.ExchangeCode, req.Kind, receipt.Reference); err != nil {
		return fmt.Errorf("failed to record settlement for %s: %w", req.ExchangeCode, err)
	}
	return nil
}

func settled(a *models.Agreement, kind storage.SettlementKind) bool {
	switch kind {
	case storage.SettlementRelease:
		return a.ReleaseRef != ""
	case storage.SettlementRefund:
		return a.RefundRef != ""
	}
	return false
}
