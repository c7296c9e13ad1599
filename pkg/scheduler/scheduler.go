package scheduler

import (
	"context"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

// SettlementRequest asks the ledger to move escrowed funds out of escrow:
// to the recipient on release, back to the funder on refund.
type SettlementRequest struct {
	ExchangeCode string                 `json:"exchange_code"`
	Kind         storage.SettlementKind `json:"kind"`
	To           string                 `json:"to"`
	Asset        models.Asset           `json:"asset"`
	Amount       int64                  `json:"amount"`
}

// Scheduler defines the interface for a component that schedules settlements for later processing.
type Scheduler interface {
	// ScheduleSettlement enqueues a settlement for asynchronous processing.
	ScheduleSettlement(ctx context.Context, req SettlementRequest) error
}

// ReleaseFor builds the request that pays the recipient of a completed agreement.
func ReleaseFor(a *models.Agreement) SettlementRequest {
	return SettlementRequest{
		ExchangeCode: a.ExchangeCode,
		Kind:         storage.SettlementRelease,
		To:           a.Recipient(),
		Asset:        a.AssetType,
		Amount:       a.AssetAmount,
	}
}

// RefundFor builds the request that returns escrowed funds to the funder of an expired agreement.
func RefundFor(a *models.Agreement) SettlementRequest {
	return SettlementRequest{
		ExchangeCode: a.ExchangeCode,
		Kind:         storage.SettlementRefund,
		To:           a.Funder(),
		Asset:        a.AssetType,
		Amount:       a.AssetAmount,
	}
}
