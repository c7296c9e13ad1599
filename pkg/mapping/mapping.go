package mapping

import (
	"github.com/chris/cash-agent-exchange/pkg/api"
	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/rates"
)

// ToApiAgreement converts a domain Agreement to the agent-facing view.
// The initiator's identity is not exposed.
func ToApiAgreement(a *models.Agreement) *api.Agreement {
	return &api.Agreement{
		Id:                 a.Id,
		ExchangeCode:       a.ExchangeCode,
		AssignedAgentId:    a.AssignedAgentId,
		Asset:              string(a.AssetType),
		Direction:          string(a.Direction),
		AssetAmount:        a.AssetAmount,
		AssetAmountDisplay: rates.FromBaseUnits(a.AssetAmount, a.AssetType).String(),
		LocalAmount:        a.LocalCurrencyAmount,
		Currency:           a.Currency,
		Status:             string(a.Status),
		CreatedAt:          a.CreatedAt,
		ExpiresAt:          a.ExpiresAt,
		CompletedAt:        a.CompletedAt,
	}
}

// ToApiCommissionTotal converts an accumulated commission.
func ToApiCommissionTotal(asset models.Asset, currency string, count int, c escrow.Commission) api.CommissionTotal {
	return api.CommissionTotal{
		Asset:       string(asset),
		Currency:    currency,
		Agreements:  count,
		LocalAmount: c.LocalAmount,
		AssetAmount: c.AssetAmount,
	}
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		UserId:         wallet.UserId,
		Asset:          string(wallet.Asset),
		Balance:        wallet.Balance,
		DepositAddress: wallet.DepositAddress,
	}
}

// ToApiLedgerEntry converts a ledger entry. Zero sides are omitted.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	out := &api.LedgerEntry{
		TransactionId: entry.TransactionID,
		EntryId:       entry.EntryID,
		AccountId:     entry.AccountID,
		Asset:         string(entry.Asset),
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
	if entry.Debit != 0 {
		debit := entry.Debit
		out.Debit = &debit
	}
	if entry.Credit != 0 {
		credit := entry.Credit
		out.Credit = &credit
	}
	return out
}
