package mapping

import (
	"testing"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestToApiAgreement(t *testing.T) {
	a := &models.Agreement{
		Id:                  "a-1",
		ExchangeCode:        "USDC-Q7W2ZK",
		InitiatorUserId:     "+256700000001",
		AssetType:           models.USDC,
		Direction:           models.SELL,
		AssetAmount:         25500000,
		LocalCurrencyAmount: 94350,
		Currency:            "UGX",
		Status:              models.PENDING,
		ExpiresAt:           time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
	}

	got := ToApiAgreement(a)

	assert.Equal(t, "25.5", got.AssetAmountDisplay)
	assert.Equal(t, "USDC", got.Asset)
	assert.Equal(t, "sell", got.Direction)
	assert.Empty(t, got.AssignedAgentId)
	assert.Nil(t, got.CompletedAt)
}

func TestToApiLedgerEntry(t *testing.T) {
	t.Run("Credit Only", func(t *testing.T) {
		got := ToApiLedgerEntry(&models.LedgerEntry{EntryID: "e-1", Credit: 42})

		assert.Nil(t, got.Debit)
		if assert.NotNil(t, got.Credit) {
			assert.Equal(t, int64(42), *got.Credit)
		}
	})

	t.Run("Pointers Do Not Alias Source", func(t *testing.T) {
		entry := &models.LedgerEntry{Debit: 7}
		got := ToApiLedgerEntry(entry)
		entry.Debit = 9

		assert.Equal(t, int64(7), *got.Debit)
	})
}

func TestToApiCommissionTotal(t *testing.T) {
	got := ToApiCommissionTotal(models.BTC, "KES", 3, escrow.Commission{LocalAmount: 120, AssetAmount: 900})

	assert.Equal(t, "BTC", got.Asset)
	assert.Equal(t, 3, got.Agreements)
	assert.Equal(t, int64(900), got.AssetAmount)
}
