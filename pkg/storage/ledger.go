package storage

import (
	"context"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

// LedgerStore defines the balance book backing the development ledger.
type LedgerStore interface {
	// GetWallet retrieves a principal's wallet for one asset. Returns ErrNotFound if absent.
	GetWallet(ctx context.Context, principal string, asset models.Asset) (*models.Wallet, error)

	// EnsureWallet returns the wallet, creating an empty one with a fresh deposit address if needed.
	EnsureWallet(ctx context.Context, principal string, asset models.Asset) (*models.Wallet, error)

	// Transfer atomically debits one principal, credits another and writes both ledger entries.
	// Returns ErrInsufficientFunds if the sender cannot cover the amount.
	Transfer(ctx context.Context, txID, from, to string, asset models.Asset, amount int64, memo string) error

	// Debit removes funds from a principal, writing a single ledger entry.
	Debit(ctx context.Context, txID, principal string, asset models.Asset, amount int64, memo string) error

	// Credit adds funds to a principal, writing a single ledger entry.
	Credit(ctx context.Context, txID, principal string, asset models.Asset, amount int64, memo string) error

	// ListLedgerEntries retrieves the most recent entries for a principal.
	ListLedgerEntries(ctx context.Context, principal string, limit int32) ([]models.LedgerEntry, error)
}
