// Package ledger defines the contract of the ledger network that holds asset
// balances and executes transfers on behalf of users and agents.
package ledger

import (
	"context"
	"errors"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

var (
	// ErrInsufficientFunds is returned when the sender cannot cover a transfer or withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// TransferRequest asks the ledger to move funds between two principals.
type TransferRequest struct {
	From   string
	To     string
	Asset  models.Asset
	Amount int64
	Memo   string
}

// Receipt is the ledger's answer to a transfer request. A transfer that still
// awaits the sender's signature has Confirmed set to false; its confirmation
// arrives later on the funding queue carrying the same Reference.
type Receipt struct {
	Reference string
	Confirmed bool
}

// Client is the set of ledger operations this service depends on.
// Calls are never retried by the caller.
type Client interface {
	Balance(ctx context.Context, principal string, asset models.Asset) (int64, error)
	Transfer(ctx context.Context, req TransferRequest) (*Receipt, error)
	DepositAddress(ctx context.Context, principal string, asset models.Asset) (string, error)
	Withdraw(ctx context.Context, principal string, asset models.Asset, address string, amount int64) (*Receipt, error)
	History(ctx context.Context, principal string, limit int32) ([]models.LedgerEntry, error)
}
