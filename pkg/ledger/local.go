package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/google/uuid"
)

// Local is a development ledger that settles synchronously against a LedgerStore.
type Local struct {
	store storage.LedgerStore
}

// NewLocal creates a Local ledger.
func NewLocal(store storage.LedgerStore) *Local {
	return &Local{store: store}
}

var _ Client = (*Local)(nil)

func (l *Local) Balance(ctx context.Context, principal string, asset models.Asset) (int64, error) {
	w, err := l.store.GetWallet(ctx, principal, asset)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w.Balance, nil
}

func (l *Local) Transfer(ctx context.Context, req TransferRequest) (*Receipt, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.From == "" || req.To == "" {
		return nil, fmt.Errorf("transfer requires both principals")
	}

	ref := uuid.NewString()
	if err := l.store.Transfer(ctx, ref, req.From, req.To, req.Asset, req.Amount, req.Memo); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}
	return &Receipt{Reference: ref, Confirmed: true}, nil
}

func (l *Local) DepositAddress(ctx context.Context, principal string, asset models.Asset) (string, error) {
	if !asset.IsCrypto() {
		return "", fmt.Errorf("no deposit address for %s", asset)
	}
	w, err := l.store.EnsureWallet(ctx, principal, asset)
	if err != nil {
		return "", fmt.Errorf("failed to ensure wallet: %w", err)
	}
	return w.DepositAddress, nil
}

func (l *Local) Withdraw(ctx context.Context, principal string, asset models.Asset, address string, amount int64) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("withdrawal address cannot be empty")
	}

	ref := uuid.NewString()
	if err := l.store.Debit(ctx, ref, principal, asset, amount, "withdraw to "+address); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}
	return &Receipt{Reference: ref, Confirmed: true}, nil
}

func (l *Local) History(ctx context.Context, principal string, limit int32) ([]models.LedgerEntry, error) {
	entries, err := l.store.ListLedgerEntries(ctx, principal, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}
