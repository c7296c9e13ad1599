package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/google/uuid"
)

func (s *Store) GetWallet(_ context.Context, principal string, asset models.Asset) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[walletKey{principal, asset}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &w, nil
}

func (s *Store) EnsureWallet(_ context.Context, principal string, asset models.Asset) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.ensureWallet(principal, asset, time.Now().UTC())
	return &w, nil
}

func (s *Store) ensureWallet(principal string, asset models.Asset, now time.Time) models.Wallet {
	key := walletKey{principal, asset}
	w, ok := s.wallets[key]
	if !ok {
		w = models.Wallet{
			UserId:         principal,
			Asset:          asset,
			DepositAddress: depositAddress(asset),
			CreatedAt:      now,
		}
		s.wallets[key] = w
	}
	return w
}

func (s *Store) Transfer(_ context.Context, txID, from, to string, asset models.Asset, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sender, ok := s.wallets[walletKey{from, asset}]
	if !ok || sender.Balance < amount {
		return storage.ErrInsufficientFunds
	}
	receiver := s.ensureWallet(to, asset, now)

	sender.Balance -= amount
	sender.Version++
	receiver.Balance += amount
	receiver.Version++
	s.wallets[walletKey{from, asset}] = sender
	s.wallets[walletKey{to, asset}] = receiver

	s.entries = append(s.entries,
		models.LedgerEntry{EntryID: uuid.NewString(), TransactionID: txID, AccountID: from, Asset: asset, Debit: amount, Description: memo, Timestamp: now},
		models.LedgerEntry{EntryID: uuid.NewString(), TransactionID: txID, AccountID: to, Asset: asset, Credit: amount, Description: memo, Timestamp: now},
	)
	return nil
}

func (s *Store) Debit(_ context.Context, txID, principal string, asset models.Asset, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[walletKey{principal, asset}]
	if !ok || w.Balance < amount {
		return storage.ErrInsufficientFunds
	}
	w.Balance -= amount
	w.Version++
	s.wallets[walletKey{principal, asset}] = w

	s.entries = append(s.entries, models.LedgerEntry{
		EntryID: uuid.NewString(), TransactionID: txID, AccountID: principal, Asset: asset,
		Debit: amount, Description: memo, Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *Store) Credit(_ context.Context, txID, principal string, asset models.Asset, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	w := s.ensureWallet(principal, asset, now)
	w.Balance += amount
	w.Version++
	s.wallets[walletKey{principal, asset}] = w

	s.entries = append(s.entries, models.LedgerEntry{
		EntryID: uuid.NewString(), TransactionID: txID, AccountID: principal, Asset: asset,
		Credit: amount, Description: memo, Timestamp: now,
	})
	return nil
}

func (s *Store) ListLedgerEntries(_ context.Context, principal string, limit int32) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.LedgerEntry{}
	for _, e := range s.entries {
		if e.AccountID == principal {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// depositAddress returns a placeholder receive address for the asset.
func depositAddress(asset models.Asset) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	switch asset {
	case models.BTC:
		return "tb1q" + id[:32]
	case models.USDC:
		return "0x" + id + id[:8]
	default:
		return ""
	}
}
