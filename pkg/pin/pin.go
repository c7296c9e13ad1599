// Package pin hashes PINs and guards value-moving operations behind them.
package pin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

// Length is the number of digits in a PIN.
const Length = 4

var (
	ErrInvalidFormat = errors.New("pin must be exactly 4 digits")
	ErrMismatch      = errors.New("pin mismatch")
	ErrLocked        = errors.New("account locked")
	ErrNotSet        = errors.New("pin not set")
)

// Valid reports whether s is a well-formed PIN.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Hash returns the bcrypt hash of a well-formed PIN.
func Hash(p string) (string, error) {
	if !Valid(p) {
		return "", ErrInvalidFormat
	}
	h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(h), nil
}

// Matches reports whether p matches hash. bcrypt compares in constant time.
func Matches(hash, p string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(p)) == nil
}

// Gate checks PINs against the stored account and maintains the persistent
// failure counter. Reaching threshold consecutive failures locks the account
// for cooldown; a correct PIN resets the counter.
type Gate struct {
	accounts  storage.AccountStore
	threshold int64
	cooldown  time.Duration
	now       func() time.Time
}

// NewGate creates a Gate.
func NewGate(accounts storage.AccountStore, threshold int64, cooldown time.Duration) *Gate {
	return &Gate{accounts: accounts, threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Verify checks candidate for the account identified by phone. Wrong-length
// input returns ErrInvalidFormat and is not counted as a failure.
func (g *Gate) Verify(ctx context.Context, phone, candidate string) (*models.Account, error) {
	if !Valid(candidate) {
		return nil, ErrInvalidFormat
	}

	acct, err := g.accounts.GetAccount(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if acct.IsLocked(g.now()) {
		return acct, ErrLocked
	}
	if !acct.HasPIN() {
		return acct, ErrNotSet
	}

	if Matches(acct.PinHash, candidate) {
		if acct.PinFailures > 0 || acct.LockedUntil != nil {
			if err := g.accounts.ResetPINFailures(ctx, phone); err != nil {
				return nil, fmt.Errorf("failed to reset pin failures: %w", err)
			}
		}
		return acct, nil
	}

	updated, err := g.accounts.IncrementPINFailures(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to record pin failure: %w", err)
	}
	if updated.PinFailures >= g.threshold {
		until := g.now().Add(g.cooldown).UTC()
		if err := g.accounts.LockAccount(ctx, phone, until); err != nil {
			return nil, fmt.Errorf("failed to lock account: %w", err)
		}
		slog.Warn("account locked after repeated pin failures", "phone", phone, "until", until)
		updated.LockedUntil = &until
		return updated, ErrLocked
	}
	return updated, ErrMismatch
}
