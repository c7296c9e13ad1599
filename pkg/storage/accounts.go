package storage

import (
	"context"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

// AccountStore defines the interface for reading and writing user accounts.
type AccountStore interface {
	// GetAccount retrieves an account by phone number or email. Returns ErrNotFound if absent.
	GetAccount(ctx context.Context, phoneOrEmail string) (*models.Account, error)

	// CreateAccount stores a new account. Returns ErrAlreadyExists if the identity is taken.
	CreateAccount(ctx context.Context, account *models.Account) error

	// UpdatePIN replaces the stored PIN hash and clears any failure state.
	UpdatePIN(ctx context.Context, phoneOrEmail, pinHash string) error

	// UpdatePreferences sets the language and preferred currency. Empty values are left unchanged.
	UpdatePreferences(ctx context.Context, phoneOrEmail, language, currency string) error

	// IncrementPINFailures atomically adds one to the failure counter and returns the updated account.
	IncrementPINFailures(ctx context.Context, phoneOrEmail string) (*models.Account, error)

	// LockAccount sets locked_until and resets the failure counter.
	LockAccount(ctx context.Context, phoneOrEmail string, until time.Time) error

	// ResetPINFailures clears the failure counter and any lock.
	ResetPINFailures(ctx context.Context, phoneOrEmail string) error
}
