package memory

import (
	"context"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

func (s *Store) GetAccount(_ context.Context, phoneOrEmail string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[phoneOrEmail]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &acct, nil
}

func (s *Store) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.PhoneOrEmail]; ok {
		return storage.ErrAlreadyExists
	}
	s.accounts[account.PhoneOrEmail] = *account
	return nil
}

func (s *Store) UpdatePIN(_ context.Context, phoneOrEmail, pinHash string) error {
	return s.updateAccount(phoneOrEmail, func(a *models.Account) {
		a.PinHash = pinHash
		a.PinFailures = 0
		a.LockedUntil = nil
	})
}

func (s *Store) UpdatePreferences(_ context.Context, phoneOrEmail, language, currency string) error {
	return s.updateAccount(phoneOrEmail, func(a *models.Account) {
		if language != "" {
			a.Language = language
		}
		if currency != "" {
			a.PreferredCurrency = currency
		}
	})
}

func (s *Store) IncrementPINFailures(_ context.Context, phoneOrEmail string) (*models.Account, error) {
	var out models.Account
	err := s.updateAccount(phoneOrEmail, func(a *models.Account) {
		a.PinFailures++
		out = *a
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) LockAccount(_ context.Context, phoneOrEmail string, until time.Time) error {
	return s.updateAccount(phoneOrEmail, func(a *models.Account) {
		a.LockedUntil = &until
		a.PinFailures = 0
	})
}

func (s *Store) ResetPINFailures(_ context.Context, phoneOrEmail string) error {
	return s.updateAccount(phoneOrEmail, func(a *models.Account) {
		a.PinFailures = 0
		a.LockedUntil = nil
	})
}

func (s *Store) updateAccount(phoneOrEmail string, fn func(*models.Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[phoneOrEmail]
	if !ok {
		return storage.ErrNotFound
	}
	fn(&acct)
	acct.UpdatedAt = time.Now().UTC()
	s.accounts[phoneOrEmail] = acct
	return nil
}
