package ussd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/pin"
	"github.com/chris/cash-agent-exchange/pkg/session"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/chris/cash-agent-exchange/pkg/verification"
)

func enterRegistrationCheck(ctx context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuRegistrationCheck)
	return registrationCheck(ctx, m, s, "")
}

// registrationCheck routes a new conversation by the state of the caller's account.
func registrationCheck(ctx context.Context, m *Machine, s *session.Session, _ string) (Response, error) {
	acct, err := m.accounts.GetAccount(ctx, s.PhoneNumber)
	if errors.Is(err, storage.ErrNotFound) {
		if s.Currency == "" {
			s.Currency = CurrencyFor(s.PhoneNumber, m.currency)
		}
		return enterUserRegistration(ctx, m, s, "")
	}
	if err != nil {
		return Response{}, fmt.Errorf("failed to get account: %w", err)
	}

	if acct.Language != "" {
		s.Language = acct.Language
	}
	s.Currency = acct.PreferredCurrency
	if s.Currency == "" {
		s.Currency = CurrencyFor(s.PhoneNumber, m.currency)
	}

	if acct.IsLocked(m.now()) {
		return m.end(s, i18n.KeyAccountLocked, formatTime(*acct.LockedUntil)), nil
	}
	if !acct.HasPIN() {
		return enterPinSetup(ctx, m, s, "")
	}
	return enterMain(ctx, m, s, "")
}

func enterUserRegistration(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Begin(session.MenuUserRegistration, session.NewRegistration())
	return m.con(s, i18n.KeyWelcome), nil
}

// userRegistration takes the caller's full name and sends the verification code.
func userRegistration(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	fields := strings.Fields(input)
	if len(fields) < 2 || len(strings.Join(fields, " ")) < 3 {
		return m.con(s, i18n.KeyNameInvalid), nil
	}

	draft := s.Flow.Registration
	draft.FirstName = fields[0]
	draft.LastName = strings.Join(fields[1:], " ")

	err := m.verifier.Issue(ctx, s.PhoneNumber, m.lang(s))
	if errors.Is(err, verification.ErrDelivery) {
		slog.Error("verification code delivery failed", "phone", s.PhoneNumber, "error", err)
		return m.end(s, i18n.KeyDeliveryFailed), nil
	}
	if err != nil {
		return Response{}, err
	}

	s.Carry(session.MenuVerification)
	return m.con(s, i18n.KeyCodeSent, s.PhoneNumber), nil
}

// verifyCode checks the code and creates the account once it matches.
func verifyCode(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	err := m.verifier.Check(ctx, s.PhoneNumber, input)
	switch {
	case err == nil:
	case errors.Is(err, verification.ErrCodeMismatch):
		return m.con(s, i18n.KeyCodeInvalid, m.verifier.Remaining(ctx, s.PhoneNumber)), nil
	case errors.Is(err, verification.ErrTooManyAttempts):
		return m.end(s, i18n.KeyCodeTooMany), nil
	case errors.Is(err, verification.ErrCodeExpired), errors.Is(err, verification.ErrCodeNotFound):
		return m.end(s, i18n.KeyCodeExpired), nil
	default:
		return Response{}, err
	}

	now := m.now().UTC()
	draft := s.Flow.Registration
	acct := &models.Account{
		PhoneOrEmail:      s.PhoneNumber,
		FirstName:         draft.FirstName,
		LastName:          draft.LastName,
		PreferredCurrency: m.localCurrency(s),
		Language:          string(m.lang(s)),
		KYCStatus:         models.KYCNotStarted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := m.accounts.CreateAccount(ctx, acct); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return Response{}, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("account registered", "phone", s.PhoneNumber)
	return enterPinSetup(ctx, m, s, "")
}

func enterPinSetup(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuPinSetup)
	return m.con(s, i18n.KeySetPin), nil
}

// pinSetup stores the hash of the first PIN. The session stays unverified.
func pinSetup(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	if !pin.Valid(input) {
		return m.con(s, i18n.KeyPinInvalidFormat), nil
	}
	hash, err := pin.Hash(input)
	if err != nil {
		return Response{}, err
	}
	if err := m.accounts.UpdatePIN(ctx, s.PhoneNumber, hash); err != nil {
		return Response{}, fmt.Errorf("failed to store pin: %w", err)
	}

	s.PinVerified = false
	return enterMain(ctx, m, s, "")
}

// pinCheck verifies the PIN in front of a gated screen and then opens it.
func pinCheck(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	gate := s.Flow.Gate

	acct, err := m.gate.Verify(ctx, s.PhoneNumber, input)
	switch {
	case err == nil:
		s.PinVerified = true
		return m.open(ctx, s, gate.Target, gate.Asset)
	case errors.Is(err, pin.ErrInvalidFormat):
		gate.Attempts++
		if gate.Attempts >= maxPinAttempts {
			return m.end(s, i18n.KeyPinTooMany), nil
		}
		return m.con(s, i18n.KeyPinInvalidFormat), nil
	case errors.Is(err, pin.ErrMismatch):
		gate.Attempts++
		if gate.Attempts >= maxPinAttempts {
			return m.end(s, i18n.KeyPinTooMany), nil
		}
		return m.con(s, i18n.KeyPinWrong, maxPinAttempts-gate.Attempts), nil
	case errors.Is(err, pin.ErrLocked):
		return m.end(s, i18n.KeyAccountLocked, formatTime(*acct.LockedUntil)), nil
	case errors.Is(err, pin.ErrNotSet):
		return enterPinSetup(ctx, m, s, "")
	default:
		return Response{}, err
	}
}
