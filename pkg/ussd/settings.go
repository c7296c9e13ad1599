package ussd

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/pin"
	"github.com/chris/cash-agent-exchange/pkg/session"
)

func enterChangePin(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Begin(session.MenuChangePin, session.NewPinChange())
	return m.con(s, i18n.KeyEnterCurrentPin), nil
}

// changePin: current PIN, new PIN, confirmation. The current PIN is checked
// even when the session is already verified.
func changePin(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	draft := s.Flow.PinChange

	switch s.Step {
	case 1:
		acct, err := m.gate.Verify(ctx, s.PhoneNumber, input)
		switch {
		case err == nil:
		case errors.Is(err, pin.ErrInvalidFormat), errors.Is(err, pin.ErrMismatch):
			draft.Attempts++
			if draft.Attempts >= maxPinAttempts {
				return m.end(s, i18n.KeyPinTooMany), nil
			}
			return m.con(s, i18n.KeyPinWrong, maxPinAttempts-draft.Attempts), nil
		case errors.Is(err, pin.ErrLocked):
			return m.end(s, i18n.KeyAccountLocked, formatTime(*acct.LockedUntil)), nil
		case errors.Is(err, pin.ErrNotSet):
			return enterPinSetup(ctx, m, s, "")
		default:
			return Response{}, err
		}
		s.PinVerified = true
		s.Next()
		return m.con(s, i18n.KeyEnterNewPin), nil

	case 2:
		hash, err := pin.Hash(input)
		if errors.Is(err, pin.ErrInvalidFormat) {
			return m.con(s, i18n.KeyPinInvalidFormat), nil
		}
		if err != nil {
			return Response{}, err
		}
		draft.NewPinHash = hash
		s.Next()
		return m.con(s, i18n.KeyConfirmNewPin), nil

	default:
		if !pin.Valid(input) || !pin.Matches(draft.NewPinHash, input) {
			draft.NewPinHash = ""
			s.Step = 2
			return m.con(s, i18n.KeyPinConfirmMismatch), nil
		}
		if err := m.accounts.UpdatePIN(ctx, s.PhoneNumber, draft.NewPinHash); err != nil {
			return Response{}, fmt.Errorf("failed to update pin: %w", err)
		}
		return m.end(s, i18n.KeyPinChanged), nil
	}
}
