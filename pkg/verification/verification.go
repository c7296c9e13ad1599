// Package verification issues and checks the one-time codes that prove a
// caller owns the phone number they are registering.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/notify"
)

const codeLength = 6

// retention keeps an expired code around long enough to report it as expired.
const retention = time.Minute

var (
	ErrCodeNotFound    = errors.New("no verification code outstanding")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("verification code mismatch")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrDelivery        = errors.New("verification code delivery failed")
)

// Code is an outstanding verification code.
type Code struct {
	Phone    string    `json:"phone"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
	Attempts int       `json:"attempts"`
}

// Store keeps at most one code per phone number.
type Store interface {
	// Put stores code, replacing any previous code for the same phone.
	Put(ctx context.Context, code Code, ttl time.Duration) error
	// Get returns ErrCodeNotFound when nothing is stored.
	Get(ctx context.Context, phone string) (*Code, error)
	Delete(ctx context.Context, phone string) error
	// IncrementAttempts records a failed attempt and returns the new count.
	IncrementAttempts(ctx context.Context, phone string) (int, error)
}

// Service issues and checks codes.
type Service struct {
	store       Store
	sender      notify.Sender
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewService creates a Service.
func NewService(store Store, sender notify.Sender, ttl time.Duration, maxAttempts int) *Service {
	return &Service{
		store:       store,
		sender:      sender,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// MaxAttempts is the number of wrong entries allowed per code.
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// Issue generates a fresh code for phone and delivers it by SMS. A code that
// could not be delivered is removed again.
func (s *Service) Issue(ctx context.Context, phone string, lang i18n.Lang) error {
	value, err := randomDigits(codeLength)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	code := Code{Phone: phone, Code: value, IssuedAt: s.now().UTC()}
	if err := s.store.Put(ctx, code, s.ttl+retention); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.sender.Send(ctx, phone, i18n.T(lang, i18n.KeySMSVerification, value)); err != nil {
		if delErr := s.store.Delete(ctx, phone); delErr != nil {
			slog.Error("failed to discard undelivered verification code", "phone", phone, "error", delErr)
		}
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	slog.Info("verification code issued", "phone", phone)
	return nil
}

// Check compares candidate against the outstanding code for phone. A matching
// code is consumed. Wrong-length input counts as a failed attempt.
func (s *Service) Check(ctx context.Context, phone, candidate string) error {
	code, err := s.store.Get(ctx, phone)
	if err != nil {
		return err
	}

	if s.now().Sub(code.IssuedAt) > s.ttl {
		if err := s.store.Delete(ctx, phone); err != nil {
			return fmt.Errorf("failed to delete expired code: %w", err)
		}
		return ErrCodeExpired
	}

	if len(candidate) == codeLength && subtle.ConstantTimeCompare([]byte(candidate), []byte(code.Code)) == 1 {
		if err := s.store.Delete(ctx, phone); err != nil {
			return fmt.Errorf("failed to consume verification code: %w", err)
		}
		return nil
	}

	attempts, err := s.store.IncrementAttempts(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to record verification attempt: %w", err)
	}
	if attempts >= s.maxAttempts {
		if err := s.store.Delete(ctx, phone); err != nil {
			return fmt.Errorf("failed to delete exhausted code: %w", err)
		}
		return ErrTooManyAttempts
	}
	return ErrCodeMismatch
}

// Remaining reports how many attempts are left on the outstanding code.
func (s *Service) Remaining(ctx context.Context, phone string) int {
	code, err := s.store.Get(ctx, phone)
	if err != nil {
		return 0
	}
	return s.maxAttempts - code.Attempts
}

func randomDigits(n int) (string, error) {
	const digits = "0123456789"
	out := make([]byte, n)
	max := big.NewInt(int64(len(digits)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = digits[idx.Int64()]
	}
	return string(out), nil
}
