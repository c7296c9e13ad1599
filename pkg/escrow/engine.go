// Package escrow coordinates time-boxed exchange agreements between a user
// and a cash agent. The engine never moves funds itself: funding is reported
// by the ledger, and releases and refunds are handed to a scheduler.
package escrow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/scheduler"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/google/uuid"
)

const maxCodeAttempts = 5

// Observer is told about every state change the engine commits.
type Observer interface {
	AgreementChanged(ctx context.Context, a *models.Agreement)
}

// CreateRequest describes a new agreement. AgentID may be empty.
type CreateRequest struct {
	InitiatorID string
	AgentID     string
	Asset       models.Asset
	Direction   models.Direction
	AssetAmount int64
	LocalAmount int64
	Currency    string
}

// Engine owns the agreement state machine:
//
//	pending -> funded -> completed
//	pending|funded -> expired
//	pending -> cancelled
type Engine struct {
	store     storage.AgreementStore
	settler   scheduler.Scheduler
	observers []Observer
	ttl       time.Duration
	now       func() time.Time
	newCode   func(models.Asset) (string, error)
}

// NewEngine creates an Engine. settler may be nil, in which case releases and
// refunds are left for an external process to pick up.
func NewEngine(store storage.AgreementStore, settler scheduler.Scheduler, ttl time.Duration, observers ...Observer) *Engine {
	return &Engine{
		store:     store,
		settler:   settler,
		observers: observers,
		ttl:       ttl,
		now:       time.Now,
		newCode:   GenerateCode,
	}
}

// Create persists a new pending agreement under a freshly generated exchange code.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*models.Agreement, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := e.now().UTC()
	a := &models.Agreement{
		Id:                  uuid.NewString(),
		InitiatorUserId:     req.InitiatorID,
		AssignedAgentId:     req.AgentID,
		AssetType:           req.Asset,
		Direction:           req.Direction,
		AssetAmount:         req.AssetAmount,
		LocalCurrencyAmount: req.LocalAmount,
		Currency:            req.Currency,
		Status:              models.PENDING,
		CreatedAt:           now,
		UpdatedAt:           now,
		ExpiresAt:           now.Add(e.ttl).Truncate(time.Second),
	}

	for i := 0; i < maxCodeAttempts; i++ {
		code, err := e.newCode(req.Asset)
		if err != nil {
			return nil, fmt.Errorf("failed to generate exchange code: %w", err)
		}
		a.ExchangeCode = code

		err = e.store.CreateAgreement(ctx, a)
		if errors.Is(err, storage.ErrAlreadyExists) {
			slog.Warn("exchange code collision, regenerating", "code", code)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create agreement: %w", err)
		}

		slog.Info("agreement created", "code", code, "direction", a.Direction, "asset", a.AssetType)
		e.notify(ctx, a)
		return a, nil
	}
	return nil, ErrCodeSpaceExhausted
}

func validate(req CreateRequest) error {
	switch {
	case req.InitiatorID == "":
		return fmt.Errorf("%w: initiator is required", ErrInvalidRequest)
	case !req.Asset.IsCrypto():
		return fmt.Errorf("%w: unsupported asset %q", ErrInvalidRequest, req.Asset)
	case req.Direction != models.SELL && req.Direction != models.BUY:
		return fmt.Errorf("%w: unsupported direction %q", ErrInvalidRequest, req.Direction)
	case req.AssetAmount <= 0 || req.LocalAmount <= 0:
		return fmt.Errorf("%w: amounts must be positive", ErrInvalidRequest)
	case req.Currency == "":
		return fmt.Errorf("%w: currency is required", ErrInvalidRequest)
	case req.AgentID != "" && req.AgentID == req.InitiatorID:
		return fmt.Errorf("%w: initiator cannot be the agent", ErrInvalidRequest)
	}
	return nil
}

// Get looks up an agreement by code, expiring it first if its deadline has passed.
func (e *Engine) Get(ctx context.Context, code string) (*models.Agreement, error) {
	a, err := e.get(ctx, NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if !a.Status.IsTerminal() && a.IsExpired(e.now()) {
		expired, err := e.expire(ctx, a.ExchangeCode)
		if err != nil {
			return nil, err
		}
		if expired != nil {
			return expired, nil
		}
		return e.get(ctx, a.ExchangeCode)
	}
	return a, nil
}

// Fund records that the funder's transfer into escrow has been confirmed.
// Redelivery of the same reference is accepted without a second transition.
func (e *Engine) Fund(ctx context.Context, code, reference string) (*models.Agreement, error) {
	code = NormalizeCode(code)
	check := func(a *models.Agreement) error {
		if a.Status == models.FUNDED {
			if a.FundingRef == reference {
				return nil
			}
			return ErrAlreadyFunded
		}
		if err := terminal(a); err != nil {
			return err
		}
		if a.IsExpired(e.now()) {
			return e.lazyExpire(ctx, a)
		}
		return nil
	}

	a, err := e.get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := check(a); err != nil {
		return nil, err
	}
	if a.Status == models.FUNDED {
		return a, nil
	}

	funded, err := e.store.FundAgreement(ctx, code, reference, e.now())
	if errors.Is(err, storage.ErrConditionFailed) {
		current, err := e.get(ctx, code)
		if err != nil {
			return nil, err
		}
		if err := check(current); err != nil {
			return nil, err
		}
		if current.Status == models.FUNDED {
			return current, nil
		}
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fund agreement: %w", err)
	}

	slog.Info("agreement funded", "code", code, "reference", reference)
	e.notify(ctx, funded)
	return funded, nil
}

// Claim binds an unassigned agreement to agentID.
func (e *Engine) Claim(ctx context.Context, code, agentID string) (*models.Agreement, error) {
	code = NormalizeCode(code)
	check := func(a *models.Agreement) error {
		if err := terminal(a); err != nil {
			return err
		}
		if a.AssignedAgentId != "" && a.AssignedAgentId != agentID {
			return ErrUnauthorizedAgent
		}
		if a.IsExpired(e.now()) {
			return e.lazyExpire(ctx, a)
		}
		return nil
	}

	a, err := e.get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := check(a); err != nil {
		return nil, err
	}
	if a.AssignedAgentId == agentID {
		return a, nil
	}

	claimed, err := e.store.ClaimAgreement(ctx, code, agentID, e.now())
	if errors.Is(err, storage.ErrConditionFailed) {
		return e.reclassify(ctx, code, check)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim agreement: %w", err)
	}

	slog.Info("agreement claimed", "code", code, "agent_id", agentID)
	e.notify(ctx, claimed)
	return claimed, nil
}

// VerifyAndComplete completes a funded agreement on behalf of agentID. The
// checks run in a fixed order: unknown code, terminal status, agent binding,
// deadline, funding. An unassigned agreement is bound to agentID in the same
// conditional write that completes it.
func (e *Engine) VerifyAndComplete(ctx context.Context, code, agentID string) (*models.Agreement, error) {
	code = NormalizeCode(code)
	check := func(a *models.Agreement) error {
		if err := terminal(a); err != nil {
			return err
		}
		if a.AssignedAgentId != "" && a.AssignedAgentId != agentID {
			return ErrUnauthorizedAgent
		}
		if a.IsExpired(e.now()) {
			return e.lazyExpire(ctx, a)
		}
		if a.Status == models.PENDING {
			return ErrNotFunded
		}
		return nil
	}

	a, err := e.get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := check(a); err != nil {
		return nil, err
	}

	done, err := e.store.CompleteAgreement(ctx, code, agentID, e.now())
	if errors.Is(err, storage.ErrConditionFailed) {
		return e.reclassify(ctx, code, check)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete agreement: %w", err)
	}

	slog.Info("agreement completed", "code", code, "agent_id", agentID)
	e.settle(ctx, scheduler.ReleaseFor(done))
	e.notify(ctx, done)
	return done, nil
}

// Cancel withdraws a pending agreement on behalf of its initiator.
func (e *Engine) Cancel(ctx context.Context, code, userID string) (*models.Agreement, error) {
	code = NormalizeCode(code)
	check := func(a *models.Agreement) error {
		if a.InitiatorUserId != userID {
			return ErrNotInitiator
		}
		if a.Status == models.CANCELLED {
			return ErrCancelled
		}
		if a.Status != models.PENDING {
			return ErrNotCancellable
		}
		return nil
	}

	a, err := e.get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := check(a); err != nil {
		return nil, err
	}

	cancelled, err := e.store.CancelAgreement(ctx, code, userID, e.now())
	if errors.Is(err, storage.ErrConditionFailed) {
		return e.reclassify(ctx, code, check)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel agreement: %w", err)
	}

	slog.Info("agreement cancelled", "code", code)
	e.notify(ctx, cancelled)
	return cancelled, nil
}

// SweepOverdue expires every pending or funded agreement past its deadline and
// returns the agreements it expired.
func (e *Engine) SweepOverdue(ctx context.Context) ([]models.Agreement, error) {
	now := e.now()
	var expired []models.Agreement
	for _, status := range []models.AgreementStatus{models.PENDING, models.FUNDED} {
		overdue, err := e.store.ListOverdueAgreements(ctx, status, now)
		if err != nil {
			return expired, fmt.Errorf("failed to list overdue %s agreements: %w", status, err)
		}
		for _, a := range overdue {
			done, err := e.expire(ctx, a.ExchangeCode)
			if err != nil {
				slog.Error("failed to expire agreement", "code", a.ExchangeCode, "error", err)
				continue
			}
			if done != nil {
				expired = append(expired, *done)
			}
		}
	}
	return expired, nil
}

// ListByInitiator returns a user's agreements.
func (e *Engine) ListByInitiator(ctx context.Context, userID string) ([]models.Agreement, error) {
	return e.store.ListAgreementsByInitiator(ctx, userID)
}

// ListByAgent returns the agreements bound to an agent.
func (e *Engine) ListByAgent(ctx context.Context, agentID string) ([]models.Agreement, error) {
	return e.store.ListAgreementsByAgent(ctx, agentID)
}

func (e *Engine) get(ctx context.Context, code string) (*models.Agreement, error) {
	a, err := e.store.GetAgreement(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}
	return a, nil
}

// reclassify re-reads an agreement after a lost conditional write and reports
// why the transition no longer applies.
func (e *Engine) reclassify(ctx context.Context, code string, check func(*models.Agreement) error) (*models.Agreement, error) {
	a, err := e.get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := check(a); err != nil {
		return nil, err
	}
	return nil, ErrConflict
}

// lazyExpire expires an agreement found past its deadline and always reports ErrExpired.
func (e *Engine) lazyExpire(ctx context.Context, a *models.Agreement) error {
	if _, err := e.expire(ctx, a.ExchangeCode); err != nil {
		return err
	}
	return ErrExpired
}

// expire commits pending|funded -> expired. It returns nil, nil when another
// writer got there first.
func (e *Engine) expire(ctx context.Context, code string) (*models.Agreement, error) {
	a, err := e.store.ExpireAgreement(ctx, code, e.now())
	if errors.Is(err, storage.ErrConditionFailed) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to expire agreement: %w", err)
	}

	slog.Info("agreement expired", "code", code, "funded", a.FundingRef != "")
	if a.FundingRef != "" {
		e.settle(ctx, scheduler.RefundFor(a))
	}
	e.notify(ctx, a)
	return a, nil
}

func (e *Engine) settle(ctx context.Context, req scheduler.SettlementRequest) {
	if e.settler == nil {
		return
	}
	if err := e.settler.ScheduleSettlement(ctx, req); err != nil {
		slog.Error("CRITICAL: agreement resolved but settlement not scheduled",
			"code", req.ExchangeCode, "kind", req.Kind, "error", err)
	}
}

func (e *Engine) notify(ctx context.Context, a *models.Agreement) {
	for _, o := range e.observers {
		o.AgreementChanged(ctx, a)
	}
}

func terminal(a *models.Agreement) error {
	switch a.Status {
	case models.COMPLETED:
		return ErrAlreadyCompleted
	case models.EXPIRED:
		return ErrExpired
	case models.CANCELLED:
		return ErrCancelled
	}
	return nil
}
