package escrow

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/scheduler"
	schedulermocks "github.com/chris/cash-agent-exchange/pkg/scheduler/mocks"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/chris/cash-agent-exchange/pkg/storage/memory"
	storagemocks "github.com/chris/cash-agent-exchange/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	changes []models.AgreementStatus
}

func (r *recorder) AgreementChanged(_ context.Context, a *models.Agreement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, a.Status)
}

func sellRequest() CreateRequest {
	return CreateRequest{
		InitiatorID: "u1",
		Asset:       models.BTC,
		Direction:   models.SELL,
		AssetAmount: 500000,
		LocalAmount: 750000,
		Currency:    "UGX",
	}
}

func newTestEngine(t *testing.T) (*Engine, *memory.Store, *schedulermocks.Scheduler, *recorder) {
	t.Helper()
	store := memory.New()
	settler := schedulermocks.NewScheduler(t)
	rec := &recorder{}
	return NewEngine(store, settler, 24*time.Hour, rec), store, settler, rec
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending With Asset Prefixed Code", func(t *testing.T) {
		e, _, _, rec := newTestEngine(t)

		a, err := e.Create(ctx, sellRequest())

		require.NoError(t, err)
		assert.Equal(t, models.PENDING, a.Status)
		assert.Regexp(t, regexp.MustCompile(`^BTC-[A-Z0-9]{6}$`), a.ExchangeCode)
		assert.Empty(t, a.AssignedAgentId)
		assert.WithinDuration(t, a.CreatedAt.Add(24*time.Hour), a.ExpiresAt, time.Second)
		assert.Equal(t, []models.AgreementStatus{models.PENDING}, rec.changes)
	})

	t.Run("Regenerates On Collision", func(t *testing.T) {
		e, store, _, _ := newTestEngine(t)
		codes := []string{"BTC-AAAAAA", "BTC-AAAAAA", "BTC-BBBBBB"}
		e.newCode = func(models.Asset) (string, error) {
			c := codes[0]
			codes = codes[1:]
			return c, nil
		}

		first, err := e.Create(ctx, sellRequest())
		require.NoError(t, err)
		second, err := e.Create(ctx, sellRequest())
		require.NoError(t, err)

		assert.Equal(t, "BTC-AAAAAA", first.ExchangeCode)
		assert.Equal(t, "BTC-BBBBBB", second.ExchangeCode)
		stored, err := store.GetAgreement(ctx, "BTC-AAAAAA")
		require.NoError(t, err)
		assert.Equal(t, first.Id, stored.Id)
	})

	t.Run("Gives Up After Bounded Attempts", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		e.newCode = func(models.Asset) (string, error) { return "BTC-AAAAAA", nil }
		_, err := e.Create(ctx, sellRequest())
		require.NoError(t, err)

		_, err = e.Create(ctx, sellRequest())

		assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	})

	t.Run("Validation", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		bad := []func(*CreateRequest){
			func(r *CreateRequest) { r.InitiatorID = "" },
			func(r *CreateRequest) { r.Asset = "DOGE" },
			func(r *CreateRequest) { r.Direction = "swap" },
			func(r *CreateRequest) { r.AssetAmount = 0 },
			func(r *CreateRequest) { r.Currency = "" },
			func(r *CreateRequest) { r.AgentID = r.InitiatorID },
		}
		for _, mutate := range bad {
			req := sellRequest()
			mutate(&req)
			_, err := e.Create(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		}
	})

	t.Run("CreateAgreement Fails", func(t *testing.T) {
		store := storagemocks.NewAgreementStore(t)
		e := NewEngine(store, nil, time.Hour)
		store.On("CreateAgreement", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

		_, err := e.Create(ctx, sellRequest())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create agreement")
	})
}

func TestVerifyAndComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("Before Funding Fails Without Changing Status", func(t *testing.T) {
		e, store, _, _ := newTestEngine(t)
		a, err := e.Create(ctx, sellRequest())
		require.NoError(t, err)

		_, err = e.VerifyAndComplete(ctx, a.ExchangeCode, "agentZ")

		assert.ErrorIs(t, err, ErrNotFunded)
		stored, _ := store.GetAgreement(ctx, a.ExchangeCode)
		assert.Equal(t, models.PENDING, stored.Status)
		assert.Empty(t, stored.AssignedAgentId)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)

		_, err := e.VerifyAndComplete(ctx, "BTC-ZZZZZZ", "agentZ")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Binds Unassigned Agent And Schedules Release", func(t *testing.T) {
		e, _, settler, rec := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, err := e.Fund(ctx, a.ExchangeCode, "fund-ref")
		require.NoError(t, err)

		settler.On("ScheduleSettlement", mock.Anything, mock.MatchedBy(func(r scheduler.SettlementRequest) bool {
			return r.Kind == storage.SettlementRelease && r.To == "agentZ" && r.Amount == 500000
		})).Return(nil).Once()

		done, err := e.VerifyAndComplete(ctx, a.ExchangeCode, "agentZ")

		require.NoError(t, err)
		assert.Equal(t, models.COMPLETED, done.Status)
		assert.Equal(t, "agentZ", done.AssignedAgentId)
		assert.Equal(t, []models.AgreementStatus{models.PENDING, models.FUNDED, models.COMPLETED}, rec.changes)
	})

	t.Run("Second Verification Is Rejected", func(t *testing.T) {
		e, store, settler, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, _ = e.Fund(ctx, a.ExchangeCode, "fund-ref")
		settler.On("ScheduleSettlement", mock.Anything, mock.Anything).Return(nil).Once()
		_, err := e.VerifyAndComplete(ctx, a.ExchangeCode, "agentZ")
		require.NoError(t, err)

		for _, agent := range []string{"agentZ", "agentY"} {
			_, err = e.VerifyAndComplete(ctx, a.ExchangeCode, agent)
			assert.ErrorIs(t, err, ErrAlreadyCompleted)
		}
		stored, _ := store.GetAgreement(ctx, a.ExchangeCode)
		assert.Equal(t, models.COMPLETED, stored.Status)
	})

	t.Run("Other Agent Rejected", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		req := sellRequest()
		req.AgentID = "agentA"
		a, _ := e.Create(ctx, req)
		_, _ = e.Fund(ctx, a.ExchangeCode, "fund-ref")

		_, err := e.VerifyAndComplete(ctx, a.ExchangeCode, "agentB")

		assert.ErrorIs(t, err, ErrUnauthorizedAgent)
	})

	t.Run("After Deadline Expires And Refunds Funded", func(t *testing.T) {
		e, store, settler, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, _ = e.Fund(ctx, a.ExchangeCode, "fund-ref")
		e.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		settler.On("ScheduleSettlement", mock.Anything, mock.MatchedBy(func(r scheduler.SettlementRequest) bool {
			return r.Kind == storage.SettlementRefund && r.To == "u1"
		})).Return(nil).Once()

		_, err := e.VerifyAndComplete(ctx, a.ExchangeCode, "agentZ")

		assert.ErrorIs(t, err, ErrExpired)
		stored, _ := store.GetAgreement(ctx, a.ExchangeCode)
		assert.Equal(t, models.EXPIRED, stored.Status)

		_, err = e.VerifyAndComplete(ctx, a.ExchangeCode, "agentZ")
		assert.ErrorIs(t, err, ErrExpired)
	})

	t.Run("Pending Past Deadline Expires Without Refund", func(t *testing.T) {
		e, store, _, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		e.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		_, err := e.VerifyAndComplete(ctx, a.ExchangeCode, "agentZ")

		assert.ErrorIs(t, err, ErrExpired)
		stored, _ := store.GetAgreement(ctx, a.ExchangeCode)
		assert.Equal(t, models.EXPIRED, stored.Status)
	})

	t.Run("Concurrent Agents Complete At Most Once", func(t *testing.T) {
		e, store, settler, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, _ = e.Fund(ctx, a.ExchangeCode, "fund-ref")
		settler.On("ScheduleSettlement", mock.Anything, mock.Anything).Return(nil).Once()

		var wg sync.WaitGroup
		results := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := e.VerifyAndComplete(ctx, a.ExchangeCode, []string{"agentA", "agentB"}[i%2])
				results <- err
			}(i)
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
			}
		}
		assert.Equal(t, 1, wins)
		stored, _ := store.GetAgreement(ctx, a.ExchangeCode)
		assert.Equal(t, models.COMPLETED, stored.Status)
	})

	t.Run("Lowercase Code Is Accepted", func(t *testing.T) {
		e, _, settler, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, _ = e.Fund(ctx, a.ExchangeCode, "fund-ref")
		settler.On("ScheduleSettlement", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := e.VerifyAndComplete(ctx, " "+strings.ToLower(a.ExchangeCode)+" ", "agentZ")

		assert.NoError(t, err)
	})
}

func TestFund(t *testing.T) {
	ctx := context.Background()

	t.Run("Redelivery Is Idempotent", func(t *testing.T) {
		e, _, _, rec := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())

		first, err := e.Fund(ctx, a.ExchangeCode, "ref-1")
		require.NoError(t, err)
		second, err := e.Fund(ctx, a.ExchangeCode, "ref-1")
		require.NoError(t, err)

		assert.Equal(t, first.FundingRef, second.FundingRef)
		assert.Equal(t, []models.AgreementStatus{models.PENDING, models.FUNDED}, rec.changes)
	})

	t.Run("Different Reference Rejected", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, _ = e.Fund(ctx, a.ExchangeCode, "ref-1")

		_, err := e.Fund(ctx, a.ExchangeCode, "ref-2")

		assert.ErrorIs(t, err, ErrAlreadyFunded)
	})

	t.Run("Cancelled Agreement Cannot Be Funded", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, err := e.Cancel(ctx, a.ExchangeCode, "u1")
		require.NoError(t, err)

		_, err = e.Fund(ctx, a.ExchangeCode, "ref-1")

		assert.ErrorIs(t, err, ErrCancelled)
	})
}

func TestClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("First Claim Wins", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		req := sellRequest()
		req.Direction = models.BUY
		a, _ := e.Create(ctx, req)

		claimed, err := e.Claim(ctx, a.ExchangeCode, "agentA")
		require.NoError(t, err)
		assert.Equal(t, "agentA", claimed.AssignedAgentId)
		assert.Equal(t, "agentA", claimed.Funder())

		again, err := e.Claim(ctx, a.ExchangeCode, "agentA")
		require.NoError(t, err)
		assert.Equal(t, "agentA", again.AssignedAgentId)

		_, err = e.Claim(ctx, a.ExchangeCode, "agentB")
		assert.ErrorIs(t, err, ErrUnauthorizedAgent)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Only Initiator", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())

		_, err := e.Cancel(ctx, a.ExchangeCode, "u2")

		assert.ErrorIs(t, err, ErrNotInitiator)
	})

	t.Run("Funded Is Not Cancellable", func(t *testing.T) {
		e, _, _, _ := newTestEngine(t)
		a, _ := e.Create(ctx, sellRequest())
		_, _ = e.Fund(ctx, a.ExchangeCode, "ref")

		_, err := e.Cancel(ctx, a.ExchangeCode, "u1")

		assert.ErrorIs(t, err, ErrNotCancellable)
	})
}

func TestSweepOverdue(t *testing.T) {
	ctx := context.Background()
	e, store, settler, _ := newTestEngine(t)
	pending, _ := e.Create(ctx, sellRequest())
	funded, _ := e.Create(ctx, sellRequest())
	_, _ = e.Fund(ctx, funded.ExchangeCode, "ref")
	e.ttl = 48 * time.Hour
	fresh, _ := e.Create(ctx, sellRequest())

	e.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	settler.On("ScheduleSettlement", mock.Anything, mock.MatchedBy(func(r scheduler.SettlementRequest) bool {
		return r.ExchangeCode == funded.ExchangeCode && r.Kind == storage.SettlementRefund
	})).Return(nil).Once()

	expired, err := e.SweepOverdue(ctx)

	require.NoError(t, err)
	assert.Len(t, expired, 2)
	for _, code := range []string{pending.ExchangeCode, funded.ExchangeCode} {
		a, _ := store.GetAgreement(ctx, code)
		assert.Equal(t, models.EXPIRED, a.Status)
	}
	a, _ := store.GetAgreement(ctx, fresh.ExchangeCode)
	assert.Equal(t, models.PENDING, a.Status)
}

func TestCommission(t *testing.T) {
	rate, err := ParseRate("0.015")
	require.NoError(t, err)

	c := CommissionFor(&models.Agreement{AssetAmount: 500000, LocalCurrencyAmount: 750000}, rate)

	assert.Equal(t, int64(11250), c.LocalAmount)
	assert.Equal(t, int64(7500), c.AssetAmount)
	assert.Equal(t, Commission{LocalAmount: 22500, AssetAmount: 15000}, c.Add(c))

	_, err = ParseRate("1.5")
	assert.Error(t, err)
	_, err = ParseRate("abc")
	assert.Error(t, err)
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(models.USDC)
		require.NoError(t, err)
		assert.True(t, ValidCode(code), code)
		assert.Regexp(t, `^USDC-`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 95)
}
