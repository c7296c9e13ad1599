package pin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/chris/cash-agent-exchange/pkg/storage/memory"
	"github.com/chris/cash-agent-exchange/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const phone = "+256700000001"

func TestValid(t *testing.T) {
	assert.True(t, Valid("0000"))
	assert.True(t, Valid("1234"))
	assert.False(t, Valid("123"))
	assert.False(t, Valid("12345"))
	assert.False(t, Valid("12a4"))
	assert.False(t, Valid(""))
}

func TestHash(t *testing.T) {
	h, err := Hash("1234")
	require.NoError(t, err)

	assert.NotContains(t, h, "1234")
	assert.True(t, Matches(h, "1234"))
	assert.False(t, Matches(h, "4321"))

	_, err = Hash("12")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func newAccountStore(t *testing.T) storage.AccountStore {
	t.Helper()
	h, err := Hash("1234")
	require.NoError(t, err)
	store := memory.New()
	require.NoError(t, store.CreateAccount(context.Background(), &models.Account{PhoneOrEmail: phone, PinHash: h}))
	return store
}

func TestGate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Resets Failures", func(t *testing.T) {
		store := newAccountStore(t)
		g := NewGate(store, 6, 30*time.Minute)

		_, err := g.Verify(ctx, phone, "9999")
		assert.ErrorIs(t, err, ErrMismatch)

		acct, err := g.Verify(ctx, phone, "1234")
		require.NoError(t, err)
		assert.Equal(t, phone, acct.PhoneOrEmail)

		stored, _ := store.GetAccount(ctx, phone)
		assert.Zero(t, stored.PinFailures)
	})

	t.Run("Wrong Length Is Not Counted", func(t *testing.T) {
		store := newAccountStore(t)
		g := NewGate(store, 6, 30*time.Minute)

		_, err := g.Verify(ctx, phone, "12")

		assert.ErrorIs(t, err, ErrInvalidFormat)
		stored, _ := store.GetAccount(ctx, phone)
		assert.Zero(t, stored.PinFailures)
	})

	t.Run("Threshold Locks Account", func(t *testing.T) {
		store := newAccountStore(t)
		g := NewGate(store, 3, 30*time.Minute)

		for i := 0; i < 2; i++ {
			_, err := g.Verify(ctx, phone, "0000")
			assert.ErrorIs(t, err, ErrMismatch)
		}
		acct, err := g.Verify(ctx, phone, "0000")
		assert.ErrorIs(t, err, ErrLocked)
		require.NotNil(t, acct.LockedUntil)

		_, err = g.Verify(ctx, phone, "1234")
		assert.ErrorIs(t, err, ErrLocked, "correct pin is refused while locked")
	})

	t.Run("Lock Lifts After Cooldown", func(t *testing.T) {
		store := newAccountStore(t)
		g := NewGate(store, 1, 30*time.Minute)

		_, err := g.Verify(ctx, phone, "0000")
		require.ErrorIs(t, err, ErrLocked)

		g.now = func() time.Time { return time.Now().Add(31 * time.Minute) }
		_, err = g.Verify(ctx, phone, "1234")
		require.NoError(t, err)

		stored, _ := store.GetAccount(ctx, phone)
		assert.Nil(t, stored.LockedUntil)
	})

	t.Run("GetAccount Fails", func(t *testing.T) {
		accounts := mocks.NewAccountStore(t)
		g := NewGate(accounts, 6, time.Minute)
		accounts.On("GetAccount", mock.Anything, phone).Return(nil, errors.New("dynamo down"))

		_, err := g.Verify(ctx, phone, "1234")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get account")
	})

	t.Run("No PIN Set", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.CreateAccount(ctx, &models.Account{PhoneOrEmail: phone}))
		g := NewGate(store, 6, time.Minute)

		_, err := g.Verify(ctx, phone, "1234")

		assert.ErrorIs(t, err, ErrNotSet)
	})
}
