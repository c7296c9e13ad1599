package ussd

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/scheduler"
	"github.com/chris/cash-agent-exchange/pkg/storage/memory"
	"github.com/chris/cash-agent-exchange/pkg/pin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeInText = regexp.MustCompile(`(BTC|USDC)-[A-Z0-9]{6}`)

// unfundableStore refuses every funding transition.
type unfundableStore struct {
	*memory.Store
}

func (unfundableStore) FundAgreement(context.Context, string, string, time.Time) (*models.Agreement, error) {
	return nil, errors.New("write throttled")
}

func TestSendMoney(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.register(t, bob)
		h.credit(t, alice, "UGX", 100000)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "1")
		c.say(t, "1")
		c.say(t, "1234")

		assert.Equal(t, en(i18n.KeyEnterAmount, "UGX"), c.say(t, "0700 000 002").Text)
		assert.Equal(t, en(i18n.KeyConfirmSend, "UGX 50,000", bob), c.say(t, "50,000").Text)
		resp := c.say(t, "1")

		require.True(t, resp.End)
		assert.True(t, strings.HasPrefix(resp.Text, "Sent UGX 50,000 to "+bob))
		aliceBal, _ := h.ledger.Balance(ctx, alice, "UGX")
		bobBal, _ := h.ledger.Balance(ctx, bob, "UGX")
		assert.Equal(t, int64(50000), aliceBal)
		assert.Equal(t, int64(50000), bobBal)
		assert.Contains(t, h.sms.last(bob), "You received UGX 50,000 from "+alice)
		assert.Contains(t, h.sms.last(alice), "You sent UGX 50,000 to "+bob)
	})

	t.Run("Unknown Recipient Reprompts", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "1")
		c.say(t, "1")
		c.say(t, "1234")

		assert.Equal(t, en(i18n.KeyRecipientUnknown, bob), c.say(t, bob).Text)
		assert.Equal(t, en(i18n.KeyInvalidPhone), c.say(t, alice).Text, "cannot send to self")
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.register(t, bob)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "1")
		c.say(t, "1")
		c.say(t, "1234")
		c.say(t, bob)
		c.say(t, "1000")

		resp := c.say(t, "1")

		assert.Equal(t, Response{Text: en(i18n.KeyInsufficientFunds), End: true}, resp)
	})

	t.Run("Cancel Returns To Local Menu", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.register(t, bob)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "1")
		c.say(t, "1")
		c.say(t, "1234")
		c.say(t, bob)
		c.say(t, "1000")

		resp := c.say(t, "2")

		assert.Equal(t, Response{Text: en(i18n.KeyCancelled) + "\n" + en(i18n.KeyLocalMenu)}, resp)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, alice)
	h.credit(t, alice, "UGX", 80000)
	require.NoError(t, h.store.PutAgent(ctx, &models.Agent{AgentId: "AG001", Name: "Kampala Cash", IsActive: true}))
	require.NoError(t, h.store.PutAgent(ctx, &models.Agent{AgentId: "AG002", Name: "Closed", IsActive: false}))
	c := h.dial("s1", alice)
	c.say(t, "")
	c.say(t, "1")
	c.say(t, "4")
	assert.Equal(t, en(i18n.KeyEnterAgentID), c.say(t, "1234").Text)

	assert.Equal(t, en(i18n.KeyAgentUnknown), c.say(t, "AG002").Text)
	assert.Equal(t, en(i18n.KeyEnterAmount, "UGX"), c.say(t, "ag001").Text)
	assert.Equal(t, en(i18n.KeyConfirmWithdraw, "UGX 30,000", "AG001"), c.say(t, "30000").Text)
	resp := c.say(t, "1")

	require.True(t, resp.End)
	assert.True(t, strings.HasPrefix(resp.Text, "Withdrawal of UGX 30,000 sent to AG001"))
	agentBal, _ := h.ledger.Balance(ctx, "AG001", "UGX")
	assert.Equal(t, int64(30000), agentBal)
}

func TestFindAgentAndDeposit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, alice)
	require.NoError(t, h.store.PutAgent(ctx, &models.Agent{AgentId: "AG001", Name: "Kampala Cash", Location: "Wandegeya", IsActive: true}))
	c := h.dial("s1", alice)
	c.say(t, "")
	c.say(t, "1")

	assert.Equal(t, en(i18n.KeyAgentList, "AG001 Kampala Cash - Wandegeya"), c.say(t, "5").Text)
	assert.Equal(t, en(i18n.KeyLocalMenu), c.say(t, "0").Text)
	assert.Equal(t, en(i18n.KeyDepositInfo, "UGX", alice), c.say(t, "3").Text)
	assert.Equal(t, en(i18n.KeyLocalMenu), c.say(t, "9").Text, "any input leaves a display screen")
}

func TestSellCrypto(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Funded Agreement", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.credit(t, alice, models.BTC, 1000000)
		c := h.dial("s1", alice)
		c.say(t, "")

		assert.Equal(t, en(i18n.KeyCryptoMenu, "Bitcoin"), c.say(t, "2").Text)
		assert.Equal(t, en(i18n.KeyEnterPin), c.say(t, "4").Text)
		assert.Equal(t, en(i18n.KeyEnterSellAmount, models.BTC), c.say(t, "1234").Text)
		assert.Equal(t, en(i18n.KeyConfirmSell, "0.005 BTC", "UGX 750,000"), c.say(t, "0.005").Text)
		resp := c.say(t, "1")

		require.True(t, resp.End)
		code := codeInText.FindString(resp.Text)
		require.Regexp(t, `^BTC-[A-Z0-9]{6}$`, code)

		a, err := h.store.GetAgreement(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, models.FUNDED, a.Status)
		assert.Equal(t, models.SELL, a.Direction)
		assert.Equal(t, int64(500000), a.AssetAmount)
		assert.Equal(t, int64(750000), a.LocalCurrencyAmount)
		assert.NotEmpty(t, a.FundingRef)

		escrowBal, _ := h.ledger.Balance(ctx, "escrow", models.BTC)
		assert.Equal(t, int64(500000), escrowBal)
		assert.Contains(t, h.sms.last(alice), code)

		_, err = h.engine.VerifyAndComplete(ctx, code, "AG001")
		require.NoError(t, err)
		agentBal, _ := h.ledger.Balance(ctx, "AG001", models.BTC)
		assert.Equal(t, int64(500000), agentBal)
	})

	t.Run("Failed Funding Returns Deposit", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.credit(t, alice, models.BTC, 1000000)
		h.m.escrow = escrow.NewEngine(unfundableStore{h.store},
			&scheduler.Direct{Ledger: h.ledger, Agreements: h.store, EscrowPrincipal: "escrow"}, 24*time.Hour)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "2")
		c.say(t, "4")
		c.say(t, "1234")
		c.say(t, "0.005")

		resp := c.say(t, "1")

		assert.Equal(t, Response{Text: en(i18n.KeyServiceError), End: true}, resp)
		aliceBal, _ := h.ledger.Balance(ctx, alice, models.BTC)
		assert.Equal(t, int64(1000000), aliceBal)
		escrowBal, _ := h.ledger.Balance(ctx, "escrow", models.BTC)
		assert.Zero(t, escrowBal)

		agreements, err := h.store.ListAgreementsByInitiator(ctx, alice)
		require.NoError(t, err)
		require.Len(t, agreements, 1)
		assert.Equal(t, models.CANCELLED, agreements[0].Status)
	})

	t.Run("More Than Balance Ends Session", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "2")
		c.say(t, "4")
		c.say(t, "1234")

		resp := c.say(t, "0.005")

		assert.Equal(t, Response{Text: en(i18n.KeyInsufficientFunds), End: true}, resp)
	})

	t.Run("Too Many Decimals Reprompts", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "2")
		c.say(t, "4")
		c.say(t, "1234")

		resp := c.say(t, "0.000000001")

		assert.Equal(t, Response{Text: en(i18n.KeyInvalidAmount, models.BTC)}, resp)
	})
}

func TestBuyCrypto(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, alice)
	c := h.dial("s1", alice)
	c.say(t, "")
	c.say(t, "3")
	c.say(t, "3")

	assert.Equal(t, en(i18n.KeyEnterBuyAmount, "UGX", models.USDC), c.say(t, "1234").Text)
	assert.Equal(t, en(i18n.KeyConfirmBuy, "10 USDC", "UGX 37,000"), c.say(t, "37000").Text)
	resp := c.say(t, "1")

	require.True(t, resp.End)
	code := codeInText.FindString(resp.Text)
	require.Regexp(t, `^USDC-[A-Z0-9]{6}$`, code)
	a, err := h.store.GetAgreement(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, models.PENDING, a.Status)
	assert.Equal(t, models.BUY, a.Direction)
	assert.Equal(t, int64(10000000), a.AssetAmount)
	assert.Empty(t, a.AssignedAgentId)
}

func TestCryptoScreens(t *testing.T) {
	ctx := context.Background()

	t.Run("Balance Shows Local Equivalent", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.credit(t, alice, models.BTC, 100000)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "2")
		c.say(t, "1")

		resp := c.say(t, "1234")

		assert.Equal(t, en(i18n.KeyBalance, "Bitcoin", "0.001 BTC (~UGX 150,000)"), resp.Text)
		assert.Equal(t, en(i18n.KeyCryptoMenu, "Bitcoin"), c.say(t, "0").Text, "back returns to the asset's menu")
	})

	t.Run("Deposit Address Is Stable", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "3")
		first := c.say(t, "2").Text
		c.say(t, "0")
		second := c.say(t, "2").Text

		assert.Equal(t, first, second)
		assert.Regexp(t, `0x[0-9a-f]{40}`, first)
		_, err := h.ledger.DepositAddress(ctx, alice, models.USDC)
		assert.NoError(t, err)
	})

	t.Run("Send Validates Address", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		h.credit(t, alice, models.USDC, 5000000)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "3")
		c.say(t, "5")
		assert.Equal(t, en(i18n.KeyEnterAddress, models.USDC), c.say(t, "1234").Text)

		assert.Equal(t, en(i18n.KeyInvalidAddress, models.USDC), c.say(t, "0x123").Text)
		addr := "0x" + strings.Repeat("ab", 20)
		assert.Equal(t, en(i18n.KeyEnterSendAmount, models.USDC), c.say(t, addr).Text)
		assert.Equal(t, en(i18n.KeyConfirmCryptoSend, "2 USDC", addr), c.say(t, "2").Text)
		resp := c.say(t, "1")

		require.True(t, resp.End)
		assert.True(t, strings.HasPrefix(resp.Text, "Sent 2 USDC. Ref: "))
		bal, _ := h.ledger.Balance(ctx, alice, models.USDC)
		assert.Equal(t, int64(3000000), bal)
	})
}

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Language", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "4")
		assert.Equal(t, en(i18n.KeyLanguageMenu), c.say(t, "1").Text)

		resp := c.say(t, "3")

		sw := func(k i18n.Key) string { return i18n.T(i18n.Swahili, k) }
		assert.Equal(t, sw(i18n.KeyLanguageSet)+"\n"+sw(i18n.KeySettingsMenu), resp.Text)
		acct, _ := h.store.GetAccount(ctx, alice)
		assert.Equal(t, "sw", acct.Language)
		assert.Equal(t, "UGX", acct.PreferredCurrency)
	})

	t.Run("Currency", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "4")
		c.say(t, "3")

		resp := c.say(t, "2")

		assert.Equal(t, en(i18n.KeyCurrencySet, "KES")+"\n"+en(i18n.KeySettingsMenu), resp.Text)
		acct, _ := h.store.GetAccount(ctx, alice)
		assert.Equal(t, "KES", acct.PreferredCurrency)
		assert.Equal(t, "en", acct.Language)
	})

	t.Run("Change PIN", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, alice)
		c := h.dial("s1", alice)
		c.say(t, "")
		c.say(t, "4")
		assert.Equal(t, en(i18n.KeyEnterCurrentPin), c.say(t, "2").Text)

		assert.Equal(t, en(i18n.KeyPinWrong, 2), c.say(t, "0000").Text)
		assert.Equal(t, en(i18n.KeyEnterNewPin), c.say(t, "1234").Text)
		assert.Equal(t, en(i18n.KeyPinInvalidFormat), c.say(t, "12").Text)
		assert.Equal(t, en(i18n.KeyConfirmNewPin), c.say(t, "5678").Text)
		assert.Equal(t, en(i18n.KeyPinConfirmMismatch), c.say(t, "5679").Text)
		assert.Equal(t, en(i18n.KeyConfirmNewPin), c.say(t, "5678").Text)
		assert.Equal(t, Response{Text: en(i18n.KeyPinChanged), End: true}, c.say(t, "5678"))

		acct, _ := h.store.GetAccount(ctx, alice)
		assert.True(t, pin.Matches(acct.PinHash, "5678"))
		assert.Zero(t, acct.PinFailures)
	})
}
