package ussd

import (
	"context"
	"testing"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	byMenu := map[session.Menu]Transition{}
	for _, tr := range Transitions() {
		byMenu[tr.Menu] = tr
	}

	all := []session.Menu{
		session.MenuRegistrationCheck, session.MenuUserRegistration, session.MenuVerification,
		session.MenuPinSetup, session.MenuPinCheck, session.MenuMain,
		session.MenuLocalCurrency, session.MenuSendMoney, session.MenuLocalBalance, session.MenuDeposit,
		session.MenuWithdraw, session.MenuFindAgent, session.MenuHistory,
		session.MenuBitcoin, session.MenuUSDC, session.MenuCryptoBalance, session.MenuDepositAddress,
		session.MenuBuyCrypto, session.MenuSellCrypto, session.MenuSendCrypto,
		session.MenuSettings, session.MenuLanguage, session.MenuCurrency, session.MenuChangePin,
	}
	require.Len(t, byMenu, len(all))
	for _, menu := range all {
		assert.Contains(t, byMenu, menu)
	}

	gated := map[session.Menu]bool{
		session.MenuSendMoney: true, session.MenuLocalBalance: true, session.MenuWithdraw: true,
		session.MenuHistory: true, session.MenuCryptoBalance: true, session.MenuBuyCrypto: true,
		session.MenuSellCrypto: true, session.MenuSendCrypto: true,
	}
	for menu, tr := range byMenu {
		assert.Equal(t, gated[menu], tr.Gated, "gate on %s", menu)
	}

	for _, menu := range []session.Menu{session.MenuVerification, session.MenuPinSetup, session.MenuPinCheck, session.MenuChangePin, session.MenuBuyCrypto, session.MenuSellCrypto, session.MenuSendMoney} {
		assert.Equal(t, InputNumeric, byMenu[menu].Input, "%s collects digits", menu)
	}

	for _, menu := range []session.Menu{session.MenuRegistrationCheck, session.MenuUserRegistration, session.MenuVerification, session.MenuPinSetup, session.MenuMain} {
		assert.Empty(t, byMenu[menu].Parent, "%s has no parent", menu)
	}
	assert.Equal(t, session.MenuMain, byMenu[session.MenuSettings].Parent)
	assert.Equal(t, session.MenuBitcoin, byMenu[session.MenuSellCrypto].Parent)
	assert.Equal(t, session.MenuLocalCurrency, byMenu[session.MenuHistory].Parent)
}

func sampleFlow(kind session.FlowKind) *session.Flow {
	switch kind {
	case session.FlowRegistration:
		return session.NewRegistration()
	case session.FlowPinGate:
		return session.NewGate(session.MenuLocalBalance, "")
	case session.FlowTransfer:
		return session.NewTransfer()
	case session.FlowWithdraw:
		return session.NewWithdraw()
	case session.FlowExchange:
		return session.NewExchange(models.BTC)
	case session.FlowCryptoSend:
		return session.NewCryptoSend(models.BTC)
	case session.FlowPinChange:
		return session.NewPinChange()
	case session.FlowCryptoMenu:
		return session.NewCryptoMenu(models.BTC)
	}
	return nil
}

// Every (screen, input class) pair yields a response and leaves the session
// on a known screen. Back always lands on the parent; digits are never
// navigation on screens that collect them.
func TestEveryScreenHandlesEveryInputClass(t *testing.T) {
	inputs := []string{"", Back, "0", "1", "9", "0000", "abc def"}

	for _, tr := range Transitions() {
		for _, input := range inputs {
			tr, input := tr, input
			t.Run(string(tr.Menu)+"/"+input, func(t *testing.T) {
				ctx := context.Background()
				h := newHarness(t)
				h.register(t, alice)
				h.credit(t, alice, "UGX", 10000)

				s := session.New("s1", alice, time.Now())
				s.Menu = tr.Menu
				s.Currency = "UGX"
				s.PinVerified = true
				sc := screens[tr.Menu]
				s.Flow = sampleFlow(sc.flow)
				parent, _ := sc.parentOf(s)

				resp, err := h.m.dispatch(ctx, s, input)

				require.NoError(t, err)
				assert.NotEmpty(t, resp.Text)
				if !resp.End {
					assert.Contains(t, screens, s.Menu)
				}

				switch {
				case input == Back && sc.input != InputNone:
					if parent == "" {
						assert.Equal(t, Response{Text: en(i18n.KeyGoodbye), End: true}, resp)
					} else {
						assert.Equal(t, parent, s.Menu)
					}
				case (input == "0" || input == "0000") && (sc.input == InputNumeric || sc.input == InputText):
					assert.NotEqual(t, en(i18n.KeyGoodbye), resp.Text)
					if parent != "" && !resp.End {
						assert.NotEqual(t, parent, s.Menu, "%q must be treated as data", input)
					}
				}
			})
		}
	}
}

func TestMissingFlowRestartsScreen(t *testing.T) {
	h := newHarness(t)
	h.register(t, alice)
	s := session.New("s1", alice, time.Now())
	s.Menu = session.MenuSendMoney
	s.Step = 2
	s.PinVerified = true

	resp, err := h.m.dispatch(context.Background(), s, "5000")

	require.NoError(t, err)
	assert.Equal(t, en(i18n.KeyEnterRecipient), resp.Text)
	require.NotNil(t, s.Flow)
	assert.Equal(t, session.FlowTransfer, s.Flow.Kind)
	assert.Equal(t, 1, s.Step)
}
