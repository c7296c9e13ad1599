package ussd

import (
	"context"
	"sort"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/session"
)

// InputKind classifies what a screen expects, which decides whether digits
// may double as navigation.
type InputKind int

const (
	// InputNone screens ignore input.
	InputNone InputKind = iota
	// InputChoice screens show a short numbered list; "0" means back.
	InputChoice
	// InputNumeric screens collect digits (PINs, codes, amounts, phone numbers); every digit is data.
	InputNumeric
	// InputText screens collect free text; every character except the back sentinel is data.
	InputText
)

func (k InputKind) String() string {
	switch k {
	case InputChoice:
		return "choice"
	case InputNumeric:
		return "numeric"
	case InputText:
		return "text"
	default:
		return "none"
	}
}

type (
	enterFunc  func(ctx context.Context, m *Machine, s *session.Session, asset models.Asset) (Response, error)
	handleFunc func(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error)
	parentFunc func(s *session.Session) (session.Menu, models.Asset)
)

// screen is one state of the navigation machine.
type screen struct {
	input InputKind
	// parent is where the back sentinel leads. nil ends the session.
	parent parentFunc
	// gated screens require a verified PIN before they are entered.
	gated bool
	// flow is the draft kind the screen needs; restart is entered when it is missing.
	flow    session.FlowKind
	restart session.Menu
	enter   enterFunc
	handle  handleFunc
}

func (sc screen) isBack(input string) bool {
	switch sc.input {
	case InputNone:
		return false
	case InputChoice:
		return input == Back || input == "0"
	default:
		return input == Back
	}
}

func (sc screen) parentOf(s *session.Session) (session.Menu, models.Asset) {
	if sc.parent == nil {
		return "", ""
	}
	return sc.parent(s)
}

func to(menu session.Menu) parentFunc {
	return func(*session.Session) (session.Menu, models.Asset) { return menu, "" }
}

// assetMenu leads back to the crypto menu of the asset the flow is working on.
func assetMenu(s *session.Session) (session.Menu, models.Asset) {
	asset := flowAsset(s)
	if menu, ok := cryptoMenus[asset]; ok {
		return menu, asset
	}
	return session.MenuMain, ""
}

// gateParent leads back to wherever the gated target would have led.
func gateParent(s *session.Session) (session.Menu, models.Asset) {
	if s.Flow == nil || s.Flow.Gate == nil {
		return session.MenuMain, ""
	}
	target, ok := screens[s.Flow.Gate.Target]
	if !ok || target.parent == nil {
		return session.MenuMain, ""
	}
	return target.parent(&session.Session{Flow: session.NewCryptoMenu(s.Flow.Gate.Asset)})
}

func flowAsset(s *session.Session) models.Asset {
	if s.Flow == nil {
		return ""
	}
	if s.Flow.Exchange != nil {
		return s.Flow.Exchange.Asset
	}
	if s.Flow.Gate != nil {
		return s.Flow.Gate.Asset
	}
	return ""
}

var cryptoMenus = map[models.Asset]session.Menu{
	models.BTC:  session.MenuBitcoin,
	models.USDC: session.MenuUSDC,
}

var screens map[session.Menu]screen

func init() {
	screens = map[session.Menu]screen{
		session.MenuRegistrationCheck: {input: InputNone, enter: enterRegistrationCheck, handle: registrationCheck},
		session.MenuUserRegistration: {
			input: InputText, flow: session.FlowRegistration, restart: session.MenuRegistrationCheck,
			enter: enterUserRegistration, handle: userRegistration,
		},
		session.MenuVerification: {
			input: InputNumeric, flow: session.FlowRegistration, restart: session.MenuRegistrationCheck,
			enter: enterRegistrationCheck, handle: verifyCode,
		},
		session.MenuPinSetup: {input: InputNumeric, enter: enterPinSetup, handle: pinSetup},
		session.MenuPinCheck: {
			input: InputNumeric, parent: gateParent, flow: session.FlowPinGate, restart: session.MenuMain,
			enter: enterMain, handle: pinCheck,
		},
		session.MenuMain: {input: InputChoice, enter: enterMain, handle: mainMenu},

		session.MenuLocalCurrency: {input: InputChoice, parent: to(session.MenuMain), enter: enterLocalMenu, handle: localMenu},
		session.MenuSendMoney: {
			input: InputNumeric, parent: to(session.MenuLocalCurrency), gated: true,
			flow: session.FlowTransfer, restart: session.MenuSendMoney,
			enter: enterSendMoney, handle: sendMoney,
		},
		session.MenuLocalBalance: {
			input: InputChoice, parent: to(session.MenuLocalCurrency), gated: true,
			enter: enterLocalBalance, handle: showParent,
		},
		session.MenuDeposit: {input: InputChoice, parent: to(session.MenuLocalCurrency), enter: enterDeposit, handle: showParent},
		session.MenuWithdraw: {
			input: InputText, parent: to(session.MenuLocalCurrency), gated: true,
			flow: session.FlowWithdraw, restart: session.MenuWithdraw,
			enter: enterWithdraw, handle: withdraw,
		},
		session.MenuFindAgent: {input: InputChoice, parent: to(session.MenuLocalCurrency), enter: enterFindAgent, handle: showParent},
		session.MenuHistory: {
			input: InputChoice, parent: to(session.MenuLocalCurrency), gated: true,
			enter: enterHistory, handle: showParent,
		},

		session.MenuBitcoin: {
			input: InputChoice, parent: to(session.MenuMain), flow: session.FlowCryptoMenu, restart: session.MenuMain,
			enter: enterCryptoMenu(models.BTC), handle: cryptoMenu,
		},
		session.MenuUSDC: {
			input: InputChoice, parent: to(session.MenuMain), flow: session.FlowCryptoMenu, restart: session.MenuMain,
			enter: enterCryptoMenu(models.USDC), handle: cryptoMenu,
		},
		session.MenuCryptoBalance: {
			input: InputChoice, parent: assetMenu, gated: true, flow: session.FlowCryptoMenu, restart: session.MenuMain,
			enter: enterCryptoBalance, handle: showParent,
		},
		session.MenuDepositAddress: {
			input: InputChoice, parent: assetMenu, flow: session.FlowCryptoMenu, restart: session.MenuMain,
			enter: enterDepositAddress, handle: showParent,
		},
		session.MenuBuyCrypto: {
			input: InputNumeric, parent: assetMenu, gated: true, flow: session.FlowExchange, restart: session.MenuMain,
			enter: enterBuy, handle: buy,
		},
		session.MenuSellCrypto: {
			input: InputNumeric, parent: assetMenu, gated: true, flow: session.FlowExchange, restart: session.MenuMain,
			enter: enterSell, handle: sell,
		},
		session.MenuSendCrypto: {
			input: InputText, parent: assetMenu, gated: true, flow: session.FlowCryptoSend, restart: session.MenuMain,
			enter: enterCryptoSend, handle: cryptoSend,
		},

		session.MenuSettings:  {input: InputChoice, parent: to(session.MenuMain), enter: enterSettings, handle: settingsMenu},
		session.MenuLanguage:  {input: InputChoice, parent: to(session.MenuSettings), enter: enterLanguage, handle: chooseLanguage},
		session.MenuCurrency:  {input: InputChoice, parent: to(session.MenuSettings), enter: enterCurrency, handle: chooseCurrency},
		session.MenuChangePin: {
			input: InputNumeric, parent: to(session.MenuSettings), flow: session.FlowPinChange, restart: session.MenuChangePin,
			enter: enterChangePin, handle: changePin,
		},
	}
}

// Transition describes one edge class of the machine for inspection and tests.
type Transition struct {
	Menu   session.Menu
	Input  InputKind
	Parent session.Menu
	Gated  bool
}

// Transitions enumerates every screen, sorted by menu.
func Transitions() []Transition {
	out := make([]Transition, 0, len(screens))
	for menu, sc := range screens {
		parent, _ := sc.parentOf(&session.Session{Flow: session.NewCryptoMenu(models.BTC)})
		out = append(out, Transition{Menu: menu, Input: sc.input, Parent: parent, Gated: sc.gated})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Menu < out[j].Menu })
	return out
}

// showParent is the handler of display-only screens: any input leads back.
func showParent(ctx context.Context, m *Machine, s *session.Session, _ string) (Response, error) {
	return m.back(ctx, s, screens[s.Menu])
}
