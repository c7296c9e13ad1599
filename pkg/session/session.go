// Package session keeps the short-lived state of a USSD conversation between requests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

// Menu tags the screen a session is currently on.
type Menu string

const (
	MenuRegistrationCheck Menu = "registration_check"
	MenuUserRegistration  Menu = "user_registration"
	MenuVerification      Menu = "verification"
	MenuPinSetup          Menu = "pin_setup"
	MenuPinCheck          Menu = "pin_check"
	MenuMain              Menu = "main"

	MenuLocalCurrency Menu = "local_currency"
	MenuSendMoney     Menu = "send_money"
	MenuLocalBalance  Menu = "local_balance"
	MenuDeposit       Menu = "deposit"
	MenuWithdraw      Menu = "withdraw"
	MenuFindAgent     Menu = "find_agent"
	MenuHistory       Menu = "history"

	MenuBitcoin        Menu = "bitcoin"
	MenuUSDC           Menu = "usdc"
	MenuCryptoBalance  Menu = "crypto_balance"
	MenuDepositAddress Menu = "deposit_address"
	MenuBuyCrypto      Menu = "buy_crypto"
	MenuSellCrypto     Menu = "sell_crypto"
	MenuSendCrypto     Menu = "send_crypto"

	MenuSettings  Menu = "settings"
	MenuLanguage  Menu = "language"
	MenuCurrency  Menu = "currency"
	MenuChangePin Menu = "change_pin"
)

// ErrPhoneMismatch is returned when a session id is presented with a phone
// number other than the one that opened it.
var ErrPhoneMismatch = errors.New("session belongs to a different phone number")

// Session is the state of one conversation.
type Session struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Menu        Menu      `json:"menu"`
	Step        int       `json:"step"`
	Language    string    `json:"language,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	PinVerified bool      `json:"pin_verified"`
	Flow        *Flow     `json:"flow,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a session at the registration check.
func New(id, phone string, now time.Time) *Session {
	return &Session{
		ID:          id,
		PhoneNumber: phone,
		Menu:        MenuRegistrationCheck,
		Step:        1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Enter moves to menu at step 1 and discards any in-flight flow.
func (s *Session) Enter(menu Menu) {
	s.Menu = menu
	s.Step = 1
	s.Flow = nil
}

// Begin enters menu with a freshly constructed flow.
func (s *Session) Begin(menu Menu, flow *Flow) {
	s.Enter(menu)
	s.Flow = flow
}

// Carry moves to menu at step 1 keeping the current flow.
func (s *Session) Carry(menu Menu) {
	s.Menu = menu
	s.Step = 1
}

// Next advances to the following step of the current menu.
func (s *Session) Next() {
	s.Step++
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	cp := *s
	if s.Flow != nil {
		f := *s.Flow
		if f.Registration != nil {
			r := *f.Registration
			f.Registration = &r
		}
		if f.Gate != nil {
			g := *f.Gate
			f.Gate = &g
		}
		if f.Transfer != nil {
			t := *f.Transfer
			f.Transfer = &t
		}
		if f.Exchange != nil {
			e := *f.Exchange
			f.Exchange = &e
		}
		if f.PinChange != nil {
			p := *f.PinChange
			f.PinChange = &p
		}
		cp.Flow = &f
	}
	return &cp
}

// FlowKind names the typed draft a flow carries.
type FlowKind string

const (
	FlowRegistration FlowKind = "registration"
	FlowPinGate      FlowKind = "pin_gate"
	FlowTransfer     FlowKind = "transfer"
	FlowWithdraw     FlowKind = "withdraw"
	FlowExchange     FlowKind = "exchange"
	FlowCryptoSend   FlowKind = "crypto_send"
	FlowPinChange    FlowKind = "pin_change"
	FlowCryptoMenu   FlowKind = "crypto_menu"
)

// Flow holds the in-flight fields of exactly one flow. Only the draft matching
// Kind is set.
type Flow struct {
	Kind FlowKind `json:"kind"`

	Registration *RegistrationDraft `json:"registration,omitempty"`
	Gate         *GateDraft         `json:"gate,omitempty"`
	Transfer     *TransferDraft     `json:"transfer,omitempty"`
	Exchange     *ExchangeDraft     `json:"exchange,omitempty"`
	PinChange    *PinChangeDraft    `json:"pin_change,omitempty"`
}

// RegistrationDraft collects the name before the account exists.
type RegistrationDraft struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GateDraft remembers where to go once the PIN is verified.
type GateDraft struct {
	Target   Menu         `json:"target"`
	Asset    models.Asset `json:"asset,omitempty"`
	Attempts int          `json:"attempts"`
}

// TransferDraft is a local currency send or agent withdrawal.
type TransferDraft struct {
	Counterparty string `json:"counterparty"`
	Amount       int64  `json:"amount"`
}

// ExchangeDraft is a crypto buy, sell or send.
type ExchangeDraft struct {
	Asset       models.Asset `json:"asset"`
	AssetAmount int64        `json:"asset_amount,omitempty"`
	LocalAmount int64        `json:"local_amount,omitempty"`
	Address     string       `json:"address,omitempty"`
}

// PinChangeDraft holds the hash of the new PIN between entry and confirmation.
type PinChangeDraft struct {
	Attempts   int    `json:"attempts"`
	NewPinHash string `json:"new_pin_hash,omitempty"`
}

// NewRegistration starts a registration flow.
func NewRegistration() *Flow {
	return &Flow{Kind: FlowRegistration, Registration: &RegistrationDraft{}}
}

// NewGate starts a PIN gate in front of target.
func NewGate(target Menu, asset models.Asset) *Flow {
	return &Flow{Kind: FlowPinGate, Gate: &GateDraft{Target: target, Asset: asset}}
}

// NewTransfer starts a local currency send.
func NewTransfer() *Flow {
	return &Flow{Kind: FlowTransfer, Transfer: &TransferDraft{}}
}

// NewWithdraw starts an agent withdrawal.
func NewWithdraw() *Flow {
	return &Flow{Kind: FlowWithdraw, Transfer: &TransferDraft{}}
}

// NewExchange starts a crypto buy or sell.
func NewExchange(asset models.Asset) *Flow {
	return &Flow{Kind: FlowExchange, Exchange: &ExchangeDraft{Asset: asset}}
}

// NewCryptoSend starts an on-chain send.
func NewCryptoSend(asset models.Asset) *Flow {
	return &Flow{Kind: FlowCryptoSend, Exchange: &ExchangeDraft{Asset: asset}}
}

// NewCryptoMenu remembers which asset a shared crypto screen is showing.
func NewCryptoMenu(asset models.Asset) *Flow {
	return &Flow{Kind: FlowCryptoMenu, Exchange: &ExchangeDraft{Asset: asset}}
}

// NewPinChange starts a PIN change.
func NewPinChange() *Flow {
	return &Flow{Kind: FlowPinChange, PinChange: &PinChangeDraft{}}
}

// Store is the session store contract. Get and GetOrCreate treat a record
// older than the store's inactivity window as absent.
type Store interface {
	// Get returns nil, nil when no live session exists.
	Get(ctx context.Context, id string) (*Session, error)
	// GetOrCreate returns the live session or a new one at the registration check.
	GetOrCreate(ctx context.Context, id, phone string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)
	// Clear removes every session.
	Clear(ctx context.Context) error
	// Lock serializes requests for one session id until the returned func is called.
	Lock(ctx context.Context, id string) (func(), error)
}
