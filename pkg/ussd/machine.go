// Package ussd drives the USSD conversation: it resolves the caller's session,
// dispatches the newest input to the handler of the current screen and renders
// the CON/END response the gateway expects.
package ussd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/notify"
	"github.com/chris/cash-agent-exchange/pkg/pin"
	"github.com/chris/cash-agent-exchange/pkg/rates"
	"github.com/chris/cash-agent-exchange/pkg/session"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/chris/cash-agent-exchange/pkg/verification"
)

// Back is the back/menu sentinel. It is honoured on every screen.
const Back = "#"

// maxPinAttempts is the number of wrong PIN entries tolerated in one session.
const maxPinAttempts = 3

// Request is one gateway callback.
type Request struct {
	SessionID   string
	PhoneNumber string
	// Text is everything the caller typed this session, joined by '*'.
	Text string
}

// Response is either a prompt awaiting more input or a final message.
type Response struct {
	Text string
	End  bool
}

// String renders the response in gateway format.
func (r Response) String() string {
	if r.End {
		return "END " + r.Text
	}
	return "CON " + r.Text
}

// Config wires the machine to its collaborators.
type Config struct {
	Sessions     session.Store
	Accounts     storage.AccountStore
	Agents       storage.AgentStore
	Verification *verification.Service
	Gate         *pin.Gate
	Ledger       ledger.Client
	Escrow       *escrow.Engine
	Rates        rates.Provider
	Sender       notify.Sender

	Language        i18n.Lang
	Currency        string
	EscrowPrincipal string
}

// Machine is the navigation state machine. It is safe for concurrent use;
// requests for the same session are serialized through the session store lock.
type Machine struct {
	sessions  session.Store
	accounts  storage.AccountStore
	agents    storage.AgentStore
	verifier  *verification.Service
	gate      *pin.Gate
	ledger    ledger.Client
	escrow    *escrow.Engine
	rates     rates.Provider
	sender    notify.Sender
	language  i18n.Lang
	currency  string
	principal string
	now       func() time.Time
}

// NewMachine creates a Machine.
func NewMachine(c Config) *Machine {
	lang := c.Language
	if lang == "" {
		lang = i18n.Default
	}
	return &Machine{
		sessions:  c.Sessions,
		accounts:  c.Accounts,
		agents:    c.Agents,
		verifier:  c.Verification,
		gate:      c.Gate,
		ledger:    c.Ledger,
		escrow:    c.Escrow,
		rates:     c.Rates,
		sender:    c.Sender,
		language:  lang,
		currency:  strings.ToUpper(c.Currency),
		principal: c.EscrowPrincipal,
		now:       time.Now,
	}
}

// Handle processes one gateway callback. Collaborator failures are rendered
// as a terminal service error; only session load and save failures are returned.
func (m *Machine) Handle(ctx context.Context, req Request) (Response, error) {
	if req.SessionID == "" || req.PhoneNumber == "" {
		return Response{}, fmt.Errorf("session id and phone number are required")
	}

	unlock, err := m.sessions.Lock(ctx, req.SessionID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to lock session: %w", err)
	}
	defer unlock()

	s, err := m.sessions.GetOrCreate(ctx, req.SessionID, req.PhoneNumber)
	if errors.Is(err, session.ErrPhoneMismatch) {
		slog.Warn("session reused by another phone", "session_id", req.SessionID, "phone", req.PhoneNumber)
		return Response{Text: i18n.T(m.language, i18n.KeyServiceError), End: true}, nil
	}
	if err != nil {
		return Response{}, fmt.Errorf("failed to load session: %w", err)
	}

	resp, err := m.dispatch(ctx, s, LastInput(req.Text))
	if err != nil {
		slog.Error("ussd handler failed", "session_id", s.ID, "menu", s.Menu, "step", s.Step, "error", err)
		resp = m.end(s, i18n.KeyServiceError)
	}

	// A record that survives a failed delete is dropped by the store TTL.
	if resp.End {
		if err := m.sessions.Delete(ctx, s.ID); err != nil {
			slog.Error("failed to release ended session", "session_id", s.ID, "error", err)
		}
		return resp, nil
	}
	if err := m.sessions.Save(ctx, s); err != nil {
		return Response{}, fmt.Errorf("failed to save session: %w", err)
	}
	return resp, nil
}

// LastInput returns the caller's newest entry from the accumulated text.
func LastInput(text string) string {
	if i := strings.LastIndex(text, "*"); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(text)
}

func (m *Machine) dispatch(ctx context.Context, s *session.Session, input string) (Response, error) {
	sc, ok := screens[s.Menu]
	if !ok {
		slog.Warn("session on unknown screen, restarting", "session_id", s.ID, "menu", s.Menu)
		s.Enter(session.MenuRegistrationCheck)
		return m.open(ctx, s, session.MenuRegistrationCheck, "")
	}

	if sc.isBack(input) {
		return m.back(ctx, s, sc)
	}

	if sc.flow != "" && (s.Flow == nil || s.Flow.Kind != sc.flow) {
		slog.Warn("session flow missing, restarting screen", "session_id", s.ID, "menu", s.Menu)
		return m.open(ctx, s, sc.restart, "")
	}

	return sc.handle(ctx, m, s, input)
}

// open enters menu, routing through the PIN gate first when the screen
// requires it and the session has not been verified yet.
func (m *Machine) open(ctx context.Context, s *session.Session, menu session.Menu, asset models.Asset) (Response, error) {
	sc, ok := screens[menu]
	if !ok {
		return Response{}, fmt.Errorf("no screen for menu %q", menu)
	}
	if sc.gated && !s.PinVerified {
		s.Begin(session.MenuPinCheck, session.NewGate(menu, asset))
		return m.con(s, i18n.KeyEnterPin), nil
	}
	return sc.enter(ctx, m, s, asset)
}

// back discards the in-flight flow and shows the parent screen. A screen
// without a parent ends the conversation.
func (m *Machine) back(ctx context.Context, s *session.Session, sc screen) (Response, error) {
	parent, asset := sc.parentOf(s)
	if parent == "" {
		return m.end(s, i18n.KeyGoodbye), nil
	}
	return m.open(ctx, s, parent, asset)
}

func (m *Machine) lang(s *session.Session) i18n.Lang {
	if s.Language == "" {
		return m.language
	}
	return i18n.Lang(s.Language)
}

func (m *Machine) localCurrency(s *session.Session) string {
	if s.Currency == "" {
		return m.currency
	}
	return s.Currency
}

func (m *Machine) con(s *session.Session, key i18n.Key, args ...any) Response {
	return Response{Text: i18n.T(m.lang(s), key, args...)}
}

func (m *Machine) end(s *session.Session, key i18n.Key, args ...any) Response {
	return Response{Text: i18n.T(m.lang(s), key, args...), End: true}
}

// prefixed prepends a one-line notice to a continue response.
func (m *Machine) prefixed(s *session.Session, notice i18n.Key, resp Response) Response {
	resp.Text = i18n.T(m.lang(s), notice) + "\n" + resp.Text
	return resp
}

// invalid re-shows the current prompt under an "invalid choice" notice.
func (m *Machine) invalid(s *session.Session, key i18n.Key, args ...any) Response {
	return m.prefixed(s, i18n.KeyInvalidChoice, m.con(s, key, args...))
}

// text delivers an SMS. Delivery is best effort and never fails the request.
func (m *Machine) text(ctx context.Context, phone string, key i18n.Key, args ...any) {
	lang := m.language
	if acct, err := m.accounts.GetAccount(ctx, phone); err == nil && acct.Language != "" {
		lang = i18n.Lang(acct.Language)
	}
	if err := m.sender.Send(ctx, phone, i18n.T(lang, key, args...)); err != nil {
		slog.Error("failed to send sms", "phone", phone, "key", key.String(), "error", err)
	}
}
