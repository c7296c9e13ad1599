package ussd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/rates"
	"github.com/chris/cash-agent-exchange/pkg/session"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

const (
	agentListSize = 5
	historySize   = 5
)

func enterSendMoney(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Begin(session.MenuSendMoney, session.NewTransfer())
	return m.con(s, i18n.KeyEnterRecipient), nil
}

// sendMoney: recipient, amount, confirmation.
func sendMoney(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	draft := s.Flow.Transfer
	currency := m.localCurrency(s)

	switch s.Step {
	case 1:
		recipient, ok := NormalizePhone(input, s.PhoneNumber)
		if !ok || recipient == s.PhoneNumber {
			return m.con(s, i18n.KeyInvalidPhone), nil
		}
		_, err := m.accounts.GetAccount(ctx, recipient)
		if errors.Is(err, storage.ErrNotFound) {
			return m.con(s, i18n.KeyRecipientUnknown, recipient), nil
		}
		if err != nil {
			return Response{}, fmt.Errorf("failed to get recipient: %w", err)
		}
		draft.Counterparty = recipient
		s.Next()
		return m.con(s, i18n.KeyEnterAmount, currency), nil

	case 2:
		amount, err := rates.ParseAmount(input, models.Asset(currency))
		if err != nil {
			return m.con(s, i18n.KeyInvalidAmount, currency), nil
		}
		draft.Amount = amount
		s.Next()
		return m.con(s, i18n.KeyConfirmSend, rates.FormatLocal(amount, currency), draft.Counterparty), nil

	default:
		switch input {
		case "1":
		case "2":
			return cancelTo(ctx, m, s, session.MenuLocalCurrency, "")
		default:
			return m.invalid(s, i18n.KeyConfirmSend, rates.FormatLocal(draft.Amount, currency), draft.Counterparty), nil
		}

		receipt, err := m.ledger.Transfer(ctx, ledger.TransferRequest{
			From:   s.PhoneNumber,
			To:     draft.Counterparty,
			Asset:  models.Asset(currency),
			Amount: draft.Amount,
			Memo:   "send",
		})
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return m.end(s, i18n.KeyInsufficientFunds), nil
		}
		if err != nil {
			return Response{}, fmt.Errorf("failed to send money: %w", err)
		}

		amount := rates.FormatLocal(draft.Amount, currency)
		slog.Info("money sent", "phone", s.PhoneNumber, "to", draft.Counterparty, "reference", receipt.Reference)
		m.text(ctx, s.PhoneNumber, i18n.KeySMSSendReceipt, amount, draft.Counterparty, receipt.Reference)
		m.text(ctx, draft.Counterparty, i18n.KeySMSReceived, amount, s.PhoneNumber, receipt.Reference)
		return m.end(s, i18n.KeySendSuccess, amount, draft.Counterparty, receipt.Reference), nil
	}
}

func enterLocalBalance(ctx context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	currency := m.localCurrency(s)
	balance, err := m.ledger.Balance(ctx, s.PhoneNumber, models.Asset(currency))
	if err != nil {
		return Response{}, fmt.Errorf("failed to get balance: %w", err)
	}
	s.Enter(session.MenuLocalBalance)
	return m.con(s, i18n.KeyBalance, currency, rates.FormatLocal(balance, currency)), nil
}

func enterDeposit(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuDeposit)
	return m.con(s, i18n.KeyDepositInfo, m.localCurrency(s), s.PhoneNumber), nil
}

func enterWithdraw(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Begin(session.MenuWithdraw, session.NewWithdraw())
	return m.con(s, i18n.KeyEnterAgentID), nil
}

// withdraw: agent, amount, confirmation. The amount is paid to the agent,
// who hands over the cash.
func withdraw(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	draft := s.Flow.Transfer
	currency := m.localCurrency(s)

	switch s.Step {
	case 1:
		agent, err := m.agents.GetAgent(ctx, strings.ToUpper(input))
		if errors.Is(err, storage.ErrNotFound) || (err == nil && !agent.IsActive) {
			return m.con(s, i18n.KeyAgentUnknown), nil
		}
		if err != nil {
			return Response{}, fmt.Errorf("failed to get agent: %w", err)
		}
		draft.Counterparty = agent.AgentId
		s.Next()
		return m.con(s, i18n.KeyEnterAmount, currency), nil

	case 2:
		amount, err := rates.ParseAmount(input, models.Asset(currency))
		if err != nil {
			return m.con(s, i18n.KeyInvalidAmount, currency), nil
		}
		draft.Amount = amount
		s.Next()
		return m.con(s, i18n.KeyConfirmWithdraw, rates.FormatLocal(amount, currency), draft.Counterparty), nil

	default:
		switch input {
		case "1":
		case "2":
			return cancelTo(ctx, m, s, session.MenuLocalCurrency, "")
		default:
			return m.invalid(s, i18n.KeyConfirmWithdraw, rates.FormatLocal(draft.Amount, currency), draft.Counterparty), nil
		}

		receipt, err := m.ledger.Transfer(ctx, ledger.TransferRequest{
			From:   s.PhoneNumber,
			To:     draft.Counterparty,
			Asset:  models.Asset(currency),
			Amount: draft.Amount,
			Memo:   "cash withdrawal",
		})
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return m.end(s, i18n.KeyInsufficientFunds), nil
		}
		if err != nil {
			return Response{}, fmt.Errorf("failed to withdraw: %w", err)
		}

		amount := rates.FormatLocal(draft.Amount, currency)
		slog.Info("withdrawal paid to agent", "phone", s.PhoneNumber, "agent_id", draft.Counterparty, "reference", receipt.Reference)
		m.text(ctx, s.PhoneNumber, i18n.KeySMSSendReceipt, amount, draft.Counterparty, receipt.Reference)
		return m.end(s, i18n.KeyWithdrawSuccess, amount, draft.Counterparty, receipt.Reference), nil
	}
}

func enterFindAgent(ctx context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	agents, err := m.agents.ListAgents(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("failed to list agents: %w", err)
	}

	s.Enter(session.MenuFindAgent)
	var lines []string
	for _, a := range agents {
		if !a.IsActive {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s - %s", a.AgentId, a.Name, a.Location))
		if len(lines) == agentListSize {
			break
		}
	}
	if len(lines) == 0 {
		return m.con(s, i18n.KeyNoAgents), nil
	}
	return m.con(s, i18n.KeyAgentList, strings.Join(lines, "\n")), nil
}

func enterHistory(ctx context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	entries, err := m.ledger.History(ctx, s.PhoneNumber, historySize)
	if err != nil {
		return Response{}, fmt.Errorf("failed to get history: %w", err)
	}

	s.Enter(session.MenuHistory)
	if len(entries) == 0 {
		return m.con(s, i18n.KeyNoHistory), nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatEntry(e))
	}
	return m.con(s, i18n.KeyHistory, strings.Join(lines, "\n")), nil
}

// cancelTo abandons the current flow and shows menu under a "cancelled" notice.
func cancelTo(ctx context.Context, m *Machine, s *session.Session, menu session.Menu, asset models.Asset) (Response, error) {
	resp, err := m.open(ctx, s, menu, asset)
	if err != nil {
		return Response{}, err
	}
	return m.prefixed(s, i18n.KeyCancelled, resp), nil
}
