package ussd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/rates"
	"github.com/chris/cash-agent-exchange/pkg/session"
)

func enterCryptoBalance(ctx context.Context, m *Machine, s *session.Session, asset models.Asset) (Response, error) {
	balance, err := m.ledger.Balance(ctx, s.PhoneNumber, asset)
	if err != nil {
		return Response{}, fmt.Errorf("failed to get balance: %w", err)
	}

	shown := rates.FormatAsset(balance, asset)
	currency := m.localCurrency(s)
	if local, err := rates.AssetToLocal(ctx, m.rates, balance, asset, currency); err == nil {
		shown += " (~" + rates.FormatLocal(local, currency) + ")"
	}

	s.Begin(session.MenuCryptoBalance, session.NewCryptoMenu(asset))
	return m.con(s, i18n.KeyBalance, assetName(asset), shown), nil
}

func enterDepositAddress(ctx context.Context, m *Machine, s *session.Session, asset models.Asset) (Response, error) {
	address, err := m.ledger.DepositAddress(ctx, s.PhoneNumber, asset)
	if err != nil {
		return Response{}, fmt.Errorf("failed to get deposit address: %w", err)
	}
	s.Begin(session.MenuDepositAddress, session.NewCryptoMenu(asset))
	return m.con(s, i18n.KeyDepositAddress, assetName(asset), address), nil
}

func enterBuy(_ context.Context, m *Machine, s *session.Session, asset models.Asset) (Response, error) {
	s.Begin(session.MenuBuyCrypto, session.NewExchange(asset))
	return m.con(s, i18n.KeyEnterBuyAmount, m.localCurrency(s), asset), nil
}

// buy: local amount, confirmation. Confirming opens a buy agreement that an
// agent funds once the caller has handed over the cash.
func buy(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	draft := s.Flow.Exchange
	currency := m.localCurrency(s)

	switch s.Step {
	case 1:
		local, err := rates.ParseAmount(input, models.Asset(currency))
		if err != nil {
			return m.con(s, i18n.KeyInvalidAmount, currency), nil
		}
		units, err := rates.LocalToAsset(ctx, m.rates, local, currency, draft.Asset)
		if errors.Is(err, rates.ErrUnsupportedPair) {
			return m.end(s, i18n.KeyServiceError), nil
		}
		if err != nil {
			return Response{}, err
		}
		if units <= 0 {
			return m.con(s, i18n.KeyInvalidAmount, currency), nil
		}
		draft.LocalAmount = local
		draft.AssetAmount = units
		s.Next()
		return m.con(s, i18n.KeyConfirmBuy, rates.FormatAsset(units, draft.Asset), rates.FormatLocal(local, currency)), nil

	default:
		switch input {
		case "1":
		case "2":
			return cancelTo(ctx, m, s, cryptoMenus[draft.Asset], draft.Asset)
		default:
			return m.invalid(s, i18n.KeyConfirmBuy, rates.FormatAsset(draft.AssetAmount, draft.Asset), rates.FormatLocal(draft.LocalAmount, currency)), nil
		}

		a, err := m.escrow.Create(ctx, escrow.CreateRequest{
			InitiatorID: s.PhoneNumber,
			Asset:       draft.Asset,
			Direction:   models.BUY,
			AssetAmount: draft.AssetAmount,
			LocalAmount: draft.LocalAmount,
			Currency:    currency,
		})
		if err != nil {
			return Response{}, err
		}
		return m.escrowCreated(ctx, s, a), nil
	}
}

func enterSell(_ context.Context, m *Machine, s *session.Session, asset models.Asset) (Response, error) {
	s.Begin(session.MenuSellCrypto, session.NewExchange(asset))
	return m.con(s, i18n.KeyEnterSellAmount, asset), nil
}

// sell: asset amount, confirmation. Confirming opens a sell agreement and
// moves the caller's asset into escrow.
func sell(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	draft := s.Flow.Exchange
	currency := m.localCurrency(s)

	switch s.Step {
	case 1:
		units, err := rates.ParseAmount(input, draft.Asset)
		if err != nil {
			return m.con(s, i18n.KeyInvalidAmount, draft.Asset), nil
		}
		balance, err := m.ledger.Balance(ctx, s.PhoneNumber, draft.Asset)
		if err != nil {
			return Response{}, fmt.Errorf("failed to get balance: %w", err)
		}
		if balance < units {
			return m.end(s, i18n.KeyInsufficientFunds), nil
		}
		local, err := rates.AssetToLocal(ctx, m.rates, units, draft.Asset, currency)
		if errors.Is(err, rates.ErrUnsupportedPair) {
			return m.end(s, i18n.KeyServiceError), nil
		}
		if err != nil {
			return Response{}, err
		}
		if local <= 0 {
			return m.con(s, i18n.KeyInvalidAmount, draft.Asset), nil
		}
		draft.AssetAmount = units
		draft.LocalAmount = local
		s.Next()
		return m.con(s, i18n.KeyConfirmSell, rates.FormatAsset(units, draft.Asset), rates.FormatLocal(local, currency)), nil

	default:
		switch input {
		case "1":
		case "2":
			return cancelTo(ctx, m, s, cryptoMenus[draft.Asset], draft.Asset)
		default:
			return m.invalid(s, i18n.KeyConfirmSell, rates.FormatAsset(draft.AssetAmount, draft.Asset), rates.FormatLocal(draft.LocalAmount, currency)), nil
		}

		a, err := m.escrow.Create(ctx, escrow.CreateRequest{
			InitiatorID: s.PhoneNumber,
			Asset:       draft.Asset,
			Direction:   models.SELL,
			AssetAmount: draft.AssetAmount,
			LocalAmount: draft.LocalAmount,
			Currency:    currency,
		})
		if err != nil {
			return Response{}, err
		}

		receipt, err := m.ledger.Transfer(ctx, ledger.TransferRequest{
			From:   s.PhoneNumber,
			To:     m.principal,
			Asset:  draft.Asset,
			Amount: draft.AssetAmount,
			Memo:   "escrow " + a.ExchangeCode,
		})
		if err != nil {
			if _, cancelErr := m.escrow.Cancel(ctx, a.ExchangeCode, s.PhoneNumber); cancelErr != nil {
				slog.Error("failed to cancel unfunded agreement", "code", a.ExchangeCode, "error", cancelErr)
			}
			if errors.Is(err, ledger.ErrInsufficientFunds) {
				return m.end(s, i18n.KeyInsufficientFunds), nil
			}
			return Response{}, fmt.Errorf("failed to fund escrow: %w", err)
		}

		// Unconfirmed transfers are funded when the ledger's confirmation arrives.
		if receipt.Confirmed {
			if _, err := m.escrow.Fund(ctx, a.ExchangeCode, receipt.Reference); err != nil {
				slog.Error("failed to record escrow funding", "code", a.ExchangeCode, "reference", receipt.Reference, "error", err)
				m.unwindSell(ctx, s, a, receipt.Reference)
				return m.end(s, i18n.KeyServiceError), nil
			}
		}
		return m.escrowCreated(ctx, s, a), nil
	}
}

// unwindSell returns a confirmed deposit to the seller and cancels the
// agreement it could not fund.
func (m *Machine) unwindSell(ctx context.Context, s *session.Session, a *models.Agreement, reference string) {
	_, err := m.ledger.Transfer(ctx, ledger.TransferRequest{
		From:   m.principal,
		To:     s.PhoneNumber,
		Asset:  a.AssetType,
		Amount: a.AssetAmount,
		Memo:   "return " + a.ExchangeCode,
	})
	if err != nil {
		slog.Error("CRITICAL: failed to return unfunded deposit", "code", a.ExchangeCode, "reference", reference, "error", err)
	}
	if _, err := m.escrow.Cancel(ctx, a.ExchangeCode, s.PhoneNumber); err != nil {
		slog.Error("failed to cancel unfunded agreement", "code", a.ExchangeCode, "error", err)
	}
}

func (m *Machine) escrowCreated(ctx context.Context, s *session.Session, a *models.Agreement) Response {
	expiry := formatTime(a.ExpiresAt)
	m.text(ctx, s.PhoneNumber, i18n.KeySMSEscrowCreated, a.ExchangeCode, rates.FormatAsset(a.AssetAmount, a.AssetType), expiry)
	return m.end(s, i18n.KeyEscrowCreated, a.ExchangeCode, expiry)
}

func enterCryptoSend(_ context.Context, m *Machine, s *session.Session, asset models.Asset) (Response, error) {
	s.Begin(session.MenuSendCrypto, session.NewCryptoSend(asset))
	return m.con(s, i18n.KeyEnterAddress, assetName(asset)), nil
}

// cryptoSend: destination address, amount, confirmation.
func cryptoSend(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	draft := s.Flow.Exchange

	switch s.Step {
	case 1:
		if !ValidAddress(draft.Asset, input) {
			return m.con(s, i18n.KeyInvalidAddress, assetName(draft.Asset)), nil
		}
		draft.Address = input
		s.Next()
		return m.con(s, i18n.KeyEnterSendAmount, draft.Asset), nil

	case 2:
		units, err := rates.ParseAmount(input, draft.Asset)
		if err != nil {
			return m.con(s, i18n.KeyInvalidAmount, draft.Asset), nil
		}
		draft.AssetAmount = units
		s.Next()
		return m.con(s, i18n.KeyConfirmCryptoSend, rates.FormatAsset(units, draft.Asset), draft.Address), nil

	default:
		switch input {
		case "1":
		case "2":
			return cancelTo(ctx, m, s, cryptoMenus[draft.Asset], draft.Asset)
		default:
			return m.invalid(s, i18n.KeyConfirmCryptoSend, rates.FormatAsset(draft.AssetAmount, draft.Asset), draft.Address), nil
		}

		receipt, err := m.ledger.Withdraw(ctx, s.PhoneNumber, draft.Asset, draft.Address, draft.AssetAmount)
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return m.end(s, i18n.KeyInsufficientFunds), nil
		}
		if err != nil {
			return Response{}, fmt.Errorf("failed to send %s: %w", draft.Asset, err)
		}

		slog.Info("crypto sent", "phone", s.PhoneNumber, "asset", draft.Asset, "reference", receipt.Reference)
		return m.end(s, i18n.KeyCryptoSendSuccess, rates.FormatAsset(draft.AssetAmount, draft.Asset), receipt.Reference), nil
	}
}
