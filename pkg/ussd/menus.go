package ussd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/session"
)

func enterMain(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuMain)
	return m.con(s, i18n.KeyMainMenu), nil
}

func mainMenu(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	switch input {
	case "1":
		return m.open(ctx, s, session.MenuLocalCurrency, "")
	case "2":
		return m.open(ctx, s, session.MenuBitcoin, models.BTC)
	case "3":
		return m.open(ctx, s, session.MenuUSDC, models.USDC)
	case "4":
		return m.open(ctx, s, session.MenuSettings, "")
	}
	return m.invalid(s, i18n.KeyMainMenu), nil
}

func enterLocalMenu(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuLocalCurrency)
	return m.con(s, i18n.KeyLocalMenu), nil
}

func localMenu(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	next := map[string]session.Menu{
		"1": session.MenuSendMoney,
		"2": session.MenuLocalBalance,
		"3": session.MenuDeposit,
		"4": session.MenuWithdraw,
		"5": session.MenuFindAgent,
		"6": session.MenuHistory,
	}
	if menu, ok := next[input]; ok {
		return m.open(ctx, s, menu, "")
	}
	return m.invalid(s, i18n.KeyLocalMenu), nil
}

func enterCryptoMenu(asset models.Asset) enterFunc {
	return func(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
		s.Begin(cryptoMenus[asset], session.NewCryptoMenu(asset))
		return m.con(s, i18n.KeyCryptoMenu, assetName(asset)), nil
	}
}

func cryptoMenu(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	asset := s.Flow.Exchange.Asset
	next := map[string]session.Menu{
		"1": session.MenuCryptoBalance,
		"2": session.MenuDepositAddress,
		"3": session.MenuBuyCrypto,
		"4": session.MenuSellCrypto,
		"5": session.MenuSendCrypto,
	}
	if menu, ok := next[input]; ok {
		return m.open(ctx, s, menu, asset)
	}
	return m.invalid(s, i18n.KeyCryptoMenu, assetName(asset)), nil
}

func enterSettings(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuSettings)
	return m.con(s, i18n.KeySettingsMenu), nil
}

func settingsMenu(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	switch input {
	case "1":
		return m.open(ctx, s, session.MenuLanguage, "")
	case "2":
		return m.open(ctx, s, session.MenuChangePin, "")
	case "3":
		return m.open(ctx, s, session.MenuCurrency, "")
	}
	return m.invalid(s, i18n.KeySettingsMenu), nil
}

func enterLanguage(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuLanguage)
	return m.con(s, i18n.KeyLanguageMenu), nil
}

func chooseLanguage(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(i18n.Supported) {
		return m.invalid(s, i18n.KeyLanguageMenu), nil
	}

	lang := i18n.Supported[n-1]
	if err := m.accounts.UpdatePreferences(ctx, s.PhoneNumber, string(lang), ""); err != nil {
		return Response{}, fmt.Errorf("failed to update language: %w", err)
	}
	s.Language = string(lang)

	resp, err := enterSettings(ctx, m, s, "")
	return m.prefixed(s, i18n.KeyLanguageSet, resp), err
}

func enterCurrency(_ context.Context, m *Machine, s *session.Session, _ models.Asset) (Response, error) {
	s.Enter(session.MenuCurrency)
	return m.con(s, i18n.KeyCurrencyMenu), nil
}

func chooseCurrency(ctx context.Context, m *Machine, s *session.Session, input string) (Response, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(Currencies) {
		return m.invalid(s, i18n.KeyCurrencyMenu), nil
	}

	currency := Currencies[n-1]
	if err := m.accounts.UpdatePreferences(ctx, s.PhoneNumber, "", currency); err != nil {
		return Response{}, fmt.Errorf("failed to update currency: %w", err)
	}
	s.Currency = currency

	resp, err := enterSettings(ctx, m, s, "")
	resp.Text = i18n.T(m.lang(s), i18n.KeyCurrencySet, currency) + "\n" + resp.Text
	return resp, err
}
