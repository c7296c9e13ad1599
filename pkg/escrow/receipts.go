package escrow

import (
	"context"
	"log/slog"

	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/notify"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

// Receipts texts the initiator when an agreement completes. Delivery is best
// effort: the state change has already been committed.
type Receipts struct {
	Sender   notify.Sender
	Accounts storage.AccountStore
}

var _ Observer = (*Receipts)(nil)

func (r *Receipts) AgreementChanged(ctx context.Context, a *models.Agreement) {
	if a.Status != models.COMPLETED {
		return
	}

	lang := i18n.Default
	if acct, err := r.Accounts.GetAccount(ctx, a.InitiatorUserId); err == nil && acct.Language != "" {
		lang = i18n.Lang(acct.Language)
	}

	msg := i18n.T(lang, i18n.KeySMSEscrowCompleted, a.ExchangeCode)
	if err := r.Sender.Send(ctx, a.InitiatorUserId, msg); err != nil {
		slog.Error("failed to send completion receipt", "code", a.ExchangeCode, "error", err)
	}
}
