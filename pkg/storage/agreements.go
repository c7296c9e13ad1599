package storage

import (
	"context"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

// SettlementKind names the ledger reference recorded against a resolved agreement.
type SettlementKind string

const (
	SettlementRelease SettlementKind = "release"
	SettlementRefund  SettlementKind = "refund"
)

// AgreementReader defines the interface for reading escrow agreements.
type AgreementReader interface {
	// GetAgreement retrieves an agreement by its exchange code. Returns ErrNotFound if absent.
	GetAgreement(ctx context.Context, code string) (*models.Agreement, error)

	// ListAgreementsByInitiator returns the agreements a user created, newest first.
	ListAgreementsByInitiator(ctx context.Context, userID string) ([]models.Agreement, error)

	// ListAgreementsByAgent returns the agreements bound to an agent, newest first.
	ListAgreementsByAgent(ctx context.Context, agentID string) ([]models.Agreement, error)

	// ListOverdueAgreements returns agreements in the given status whose expires_at is before now.
	ListOverdueAgreements(ctx context.Context, status models.AgreementStatus, now time.Time) ([]models.Agreement, error)
}

// AgreementManager defines the conditional state transitions of an agreement.
// Every transition is a single compare-and-set on the stored record: when the
// record is not in the expected state the call returns ErrConditionFailed and
// nothing is written. Successful transitions return the updated record.
type AgreementManager interface {
	// CreateAgreement stores a new agreement. Returns ErrAlreadyExists if the exchange code is taken.
	CreateAgreement(ctx context.Context, agreement *models.Agreement) error

	// FundAgreement moves pending -> funded while unexpired.
	FundAgreement(ctx context.Context, code, reference string, now time.Time) (*models.Agreement, error)

	// ClaimAgreement binds an unassigned pending or funded agreement to an agent while unexpired.
	ClaimAgreement(ctx context.Context, code, agentID string, now time.Time) (*models.Agreement, error)

	// CompleteAgreement moves funded -> completed while unexpired, binding the agent
	// when the agreement is unassigned and rejecting any other agent.
	CompleteAgreement(ctx context.Context, code, agentID string, now time.Time) (*models.Agreement, error)

	// ExpireAgreement moves pending|funded -> expired once expires_at has passed.
	ExpireAgreement(ctx context.Context, code string, now time.Time) (*models.Agreement, error)

	// CancelAgreement moves pending -> cancelled when requested by the initiator.
	CancelAgreement(ctx context.Context, code, userID string, now time.Time) (*models.Agreement, error)

	// RecordSettlement stores the ledger reference of a release or refund, once.
	RecordSettlement(ctx context.Context, code string, kind SettlementKind, reference string) error
}

// AgreementStore combines the reader and manager interfaces.
type AgreementStore interface {
	AgreementReader
	AgreementManager
}
