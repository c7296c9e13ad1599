package models

import (
	"strings"
	"time"
)

// AgreementStatus defines the possible states of an escrow agreement.
type AgreementStatus string

const (
	PENDING   AgreementStatus = "pending"
	FUNDED    AgreementStatus = "funded"
	COMPLETED AgreementStatus = "completed"
	EXPIRED   AgreementStatus = "expired"
	CANCELLED AgreementStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed out of the status.
func (s AgreementStatus) IsTerminal() bool {
	return s == COMPLETED || s == EXPIRED || s == CANCELLED
}

// Direction says which side of the exchange the initiating user is on.
type Direction string

const (
	// SELL means the user hands over crypto and receives cash from the agent.
	SELL Direction = "sell"
	// BUY means the user hands over cash and receives crypto from the agent.
	BUY Direction = "buy"
)

// Asset identifies a balance kind held by the ledger. Crypto assets are listed
// below; any other value is treated as an ISO currency code.
type Asset string

const (
	BTC  Asset = "BTC"
	USDC Asset = "USDC"
)

// IsCrypto reports whether the asset is one of the supported crypto assets.
func (a Asset) IsCrypto() bool {
	return a == BTC || a == USDC
}

// Decimals is the number of fractional digits in one whole unit of the asset.
// Local currencies are kept in whole units.
func (a Asset) Decimals() int32 {
	switch a {
	case BTC:
		return 8
	case USDC:
		return 6
	default:
		return 0
	}
}

// ParseAsset normalizes a user or API supplied asset symbol.
func ParseAsset(s string) (Asset, bool) {
	a := Asset(strings.ToUpper(strings.TrimSpace(s)))
	return a, a.IsCrypto()
}

// KYCStatus tracks identity verification of an account.
type KYCStatus string

const (
	KYCNotStarted KYCStatus = "not_started"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
)

// Account is the durable user record. The identity key is the phone number (or
// email for web sign-ups).
type Account struct {
	PhoneOrEmail      string     `json:"phone_or_email" dynamodbav:"phone_or_email"`
	FirstName         string     `json:"first_name" dynamodbav:"first_name"`
	LastName          string     `json:"last_name" dynamodbav:"last_name"`
	PreferredCurrency string     `json:"preferred_currency" dynamodbav:"preferred_currency"`
	Language          string     `json:"language,omitempty" dynamodbav:"language,omitempty"`
	PinHash           string     `json:"-" dynamodbav:"pin_hash,omitempty"`
	PinFailures       int64      `json:"-" dynamodbav:"pin_failures"`
	LockedUntil       *time.Time `json:"-" dynamodbav:"locked_until,omitempty"`
	KYCStatus         KYCStatus  `json:"kyc_status" dynamodbav:"kyc_status"`
	CreatedAt         time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// HasPIN reports whether the account finished PIN setup.
func (a *Account) HasPIN() bool {
	return a.PinHash != ""
}

// FullName joins the first and last name.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// IsLocked reports whether the account is inside a PIN lockout window.
func (a *Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

// Agent is a cash agent that fulfils in-person exchanges.
type Agent struct {
	AgentId        string    `json:"agent_id" dynamodbav:"agent_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	Phone          string    `json:"phone" dynamodbav:"phone"`
	Location       string    `json:"location" dynamodbav:"location"`
	CommissionRate string    `json:"commission_rate" dynamodbav:"commission_rate"`
	IsActive       bool      `json:"is_active" dynamodbav:"is_active"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Agreement represents an escrow agreement between a user and a cash agent.
// Amounts are integers in the smallest unit of their asset (see Asset.Decimals).
type Agreement struct {
	Id                  string          `json:"id" dynamodbav:"id"`
	ExchangeCode        string          `json:"exchange_code" dynamodbav:"exchange_code"`
	InitiatorUserId     string          `json:"initiator_user_id" dynamodbav:"initiator_user_id"`
	AssignedAgentId     string          `json:"assigned_agent_id,omitempty" dynamodbav:"assigned_agent_id,omitempty"`
	AssetType           Asset           `json:"asset_type" dynamodbav:"asset_type"`
	Direction           Direction       `json:"direction" dynamodbav:"direction"`
	AssetAmount         int64           `json:"asset_amount" dynamodbav:"asset_amount"`
	LocalCurrencyAmount int64           `json:"local_currency_amount" dynamodbav:"local_currency_amount"`
	Currency            string          `json:"currency" dynamodbav:"currency"`
	Status              AgreementStatus `json:"status" dynamodbav:"status"`
	FundingRef          string          `json:"funding_ref,omitempty" dynamodbav:"funding_ref,omitempty"`
	ReleaseRef          string          `json:"release_ref,omitempty" dynamodbav:"release_ref,omitempty"`
	RefundRef           string          `json:"refund_ref,omitempty" dynamodbav:"refund_ref,omitempty"`
	CreatedAt           time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" dynamodbav:"updated_at"`
	ExpiresAt           time.Time       `json:"expires_at" dynamodbav:"expires_at,unixtime"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
}

// IsExpired compares at second precision, matching the stored expires_at.
func (a *Agreement) IsExpired(now time.Time) bool {
	return now.Unix() > a.ExpiresAt.Unix()
}

// Funder is the ledger principal that moves the asset into escrow.
func (a *Agreement) Funder() string {
	if a.Direction == BUY {
		return a.AssignedAgentId
	}
	return a.InitiatorUserId
}

// Recipient is the ledger principal that receives the escrowed asset on completion.
func (a *Agreement) Recipient() string {
	if a.Direction == BUY {
		return a.InitiatorUserId
	}
	return a.AssignedAgentId
}

// Wallet is a per-principal, per-asset balance kept by the development ledger.
type Wallet struct {
	UserId         string    `json:"user_id" dynamodbav:"user_id"`
	Asset          Asset     `json:"asset" dynamodbav:"asset"`
	Balance        int64     `json:"balance" dynamodbav:"balance"`
	Version        int64     `json:"version" dynamodbav:"version"`
	DepositAddress string    `json:"deposit_address,omitempty" dynamodbav:"deposit_address,omitempty"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}

// LedgerEntry represents a single entry in the double-entry ledger.
type LedgerEntry struct {
	EntryID       string    `json:"entry_id" dynamodbav:"entry_id"`
	TransactionID string    `json:"transaction_id" dynamodbav:"transaction_id"`
	AccountID     string    `json:"account_id" dynamodbav:"account_id"`
	Asset         Asset     `json:"asset" dynamodbav:"asset"`
	Debit         int64     `json:"debit,omitempty" dynamodbav:"debit,omitempty"`
	Credit        int64     `json:"credit,omitempty" dynamodbav:"credit,omitempty"`
	Description   string    `json:"description" dynamodbav:"description"`
	Timestamp     time.Time `json:"timestamp" dynamodbav:"timestamp"`
}
