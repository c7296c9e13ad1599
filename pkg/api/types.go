// Package api holds the JSON shapes served by the HTTP handlers.
package api

import "time"

// Agreement is the agent-facing view of an escrow agreement. Amounts are in
// the smallest unit of their asset; AssetAmountDisplay is the same amount in
// whole units for dashboards.
type Agreement struct {
	Id                 string     `json:"id"`
	ExchangeCode       string     `json:"exchangeCode"`
	AssignedAgentId    string     `json:"assignedAgentId,omitempty"`
	Asset              string     `json:"asset"`
	Direction          string     `json:"direction"`
	AssetAmount        int64      `json:"assetAmount"`
	AssetAmountDisplay string     `json:"assetAmountDisplay"`
	LocalAmount        int64      `json:"localAmount"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	ExpiresAt          time.Time  `json:"expiresAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

// CommissionTotal sums an agent's commission over completed agreements of one asset and currency.
type CommissionTotal struct {
	Asset       string `json:"asset"`
	Currency    string `json:"currency"`
	Agreements  int    `json:"agreements"`
	LocalAmount int64  `json:"localAmount"`
	AssetAmount int64  `json:"assetAmount"`
}

// Commissions is the response of the agent commission report.
type Commissions struct {
	AgentId string            `json:"agentId"`
	Rate    string            `json:"rate"`
	Totals  []CommissionTotal `json:"totals"`
}

// Wallet is a principal's balance of one asset.
type Wallet struct {
	UserId         string `json:"userId"`
	Asset          string `json:"asset"`
	Balance        int64  `json:"balance"`
	DepositAddress string `json:"depositAddress,omitempty"`
}

// Credit seeds a development wallet.
type Credit struct {
	Amount int64  `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

// LedgerEntry is one side of a ledger transfer.
type LedgerEntry struct {
	TransactionId string    `json:"transactionId"`
	EntryId       string    `json:"entryId"`
	AccountId     string    `json:"accountId"`
	Asset         string    `json:"asset"`
	Debit         *int64    `json:"debit,omitempty"`
	Credit        *int64    `json:"credit,omitempty"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}

// Health reports liveness and the number of open USSD sessions.
type Health struct {
	Status         string `json:"status"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
	ActiveSessions int    `json:"activeSessions"`
}

// Error is the body of every non-2xx JSON response.
type Error struct {
	Message string `json:"message"`
}
