package websockets

import "time"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeAgreementUpdate is sent whenever an agreement bound to the agent changes state.
	MessageTypeAgreementUpdate MessageType = "agreementUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// AgreementUpdatePayload is the payload for an agreementUpdate message.
type AgreementUpdatePayload struct {
	ExchangeCode string    `json:"exchange_code"`
	Status       string    `json:"status"`
	Direction    string    `json:"direction"`
	Asset        string    `json:"asset"`
	AssetAmount  int64     `json:"asset_amount"`
	LocalAmount  int64     `json:"local_amount"`
	Currency     string    `json:"currency"`
	ExpiresAt    time.Time `json:"expires_at"`
}
