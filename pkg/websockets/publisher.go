package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/models"
)

// DefaultPublisher pushes messages to every open connection of an agent.
type DefaultPublisher struct {
	store       AgentConnectionsGetter
	connManager ConnectionManager
	client      PostAPI
}

// NewPublisher creates a DefaultPublisher that posts through the given client.
func NewPublisher(store AgentConnectionsGetter, connManager ConnectionManager, client PostAPI) *DefaultPublisher {
	return &DefaultPublisher{
		store:       store,
		connManager: connManager,
		client:      client,
	}
}

// NewAPIGatewayClient builds a management client for the deployed WebSocket API.
func NewAPIGatewayClient(ctx context.Context, apiEndpoint string) (*apigatewaymanagementapi.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	}), nil
}

var (
	_ Publisher       = (*DefaultPublisher)(nil)
	_ escrow.Observer = (*DefaultPublisher)(nil)
)

// Publish sends a message to all of the agent's connections. Stale connections are removed.
func (p *DefaultPublisher) Publish(ctx context.Context, agentID string, message Message) error {
	connectionIDs, err := p.store.GetAgentConnections(ctx, agentID)
	if err != nil {
		return fmt.Errorf("failed to get agent connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})

		if err != nil {
			var goneErr *apigwtypes.GoneException
			if errors.As(err, &goneErr) {
				slog.Info("stale connection found, deleting", "connectionId", connectionID)
				if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
					slog.Error("failed to delete stale connection", "error", err)
				}
			} else {
				slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
			}
		}
	}

	return nil
}

// AgreementChanged forwards agreement transitions to the bound agent's dashboards.
func (p *DefaultPublisher) AgreementChanged(ctx context.Context, a *models.Agreement) {
	if a.AssignedAgentId == "" {
		return
	}

	err := p.Publish(ctx, a.AssignedAgentId, Message{
		Type: MessageTypeAgreementUpdate,
		Payload: AgreementUpdatePayload{
			ExchangeCode: a.ExchangeCode,
			Status:       string(a.Status),
			Direction:    string(a.Direction),
			Asset:        string(a.AssetType),
			AssetAmount:  a.AssetAmount,
			LocalAmount:  a.LocalCurrencyAmount,
			Currency:     a.Currency,
			ExpiresAt:    a.ExpiresAt,
		},
	})
	if err != nil {
		slog.Error("failed to publish agreement update", "code", a.ExchangeCode, "agent", a.AssignedAgentId, "error", err)
	}
}
