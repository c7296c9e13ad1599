package websockets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
)

// ConnectionManager defines the interface for managing agent dashboard connections.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID, agentID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// AgentConnectionsGetter returns the open connections of one agent.
type AgentConnectionsGetter interface {
	GetAgentConnections(ctx context.Context, agentID string) ([]string, error)
}

// Publisher defines the interface for publishing messages to an agent's dashboards.
type Publisher interface {
	Publish(ctx context.Context, agentID string, message Message) error
}

// PostAPI is the subset of the API Gateway management client used to push frames.
type PostAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}
