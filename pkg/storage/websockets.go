package storage

import "context"

// WebSocketManager defines the interface for storing and retrieving agent dashboard connections.
type WebSocketManager interface {
	AddConnection(ctx context.Context, connectionID, agentID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAgentConnections(ctx context.Context, agentID string) ([]string, error)
}
