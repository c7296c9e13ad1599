package storage

import (
	"context"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

// AgentStore defines the interface for the cash agent directory.
type AgentStore interface {
	GetAgent(ctx context.Context, agentID string) (*models.Agent, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	PutAgent(ctx context.Context, agent *models.Agent) error
}
