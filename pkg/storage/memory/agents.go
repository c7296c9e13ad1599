package memory

import (
	"context"
	"sort"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

func (s *Store) GetAgent(_ context.Context, agentID string) (*models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, ok := s.agents[agentID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &agent, nil
}

func (s *Store) ListAgents(_ context.Context) ([]models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := make([]models.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].AgentId < agents[j].AgentId })
	return agents, nil
}

func (s *Store) PutAgent(_ context.Context, agent *models.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents[agent.AgentId] = *agent
	return nil
}
