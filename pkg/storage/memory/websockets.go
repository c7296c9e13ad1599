package memory

import (
	"context"
	"sort"
)

func (s *Store) AddConnection(_ context.Context, connectionID, agentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections[connectionID] = agentID
	return nil
}

func (s *Store) RemoveConnection(_ context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.connections, connectionID)
	return nil
}

func (s *Store) GetAgentConnections(_ context.Context, agentID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for id, agent := range s.connections {
		if agent == agentID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
