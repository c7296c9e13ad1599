package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

// GetAgent retrieves a cash agent by ID.
func (s *Store) GetAgent(ctx context.Context, agentID string) (*models.Agent, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.AgentsTableName),
		Key: map[string]types.AttributeValue{
			"agent_id": &types.AttributeValueMemberS{Value: agentID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get agent from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var agent models.Agent
	if err := attributevalue.UnmarshalMap(result.Item, &agent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent: %w", err)
	}
	return &agent, nil
}

// ListAgents scans the agent directory, ordered by ID.
func (s *Store) ListAgents(ctx context.Context) ([]models.Agent, error) {
	agents := []models.Agent{}
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.AgentsTableName),
	}
	for {
		page, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agents table: %w", err)
		}
		var batch []models.Agent
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
		}
		agents = append(agents, batch...)
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].AgentId < agents[j].AgentId })
	return agents, nil
}

// PutAgent creates or replaces a directory entry.
func (s *Store) PutAgent(ctx context.Context, agent *models.Agent) error {
	item, err := attributevalue.MarshalMap(agent)
	if err != nil {
		return fmt.Errorf("failed to marshal agent: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.AgentsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put agent in DynamoDB: %w", err)
	}
	return nil
}
