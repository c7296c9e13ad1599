package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// connectionLifetime matches the API Gateway cap on a WebSocket connection.
// Records outlive a missed $disconnect by at most this long.
const connectionLifetime = 2 * time.Hour

// WebSocketConnection represents a record in the WebSocket connections table.
// ExpiresAt is the table's TTL attribute.
type WebSocketConnection struct {
	ConnectionID string `dynamodbav:"connection_id"`
	AgentID      string `dynamodbav:"agent_id"`
	ExpiresAt    int64  `dynamodbav:"expires_at,omitempty"`
}

// AddConnection saves an agent dashboard connection.
func (s *Store) AddConnection(ctx context.Context, connectionID, agentID string) error {
	item, err := attributevalue.MarshalMap(WebSocketConnection{
		ConnectionID: connectionID,
		AgentID:      agentID,
		ExpiresAt:    time.Now().Add(connectionLifetime).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

// RemoveConnection deletes a connection record.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Key: map[string]types.AttributeValue{
			"connection_id": &types.AttributeValueMemberS{Value: connectionID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

// GetAgentConnections returns the connection IDs open for one agent.
func (s *Store) GetAgentConnections(ctx context.Context, agentID string) ([]string, error) {
	queryOutput, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.ConnectionsTableName),
		IndexName:              aws.String(connectionsIndex),
		KeyConditionExpression: aws.String("agent_id = :agent_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":agent_id": &types.AttributeValueMemberS{Value: agentID},
		},
		ProjectionExpression: aws.String("connection_id"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections table: %w", err)
	}

	var connections []WebSocketConnection
	if err := attributevalue.UnmarshalListOfMaps(queryOutput.Items, &connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	connectionIDs := make([]string, len(connections))
	for i, conn := range connections {
		connectionIDs[i] = conn.ConnectionID
	}

	return connectionIDs, nil
}
