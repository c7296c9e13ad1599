package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/chris/cash-agent-exchange/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConnections(t *testing.T) {
	t.Run("Add Records Agent", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			agent := in.Item["agent_id"].(*types.AttributeValueMemberS)
			_, hasTTL := in.Item["expires_at"].(*types.AttributeValueMemberN)
			return *in.TableName == "connections" && agent.Value == "AG001" && hasTTL
		})).Return(&dynamodb.PutItemOutput{}, nil)

		assert.NoError(t, store.AddConnection(context.Background(), "conn-1", "AG001"))
	})

	t.Run("Remove", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		assert.ErrorContains(t, store.RemoveConnection(context.Background(), "conn-1"), "failed to delete item")
	})

	t.Run("Agent Connections", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		c1, _ := attributevalue.MarshalMap(WebSocketConnection{ConnectionID: "conn-1"})
		c2, _ := attributevalue.MarshalMap(WebSocketConnection{ConnectionID: "conn-2"})
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == connectionsIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{c1, c2}}, nil)

		ids, err := store.GetAgentConnections(context.Background(), "AG001")

		require.NoError(t, err)
		assert.Equal(t, []string{"conn-1", "conn-2"}, ids)
	})
}

func TestAgents(t *testing.T) {
	t.Run("Get Missing", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetAgent(context.Background(), "AG404")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("List Sorted Across Pages", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		b, _ := attributevalue.MarshalMap(models.Agent{AgentId: "AG002", IsActive: true})
		a, _ := attributevalue.MarshalMap(models.Agent{AgentId: "AG001", IsActive: true})
		cursor := map[string]types.AttributeValue{"agent_id": &types.AttributeValueMemberS{Value: "AG002"}}
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{b}, LastEvaluatedKey: cursor}, nil).Once()
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{a}}, nil).Once()

		agents, err := store.ListAgents(context.Background())

		require.NoError(t, err)
		require.Len(t, agents, 2)
		assert.Equal(t, "AG001", agents[0].AgentId)
	})

	t.Run("Put", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		assert.NoError(t, store.PutAgent(context.Background(), &models.Agent{AgentId: "AG003"}))
	})
}
