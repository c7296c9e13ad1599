package dynamodb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

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

func testTables() Tables {
	return Tables{
		Accounts:    "accounts",
		Agents:      "agents",
		Agreements:  "agreements",
		Wallets:     "wallets",
		Ledger:      "ledger",
		Connections: "connections",
	}
}

func sampleAgreement(now time.Time) models.Agreement {
	return models.Agreement{
		Id:                  "a-1",
		ExchangeCode:        "BTC-ABC123",
		InitiatorUserId:     "+256700000001",
		AssetType:           models.BTC,
		Direction:           models.SELL,
		AssetAmount:         500000,
		LocalCurrencyAmount: 750000,
		Currency:            "UGX",
		Status:              models.PENDING,
		CreatedAt:           now,
		UpdatedAt:           now,
		ExpiresAt:           now.Add(24 * time.Hour),
	}
}

func TestGetAgreement(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())

		want := sampleAgreement(now)
		item, err := attributevalue.MarshalMap(want)
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			key := in.Key["exchange_code"].(*types.AttributeValueMemberS)
			return *in.TableName == "agreements" && key.Value == "BTC-ABC123" && *in.ConsistentRead
		})).Return(&dynamodb.GetItemOutput{Item: item}, nil)

		got, err := store.GetAgreement(context.Background(), "BTC-ABC123")

		require.NoError(t, err)
		assert.Equal(t, want.ExchangeCode, got.ExchangeCode)
		assert.Equal(t, want.AssetAmount, got.AssetAmount)
		assert.Equal(t, want.ExpiresAt.Unix(), got.ExpiresAt.Unix())
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetAgreement(context.Background(), "BTC-NOPE00")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		_, err := store.GetAgreement(context.Background(), "BTC-ABC123")

		assert.ErrorContains(t, err, "failed to get agreement from DynamoDB")
	})
}

func TestCreateAgreement(t *testing.T) {
	now := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			_, hasAgent := in.Item["assigned_agent_id"]
			return *in.ConditionExpression == "attribute_not_exists(exchange_code)" && !hasAgent
		})).Return(&dynamodb.PutItemOutput{}, nil)

		a := sampleAgreement(now)
		assert.NoError(t, store.CreateAgreement(context.Background(), &a))
	})

	t.Run("Code Taken", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		a := sampleAgreement(now)
		assert.ErrorIs(t, store.CreateAgreement(context.Background(), &a), storage.ErrAlreadyExists)
	})
}

func TestAgreementTransitions(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	updated := func(t *testing.T, status models.AgreementStatus, agent string) *dynamodb.UpdateItemOutput {
		a := sampleAgreement(now)
		a.Status = status
		a.AssignedAgentId = agent
		attrs, err := attributevalue.MarshalMap(a)
		require.NoError(t, err)
		return &dynamodb.UpdateItemOutput{Attributes: attrs}
	}

	cases := []struct {
		name      string
		call      func(*Store) (*models.Agreement, error)
		condition string
		status    models.AgreementStatus
		agent     string
	}{
		{
			name:      "Fund",
			call:      func(s *Store) (*models.Agreement, error) { return s.FundAgreement(context.Background(), "BTC-ABC123", "ref-1", now) },
			condition: "#status = :pending AND expires_at >= :now",
			status:    models.FUNDED,
		},
		{
			name:      "Claim",
			call:      func(s *Store) (*models.Agreement, error) { return s.ClaimAgreement(context.Background(), "BTC-ABC123", "AG001", now) },
			condition: "attribute_not_exists(assigned_agent_id)",
			status:    models.PENDING,
			agent:     "AG001",
		},
		{
			name:      "Complete",
			call:      func(s *Store) (*models.Agreement, error) { return s.CompleteAgreement(context.Background(), "BTC-ABC123", "AG001", now) },
			condition: "assigned_agent_id = :agent_id",
			status:    models.COMPLETED,
			agent:     "AG001",
		},
		{
			name:      "Expire",
			call:      func(s *Store) (*models.Agreement, error) { return s.ExpireAgreement(context.Background(), "BTC-ABC123", now) },
			condition: "expires_at < :now",
			status:    models.EXPIRED,
		},
		{
			name:      "Cancel",
			call:      func(s *Store) (*models.Agreement, error) { return s.CancelAgreement(context.Background(), "BTC-ABC123", "+256700000001", now) },
			condition: "initiator_user_id = :user_id",
			status:    models.CANCELLED,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name+" Success", func(t *testing.T) {
			mockClient := mocks.NewDynamoDBAPI(t)
			store := New(mockClient, testTables())
			mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
				nowAV, ok := in.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberN)
				return strings.HasPrefix(*in.ConditionExpression, "attribute_exists(exchange_code) AND ") &&
					strings.Contains(*in.ConditionExpression, tc.condition) &&
					in.ReturnValues == types.ReturnValueAllNew &&
					ok && nowAV.Value == "1740830400"
			})).Return(updated(t, tc.status, tc.agent), nil)

			got, err := tc.call(store)

			require.NoError(t, err)
			assert.Equal(t, tc.status, got.Status)
			assert.Equal(t, tc.agent, got.AssignedAgentId)
		})

		t.Run(tc.name+" Condition Failed", func(t *testing.T) {
			mockClient := mocks.NewDynamoDBAPI(t)
			store := New(mockClient, testTables())
			mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

			_, err := tc.call(store)

			assert.ErrorIs(t, err, storage.ErrConditionFailed)
		})

		t.Run(tc.name+" Storage Error", func(t *testing.T) {
			mockClient := mocks.NewDynamoDBAPI(t)
			store := New(mockClient, testTables())
			mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

			_, err := tc.call(store)

			assert.Error(t, err)
			assert.NotErrorIs(t, err, storage.ErrConditionFailed)
		})
	}
}

func TestRecordSettlement(t *testing.T) {
	t.Run("Release Recorded Once", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.UpdateExpression == "SET release_ref = :ref" &&
				strings.Contains(*in.ConditionExpression, "attribute_not_exists(release_ref)")
		})).Return(&dynamodb.UpdateItemOutput{}, nil).Once()
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		require.NoError(t, store.RecordSettlement(context.Background(), "BTC-ABC123", storage.SettlementRelease, "tx-1"))
		assert.ErrorIs(t, store.RecordSettlement(context.Background(), "BTC-ABC123", storage.SettlementRelease, "tx-2"), storage.ErrConditionFailed)
	})

	t.Run("Refund Column", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.UpdateExpression == "SET refund_ref = :ref"
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		assert.NoError(t, store.RecordSettlement(context.Background(), "BTC-ABC123", storage.SettlementRefund, "tx-1"))
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		store := New(mocks.NewDynamoDBAPI(t), testTables())
		assert.Error(t, store.RecordSettlement(context.Background(), "BTC-ABC123", "bonus", "tx-1"))
	})
}

func TestListAgreements(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := sampleAgreement(now)
	second := sampleAgreement(now)
	second.ExchangeCode = "BTC-DEF456"
	firstAV, _ := attributevalue.MarshalMap(first)
	secondAV, _ := attributevalue.MarshalMap(second)

	t.Run("Follows Pages", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		cursor := map[string]types.AttributeValue{"exchange_code": &types.AttributeValueMemberS{Value: "BTC-ABC123"}}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == initiatorIndex && in.ExclusiveStartKey == nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{firstAV}, LastEvaluatedKey: cursor}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{secondAV}}, nil).Once()

		got, err := store.ListAgreementsByInitiator(context.Background(), first.InitiatorUserId)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "BTC-DEF456", got[1].ExchangeCode)
	})

	t.Run("Overdue Uses Status Index", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			status := in.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS)
			return *in.IndexName == overdueIndex && status.Value == "funded"
		})).Return(&dynamodb.QueryOutput{}, nil)

		got, err := store.ListOverdueAgreements(context.Background(), models.FUNDED, now)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("By Agent Error", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := store.ListAgreementsByAgent(context.Background(), "AG001")

		assert.ErrorContains(t, err, "failed to query agreements")
	})
}
