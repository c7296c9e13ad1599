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

func TestCreateAccount(t *testing.T) {
	account := &models.Account{PhoneOrEmail: "+256700000001", FirstName: "Amina", LastName: "Nakato", PinHash: "hash"}

	t.Run("Success", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			_, hasPin := in.Item["pin_hash"]
			return *in.TableName == "accounts" && hasPin
		})).Return(&dynamodb.PutItemOutput{}, nil)

		assert.NoError(t, store.CreateAccount(context.Background(), account))
	})

	t.Run("Conflict", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		assert.ErrorIs(t, store.CreateAccount(context.Background(), account), storage.ErrAlreadyExists)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		assert.ErrorContains(t, store.CreateAccount(context.Background(), account), "failed to create account in DynamoDB")
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetAccount(context.Background(), "+256700000001")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Decodes Lock", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		until := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
		item, _ := attributevalue.MarshalMap(models.Account{PhoneOrEmail: "+256700000001", LockedUntil: &until})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil)

		acct, err := store.GetAccount(context.Background(), "+256700000001")

		require.NoError(t, err)
		require.NotNil(t, acct.LockedUntil)
		assert.True(t, acct.LockedUntil.Equal(until))
	})
}

func TestAccountUpdates(t *testing.T) {
	returned, _ := attributevalue.MarshalMap(models.Account{PhoneOrEmail: "+256700000001", PinFailures: 4})

	t.Run("Increment Returns Counter", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			_, hasNow := in.ExpressionAttributeValues[":now"]
			return strings.HasPrefix(*in.UpdateExpression, "SET pin_failures = if_not_exists(pin_failures, :zero) + :one") &&
				*in.ConditionExpression == "attribute_exists(phone_or_email)" && hasNow
		})).Return(&dynamodb.UpdateItemOutput{Attributes: returned}, nil)

		acct, err := store.IncrementPINFailures(context.Background(), "+256700000001")

		require.NoError(t, err)
		assert.Equal(t, int64(4), acct.PinFailures)
	})

	t.Run("Update PIN Clears Lock", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return strings.HasSuffix(*in.UpdateExpression, "REMOVE locked_until")
		})).Return(&dynamodb.UpdateItemOutput{Attributes: returned}, nil)

		assert.NoError(t, store.UpdatePIN(context.Background(), "+256700000001", "newhash"))
	})

	t.Run("Preferences Skip Empty Values", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			_, hasCurrency := in.ExpressionAttributeValues[":currency"]
			return *in.UpdateExpression == "SET updated_at = :now, #language = :language" &&
				in.ExpressionAttributeNames["#language"] == "language" && !hasCurrency
		})).Return(&dynamodb.UpdateItemOutput{Attributes: returned}, nil)

		assert.NoError(t, store.UpdatePreferences(context.Background(), "+256700000001", "sw", ""))
	})

	t.Run("Currency Only Binds No Names", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.UpdateExpression == "SET updated_at = :now, preferred_currency = :currency" &&
				in.ExpressionAttributeNames == nil
		})).Return(&dynamodb.UpdateItemOutput{Attributes: returned}, nil)

		assert.NoError(t, store.UpdatePreferences(context.Background(), "+256700000001", "", "KES"))
	})

	t.Run("Lock Sets Window", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			_, hasUntil := in.ExpressionAttributeValues[":until"]
			return hasUntil
		})).Return(&dynamodb.UpdateItemOutput{Attributes: returned}, nil)

		assert.NoError(t, store.LockAccount(context.Background(), "+256700000001", time.Now().Add(30*time.Minute)))
	})

	t.Run("Missing Account", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		store := New(mockClient, testTables())
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		assert.ErrorIs(t, store.ResetPINFailures(context.Background(), "+256700000009"), storage.ErrNotFound)
	})
}
