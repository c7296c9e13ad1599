package dynamodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

func accountKey(phoneOrEmail string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"phone_or_email": &types.AttributeValueMemberS{Value: phoneOrEmail},
	}
}

// GetAccount retrieves an account by its phone number or email.
func (s *Store) GetAccount(ctx context.Context, phoneOrEmail string) (*models.Account, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.AccountsTableName),
		Key:            accountKey(phoneOrEmail),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}

// CreateAccount stores a new account, refusing to overwrite an existing identity.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	item, err := attributevalue.MarshalMap(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(phone_or_email)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}
	return nil
}

// UpdatePIN replaces the PIN hash and clears the failure counter and lock.
func (s *Store) UpdatePIN(ctx context.Context, phoneOrEmail, pinHash string) error {
	_, err := s.updateAccount(ctx, phoneOrEmail,
		"SET pin_hash = :pin_hash, pin_failures = :zero, updated_at = :now REMOVE locked_until",
		map[string]types.AttributeValue{
			":pin_hash": &types.AttributeValueMemberS{Value: pinHash},
			":zero":     &types.AttributeValueMemberN{Value: "0"},
		})
	return err
}

// UpdatePreferences sets the language and preferred currency, skipping empty values.
func (s *Store) UpdatePreferences(ctx context.Context, phoneOrEmail, language, currency string) error {
	sets := []string{"updated_at = :now"}
	values := map[string]types.AttributeValue{}
	if language != "" {
		sets = append(sets, "#language = :language")
		values[":language"] = &types.AttributeValueMemberS{Value: language}
	}
	if currency != "" {
		sets = append(sets, "preferred_currency = :currency")
		values[":currency"] = &types.AttributeValueMemberS{Value: currency}
	}
	_, err := s.updateAccount(ctx, phoneOrEmail, "SET "+strings.Join(sets, ", "), values)
	return err
}

// IncrementPINFailures atomically adds one to the failure counter.
func (s *Store) IncrementPINFailures(ctx context.Context, phoneOrEmail string) (*models.Account, error) {
	return s.updateAccount(ctx, phoneOrEmail,
		"SET pin_failures = if_not_exists(pin_failures, :zero) + :one, updated_at = :now",
		map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":one":  &types.AttributeValueMemberN{Value: "1"},
		})
}

// LockAccount starts a lockout window and resets the failure counter.
func (s *Store) LockAccount(ctx context.Context, phoneOrEmail string, until time.Time) error {
	untilAV, err := attributevalue.Marshal(until)
	if err != nil {
		return fmt.Errorf("failed to marshal lock time: %w", err)
	}
	_, err = s.updateAccount(ctx, phoneOrEmail,
		"SET locked_until = :until, pin_failures = :zero, updated_at = :now",
		map[string]types.AttributeValue{
			":until": untilAV,
			":zero":  &types.AttributeValueMemberN{Value: "0"},
		})
	return err
}

// ResetPINFailures clears the failure counter and any lock.
func (s *Store) ResetPINFailures(ctx context.Context, phoneOrEmail string) error {
	_, err := s.updateAccount(ctx, phoneOrEmail,
		"SET pin_failures = :zero, updated_at = :now REMOVE locked_until",
		map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
		})
	return err
}

// updateAccount applies an update expression to an existing account and
// returns the stored record. :now is always bound.
func (s *Store) updateAccount(ctx context.Context, phoneOrEmail, expression string, values map[string]types.AttributeValue) (*models.Account, error) {
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	values[":now"] = nowAV

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.AccountsTableName),
		Key:                       accountKey(phoneOrEmail),
		UpdateExpression:          aws.String(expression),
		ConditionExpression:       aws.String("attribute_exists(phone_or_email)"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}
	if strings.Contains(expression, "#language") {
		input.ExpressionAttributeNames = map[string]string{"#language": "language"}
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionFailed(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update account in DynamoDB: %w", err)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Attributes, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}
