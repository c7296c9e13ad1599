package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

func agreementKey(code string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"exchange_code": &types.AttributeValueMemberS{Value: code},
	}
}

func statusAV(status models.AgreementStatus) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: string(status)}
}

// unixAV matches the unixtime encoding of expires_at.
func unixAV(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(t.Unix(), 10)}
}

// GetAgreement retrieves an agreement by exchange code with a strongly consistent read.
func (s *Store) GetAgreement(ctx context.Context, code string) (*models.Agreement, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.AgreementsTableName),
		Key:            agreementKey(code),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var agreement models.Agreement
	if err := attributevalue.UnmarshalMap(result.Item, &agreement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agreement: %w", err)
	}
	return &agreement, nil
}

// ListAgreementsByInitiator queries the initiator index, newest first.
func (s *Store) ListAgreementsByInitiator(ctx context.Context, userID string) ([]models.Agreement, error) {
	return s.queryAgreements(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.AgreementsTableName),
		IndexName:              aws.String(initiatorIndex),
		KeyConditionExpression: aws.String("initiator_user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
}

// ListAgreementsByAgent queries the agent index, newest first.
func (s *Store) ListAgreementsByAgent(ctx context.Context, agentID string) ([]models.Agreement, error) {
	return s.queryAgreements(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.AgreementsTableName),
		IndexName:              aws.String(agentIndex),
		KeyConditionExpression: aws.String("assigned_agent_id = :agent_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":agent_id": &types.AttributeValueMemberS{Value: agentID},
		},
		ScanIndexForward: aws.Bool(false),
	})
}

// ListOverdueAgreements queries the status index for agreements whose expires_at has passed.
func (s *Store) ListOverdueAgreements(ctx context.Context, status models.AgreementStatus, now time.Time) ([]models.Agreement, error) {
	return s.queryAgreements(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.AgreementsTableName),
		IndexName:              aws.String(overdueIndex),
		KeyConditionExpression: aws.String("#status = :status AND expires_at < :now"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": statusAV(status),
			":now":    unixAV(now),
		},
	})
}

func (s *Store) queryAgreements(ctx context.Context, input *dynamodb.QueryInput) ([]models.Agreement, error) {
	agreements := []models.Agreement{}
	for {
		page, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query agreements: %w", err)
		}
		var batch []models.Agreement
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agreements: %w", err)
		}
		agreements = append(agreements, batch...)
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
	return agreements, nil
}

// CreateAgreement stores a new agreement, refusing to reuse an exchange code.
func (s *Store) CreateAgreement(ctx context.Context, agreement *models.Agreement) error {
	item, err := attributevalue.MarshalMap(agreement)
	if err != nil {
		return fmt.Errorf("failed to marshal agreement: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.AgreementsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(exchange_code)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create agreement in DynamoDB: %w", err)
	}
	return nil
}

// FundAgreement moves a pending, unexpired agreement to funded.
func (s *Store) FundAgreement(ctx context.Context, code, reference string, now time.Time) (*models.Agreement, error) {
	return s.transition(ctx, code, now, transition{
		update:    "SET #status = :funded, funding_ref = :ref, updated_at = :updated_at",
		condition: "#status = :pending AND expires_at >= :now",
		values: map[string]types.AttributeValue{
			":funded":  statusAV(models.FUNDED),
			":pending": statusAV(models.PENDING),
			":ref":     &types.AttributeValueMemberS{Value: reference},
		},
	})
}

// ClaimAgreement binds an unassigned, open and unexpired agreement to an agent.
func (s *Store) ClaimAgreement(ctx context.Context, code, agentID string, now time.Time) (*models.Agreement, error) {
	return s.transition(ctx, code, now, transition{
		update:    "SET assigned_agent_id = :agent_id, updated_at = :updated_at",
		condition: "attribute_not_exists(assigned_agent_id) AND #status IN (:pending, :funded) AND expires_at >= :now",
		values: map[string]types.AttributeValue{
			":agent_id": &types.AttributeValueMemberS{Value: agentID},
			":pending":  statusAV(models.PENDING),
			":funded":   statusAV(models.FUNDED),
		},
	})
}

// CompleteAgreement moves a funded, unexpired agreement to completed. An
// unassigned agreement is bound to the completing agent in the same write.
func (s *Store) CompleteAgreement(ctx context.Context, code, agentID string, now time.Time) (*models.Agreement, error) {
	return s.transition(ctx, code, now, transition{
		update:    "SET #status = :completed, assigned_agent_id = :agent_id, completed_at = :updated_at, updated_at = :updated_at",
		condition: "#status = :funded AND expires_at >= :now AND (attribute_not_exists(assigned_agent_id) OR assigned_agent_id = :agent_id)",
		values: map[string]types.AttributeValue{
			":completed": statusAV(models.COMPLETED),
			":funded":    statusAV(models.FUNDED),
			":agent_id":  &types.AttributeValueMemberS{Value: agentID},
		},
	})
}

// ExpireAgreement moves an open agreement past its deadline to expired.
func (s *Store) ExpireAgreement(ctx context.Context, code string, now time.Time) (*models.Agreement, error) {
	return s.transition(ctx, code, now, transition{
		update:    "SET #status = :expired, updated_at = :updated_at",
		condition: "#status IN (:pending, :funded) AND expires_at < :now",
		values: map[string]types.AttributeValue{
			":expired": statusAV(models.EXPIRED),
			":pending": statusAV(models.PENDING),
			":funded":  statusAV(models.FUNDED),
		},
	})
}

// CancelAgreement moves a pending agreement to cancelled on behalf of its initiator.
func (s *Store) CancelAgreement(ctx context.Context, code, userID string, now time.Time) (*models.Agreement, error) {
	return s.transition(ctx, code, now, transition{
		update:    "SET #status = :cancelled, updated_at = :updated_at",
		condition: "#status = :pending AND initiator_user_id = :user_id",
		values: map[string]types.AttributeValue{
			":cancelled": statusAV(models.CANCELLED),
			":pending":   statusAV(models.PENDING),
			":user_id":   &types.AttributeValueMemberS{Value: userID},
		},
	})
}

// RecordSettlement stores a release or refund reference. A second call for the
// same kind fails the condition.
func (s *Store) RecordSettlement(ctx context.Context, code string, kind storage.SettlementKind, reference string) error {
	var attr string
	switch kind {
	case storage.SettlementRelease:
		attr = "release_ref"
	case storage.SettlementRefund:
		attr = "refund_ref"
	default:
		return fmt.Errorf("unknown settlement kind %q", kind)
	}

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.AgreementsTableName),
		Key:                 agreementKey(code),
		UpdateExpression:    aws.String(fmt.Sprintf("SET %s = :ref", attr)),
		ConditionExpression: aws.String(fmt.Sprintf("attribute_exists(exchange_code) AND attribute_not_exists(%s)", attr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return storage.ErrConditionFailed
		}
		return fmt.Errorf("failed to record settlement: %w", err)
	}
	return nil
}

type transition struct {
	update    string
	condition string
	values    map[string]types.AttributeValue
}

// transition performs a single conditional UpdateItem. :now (unix seconds)
// and :updated_at are bound for every transition.
func (s *Store) transition(ctx context.Context, code string, now time.Time, t transition) (*models.Agreement, error) {
	updatedAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	t.values[":now"] = unixAV(now)
	t.values[":updated_at"] = updatedAV

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.AgreementsTableName),
		Key:                 agreementKey(code),
		UpdateExpression:    aws.String(t.update),
		ConditionExpression: aws.String("attribute_exists(exchange_code) AND " + t.condition),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: t.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, storage.ErrConditionFailed
		}
		return nil, fmt.Errorf("failed to update agreement %s: %w", code, err)
	}

	var agreement models.Agreement
	if err := attributevalue.UnmarshalMap(result.Attributes, &agreement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agreement: %w", err)
	}
	return &agreement, nil
}
