package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/google/uuid"
)

func walletKey(principal string, asset models.Asset) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: principal},
		"asset":   &types.AttributeValueMemberS{Value: string(asset)},
	}
}

// GetWallet retrieves a principal's wallet for one asset.
func (s *Store) GetWallet(ctx context.Context, principal string, asset models.Asset) (*models.Wallet, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.WalletsTableName),
		Key:            walletKey(principal, asset),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return &wallet, nil
}

// EnsureWallet returns the wallet, creating it or assigning its deposit
// address when missing. Concurrent callers converge on the first write.
func (s *Store) EnsureWallet(ctx context.Context, principal string, asset models.Asset) (*models.Wallet, error) {
	wallet, err := s.GetWallet(ctx, principal, asset)
	switch {
	case err == nil:
		if wallet.DepositAddress != "" || !asset.IsCrypto() {
			return wallet, nil
		}
		return s.assignDepositAddress(ctx, principal, asset)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	wallet = &models.Wallet{
		UserId:         principal,
		Asset:          asset,
		DepositAddress: depositAddress(asset),
		CreatedAt:      time.Now().UTC(),
	}
	item, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return s.GetWallet(ctx, principal, asset)
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}
	return wallet, nil
}

// assignDepositAddress fills in the address of a wallet that was created by an incoming credit.
func (s *Store) assignDepositAddress(ctx context.Context, principal string, asset models.Asset) (*models.Wallet, error) {
	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Key:                 walletKey(principal, asset),
		UpdateExpression:    aws.String("SET deposit_address = :address"),
		ConditionExpression: aws.String("attribute_not_exists(deposit_address)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":address": &types.AttributeValueMemberS{Value: depositAddress(asset)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return s.GetWallet(ctx, principal, asset)
		}
		return nil, fmt.Errorf("failed to assign deposit address: %w", err)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Attributes, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return &wallet, nil
}

// Transfer debits the sender and credits the receiver in one transaction,
// writing a ledger entry for each side.
func (s *Store) Transfer(ctx context.Context, txID, from, to string, asset models.Asset, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}

	now := time.Now().UTC()
	debit, err := s.debitItem(from, asset, amount)
	if err != nil {
		return err
	}
	credit, err := s.creditItem(to, asset, amount, now)
	if err != nil {
		return err
	}
	debitEntry, err := s.entryItem(models.LedgerEntry{TransactionID: txID, AccountID: from, Asset: asset, Debit: amount, Description: memo, Timestamp: now})
	if err != nil {
		return err
	}
	creditEntry, err := s.entryItem(models.LedgerEntry{TransactionID: txID, AccountID: to, Asset: asset, Credit: amount, Description: memo, Timestamp: now})
	if err != nil {
		return err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      []types.TransactWriteItem{debit, credit, debitEntry, creditEntry},
		ClientRequestToken: aws.String(txID),
	})
	if err != nil {
		// The sender's update is the first item in the transaction.
		if cancelledByCondition(err, 0) {
			return storage.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to execute transfer: %w", err)
	}
	return nil
}

// Debit removes funds from a principal.
func (s *Store) Debit(ctx context.Context, txID, principal string, asset models.Asset, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive")
	}

	debit, err := s.debitItem(principal, asset, amount)
	if err != nil {
		return err
	}
	entry, err := s.entryItem(models.LedgerEntry{TransactionID: txID, AccountID: principal, Asset: asset, Debit: amount, Description: memo, Timestamp: time.Now().UTC()})
	if err != nil {
		return err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      []types.TransactWriteItem{debit, entry},
		ClientRequestToken: aws.String(txID),
	})
	if err != nil {
		if cancelledByCondition(err, 0) {
			return storage.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to execute debit: %w", err)
	}
	return nil
}

// Credit adds funds to a principal, creating the wallet if needed.
func (s *Store) Credit(ctx context.Context, txID, principal string, asset models.Asset, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}

	now := time.Now().UTC()
	credit, err := s.creditItem(principal, asset, amount, now)
	if err != nil {
		return err
	}
	entry, err := s.entryItem(models.LedgerEntry{TransactionID: txID, AccountID: principal, Asset: asset, Credit: amount, Description: memo, Timestamp: now})
	if err != nil {
		return err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      []types.TransactWriteItem{credit, entry},
		ClientRequestToken: aws.String(txID),
	})
	if err != nil {
		return fmt.Errorf("failed to execute credit: %w", err)
	}
	return nil
}

// ListLedgerEntries queries a principal's entries, newest first.
func (s *Store) ListLedgerEntries(ctx context.Context, principal string, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(ledgerAccountIndex),
		KeyConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": &types.AttributeValueMemberS{Value: principal},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}

	entries := []models.LedgerEntry{}
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}
	return entries, nil
}

func (s *Store) debitItem(principal string, asset models.Asset, amount int64) (types.TransactWriteItem, error) {
	amountAV, err := attributevalue.Marshal(amount)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal amount: %w", err)
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.WalletsTableName),
			Key:                 walletKey(principal, asset),
			UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
			ConditionExpression: aws.String("balance >= :amount"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount": amountAV,
				":inc":    &types.AttributeValueMemberN{Value: "1"},
			},
		},
	}, nil
}

func (s *Store) creditItem(principal string, asset models.Asset, amount int64, now time.Time) (types.TransactWriteItem, error) {
	amountAV, err := attributevalue.Marshal(amount)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.WalletsTableName),
			Key:       walletKey(principal, asset),
			UpdateExpression: aws.String("SET balance = if_not_exists(balance, :zero) + :amount, " +
				"version = if_not_exists(version, :zero) + :inc, created_at = if_not_exists(created_at, :now)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount": amountAV,
				":zero":   &types.AttributeValueMemberN{Value: "0"},
				":inc":    &types.AttributeValueMemberN{Value: "1"},
				":now":    nowAV,
			},
		},
	}, nil
}

func (s *Store) entryItem(entry models.LedgerEntry) (types.TransactWriteItem, error) {
	entry.EntryID = uuid.NewString()
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.LedgerTableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		},
	}, nil
}

// depositAddress returns a placeholder receive address for the asset.
func depositAddress(asset models.Asset) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	switch asset {
	case models.BTC:
		return "tb1q" + id[:32]
	case models.USDC:
		return "0x" + id + id[:8]
	default:
		return ""
	}
}
