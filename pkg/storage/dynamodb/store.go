package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

const (
	initiatorIndex     = "initiator_user_id-created_at-index"
	agentIndex         = "assigned_agent_id-created_at-index"
	overdueIndex       = "status-expires_at-index"
	ledgerAccountIndex = "account_id-timestamp-index"
	connectionsIndex   = "agent_id-index"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names the DynamoDB tables backing each collection.
type Tables struct {
	Accounts    string
	Agents      string
	Agreements  string
	Wallets     string
	Ledger      string
	Connections string
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	AccountsTableName    string
	AgentsTableName      string
	AgreementsTableName  string
	WalletsTableName     string
	LedgerTableName      string
	ConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:               client,
		AccountsTableName:    tables.Accounts,
		AgentsTableName:      tables.Agents,
		AgreementsTableName:  tables.Agreements,
		WalletsTableName:     tables.Wallets,
		LedgerTableName:      tables.Ledger,
		ConnectionsTableName: tables.Connections,
	}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
	_ DynamoDBAPI              = (*dynamodb.Client)(nil)
)

func isConditionFailed(err error) bool {
	var condCheckFailed *types.ConditionalCheckFailedException
	return errors.As(err, &condCheckFailed)
}

// cancelledByCondition reports whether the transaction item at index was
// rejected by its condition expression.
func cancelledByCondition(err error, index int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) || len(tce.CancellationReasons) <= index {
		return false
	}
	code := tce.CancellationReasons[index].Code
	return code != nil && *code == "ConditionalCheckFailed"
}
