// Package bootstrap builds the collaborators shared by the server and the
// Lambda functions from a loaded configuration.
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/cash-agent-exchange/pkg/config"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/notify"
	"github.com/chris/cash-agent-exchange/pkg/scheduler"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	dydbstore "github.com/chris/cash-agent-exchange/pkg/storage/dynamodb"
	"github.com/chris/cash-agent-exchange/pkg/storage/memory"
)

// Store is everything the service persists, including dashboard connections.
type Store interface {
	storage.Storage
	storage.WebSocketManager
}

// AWS loads the default SDK configuration.
func AWS(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

// NewStore returns the configured storage backend. awsCfg is ignored for the memory backend.
func NewStore(awsCfg aws.Config, cfg *config.Config) Store {
	if cfg.StorageBackend == "memory" {
		return memory.New()
	}
	return dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Accounts:    cfg.Tables.Accounts,
		Agents:      cfg.Tables.Agents,
		Agreements:  cfg.Tables.Agreements,
		Wallets:     cfg.Tables.Wallets,
		Ledger:      cfg.Tables.Ledger,
		Connections: cfg.Tables.Connections,
	})
}

// NewSender queues texts for the SMS gateway when a queue is configured and logs them otherwise.
func NewSender(awsCfg aws.Config, cfg *config.Config) notify.Sender {
	if cfg.Queues.SMS == "" {
		slog.Warn("SQS_SMS_QUEUE_URL not set, text messages are only logged")
		return notify.LogSender{}
	}
	return notify.NewSQSSender(sqs.NewFromConfig(awsCfg), cfg.Queues.SMS)
}

// NewSettler returns the SQS settlement queue when configured. Otherwise
// settlements run inline against the ledger.
func NewSettler(awsCfg aws.Config, cfg *config.Config, agreements storage.AgreementStore, l ledger.Client) scheduler.Scheduler {
	if cfg.Queues.Settlement == "" {
		return &scheduler.Direct{Ledger: l, Agreements: agreements, EscrowPrincipal: cfg.EscrowPrincipal}
	}
	return scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.Queues.Settlement)
}

// SeedAgents loads a JSON array of agents from path and upserts each one.
func SeedAgents(ctx context.Context, agents storage.AgentStore, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read agents file: %w", err)
	}

	var list []models.Agent
	if err := json.Unmarshal(raw, &list); err != nil {
		return 0, fmt.Errorf("failed to parse agents file: %w", err)
	}

	for i := range list {
		if list[i].AgentId == "" {
			return i, fmt.Errorf("agent at index %d has no agent_id", i)
		}
		if err := agents.PutAgent(ctx, &list[i]); err != nil {
			return i, fmt.Errorf("failed to store agent %s: %w", list[i].AgentId, err)
		}
	}
	return len(list), nil
}
