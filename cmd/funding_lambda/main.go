package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/cash-agent-exchange/pkg/bootstrap"
	"github.com/chris/cash-agent-exchange/pkg/config"
	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/scheduler"
	"github.com/chris/cash-agent-exchange/pkg/websockets"
	"github.com/joho/godotenv"
)

// FundingConfirmation is published by the ledger once a transfer into escrow settles.
type FundingConfirmation struct {
	ExchangeCode string `json:"exchange_code"`
	Reference    string `json:"reference"`
}

// Exchange is the part of the escrow engine the consumer drives.
type Exchange interface {
	Fund(ctx context.Context, code, reference string) (*models.Agreement, error)
	Get(ctx context.Context, code string) (*models.Agreement, error)
}

type handler struct {
	exchange Exchange
	settler  scheduler.Scheduler
}

// HandleRequest marks agreements funded. Confirmations that arrive after the
// agreement expired or was cancelled are refunded to the funder.
func (h *handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		var c FundingConfirmation
		if err := json.Unmarshal([]byte(message.Body), &c); err != nil || c.ExchangeCode == "" || strings.TrimSpace(c.Reference) == "" {
			log.Printf("ERROR: dropping unreadable funding message %s: %v", message.MessageId, err)
			continue
		}

		_, err := h.exchange.Fund(ctx, c.ExchangeCode, c.Reference)
		switch {
		case err == nil:
			log.Printf("Agreement %s funded by %s", c.ExchangeCode, c.Reference)
		case errors.Is(err, escrow.ErrExpired), errors.Is(err, escrow.ErrCancelled):
			if err := h.refundLate(ctx, c); err != nil {
				return err
			}
		case errors.Is(err, escrow.ErrNotFound),
			errors.Is(err, escrow.ErrAlreadyFunded),
			errors.Is(err, escrow.ErrAlreadyCompleted):
			log.Printf("ERROR: funding %s for %s cannot be applied: %v", c.Reference, c.ExchangeCode, err)
		default:
			log.Printf("ERROR: failed to fund %s: %v", c.ExchangeCode, err)
			return err
		}
	}
	return nil
}

func (h *handler) refundLate(ctx context.Context, c FundingConfirmation) error {
	a, err := h.exchange.Get(ctx, c.ExchangeCode)
	if err != nil {
		log.Printf("ERROR: failed to load %s for late funding refund: %v", c.ExchangeCode, err)
		return err
	}
	if err := h.settler.ScheduleSettlement(ctx, scheduler.RefundFor(a)); err != nil {
		log.Printf("ERROR: failed to refund late funding %s: %v", c.Reference, err)
		return err
	}
	log.Printf("Late funding %s for %s (%s) refunded", c.Reference, c.ExchangeCode, a.Status)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	awsCfg, err := bootstrap.AWS(ctx)
	if err != nil {
		log.Fatal(err)
	}

	store := bootstrap.NewStore(awsCfg, cfg)
	settler := bootstrap.NewSettler(awsCfg, cfg, store, ledger.NewLocal(store))

	var observers []escrow.Observer
	if cfg.WebsocketAPIEndpoint != "" {
		client, err := websockets.NewAPIGatewayClient(ctx, cfg.WebsocketAPIEndpoint)
		if err != nil {
			log.Fatal(err)
		}
		observers = append(observers, websockets.NewPublisher(store, store, client))
	}

	h := &handler{
		exchange: escrow.NewEngine(store, settler, cfg.EscrowTTL, observers...),
		settler:  settler,
	}
	lambda.Start(h.HandleRequest)
}
