package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/cash-agent-exchange/pkg/bootstrap"
	"github.com/chris/cash-agent-exchange/pkg/config"
	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/websockets"
	"github.com/joho/godotenv"
)

// Sweeper expires agreements past their deadline.
type Sweeper interface {
	SweepOverdue(ctx context.Context) ([]models.Agreement, error)
}

type handler struct {
	sweeper Sweeper
}

// HandleRequest is triggered by an EventBridge Schedule. Refunds for funded
// agreements are requested by the engine as each one expires.
func (h *handler) HandleRequest(ctx context.Context) error {
	log.Println("Starting sweep of overdue agreements...")

	expired, err := h.sweeper.SweepOverdue(ctx)
	for _, a := range expired {
		log.Printf("Expired %s (funded: %t)", a.ExchangeCode, a.FundingRef != "")
	}
	if err != nil {
		log.Printf("ERROR: sweep stopped after %d agreements: %v", len(expired), err)
		return err
	}

	log.Printf("Sweep finished, %d agreements expired.", len(expired))
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

	h := &handler{sweeper: escrow.NewEngine(store, settler, cfg.EscrowTTL, observers...)}
	lambda.Start(h.HandleRequest)
}
