package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/cash-agent-exchange/pkg/bootstrap"
	"github.com/chris/cash-agent-exchange/pkg/config"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/scheduler"
	"github.com/joho/godotenv"
)

// handler pays out queued releases and refunds. The settler skips requests
// whose ledger reference is already recorded, so redelivered messages are harmless.
type handler struct {
	settler scheduler.Scheduler
}

// HandleRequest processes SQS messages and settles the agreements they name.
func (h *handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var req scheduler.SettlementRequest
		if err := json.Unmarshal([]byte(message.Body), &req); err != nil {
			// A malformed body never becomes valid; retrying would block the FIFO group.
			log.Printf("ERROR: dropping unreadable settlement message %s: %v", message.MessageId, err)
			continue
		}

		log.Printf("Attempting %s of %s", req.Kind, req.ExchangeCode)

		if err := h.settler.ScheduleSettlement(ctx, req); err != nil {
			log.Printf("ERROR: failed to settle %s: %v", req.ExchangeCode, err)
			return err
		}

		log.Printf("Successfully settled %s", req.ExchangeCode)
	}

	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	awsCfg, err := bootstrap.AWS(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	store := bootstrap.NewStore(awsCfg, cfg)
	h := &handler{
		settler: &scheduler.Direct{
			Ledger:          ledger.NewLocal(store),
			Agreements:      store,
			EscrowPrincipal: cfg.EscrowPrincipal,
		},
	}

	lambda.Start(h.HandleRequest)
}
