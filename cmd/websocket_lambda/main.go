package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/cash-agent-exchange/pkg/bootstrap"
	"github.com/chris/cash-agent-exchange/pkg/config"
	wshandler "github.com/chris/cash-agent-exchange/pkg/handlers/websockets"
	"github.com/joho/godotenv"
)

// route dispatches API Gateway WebSocket routes to the connection handler.
func route(h *wshandler.Handler) func(context.Context, events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
		switch req.RequestContext.RouteKey {
		case "$connect":
			return h.HandleConnect(ctx, req)
		case "$disconnect":
			return h.HandleDisconnect(ctx, req)
		case "$default":
			return h.HandleDefault(ctx, req)
		}
		log.Printf("ERROR: unexpected route %q", req.RequestContext.RouteKey)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}
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
	lambda.Start(route(wshandler.NewHandler(store, nil)))
}
