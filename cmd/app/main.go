package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/chris/cash-agent-exchange/pkg/bootstrap"
	"github.com/chris/cash-agent-exchange/pkg/config"
	"github.com/chris/cash-agent-exchange/pkg/escrow"
	"github.com/chris/cash-agent-exchange/pkg/handlers"
	"github.com/chris/cash-agent-exchange/pkg/handlers/admin"
	"github.com/chris/cash-agent-exchange/pkg/handlers/agents"
	ledgerhandler "github.com/chris/cash-agent-exchange/pkg/handlers/ledger"
	ussdhandler "github.com/chris/cash-agent-exchange/pkg/handlers/ussd"
	"github.com/chris/cash-agent-exchange/pkg/handlers/wallets"
	wshandler "github.com/chris/cash-agent-exchange/pkg/handlers/websockets"
	"github.com/chris/cash-agent-exchange/pkg/i18n"
	"github.com/chris/cash-agent-exchange/pkg/ledger"
	"github.com/chris/cash-agent-exchange/pkg/metrics"
	"github.com/chris/cash-agent-exchange/pkg/middleware"
	"github.com/chris/cash-agent-exchange/pkg/pin"
	"github.com/chris/cash-agent-exchange/pkg/rates"
	"github.com/chris/cash-agent-exchange/pkg/session"
	"github.com/chris/cash-agent-exchange/pkg/ussd"
	"github.com/chris/cash-agent-exchange/pkg/verification"
	"github.com/chris/cash-agent-exchange/pkg/websockets"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var awsCfg aws.Config
	if cfg.StorageBackend == "dynamodb" || cfg.Queues.SMS != "" || cfg.Queues.Settlement != "" || cfg.WebsocketAPIEndpoint != "" {
		if awsCfg, err = bootstrap.AWS(ctx); err != nil {
			log.Fatal(err)
		}
	}

	store := bootstrap.NewStore(awsCfg, cfg)
	if cfg.AgentsFile != "" {
		n, err := bootstrap.SeedAgents(ctx, store, cfg.AgentsFile)
		if err != nil {
			log.Fatalf("failed to seed agents: %v", err)
		}
		slog.Info("agents seeded", "count", n)
	}

	// Sessions and verification codes live in Redis when configured so that
	// several instances can serve one gateway.
	var (
		sessions session.Store
		codes    verification.Store
		sweepers []func() int
	)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to reach redis at %s: %v", cfg.Redis.Addr, err)
		}
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
		codes = verification.NewRedisStore(client)
	} else {
		slog.Warn("REDIS_ADDR not set, sessions and codes are kept in process")
		memSessions := session.NewMemoryStore(cfg.SessionTTL)
		memCodes := verification.NewMemoryStore()
		sessions, codes = memSessions, memCodes
		sweepers = append(sweepers, memSessions.Sweep, memCodes.Sweep)
	}

	ledgerClient := ledger.NewLocal(store)
	sender := bootstrap.NewSender(awsCfg, cfg)
	settler := bootstrap.NewSettler(awsCfg, cfg, store, ledgerClient)

	hub := websockets.NewHub()
	var feed websockets.PostAPI = hub
	if cfg.WebsocketAPIEndpoint != "" {
		if feed, err = websockets.NewAPIGatewayClient(ctx, cfg.WebsocketAPIEndpoint); err != nil {
			log.Fatal(err)
		}
	}
	publisher := websockets.NewPublisher(store, store, feed)

	stats := metrics.New()
	engine := escrow.NewEngine(store, settler, cfg.EscrowTTL,
		&escrow.Receipts{Sender: sender, Accounts: store},
		publisher,
		stats,
	)

	prices, err := rates.NewStatic(cfg.LocalCurrency, cfg.Rates, cfg.FX)
	if err != nil {
		log.Fatalf("failed to build rate table: %v", err)
	}

	lang := i18n.Parse(cfg.DefaultLanguage)
	machine := ussd.NewMachine(ussd.Config{
		Sessions:        sessions,
		Accounts:        store,
		Agents:          store,
		Verification:    verification.NewService(codes, sender, cfg.VerificationTTL, cfg.VerificationRetries),
		Gate:            pin.NewGate(store, cfg.PinLockThreshold, cfg.PinLockCooldown),
		Ledger:          ledgerClient,
		Escrow:          engine,
		Rates:           prices,
		Sender:          sender,
		Language:        lang,
		Currency:        cfg.LocalCurrency,
		EscrowPrincipal: cfg.EscrowPrincipal,
	})

	agentsHandler := agents.NewAgentsHandler(engine, store, ledgerClient, cfg.EscrowPrincipal)
	if cfg.AgentJWTSecret != "" {
		agentsHandler.Auth = middleware.AgentAuth([]byte(cfg.AgentJWTSecret))
	} else {
		slog.Warn("AGENT_JWT_SECRET not set, agent API is unauthenticated in development")
	}

	h := handlers.Handlers{
		USSD:    ussdhandler.NewHandler(machine, lang),
		Agents:  agentsHandler,
		Admin:   admin.NewAdminHandler(sessions, cfg.IsDevelopment()),
		Ledger:  ledgerhandler.NewLedgerHandler(ledgerClient),
		Wallets: wallets.NewWalletsHandler(store, cfg.IsDevelopment()),
		Metrics: stats,
		Origins: cfg.CORSOrigins,
	}
	if cfg.WebsocketAPIEndpoint == "" {
		h.Feed = wshandler.NewHandler(store, hub)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(logger, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	jobs := newCron(logger)
	if _, err := jobs.AddFunc(cfg.SweepSchedule, func() { sweep(ctx, engine, sweepers) }); err != nil {
		log.Fatalf("invalid SWEEP_SCHEDULE %q: %v", cfg.SweepSchedule, err)
	}
	jobs.Start()

	go func() {
		slog.Info("starting server", "port", cfg.Port, "env", cfg.Env, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	<-jobs.Stop().Done()
}

func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))
}

// sweep expires overdue agreements and evicts dead in-process sessions and
// codes. Deployed stacks also run the expiry Lambda; the two are safe together
// since expiry is a conditional write.
func sweep(ctx context.Context, engine *escrow.Engine, sweepers []func() int) {
	expired, err := engine.SweepOverdue(ctx)
	if err != nil {
		slog.Error("failed to sweep overdue agreements", "error", err)
	} else if len(expired) > 0 {
		slog.Info("overdue agreements expired", "count", len(expired))
	}
	for _, s := range sweepers {
		s()
	}
}
