// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	Env             string
	StorageBackend  string // "dynamodb" or "memory"
	DefaultLanguage string
	LocalCurrency   string
	EscrowPrincipal string

	Tables TableConfig
	Redis  RedisConfig
	Queues QueueConfig

	SessionTTL          time.Duration
	VerificationTTL     time.Duration
	VerificationRetries int
	EscrowTTL           time.Duration
	PinLockThreshold    int64
	PinLockCooldown     time.Duration

	// Rates maps an asset symbol to the local-currency price of one whole unit.
	Rates map[string]string
	// FX maps a currency to its amount per one unit of LocalCurrency.
	FX map[string]string

	WebsocketAPIEndpoint string
	// AgentsFile is an optional JSON array of agents upserted at startup.
	AgentsFile string
	LogLevel   string
	// CORSOrigins lists browser origins allowed to call the HTTP API.
	CORSOrigins []string
	// AgentJWTSecret signs agent API bearer tokens. Required outside development.
	AgentJWTSecret string
	// SweepSchedule is the cron expression for the in-process expiry sweep.
	SweepSchedule string
}

// TableConfig names the DynamoDB tables.
type TableConfig struct {
	Accounts    string
	Agents      string
	Agreements  string
	Wallets     string
	Ledger      string
	Connections string
}

// RedisConfig controls the session and verification code store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// QueueConfig names the SQS queues.
type QueueConfig struct {
	SMS        string
	Settlement string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	env := &envReader{}
	cfg := &Config{
		Port:            getEnv("HTTP_PORT", "8080"),
		Env:             getEnv("APP_ENV", "production"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "dynamodb"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		LocalCurrency:   strings.ToUpper(getEnv("LOCAL_CURRENCY", "UGX")),
		EscrowPrincipal: getEnv("ESCROW_PRINCIPAL", "escrow"),
		Tables: TableConfig{
			Accounts:    getEnv("DYNAMODB_ACCOUNTS_TABLE_NAME", ""),
			Agents:      getEnv("DYNAMODB_AGENTS_TABLE_NAME", ""),
			Agreements:  getEnv("DYNAMODB_AGREEMENTS_TABLE_NAME", ""),
			Wallets:     getEnv("DYNAMODB_WALLETS_TABLE_NAME", ""),
			Ledger:      getEnv("DYNAMODB_LEDGER_TABLE_NAME", ""),
			Connections: getEnv("DYNAMODB_CONNECTIONS_TABLE_NAME", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       env.Int("REDIS_DB", 0),
		},
		Queues: QueueConfig{
			SMS:        getEnv("SQS_SMS_QUEUE_URL", ""),
			Settlement: getEnv("SQS_SETTLEMENT_QUEUE_URL", ""),
		},
		SessionTTL:          env.Duration("SESSION_TTL", 180*time.Second),
		VerificationTTL:     env.Duration("VERIFICATION_TTL", 10*time.Minute),
		VerificationRetries: env.Int("VERIFICATION_MAX_ATTEMPTS", 3),
		EscrowTTL:           env.Duration("ESCROW_TTL", 24*time.Hour),
		PinLockThreshold:    int64(env.Int("PIN_LOCKOUT_THRESHOLD", 6)),
		PinLockCooldown:     env.Duration("PIN_LOCKOUT_COOLDOWN", 30*time.Minute),
		Rates: map[string]string{
			"BTC":  getEnv("RATE_BTC", "150000000"),
			"USDC": getEnv("RATE_USDC", "3700"),
		},
		FX:                   getEnvMap("FX_RATES"),
		WebsocketAPIEndpoint: getEnv("WEBSOCKET_API_ENDPOINT", ""),
		AgentsFile:           getEnv("AGENTS_FILE", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CORSOrigins:          getEnvList("CORS_ALLOWED_ORIGINS"),
		SweepSchedule:        getEnv("SWEEP_SCHEDULE", "@every 1m"),
		AgentJWTSecret:       getEnv("AGENT_JWT_SECRET", ""),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}
	switch c.StorageBackend {
	case "memory":
	case "dynamodb":
		if c.Tables.Accounts == "" || c.Tables.Agents == "" || c.Tables.Agreements == "" ||
			c.Tables.Wallets == "" || c.Tables.Ledger == "" {
			return fmt.Errorf("one or more DynamoDB table name environment variables are not set")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be dynamodb or memory, got %q", c.StorageBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.VerificationTTL <= 0 {
		return fmt.Errorf("VERIFICATION_TTL must be > 0")
	}
	if c.VerificationRetries <= 0 {
		return fmt.Errorf("VERIFICATION_MAX_ATTEMPTS must be > 0")
	}
	if c.EscrowTTL <= 0 {
		return fmt.Errorf("ESCROW_TTL must be > 0")
	}
	if c.PinLockThreshold <= 0 {
		return fmt.Errorf("PIN_LOCKOUT_THRESHOLD must be > 0")
	}
	if c.SweepSchedule == "" {
		return fmt.Errorf("SWEEP_SCHEDULE cannot be empty")
	}
	if c.EscrowPrincipal == "" {
		return fmt.Errorf("ESCROW_PRINCIPAL cannot be empty")
	}
	if c.AgentJWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("AGENT_JWT_SECRET is required outside development")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envReader parses typed variables and collects every malformed value, so a
// bad deploy reports all of them at once.
type envReader struct {
	errs []error
}

func (e *envReader) Int(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be an integer, got %q", key, value))
		return fallback
	}
	return n
}

func (e *envReader) Duration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be a duration such as 3m, got %q", key, value))
		return fallback
	}
	return d
}

// getEnvMap parses "K1=V1,K2=V2". Malformed pairs are skipped.
func getEnvMap(key string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(os.Getenv(key), ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" || v == "" {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
