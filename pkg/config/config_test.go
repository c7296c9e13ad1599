package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Memory Backend Defaults", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("APP_ENV", "development")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 180*time.Second, cfg.SessionTTL)
		assert.Equal(t, 10*time.Minute, cfg.VerificationTTL)
		assert.Equal(t, 3, cfg.VerificationRetries)
		assert.Equal(t, "UGX", cfg.LocalCurrency)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("DynamoDB Backend Requires Tables", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "dynamodb")
		t.Setenv("DYNAMODB_ACCOUNTS_TABLE_NAME", "accounts")

		_, err := Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DynamoDB table name")
	})

	t.Run("Production Settings", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("APP_ENV", "production")
		t.Setenv("AGENT_JWT_SECRET", "s3cret")
		t.Setenv("ESCROW_TTL", "2h")
		t.Setenv("FX_RATES", "kes=0.035, bad, TZS=0.7")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 180*time.Second, cfg.SessionTTL)
		assert.Equal(t, 2*time.Hour, cfg.EscrowTTL)
		assert.False(t, cfg.IsDevelopment())
		assert.Equal(t, map[string]string{"KES": "0.035", "TZS": "0.7"}, cfg.FX)
	})

	t.Run("Malformed Values Fail", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("APP_ENV", "development")
		t.Setenv("SESSION_TTL", "3 minutes")
		t.Setenv("VERIFICATION_MAX_ATTEMPTS", "three")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_TTL")
		assert.Contains(t, err.Error(), "VERIFICATION_MAX_ATTEMPTS")
	})

	t.Run("Production Requires Agent Secret", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("APP_ENV", "production")
		t.Setenv("AGENT_JWT_SECRET", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "AGENT_JWT_SECRET")
	})

	t.Run("CORS Origins", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("APP_ENV", "development")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://agents.example.com, ,http://localhost:3000")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, []string{"https://agents.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
		assert.Equal(t, "@every 1m", cfg.SweepSchedule)
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "postgres")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, (&Config{LogLevel: in}).SlogLevel(), in)
	}
}
