package rates

import (
	"context"
	"testing"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		asset models.Asset
		want  int64
		ok    bool
	}{
		{"Bitcoin Fraction", "0.005", models.BTC, 500000, true},
		{"USDC Whole", "25", models.USDC, 25000000, true},
		{"Local With Grouping", "750,000", "UGX", 750000, true},
		{"Too Precise", "0.000000001", models.BTC, 0, false},
		{"Local Fraction", "10.5", "UGX", 0, false},
		{"Zero", "0", "UGX", 0, false},
		{"Negative", "-5", models.USDC, 0, false},
		{"Garbage", "abc", models.BTC, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in, tt.asset)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.005 BTC", FormatAsset(500000, models.BTC))
	assert.Equal(t, "UGX 750,000", FormatLocal(750000, "UGX"))
}

func TestStatic(t *testing.T) {
	ctx := context.Background()
	p, err := NewStatic("UGX", map[string]string{"BTC": "150000000", "USDC": "3700"}, map[string]string{"KES": "0.035"})
	require.NoError(t, err)

	t.Run("Local To Asset", func(t *testing.T) {
		units, err := LocalToAsset(ctx, p, 750000, "UGX", models.BTC)
		require.NoError(t, err)
		assert.Equal(t, int64(500000), units)
	})

	t.Run("Asset To Local", func(t *testing.T) {
		local, err := AssetToLocal(ctx, p, 500000, models.BTC, "UGX")
		require.NoError(t, err)
		assert.Equal(t, int64(750000), local)
	})

	t.Run("Derived Currency", func(t *testing.T) {
		local, err := AssetToLocal(ctx, p, 1000000, models.USDC, "KES")
		require.NoError(t, err)
		assert.Equal(t, int64(130), local)
	})

	t.Run("Unsupported Currency", func(t *testing.T) {
		_, err := p.Price(ctx, models.BTC, "NGN")
		assert.ErrorIs(t, err, ErrUnsupportedPair)
	})

	t.Run("Rejects Bad Table", func(t *testing.T) {
		_, err := NewStatic("UGX", map[string]string{"DOGE": "1"}, nil)
		assert.Error(t, err)
	})
}
