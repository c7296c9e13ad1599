package escrow

import (
	"fmt"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/shopspring/decimal"
)

// Commission is an agent's earnings on one completed agreement. It is a
// reporting value; no ledger movement is made for it.
type Commission struct {
	LocalAmount int64
	AssetAmount int64
}

// ParseRate parses an agent commission rate such as "0.015".
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid commission rate %q: %w", s, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("commission rate %s out of range [0, 1)", rate)
	}
	return rate, nil
}

// CommissionFor applies rate to both amounts of the agreement, rounding half
// away from zero to the smallest unit.
func CommissionFor(a *models.Agreement, rate decimal.Decimal) Commission {
	return Commission{
		LocalAmount: rate.Mul(decimal.NewFromInt(a.LocalCurrencyAmount)).Round(0).IntPart(),
		AssetAmount: rate.Mul(decimal.NewFromInt(a.AssetAmount)).Round(0).IntPart(),
	}
}

// Add sums two commissions.
func (c Commission) Add(o Commission) Commission {
	return Commission{LocalAmount: c.LocalAmount + o.LocalAmount, AssetAmount: c.AssetAmount + o.AssetAmount}
}
