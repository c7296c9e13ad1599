// Package rates converts between crypto assets and local currencies.
package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedPair is returned when no price is known for an asset/currency pair.
var ErrUnsupportedPair = errors.New("unsupported asset/currency pair")

// Provider quotes the local-currency price of one whole unit of an asset.
type Provider interface {
	Price(ctx context.Context, asset models.Asset, currency string) (decimal.Decimal, error)
}

// Static serves prices from a fixed table. Prices are held in Base; other
// currencies are derived through FX, the amount of that currency per one unit of Base.
type Static struct {
	Base   string
	Prices map[models.Asset]decimal.Decimal
	FX     map[string]decimal.Decimal
}

var _ Provider = (*Static)(nil)

// NewStatic parses string prices and FX rates, e.g. {"BTC": "150000000"} and {"KES": "0.035"}.
func NewStatic(base string, prices, fx map[string]string) (*Static, error) {
	s := &Static{
		Base:   strings.ToUpper(base),
		Prices: make(map[models.Asset]decimal.Decimal, len(prices)),
		FX:     make(map[string]decimal.Decimal, len(fx)),
	}
	for sym, raw := range prices {
		asset, ok := models.ParseAsset(sym)
		if !ok {
			return nil, fmt.Errorf("unknown asset %q in price table", sym)
		}
		p, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || !p.IsPositive() {
			return nil, fmt.Errorf("invalid price %q for %s", raw, sym)
		}
		s.Prices[asset] = p
	}
	for cur, raw := range fx {
		r, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || !r.IsPositive() {
			return nil, fmt.Errorf("invalid fx rate %q for %s", raw, cur)
		}
		s.FX[strings.ToUpper(cur)] = r
	}
	return s, nil
}

func (s *Static) Price(_ context.Context, asset models.Asset, currency string) (decimal.Decimal, error) {
	p, ok := s.Prices[asset]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedPair, asset)
	}
	currency = strings.ToUpper(currency)
	if currency == s.Base {
		return p, nil
	}
	fx, ok := s.FX[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrUnsupportedPair, asset, currency)
	}
	return p.Mul(fx), nil
}

// LocalToAsset converts a whole-unit local amount to asset base units, rounding down.
func LocalToAsset(ctx context.Context, p Provider, local int64, currency string, asset models.Asset) (int64, error) {
	price, err := p.Price(ctx, asset, currency)
	if err != nil {
		return 0, err
	}
	whole := decimal.NewFromInt(local).Div(price)
	return whole.Shift(asset.Decimals()).Floor().IntPart(), nil
}

// AssetToLocal converts asset base units to a whole-unit local amount, rounding to nearest.
func AssetToLocal(ctx context.Context, p Provider, units int64, asset models.Asset, currency string) (int64, error) {
	price, err := p.Price(ctx, asset, currency)
	if err != nil {
		return 0, err
	}
	return FromBaseUnits(units, asset).Mul(price).Round(0).IntPart(), nil
}
