package rates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount is returned for amounts that are not positive or carry more
// precision than the asset allows.
var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.English)

// ParseAmount reads a user-typed amount of asset (a crypto asset or a local
// currency) and returns it in base units.
func ParseAmount(s string, asset models.Asset) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	units := d.Shift(asset.Decimals())
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, asset.Decimals())
	}
	return units.IntPart(), nil
}

// FromBaseUnits converts base units to whole units of asset.
func FromBaseUnits(units int64, asset models.Asset) decimal.Decimal {
	return decimal.New(units, -asset.Decimals())
}

// FormatAsset renders base units of a crypto asset, e.g. "0.005 BTC".
func FormatAsset(units int64, asset models.Asset) string {
	return FromBaseUnits(units, asset).String() + " " + string(asset)
}

// FormatLocal renders a whole-unit local amount with grouping, e.g. "UGX 750,000".
func FormatLocal(amount int64, currency string) string {
	return printer.Sprintf("%s %d", currency, amount)
}
