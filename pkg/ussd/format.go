package ussd

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/rates"
)

// Currencies lists the selectable local currencies in menu order.
var Currencies = []string{"UGX", "KES", "TZS", "RWF", "NGN", "GHS"}

var dialCodes = []struct {
	prefix   string
	currency string
}{
	{"+256", "UGX"},
	{"+254", "KES"},
	{"+255", "TZS"},
	{"+250", "RWF"},
	{"+234", "NGN"},
	{"+233", "GHS"},
}

// CurrencyFor guesses the local currency from the phone number's country code.
func CurrencyFor(phone, fallback string) string {
	for _, d := range dialCodes {
		if strings.HasPrefix(phone, d.prefix) {
			return d.currency
		}
	}
	return fallback
}

var (
	e164Pattern  = regexp.MustCompile(`^\+[1-9][0-9]{8,14}$`)
	localPattern = regexp.MustCompile(`^0[0-9]{9}$`)
	btcPattern   = regexp.MustCompile(`^(bc1|tb1|[13])[a-zA-HJ-NP-Z0-9]{25,62}$`)
	evmPattern   = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// NormalizePhone turns a typed number into E.164. A number in national
// format borrows the caller's country code.
func NormalizePhone(input, caller string) (string, bool) {
	n := strings.NewReplacer(" ", "", "-", "").Replace(input)
	if e164Pattern.MatchString(n) {
		return n, true
	}
	if localPattern.MatchString(n) {
		for _, d := range dialCodes {
			if strings.HasPrefix(caller, d.prefix) {
				return d.prefix + n[1:], true
			}
		}
	}
	return "", false
}

// ValidAddress does a shape check of an on-chain address for asset.
func ValidAddress(asset models.Asset, address string) bool {
	switch asset {
	case models.BTC:
		return btcPattern.MatchString(address)
	case models.USDC:
		return evmPattern.MatchString(address)
	default:
		return false
	}
}

func assetName(asset models.Asset) string {
	if asset == models.BTC {
		return "Bitcoin"
	}
	return string(asset)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("02 Jan 15:04 MST")
}

// formatAmount renders base units of either a crypto asset or a local currency.
func formatAmount(units int64, asset models.Asset) string {
	if asset.IsCrypto() {
		return rates.FormatAsset(units, asset)
	}
	return rates.FormatLocal(units, string(asset))
}

func formatEntry(e models.LedgerEntry) string {
	sign, amount := "+", e.Credit
	if e.Debit > 0 {
		sign, amount = "-", e.Debit
	}
	return fmt.Sprintf("%s%s %s", sign, formatAmount(amount, e.Asset), e.Timestamp.UTC().Format("02 Jan"))
}
