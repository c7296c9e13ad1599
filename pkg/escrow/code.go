package escrow

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/chris/cash-agent-exchange/pkg/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

var codePattern = regexp.MustCompile(`^[A-Z]+-[A-Z0-9]{6}$`)

// GenerateCode returns a fresh exchange code of the form <ASSET>-XXXXXX.
func GenerateCode(asset models.Asset) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	suffix := make([]byte, codeLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return string(asset) + "-" + string(suffix), nil
}

// NormalizeCode upper-cases and trims a code typed by a person.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code has the exchange code shape.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}
