// Package currencyutils provides amount parsing helpers for statement text.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerline/bankstmt-csv/internal/models"
)

// AmountPattern matches a statement amount: optional sign, optional pound
// sign, thousands groups and exactly two decimal places.
var AmountPattern = regexp.MustCompile(`[-+]?£?\d{1,3}(?:,\d{3})*\.\d{2}|[-+]?£?\d+\.\d{2}`)

// ParseSigned parses an amount token into its absolute magnitude and a
// negative flag. Dash variants are normalized before the sign is read.
func ParseSigned(token string) (decimal.Decimal, bool, error) {
	token = models.NormalizeMinus(strings.TrimSpace(token))

	negative := strings.HasPrefix(token, "-")
	token = strings.TrimPrefix(token, "+")
	token = strings.TrimPrefix(token, "-")
	token = strings.TrimPrefix(token, "£")
	token = strings.ReplaceAll(token, ",", "")

	dec, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, false, err
	}
	// A pound sign after the minus ("£-1.00") also reads as negative.
	if dec.IsNegative() {
		dec = dec.Abs()
		negative = true
	}
	return dec, negative, nil
}

// ParseAbsolute parses an amount token and discards the sign.
func ParseAbsolute(token string) (decimal.Decimal, error) {
	dec, _, err := ParseSigned(token)
	return dec, err
}

// FindAmounts returns every amount token in the line, in order.
func FindAmounts(line string) []string {
	return AmountPattern.FindAllString(models.NormalizeMinus(line), -1)
}
