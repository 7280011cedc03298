package barclaysparser

import (
	"regexp"

	"github.com/shopspring/decimal"

	"ledgerline/bankstmt-csv/internal/currencyutils"
)

// balancePair is an adjacent amount/balance couple found in the collapsed
// statement blob, with the byte range it occupies.
type balancePair struct {
	amount  decimal.Decimal
	balance decimal.Decimal
	start   int
	end     int
}

// pairPattern matches two adjacent amounts separated only by whitespace.
// Barclays prints the movement column directly before the balance column, so
// in collapsed text every transaction surfaces as such a couple.
var pairPattern = regexp.MustCompile(
	`(£?\d{1,3}(?:,\d{3})*\.\d{2}|£?\d+\.\d{2})\s+(£?\d{1,3}(?:,\d{3})*\.\d{2}|£?\d+\.\d{2})`)

// scanBalancePairs returns every amount/balance couple in the blob in
// document order. Couples that fail to parse are dropped.
func scanBalancePairs(blob string) []balancePair {
	matches := pairPattern.FindAllStringSubmatchIndex(blob, -1)
	pairs := make([]balancePair, 0, len(matches))
	for _, m := range matches {
		amount, err1 := currencyutils.ParseAbsolute(blob[m[2]:m[3]])
		balance, err2 := currencyutils.ParseAbsolute(blob[m[4]:m[5]])
		if err1 != nil || err2 != nil {
			continue
		}
		pairs = append(pairs, balancePair{
			amount:  amount,
			balance: balance,
			start:   m[0],
			end:     m[1],
		})
	}
	return pairs
}

var openingBalancePattern = regexp.MustCompile(
	`(?i)(?:start balance|opening balance|balance brought forward)\D{0,20}?(£?\d{1,3}(?:,\d{3})*\.\d{2}|£?\d+\.\d{2})`)

// findOpeningBalance locates the statement's opening balance, returning ok
// false when the blob does not declare one.
func findOpeningBalance(blob string) (decimal.Decimal, bool) {
	m := openingBalancePattern.FindStringSubmatch(blob)
	if m == nil {
		return decimal.Zero, false
	}
	balance, err := currencyutils.ParseAbsolute(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return balance, true
}
