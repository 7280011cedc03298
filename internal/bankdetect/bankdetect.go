// Package bankdetect identifies the issuing bank and the statement year from
// raw statement text.
package bankdetect

import (
	"regexp"
	"strconv"
	"time"

	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/textutils"
)

// headerWindow bounds the year search to the statement header. Years deeper
// in the document are more likely to be reference codes than the period.
const headerWindow = 1500

var (
	monthYearPattern = regexp.MustCompile(
		`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(202\d)`)
	slashYearPattern  = regexp.MustCompile(`\d{1,2}/\d{1,2}/(202\d)`)
	periodYearPattern = regexp.MustCompile(`(?i)(?:Statement|Period|From)[^\n]{0,60}?(202\d)`)
	bareYearPattern   = regexp.MustCompile(`\b(202\d)\b`)
)

// DetectYear infers the statement year from the first part of the text.
// Patterns are tried in order of semantic specificity; the first match wins
// so a bare year in an account number cannot shadow a dated period phrase.
// The caller's clock provides the fallback year.
func DetectYear(text string, now time.Time) int {
	header := text
	if len(header) > headerWindow {
		header = header[:headerWindow]
	}

	for _, pattern := range []*regexp.Regexp{
		monthYearPattern,
		slashYearPattern,
		periodYearPattern,
		bareYearPattern,
	} {
		if m := pattern.FindStringSubmatch(header); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				return year
			}
		}
	}

	return now.Year()
}

// bankRule matches a bank when every keyword is present.
type bankRule struct {
	bank     string
	keywords []string
}

// bankRules is evaluated in order; the first satisfied rule wins. Order is
// load-bearing: the more specific keyword sets come before looser ones.
var bankRules = []bankRule{
	{models.BankSantander, []string{"santander", "money out"}},
	{models.BankChase, []string{"chase", "account"}},
	{models.BankMonzo, []string{"monzo"}},
	{models.BankLloyds, []string{"lloyds", "statement"}},
	{models.BankLloyds, []string{"halifax", "statement"}},
}

// barclaysKeywords is a separate, more permissive OR-rule covering the
// personal and business letterhead variants.
var barclaysKeywords = []string{"barclays bank", "barclays.co.uk", "barclays business"}

// DetectBank returns the bank label for the statement text, or "" when no
// rule matches (which routes parsing to the generic fallback).
func DetectBank(text string) string {
	for _, rule := range bankRules {
		if textutils.ContainsAll(text, rule.keywords...) {
			return rule.bank
		}
	}
	if textutils.ContainsAny(text, barclaysKeywords...) {
		return models.BankBarclays
	}
	return ""
}
