// Package genericparser is the fallback statement parser used when no bank
// was recognised or the bank-specific parser produced nothing. It keeps its
// expectations loose: any line opening with a date and containing an amount
// is a candidate, with direction taken from the sign when present and from
// the wording otherwise.
package genericparser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"ledgerline/bankstmt-csv/internal/currencyutils"
	"ledgerline/bankstmt-csv/internal/dateutils"
	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/textutils"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var leadingDatePattern = regexp.MustCompile(
	`^(\d{1,2}/\d{1,2}(?:/\d{2,4})?|\d{1,2}\s+[A-Za-z]{3,9}(?:\s+\d{2,4})?)\s+`)

var creditKeywords = []string{
	"credit",
	"refund",
	"received",
	"receipt",
	"deposit",
	"salary",
	"interest paid",
	"payment from",
	"transfer from",
	"cashback",
}

var skipFragments = []string{
	"balance brought forward",
	"balance carried forward",
	"opening balance",
	"closing balance",
	"account number",
	"sort code",
	"statement period",
	"page ",
}

// Parse extracts transactions with bank-agnostic heuristics: description
// between the leading date and the first amount, trailing amounts treated as
// balance columns and ignored.
func Parse(text string, year int) ([]models.Transaction, error) {
	lines := textutils.SegmentLines(models.NormalizeMinus(text))
	log.WithField("lines", len(lines)).Debug("Parsing statement lines with generic heuristics")

	var transactions []models.Transaction
	for _, line := range lines {
		if textutils.ContainsAny(line, skipFragments...) {
			continue
		}
		tx, ok := parseLine(line, year)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
	}

	log.WithField("count", len(transactions)).Info("Parsed statement with generic heuristics")
	return transactions, nil
}

func parseLine(line string, year int) (models.Transaction, bool) {
	dateMatch := leadingDatePattern.FindStringSubmatch(line)
	if dateMatch == nil {
		return models.Transaction{}, false
	}
	date, err := dateutils.ResolveDate(dateMatch[1], year)
	if err != nil {
		return models.Transaction{}, false
	}

	rest := line[len(dateMatch[0]):]
	loc := currencyutils.AmountPattern.FindStringIndex(rest)
	if loc == nil {
		return models.Transaction{}, false
	}
	token := rest[loc[0]:loc[1]]
	amount, negative, err := currencyutils.ParseSigned(token)
	if err != nil || amount.IsZero() {
		return models.Transaction{}, false
	}

	description := strings.TrimSpace(rest[:loc[0]])
	if description == "" {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        direction(negative, token, description),
	}, true
}

func direction(negative bool, token, description string) models.TransactionType {
	if negative {
		return models.TypeExpense
	}
	if strings.HasPrefix(strings.TrimSpace(token), "+") {
		return models.TypeIncome
	}
	if textutils.ContainsAny(description, creditKeywords...) {
		return models.TypeIncome
	}
	return models.TypeExpense
}
