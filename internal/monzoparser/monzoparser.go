// Package monzoparser parses Monzo statement text into transactions.
// Monzo rows open with a date and carry an explicitly signed amount: money
// out prints with a minus, money in with a plus. An unsigned trailing amount
// is the running balance.
package monzoparser

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
	`^(\d{1,2}/\d{1,2}(?:/\d{2,4})?|\d{1,2}\s+[A-Za-z]{3,9}(?:\s+\d{4})?)\s+`)

// signedAmountPattern matches only amounts that state their direction.
var signedAmountPattern = regexp.MustCompile(`[-+]£?\d{1,3}(?:,\d{3})*\.\d{2}|[-+]£?\d+\.\d{2}`)

var skipFragments = []string{
	"monzo bank limited",
	"statement period",
	"account number",
	"sort code",
	"opening balance",
	"closing balance",
}

// Parse extracts Monzo transactions from statement text. Lines without a
// signed amount are ignored rather than guessed at.
func Parse(text string, year int) ([]models.Transaction, error) {
	lines := textutils.SegmentLines(models.NormalizeMinus(text))
	log.WithField("lines", len(lines)).Debug("Parsing Monzo statement lines")

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

	log.WithField("count", len(transactions)).Info("Parsed Monzo statement")
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

	loc := signedAmountPattern.FindStringIndex(line)
	if loc == nil {
		return models.Transaction{}, false
	}
	token := line[loc[0]:loc[1]]
	amount, negative, err := currencyutils.ParseSigned(token)
	if err != nil || amount.IsZero() {
		return models.Transaction{}, false
	}

	description := strings.TrimSpace(line[len(dateMatch[0]):loc[0]])
	if description == "" {
		return models.Transaction{}, false
	}

	txType := models.TypeIncome
	if negative {
		txType = models.TypeExpense
	}
	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
	}, true
}
