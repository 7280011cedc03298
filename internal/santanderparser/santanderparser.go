// Package santanderparser parses Santander statement text into transactions.
// Santander prints unsigned money-out / money-in columns, so the column
// information is lost in extracted text. Direction is recovered from the
// description: credit wording reads as money in, everything else as money
// out.
package santanderparser

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

// creditKeywords mark descriptions whose movement is money in. This is a
// closed set; "transfer" deliberately matches both directions of transfer
// wording, so transfers read as money in regardless of phrasing.
var creditKeywords = []string{
	"receipt",
	"refund",
	"interest paid",
	"cashback",
	"transfer",
	"payment from",
	"deposit",
}

var skipFragments = []string{
	"money out",
	"money in",
	"balance brought forward",
	"balance carried forward",
	"account number",
	"sort code",
	"santander uk plc",
}

// Parse extracts Santander transactions from statement text. The first
// amount on a row is the movement; a second amount, when present, is the
// running balance and is discarded.
func Parse(text string, year int) ([]models.Transaction, error) {
	lines := textutils.SegmentLines(models.NormalizeMinus(text))
	log.WithField("lines", len(lines)).Debug("Parsing Santander statement lines")

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

	log.WithField("count", len(transactions)).Info("Parsed Santander statement")
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
	amount, err := currencyutils.ParseAbsolute(rest[loc[0]:loc[1]])
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
		Type:        direction(description),
	}, true
}

func direction(description string) models.TransactionType {
	if textutils.ContainsAny(description, creditKeywords...) {
		return models.TypeIncome
	}
	return models.TypeExpense
}
