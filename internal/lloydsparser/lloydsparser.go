// Package lloydsparser parses Lloyds and Halifax statement text into
// transactions. Both brands share a layout: "DD Mon YY" dates, a payment
// type code (DEB, DD, SO, FPI, FPO, BGC, TFR, CHG, PAY) and unsigned amount
// plus balance columns. Direction comes from the type code, with credit
// wording in the description as fallback.
package lloydsparser

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
	`^(\d{1,2}\s+[A-Za-z]{3,9}(?:\s+\d{2,4})?|\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s+`)

var typeCodePattern = regexp.MustCompile(`\b(DEB|DD|SO|FPI|FPO|BGC|TFR|CHG|PAY|CPT|CSH)\b`)

// creditCodes are the payment type codes that mean money in.
var creditCodes = map[string]bool{
	"FPI": true,
	"BGC": true,
	"PAY": true,
}

var creditKeywords = []string{
	"payment received",
	"transfer from",
	"refund",
	"interest",
	"salary",
	"deposit",
}

var skipFragments = []string{
	"balance brought forward",
	"balance carried forward",
	"money out money in",
	"sort code",
	"account number",
	"lloyds bank plc",
	"halifax is a division",
}

// Parse extracts Lloyds/Halifax transactions from statement text, using the
// supplied statement year for the short "DD Mon" dates.
func Parse(text string, year int) ([]models.Transaction, error) {
	lines := textutils.SegmentLines(models.NormalizeMinus(text))
	log.WithField("lines", len(lines)).Debug("Parsing Lloyds/Halifax statement lines")

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

	log.WithField("count", len(transactions)).Info("Parsed Lloyds/Halifax statement")
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

	head := strings.TrimSpace(rest[:loc[0]])
	if head == "" {
		return models.Transaction{}, false
	}
	code := ""
	if m := typeCodePattern.FindStringSubmatch(head); m != nil {
		code = m[1]
	}
	description := strings.TrimSpace(typeCodePattern.ReplaceAllString(head, ""))
	if description == "" {
		description = head
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        direction(code, description),
	}, true
}

func direction(code, description string) models.TransactionType {
	if code != "" {
		if creditCodes[code] {
			return models.TypeIncome
		}
		return models.TypeExpense
	}
	if textutils.ContainsAny(description, creditKeywords...) {
		return models.TypeIncome
	}
	return models.TypeExpense
}
