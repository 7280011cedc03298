// Package chaseparser parses Chase UK statement text into transactions.
// Chase rows carry a full "DD Mon YYYY" date, a description, an explicit
// transaction type keyword and a signed amount, usually followed by the
// running balance.
package chaseparser

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

// rowPattern captures date, description, type keyword, signed amount and an
// optional trailing balance.
var rowPattern = regexp.MustCompile(
	`(?i)^(\d{1,2}\s+[A-Za-z]{3,9}(?:\s+\d{4})?)\s+(.+?)\s+(Purchase|Payment|Transfer|Refund|Fee|Interest)\s+([-+]?£?[\d,]+\.\d{2})(?:\s+[-+]?£?[\d,]+\.\d{2})?$`)

// skipFragments mark page furniture that segmentation can leave attached to
// otherwise row-shaped lines.
var skipFragments = []string{
	"balance brought forward",
	"balance carried forward",
	"statement period",
	"account number",
	"sort code",
	"interest rate",
	"chase.co.uk",
}

// Parse extracts Chase transactions from statement text. Dates missing a
// year take the supplied statement year.
func Parse(text string, year int) ([]models.Transaction, error) {
	lines := textutils.SegmentLines(models.NormalizeMinus(text))
	log.WithField("lines", len(lines)).Debug("Parsing Chase statement lines")

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

	log.WithField("count", len(transactions)).Info("Parsed Chase statement")
	return transactions, nil
}

func parseLine(line string, year int) (models.Transaction, bool) {
	m := rowPattern.FindStringSubmatch(line)
	if m == nil {
		return models.Transaction{}, false
	}

	date, err := dateutils.ResolveDate(m[1], year)
	if err != nil {
		log.WithError(err).WithField("line", line).Debug("Skipping row with bad date")
		return models.Transaction{}, false
	}

	amount, negative, err := currencyutils.ParseSigned(m[4])
	if err != nil {
		log.WithError(err).WithField("line", line).Debug("Skipping row with bad amount")
		return models.Transaction{}, false
	}

	description := strings.TrimSpace(m[2])
	if description == "" {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        direction(negative, m[4], m[3]),
	}, true
}

// direction resolves income/expense. An explicit sign on the amount wins;
// unsigned rows fall back to the type keyword, where only refunds and
// interest read as money in.
func direction(negative bool, token, keyword string) models.TransactionType {
	if negative {
		return models.TypeExpense
	}
	if strings.HasPrefix(strings.TrimSpace(token), "+") {
		return models.TypeIncome
	}
	switch strings.ToLower(keyword) {
	case "refund", "interest":
		return models.TypeIncome
	default:
		return models.TypeExpense
	}
}
