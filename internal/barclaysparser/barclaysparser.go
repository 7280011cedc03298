// Package barclaysparser parses Barclays statement text into transactions.
// Barclays PDFs extract as one interleaved blob in which description, money
// and balance columns lose their separation, so the parser works in three
// stages: scan the blob for adjacent amount/balance couples, reconcile each
// couple against the running balance, and clean the description text between
// couples. Only a couple whose balance step matches its amount becomes a
// transaction, which keeps page totals and footer numbers out of the ledger.
package barclaysparser

import (
	"regexp"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

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

// reconcileTolerance absorbs the rounding noise PDF extraction introduces
// into amounts.
var reconcileTolerance = decimal.NewFromFloat(0.05)

// maxLookback bounds the description window so a couple deep into the page
// cannot swallow a whole paragraph of preceding text.
const maxLookback = 200

const minDescriptionLength = 3

var datePattern = regexp.MustCompile(
	`\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*(?:\s+\d{2,4})?|\d{1,2}/\d{1,2}(?:/\d{2,4})?`)

// Parse extracts Barclays transactions from statement text.
//
// The running balance starts at the statement's declared opening balance.
// When no opening balance is printed, the first couple only anchors the
// running balance: its direction cannot be established, so it is not
// emitted. The running balance advances only when a transaction is emitted,
// which lets a rejected boilerplate couple sit between two real rows without
// breaking the chain.
func Parse(text string, year int) ([]models.Transaction, error) {
	blob := textutils.CollapseWhitespace(models.NormalizeMinus(text))
	pairs := scanBalancePairs(blob)
	log.WithField("pairs", len(pairs)).Debug("Scanned Barclays balance pairs")

	running, seeded := findOpeningBalance(blob)

	var transactions []models.Transaction
	prevEnd := 0
	lastDate := ""
	for _, pair := range pairs {
		regionStart := pair.start - maxLookback
		if regionStart < prevEnd {
			regionStart = prevEnd
		}
		region := blob[regionStart:pair.start]
		prevEnd = pair.end

		if !seeded {
			running = pair.balance
			seeded = true
			continue
		}

		step := pair.balance.Sub(running)
		if step.Abs().Sub(pair.amount).Abs().GreaterThan(reconcileTolerance) {
			continue
		}
		if pair.amount.IsZero() {
			continue
		}

		description := cleanDescription(region)
		if len(description) < minDescriptionLength {
			continue
		}

		date, ok := resolveRegionDate(region, year, lastDate)
		if !ok {
			continue
		}
		lastDate = date

		txType := models.TypeIncome
		if step.IsNegative() {
			txType = models.TypeExpense
		}
		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      pair.amount,
			Type:        txType,
		})
		running = pair.balance
	}

	log.WithField("count", len(transactions)).Info("Parsed Barclays statement")
	return transactions, nil
}

// resolveRegionDate takes the last date token before the couple, falling
// back to the previous transaction's date when the region has none.
func resolveRegionDate(region string, year int, lastDate string) (string, bool) {
	tokens := datePattern.FindAllString(region, -1)
	for i := len(tokens) - 1; i >= 0; i-- {
		if date, err := dateutils.ResolveDate(tokens[i], year); err == nil {
			return date, true
		}
	}
	if lastDate != "" {
		return lastDate, true
	}
	return "", false
}
