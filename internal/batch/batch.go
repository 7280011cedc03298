// Package batch aggregates several parsed statements into one chronological
// ledger. One statement file failing never aborts the batch; failures are
// logged and skipped.
package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

// DateRange is the calendar span a batch of statements covers.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range in the format "YYYY-MM-DD_YYYY-MM-DD", suitable
// for embedding in an output filename. Empty for the zero range.
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// extend widens the range to include the given day.
func (dr DateRange) extend(day time.Time) DateRange {
	if day.IsZero() {
		return dr
	}
	if dr.Start.IsZero() || day.Before(dr.Start) {
		dr.Start = day
	}
	if dr.End.IsZero() || day.After(dr.End) {
		dr.End = day
	}
	return dr
}

// ParseFunc parses one statement file into transactions.
type ParseFunc func(path string) ([]models.Transaction, error)

// Aggregator merges transactions from multiple statement files.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator. A nil logger takes the default.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// Aggregate parses every file and returns the combined transactions in
// chronological order together with the date range they cover. Files that
// fail to parse are skipped with a logged error.
func (a *Aggregator) Aggregate(files []string, parse ParseFunc) ([]models.Transaction, DateRange) {
	var all []models.Transaction
	var covered DateRange
	parsed := 0

	for _, file := range files {
		transactions, err := parse(file)
		if err != nil {
			a.logger.WithError(err).Error("Skipping statement that failed to parse",
				logging.Field{Key: "file", Value: filepath.Base(file)})
			continue
		}
		parsed++
		a.logger.Debug("Parsed statement",
			logging.Field{Key: "file", Value: filepath.Base(file)},
			logging.Field{Key: "transactions", Value: len(transactions)})

		for _, tx := range transactions {
			covered = covered.extend(tx.Time())
		}
		all = append(all, transactions...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date < all[j].Date
	})
	a.logDuplicates(all)

	a.logger.Info("Aggregated statements",
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "parsed", Value: parsed},
		logging.Field{Key: "transactions", Value: len(all)},
		logging.Field{Key: "range", Value: covered.String()})
	return all, covered
}

// logDuplicates flags transactions that appear more than once across files,
// typically from overlapping statement periods. They stay in the output; the
// log is the signal to review them.
func (a *Aggregator) logDuplicates(transactions []models.Transaction) {
	seen := make(map[string]int)
	for _, tx := range transactions {
		key := tx.Date + "|" + tx.Description + "|" + tx.Amount.String() + "|" + string(tx.Type)
		seen[key]++
		if seen[key] == 2 {
			a.logger.Warn("Possible duplicate across statements",
				logging.Field{Key: "date", Value: tx.Date},
				logging.Field{Key: "description", Value: tx.Description},
				logging.Field{Key: "amount", Value: tx.Amount.String()})
		}
	}
}
