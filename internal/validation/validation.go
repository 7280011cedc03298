// Package validation cleans parsed transaction candidates and scores how
// plausible the resulting set looks. The score gates whether a parse run is
// trusted at all.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerline/bankstmt-csv/internal/dateutils"
	"ledgerline/bankstmt-csv/internal/models"
)

// maxPlausibleAmount is the ceiling above which a single personal-account
// movement is treated as an extraction artifact rather than money.
var maxPlausibleAmount = decimal.NewFromInt(50000)

// fullCountThreshold is the transaction count at which the volume component
// of the confidence score saturates.
const fullCountThreshold = 8

// Confidence component weights. They sum to 1 so the score stays in [0, 1].
const (
	countWeight  = 0.30
	amountWeight = 0.45
	dateWeight   = 0.25
)

// Clean drops malformed candidates and exact duplicates, preserving input
// order. A candidate survives when its date is a real calendar date, its
// amount is positive and its description is non-empty.
func Clean(transactions []models.Transaction) []models.Transaction {
	seen := make(map[string]bool, len(transactions))
	cleaned := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !dateutils.IsValidISO(tx.Date) {
			continue
		}
		if !tx.Amount.IsPositive() {
			continue
		}
		tx.Description = strings.TrimSpace(tx.Description)
		if tx.Description == "" {
			continue
		}
		key := fmt.Sprintf("%s|%s|%s|%s", tx.Date, tx.Description, tx.Amount.StringFixed(2), tx.Type)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, tx)
	}
	return cleaned
}

// Score rates a cleaned transaction set in [0, 1]. Three components feed
// it: how many transactions were found (saturating at fullCountThreshold),
// the fraction with amounts in a plausible personal-account range, and the
// fraction dated within a year of the statement year. Adding a well-formed
// transaction never lowers the score, and equal inputs always score
// equally.
func Score(transactions []models.Transaction, year int) float64 {
	if len(transactions) == 0 {
		return 0
	}

	countComponent := float64(len(transactions)) / fullCountThreshold
	if countComponent > 1 {
		countComponent = 1
	}

	plausibleAmounts := 0
	plausibleDates := 0
	for _, tx := range transactions {
		if tx.Amount.IsPositive() && tx.Amount.LessThanOrEqual(maxPlausibleAmount) {
			plausibleAmounts++
		}
		if dateWithinYear(tx.Date, year) {
			plausibleDates++
		}
	}
	n := float64(len(transactions))
	amountComponent := float64(plausibleAmounts) / n
	dateComponent := float64(plausibleDates) / n

	return countWeight*countComponent + amountWeight*amountComponent + dateWeight*dateComponent
}

func dateWithinYear(date string, year int) bool {
	if !dateutils.IsValidISO(date) {
		return false
	}
	var y int
	if _, err := fmt.Sscanf(date[:4], "%d", &y); err != nil {
		return false
	}
	return y >= year-1 && y <= year+1
}

// IsValidInputPath checks that a statement file exists and is a regular
// file before parsing begins.
func IsValidInputPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory, not a file: %s", path)
	}
	return nil
}
