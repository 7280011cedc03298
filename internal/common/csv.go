// Package common provides the CSV read/write layer shared by the CLI
// commands and the HTTP endpoint.
package common

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"ledgerline/bankstmt-csv/internal/models"
)

var log = logrus.New()

// Delimiter is the CSV output delimiter, configurable via config.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ReadTransactionsCSV reads a previously exported transactions CSV back into
// memory, for the analytics commands that operate on saved ledgers. Comment
// lines produced by the insights appendix are skipped.
func ReadTransactionsCSV(filePath string) ([]models.Transaction, error) {
	log.WithField("file", filePath).Info("Reading transactions CSV")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var transactions []models.Transaction
	err = gocsv.UnmarshalCSV(commentSkippingReader(file), &transactions)
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(transactions)).Info("Read transactions CSV")
	return transactions, nil
}

func commentSkippingReader(file *os.File) *csv.Reader {
	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = Delimiter
	reader.Comment = '#'
	return reader
}

// WriteTransactionsCSV writes transactions to a CSV file, with an optional
// appendix of insight lines written as # comments after the data so
// spreadsheet users see them and the reader skips them.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile string, insights []string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	if dir := filepath.Dir(csvFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	for i := range transactions {
		transactions[i].Amount = models.ParseAmount(transactions[i].Amount.StringFixed(2))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	for _, insight := range insights {
		line := "# " + strings.ReplaceAll(insight, "\n", " ")
		if _, err := fmt.Fprintln(file, line); err != nil {
			return fmt.Errorf("error writing insights appendix: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Wrote transactions to CSV file")
	return nil
}
