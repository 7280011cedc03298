// Package common holds the file-handling helpers the commands share.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ledgerline/bankstmt-csv/internal/config"
	"ledgerline/bankstmt-csv/internal/pdftext"
	"ledgerline/bankstmt-csv/internal/pipeline"
	"ledgerline/bankstmt-csv/internal/validation"
)

// LoadStatementText reads an input statement. PDFs go through text
// extraction; anything else is treated as already-extracted text with a
// page count of zero.
func LoadStatementText(inputPath string) (string, int, error) {
	if err := validation.IsValidInputPath(inputPath); err != nil {
		return "", 0, err
	}

	if strings.EqualFold(filepath.Ext(inputPath), ".pdf") {
		return pdftext.Extract(inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", 0, fmt.Errorf("error reading input file %s: %w", inputPath, err)
	}
	return string(data), 0, nil
}

// PipelineOptions builds pipeline options from the resolved configuration.
// A nil config keeps every default.
func PipelineOptions(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{}
	if cfg == nil {
		return opts
	}
	opts.MaxPDFPages = cfg.Parse.MaxPDFPages
	opts.MinTextLength = cfg.Parse.MinTextLength
	opts.ConfidenceThreshold = cfg.Parse.ConfidenceThreshold
	return opts
}

// DefaultOutputPath derives an output CSV path from the input path when the
// user did not name one.
func DefaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".csv"
}
