// Package pdftext extracts plain text from PDF statements. Extraction tries
// row-structured reads first for layout fidelity and falls back to the
// plain-text stream when a page lacks row data.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"ledgerline/bankstmt-csv/internal/parsererror"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Extract reads a PDF file and returns its text and page count. The PDF
// library panics on some malformed files, so the whole read is recovered
// into an error.
func Extract(filePath string) (text string, pageCount int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.ParseError{
				Parser: "pdf",
				Field:  "text extraction",
				Value:  filePath,
				Err:    fmt.Errorf("library panic: %v", r),
			}
		}
	}()

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, &parsererror.ParseError{
			Parser: "pdf",
			Field:  "file open",
			Value:  filePath,
			Err:    err,
		}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close PDF file")
		}
	}()

	pageCount = reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText := extractRows(page)
		if pageText == "" {
			pageText = extractPlain(page)
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	log.WithFields(logrus.Fields{
		"file":  filePath,
		"pages": pageCount,
		"chars": sb.Len(),
	}).Debug("Extracted PDF text")
	return sb.String(), pageCount, nil
}

// extractRows reads a page row by row, preserving the line structure the
// statement parsers segment on.
func extractRows(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func extractPlain(page pdf.Page) string {
	pageText, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(pageText)
}
