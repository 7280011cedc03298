// Package parser defines the contract shared by all bank statement parsers
// and the factory that maps a detected bank name to its parser.
package parser

import (
	"ledgerline/bankstmt-csv/internal/models"
)

// StatementParser extracts transaction candidates from raw statement text.
// Implementations receive the full extracted text and the statement year to
// substitute into dates that omit one. They return candidates in document
// order; cleanup, scoring and categorisation happen downstream.
type StatementParser interface {
	// Name returns the short identifier recorded in Transaction.ParserUsed.
	Name() string

	// Parse converts statement text into transaction candidates.
	// It returns an empty slice (not an error) when the text contains no
	// recognisable transaction lines.
	Parse(text string, year int) ([]models.Transaction, error)
}

// Func adapts a plain function to the StatementParser interface.
type Func struct {
	ParserName string
	ParseFunc  func(text string, year int) ([]models.Transaction, error)
}

// Name returns the parser identifier.
func (f Func) Name() string { return f.ParserName }

// Parse calls the wrapped function.
func (f Func) Parse(text string, year int) ([]models.Transaction, error) {
	return f.ParseFunc(text, year)
}
