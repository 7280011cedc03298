// Package parsererror defines the typed errors raised by the statement
// parsing pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// Kind identifies the class of pipeline failure. Every fatal pipeline outcome
// maps to exactly one kind; the UI renders a distinct message per kind
// without re-deriving the diagnosis from raw text.
type Kind string

const (
	KindPDFTooLarge         Kind = "PDF_TOO_LARGE"
	KindPDFEmpty            Kind = "PDF_EMPTY"
	KindNoTransactionsFound Kind = "NO_TRANSACTIONS_FOUND"
	KindUnsupportedBank     Kind = "UNSUPPORTED_BANK"
	KindBankNotRecognized   Kind = "BANK_NOT_RECOGNIZED"
	KindGenericParserFailed Kind = "GENERIC_PARSER_FAILED"
)

// Details carries kind-specific diagnostics for display. Only the fields
// relevant to the kind are populated.
type Details struct {
	PageCount  int     `json:"pageCount,omitempty"`
	MaxPages   int     `json:"maxPages,omitempty"`
	TextLength int     `json:"textLength,omitempty"`
	TextSample string  `json:"textSample,omitempty"`
	BankName   string  `json:"bankName,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// StatementError is the fatal, user-facing pipeline error. The pipeline never
// returns a partial result: it is either a validated transaction list above
// the confidence gate, or a StatementError.
type StatementError struct {
	Kind    Kind
	Details Details
}

func (e *StatementError) Error() string {
	switch e.Kind {
	case KindPDFTooLarge:
		return fmt.Sprintf("%s: document has %d pages (maximum %d)", e.Kind, e.Details.PageCount, e.Details.MaxPages)
	case KindPDFEmpty:
		return fmt.Sprintf("%s: extracted text is %d characters, document appears to be scanned or empty", e.Kind, e.Details.TextLength)
	case KindNoTransactionsFound:
		return fmt.Sprintf("%s: recognized %s statement but found no valid transactions", e.Kind, e.Details.BankName)
	case KindUnsupportedBank:
		return fmt.Sprintf("%s: statement names unsupported institution %q", e.Kind, e.Details.BankName)
	case KindBankNotRecognized:
		return fmt.Sprintf("%s: could not identify the issuing bank", e.Kind)
	case KindGenericParserFailed:
		return fmt.Sprintf("%s: parse confidence %.2f is below the acceptance threshold", e.Kind, e.Details.Confidence)
	}
	return string(e.Kind)
}

// IsKind reports whether err is a StatementError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *StatementError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// ParseError represents a recoverable failure inside a single bank parser.
// The pipeline catches these and falls through to the generic parser.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s=%q: %v", e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
