// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType says which way the money moved. It is derived from the
// statement's credit/debit semantics, never from the sign of Amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction represents one parsed money movement from a bank statement.
// Amount is always the absolute magnitude; reconstruct the printed sign as
// -Amount for expenses and +Amount for income.
type Transaction struct {
	ID          string          `csv:"ID" json:"id"`
	Date        string          `csv:"Date" json:"date"` // ISO YYYY-MM-DD
	Description string          `csv:"Description" json:"description"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Type        TransactionType `csv:"Type" json:"type"`
	Category    string          `csv:"Category" json:"category"`
	ParserUsed  string          `csv:"ParserUsed" json:"parserUsed"`
	Confidence  float64         `csv:"Confidence" json:"confidence"`
}

// IsExpense returns true if the transaction is outgoing money.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome returns true if the transaction is incoming money.
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// SignedAmount reconstructs the statement's printed sign convention.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// AmountAsFloat returns the Amount as a float64 for the analytics layers.
// Parsing and reconciliation stay on decimal; only rates and averages use this.
func (t *Transaction) AmountAsFloat() float64 {
	f, _ := t.Amount.Float64()
	return f
}

// Time parses the ISO date. The zero time is returned for malformed dates,
// which the validator removes before any analytics run.
func (t *Transaction) Time() time.Time {
	parsed, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// Month returns the YYYY-MM prefix of the transaction date.
func (t *Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// ParseAmount parses a statement amount string into a decimal, stripping
// currency symbols, thousand separators and whitespace. Dash variants
// (en dash, em dash, minus sign) are normalized to ASCII minus first.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := NormalizeMinus(strings.TrimSpace(amountStr))
	amount = strings.ReplaceAll(amount, "£", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "€", "")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, " ", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// NormalizeMinus rewrites en dash, em dash and the Unicode minus sign to the
// ASCII minus so numeric parsing sees a single negative-sign form.
func NormalizeMinus(s string) string {
	s = strings.ReplaceAll(s, "–", "-") // en dash
	s = strings.ReplaceAll(s, "—", "-") // em dash
	s = strings.ReplaceAll(s, "−", "-") // minus sign
	return s
}
