package bankdetect

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledgerline/bankstmt-csv/internal/models"
)

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"chase", "Chase statement for account 12345678", models.BankChase},
		{"monzo", "Monzo current account January summary", models.BankMonzo},
		{"santander", "SANTANDER UK PLC   Money in   Money out", models.BankSantander},
		{"barclays letterhead", "Barclays Bank UK PLC statement of account", models.BankBarclays},
		{"barclays web address", "Manage your account at barclays.co.uk", models.BankBarclays},
		{"lloyds", "Lloyds Bank plc — your statement", models.BankLloyds},
		{"halifax routes to lloyds", "Halifax monthly statement", models.BankLloyds},
		{"chase needs account context", "chase down that payment", ""},
		{"no marker", "Transaction listing for current account", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBank(tt.text))
		})
	}
}

func TestDetectBankOrderPrefersSantanderOverChase(t *testing.T) {
	// Both rule keyword sets present; the more specific rule wins.
	text := "Santander account summary   Money out   chase"
	assert.Equal(t, models.BankSantander, DetectBank(text))
}

func TestDetectYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"month year form", "Statement for January 2024", 2024},
		{"slash date form", "15/01/2023 TESCO 12.00", 2023},
		{"statement period phrase", "Statement period ending 2025", 2025},
		{"bare year", "Reference 2024", 2024},
		{"fallback to clock", "no year anywhere in this text", 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectYear(tt.text, now))
		})
	}
}

func TestDetectYearIgnoresYearsBeyondHeader(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	text := strings.Repeat("x", 2000) + " January 2024"
	assert.Equal(t, 2026, DetectYear(text, now))
}

func TestDetectYearPrefersDatedPhraseOverBareYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	text := "Account reference 2021 ... statement for March 2024"
	assert.Equal(t, 2024, DetectYear(text, now))
}
