package barclaysparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
)

func TestParseReconcilesBalanceChain(t *testing.T) {
	// 1,000.00 -> 950.00 -> 950.00 (boilerplate couple) -> 1,200.00
	text := `Barclays Bank UK PLC Business Current Account
Start balance 1,000.00
12 Mar Card Payment TESCO STORES 50.00 950.00
Page 1 of 2 Sort code 20-00-00 0.00 950.00
14 Mar Transfer from J SMITH 250.00 1,200.00
End balance 1,200.00`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "2024-03-12", transactions[0].Date)
	assert.Equal(t, "Card Payment TESCO STORES", transactions[0].Description)
	assert.Equal(t, "50.00", transactions[0].Amount.StringFixed(2))
	assert.Equal(t, models.TypeExpense, transactions[0].Type)

	assert.Equal(t, "2024-03-14", transactions[1].Date)
	assert.Equal(t, "Transfer from J SMITH", transactions[1].Description)
	assert.Equal(t, "250.00", transactions[1].Amount.StringFixed(2))
	assert.Equal(t, models.TypeIncome, transactions[1].Type)
}

func TestParseRejectsNonReconcilingCouples(t *testing.T) {
	// The 500.00/123.45 couple does not step from the running balance and
	// must be dropped without disturbing the chain.
	text := `Start balance 1,000.00
12 Mar Card Payment TESCO STORES 50.00 950.00
Summary of charges this period 500.00 123.45
14 Mar Direct Debit BRITISH GAS 75.00 875.00`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "Card Payment TESCO STORES", transactions[0].Description)
	assert.Equal(t, "Direct Debit BRITISH GAS", transactions[1].Description)
}

func TestParseRunningBalanceAdvancesOnlyOnEmit(t *testing.T) {
	// The first couple reconciles but cleans to an empty description, so it
	// is rejected and the running balance stays at 100.00 for the next row.
	text := `Start balance 100.00
Sort code 20-00-00 50.00 50.00
12 Mar COFFEE SHOP LEEDS 50.00 50.00`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "COFFEE SHOP LEEDS", transactions[0].Description)
	assert.Equal(t, models.TypeExpense, transactions[0].Type)
}

func TestParseWithoutOpeningBalanceAnchorsOnFirstCouple(t *testing.T) {
	text := `12 Mar Card Payment TESCO STORES 50.00 950.00
14 Mar Transfer from J SMITH 250.00 1,200.00`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Transfer from J SMITH", transactions[0].Description)
	assert.Equal(t, models.TypeIncome, transactions[0].Type)
}

func TestParseCarriesDateForward(t *testing.T) {
	// The second row prints no date of its own and inherits the previous
	// transaction's.
	text := `Start balance 500.00
12 Mar Card Payment GREGGS 5.00 495.00
Card Payment BOOTS PHARMACY 10.00 485.00`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "2024-03-12", transactions[1].Date)
	assert.Equal(t, "Card Payment BOOTS PHARMACY", transactions[1].Description)
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"strips legal footer", "Barclays Bank UK PLC is authorised", ""},
		{"strips sort code and account", "Sort code 20-00-00 Account number 12345678 TESCO", "TESCO"},
		{"strips page marker", "Page 3 of 7 Card Payment ASDA", "Card Payment ASDA"},
		{"strips dates and amounts", "12 Mar 24 SHELL FILLING STATION 40.00", "SHELL FILLING STATION"},
		{"keeps plain merchant", "Direct Debit VODAFONE LTD", "Direct Debit VODAFONE LTD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanDescription(tt.raw))
		})
	}
}
