package monzoparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
)

func TestParseSignedRows(t *testing.T) {
	text := `12/01/2024 PRET A MANGER LONDON -£4.95 £312.40
14/01/2024 PAYMENT FROM J SMITH +£50.00 £362.40`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "2024-01-12", transactions[0].Date)
	assert.Equal(t, "PRET A MANGER LONDON", transactions[0].Description)
	assert.Equal(t, models.TypeExpense, transactions[0].Type)
	assert.Equal(t, "4.95", transactions[0].Amount.StringFixed(2))

	assert.Equal(t, models.TypeIncome, transactions[1].Type)
	assert.Equal(t, "50.00", transactions[1].Amount.StringFixed(2))
}

func TestParseIgnoresUnsignedLines(t *testing.T) {
	// Balance summary rows print unsigned amounts and must not become
	// transactions.
	text := "12/01/2024 Pending card check ref 100.00 200.00"

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestParseSkipsStatementFurniture(t *testing.T) {
	text := `12/01/2024 Closing balance adjustment -£309.60
12/01/2024 GREGGS MANCHESTER -£2.80 £309.60`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "GREGGS MANCHESTER", transactions[0].Description)
}

func TestParseShortYearAndTextDates(t *testing.T) {
	text := `12/01/24 OCADO RETAIL LTD -£64.20
3 Feb NETFLIX.COM -£10.99`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "2024-01-12", transactions[0].Date)
	assert.Equal(t, "2024-02-03", transactions[1].Date)
}
