package santanderparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
)

func TestParseDirectionFromDescription(t *testing.T) {
	text := `05/03/2024 CARD PAYMENT TO SAINSBURYS 23.50 976.50
06/03/2024 FASTER PAYMENTS RECEIPT REF SALARY 1850.00 2826.50
07/03/2024 DIRECT DEBIT BRITISH GAS 89.00 2737.50`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, models.TypeExpense, transactions[0].Type)
	assert.Equal(t, "23.50", transactions[0].Amount.StringFixed(2))

	assert.Equal(t, models.TypeIncome, transactions[1].Type)
	assert.Equal(t, "1850.00", transactions[1].Amount.StringFixed(2))

	assert.Equal(t, models.TypeExpense, transactions[2].Type)
	assert.Equal(t, "DIRECT DEBIT BRITISH GAS", transactions[2].Description)
}

func TestParseCreditKeywords(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected models.TransactionType
	}{
		{"refund", "05/03/2024 REFUND AMAZON MARKETPLACE 12.99 100.00", models.TypeIncome},
		{"interest paid", "05/03/2024 INTEREST PAID GROSS THIS PERIOD 0.42 100.42", models.TypeIncome},
		{"cashback", "05/03/2024 CASHBACK ON HOUSEHOLD BILLS 5.00 105.42", models.TypeIncome},
		{"payment from", "05/03/2024 PAYMENT FROM J SMITH 50.00 155.42", models.TypeIncome},
		{"deposit", "05/03/2024 CASH DEPOSIT BRANCH 20.00 175.42", models.TypeIncome},
		{"transfer to also reads as money in", "05/03/2024 TRANSFER TO SAVINGS POT 100.00 900.00", models.TypeIncome},
		{"transfer from", "05/03/2024 TRANSFER FROM SAVINGS POT 100.00 1,000.00", models.TypeIncome},
		{"plain card payment", "05/03/2024 CARD PAYMENT TO COSTA COFFEE 3.10 102.32", models.TypeExpense},
		{"credit in merchant name stays expense", "05/03/2024 CARD PAYMENT TO CREDIT UNION LTD 20.00 880.00", models.TypeExpense},
		{"salary alone stays expense", "05/03/2024 SALARY SACRIFICE SCHEME FEE 15.00 865.00", models.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := Parse(tt.line, 2024)
			require.NoError(t, err)
			require.Len(t, transactions, 1)
			assert.Equal(t, tt.expected, transactions[0].Type)
		})
	}
}

func TestParseSkipsColumnHeadersAndFurniture(t *testing.T) {
	text := `01/03/2024 Date Description Money out Money in Balance
05/03/2024 CARD PAYMENT TO SAINSBURYS 23.50 976.50`

	transactions, err := Parse(text, 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "CARD PAYMENT TO SAINSBURYS", transactions[0].Description)
}

func TestParseTakesFirstAmountAsMovement(t *testing.T) {
	transactions, err := Parse("05/03/2024 STANDING ORDER RENT PAYMENT 950.00 1,200.00", 2024)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "950.00", transactions[0].Amount.StringFixed(2))
}
