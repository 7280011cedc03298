// Package integration exercises the full pipeline across every supported
// bank layout, end to end from raw statement text to categorized ledger.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/pipeline"
)

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Now:   func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
		NewID: func() string { return "fixed-id" },
	})
}

func TestPipelineAcrossBankLayouts(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		bank       string
		parserUsed string
		count      int
	}{
		{
			name: "chase",
			text: `Chase Bank statement for account 12345678
Statement period 01 Jan 2024 to 31 Jan 2024
15 Jan 2024 TESCO STORES Purchase -£45.67 £1,200.00
18 Jan 2024 SALARY ACME LTD Transfer +£2,100.00 £3,300.00
20 Jan 2024 PRET A MANGER Purchase £4.50 £3,295.50`,
			bank:       models.BankChase,
			parserUsed: models.ParserChase,
			count:      3,
		},
		{
			name: "monzo",
			text: `Monzo statement January 2024
12/01/2024 PRET A MANGER LONDON -£4.95 £312.40
14/01/2024 PAYMENT FROM J SMITH +£50.00 £362.40
19/01/2024 NETFLIX.COM -£10.99 £351.41`,
			bank:       models.BankMonzo,
			parserUsed: models.ParserMonzo,
			count:      3,
		},
		{
			name: "santander",
			text: `Santander UK statement   Money in   Money out
05/03/2024 CARD PAYMENT TO SAINSBURYS 23.50 976.50
06/03/2024 FASTER PAYMENTS RECEIPT REF SALARY 1850.00 2826.50
07/03/2024 DIRECT DEBIT BRITISH GAS 89.00 2737.50`,
			bank:       models.BankSantander,
			parserUsed: models.ParserSantander,
			count:      3,
		},
		{
			name: "lloyds",
			text: `Lloyds Bank statement April 2024
02 Apr 24 NETFLIX.COM DEB 10.99 489.01
03 Apr 24 ACME PAYROLL LTD FPI 2,150.00 2,639.01
04 Apr 24 COUNCIL TAX DD 142.00 2,497.01`,
			bank:       models.BankLloyds,
			parserUsed: models.ParserLloyds,
			count:      3,
		},
		{
			name: "unknown layout falls back to generic",
			text: `Transaction listing for current account, period January 2024
15/01/2024 CARD PAYMENT SAINSBURYS LOCAL 23.50
16/01/2024 REFUND AMAZON MARKETPLACE +12.99
17/01/2024 DIRECT DEBIT THAMES WATER 36.00`,
			bank:       "",
			parserUsed: models.ParserGeneric,
			count:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newPipeline().Process(context.Background(), tt.text, 3)
			require.NoError(t, err)

			assert.Equal(t, tt.bank, result.Bank)
			assert.Equal(t, tt.parserUsed, result.ParserUsed)
			require.Len(t, result.Transactions, tt.count)

			for _, tx := range result.Transactions {
				assert.Equal(t, "fixed-id", tx.ID)
				assert.Equal(t, tt.parserUsed, tx.ParserUsed)
				assert.NotEmpty(t, tx.Category)
				assert.True(t, tx.Amount.IsPositive())
				assert.NotZero(t, tx.Time())
			}
		})
	}
}

func TestPipelineCategorizesAcrossLayouts(t *testing.T) {
	text := `Monzo statement January 2024
12/01/2024 TESCO STORES 4821 -£32.10 £500.00
13/01/2024 NETFLIX.COM -£10.99 £489.01
14/01/2024 SALARY ACME LTD +£2,100.00 £2,589.01`

	result, err := newPipeline().Process(context.Background(), text, 1)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)

	byDescription := make(map[string]models.Transaction)
	for _, tx := range result.Transactions {
		byDescription[tx.Description] = tx
	}

	assert.Equal(t, models.CategoryGroceries, byDescription["TESCO STORES 4821"].Category)
	assert.Equal(t, models.CategorySubscriptions, byDescription["NETFLIX.COM"].Category)
	assert.Equal(t, models.CategoryIncome, byDescription["SALARY ACME LTD"].Category)
}
