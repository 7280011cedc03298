package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/parsererror"
)

func testPipeline() *Pipeline {
	counter := 0
	return New(Options{
		Now: func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
		NewID: func() string {
			counter++
			return fmt.Sprintf("tx-%04d", counter)
		},
	})
}

func TestProcessChaseStatementEndToEnd(t *testing.T) {
	text := `Chase current account statement January 2024
15 Jan 2024 TESCO STORES Purchase -£45.67 £1,200.00`

	result, err := testPipeline().Process(context.Background(), text, 2)
	require.NoError(t, err)

	assert.Equal(t, models.BankChase, result.Bank)
	assert.Equal(t, 2024, result.Year)
	assert.Equal(t, models.ParserChase, result.ParserUsed)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.Equal(t, "tx-0001", tx.ID)
	assert.Equal(t, "2024-01-15", tx.Date)
	assert.Equal(t, "TESCO STORES", tx.Description)
	assert.Equal(t, "45.67", tx.Amount.StringFixed(2))
	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.Equal(t, models.CategoryGroceries, tx.Category)
	assert.Equal(t, models.ParserChase, tx.ParserUsed)
	assert.GreaterOrEqual(t, tx.Confidence, models.ConfidenceThreshold)
}

func TestProcessTooManyPages(t *testing.T) {
	_, err := testPipeline().Process(context.Background(), "any text at all", 51)
	assert.True(t, parsererror.IsKind(err, parsererror.KindPDFTooLarge))
}

func TestProcessShortTextIsPDFEmpty(t *testing.T) {
	// Below the text floor the run fails before bank detection, even when a
	// bank keyword is present.
	_, err := testPipeline().Process(context.Background(), "Chase account", 1)
	assert.True(t, parsererror.IsKind(err, parsererror.KindPDFEmpty))
}

func TestProcessPageGateBeatsEmptyGate(t *testing.T) {
	_, err := testPipeline().Process(context.Background(), "", 200)
	assert.True(t, parsererror.IsKind(err, parsererror.KindPDFTooLarge))
}

func TestProcessRecognizedBankWithoutTransactions(t *testing.T) {
	text := `Chase current account statement January 2024
No transactions occurred during this statement period. Thank you for banking with Chase.`

	_, err := testPipeline().Process(context.Background(), text, 1)
	require.True(t, parsererror.IsKind(err, parsererror.KindNoTransactionsFound))
	assert.Contains(t, err.Error(), models.BankChase)
}

func TestProcessUnsupportedBankLabel(t *testing.T) {
	text := "Statement of account issued by Northern Example Bank for the period ending soon. No rows here."

	_, err := testPipeline().Process(context.Background(), text, 1)
	require.True(t, parsererror.IsKind(err, parsererror.KindUnsupportedBank))
	assert.Contains(t, err.Error(), "Example Bank")
}

func TestProcessUnrecognizableText(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit ", 3)

	_, err := testPipeline().Process(context.Background(), text, 1)
	assert.True(t, parsererror.IsKind(err, parsererror.KindBankNotRecognized))
}

func TestProcessLowConfidenceFailsGate(t *testing.T) {
	// One stale, oversized movement: transactions exist but the set is not
	// trustworthy.
	text := `Account activity summary for reference purposes only
05/06/2019 MYSTERY WIRE SETTLEMENT 999999.00`

	_, err := testPipeline().Process(context.Background(), text, 1)
	require.True(t, parsererror.IsKind(err, parsererror.KindGenericParserFailed))
}

func TestProcessFallsBackToGenericParser(t *testing.T) {
	// Monzo is detected but prints no signed amounts, so its parser yields
	// nothing and the generic heuristics take over.
	text := `Monzo statement for the period shown below
05/06/2024 CORNER SHOP NEWSAGENT 3.40 96.60`

	result, err := testPipeline().Process(context.Background(), text, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BankMonzo, result.Bank)
	assert.Equal(t, models.ParserGeneric, result.ParserUsed)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "CORNER SHOP NEWSAGENT", result.Transactions[0].Description)
}

func TestProcessFallsBackWhenBankParserRowsAreAllInvalid(t *testing.T) {
	// Chase is detected and its parser matches a row, but the zero amount is
	// dropped by validation. The generic parser still gets a turn before the
	// run is declared empty.
	text := `Chase current account statement January 2024
15 Jan 2024 PENDING AUTH HOLD Purchase £0.00 £500.00
16/01/2024 CARD PAYMENT SAINSBURYS LOCAL 23.50`

	result, err := testPipeline().Process(context.Background(), text, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BankChase, result.Bank)
	assert.Equal(t, models.ParserGeneric, result.ParserUsed)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "CARD PAYMENT SAINSBURYS LOCAL", result.Transactions[0].Description)
}

func TestProcessDeterministicAcrossRuns(t *testing.T) {
	text := `Chase current account statement January 2024
15 Jan 2024 TESCO STORES Purchase -£45.67 £1,200.00
16 Jan 2024 NETFLIX.COM Purchase -£10.99 £1,189.01`

	first, err := testPipeline().Process(context.Background(), text, 1)
	require.NoError(t, err)
	second, err := testPipeline().Process(context.Background(), text, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProcessEveryTransactionCategorized(t *testing.T) {
	text := `Chase current account statement January 2024
15 Jan 2024 TESCO STORES Purchase -£45.67 £1,200.00
16 Jan 2024 NETFLIX.COM Purchase -£10.99 £1,189.01
17 Jan 2024 ZZZ OBSCURE VENDOR Purchase -£5.00 £1,184.01
18 Jan 2024 SALARY ACME LTD Transfer +£2,000.00 £3,184.01`

	result, err := testPipeline().Process(context.Background(), text, 1)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 4)
	for _, tx := range result.Transactions {
		assert.Contains(t, models.AllCategories, tx.Category)
		assert.NotEmpty(t, tx.ID)
	}
	assert.Equal(t, models.CategorySubscriptions, result.Transactions[1].Category)
	assert.Equal(t, models.CategoryIncome, result.Transactions[3].Category)
}
