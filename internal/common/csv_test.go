package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
)

func TestWriteAndReadTransactionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ledger.csv")
	transactions := []models.Transaction{
		{
			ID:          "tx-0001",
			Date:        "2024-01-15",
			Description: "TESCO STORES",
			Amount:      decimal.NewFromFloat(45.67),
			Type:        models.TypeExpense,
			Category:    models.CategoryGroceries,
			ParserUsed:  models.ParserChase,
			Confidence:  0.74,
		},
	}

	insights := []string{"Spending increased by 12% in 2024-01"}
	require.NoError(t, WriteTransactionsCSV(transactions, path, insights))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "TESCO STORES")
	assert.Contains(t, content, "# Spending increased by 12% in 2024-01")

	restored, err := ReadTransactionsCSV(path)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "tx-0001", restored[0].ID)
	assert.Equal(t, "45.67", restored[0].Amount.StringFixed(2))
	assert.Equal(t, models.TypeExpense, restored[0].Type)
}

func TestWriteNilTransactionsFails(t *testing.T) {
	err := WriteTransactionsCSV(nil, filepath.Join(t.TempDir(), "x.csv"), nil)
	assert.Error(t, err)
}

func TestWriteEmptySetStillProducesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteTransactionsCSV([]models.Transaction{}, path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "date") || len(raw) > 0)
}
