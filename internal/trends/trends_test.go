package trends

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/models"
)

func expense(date, category string, amount float64) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: "EXPENSE " + category,
		Amount:      decimal.NewFromFloat(amount),
		Type:        models.TypeExpense,
		Category:    category,
	}
}

func income(date string, amount float64) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: "SALARY",
		Amount:      decimal.NewFromFloat(amount),
		Type:        models.TypeIncome,
		Category:    models.CategoryIncome,
	}
}

func TestCalculateMonthlyStats(t *testing.T) {
	transactions := []models.Transaction{
		income("2024-01-25", 2000.00),
		expense("2024-01-05", models.CategoryGroceries, 250.00),
		expense("2024-01-12", models.CategoryTransport, 80.00),
		expense("2024-01-20", models.CategoryGroceries, 150.00),
	}

	stats := CalculateMonthlyStats("2024-01", transactions)
	assert.Equal(t, "2024-01", stats.Month)
	assert.InDelta(t, 2000.00, stats.Income, 0.001)
	assert.InDelta(t, 480.00, stats.Expenses, 0.001)
	assert.InDelta(t, 1520.00, stats.Net, 0.001)
	assert.InDelta(t, 76.0, stats.SavingsRate, 0.001)
	assert.Equal(t, 4, stats.TransactionCount)

	require.NotEmpty(t, stats.TopCategories)
	assert.Equal(t, models.CategoryGroceries, stats.TopCategories[0].Category)
	assert.InDelta(t, 400.00, stats.TopCategories[0].Amount, 0.001)
}

func TestAnalyzeSingleMonthIsInsufficient(t *testing.T) {
	transactions := []models.Transaction{
		income("2024-01-25", 2000.00),
		expense("2024-01-05", models.CategoryGroceries, 250.00),
	}

	report := Analyze(transactions)
	assert.False(t, report.SufficientData)
	assert.Len(t, report.Months, 1)
	assert.Empty(t, report.OverallTrend)
	assert.Empty(t, report.Insights)
}

func TestAnalyzeOverallTrend(t *testing.T) {
	transactions := []models.Transaction{
		expense("2024-01-10", models.CategoryGroceries, 300.00),
		expense("2024-02-10", models.CategoryGroceries, 400.00),
		expense("2024-03-10", models.CategoryGroceries, 500.00),
	}

	report := Analyze(transactions)
	require.True(t, report.SufficientData)
	assert.Equal(t, TrendIncreasing, report.OverallTrend)
	assert.False(t, report.Consistent)
}

func TestAnalyzeBestAndWorstMonth(t *testing.T) {
	transactions := []models.Transaction{
		income("2024-01-25", 2000.00),
		expense("2024-01-05", models.CategoryGroceries, 400.00),
		income("2024-02-25", 2000.00),
		expense("2024-02-05", models.CategoryGroceries, 1500.00),
	}

	report := Analyze(transactions)
	require.True(t, report.SufficientData)
	assert.Equal(t, "2024-01", report.BestMonth)
	assert.Equal(t, "2024-02", report.WorstMonth)
}

func TestAnalyzeConsistentSpending(t *testing.T) {
	transactions := []models.Transaction{
		expense("2024-01-10", models.CategoryGroceries, 500.00),
		expense("2024-02-10", models.CategoryGroceries, 510.00),
		expense("2024-03-10", models.CategoryGroceries, 490.00),
	}

	report := Analyze(transactions)
	assert.True(t, report.Consistent)
}

func TestCompareMonthsQuietOnSmallChanges(t *testing.T) {
	prev := MonthlyStats{Month: "2024-01", Income: 2000, Expenses: 1000, SavingsRate: 50}
	curr := MonthlyStats{Month: "2024-02", Income: 2050, Expenses: 1030, SavingsRate: 49.8}

	assert.Empty(t, CompareMonths(prev, curr))
}

func TestCompareMonthsReportsSignificantChanges(t *testing.T) {
	prev := MonthlyStats{
		Month: "2024-01", Income: 2000, Expenses: 1000, SavingsRate: 50,
		TopCategories: []CategorySpend{{models.CategoryEatingOut, 200}},
	}
	curr := MonthlyStats{
		Month: "2024-02", Income: 2200, Expenses: 1200, SavingsRate: 40,
		TopCategories: []CategorySpend{{models.CategoryEatingOut, 300}},
	}

	insights := CompareMonths(prev, curr)
	require.Len(t, insights, 4)
	assert.Contains(t, insights[0], "Spending increased by 20%")
	assert.Contains(t, insights[1], "Income rose by £200.00")
	assert.Contains(t, insights[2], "Savings rate dropped by 10.0 points")
	assert.Contains(t, insights[3], models.CategoryEatingOut)
}

func TestGroupByMonthSkipsInvalidDates(t *testing.T) {
	transactions := []models.Transaction{
		expense("2024-01-10", models.CategoryGroceries, 10.00),
		{Date: "not-a-date", Type: models.TypeExpense, Amount: decimal.NewFromInt(5)},
	}

	byMonth := GroupByMonth(transactions)
	assert.Len(t, byMonth, 1)
	assert.Len(t, byMonth["2024-01"], 1)
}
