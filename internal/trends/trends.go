// Package trends analyzes spending across calendar months: per-month
// aggregates, overall direction, consistency, and month-over-month insights
// filtered by significance thresholds so small fluctuations stay quiet.
package trends

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"ledgerline/bankstmt-csv/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Significance thresholds for month-over-month insights: spending must move
// more than 5%, income more than £100, the savings rate more than 5 points,
// and a category more than £50 and 20% at once.
const (
	spendingChangeFraction = 0.05
	incomeChangeFloor      = 100.0
	savingsRatePointsFloor = 5.0
	categoryChangeFloor    = 50.0
	categoryChangeFraction = 0.20
	consistentCV           = 0.20
	topCategoryCount       = 5
)

// Trend directions for overall spending.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// CategorySpend is one category's expense total within a month.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthlyStats aggregates one calendar month.
type MonthlyStats struct {
	Month            string          `json:"month"`
	Income           float64         `json:"income"`
	Expenses         float64         `json:"expenses"`
	Net              float64         `json:"net"`
	SavingsRate      float64         `json:"savingsRate"`
	TransactionCount int             `json:"transactionCount"`
	TopCategories    []CategorySpend `json:"topCategories"`
}

// Report is the full multi-month analysis.
type Report struct {
	SufficientData bool           `json:"sufficientData"`
	Months         []MonthlyStats `json:"months"`
	OverallTrend   string         `json:"overallTrend,omitempty"`
	BestMonth      string         `json:"bestMonth,omitempty"`
	WorstMonth     string         `json:"worstMonth,omitempty"`
	Consistent     bool           `json:"consistent"`
	Insights       []string       `json:"insights,omitempty"`
}

// GroupByMonth buckets transactions by their YYYY-MM month.
func GroupByMonth(transactions []models.Transaction) map[string][]models.Transaction {
	byMonth := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		when := tx.Time()
		if when.IsZero() {
			continue
		}
		month := when.Format("2006-01")
		byMonth[month] = append(byMonth[month], tx)
	}
	return byMonth
}

// CalculateMonthlyStats aggregates one month's transactions.
func CalculateMonthlyStats(month string, transactions []models.Transaction) MonthlyStats {
	stats := MonthlyStats{Month: month, TransactionCount: len(transactions)}

	categoryTotals := make(map[string]float64)
	for _, tx := range transactions {
		amount := tx.AmountAsFloat()
		if tx.IsIncome() {
			stats.Income += amount
			continue
		}
		stats.Expenses += amount
		categoryTotals[tx.Category] += amount
	}
	stats.Net = stats.Income - stats.Expenses
	if stats.Income > 0 {
		stats.SavingsRate = stats.Net / stats.Income * 100
	}
	stats.TopCategories = topCategories(categoryTotals, topCategoryCount)
	return stats
}

func topCategories(totals map[string]float64, n int) []CategorySpend {
	spends := make([]CategorySpend, 0, len(totals))
	for category, amount := range totals {
		spends = append(spends, CategorySpend{Category: category, Amount: amount})
	}
	sort.Slice(spends, func(i, j int) bool {
		if spends[i].Amount != spends[j].Amount {
			return spends[i].Amount > spends[j].Amount
		}
		return spends[i].Category < spends[j].Category
	})
	if len(spends) > n {
		spends = spends[:n]
	}
	return spends
}

// Analyze builds the full report. Fewer than two distinct months is not
// enough history: the report carries the per-month stats it could compute
// and SufficientData false.
func Analyze(transactions []models.Transaction) Report {
	byMonth := GroupByMonth(transactions)

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	report := Report{}
	for _, month := range months {
		report.Months = append(report.Months, CalculateMonthlyStats(month, byMonth[month]))
	}
	if len(report.Months) < 2 {
		log.WithField("months", len(report.Months)).Debug("Not enough history for trend analysis")
		return report
	}
	report.SufficientData = true

	first := report.Months[0]
	last := report.Months[len(report.Months)-1]
	switch {
	case last.Expenses > first.Expenses:
		report.OverallTrend = TrendIncreasing
	case last.Expenses < first.Expenses:
		report.OverallTrend = TrendDecreasing
	default:
		report.OverallTrend = TrendStable
	}

	best, worst := first, first
	for _, stats := range report.Months[1:] {
		if stats.SavingsRate > best.SavingsRate {
			best = stats
		}
		if stats.SavingsRate < worst.SavingsRate {
			worst = stats
		}
	}
	report.BestMonth = best.Month
	report.WorstMonth = worst.Month

	report.Consistent = spendingConsistent(report.Months)

	for i := 1; i < len(report.Months); i++ {
		report.Insights = append(report.Insights, CompareMonths(report.Months[i-1], report.Months[i])...)
	}
	return report
}

// spendingConsistent reports whether monthly expense totals stay within a
// 20% coefficient of variation.
func spendingConsistent(months []MonthlyStats) bool {
	mean := 0.0
	for _, stats := range months {
		mean += stats.Expenses
	}
	mean /= float64(len(months))
	if mean <= 0 {
		return true
	}

	variance := 0.0
	for _, stats := range months {
		d := stats.Expenses - mean
		variance += d * d
	}
	variance /= float64(len(months))

	return math.Sqrt(variance)/mean < consistentCV
}

// CompareMonths produces the significant month-over-month insights between
// two consecutive months. Changes below the thresholds produce nothing.
func CompareMonths(prev, curr MonthlyStats) []string {
	var insights []string

	if prev.Expenses > 0 {
		change := (curr.Expenses - prev.Expenses) / prev.Expenses
		if math.Abs(change) > spendingChangeFraction {
			direction := "increased"
			if change < 0 {
				direction = "decreased"
			}
			insights = append(insights, fmt.Sprintf(
				"Spending %s by %.0f%% in %s (£%.2f to £%.2f)",
				direction, math.Abs(change)*100, curr.Month, prev.Expenses, curr.Expenses))
		}
	}

	incomeChange := curr.Income - prev.Income
	if math.Abs(incomeChange) > incomeChangeFloor {
		direction := "rose"
		if incomeChange < 0 {
			direction = "fell"
		}
		insights = append(insights, fmt.Sprintf(
			"Income %s by £%.2f in %s", direction, math.Abs(incomeChange), curr.Month))
	}

	rateChange := curr.SavingsRate - prev.SavingsRate
	if math.Abs(rateChange) > savingsRatePointsFloor {
		direction := "improved"
		if rateChange < 0 {
			direction = "dropped"
		}
		insights = append(insights, fmt.Sprintf(
			"Savings rate %s by %.1f points in %s", direction, math.Abs(rateChange), curr.Month))
	}

	insights = append(insights, compareCategories(prev, curr)...)
	return insights
}

func compareCategories(prev, curr MonthlyStats) []string {
	prevTotals := make(map[string]float64, len(prev.TopCategories))
	for _, spend := range prev.TopCategories {
		prevTotals[spend.Category] = spend.Amount
	}

	var insights []string
	for _, spend := range curr.TopCategories {
		before := prevTotals[spend.Category]
		change := spend.Amount - before
		if before <= 0 || math.Abs(change) <= categoryChangeFloor {
			continue
		}
		if math.Abs(change)/before <= categoryChangeFraction {
			continue
		}
		direction := "up"
		if change < 0 {
			direction = "down"
		}
		insights = append(insights, fmt.Sprintf(
			"%s spending %s £%.2f in %s (£%.2f to £%.2f)",
			spend.Category, direction, math.Abs(change), curr.Month, before, spend.Amount))
	}
	return insights
}
