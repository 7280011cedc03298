// Package trends implements the trends command, a month-over-month spending
// analysis of a transaction CSV.
package trends

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledgerline/bankstmt-csv/cmd/root"
	"ledgerline/bankstmt-csv/internal/common"
	trendsanalysis "ledgerline/bankstmt-csv/internal/trends"
)

var jsonFlag bool

// Cmd is the trends command.
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Analyze month-over-month spending trends in a transaction CSV",
	Long: `Reads a transaction CSV produced by the parse command, groups it by
calendar month and reports income, expenses, savings rate, top spending
categories and month-over-month changes. Needs at least two months of data.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(); err != nil {
			root.Exit(err)
		}
	},
}

func init() {
	Cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the report as JSON")
}

func run() error {
	inputPath := root.SharedFlags.Input
	if inputPath == "" {
		return fmt.Errorf("input file is required (use --input)")
	}

	transactions, err := common.ReadTransactionsCSV(inputPath)
	if err != nil {
		return err
	}

	report := trendsanalysis.Analyze(transactions)

	if outputPath := root.SharedFlags.Output; outputPath != "" {
		if err := common.WriteTransactionsCSV(transactions, outputPath, report.Insights); err != nil {
			return err
		}
		root.Log.WithField("output", outputPath).Info("Ledger with insights written")
	}

	if jsonFlag {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(report trendsanalysis.Report) {
	if !report.SufficientData {
		fmt.Println("Not enough data for trend analysis; at least two months of transactions are needed.")
		return
	}

	fmt.Printf("Months analyzed: %d  overall trend: %s\n\n", len(report.Months), report.OverallTrend)
	for _, month := range report.Months {
		fmt.Printf("%s  income %9.2f  expenses %9.2f  net %9.2f  savings %5.1f%%\n",
			month.Month, month.Income, month.Expenses, month.Net, month.SavingsRate)
		for _, cat := range month.TopCategories {
			fmt.Printf("    %-15s %9.2f\n", cat.Category, cat.Amount)
		}
	}

	fmt.Printf("\nBest month: %s  worst month: %s\n", report.BestMonth, report.WorstMonth)
	if report.Consistent {
		fmt.Println("Spending is consistent month to month.")
	}
	if len(report.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, insight := range report.Insights {
			fmt.Printf("  - %s\n", insight)
		}
	}
}
