// Package categorize implements the categorize command.
package categorize

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ledgerline/bankstmt-csv/cmd/root"
	"ledgerline/bankstmt-csv/internal/categorizer"
	"ledgerline/bankstmt-csv/internal/common"
	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

var (
	merchantFlag string
	categoryFlag string
)

// Cmd is the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Re-categorize a transaction CSV or record a merchant override",
	Long: `With --merchant and --category, records a persistent merchant-to-category
override used by future runs. With --input, re-runs categorization over an
existing transaction CSV (applying any overrides) and writes the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.Context()); err != nil {
			root.Exit(err)
		}
	},
}

func init() {
	Cmd.Flags().StringVar(&merchantFlag, "merchant", "", "Merchant description to override")
	Cmd.Flags().StringVar(&categoryFlag, "category", "", "Category to assign to the merchant")
}

func run(ctx context.Context) error {
	if merchantFlag != "" || categoryFlag != "" {
		return recordOverride()
	}

	inputPath := root.SharedFlags.Input
	if inputPath == "" {
		return fmt.Errorf("either --merchant/--category or --input is required")
	}
	outputPath := root.SharedFlags.Output
	if outputPath == "" {
		outputPath = inputPath
	}

	transactions, err := common.ReadTransactionsCSV(inputPath)
	if err != nil {
		return err
	}

	cat := categorizer.New(root.Overrides, nil, logging.NewLogrusAdapterFromLogger(root.Log))
	cat.CategorizeAll(ctx, transactions)

	if err := common.WriteTransactionsCSV(transactions, outputPath, nil); err != nil {
		return err
	}
	root.Log.WithField("transactions", len(transactions)).
		WithField("output", outputPath).
		Info("Transactions re-categorized")
	return nil
}

func recordOverride() error {
	if merchantFlag == "" || categoryFlag == "" {
		return fmt.Errorf("--merchant and --category must be given together")
	}
	if !validCategory(categoryFlag) {
		return fmt.Errorf("unknown category %q, valid categories: %v", categoryFlag, models.AllCategories)
	}
	root.Overrides.Set(merchantFlag, categoryFlag)
	root.Log.WithField("merchant", merchantFlag).
		WithField("category", categoryFlag).
		Info("Category override recorded")
	return nil
}

func validCategory(category string) bool {
	for _, c := range models.AllCategories {
		if c == category {
			return true
		}
	}
	return false
}
