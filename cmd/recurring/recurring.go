// Package recurring implements the recurring command, a report of repeating
// payments found in a transaction CSV.
package recurring

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledgerline/bankstmt-csv/cmd/root"
	"ledgerline/bankstmt-csv/internal/common"
	recurringdetect "ledgerline/bankstmt-csv/internal/recurring"
)

var jsonFlag bool

// Cmd is the recurring command.
var Cmd = &cobra.Command{
	Use:   "recurring",
	Short: "Detect recurring payments in a transaction CSV",
	Long: `Reads a transaction CSV produced by the parse command, detects repeating
payments (subscriptions, rent, utilities), buckets them by cadence and
reports the monthly and annual cost, flagging payments that look unused.`,
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

	opts := recurringdetect.Options{}
	if root.Cfg != nil {
		opts.AmountVariance = root.Cfg.Recurring.AmountVariance
		opts.MinOccurrences = root.Cfg.Recurring.MinOccurrences
	}

	groups := recurringdetect.Detect(transactions, opts)
	summary := recurringdetect.Summarize(groups)

	if jsonFlag {
		return writeJSON(groups, summary)
	}

	printReport(groups, summary)
	return nil
}

func writeJSON(groups []recurringdetect.Group, summary recurringdetect.Summary) error {
	report := struct {
		Groups  []recurringdetect.Group `json:"groups"`
		Summary recurringdetect.Summary `json:"summary"`
	}{Groups: groups, Summary: summary}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printReport(groups []recurringdetect.Group, summary recurringdetect.Summary) {
	if len(groups) == 0 {
		fmt.Println("No recurring payments detected.")
		return
	}

	fmt.Printf("Recurring payments: %d (%.2f/month, %.2f/year)\n\n",
		summary.GroupCount, summary.MonthlyCost, summary.AnnualCost)
	for _, group := range groups {
		flag := ""
		if group.PotentiallyUnused {
			flag = "  [possibly unused]"
		}
		fmt.Printf("%-30s %-12s %8.2f  annual %8.2f  last %s%s\n",
			group.Merchant, group.Frequency, group.AverageAmount,
			group.AnnualCost, group.LastPayment, flag)
	}
	if summary.UnusedCount > 0 {
		fmt.Printf("\n%d payment(s) look unused, costing %.2f/year.\n",
			summary.UnusedCount, summary.UnusedAnnualCost)
	}
}
