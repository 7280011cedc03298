// Package parse implements the parse command, the main statement-to-CSV
// conversion path.
package parse

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cmdcommon "ledgerline/bankstmt-csv/cmd/common"
	"ledgerline/bankstmt-csv/cmd/root"
	"ledgerline/bankstmt-csv/internal/categorizer"
	"ledgerline/bankstmt-csv/internal/common"
	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/pipeline"
)

// Cmd is the parse command.
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a bank statement into a categorized transaction CSV",
	Long: `Parse extracted statement text (or a PDF) from one of the supported UK
banks, validate and categorize the transactions, and write them as CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.Context()); err != nil {
			root.Exit(err)
		}
	},
}

func run(ctx context.Context) error {
	inputPath := root.SharedFlags.Input
	if inputPath == "" {
		return fmt.Errorf("input file is required (use --input)")
	}
	outputPath := root.SharedFlags.Output
	if outputPath == "" {
		outputPath = cmdcommon.DefaultOutputPath(inputPath)
	}

	text, pageCount, err := cmdcommon.LoadStatementText(inputPath)
	if err != nil {
		return err
	}

	opts := cmdcommon.PipelineOptions(root.Cfg)
	opts.Store = root.Overrides
	opts.Logger = logging.NewLogrusAdapterFromLogger(root.Log)

	if ai, closeAI := newAIClient(ctx); ai != nil {
		defer closeAI()
		opts.AI = ai
	}

	result, err := pipeline.New(opts).Process(ctx, text, pageCount)
	if err != nil {
		return err
	}

	root.Log.WithField("bank", result.Bank).
		WithField("parser", result.ParserUsed).
		WithField("transactions", len(result.Transactions)).
		WithField("confidence", fmt.Sprintf("%.2f", result.Confidence)).
		Info("Statement parsed")

	if err := common.WriteTransactionsCSV(result.Transactions, outputPath, nil); err != nil {
		return err
	}
	root.Log.WithField("output", outputPath).Info("CSV written")
	return nil
}

// newAIClient returns a Gemini client when AI categorization is enabled and
// configured, along with a close func. Failures disable AI with a warning
// rather than aborting the parse.
func newAIClient(ctx context.Context) (categorizer.AIClient, func()) {
	cfg := root.Cfg
	if cfg == nil || !cfg.AI.Enabled {
		return nil, nil
	}
	if cfg.AI.APIKey == "" {
		root.Log.Warn("AI categorization enabled but no API key configured")
		return nil, nil
	}
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	client, err := categorizer.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, timeout,
		logging.NewLogrusAdapterFromLogger(root.Log))
	if err != nil {
		root.Log.WithError(err).Warn("Failed to initialize AI client, continuing without AI")
		return nil, nil
	}
	return client, func() { _ = client.Close() }
}
