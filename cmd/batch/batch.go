// Package batch implements the batch command, which parses a directory of
// statements into one merged ledger CSV.
package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	cmdcommon "ledgerline/bankstmt-csv/cmd/common"
	"ledgerline/bankstmt-csv/cmd/root"
	batchagg "ledgerline/bankstmt-csv/internal/batch"
	"ledgerline/bankstmt-csv/internal/common"
	"ledgerline/bankstmt-csv/internal/fileutils"
	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/pipeline"
)

var statementExtensions = []string{".pdf", ".txt", ".text"}

// Cmd is the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse a directory of statements into one merged CSV",
	Long: `Parses every statement file in the input directory, merges the results
into one chronological ledger and writes it as a single CSV. Statements that
fail to parse are skipped with a logged error.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.Context()); err != nil {
			root.Exit(err)
		}
	},
}

func run(ctx context.Context) error {
	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		return fmt.Errorf("input directory is required (use --input)")
	}
	if !fileutils.DirectoryExists(inputDir) {
		return fmt.Errorf("input %s is not a directory", inputDir)
	}

	files, err := fileutils.ListFilesWithExtensions(inputDir, statementExtensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no statement files found in %s", inputDir)
	}

	opts := cmdcommon.PipelineOptions(root.Cfg)
	opts.Store = root.Overrides
	opts.Logger = logging.NewLogrusAdapterFromLogger(root.Log)
	p := pipeline.New(opts)

	agg := batchagg.NewAggregator(opts.Logger)
	merged, covered := agg.Aggregate(files, func(path string) ([]models.Transaction, error) {
		text, pageCount, err := cmdcommon.LoadStatementText(path)
		if err != nil {
			return nil, err
		}
		result, err := p.Process(ctx, text, pageCount)
		if err != nil {
			return nil, err
		}
		return result.Transactions, nil
	})
	if len(merged) == 0 {
		return fmt.Errorf("no transactions parsed from %s", inputDir)
	}

	outputPath := root.SharedFlags.Output
	if outputPath == "" {
		name := "statements.csv"
		if span := covered.String(); span != "" {
			name = fmt.Sprintf("statements_%s.csv", span)
		}
		outputPath = filepath.Join(inputDir, name)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := fileutils.EnsureDirectoryExists(dir); err != nil {
			return err
		}
	}

	if err := common.WriteTransactionsCSV(merged, outputPath, nil); err != nil {
		return err
	}
	root.Log.WithField("files", len(files)).
		WithField("transactions", len(merged)).
		WithField("output", outputPath).
		Info("Batch complete")
	return nil
}
