// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledgerline/bankstmt-csv/internal/barclaysparser"
	"ledgerline/bankstmt-csv/internal/chaseparser"
	"ledgerline/bankstmt-csv/internal/common"
	"ledgerline/bankstmt-csv/internal/config"
	"ledgerline/bankstmt-csv/internal/fileutils"
	"ledgerline/bankstmt-csv/internal/genericparser"
	"ledgerline/bankstmt-csv/internal/lloydsparser"
	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/monzoparser"
	"ledgerline/bankstmt-csv/internal/pdftext"
	"ledgerline/bankstmt-csv/internal/recurring"
	"ledgerline/bankstmt-csv/internal/santanderparser"
	"ledgerline/bankstmt-csv/internal/store"
	"ledgerline/bankstmt-csv/internal/trends"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg holds the resolved application configuration.
	Cfg *config.Config

	// Overrides is the shared merchant category override store.
	Overrides *store.CategoryStore

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "bankstmt-csv",
		Short: "Parse UK bank statements into a categorized transaction CSV.",
		Long: `bankstmt-csv converts extracted UK bank statement text or PDFs into a
validated, categorized transaction ledger. It detects the issuing bank
(Chase, Monzo, Santander, Barclays, Lloyds/Halifax), parses its layout,
scores the result and writes CSV. Further commands analyze a saved ledger
for recurring payments and month-over-month trends.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Warn("Configuration invalid, using defaults")
			}
			if Cfg != nil {
				Log = config.ConfigureLoggingFromConfig(Cfg)
			} else {
				Log = config.ConfigureLogging()
			}
			logging.SetDefaultLogger(logging.NewLogrusAdapterFromLogger(Log))

			chaseparser.SetLogger(Log)
			monzoparser.SetLogger(Log)
			santanderparser.SetLogger(Log)
			barclaysparser.SetLogger(Log)
			lloydsparser.SetLogger(Log)
			genericparser.SetLogger(Log)
			common.SetLogger(Log)
			fileutils.SetLogger(Log)
			store.SetLogger(Log)
			recurring.SetLogger(Log)
			trends.SetLogger(Log)
			pdftext.SetLogger(Log)

			if Cfg != nil && Cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(Cfg.CSV.Delimiter)[0])
			}

			mappingsFile := "mappings.yaml"
			if Cfg != nil && Cfg.Store.MappingsFile != "" {
				mappingsFile = Cfg.Store.MappingsFile
			}
			Overrides = store.NewCategoryStore(mappingsFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Persist overrides recorded by any command in this run.
			if Overrides != nil {
				if err := Overrides.Save(); err != nil {
					Log.WithError(err).Warn("Failed to save category overrides")
				}
			}
		},
	}
)

// Init initializes the root command flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// Exit logs the error and terminates with a nonzero status.
func Exit(err error) {
	Log.Error(err.Error())
	os.Exit(1)
}
