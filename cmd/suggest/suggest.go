// Package suggest implements the suggest command, an AI-backed category
// suggestion for a single merchant description.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ledgerline/bankstmt-csv/cmd/root"
	"ledgerline/bankstmt-csv/internal/categorizer"
	"ledgerline/bankstmt-csv/internal/logging"
)

var saveFlag bool

// Cmd is the suggest command.
var Cmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Suggest a category for a merchant description using AI",
	Long: `Asks the configured Gemini model for the most plausible category for a
merchant description. With --save, the suggestion is recorded as a
persistent override so future parses apply it without calling the model.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.Context(), strings.Join(args, " ")); err != nil {
			root.Exit(err)
		}
	},
}

func init() {
	Cmd.Flags().BoolVar(&saveFlag, "save", false, "Record the suggestion as a category override")
}

func run(ctx context.Context, description string) error {
	cfg := root.Cfg
	if cfg == nil || !cfg.AI.Enabled {
		return fmt.Errorf("AI categorization is disabled, enable it in configuration first")
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("no API key configured for AI categorization")
	}

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	client, err := categorizer.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, timeout,
		logging.NewLogrusAdapterFromLogger(root.Log))
	if err != nil {
		return fmt.Errorf("error initializing AI client: %w", err)
	}
	defer client.Close()

	category, err := client.SuggestCategory(ctx, description)
	if err != nil {
		return fmt.Errorf("error getting suggestion: %w", err)
	}

	fmt.Printf("%s -> %s\n", description, category)

	if saveFlag {
		root.Overrides.Set(description, category)
		root.Log.WithField("merchant", description).
			WithField("category", category).
			Info("Category override recorded")
	}
	return nil
}
