// Package categorizer assigns spending categories to transactions using a
// fixed chain of strategies:
//  1. Direct merchant overrides from the user's YAML store
//  2. Ordered keyword rules over the description
//  3. Optionally, an AI suggestion (opt-in, never in the parse path)
//
// Income transactions always categorize as Income, and every transaction
// receives some category: Other is the floor, never an absent value.
package categorizer

import (
	"context"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

// Categorizer runs the strategy chain over transactions.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New creates a Categorizer. The store and aiClient may be nil, in which
// case the corresponding strategies are skipped.
func New(store CategoryLookup, aiClient AIClient, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var strategies []Strategy
	if store != nil {
		strategies = append(strategies, NewDirectMappingStrategy(store, logger))
	}
	strategies = append(strategies, NewKeywordStrategy(logger))
	if aiClient != nil {
		strategies = append(strategies, NewAIStrategy(aiClient, logger))
	}

	return &Categorizer{strategies: strategies, logger: logger}
}

// Categorize resolves the category for a single transaction.
func (c *Categorizer) Categorize(ctx context.Context, tx models.Transaction) string {
	if tx.Type == models.TypeIncome {
		return models.CategoryIncome
	}

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: "strategy", Value: strategy.Name()},
			)
			continue
		}
		if found {
			return category
		}
	}
	return models.CategoryOther
}

// CategorizeAll assigns a category to every transaction in place.
func (c *Categorizer) CategorizeAll(ctx context.Context, transactions []models.Transaction) {
	for i := range transactions {
		transactions[i].Category = c.Categorize(ctx, transactions[i])
	}
}
