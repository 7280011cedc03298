package categorizer

import (
	"context"

	"ledgerline/bankstmt-csv/internal/models"
)

// Strategy defines one method of assigning a category to a transaction.
// Strategies run in a fixed order and the first hit wins.
type Strategy interface {
	// Categorize attempts to categorize a transaction using this strategy.
	// The boolean reports whether the strategy produced a category.
	Categorize(ctx context.Context, tx models.Transaction) (string, bool, error)

	// Name returns the name of this strategy for logging.
	Name() string
}

// CategoryLookup is the override-store surface the categorizer needs.
type CategoryLookup interface {
	Lookup(description string) (string, bool)
}
