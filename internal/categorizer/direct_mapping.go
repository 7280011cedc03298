package categorizer

import (
	"context"
	"strings"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

// DirectMappingStrategy resolves categories from the user's override store.
// It runs first so a saved override always beats the keyword rules.
type DirectMappingStrategy struct {
	store  CategoryLookup
	logger logging.Logger
}

// NewDirectMappingStrategy creates a DirectMappingStrategy backed by the
// given override store.
func NewDirectMappingStrategy(store CategoryLookup, logger logging.Logger) *DirectMappingStrategy {
	return &DirectMappingStrategy{store: store, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *DirectMappingStrategy) Name() string {
	return "DirectMapping"
}

// Categorize looks the transaction description up in the override store.
func (s *DirectMappingStrategy) Categorize(_ context.Context, tx models.Transaction) (string, bool, error) {
	if s.store == nil || strings.TrimSpace(tx.Description) == "" {
		return "", false, nil
	}
	category, found := s.store.Lookup(tx.Description)
	if !found {
		return "", false, nil
	}
	s.logger.Debug("Transaction categorized from override store",
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "description", Value: tx.Description},
		logging.Field{Key: "category", Value: category},
	)
	return category, true, nil
}
