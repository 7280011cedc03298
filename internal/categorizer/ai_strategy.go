package categorizer

import (
	"context"
	"strings"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

// AIStrategy consults an AIClient for descriptions the keyword rules could
// not place. It is disabled by default and never runs inside the
// deterministic parse path; only the explicit suggestion flow wires it in.
type AIStrategy struct {
	client AIClient
	logger logging.Logger
}

// NewAIStrategy creates an AIStrategy over the given client.
func NewAIStrategy(client AIClient, logger logging.Logger) *AIStrategy {
	return &AIStrategy{client: client, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize asks the model for a suggestion and validates it against the
// known category set. An invalid or failed suggestion is a miss, not an
// error that stops the chain.
func (s *AIStrategy) Categorize(ctx context.Context, tx models.Transaction) (string, bool, error) {
	if s.client == nil || strings.TrimSpace(tx.Description) == "" {
		return "", false, nil
	}

	category, err := s.client.SuggestCategory(ctx, tx.Description)
	if err != nil {
		s.logger.WithError(err).Warn("AI category suggestion failed")
		return "", false, nil
	}
	if !isKnownCategory(category) {
		s.logger.Warn("AI suggested unknown category",
			logging.Field{Key: "category", Value: category},
		)
		return "", false, nil
	}
	return category, true, nil
}

func isKnownCategory(category string) bool {
	for _, known := range models.AllCategories {
		if known == category {
			return true
		}
	}
	return false
}
