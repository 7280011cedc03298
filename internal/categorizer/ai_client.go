package categorizer

import "context"

// AIClient is the interface for model-backed category suggestions. It exists
// so tests can stub the Gemini dependency.
type AIClient interface {
	// SuggestCategory proposes a category name for a transaction
	// description. The returned name must still be validated against the
	// known category set.
	SuggestCategory(ctx context.Context, description string) (string, error)
}
