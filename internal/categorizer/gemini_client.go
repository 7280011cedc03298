package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	model   *genai.GenerativeModel
	client  *genai.Client
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClient creates a Gemini-backed suggestion client. The caller owns
// the API key; an empty key is an error so a misconfigured run fails early
// instead of on the first request.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GeminiClient{
		model:   client.GenerativeModel(modelName),
		client:  client,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// SuggestCategory asks Gemini to pick one of the known categories for the
// description. The response is reduced to the first category name it names.
func (c *GeminiClient) SuggestCategory(ctx context.Context, description string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Categorize the following UK bank transaction description:
%s

Assign it to exactly one of the following categories:
%s

Respond with the category name only.`,
		description,
		strings.Join(models.AllCategories, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategoryFromResponse(responseText)
	if category == "" {
		return "", fmt.Errorf("no known category in Gemini response: %q", responseText)
	}

	c.logger.Debug("Gemini suggested category",
		logging.Field{Key: "description", Value: description},
		logging.Field{Key: "category", Value: category},
	)
	return category, nil
}

// extractCategoryFromResponse finds the first known category named in the
// model's reply, tolerating prefixes like "Category:".
func extractCategoryFromResponse(response string) string {
	lower := strings.ToLower(response)
	best := ""
	bestIdx := -1
	for _, category := range models.AllCategories {
		idx := strings.Index(lower, strings.ToLower(category))
		if idx >= 0 && (bestIdx == -1 || idx < bestIdx) {
			best = category
			bestIdx = idx
		}
	}
	return best
}
