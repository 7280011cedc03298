package categorizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

func expense(description string) models.Transaction {
	return models.Transaction{Description: description, Type: models.TypeExpense}
}

func TestKeywordStrategyMatchesUKMerchants(t *testing.T) {
	tests := []struct {
		description string
		expected    string
	}{
		{"TESCO STORES 3324 LEEDS", models.CategoryGroceries},
		{"SAINSBURYS S/MKT WATFORD", models.CategoryGroceries},
		{"NETFLIX.COM", models.CategorySubscriptions},
		{"SPOTIFY P2EB1A2C11", models.CategorySubscriptions},
		{"PRET A MANGER LONDON", models.CategoryEatingOut},
		{"BRITISH GAS DIRECT DEBIT", models.CategoryBills},
		{"HMRC SELF ASSESSMENT", models.CategoryTax},
		{"ADMIRAL INSURANCE REF 991", models.CategoryInsurance},
		{"AMAZON WEB SERVICES EMEA", models.CategoryBusiness},
		{"AMAZON MARKETPLACE", models.CategoryShopping},
		{"TRAINLINE LONDON", models.CategoryTransport},
		{"BOOTS PHARMACY 2210", models.CategoryHealth},
		{"STANDING ORDER RENT ACCOUNT", models.CategoryTransfers},
	}

	strategy := NewKeywordStrategy(logging.GetLogger())
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			category, found, err := strategy.Categorize(context.Background(), expense(tt.description))
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestKeywordStrategyOrderDisambiguates(t *testing.T) {
	strategy := NewKeywordStrategy(logging.GetLogger())

	// "UBER EATS" must resolve as eating out before the broader "uber"
	// transport rule sees it.
	category, found, err := strategy.Categorize(context.Background(), expense("UBER EATS LONDON"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.CategoryEatingOut, category)

	category, found, err = strategy.Categorize(context.Background(), expense("UBER TRIP HELP.UBER.COM"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.CategoryTransport, category)

	// AWS is a business service even though "amazon" is a shopping keyword.
	category, found, err = strategy.Categorize(context.Background(), expense("AMAZON WEB SERVICES AWS.AMAZON.CO"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.CategoryBusiness, category)
}

func TestKeywordStrategyMissesUnknownMerchant(t *testing.T) {
	strategy := NewKeywordStrategy(logging.GetLogger())
	_, found, err := strategy.Categorize(context.Background(), expense("ZZZ UNKNOWN MERCHANT 42"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeywordStrategyDeterministic(t *testing.T) {
	strategy := NewKeywordStrategy(logging.GetLogger())
	tx := expense("MORRISONS PETROL")

	first, found, err := strategy.Categorize(context.Background(), tx)
	require.NoError(t, err)
	require.True(t, found)
	for i := 0; i < 5; i++ {
		next, _, _ := strategy.Categorize(context.Background(), tx)
		assert.Equal(t, first, next)
	}
}
