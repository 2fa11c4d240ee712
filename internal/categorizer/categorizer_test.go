package categorizer

import (
	"errors"
	"testing"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	rules []models.CategoryRule
	err   error
}

func (s stubStore) LoadCategories() ([]models.CategoryRule, error) {
	return s.rules, s.err
}

func TestSuggest_DefaultRules(t *testing.T) {
	c := NewDefault(logging.NewMockLogger())

	tests := []struct {
		name     string
		merchant string
		text     string
		want     *models.Category
	}{
		{name: "merchant keyword", merchant: "AMAZON", text: "debited at amazon", want: models.CategoryShopping.Ptr()},
		{name: "uber eats is food before uber", merchant: "Uber Eats", text: "paid to uber eats", want: models.CategoryFood.Ptr()},
		{name: "uber alone is transport", merchant: "UBER", text: "paid to uber", want: models.CategoryTransport.Ptr()},
		{name: "merchant beats text", merchant: "Netflix", text: "netflix food plan", want: models.CategoryEntertainment.Ptr()},
		{name: "text keyword without merchant", text: "your electricity bill of rs 900 is paid", want: models.CategoryBills.Ptr()},
		{name: "atm fallback", text: "rs 2000 withdrawn from atm", want: models.CategoryOther.Ptr()},
		{name: "keyword beats atm", text: "atm near the pharmacy", want: models.CategoryHealth.Ptr()},
		{name: "text is lowercased", text: "SPOTIFY renewal", want: models.CategoryEntertainment.Ptr()},
		{name: "nothing matches", merchant: "John Doe", text: "received from john doe", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Suggest(tt.merchant, tt.text))
		})
	}
}

func TestDefaultRules_OrderAndIsolation(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 6)
	order := []models.Category{
		models.CategoryFood, models.CategoryTransport, models.CategoryShopping,
		models.CategoryBills, models.CategoryEntertainment, models.CategoryHealth,
	}
	for i, want := range order {
		assert.Equal(t, want, rules[i].Name)
	}

	rules[0].Keywords[0] = "changed"
	assert.Equal(t, "swiggy", DefaultRules()[0].Keywords[0])
}

func TestNew_ValidatesRules(t *testing.T) {
	_, err := New([]models.CategoryRule{{Name: "groceries", Keywords: []string{"coop"}}}, nil)
	assert.Error(t, err)

	_, err = New([]models.CategoryRule{{Name: models.CategoryFood, Keywords: []string{"  "}}}, nil)
	assert.Error(t, err)

	c, err := New([]models.CategoryRule{{Name: "Food", Keywords: []string{" Migros "}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryRule{{Name: models.CategoryFood, Keywords: []string{"migros"}}}, c.Rules())
	assert.Equal(t, models.CategoryFood.Ptr(), c.Suggest("MIGROS", "paid at migros"))
	assert.Nil(t, c.Suggest("AMAZON", "paid at amazon"))
}

func TestNewFromStore(t *testing.T) {
	t.Run("custom rules", func(t *testing.T) {
		store := stubStore{rules: []models.CategoryRule{{Name: models.CategoryBills, Keywords: []string{"swisscom"}}}}
		c, err := NewFromStore(store, logging.NewMockLogger())
		require.NoError(t, err)
		assert.Equal(t, models.CategoryBills.Ptr(), c.Suggest("Swisscom", ""))
	})

	t.Run("empty store falls back to defaults", func(t *testing.T) {
		c, err := NewFromStore(stubStore{}, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultRules(), c.Rules())
	})

	t.Run("nil store", func(t *testing.T) {
		c, err := NewFromStore(nil, nil)
		require.NoError(t, err)
		assert.Len(t, c.Rules(), 6)
	})

	t.Run("store error", func(t *testing.T) {
		_, err := NewFromStore(stubStore{err: errors.New("boom")}, nil)
		assert.ErrorContains(t, err, "boom")
	})
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, []string{"Merchant", "Keyword", "ATM"}, NewDefault(nil).StrategyNames())
}

func TestMerchantStrategy_LogsMatch(t *testing.T) {
	logger := logging.NewMockLogger()
	s := NewMerchantStrategy(DefaultRules(), logger)

	category, ok := s.Categorize(Input{Merchant: "Starbucks Coffee"})
	require.True(t, ok)
	assert.Equal(t, models.CategoryFood, category)
	assert.True(t, logger.HasEntry("DEBUG", "Category suggested from merchant"))

	_, ok = s.Categorize(Input{Merchant: "  "})
	assert.False(t, ok)
}
