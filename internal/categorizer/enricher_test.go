package categorizer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAIClient struct {
	mu       sync.Mutex
	calls    []string
	suggestF func(ctx context.Context, merchant, text string) (models.Category, error)
}

func (m *mockAIClient) SuggestCategory(ctx context.Context, merchant, text string) (models.Category, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if m.suggestF != nil {
		return m.suggestF(ctx, merchant, text)
	}
	return models.CategoryOther, nil
}

func amountTx(text string) models.ParsedTransaction {
	return models.ParsedTransaction{
		Amount:    decimal.NewNullDecimal(decimal.NewFromInt(10)),
		Direction: models.DirectionExpense,
		RawText:   text,
	}
}

func TestEnricher_FillsOnlyMissingCategories(t *testing.T) {
	client := &mockAIClient{}
	e := NewEnricher(client, 6000, time.Second, logging.NewMockLogger())

	categorized := amountTx("already categorized")
	categorized.SuggestedCategory = models.CategoryFood.Ptr()
	noise := models.ParsedTransaction{Direction: models.DirectionUnknown, RawText: "hello there friend"}

	txs := []models.ParsedTransaction{amountTx("first"), categorized, noise, amountTx("second")}
	n := e.Enrich(context.Background(), txs)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first", "second"}, client.calls)
	assert.Equal(t, models.CategoryOther.Ptr(), txs[0].SuggestedCategory)
	assert.Equal(t, models.CategoryFood.Ptr(), txs[1].SuggestedCategory)
	assert.Nil(t, txs[2].SuggestedCategory)
	assert.Equal(t, models.CategoryOther.Ptr(), txs[3].SuggestedCategory)
}

func TestEnricher_ErrorsLeaveCategoryNil(t *testing.T) {
	logger := logging.NewMockLogger()
	client := &mockAIClient{suggestF: func(context.Context, string, string) (models.Category, error) {
		return "", errors.New("quota exceeded")
	}}
	e := NewEnricher(client, 6000, 0, logger)

	txs := []models.ParsedTransaction{amountTx("one")}
	assert.Equal(t, 0, e.Enrich(context.Background(), txs))
	assert.Nil(t, txs[0].SuggestedCategory)
	assert.NotEmpty(t, logger.EntriesByLevel("WARN"))
}

func TestEnricher_AppliesTimeout(t *testing.T) {
	client := &mockAIClient{suggestF: func(ctx context.Context, _, _ string) (models.Category, error) {
		_, hasDeadline := ctx.Deadline()
		if !hasDeadline {
			return "", errors.New("no deadline")
		}
		return models.CategoryBills, nil
	}}
	e := NewEnricher(client, 6000, time.Second, nil)

	txs := []models.ParsedTransaction{amountTx("bill")}
	require.Equal(t, 1, e.Enrich(context.Background(), txs))
	assert.Equal(t, models.CategoryBills.Ptr(), txs[0].SuggestedCategory)
}

func TestEnricher_StopsOnCancelledContext(t *testing.T) {
	client := &mockAIClient{}
	e := NewEnricher(client, 1, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txs := []models.ParsedTransaction{amountTx("one"), amountTx("two")}
	assert.Equal(t, 0, e.Enrich(ctx, txs))
	assert.Empty(t, client.calls)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		want    models.Category
		wantErr bool
	}{
		{name: "prefixed", answer: "Category: food", want: models.CategoryFood},
		{name: "bare", answer: "transport\n", want: models.CategoryTransport},
		{name: "label", answer: "Category: **Fun**", want: models.CategoryEntertainment},
		{name: "leading blank lines", answer: "\n\n  Category: Health.", want: models.CategoryHealth},
		{name: "unknown", answer: "Category: Groceries", wantErr: true},
		{name: "empty", answer: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswer(tt.answer)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("AMAZON", "debited at AMAZON")
	assert.Contains(t, p, "food, transport, bills, shopping, entertainment, health, other")
	assert.Contains(t, p, "Merchant: AMAZON")
	assert.Contains(t, p, "Message: debited at AMAZON")

	assert.NotContains(t, buildPrompt("", "x"), "Merchant:")
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "", nil)
	assert.Error(t, err)
}
