package smsparser

import (
	"testing"
	"time"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"

	"cloud.google.com/go/civil"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSuggester struct {
	category models.Category
	merchant string
	text     string
}

func (f *fixedSuggester) Suggest(merchant, lowerText string) *models.Category {
	f.merchant = merchant
	f.text = lowerText
	return f.category.Ptr()
}

func newTestExtractor(opts ...Option) *Extractor {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewExtractor(opts...)
}

func TestParse_BankDebitScenario(t *testing.T) {
	input := "Your A/c X1234 is debited for Rs.500.00 on 09-01-26 at AMAZON. Avl Bal Rs.10,000.00"

	tx := newTestExtractor().Parse(input)

	require.True(t, tx.Amount.Valid)
	assert.True(t, decimal.RequireFromString("500.00").Equal(tx.Amount.Decimal))
	assert.Equal(t, models.CurrencyINR, tx.Currency)
	assert.Equal(t, models.DirectionExpense, tx.Direction)
	require.NotNil(t, tx.Merchant)
	assert.Equal(t, "AMAZON", *tx.Merchant)
	require.NotNil(t, tx.Date)
	assert.Equal(t, civil.Date{Year: 2026, Month: 1, Day: 9}, *tx.Date)
	assert.Equal(t, models.CategoryShopping.Ptr(), tx.SuggestedCategory)
	assert.Equal(t, models.ConfidenceHigh, tx.Confidence)
	assert.Equal(t, input, tx.RawText)
}

func TestParse_TransferFromScenario(t *testing.T) {
	tx := newTestExtractor().Parse("$1,500.00 transferred from your account to John Doe")

	require.True(t, tx.Amount.Valid)
	assert.True(t, decimal.NewFromInt(1500).Equal(tx.Amount.Decimal))
	assert.Equal(t, models.CurrencyUSD, tx.Currency)
	assert.Equal(t, models.DirectionIncome, tx.Direction)
	assert.Equal(t, "John Doe", tx.MerchantName())
	assert.Nil(t, tx.Date)
	assert.Nil(t, tx.SuggestedCategory)
	assert.Equal(t, models.ConfidenceHigh, tx.Confidence)
}

func TestParse_NothingFound(t *testing.T) {
	tx := newTestExtractor().Parse("  Hello there, see you tomorrow  ")

	assert.False(t, tx.Amount.Valid)
	assert.Empty(t, tx.Currency)
	assert.Equal(t, models.DirectionUnknown, tx.Direction)
	assert.Nil(t, tx.Merchant)
	assert.Nil(t, tx.Date)
	assert.Nil(t, tx.SuggestedCategory)
	assert.Equal(t, models.ConfidenceLow, tx.Confidence)
	assert.Equal(t, "Hello there, see you tomorrow", tx.RawText)
	assert.False(t, tx.IsActionable())
}

func TestParse_YearlessDateUsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2031, time.June, 1, 0, 0, 0, 0, time.UTC) }
	tx := NewExtractor(WithClock(clock)).Parse("Rs.250 paid at Starbucks on 05 Mar")

	require.NotNil(t, tx.Date)
	assert.Equal(t, civil.Date{Year: 2031, Month: 3, Day: 5}, *tx.Date)
	assert.Equal(t, models.CategoryFood.Ptr(), tx.SuggestedCategory)
}

func TestParse_UsesInjectedCategorizer(t *testing.T) {
	s := &fixedSuggester{category: models.CategoryBills}
	tx := newTestExtractor(WithCategorizer(s)).Parse("Rs.900 paid to Tata Power on 01-02-26")

	assert.Equal(t, models.CategoryBills.Ptr(), tx.SuggestedCategory)
	assert.Equal(t, "Tata Power", s.merchant)
	assert.Equal(t, "rs.900 paid to tata power on 01-02-26", s.text)
}

func TestParse_LogsAtDebug(t *testing.T) {
	logger := logging.NewMockLogger()
	newTestExtractor(WithLogger(logger)).Parse("Rs.500 debited at AMAZON")

	entries := logger.EntriesByLevel("DEBUG")
	require.NotEmpty(t, entries)
	assert.Equal(t, "Parsed message", entries[len(entries)-1].Message)
}

func TestParseMultiple_MatchesIndividualParses(t *testing.T) {
	e := newTestExtractor()
	msgA := "Your A/c X1234 is debited for Rs.500.00 on 09-01-26 at AMAZON"
	msgB := "Rs.1,200 credited to your account from Ravi Kumar"

	results := e.ParseMultiple(msgA + "\n\n" + msgB)

	require.Len(t, results, 2)
	assert.Equal(t, e.Parse(msgA), results[0])
	assert.Equal(t, e.Parse(msgB), results[1])
}

func TestParseMultiple_SplitsAtAlert(t *testing.T) {
	results := newTestExtractor().ParseMultiple(
		"Your account ending 1234 was debited Rs.200 Alert: Card ending 5678 used for $50.00 at UBER")

	require.Len(t, results, 2)
	assert.True(t, decimal.NewFromInt(200).Equal(results[0].Amount.Decimal))
	assert.Equal(t, models.CurrencyINR, results[0].Currency)
	assert.True(t, decimal.NewFromInt(50).Equal(results[1].Amount.Decimal))
	assert.Equal(t, "UBER", results[1].MerchantName())
	assert.Equal(t, models.CategoryTransport.Ptr(), results[1].SuggestedCategory)
}

func TestParseMultiple_SplitsRunOnMessages(t *testing.T) {
	results := newTestExtractor().ParseMultiple(
		"Rs.500 debited at AMAZON Your A/c XX99 credited with Rs.200 by NEFT")

	require.Len(t, results, 2)
	assert.Equal(t, "AMAZON", results[0].MerchantName())
	assert.Equal(t, models.DirectionExpense, results[0].Direction)
	assert.True(t, decimal.NewFromInt(200).Equal(results[1].Amount.Decimal))
	assert.Equal(t, models.DirectionIncome, results[1].Direction)
}

func TestParseMultiple_DropsShortInput(t *testing.T) {
	assert.Empty(t, newTestExtractor().ParseMultiple("Rs.5 paid"))
	assert.Empty(t, ParseMultiple("   \n\n  "))
}

func TestParseAll_StopsEarly(t *testing.T) {
	var got []models.ParsedTransaction
	for tx := range newTestExtractor().ParseAll("Rs.100 paid at KFC today\n\nRs.200 paid at Subway today") {
		got = append(got, tx)
		break
	}
	require.Len(t, got, 1)
	assert.Equal(t, "KFC today", got[0].MerchantName())
}

func TestPackageLevelFunctions(t *testing.T) {
	tx := Parse("Rs.500 debited at AMAZON")
	assert.Equal(t, models.DirectionExpense, tx.Direction)

	var n int
	for range ParseAll("Rs.500 debited at AMAZON\n\nRs.100 credited from Ravi") {
		n++
	}
	assert.Equal(t, 2, n)
	assert.True(t, newTestExtractor().IsTransactionSMS("Rs.500 debited at AMAZON"))
}

func TestParse_NeverPanicsOnArbitraryText(t *testing.T) {
	e := newTestExtractor()
	inputs := []string{"", "   ", "\x00\xff\xfe", "Rs.", "$", "at", "₹₹₹", "31/31/31", "Jan 99, 0000"}
	for i := 0; i < 200; i++ {
		inputs = append(inputs,
			gofakeit.Sentence(12),
			gofakeit.Numerify("Rs.###,###.## debited on ##-##-## at ")+gofakeit.Company(),
			gofakeit.Sentence(8)+"\n\n"+gofakeit.Sentence(6),
		)
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() {
			tx := e.Parse(input)
			assert.Contains(t, models.Confidences, tx.Confidence)
			assert.NotEmpty(t, tx.Direction)
			for range e.ParseAll(input) {
			}
		}, input)
	}
}

func TestExtractor_At(t *testing.T) {
	base := newTestExtractor()
	received := time.Date(2024, time.December, 30, 9, 0, 0, 0, time.UTC)

	tx := base.At(received).Parse("Rs.250 paid at Starbucks on 05 Mar")
	require.NotNil(t, tx.Date)
	assert.Equal(t, 2024, tx.Date.Year)

	tx = base.Parse("Rs.250 paid at Starbucks on 05 Mar")
	require.NotNil(t, tx.Date)
	assert.Equal(t, fixedNow.Year(), tx.Date.Year, "the original extractor keeps its clock")
}

func TestExtractor_Suggest(t *testing.T) {
	e := newTestExtractor()
	assert.Equal(t, models.CategoryFood.Ptr(), e.Suggest("", "Dinner at a RESTAURANT"))
	assert.Equal(t, models.CategoryEntertainment.Ptr(), e.Suggest("Netflix", ""))
	assert.Nil(t, e.Suggest("", "nothing to see"))
}
