package smsparser

import (
	"fmt"
	"testing"

	"spendly/sms-extract/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantAmount   string
		wantCurrency string
		wantFound    bool
	}{
		{name: "rupee with separators", input: "Rs.1,234.56 debited", wantAmount: "1234.56", wantCurrency: models.CurrencyINR, wantFound: true},
		{name: "dollar without cents", input: "You spent $99 today", wantAmount: "99", wantCurrency: models.CurrencyUSD, wantFound: true},
		{name: "dollar with space", input: "charged $ 12.30 at UBER", wantAmount: "12.30", wantCurrency: models.CurrencyUSD, wantFound: true},
		{name: "usd prefix", input: "USD 45.10 charged", wantAmount: "45.10", wantCurrency: models.CurrencyUSD, wantFound: true},
		{name: "rupee sign", input: "₹ 250 paid to Ravi", wantAmount: "250", wantCurrency: models.CurrencyINR, wantFound: true},
		{name: "inr prefix", input: "INR 3,000 credited", wantAmount: "3000", wantCurrency: models.CurrencyINR, wantFound: true},
		{name: "euro", input: "EUR 12.50 paid", wantAmount: "12.50", wantCurrency: models.CurrencyEUR, wantFound: true},
		{name: "pound", input: "Card charged £7", wantAmount: "7", wantCurrency: models.CurrencyGBP, wantFound: true},
		{name: "dollar beats rupee", input: "Rs.500 and $20", wantAmount: "20", wantCurrency: models.CurrencyUSD, wantFound: true},
		{name: "generic fallback", input: "Txn amount of 300 done", wantAmount: "300", wantFound: true},
		{name: "generic with token", input: "bill for inr 450", wantAmount: "450", wantCurrency: models.CurrencyINR, wantFound: true},
		{name: "verb fallback", input: "A/c debited with 75.00", wantAmount: "75.00", wantFound: true},
		{name: "zero skips the family", input: "Rs.0.00 reversal for 20", wantAmount: "20", wantFound: true},
		{name: "only commas", input: "Rs., nothing", wantFound: false},
		{name: "no amount", input: "Your OTP is ready", wantFound: false},
		{name: "empty", input: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, currency, found := ExtractAmount(tt.input)
			assert.Equal(t, tt.wantFound, found)
			if !tt.wantFound {
				return
			}
			want := decimal.RequireFromString(tt.wantAmount)
			assert.True(t, want.Equal(amount), "want %s, got %s", want, amount)
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestExtractAmount_FormattedValuesRoundTrip(t *testing.T) {
	prefixes := []string{"$", "USD ", "Rs.", "Rs ", "INR ", "₹", "€", "EUR ", "£", "GBP "}
	for i := 0; i < 50; i++ {
		value := decimal.NewFromFloat(gofakeit.Price(1, 99999)).Round(2)
		for _, prefix := range prefixes {
			text := fmt.Sprintf("debited %s%s at %s", prefix, value.StringFixed(2), gofakeit.Company())
			got, _, found := ExtractAmount(text)
			if assert.True(t, found, text) {
				assert.True(t, value.Equal(got), "%s: got %s", text, got)
			}
		}
	}
}
