package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeForToken(t *testing.T) {
	tests := map[string]string{
		"$":   "USD",
		"USD": "USD",
		"Rs.": "INR",
		"rs":  "INR",
		"INR": "INR",
		"₹":   "INR",
		"€":   "EUR",
		"eur": "EUR",
		"£":   "GBP",
		"GBP": "GBP",
		"":    "",
		"CHF": "",
		" $ ": "USD",
	}
	for token, want := range tests {
		assert.Equal(t, want, CodeForToken(token), "token %q", token)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "500", want: "500"},
		{name: "decimals", input: "500.00", want: "500"},
		{name: "thousands", input: "1,234.56", want: "1234.56"},
		{name: "indian grouping", input: "1,00,000", want: "100000"},
		{name: "only commas", input: ",,", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.RequireFromString("1500")
	assert.Equal(t, "$1500.00", FormatAmount(amount, "USD"))
	assert.Equal(t, "₹1500.00", FormatAmount(amount, "inr"))
	assert.Equal(t, "€1500.00", FormatAmount(amount, "EUR"))
	assert.Equal(t, "£1500.00", FormatAmount(amount, "GBP"))
	assert.Equal(t, "1500.00", FormatAmount(amount, ""))
	assert.Equal(t, "CHF 1500.00", FormatAmount(amount, "CHF"))
}
