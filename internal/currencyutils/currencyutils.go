// Package currencyutils provides the currency and decimal helpers used by
// amount extraction and output formatting.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CodeForToken maps a currency token as it appears in a message ("$", "Rs.",
// "₹", "eur", ...) onto an ISO 4217 code. Unknown tokens map to "".
func CodeForToken(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.TrimSuffix(t, ".")
	switch t {
	case "$", "usd":
		return "USD"
	case "rs", "inr", "₹":
		return "INR"
	case "€", "eur":
		return "EUR"
	case "£", "gbp":
		return "GBP"
	default:
		return ""
	}
}

// ParseAmount parses a captured amount such as "1,234.56". Thousands
// separators are commas; the decimal separator is a dot.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': no digits", s)
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", s, err)
	}
	return amount, nil
}

// FormatAmount renders an amount with two decimals and the currency symbol
// when one is known, e.g. "₹500.00", "$1500.00", "12.00".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	switch strings.ToUpper(currency) {
	case "USD":
		return "$" + formatted
	case "INR":
		return "₹" + formatted
	case "EUR":
		return "€" + formatted
	case "GBP":
		return "£" + formatted
	case "":
		return formatted
	default:
		return currency + " " + formatted
	}
}
