package smsparser

import (
	"regexp"

	"spendly/sms-extract/internal/currencyutils"
	"spendly/sms-extract/internal/models"

	"github.com/shopspring/decimal"
)

// number with optional thousands commas and an optional two-digit fraction
const amountNumber = `([\d,]+(?:\.\d{2})?)`

// currency token accepted by the generic and verb-anchored families
const currencyToken = `(rs\.?|inr|usd|\$|₹|€|£)?`

// amountPattern is one family of the ordered amount patterns. The number is
// always the last capture group. When currency is empty the code is derived
// from the optional token group (group 1), if any.
type amountPattern struct {
	name     string
	re       *regexp.Regexp
	currency string
	hasToken bool
}

var amountPatterns = []amountPattern{
	{name: "dollar_sign", re: regexp.MustCompile(`\$\s*` + amountNumber), currency: models.CurrencyUSD},
	{name: "usd", re: regexp.MustCompile(`(?i)\bUSD\s*` + amountNumber), currency: models.CurrencyUSD},
	{name: "rupee", re: regexp.MustCompile(`(?i)(?:\bRs\.?|\bINR|₹)\s*` + amountNumber), currency: models.CurrencyINR},
	{name: "euro", re: regexp.MustCompile(`(?i)(?:€|\bEUR)\s*` + amountNumber), currency: models.CurrencyEUR},
	{name: "pound", re: regexp.MustCompile(`(?i)(?:£|\bGBP)\s*` + amountNumber), currency: models.CurrencyGBP},
	{
		name:     "generic",
		re:       regexp.MustCompile(`(?i)\b(?:amount|amt|for|of)\s*` + currencyToken + `\s*` + amountNumber),
		hasToken: true,
	},
	{
		name: "verb",
		re: regexp.MustCompile(`(?i)\b(?:debited|credited|paid|received|withdrawn|transferred)\s*` +
			`(?:(?:for|of|with)\b\s*)?` + currencyToken + `\s*` + amountNumber),
		hasToken: true,
	},
}

type amountMatch struct {
	value    decimal.Decimal
	currency string
	family   string
}

// ExtractAmount returns the first positive amount found by the ordered
// pattern families, with the ISO currency code the family implies ("" when
// unknown). Only the first match of each family is considered; a family whose
// match does not parse to a positive number is skipped.
func ExtractAmount(text string) (decimal.Decimal, string, bool) {
	m, ok := extractAmount(text)
	if !ok {
		return decimal.Zero, "", false
	}
	return m.value, m.currency, true
}

func extractAmount(text string) (amountMatch, bool) {
	for _, p := range amountPatterns {
		groups := p.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}

		value, err := currencyutils.ParseAmount(groups[len(groups)-1])
		if err != nil || !value.IsPositive() {
			continue
		}

		currency := p.currency
		if p.hasToken {
			currency = currencyutils.CodeForToken(groups[1])
		}
		return amountMatch{value: value, currency: currency, family: p.name}, true
	}
	return amountMatch{}, false
}

// hasAmountPattern reports whether any amount family matches, regardless of
// the captured value.
func hasAmountPattern(text string) bool {
	for _, p := range amountPatterns {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}
