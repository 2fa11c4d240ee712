package smsparser

import (
	"strings"

	"spendly/sms-extract/internal/models"
)

// Keyword lists in priority order. The expense list is scanned completely
// before the income list.
var (
	expenseKeywords = []string{
		"debited", "debit", "paid", "spent", "withdrawn", "withdrawal", "purchase",
		"bought", "charged", "payment", "transferred to", "sent to", "used for",
		"transaction at", "pos", "atm withdrawal",
	}
	incomeKeywords = []string{
		"credited", "credit", "received", "deposited", "deposit", "refund",
		"cashback", "transferred from", "salary", "bonus",
	}
)

func firstKeyword(lower string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// ClassifyDirection classifies a message as expense, income or unknown from
// its lowercased text. Keywords match as substrings and expense keywords win
// over income keywords, so "pos" inside "deposited" makes an expense.
func ClassifyDirection(text string) models.Direction {
	lower := strings.ToLower(text)
	if _, ok := firstKeyword(lower, expenseKeywords); ok {
		return models.DirectionExpense
	}
	if _, ok := firstKeyword(lower, incomeKeywords); ok {
		return models.DirectionIncome
	}
	return models.DirectionUnknown
}
