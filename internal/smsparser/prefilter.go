package smsparser

import (
	"strings"

	"spendly/sms-extract/internal/textutils"
)

// account-context words that mark a financial message on their own
var accountKeywords = []string{"transaction", "txn", "a/c", "account", "balance", "bal"}

// IsTransactionSMS reports whether text looks like a bank transaction
// message: some amount pattern matches and the text mentions a direction
// keyword or an account-context word. The parse functions never call it;
// callers use it to discard unrelated text up front.
func IsTransactionSMS(text string) bool {
	normalized := textutils.Normalize(text)
	if !hasAmountPattern(normalized) {
		return false
	}

	lower := strings.ToLower(normalized)
	if _, ok := firstKeyword(lower, expenseKeywords); ok {
		return true
	}
	if _, ok := firstKeyword(lower, incomeKeywords); ok {
		return true
	}
	for _, kw := range accountKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
