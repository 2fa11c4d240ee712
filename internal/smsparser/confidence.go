package smsparser

import "spendly/sms-extract/internal/models"

// Points per populated field and the fixed tier thresholds.
const (
	amountPoints    = 2
	directionPoints = 1
	merchantPoints  = 1

	highConfidenceScore   = 3
	mediumConfidenceScore = 2
)

// ScoreConfidence maps the populated fields onto a confidence tier: amount
// is worth 2 points, a known direction and a merchant 1 point each; 3 or more
// is high, 2 is medium, anything else low.
func ScoreConfidence(hasAmount, hasDirection, hasMerchant bool) models.Confidence {
	score := 0
	if hasAmount {
		score += amountPoints
	}
	if hasDirection {
		score += directionPoints
	}
	if hasMerchant {
		score += merchantPoints
	}

	switch {
	case score >= highConfidenceScore:
		return models.ConfidenceHigh
	case score == mediumConfidenceScore:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
