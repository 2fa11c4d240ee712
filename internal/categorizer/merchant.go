package categorizer

import (
	"strings"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
)

// MerchantStrategy matches the rule keywords against the extracted merchant.
type MerchantStrategy struct {
	rules  []models.CategoryRule
	logger logging.Logger
}

// NewMerchantStrategy creates a MerchantStrategy over already normalized rules.
func NewMerchantStrategy(rules []models.CategoryRule, logger logging.Logger) *MerchantStrategy {
	return &MerchantStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *MerchantStrategy) Name() string {
	return "Merchant"
}

// Categorize looks for a rule keyword inside the lowercased merchant.
func (s *MerchantStrategy) Categorize(in Input) (models.Category, bool) {
	merchant := strings.ToLower(strings.TrimSpace(in.Merchant))
	if merchant == "" {
		return "", false
	}

	category, keyword, ok := matchRules(s.rules, merchant)
	if !ok {
		return "", false
	}

	s.logger.WithFields(
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldMerchant, in.Merchant),
		logging.F("keyword", keyword),
		logging.F(logging.FieldCategory, category),
	).Debug("Category suggested from merchant")
	return category, true
}
