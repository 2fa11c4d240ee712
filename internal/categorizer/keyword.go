package categorizer

import (
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
)

// KeywordStrategy matches the rule keywords against the whole message text.
type KeywordStrategy struct {
	rules  []models.CategoryRule
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over already normalized rules.
func NewKeywordStrategy(rules []models.CategoryRule, logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize looks for a rule keyword anywhere in the lowercased text.
func (s *KeywordStrategy) Categorize(in Input) (models.Category, bool) {
	if in.LowerText == "" {
		return "", false
	}

	category, keyword, ok := matchRules(s.rules, in.LowerText)
	if !ok {
		return "", false
	}

	s.logger.WithFields(
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F("keyword", keyword),
		logging.F(logging.FieldCategory, category),
	).Debug("Category suggested from message text")
	return category, true
}
