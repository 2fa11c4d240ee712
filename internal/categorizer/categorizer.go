// Package categorizer suggests a spending category for a parsed message.
//
// Suggestion runs an ordered list of strategies: the rule keywords against
// the merchant, the same keywords against the whole message, then an ATM
// fallback. The first strategy that matches wins. Rules are read-only once a
// Categorizer is built, so a Categorizer is safe for concurrent use.
//
// An optional Enricher asks Gemini for a category when none of the rules
// matched. It is kept separate so the rule-based path stays deterministic.
package categorizer

import (
	"fmt"
	"strings"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
)

// RuleStore loads category rules from persistent storage.
type RuleStore interface {
	LoadCategories() ([]models.CategoryRule, error)
}

// Categorizer runs the category strategies in priority order.
type Categorizer struct {
	rules      []models.CategoryRule
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// New creates a Categorizer over the given rules. Rule names must belong to
// the closed category set; keywords are lowercased.
func New(rules []models.CategoryRule, logger logging.Logger) (*Categorizer, error) {
	normalized, err := NormalizeRules(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid category rules: %w", err)
	}
	return newCategorizer(normalized, logger), nil
}

// NewDefault creates a Categorizer over DefaultRules.
func NewDefault(logger logging.Logger) *Categorizer {
	return newCategorizer(DefaultRules(), logger)
}

// NewFromStore loads rules from store. An empty rule list falls back to
// DefaultRules.
func NewFromStore(store RuleStore, logger logging.Logger) (*Categorizer, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if store == nil {
		return NewDefault(logger), nil
	}

	rules, err := store.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}
	if len(rules) == 0 {
		logger.Debug("No category rules configured, using built-in rules")
		return NewDefault(logger), nil
	}

	c, err := New(rules, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded category rules", logging.F(logging.FieldCount, len(c.rules)))
	return c, nil
}

func newCategorizer(rules []models.CategoryRule, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Categorizer{
		rules: rules,
		strategies: []CategorizationStrategy{
			NewMerchantStrategy(rules, logger),
			NewKeywordStrategy(rules, logger),
			ATMStrategy{},
		},
		logger: logger,
	}
}

// Suggest returns the category for a merchant (possibly empty) and the
// message text, or nil when no strategy matches.
func (c *Categorizer) Suggest(merchant, lowerText string) *models.Category {
	in := Input{Merchant: merchant, LowerText: strings.ToLower(lowerText)}
	for _, strategy := range c.strategies {
		if category, ok := strategy.Categorize(in); ok {
			return category.Ptr()
		}
	}
	return nil
}

// Rules returns a copy of the active rule list.
func (c *Categorizer) Rules() []models.CategoryRule {
	out := make([]models.CategoryRule, len(c.rules))
	for i, rule := range c.rules {
		out[i] = models.CategoryRule{Name: rule.Name, Keywords: append([]string(nil), rule.Keywords...)}
	}
	return out
}

// StrategyNames lists the strategies in the order they run.
func (c *Categorizer) StrategyNames() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}
