package categorizer

import (
	"fmt"
	"strings"

	"spendly/sms-extract/internal/models"
)

// DefaultRules returns the built-in category priority list. Rules are tried
// in slice order and keywords within a rule in slice order, so "uber eats"
// (food) is seen before "uber" (transport). Each call returns a fresh copy.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{
			Name: models.CategoryFood,
			Keywords: []string{
				"swiggy", "zomato", "uber eats", "doordash", "grubhub", "mcdonalds",
				"starbucks", "dominos", "pizza hut", "kfc", "subway", "restaurant",
				"cafe", "diner", "food",
			},
		},
		{
			Name: models.CategoryTransport,
			Keywords: []string{
				"uber", "lyft", "ola", "grab", "taxi", "metro", "bus", "fuel",
				"petrol", "gas station", "shell", "chevron", "parking",
			},
		},
		{
			Name: models.CategoryShopping,
			Keywords: []string{
				"amazon", "flipkart", "walmart", "target", "ebay", "bestbuy",
				"costco", "ikea", "mall", "store",
			},
		},
		{
			Name: models.CategoryBills,
			Keywords: []string{
				"electric", "electricity", "water bill", "gas bill", "internet",
				"wifi", "broadband", "phone bill", "mobile recharge", "insurance", "rent",
			},
		},
		{
			Name: models.CategoryEntertainment,
			Keywords: []string{
				"netflix", "spotify", "disney", "hulu", "prime video", "youtube",
				"cinema", "movie", "theater", "gaming", "playstation", "xbox", "steam",
			},
		},
		{
			Name: models.CategoryHealth,
			Keywords: []string{
				"pharmacy", "hospital", "clinic", "doctor", "medical", "medicine",
				"drug store", "cvs", "walgreens", "gym", "fitness",
			},
		},
	}
}

// NormalizeRules validates rules loaded from outside and returns a private,
// lowercased copy. Every rule must name a category of the closed set and
// carry at least one non-blank keyword.
func NormalizeRules(rules []models.CategoryRule) ([]models.CategoryRule, error) {
	out := make([]models.CategoryRule, 0, len(rules))
	for i, rule := range rules {
		name, err := models.ParseCategory(string(rule.Name))
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}

		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, name)
		}

		out = append(out, models.CategoryRule{Name: name, Keywords: keywords})
	}
	return out, nil
}

// matchRules returns the category of the first keyword contained in s.
func matchRules(rules []models.CategoryRule, s string) (models.Category, string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(s, kw) {
				return rule.Name, kw, true
			}
		}
	}
	return "", "", false
}
