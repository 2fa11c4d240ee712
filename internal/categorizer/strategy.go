package categorizer

import "spendly/sms-extract/internal/models"

// Input is what a strategy sees: the extracted merchant (possibly empty) and
// the lowercased message text.
type Input struct {
	Merchant  string
	LowerText string
}

// CategorizationStrategy is one step of the ordered category suggestion.
// Strategies are pure and deterministic.
type CategorizationStrategy interface {
	// Categorize returns the category and true when the strategy applies.
	Categorize(in Input) (models.Category, bool)

	// Name identifies the strategy in logs.
	Name() string
}
