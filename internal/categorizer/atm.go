package categorizer

import (
	"strings"

	"spendly/sms-extract/internal/models"
)

// ATMStrategy files cash withdrawals under "other" when nothing more
// specific matched.
type ATMStrategy struct{}

// Name returns the name of this strategy for logging and debugging.
func (ATMStrategy) Name() string {
	return "ATM"
}

// Categorize returns other when the text mentions an ATM.
func (ATMStrategy) Categorize(in Input) (models.Category, bool) {
	if strings.Contains(in.LowerText, "atm") {
		return models.CategoryOther, true
	}
	return "", false
}
