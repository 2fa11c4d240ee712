package categorizer

import (
	"context"
	"fmt"
	"strings"

	"spendly/sms-extract/internal/models"
)

// AIClient asks a language model for the category of a message.
// Implementations return an error when the answer is not in the closed
// category set.
type AIClient interface {
	SuggestCategory(ctx context.Context, merchant, text string) (models.Category, error)
}

func buildPrompt(merchant, text string) string {
	names := make([]string, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		names = append(names, string(c))
	}

	var b strings.Builder
	b.WriteString("Classify this bank notification into exactly one spending category.\n")
	fmt.Fprintf(&b, "Allowed categories: %s\n", strings.Join(names, ", "))
	if merchant != "" {
		fmt.Fprintf(&b, "Merchant: %s\n", merchant)
	}
	fmt.Fprintf(&b, "Message: %s\n", text)
	b.WriteString("Answer with a single line of the form \"Category: <name>\".")
	return b.String()
}

// parseAnswer extracts a category from a model answer. Both the category
// name and its display label are accepted.
func parseAnswer(answer string) (models.Category, error) {
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.Index(strings.ToLower(line), "category:"); idx >= 0 {
			line = line[idx+len("category:"):]
		}
		line = strings.Trim(line, " \t*.\"'`")

		if c, err := models.ParseCategory(line); err == nil {
			return c, nil
		}
		for _, c := range models.AllCategories {
			if strings.EqualFold(c.Label(), line) {
				return c, nil
			}
		}
		return "", fmt.Errorf("model answered %q, not a known category", line)
	}
	return "", fmt.Errorf("empty model answer")
}
