// Package categorize handles category suggestion commands
package categorize

import (
	"context"
	"fmt"
	"io"

	"spendly/sms-extract/cmd/root"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/store"

	"github.com/spf13/cobra"
)

// Options are the inputs of one categorize run.
type Options struct {
	Merchant    string
	Text        string
	AI          bool
	ExportRules string
	List        bool
}

var opts Options

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Suggest a category for a merchant or message",
	Long: `Suggest a spending category for a merchant name and/or message text using the
keyword rules (categories.yaml or the built-in list). With --ai, Gemini is asked
when no rule matches.

The command can also print the active rules (--list) or write them to a YAML file
(--export-rules) as a starting point for a custom categories file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return Run(cmd.Context(), c, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Merchant, "merchant", "m", "", "Merchant name to categorize")
	Cmd.Flags().StringVarP(&opts.Text, "text", "t", "", "Message text to categorize")
	Cmd.Flags().BoolVar(&opts.AI, "ai", false, "Ask Gemini when no rule matches")
	Cmd.Flags().StringVar(&opts.ExportRules, "export-rules", "", "Write the active rules to this YAML file")
	Cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "Print the active rules")
}

// Run executes the categorize command.
func Run(ctx context.Context, c *container.Container, opts Options, out io.Writer) error {
	logger := c.GetLogger().WithField(logging.FieldOperation, "categorize")
	rules := c.GetCategorizer().Rules()

	if opts.ExportRules != "" {
		if err := store.NewCategoryStore(opts.ExportRules, logger).SaveCategories(rules); err != nil {
			return err
		}
		logger.Info("Exported category rules",
			logging.F(logging.FieldFile, opts.ExportRules),
			logging.F(logging.FieldCount, len(rules)))
	}

	if opts.List {
		for _, rule := range rules {
			if _, err := fmt.Fprintf(out, "%-14s %d keywords\n", rule.Name, len(rule.Keywords)); err != nil {
				return err
			}
		}
	}

	if opts.Merchant == "" && opts.Text == "" {
		if opts.ExportRules == "" && !opts.List {
			return fmt.Errorf("either --merchant or --text is required")
		}
		return nil
	}

	category := c.GetPipeline().Suggest(opts.Merchant, opts.Text)
	strategy := "rules"
	if category == nil && opts.AI {
		ai := c.GetAIClient()
		if ai == nil {
			logger.Warn("AI categorization requested but not configured; set ai.enabled and GEMINI_API_KEY")
		} else {
			suggested, err := ai.SuggestCategory(ctx, opts.Merchant, opts.Text)
			if err != nil {
				return fmt.Errorf("AI categorization failed: %w", err)
			}
			category = suggested.Ptr()
			strategy = "ai"
		}
	}

	if category == nil {
		_, err := fmt.Fprintln(out, "none")
		return err
	}

	logger.Debug("Category suggested",
		logging.F(logging.FieldMerchant, opts.Merchant),
		logging.F(logging.FieldCategory, string(*category)),
		logging.F(logging.FieldStrategy, strategy))
	_, err := fmt.Fprintf(out, "%s (%s)\n", *category, category.Label())
	return err
}
