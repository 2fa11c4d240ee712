// Package parse implements the parse command, which extracts transactions from
// one input and renders them.
package parse

import (
	"context"
	"fmt"
	"io"

	"spendly/sms-extract/cmd/common"
	"spendly/sms-extract/cmd/root"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/pipeline"
	"spendly/sms-extract/internal/source"
	"spendly/sms-extract/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the inputs of one parse run.
type Options struct {
	Input  common.Input
	Output string
	// Format is empty to use the configured output format.
	Format         string
	Drafts         bool
	ActionableOnly bool
	Prefilter      bool
	AI             bool
}

var (
	text           string
	sourceKind     string
	address        string
	drafts         bool
	actionableOnly bool
	prefilter      bool
	useAI          bool
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract transactions from SMS messages",
	Long: `Extract transactions from SMS messages.

The input is the --text flag, the --input file or stdin, in that order. Plain text
inputs may hold several messages, separated by blank lines or run together where a
new bank template ("Your A/c", "Dear Customer", "Alert:") starts.
XML inputs are SMS Backup & Restore exports; HTML inputs are saved notification pages.

Examples:
  sms-extract parse --text "Rs.500 debited from A/c X1234 at AMAZON on 09-01-2026"
  sms-extract parse -i backup.xml --address hdfc --actionable-only -f csv -o out.csv
  pbpaste | sms-extract parse --prefilter --drafts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		opts := Options{
			Input: common.Input{
				Text:    text,
				File:    root.SharedFlags.Input,
				Stdin:   cmd.InOrStdin(),
				Source:  sourceKind,
				Options: source.Options{AddressFilter: address},
			},
			Output:         root.SharedFlags.Output,
			Format:         root.SharedFlags.Format,
			Drafts:         drafts,
			ActionableOnly: actionableOnly || c.GetConfig().Output.ActionableOnly,
			Prefilter:      prefilter,
			AI:             useAI,
		}
		return Run(cmd.Context(), c, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Message text to parse instead of a file")
	Cmd.Flags().StringVarP(&sourceKind, "source", "s", "auto", "Input type: auto, text, xml or html")
	Cmd.Flags().StringVar(&address, "address", "", "Only keep XML messages whose sender contains this value")
	Cmd.Flags().BoolVar(&drafts, "drafts", false, "Render transaction drafts instead of parse results (json or yaml)")
	Cmd.Flags().BoolVar(&actionableOnly, "actionable-only", false, "Drop results with neither an amount nor a direction")
	Cmd.Flags().BoolVar(&prefilter, "prefilter", false, "Skip messages that do not look like bank notifications")
	Cmd.Flags().BoolVar(&useAI, "ai", false, "Ask Gemini for categories the rules could not find")
}

// Run reads the input, extracts the transactions and renders them.
func Run(ctx context.Context, c *container.Container, opts Options, stdout io.Writer) error {
	logger := c.GetLogger().WithField(logging.FieldOperation, "parse")

	if opts.Format != "" {
		if err := validation.IsValidOutputFormat(opts.Format); err != nil {
			return err
		}
	}
	generator, err := c.NewReportGenerator(opts.Format, opts.Drafts)
	if err != nil {
		return err
	}

	messages, err := common.ReadMessages(opts.Input, logger)
	if err != nil {
		return err
	}

	p := c.GetPipeline()
	if opts.AI && !p.CanEnrich() {
		logger.Warn("AI categorization requested but not configured; set ai.enabled and GEMINI_API_KEY")
	}

	res, err := p.Run(ctx, messages, pipeline.Options{
		Prefilter:      opts.Prefilter,
		ActionableOnly: opts.ActionableOnly,
		Enrich:         opts.AI,
	})
	if err != nil {
		return err
	}

	w, closeOutput, err := common.OpenOutput(opts.Output, stdout)
	if err != nil {
		return err
	}
	if err := generator.Render(w, res.Transactions); err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	logger.Info("Parsed messages",
		logging.F("messages", res.Messages),
		logging.F(logging.FieldSegments, res.Segments),
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F("dropped", res.Dropped),
		logging.F("enriched", res.Enriched))
	return nil
}
