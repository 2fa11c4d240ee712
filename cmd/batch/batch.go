// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"

	"spendly/sms-extract/cmd/root"
	"spendly/sms-extract/internal/batch"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/pipeline"
	"spendly/sms-extract/internal/source"
	"spendly/sms-extract/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the inputs of one batch run.
type Options struct {
	InputDir  string
	OutputDir string
	Format    string
	Batch     batch.Options
}

var (
	workers        int
	failFast       bool
	sourceKind     string
	address        string
	actionableOnly bool
	prefilter      bool
	useAI          bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process files from a directory",
	Long: `Batch process files from an input directory and write one report per file to another directory.

Files ending in .txt, .sms, .xml, .html or .htm are picked up; the input type is
detected from the extension unless --source is given. Files are processed in
parallel and a summary is printed at the end. A file that cannot be read is
reported without stopping the others unless --fail-fast is set.

Example:
  sms-extract batch -i exports/ -o reports/ -f csv --actionable-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		opts := Options{
			InputDir:  root.SharedFlags.Input,
			OutputDir: root.SharedFlags.Output,
			Format:    root.SharedFlags.Format,
			Batch: batch.Options{
				Workers:       workers,
				FailFast:      failFast,
				Source:        sourceKind,
				SourceOptions: source.Options{AddressFilter: address},
				Pipeline: pipeline.Options{
					Prefilter:      prefilter,
					ActionableOnly: actionableOnly || c.GetConfig().Output.ActionableOnly,
					Enrich:         useAI,
				},
			},
		}
		return Run(cmd.Context(), c, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files processed in parallel (default from config)")
	Cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first file that fails")
	Cmd.Flags().StringVarP(&sourceKind, "source", "s", models.SourceAuto, "Input type: auto, text, xml or html")
	Cmd.Flags().StringVar(&address, "address", "", "Only keep XML messages whose sender contains this value")
	Cmd.Flags().BoolVar(&actionableOnly, "actionable-only", false, "Drop results with neither an amount nor a direction")
	Cmd.Flags().BoolVar(&prefilter, "prefilter", false, "Skip messages that do not look like bank notifications")
	Cmd.Flags().BoolVar(&useAI, "ai", false, "Ask Gemini for categories the rules could not find")

	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

// Run processes every supported file of the input directory and prints the
// summary. It fails when any file failed.
func Run(ctx context.Context, c *container.Container, opts Options, out io.Writer) error {
	logger := c.GetLogger().WithField(logging.FieldOperation, "batch")

	if opts.InputDir == "" || opts.OutputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}
	if err := validation.IsValidDirectory(opts.InputDir); err != nil {
		return err
	}
	if opts.Batch.Source != "" {
		if err := validation.IsValidSource(opts.Batch.Source); err != nil {
			return err
		}
	}
	if opts.Format != "" {
		if err := validation.IsValidOutputFormat(opts.Format); err != nil {
			return err
		}
	}
	if opts.Batch.Pipeline.Enrich && !c.GetPipeline().CanEnrich() {
		logger.Warn("AI categorization requested but not configured; set ai.enabled and GEMINI_API_KEY")
	}

	processor, err := c.NewBatchProcessor(opts.Format, opts.Batch)
	if err != nil {
		return err
	}

	stats, runErr := processor.ProcessDir(ctx, opts.InputDir, opts.OutputDir)
	if stats != nil {
		if err := stats.WriteSummary(out); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("batch processing stopped: %w", runErr)
	}
	if len(stats.Failures) > 0 {
		return fmt.Errorf("%d of %d files failed", len(stats.Failures), stats.Files)
	}
	return nil
}
