// Package report renders parse results in the supported output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"spendly/sms-extract/internal/common"
	"spendly/sms-extract/internal/currencyutils"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
)

// Options configures a Generator.
type Options struct {
	Format string
	CSV    common.CSVOptions
	// Drafts renders transaction-creation drafts instead of raw results.
	Drafts bool
}

// Generator renders transactions to a writer.
type Generator struct {
	opts   Options
	logger logging.Logger
}

// NewGenerator creates a Generator. An empty format means json.
func NewGenerator(opts Options, logger logging.Logger) (*Generator, error) {
	if opts.Format == "" {
		opts.Format = models.FormatJSON
	}
	switch opts.Format {
	case models.FormatJSON, models.FormatYAML:
	case models.FormatCSV, models.FormatText:
		if opts.Drafts {
			return nil, fmt.Errorf("drafts are only available as %s or %s, not %s",
				models.FormatJSON, models.FormatYAML, opts.Format)
		}
	default:
		return nil, fmt.Errorf("unsupported report format: %s", opts.Format)
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{
		opts:   opts,
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
	}, nil
}

// Format returns the output format.
func (g *Generator) Format() string {
	return g.opts.Format
}

// Extension returns the file extension matching the output format.
func (g *Generator) Extension() string {
	if g.opts.Format == models.FormatText {
		return ".txt"
	}
	return "." + g.opts.Format
}

// Render writes txs in the configured format.
func (g *Generator) Render(w io.Writer, txs []models.ParsedTransaction) error {
	if txs == nil {
		txs = []models.ParsedTransaction{}
	}

	var err error
	switch {
	case g.opts.Drafts && g.opts.Format == models.FormatJSON:
		err = writeJSON(w, models.Drafts(txs))
	case g.opts.Drafts:
		err = writeYAML(w, models.Drafts(txs))
	case g.opts.Format == models.FormatJSON:
		err = writeJSON(w, txs)
	case g.opts.Format == models.FormatYAML:
		err = writeYAML(w, models.Records(txs))
	case g.opts.Format == models.FormatCSV:
		err = common.WriteCSV(w, models.Records(txs), g.opts.CSV)
	default:
		err = writeText(w, txs)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to render report")
		return fmt.Errorf("failed to render %s report: %w", g.opts.Format, err)
	}

	g.logger.Debug("Rendered report",
		logging.F(logging.FieldFormat, g.opts.Format),
		logging.F(logging.FieldCount, len(txs)))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, txs []models.ParsedTransaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions found.")
		return err
	}

	var sb strings.Builder
	for i, tx := range txs {
		r := tx.Record()
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "#%d [%s]\n", i+1, r.Confidence)
		amount := ""
		if tx.HasAmount() {
			amount = currencyutils.FormatAmount(tx.Amount.Decimal, tx.Currency)
		}
		fmt.Fprintf(&sb, "  Amount:    %s\n", orDash(amount))
		fmt.Fprintf(&sb, "  Direction: %s\n", r.Direction)
		fmt.Fprintf(&sb, "  Merchant:  %s\n", orDash(r.Merchant))
		fmt.Fprintf(&sb, "  Date:      %s\n", orDash(r.Date))
		category := ""
		if tx.SuggestedCategory != nil {
			category = tx.SuggestedCategory.Label()
		}
		fmt.Fprintf(&sb, "  Category:  %s\n", orDash(category))
		fmt.Fprintf(&sb, "  Text:      %s\n", strings.Join(strings.Fields(r.RawText), " "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
