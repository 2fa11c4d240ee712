// Package pipeline runs decoded messages through segmentation, extraction,
// the caller filters and optional AI enrichment.
package pipeline

import (
	"context"
	"time"

	"spendly/sms-extract/internal/categorizer"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/smsparser"
	"spendly/sms-extract/internal/source"
)

// Options selects the optional stages of a run.
type Options struct {
	// Prefilter drops segments that do not look like bank notifications
	// before they are parsed.
	Prefilter bool
	// ActionableOnly drops results with neither an amount nor a direction.
	ActionableOnly bool
	// Enrich asks the AI client for categories still missing after parsing.
	Enrich bool
}

// Result is the outcome of a run.
type Result struct {
	Transactions []models.ParsedTransaction
	Messages     int
	Segments     int
	// Dropped counts segments removed by the pre-filter or the actionable filter.
	Dropped  int
	Enriched int
}

// Check is the pre-filter verdict for one segment.
type Check struct {
	Text          string `json:"text"`
	Transactional bool   `json:"transactional"`
}

// Pipeline is safe for concurrent use.
type Pipeline struct {
	extractor *smsparser.Extractor
	enricher  *categorizer.Enricher
	logger    logging.Logger
}

// New creates a Pipeline. The enricher may be nil, in which case
// Options.Enrich is ignored.
func New(extractor *smsparser.Extractor, enricher *categorizer.Enricher, logger logging.Logger) *Pipeline {
	if extractor == nil {
		extractor = smsparser.NewExtractor()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Pipeline{extractor: extractor, enricher: enricher, logger: logger}
}

// CanEnrich reports whether an AI enricher is configured.
func (p *Pipeline) CanEnrich() bool {
	return p.enricher != nil
}

// Run processes messages in order. It only fails when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, messages []source.Message, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{Messages: len(messages)}

	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ext := p.extractor
		if !msg.ReceivedAt.IsZero() {
			ext = ext.At(msg.ReceivedAt)
		}

		for segment := range smsparser.Segment(msg.Text) {
			res.Segments++
			if opts.Prefilter && !smsparser.IsTransactionSMS(segment) {
				res.Dropped++
				continue
			}
			tx := ext.Parse(segment)
			if opts.ActionableOnly && !tx.IsActionable() {
				res.Dropped++
				continue
			}
			res.Transactions = append(res.Transactions, tx)
		}
	}

	if opts.Enrich && p.enricher != nil && len(res.Transactions) > 0 {
		res.Enriched = p.enricher.Enrich(ctx, res.Transactions)
	}

	p.logger.Debug("Pipeline run finished",
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F(logging.FieldSegments, res.Segments),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return res, nil
}

// ParseText runs a single text block through the pipeline.
func (p *Pipeline) ParseText(ctx context.Context, text string, opts Options) (*Result, error) {
	return p.Run(ctx, []source.Message{{Text: text}}, opts)
}

// CheckText segments text and reports the pre-filter verdict per segment.
func (p *Pipeline) CheckText(text string) []Check {
	var checks []Check
	for segment := range smsparser.Segment(text) {
		checks = append(checks, Check{Text: segment, Transactional: smsparser.IsTransactionSMS(segment)})
	}
	return checks
}

// AnyTransactional reports whether at least one check passed.
func AnyTransactional(checks []Check) bool {
	for _, c := range checks {
		if c.Transactional {
			return true
		}
	}
	return false
}

// Suggest returns the category the extractor's rules give a merchant and
// free text, or nil.
func (p *Pipeline) Suggest(merchant, text string) *models.Category {
	return p.extractor.Suggest(merchant, text)
}
