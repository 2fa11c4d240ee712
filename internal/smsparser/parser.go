// Package smsparser turns free-text bank notifications into structured
// transaction candidates.
//
// Every field is extracted independently by an ordered list of patterns
// where the first acceptable match wins. Nothing here returns an error: a
// field that cannot be found is simply absent from the result.
package smsparser

import (
	"iter"
	"strings"
	"time"

	"spendly/sms-extract/internal/categorizer"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/textutils"
)

// CategorySuggester picks a category from the extracted merchant (possibly
// empty) and the lowercased message text. It returns nil when nothing fits.
type CategorySuggester interface {
	Suggest(merchant, lowerText string) *models.Category
}

// Extractor parses messages. It holds only read-only state and is safe for
// concurrent use.
type Extractor struct {
	suggester CategorySuggester
	now       func() time.Time
	logger    logging.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCategorizer replaces the built-in category rules.
func WithCategorizer(s CategorySuggester) Option {
	return func(e *Extractor) {
		if s != nil {
			e.suggester = s
		}
	}
}

// WithClock sets the clock used to complete dates that carry no year.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger logging.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an Extractor using the built-in category rules, the
// system clock and a discarding logger unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		now:    time.Now,
		logger: logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.suggester == nil {
		e.suggester = categorizer.NewDefault(e.logger)
	}
	return e
}

// At returns a copy of e that completes year-less dates relative to now,
// typically the time a message was received.
func (e *Extractor) At(now time.Time) *Extractor {
	c := *e
	c.now = func() time.Time { return now }
	return &c
}

// Parse extracts a transaction candidate from a single message.
func (e *Extractor) Parse(text string) models.ParsedTransaction {
	raw := strings.TrimSpace(text)
	msg := textutils.Normalize(raw)

	result := models.ParsedTransaction{
		Direction: ClassifyDirection(msg),
		RawText:   raw,
	}

	amount, hasAmount := extractAmount(msg)
	if hasAmount {
		result.Amount.Decimal = amount.value
		result.Amount.Valid = true
		result.Currency = amount.currency
	}

	if merchant, ok := ExtractMerchant(msg); ok {
		result.Merchant = &merchant
	}

	date, dateFamily, hasDate := extractDate(msg, e.now())
	if hasDate {
		result.Date = &date
	}

	result.SuggestedCategory = e.suggester.Suggest(result.MerchantName(), strings.ToLower(msg))
	result.Confidence = ScoreConfidence(hasAmount, result.Direction.IsKnown(), result.Merchant != nil)

	e.logger.Debug("Parsed message",
		logging.F(logging.FieldPattern, amount.family),
		logging.F("date_pattern", dateFamily),
		logging.F(logging.FieldDirection, result.Direction),
		logging.F(logging.FieldMerchant, result.MerchantName()),
		logging.F(logging.FieldConfidence, result.Confidence))

	return result
}

// ParseAll segments text and lazily parses every segment, in input order.
// The sequence can be ranged over again; each pass re-parses.
func (e *Extractor) ParseAll(text string) iter.Seq[models.ParsedTransaction] {
	return func(yield func(models.ParsedTransaction) bool) {
		for segment := range Segment(text) {
			if !yield(e.Parse(segment)) {
				return
			}
		}
	}
}

// ParseMultiple segments text and parses every segment, in input order.
func (e *Extractor) ParseMultiple(text string) []models.ParsedTransaction {
	var results []models.ParsedTransaction
	for tx := range e.ParseAll(text) {
		results = append(results, tx)
	}
	e.logger.Debug("Parsed text block", logging.F(logging.FieldSegments, len(results)))
	return results
}

// IsTransactionSMS is the pre-filter; see the package-level function.
func (e *Extractor) IsTransactionSMS(text string) bool {
	return IsTransactionSMS(text)
}

// Suggest applies the extractor's category rules to a merchant and free text.
func (e *Extractor) Suggest(merchant, text string) *models.Category {
	return e.suggester.Suggest(merchant, strings.ToLower(textutils.Normalize(text)))
}

var defaultExtractor = NewExtractor()

// Parse parses one message with the default extractor.
func Parse(text string) models.ParsedTransaction {
	return defaultExtractor.Parse(text)
}

// ParseMultiple segments and parses text with the default extractor.
func ParseMultiple(text string) []models.ParsedTransaction {
	return defaultExtractor.ParseMultiple(text)
}

// ParseAll lazily segments and parses text with the default extractor.
func ParseAll(text string) iter.Seq[models.ParsedTransaction] {
	return defaultExtractor.ParseAll(text)
}
