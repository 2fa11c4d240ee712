package categorizer

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/parsererror"
)

// Enricher fills in missing categories with an AIClient. Only actionable
// results without a suggested category are sent; every request waits on a
// rate limiter and is bounded by a timeout.
type Enricher struct {
	client  AIClient
	limiter *rate.Limiter
	timeout time.Duration
	logger  logging.Logger
}

// NewEnricher creates an Enricher allowing requestsPerMinute calls (at least
// one) each bounded by timeout. A zero timeout means no per-request bound.
func NewEnricher(client AIClient, requestsPerMinute int, timeout time.Duration, logger logging.Logger) *Enricher {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Enricher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		timeout: timeout,
		logger:  logger,
	}
}

// Enrich updates txs in place and returns how many categories were filled
// in. Failures are logged and leave the category nil. Enrich stops early
// when ctx is done.
func (e *Enricher) Enrich(ctx context.Context, txs []models.ParsedTransaction) int {
	enriched := 0
	for i := range txs {
		tx := &txs[i]
		if tx.SuggestedCategory != nil || !tx.IsActionable() {
			continue
		}

		if err := e.limiter.Wait(ctx); err != nil {
			e.logger.WithError(err).Debug("Stopping AI enrichment")
			return enriched
		}

		category, err := e.suggest(ctx, tx)
		if err != nil {
			catErr := &parsererror.CategorizationError{Input: tx.MerchantName(), Strategy: "AI", Err: err}
			e.logger.WithError(catErr).Warn("AI categorization failed")
			continue
		}
		tx.SuggestedCategory = category.Ptr()
		enriched++
	}

	e.logger.Debug("AI enrichment finished", logging.F(logging.FieldCount, enriched))
	return enriched
}

func (e *Enricher) suggest(ctx context.Context, tx *models.ParsedTransaction) (models.Category, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.client.SuggestCategory(ctx, tx.MerchantName(), tx.RawText)
}
