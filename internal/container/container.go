// Package container provides dependency injection for the sms-extract application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"spendly/sms-extract/internal/batch"
	"spendly/sms-extract/internal/categorizer"
	"spendly/sms-extract/internal/common"
	"spendly/sms-extract/internal/config"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/pipeline"
	"spendly/sms-extract/internal/report"
	"spendly/sms-extract/internal/smsparser"
	"spendly/sms-extract/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through the getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	aiClient    categorizer.AIClient
	categorizer *categorizer.Categorizer
	extractor   *smsparser.Extractor
	enricher    *categorizer.Enricher
	pipeline    *pipeline.Pipeline
}

type options struct {
	logger    logging.Logger
	aiClient  categorizer.AIClient
	ruleStore categorizer.RuleStore
	clock     func() time.Time
}

// Option overrides a dependency, mostly for tests.
type Option func(*options)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithAIClient replaces the Gemini client. The client is used whenever it is
// set, regardless of ai.enabled.
func WithAIClient(client categorizer.AIClient) Option {
	return func(o *options) { o.aiClient = client }
}

// WithRuleStore replaces the YAML category store as the source of rules.
func WithRuleStore(s categorizer.RuleStore) Option {
	return func(o *options) { o.ruleStore = s }
}

// WithClock sets the clock used to complete year-less dates.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	var ruleStore categorizer.RuleStore = categoryStore
	if o.ruleStore != nil {
		ruleStore = o.ruleStore
	}

	cat, err := categorizer.NewFromStore(ruleStore, logger)
	if err != nil {
		return nil, fmt.Errorf("error loading category rules: %w", err)
	}

	extractorOpts := []smsparser.Option{
		smsparser.WithCategorizer(cat),
		smsparser.WithLogger(logger),
	}
	if o.clock != nil {
		extractorOpts = append(extractorOpts, smsparser.WithClock(o.clock))
	}
	extractor := smsparser.NewExtractor(extractorOpts...)

	aiClient := o.aiClient
	if aiClient == nil && cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := categorizer.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating AI client: %w", err)
		}
		aiClient = gemini
	}

	var enricher *categorizer.Enricher
	if aiClient != nil {
		enricher = categorizer.NewEnricher(aiClient, cfg.AI.RequestsPerMinute,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second, logger)
		logger.Info("AI categorization enabled")
	} else {
		logger.Debug("AI categorization disabled")
	}

	logger.Debug("Container initialized successfully",
		logging.F("strategies", cat.StrategyNames()),
		logging.F("rules", len(cat.Rules())),
		logging.F("ai_enabled", aiClient != nil))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		aiClient:    aiClient,
		categorizer: cat,
		extractor:   extractor,
		enricher:    enricher,
		pipeline:    pipeline.New(extractor, enricher, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the rule-based categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetStore returns the YAML category store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetAIClient returns the AI client, or nil when AI is not enabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.aiClient
}

// GetExtractor returns the configured extractor.
func (c *Container) GetExtractor() *smsparser.Extractor {
	return c.extractor
}

// GetPipeline returns the shared processing pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// CSVOptions returns the CSV settings of the configuration.
func (c *Container) CSVOptions() common.CSVOptions {
	opts := common.CSVOptions{Delimiter: common.DefaultDelimiter, IncludeHeaders: c.config.CSV.IncludeHeaders}
	if d := []rune(c.config.CSV.Delimiter); len(d) > 0 {
		opts.Delimiter = d[0]
	}
	return opts
}

// NewReportGenerator builds a report generator for format, falling back to
// the configured output format when format is empty.
func (c *Container) NewReportGenerator(format string, drafts bool) (*report.Generator, error) {
	if format == "" {
		format = c.config.Output.Format
	}
	return report.NewGenerator(report.Options{
		Format: format,
		CSV:    c.CSVOptions(),
		Drafts: drafts,
	}, c.logger)
}

// NewBatchProcessor builds a batch processor writing format. Zero workers
// use the configured worker count and the configured fail_fast always applies.
func (c *Container) NewBatchProcessor(format string, opts batch.Options) (*batch.Processor, error) {
	g, err := c.NewReportGenerator(format, false)
	if err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = c.config.Batch.Workers
	}
	opts.FailFast = opts.FailFast || c.config.Batch.FailFast
	return batch.NewProcessor(c.pipeline, g, opts, c.logger), nil
}

// Close releases the AI client, if any.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("error closing AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
