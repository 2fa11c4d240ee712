// Package batch parses every input file of a directory concurrently and
// reports what was found.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"spendly/sms-extract/internal/fileutils"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/parsererror"
	"spendly/sms-extract/internal/pipeline"
	"spendly/sms-extract/internal/report"
	"spendly/sms-extract/internal/source"
)

// SupportedExtensions lists the input file extensions picked up by ProcessDir.
var SupportedExtensions = []string{".txt", ".sms", ".xml", ".html", ".htm"}

// Options configures a Processor.
type Options struct {
	Workers  int
	FailFast bool
	// Source is the input kind; empty or auto picks it per file extension.
	Source        string
	SourceOptions source.Options
	Pipeline      pipeline.Options
}

// FileResult is the outcome of one input file.
type FileResult struct {
	InputFile    string
	OutputFile   string
	Messages     int
	Transactions []models.ParsedTransaction
	Err          error
}

// Processor runs the pipeline over directories of input files.
type Processor struct {
	pipeline  *pipeline.Pipeline
	generator *report.Generator
	opts      Options
	logger    logging.Logger
}

// NewProcessor creates a Processor. Workers below one are raised to one.
func NewProcessor(p *pipeline.Pipeline, g *report.Generator, opts Options, logger logging.Logger) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Processor{pipeline: p, generator: g, opts: opts, logger: logger}
}

// ProcessDir parses every supported file of inDir and writes one report per
// file into outDir. A failing file is recorded in the returned Stats; with
// FailFast the first failure cancels the run and is returned.
func (p *Processor) ProcessDir(ctx context.Context, inDir, outDir string) (*Stats, error) {
	start := time.Now()

	files, err := fileutils.ListFilesWithExtensions(inDir, SupportedExtensions...)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(outDir); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	p.logger.Info("Processing directory",
		logging.F(logging.FieldInputFile, inDir),
		logging.F(logging.FieldOutputFile, outDir),
		logging.F(logging.FieldCount, len(files)))

	outputs := p.outputPaths(files, outDir)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, file := range files {
		g.Go(func() error {
			results[i] = p.processFile(gctx, file, outputs[i])
			if results[i].Err != nil && p.opts.FailFast {
				return results[i].Err
			}
			return nil
		})
	}
	runErr := g.Wait()

	stats := NewStats()
	for _, res := range results {
		stats.Add(res)
	}
	stats.Duration = time.Since(start)

	p.logger.Info("Directory processed",
		logging.F("files", stats.Files),
		logging.F("failed", len(stats.Failures)),
		logging.F(logging.FieldCount, stats.Transactions),
		logging.F(logging.FieldDuration, stats.Duration.Milliseconds()))

	if runErr != nil {
		return stats, runErr
	}
	return stats, nil
}

func (p *Processor) processFile(ctx context.Context, inFile, outFile string) FileResult {
	res := FileResult{InputFile: inFile, OutputFile: outFile}
	logger := p.logger.WithField(logging.FieldFile, inFile)

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	messages, err := source.ReadFile(inFile, p.opts.Source, p.opts.SourceOptions, logger)
	if err != nil && !errors.Is(err, parsererror.ErrEmptyInput) {
		logger.WithError(err).Warn("Failed to read input file")
		res.Err = err
		return res
	}
	res.Messages = len(messages)

	out, err := p.pipeline.Run(ctx, messages, p.opts.Pipeline)
	if err != nil {
		res.Err = err
		return res
	}
	res.Transactions = out.Transactions

	if err := p.write(outFile, out.Transactions); err != nil {
		logger.WithError(err).Warn("Failed to write output file")
		res.Err = err
		return res
	}

	logger.Debug("File processed",
		logging.F(logging.FieldOutputFile, outFile),
		logging.F(logging.FieldCount, len(out.Transactions)))
	return res
}

func (p *Processor) write(outFile string, txs []models.ParsedTransaction) (err error) {
	f, err := fileutils.CreateFile(outFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", outFile, closeErr)
		}
	}()
	return p.generator.Render(f, txs)
}

// outputPaths maps every input onto <stem><ext> in outDir. Inputs sharing a
// stem (inbox.txt, inbox.xml) keep their full name instead.
func (p *Processor) outputPaths(files []string, outDir string) []string {
	stems := make(map[string]int, len(files))
	for _, f := range files {
		stems[strings.ToLower(fileutils.Stem(f))]++
	}

	ext := p.generator.Extension()
	paths := make([]string, len(files))
	for i, f := range files {
		name := fileutils.Stem(f)
		if stems[strings.ToLower(name)] > 1 {
			name = filepath.Base(f)
		}
		paths[i] = filepath.Join(outDir, name+ext)
	}
	return paths
}
