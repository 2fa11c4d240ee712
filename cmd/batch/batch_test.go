package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	internalbatch "spendly/sms-extract/internal/batch"
	"spendly/sms-extract/internal/config"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/pipeline"
	"spendly/sms-extract/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		CSV:    config.CSVConfig{Delimiter: ",", IncludeHeaders: true},
		Output: config.OutputConfig{Format: models.FormatJSON},
		Batch:  config.BatchConfig{Workers: 2},
	}
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewDiscardLogger()),
		container.WithRuleStore(&store.MockCategoryStore{}))
	require.NoError(t, err)
	return c
}

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestBatchCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Batch process")
	assert.Contains(t, Cmd.Long, "Example")
	assert.NotNil(t, Cmd.RunE)
	assert.Equal(t, "w", Cmd.Flags().Lookup("workers").Shorthand)
	assert.Equal(t, models.SourceAuto, Cmd.Flags().Lookup("source").DefValue)
}

func TestRun(t *testing.T) {
	inDir := writeInputs(t, map[string]string{
		"inbox.txt": "Your A/c X1234 is debited for Rs.500.00 on 09-01-26 at AMAZON\n\nHello there, see you tomorrow",
		"mail.html": "<html><body><p>INR 99.00 spent at Netflix</p></body></html>",
	})
	outDir := filepath.Join(t.TempDir(), "reports")
	var out bytes.Buffer

	err := Run(context.Background(), newTestContainer(t), Options{
		InputDir:  inDir,
		OutputDir: outDir,
		Format:    models.FormatCSV,
		Batch:     internalbatch.Options{Pipeline: pipeline.Options{ActionableOnly: true}},
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Files: 2 (failed: 0)")
	assert.Contains(t, out.String(), "Transactions: 2 (actionable: 2)")
	assert.FileExists(t, filepath.Join(outDir, "inbox.csv"))
	assert.FileExists(t, filepath.Join(outDir, "mail.csv"))
}

func TestRun_ReportsFailures(t *testing.T) {
	inDir := writeInputs(t, map[string]string{
		"good.txt":   "Rs.500 debited at AMAZON",
		"broken.xml": "<smses><sms",
	})
	var out bytes.Buffer

	err := Run(context.Background(), newTestContainer(t), Options{InputDir: inDir, OutputDir: t.TempDir()}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out.String(), "FAILED "+filepath.Join(inDir, "broken.xml"))
}

func TestRun_FailFast(t *testing.T) {
	inDir := writeInputs(t, map[string]string{"broken.xml": "<smses><sms"})

	err := Run(context.Background(), newTestContainer(t), Options{
		InputDir:  inDir,
		OutputDir: t.TempDir(),
		Batch:     internalbatch.Options{FailFast: true},
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch processing stopped")
}

func TestRun_InvalidOptions(t *testing.T) {
	inDir := t.TempDir()
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "missing dirs", opts: Options{}, wantErr: "must be specified"},
		{name: "input not a dir", opts: Options{InputDir: filepath.Join(inDir, "nope"), OutputDir: inDir}, wantErr: "cannot access directory"},
		{name: "bad source", opts: Options{InputDir: inDir, OutputDir: inDir, Batch: internalbatch.Options{Source: "pdf"}}, wantErr: "unsupported input source"},
		{name: "bad format", opts: Options{InputDir: inDir, OutputDir: inDir, Format: "xlsx"}, wantErr: "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), newTestContainer(t), tt.opts, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
