package serve

import (
	"context"
	"testing"
	"time"

	"spendly/sms-extract/internal/config"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", Cmd.Use)
	assert.Contains(t, Cmd.Long, "/api/v1/parse")
	flag := Cmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}

func TestRun_StopsWithContext(t *testing.T) {
	cfg := &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		CSV:    config.CSVConfig{Delimiter: ",", IncludeHeaders: true},
		Output: config.OutputConfig{Format: models.FormatJSON},
		Batch:  config.BatchConfig{Workers: 1},
		API:    config.APIConfig{Addr: ":8080", RatePerSecond: 10, Burst: 20, MaxBodyChars: 1000},
	}
	logger := logging.NewMockLogger()
	c, err := container.NewContainer(cfg,
		container.WithLogger(logger),
		container.WithRuleStore(&store.MockCategoryStore{}))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, Run(ctx, c, "127.0.0.1:0"))
	assert.True(t, logger.HasEntry("INFO", "Shutting down HTTP server"))
}
