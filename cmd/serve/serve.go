// Package serve implements the serve command, which exposes the extractor
// over HTTP.
package serve

import (
	"context"
	"fmt"

	"spendly/sms-extract/cmd/root"
	"spendly/sms-extract/internal/api"
	"spendly/sms-extract/internal/container"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extractor over HTTP",
	Long: `Serve the extractor over HTTP until interrupted.

Endpoints:
  POST /api/v1/parse         extract transactions from {"text": "..."}
  POST /api/v1/parse/drafts  same, rendered as transaction drafts
  POST /api/v1/check         pre-filter verdict per message
  POST /api/v1/categorize    category for {"merchant": "...", "text": "..."}
  GET  /health               liveness probe
  GET  /metrics              Prometheus metrics

Requests are rate limited per client IP (api.rate_per_second, api.burst).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return Run(cmd.Context(), c, addr)
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, e.g. :8080)")
}

// Run serves until ctx is done. An empty addr uses the configured one.
func Run(ctx context.Context, c *container.Container, addr string) error {
	cfg := c.GetConfig().API
	if addr != "" {
		cfg.Addr = addr
	}
	return api.NewServer(c.GetPipeline(), cfg, c.GetLogger()).Run(ctx)
}
