// Package api exposes the extractor over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spendly/sms-extract/internal/config"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/pipeline"
)

// shutdownTimeout bounds the graceful shutdown of Run.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger logging.Logger
}

// NewServer wires routes and middleware. Metrics are registered on a
// dedicated registry served at /metrics.
func NewServer(p *pipeline.Pipeline, cfg config.APIConfig, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	logger = logger.WithField(logging.FieldComponent, "api")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := NewMetrics(registry)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator(cfg.MaxBodyChars)
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(Instrument(metrics, logger))
	e.Use(middleware.BodyLimit(bodyLimit(cfg.MaxBodyChars)))
	e.Use(NewRateLimiter(cfg.RatePerSecond, cfg.Burst).Middleware())

	h := NewHandler(p, metrics, logger)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := e.Group("/api/v1")
	v1.POST("/parse", h.Parse)
	v1.POST("/parse/drafts", h.ParseDrafts)
	v1.POST("/check", h.Check)
	v1.POST("/categorize", h.Categorize)

	return &Server{echo: e, addr: cfg.Addr, logger: logger}
}

// bodyLimit allows four bytes per character plus room for the JSON envelope.
func bodyLimit(maxChars int) string {
	return fmt.Sprintf("%dK", (maxChars*4)/1024+16)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logging.F("addr", s.addr))
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
