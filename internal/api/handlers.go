package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/pipeline"
)

// ParseRequest is the body of the parse endpoints.
type ParseRequest struct {
	Text           string `json:"text" validate:"required,maxchars"`
	ActionableOnly bool   `json:"actionableOnly"`
	Prefilter      bool   `json:"prefilter"`
	// Enrich asks the AI client for missing categories when one is configured.
	Enrich bool `json:"enrich"`
}

// CheckRequest is the body of the check endpoint.
type CheckRequest struct {
	Text string `json:"text" validate:"required,maxchars"`
}

// CategorizeRequest is the body of the categorize endpoint.
type CategorizeRequest struct {
	Merchant string `json:"merchant" validate:"required_without=Text,maxchars"`
	Text     string `json:"text" validate:"maxchars"`
}

// CategoryResponse is the payload of the categorize endpoint.
type CategoryResponse struct {
	Category *models.Category `json:"category"`
	Label    string           `json:"label,omitempty"`
}

// CheckResponse is the payload of the check endpoint.
type CheckResponse struct {
	Transactional bool             `json:"transactional"`
	Segments      []pipeline.Check `json:"segments"`
}

// Handler serves the extraction endpoints.
type Handler struct {
	pipeline *pipeline.Pipeline
	metrics  *Metrics
	logger   logging.Logger
}

// NewHandler creates a Handler.
func NewHandler(p *pipeline.Pipeline, metrics *Metrics, logger logging.Logger) *Handler {
	return &Handler{pipeline: p, metrics: metrics, logger: logger}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return c.Validate(req)
}

func (h *Handler) run(c echo.Context) ([]models.ParsedTransaction, error) {
	var req ParseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, err
	}

	res, err := h.pipeline.ParseText(c.Request().Context(), req.Text, pipeline.Options{
		Prefilter:      req.Prefilter,
		ActionableOnly: req.ActionableOnly,
		Enrich:         req.Enrich,
	})
	if err != nil {
		return nil, err
	}

	h.metrics.ObserveParsed(res.Transactions)
	txs := res.Transactions
	if txs == nil {
		txs = []models.ParsedTransaction{}
	}
	return txs, nil
}

// Parse handles POST /api/v1/parse.
func (h *Handler) Parse(c echo.Context) error {
	txs, err := h.run(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Data: txs,
		Meta: map[string]int{"count": len(txs)},
	})
}

// ParseDrafts handles POST /api/v1/parse/drafts.
func (h *Handler) ParseDrafts(c echo.Context) error {
	txs, err := h.run(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Data: models.Drafts(txs),
		Meta: map[string]int{"count": len(txs)},
	})
}

// Check handles POST /api/v1/check.
func (h *Handler) Check(c echo.Context) error {
	var req CheckRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	checks := h.pipeline.CheckText(req.Text)
	if checks == nil {
		checks = []pipeline.Check{}
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: CheckResponse{
		Transactional: pipeline.AnyTransactional(checks),
		Segments:      checks,
	}})
}

// Categorize handles POST /api/v1/categorize.
func (h *Handler) Categorize(c echo.Context) error {
	var req CategorizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp := CategoryResponse{Category: h.pipeline.Suggest(req.Merchant, req.Text)}
	if resp.Category != nil {
		resp.Label = resp.Category.Label()
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
