package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"spendly/sms-extract/internal/logging"
)

// ErrorCode identifies an API error.
type ErrorCode string

// Error codes
const (
	CodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	CodeTooLarge         ErrorCode = "REQUEST_TOO_LARGE"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

var codeStatus = map[ErrorCode]int{
	CodeInvalidRequest:   http.StatusBadRequest,
	CodeValidation:       http.StatusBadRequest,
	CodeNotFound:         http.StatusNotFound,
	CodeMethodNotAllowed: http.StatusMethodNotAllowed,
	CodeTooLarge:         http.StatusRequestEntityTooLarge,
	CodeRateLimited:      http.StatusTooManyRequests,
	CodeInternal:         http.StatusInternalServerError,
}

// Status returns the HTTP status of the code.
func (c ErrorCode) Status() int {
	if status, ok := codeStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorBody is the error part of an ErrorResponse.
type ErrorBody struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ErrorResponse is the uniform body of every failed request.
type ErrorResponse struct {
	Error   ErrorBody `json:"error"`
	TraceID string    `json:"traceId"`
}

// SuccessResponse wraps the payload of every successful request.
type SuccessResponse struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// SendError writes a standardized error response.
func SendError(c echo.Context, code ErrorCode, message string, details map[string]string) error {
	return c.JSON(code.Status(), ErrorResponse{
		Error:   ErrorBody{Code: code, Message: message, Details: details},
		TraceID: GetTraceID(c),
	})
}

// NewHTTPErrorHandler formats every error escaping a handler as an
// ErrorResponse and logs it.
func NewHTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message, details := classify(err)
		fields := []logging.Field{
			logging.F(logging.FieldTraceID, GetTraceID(c)),
			logging.F("path", c.Request().URL.Path),
			logging.F("status", code.Status()),
		}
		if code.Status() >= http.StatusInternalServerError {
			logger.WithError(err).Error("HTTP error occurred", fields...)
		} else {
			logger.WithError(err).Debug("HTTP error occurred", fields...)
		}

		if sendErr := SendError(c, code, message, details); sendErr != nil {
			logger.WithError(sendErr).Warn("Failed to send error response")
		}
	}
}

func classify(err error) (ErrorCode, string, map[string]string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fieldName(fe)] = validationMessage(fe)
		}
		return CodeValidation, "Request validation failed", details
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		switch httpErr.Code {
		case http.StatusNotFound:
			return CodeNotFound, message, nil
		case http.StatusMethodNotAllowed:
			return CodeMethodNotAllowed, message, nil
		case http.StatusRequestEntityTooLarge:
			return CodeTooLarge, message, nil
		case http.StatusTooManyRequests:
			return CodeRateLimited, message, nil
		}
		if httpErr.Code < http.StatusInternalServerError {
			return CodeInvalidRequest, message, nil
		}
	}

	return CodeInternal, "An internal error occurred", nil
}

// fieldName returns the JSON name of the failing field.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return name
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "maxchars":
		return "is too long"
	default:
		return fmt.Sprintf("failed on the '%s' rule", strings.ToLower(fe.Tag()))
	}
}
