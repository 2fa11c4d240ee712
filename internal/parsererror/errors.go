// Package parsererror defines the typed errors returned by the layers around
// the extractor: input decoding, rule loading and category enrichment.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when an input source holds no text at all.
var ErrEmptyInput = errors.New("input is empty")

// InvalidFormatError reports an input that does not match the format it was
// read as (e.g. malformed SMS-backup XML).
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	where := e.FilePath
	if where == "" {
		where = "<input>"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid format in '%s': %s. Expected: %s: %v", where, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s", where, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError reports a well-formed input that did not contain the
// data we look for.
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s", e.FilePath, e.FieldName, e.Reason)
}

// ValidationError reports a rejected configuration value, rule entry or
// request field.
type ValidationError struct {
	Source string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("validation failed for %s (%s): %s", e.Source, e.Field, e.Reason)
}

// CategorizationError reports a failed category lookup by an external
// strategy such as the AI client.
type CategorizationError struct {
	Input    string
	Strategy string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q using %s: %v", e.Input, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
