// Package common provides shared CSV encoding helpers.
package common

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the field separator used when none is configured.
const DefaultDelimiter = ','

// CSVOptions configures CSV encoding.
type CSVOptions struct {
	Delimiter      rune
	IncludeHeaders bool
}

// DefaultCSVOptions returns comma-separated output with a header row.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: DefaultDelimiter, IncludeHeaders: true}
}

// WriteCSV encodes rows using their csv struct tags.
func WriteCSV[TRow any](w io.Writer, rows []TRow, opts CSVOptions) error {
	if rows == nil {
		rows = []TRow{}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiterOrDefault(opts.Delimiter)
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	var err error
	if opts.IncludeHeaders {
		err = gocsv.MarshalCSV(rows, safe)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(rows, safe)
	}
	if err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	safe.Flush()
	if err := safe.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}

// ReadCSV decodes CSV data with a header row into rows.
func ReadCSV[TRow any](r io.Reader, delimiter rune) ([]TRow, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiterOrDefault(delimiter)

	var rows []TRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

func delimiterOrDefault(d rune) rune {
	if d == 0 {
		return DefaultDelimiter
	}
	return d
}
