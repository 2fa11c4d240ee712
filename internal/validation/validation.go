// Package validation checks user-supplied directories, formats and options before
// any work starts.
package validation

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"spendly/sms-extract/internal/models"
)

// IsValidDirectory checks that path exists and is a directory.
func IsValidDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	if slices.Contains(models.OutputFormats, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
		format, quoteList(models.OutputFormats))
}

// IsValidSource checks if the given input source is supported.
func IsValidSource(source string) error {
	if slices.Contains(models.Sources, source) {
		return nil
	}
	return fmt.Errorf("unsupported input source: %s. Supported sources are %s",
		source, quoteList(models.Sources))
}

// IsValidDelimiter checks that a CSV delimiter is a single character other
// than a quote or a line break.
func IsValidDelimiter(delimiter string) error {
	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", delimiter)
	}
	if strings.ContainsAny(delimiter, "\"\r\n") {
		return fmt.Errorf("invalid CSV delimiter: %q", delimiter)
	}
	return nil
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
