// Package source decodes the supported input formats into messages ready for
// extraction.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/parsererror"
)

// Message is one decoded notification.
type Message struct {
	Text string
	// Sender is the originating address, when the source records it.
	Sender string
	// ReceivedAt is the zero time when the source does not record it.
	ReceivedAt time.Time
}

// Reader decodes an input stream into messages.
type Reader interface {
	Read(r io.Reader) ([]Message, error)
}

// Options tunes the readers built by NewReader.
type Options struct {
	// AddressFilter keeps only XML messages whose sender contains it.
	AddressFilter string
}

// NewReader returns the reader for the given source kind. The auto kind
// needs a file name and is resolved by Detect or ReadFile.
func NewReader(kind string, opts Options, logger logging.Logger) (Reader, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	switch kind {
	case models.SourceText:
		return &TextReader{}, nil
	case models.SourceXML:
		return NewXMLReader(opts.AddressFilter, logger), nil
	case models.SourceHTML:
		return &HTMLReader{}, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", kind)
	}
}

// Detect picks the source kind from the file extension.
func Detect(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return models.SourceXML
	case ".html", ".htm":
		return models.SourceHTML
	default:
		return models.SourceText
	}
}

// Resolve maps the auto kind onto a concrete one for path.
func Resolve(kind, path string) string {
	if kind == "" || kind == models.SourceAuto {
		return Detect(path)
	}
	return kind
}

// ReadFile opens path and decodes it as kind. Format errors carry the path.
func ReadFile(path, kind string, opts Options, logger logging.Logger) ([]Message, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	kind = Resolve(kind, path)
	reader, err := NewReader(kind, opts, logger)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("error opening file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Warn("Failed to close file",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldError, closeErr))
		}
	}()

	messages, err := reader.Read(f)
	if err != nil {
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) {
			formatErr.FilePath = path
		}
		var extractErr *parsererror.DataExtractionError
		if errors.As(err, &extractErr) {
			extractErr.FilePath = path
		}
		return nil, err
	}
	return messages, nil
}

// Texts returns the text of every message, in order.
func Texts(messages []Message) []string {
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
	}
	return texts
}
