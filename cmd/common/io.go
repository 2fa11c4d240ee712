// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"spendly/sms-extract/internal/fileutils"
	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/source"
	"spendly/sms-extract/internal/validation"
)

// Input describes where a command reads its messages from. Text wins over
// File, and File wins over Stdin.
type Input struct {
	Text    string
	File    string
	Stdin   io.Reader
	Source  string
	Options source.Options
}

// ReadMessages decodes the messages of in.
func ReadMessages(in Input, logger logging.Logger) ([]source.Message, error) {
	kind := in.Source
	if kind == "" {
		kind = models.SourceAuto
	}
	if err := validation.IsValidSource(kind); err != nil {
		return nil, err
	}

	switch {
	case in.Text != "":
		return []source.Message{{Text: in.Text}}, nil
	case in.File != "":
		if !fileutils.FileExists(in.File) {
			return nil, fmt.Errorf("input file not found: %s", in.File)
		}
		logger.Debug("Reading input file",
			logging.F(logging.FieldInputFile, in.File),
			logging.F(logging.FieldSource, source.Resolve(kind, in.File)))
		return source.ReadFile(in.File, kind, in.Options, logger)
	case in.Stdin != nil:
		// stdin has no extension to detect from
		if kind == models.SourceAuto {
			kind = models.SourceText
		}
		reader, err := source.NewReader(kind, in.Options, logger)
		if err != nil {
			return nil, err
		}
		return reader.Read(in.Stdin)
	default:
		return nil, fmt.Errorf("no input: pass --text, --input or pipe messages on stdin")
	}
}

// OpenOutput returns the writer for path. An empty path or "-" writes to
// stdout and the returned close function is then a no-op.
func OpenOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := fileutils.CreateFile(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
