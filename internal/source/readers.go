package source

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/parsererror"
	"spendly/sms-extract/internal/textutils"
	"spendly/sms-extract/internal/xmlutils"
)

// TextReader returns the whole input as a single message.
type TextReader struct{}

func (TextReader) Read(r io.Reader) ([]Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, parsererror.ErrEmptyInput
	}
	return []Message{{Text: text}}, nil
}

// HTMLReader returns the visible text of an HTML notification.
type HTMLReader struct{}

func (HTMLReader) Read(r io.Reader) ([]Message, error) {
	text, err := textutils.HTMLToText(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "HTML",
			Msg:            "cannot extract text",
			Err:            err,
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, parsererror.ErrEmptyInput
	}
	return []Message{{Text: text}}, nil
}

// XMLReader decodes "SMS Backup & Restore" exports.
type XMLReader struct {
	Paths         xmlutils.SMSBackup
	AddressFilter string
	logger        logging.Logger
}

// NewXMLReader creates an XMLReader with the standard backup paths.
func NewXMLReader(addressFilter string, logger logging.Logger) *XMLReader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &XMLReader{
		Paths:         xmlutils.DefaultSMSBackupXPaths(),
		AddressFilter: addressFilter,
		logger:        logger,
	}
}

func (x *XMLReader) Read(r io.Reader) ([]Message, error) {
	root, err := xmlutils.ParseXML(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "SMS Backup & Restore XML",
			Msg:            "malformed XML",
			Err:            err,
		}
	}

	records, err := xmlutils.ExtractSMSRecords(root, x.Paths)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &parsererror.DataExtractionError{
			FieldName: "sms",
			Reason:    "document contains no messages",
		}
	}

	filter := strings.ToLower(x.AddressFilter)
	messages := make([]Message, 0, len(records))
	skipped := 0
	for _, rec := range records {
		if rec.Type == xmlutils.SMSTypeSent {
			skipped++
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(rec.Address), filter) {
			skipped++
			continue
		}
		if strings.TrimSpace(rec.Body) == "" {
			skipped++
			continue
		}
		messages = append(messages, Message{
			Text:       rec.Body,
			Sender:     rec.Address,
			ReceivedAt: parseEpochMillis(rec.Date),
		})
	}

	x.logger.Debug("Decoded SMS backup",
		logging.F(logging.FieldCount, len(messages)),
		logging.F(logging.FieldSkipped, skipped))
	return messages, nil
}

func parseEpochMillis(s string) time.Time {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
