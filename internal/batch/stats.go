package batch

import (
	"fmt"
	"io"
	"time"

	"spendly/sms-extract/internal/models"
)

// Failure is one input file that could not be processed.
type Failure struct {
	File string
	Err  error
}

// Stats summarises a batch run.
type Stats struct {
	Files        int
	Messages     int
	Transactions int
	Actionable   int
	ByConfidence map[models.Confidence]int
	ByDirection  map[models.Direction]int
	Failures     []Failure
	Duration     time.Duration
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{
		ByConfidence: make(map[models.Confidence]int),
		ByDirection:  make(map[models.Direction]int),
	}
}

// Add accounts for one file result.
func (s *Stats) Add(res FileResult) {
	s.Files++
	if res.Err != nil {
		s.Failures = append(s.Failures, Failure{File: res.InputFile, Err: res.Err})
		return
	}
	s.Messages += res.Messages
	for _, tx := range res.Transactions {
		s.Transactions++
		if tx.IsActionable() {
			s.Actionable++
		}
		s.ByConfidence[tx.Confidence]++
		s.ByDirection[tx.Direction]++
	}
}

// WriteSummary prints a human-readable summary.
func (s *Stats) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Files: %d (failed: %d)\nMessages: %d\nTransactions: %d (actionable: %d)\n"+
			"Confidence: high=%d medium=%d low=%d\nDirection: expense=%d income=%d unknown=%d\n",
		s.Files, len(s.Failures), s.Messages, s.Transactions, s.Actionable,
		s.ByConfidence[models.ConfidenceHigh], s.ByConfidence[models.ConfidenceMedium], s.ByConfidence[models.ConfidenceLow],
		s.ByDirection[models.DirectionExpense], s.ByDirection[models.DirectionIncome], s.ByDirection[models.DirectionUnknown])
	if err != nil {
		return err
	}
	for _, f := range s.Failures {
		if _, err := fmt.Fprintf(w, "  FAILED %s: %v\n", f.File, f.Err); err != nil {
			return err
		}
	}
	return nil
}
