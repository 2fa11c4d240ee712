package models

import (
	"bytes"
	"encoding/json"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ParsedTransaction is the structured candidate extracted from one message.
// Every optional field is nil (or invalid, for Amount) when nothing was found.
type ParsedTransaction struct {
	Amount            decimal.NullDecimal `json:"amount"`
	Currency          string              `json:"currency,omitempty"`
	Direction         Direction           `json:"direction"`
	Merchant          *string             `json:"merchant"`
	Date              *civil.Date         `json:"date"`
	SuggestedCategory *Category           `json:"suggestedCategory"`
	Confidence        Confidence          `json:"confidence"`
	RawText           string              `json:"rawText"`
}

// MarshalJSON writes the amount as a bare JSON number, or null when absent.
// HTML characters in the raw text are left unescaped.
func (t ParsedTransaction) MarshalJSON() ([]byte, error) {
	type plain ParsedTransaction
	amount := json.RawMessage("null")
	if t.Amount.Valid {
		amount = json.RawMessage(t.Amount.Decimal.String())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		Amount json.RawMessage `json:"amount"`
		plain
	}{amount, plain(t)})
	return bytes.TrimRight(buf.Bytes(), "\n"), err
}

// HasAmount reports whether an amount was extracted.
func (t ParsedTransaction) HasAmount() bool {
	return t.Amount.Valid
}

// IsActionable reports whether the result is worth showing to a user. Results
// with neither an amount nor a known direction are noise.
func (t ParsedTransaction) IsActionable() bool {
	return t.Amount.Valid || t.Direction.IsKnown()
}

// MerchantName returns the merchant or an empty string.
func (t ParsedTransaction) MerchantName() string {
	if t.Merchant == nil {
		return ""
	}
	return *t.Merchant
}

// TransactionRecord is the flat, string-only view of a ParsedTransaction used
// for CSV, YAML and text output.
type TransactionRecord struct {
	Amount     string `csv:"Amount" yaml:"amount"`
	Currency   string `csv:"Currency" yaml:"currency"`
	Direction  string `csv:"Direction" yaml:"direction"`
	Merchant   string `csv:"Merchant" yaml:"merchant"`
	Date       string `csv:"Date" yaml:"date"`
	Category   string `csv:"Category" yaml:"category"`
	Confidence string `csv:"Confidence" yaml:"confidence"`
	RawText    string `csv:"RawText" yaml:"raw_text"`
}

// Record flattens the transaction. Absent values become empty strings.
func (t ParsedTransaction) Record() TransactionRecord {
	r := TransactionRecord{
		Currency:   t.Currency,
		Direction:  string(t.Direction),
		Merchant:   t.MerchantName(),
		Confidence: string(t.Confidence),
		RawText:    t.RawText,
	}
	if t.Amount.Valid {
		r.Amount = t.Amount.Decimal.StringFixed(2)
	}
	if t.Date != nil {
		r.Date = t.Date.String()
	}
	if t.SuggestedCategory != nil {
		r.Category = string(*t.SuggestedCategory)
	}
	return r
}

// Records flattens a slice of transactions.
func Records(txs []ParsedTransaction) []TransactionRecord {
	records := make([]TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, tx.Record())
	}
	return records
}

// FilterActionable keeps the actionable results, preserving order.
func FilterActionable(txs []ParsedTransaction) []ParsedTransaction {
	kept := make([]ParsedTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsActionable() {
			kept = append(kept, tx)
		}
	}
	return kept
}
