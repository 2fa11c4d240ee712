package models

// TransactionDraft is a pre-filled transaction-creation request built from a
// parsed message. The user confirms or completes it before it is stored.
type TransactionDraft struct {
	Type     Direction `json:"type" yaml:"type"`
	Amount   string    `json:"amount,omitempty" yaml:"amount,omitempty"`
	Currency string    `json:"currency,omitempty" yaml:"currency,omitempty"`
	Category Category  `json:"category,omitempty" yaml:"category,omitempty"`
	Note     string    `json:"note,omitempty" yaml:"note,omitempty"`
	Date     string    `json:"date,omitempty" yaml:"date,omitempty"`

	// Missing lists the mandatory fields the user still has to supply.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ToDraft maps the extracted fields onto a transaction-creation request.
// The merchant becomes the note and the date is rendered as YYYY-MM-DD.
func (t ParsedTransaction) ToDraft() TransactionDraft {
	d := TransactionDraft{
		Type:     t.Direction,
		Currency: t.Currency,
		Note:     t.MerchantName(),
	}
	if t.Amount.Valid {
		d.Amount = t.Amount.Decimal.String()
	}
	if t.SuggestedCategory != nil {
		d.Category = *t.SuggestedCategory
	}
	if t.Date != nil {
		d.Date = t.Date.String()
	}
	d.Missing = missingFields(d)
	return d
}

func missingFields(d TransactionDraft) []string {
	var missing []string
	if !d.Type.IsKnown() {
		missing = append(missing, "type")
	}
	if d.Amount == "" {
		missing = append(missing, "amount")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

// Drafts maps a slice of transactions onto drafts.
func Drafts(txs []ParsedTransaction) []TransactionDraft {
	drafts := make([]TransactionDraft, 0, len(txs))
	for _, tx := range txs {
		drafts = append(drafts, tx.ToDraft())
	}
	return drafts
}
