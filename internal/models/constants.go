package models

// Direction classifies the money flow of a message.
type Direction string

// Directions
const (
	DirectionExpense Direction = "expense"
	DirectionIncome  Direction = "income"
	DirectionUnknown Direction = "unknown"
)

// IsKnown reports whether the direction is expense or income.
func (d Direction) IsKnown() bool {
	return d == DirectionExpense || d == DirectionIncome
}

// Confidence is the coarse reliability tier of a parsed message.
type Confidence string

// Confidence tiers
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Confidences lists the tiers from best to worst.
var Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}

// ISO 4217 codes for the currencies the amount patterns recognise
const (
	CurrencyUSD = "USD"
	CurrencyINR = "INR"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// DateLayoutISO is the layout used for dates in drafts and flat records.
const DateLayoutISO = "2006-01-02"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatText = "text"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{FormatJSON, FormatYAML, FormatCSV, FormatText}

// Input sources
const (
	SourceAuto = "auto"
	SourceText = "text"
	SourceXML  = "xml"
	SourceHTML = "html"
)

// Sources lists the supported input sources.
var Sources = []string{SourceAuto, SourceText, SourceXML, SourceHTML}
