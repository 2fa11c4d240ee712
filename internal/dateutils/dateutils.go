// Package dateutils provides the calendar helpers used by date extraction.
package dateutils

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayoutISO is the YYYY-MM-DD layout.
const DateLayoutISO = "2006-01-02"

var monthsByPrefix = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// MonthFromName resolves an English month name or abbreviation ("Jan",
// "january", "Sept") by its first three letters.
func MonthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[name[:3]]
	return m, ok
}

// ExpandYear turns a two-digit year into 2000+YY. Other years pass through.
func ExpandYear(year int) int {
	if year >= 0 && year < 100 {
		return 2000 + year
	}
	return year
}

// NewDate builds a calendar date after checking the day is in [1,31], the
// month in [1,12] and that the date actually exists (no 30 February).
func NewDate(year, month, day int) (civil.Date, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return civil.Date{}, false
	}
	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}
