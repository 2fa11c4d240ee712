package smsparser

import (
	"regexp"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"spendly/sms-extract/internal/dateutils"
)

const monthName = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b\.?`

var (
	// 09-01-26, 9/1/2026
	numericDate = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4}|\d{2})\b`)
	// 09-Jan-26, 9 January 2026, 09 Jan
	dayMonthDate = regexp.MustCompile(`(?i)\b(\d{1,2})[-\s]` + monthName + `(?:[-\s,]\s*(\d{4}|\d{2})\b)?`)
	// Jan 9, 2026, Jan 09
	monthDayDate = regexp.MustCompile(`(?i)\b` + monthName + `\s+(\d{1,2})\b(?:,?\s*(\d{4})\b)?`)
	// 2026-01-09
	isoDate = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

type dateFamily struct {
	name  string
	re    *regexp.Regexp
	build func(text string, idx []int, now time.Time) (civil.Date, bool)
}

var dateFamilies = []dateFamily{
	{name: "numeric", re: numericDate, build: buildNumericDate},
	{name: "day_month", re: dayMonthDate, build: buildDayMonthDate},
	{name: "month_day", re: monthDayDate, build: buildMonthDayDate},
	{name: "iso", re: isoDate, build: buildISODate},
}

// ExtractDate returns the first valid calendar date found by the ordered date
// families. Only the first match of a family is considered; a malformed match
// (day or month out of range, date that does not exist) skips to the next
// family. Dates without a year fall in now's year.
func ExtractDate(text string, now time.Time) (civil.Date, bool) {
	d, _, ok := extractDate(text, now)
	return d, ok
}

func extractDate(text string, now time.Time) (civil.Date, string, bool) {
	for _, f := range dateFamilies {
		idx := f.re.FindStringSubmatchIndex(text)
		if idx == nil {
			continue
		}
		if d, ok := f.build(text, idx, now); ok {
			return d, f.name, true
		}
	}
	return civil.Date{}, "", false
}

// group returns capture group n of a FindStringSubmatchIndex result, or ""
// when the group did not participate.
func group(text string, idx []int, n int) string {
	start, end := idx[2*n], idx[2*n+1]
	if start < 0 {
		return ""
	}
	return text[start:end]
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// yearOrCurrent expands a captured year, or uses now's year when the group is
// empty or is really the hour of a "10:30" time.
func yearOrCurrent(text string, idx []int, n int, now time.Time) int {
	y := group(text, idx, n)
	if y == "" {
		return now.Year()
	}
	if end := idx[2*n+1]; end < len(text) && text[end] == ':' {
		return now.Year()
	}
	return dateutils.ExpandYear(atoi(y))
}

func buildNumericDate(text string, idx []int, _ time.Time) (civil.Date, bool) {
	day := atoi(group(text, idx, 1))
	month := atoi(group(text, idx, 2))
	year := dateutils.ExpandYear(atoi(group(text, idx, 3)))
	return dateutils.NewDate(year, month, day)
}

func buildDayMonthDate(text string, idx []int, now time.Time) (civil.Date, bool) {
	month, ok := dateutils.MonthFromName(group(text, idx, 2))
	if !ok {
		return civil.Date{}, false
	}
	day := atoi(group(text, idx, 1))
	return dateutils.NewDate(yearOrCurrent(text, idx, 3, now), int(month), day)
}

func buildMonthDayDate(text string, idx []int, now time.Time) (civil.Date, bool) {
	month, ok := dateutils.MonthFromName(group(text, idx, 1))
	if !ok {
		return civil.Date{}, false
	}
	day := atoi(group(text, idx, 2))
	return dateutils.NewDate(yearOrCurrent(text, idx, 3, now), int(month), day)
}

func buildISODate(text string, idx []int, _ time.Time) (civil.Date, bool) {
	return dateutils.NewDate(atoi(group(text, idx, 1)), atoi(group(text, idx, 2)), atoi(group(text, idx, 3)))
}
