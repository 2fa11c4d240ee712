package smsparser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// A merchant starts with an uppercase letter and continues with letters,
// digits, blanks, '&', apostrophes and hyphens.
const merchantCapture = `([A-Z][A-Za-z0-9 \t&'-]+?)`

// what may follow a merchant in templates 1, 3 and 4
const merchantEnd = `(?:\s+(?i:on|for|ref|via|through|using|dated|with)\b|\s*[.,;:\n]|$)`

// merchantTemplates are tried in order; the first accepted capture wins.
var merchantTemplates = []*regexp.Regexp{
	regexp.MustCompile(`\b(?i:at|to|from|via)\s+` + merchantCapture + merchantEnd),
	regexp.MustCompile(`\b(?i:paid|sent|transferred)\s+(?:(?i:to)\s+)?` + merchantCapture + `\s+(?i:via|through|using)\b`),
	regexp.MustCompile(`\b(?i:transaction)\s+(?i:at|for)\s+` + merchantCapture + merchantEnd),
	regexp.MustCompile(`\b(?i:purchase)\s+(?i:at|from)\s+` + merchantCapture + merchantEnd),
}

// Captures that are channel names or filler words, not counterparties.
var merchantStopwords = map[string]bool{
	"atm": true, "upi": true, "neft": true, "imps": true, "ref": true,
	"your": true, "the": true, "a": true, "an": true,
}

// ExtractMerchant returns the counterparty name found by the first template
// with an acceptable capture. Every match of a template is considered before
// moving on to the next template.
func ExtractMerchant(text string) (string, bool) {
	for _, re := range merchantTemplates {
		for _, groups := range re.FindAllStringSubmatch(text, -1) {
			if candidate, ok := acceptMerchant(groups[1]); ok {
				return candidate, true
			}
		}
	}
	return "", false
}

// acceptMerchant trims a capture and checks it is 3 to 49 characters long and
// not a stopword.
func acceptMerchant(capture string) (string, bool) {
	candidate := strings.TrimSpace(capture)
	n := utf8.RuneCountInString(candidate)
	if n <= 2 || n >= 50 {
		return "", false
	}
	if merchantStopwords[strings.ToLower(candidate)] {
		return "", false
	}
	return candidate, true
}
