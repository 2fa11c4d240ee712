package smsparser

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"spendly/sms-extract/internal/textutils"
)

// MinSegmentLength is the shortest candidate message, in characters, that is
// kept after trimming. Anything shorter is noise.
const MinSegmentLength = 11

var (
	// two or more consecutive newlines; whitespace-only lines count as blank
	blankLines = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

	// A bank template token that starts a new message: at a sentence start
	// (start of block, after a newline or after . ! ?), used as a label
	// ("... Alert: Card ending ..."), or capitalised after a blank inside a
	// run-on line ("... at AMAZON Your A/c XX99 credited ..."). The last form
	// is case-sensitive so "Dear Customer, your account" stays whole, and
	// leaves out A/c and Acc, which follow "from" or "to" inside a message.
	templateBoundary = regexp.MustCompile(
		`(?:^|[\n.!?])[ \t]*(?i:(your|alert|dear|txn|transaction|a/c|acc[a-z]*))\b` +
			`|[ \t](?i:(alert|txn|transaction))[ \t]*:` +
			`|[ \t](Your|Dear|Alert|Txn|Transaction)\b`)
)

// Segment splits a block of text holding one or more concatenated messages
// into trimmed candidate messages, in input order. Candidates shorter than
// MinSegmentLength characters are dropped. The returned sequence is lazy and
// can be ranged over any number of times.
func Segment(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		normalized := textutils.Normalize(text)
		for _, block := range blankLines.Split(normalized, -1) {
			for _, part := range splitAtTemplateTokens(block) {
				part = strings.TrimSpace(part)
				if utf8.RuneCountInString(part) < MinSegmentLength {
					continue
				}
				if !yield(part) {
					return
				}
			}
		}
	}
}

// Segments collects Segment into a slice.
func Segments(text string) []string {
	var out []string
	for s := range Segment(text) {
		out = append(out, s)
	}
	return out
}

func splitAtTemplateTokens(block string) []string {
	matches := templateBoundary.FindAllStringSubmatchIndex(block, -1)
	if len(matches) == 0 {
		return []string{block}
	}

	parts := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		// m[2], m[4] and m[6] start the sentence, label and run-on tokens
		cut := m[2]
		for _, i := range []int{4, 6} {
			if cut < 0 {
				cut = m[i]
			}
		}
		if cut <= start {
			continue
		}
		parts = append(parts, block[start:cut])
		start = cut
	}
	return append(parts, block[start:])
}
