// Package textutils provides text clean-up helpers applied to raw input
// before it reaches the extractor.
package textutils

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)
	trailingSpace   = regexp.MustCompile(`[ \t]+\n`)
	leadingSpace    = regexp.MustCompile(`\n[ \t]+`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
)

// Normalize folds line endings to "\n" and applies Unicode NFKC so fullwidth
// digits, fullwidth currency signs and no-break spaces become their plain
// forms. Line structure is preserved.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFKC.String(text)
}

// CollapseWhitespace squeezes runs of horizontal whitespace into one space,
// strips spaces at line ends and limits blank runs to one empty line.
func CollapseWhitespace(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = leadingSpace.ReplaceAllString(text, "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Snippet shortens text to at most n runes for logs and error messages.
func Snippet(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
