// Package textutils provides the text segmentation helpers shared by the
// statement parsers.
package textutils

import (
	"regexp"
	"strings"
)

// minLineLength is the floor below which a segmented line is discarded as
// noise (page furniture, stray column fragments).
const minLineLength = 20

// dateTokenPattern matches the date shapes that begin a transaction row in UK
// statements: "DD/MM/YYYY", "DD/MM", "DD Mon" and "DD Mon YYYY".
var dateTokenPattern = regexp.MustCompile(
	`\d{1,2}/\d{1,2}(?:/\d{2,4})?|\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*(?:\s+\d{4})?`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// SegmentLines restructures raw statement text into candidate transaction
// lines: a line break is inserted before every date-like token, then lines
// shorter than the noise floor are dropped.
func SegmentLines(text string) []string {
	text = strings.ReplaceAll(text, "\t", " ")
	broken := dateTokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		return "\n" + match
	})

	var lines []string
	for _, line := range strings.Split(broken, "\n") {
		line = strings.TrimSpace(whitespacePattern.ReplaceAllString(line, " "))
		if len(line) > minLineLength {
			lines = append(lines, line)
		}
	}
	return lines
}

// CollapseWhitespace flattens a document into one space-separated token
// stream. The Barclays parser works on this blob because line splitting
// destroys its interleaved description and balance columns.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// Sample returns the first n characters of text for error diagnostics.
func Sample(text string, n int) string {
	text = strings.TrimSpace(text)
	if len(text) <= n {
		return text
	}
	return text[:n]
}

// ContainsAny reports whether text contains any of the needles,
// case-insensitively.
func ContainsAny(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether text contains every needle,
// case-insensitively.
func ContainsAll(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		if !strings.Contains(lower, strings.ToLower(needle)) {
			return false
		}
	}
	return true
}
