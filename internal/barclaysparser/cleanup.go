package barclaysparser

import (
	"regexp"
	"strings"
)

// boilerplateRules strip page furniture out of a candidate description.
// Order matters: multi-word phrases go before the fragments they contain so
// a partial strip cannot leave half a phrase behind.
var boilerplateRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)balance brought forward`),
	regexp.MustCompile(`(?i)balance carried forward`),
	regexp.MustCompile(`(?i)start balance`),
	regexp.MustCompile(`(?i)end balance`),
	regexp.MustCompile(`(?i)opening balance`),
	regexp.MustCompile(`(?i)closing balance`),
	regexp.MustCompile(`(?i)your deposit is eligible[^.]*\.?`),
	regexp.MustCompile(`(?i)financial services compensation scheme`),
	regexp.MustCompile(`(?i)barclays bank uk plc[^.]*\.?`),
	regexp.MustCompile(`(?i)authorised by the prudential regulation authority[^.]*\.?`),
	regexp.MustCompile(`(?i)registered in england[^.]*\.?`),
	regexp.MustCompile(`(?i)barclays\.co\.uk\S*`),
	regexp.MustCompile(`(?i)business current account`),
	regexp.MustCompile(`(?i)account (?:no|number)\.?:?\s*\d*`),
	regexp.MustCompile(`(?i)sort code:?\s*(?:\d{2}-\d{2}-\d{2})?`),
	regexp.MustCompile(`\b\d{2}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{8}\b`),
	regexp.MustCompile(`(?i)page \d+ of \d+`),
	regexp.MustCompile(`(?i)\bcontinued\b`),
	regexp.MustCompile(`(?i)statement (?:period|date|number)[^\n]{0,30}`),
	regexp.MustCompile(`(?i)money (?:out|in)\b`),
	regexp.MustCompile(`(?i)\bdate\b\s+\bdescription\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*(?:\s+\d{2,4})?\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
	regexp.MustCompile(`£?\d{1,3}(?:,\d{3})*\.\d{2}|£?\d+\.\d{2}`),
}

var punctEdges = regexp.MustCompile(`^[\s.,:;*-]+|[\s.,:;*-]+$`)

const maxDescriptionLength = 120

// cleanDescription applies the boilerplate rules in order, collapses the
// remains and trims stray punctuation. A description that survives with more
// than two characters is considered real.
func cleanDescription(raw string) string {
	s := raw
	for _, rule := range boilerplateRules {
		s = rule.ReplaceAllString(s, " ")
	}
	s = strings.Join(strings.Fields(s), " ")
	s = punctEdges.ReplaceAllString(s, "")
	if len(s) > maxDescriptionLength {
		runes := []rune(s)
		if len(runes) > maxDescriptionLength {
			runes = runes[:maxDescriptionLength]
		}
		s = strings.TrimSpace(string(runes))
	}
	return s
}
