// Package dateutils provides the date parsing and resolution helpers shared
// by the bank statement parsers.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the canonical date format for parsed transactions.
const DateLayoutISO = "2006-01-02"

// monthNumbers maps lower-cased month prefixes to month numbers. Statement
// text uses both abbreviated ("Jan") and full ("January") forms.
var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
	textDatePattern  = regexp.MustCompile(`(?i)^(\d{1,2})\s+([A-Za-z]{3,9})(?:\s+(\d{2}|\d{4}))?$`)
)

// MonthNumber resolves a month name or abbreviation to its number.
func MonthNumber(name string) (time.Month, bool) {
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthNumbers[strings.ToLower(name[:3])]
	return m, ok
}

// ResolveDate turns a statement date token into an ISO YYYY-MM-DD string.
// Supported forms: "DD/MM/YYYY", "DD/MM" (year substituted), "DD Mon YYYY",
// "DD Mon" (year substituted), and "DD Month YYYY". The detected statement
// year fills in whenever the token omits one.
func ResolveDate(token string, year int) (string, error) {
	token = strings.TrimSpace(token)

	if m := slashDatePattern.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		y := year
		if m[3] != "" {
			y = normalizeYear(m[3])
		}
		return makeISO(y, time.Month(month), day)
	}

	if m := textDatePattern.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := MonthNumber(m[2])
		if !ok {
			return "", fmt.Errorf("unknown month name: %s", m[2])
		}
		y := year
		if m[3] != "" {
			y = normalizeYear(m[3])
		}
		return makeISO(y, month, day)
	}

	// ISO dates pass straight through if they validate.
	if t, err := time.Parse(DateLayoutISO, token); err == nil {
		return t.Format(DateLayoutISO), nil
	}

	return "", fmt.Errorf("unrecognized date token: %q", token)
}

// makeISO validates the calendar date before formatting. time.Date silently
// normalizes overflow (32 Jan becomes 1 Feb), so compare round-trip parts.
func makeISO(year int, month time.Month, day int) (string, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return "", fmt.Errorf("invalid calendar date: %d-%02d-%02d", year, month, day)
	}
	return t.Format(DateLayoutISO), nil
}

// normalizeYear expands a 2-digit year token to 20YY.
func normalizeYear(s string) int {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if y < 100 {
		return 2000 + y
	}
	return y
}

// IsValidISO reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidISO(s string) bool {
	t, err := time.Parse(DateLayoutISO, s)
	return err == nil && t.Format(DateLayoutISO) == s
}

// DaysBetween returns the whole-day gap between two ISO dates (b - a).
func DaysBetween(a, b string) int {
	ta, err1 := time.Parse(DateLayoutISO, a)
	tb, err2 := time.Parse(DateLayoutISO, b)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}
