package schema

import (
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled patterns for employment classification. Direct-employment
// indicators are checked before agency/temporary ones; first match wins.
var (
	amznTypeRe = regexp.MustCompile(`\b(amzn|amazon|blue badge|bb|fte|full ?time|part ?time|pt)\b`)
	tempTypeRe = regexp.MustCompile(`(temp|temporary|seasonal|agency|vendor|contract|white badge|wb|csg|adecco|randstad)`)

	nonDigitRe     = regexp.MustCompile(`\D`)
	leadingNumRe   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	thousandsSepRe = regexp.MustCompile(`,`)
)

// NormalizeID canonicalizes a free-text employee identifier so that ids differing
// only by leading zeros or non-digit padding collapse to the same key:
//  1. TrimSpace
//  2. Strip every non-digit character
//  3. Strip leading zeros
//  4. If nothing is left, fall back to the trimmed input
//
// Whitespace-only input yields "", which callers treat as "no identifier".
func NormalizeID(v string) string {
	t := strings.TrimSpace(v)
	digits := nonDigitRe.ReplaceAllString(t, "")
	if noLead := strings.TrimLeft(digits, "0"); noLead != "" {
		return noLead
	}
	return t
}

// ClassifyEmployment maps a free-text employment designation to a Category.
// Empty text is UNKNOWN; AMZN patterns win over TEMP patterns.
func ClassifyEmployment(v string) Category {
	x := Canon(v)
	switch {
	case x == "":
		return CategoryUnknown
	case amznTypeRe.MatchString(x):
		return CategoryAMZN
	case tempTypeRe.MatchString(x):
		return CategoryTEMP
	case x == "temp":
		return CategoryTEMP
	case x == "amzn":
		return CategoryAMZN
	}
	return CategoryUnknown
}

// CornerCode returns the first two characters of a shift pattern.
func CornerCode(shiftPattern string) string {
	r := []rune(shiftPattern)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

// ScheduleMarker returns the first and third characters of a shift pattern,
// or "" when the pattern is shorter than three characters.
func ScheduleMarker(shiftPattern string) string {
	r := []rune(shiftPattern)
	if len(r) < 3 {
		return ""
	}
	return string([]rune{r[0], r[2]})
}

// ParseLocaleNumber parses a report number such as "1,234.50". Thousands
// separators are stripped and the leading numeric part is used, so "8.0 h"
// parses as 8. Anything non-numeric parses as zero.
func ParseLocaleNumber(s string) float64 {
	t := strings.TrimSpace(thousandsSepRe.ReplaceAllString(s, ""))
	m := leadingNumRe.FindString(t)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return n
}
