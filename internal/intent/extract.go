// internal/intent/extract.go
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// ==========================================
// BRAND EXTRACTION
// ==========================================

// Brand candidates are capitalized tokens of two or more characters. The
// first candidate that is not a stop word wins; queries naming several
// brands keep only the first one.
var brandPattern = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&'-]+)\b`)

// Sentence-case verbs, trigger terms, and duration vocabulary would all
// pass the capitalization check, so they are excluded explicitly.
var brandStopWords = map[string]struct{}{
	"show": {}, "get": {}, "list": {}, "find": {}, "give": {},
	"what": {}, "the": {}, "for": {}, "last": {}, "this": {},
	"supplier": {}, "status": {}, "report": {},
	"sales": {}, "history": {}, "sold": {},
	"stock": {}, "inventory": {}, "availability": {},
	"one": {}, "two": {}, "three": {}, "four": {}, "five": {}, "six": {},
	"seven": {}, "eight": {}, "nine": {}, "ten": {}, "eleven": {}, "twelve": {},
	"day": {}, "days": {}, "week": {}, "weeks": {},
	"month": {}, "months": {}, "year": {}, "years": {},
}

func extractBrand(query string) (string, bool) {
	// A duration phrase at sentence start ("Six-month sales...") reads as
	// one capitalized hyphenated token, so durations are removed first.
	stripped := durationPattern.ReplaceAllString(query, " ")
	for _, match := range brandPattern.FindAllStringSubmatch(stripped, -1) {
		token := match[1]
		if _, skip := brandStopWords[strings.ToLower(token)]; skip {
			continue
		}
		return token, true
	}
	return "", false
}

// ==========================================
// DURATION EXTRACTION
// ==========================================

// The duration grammar is a closed quantity+unit pair: a number (digits or
// a spelled-out word up to twelve) followed by day/week/month/year, with an
// optional hyphen or space between them ("six-month", "30 day", "2 weeks").
var durationPattern = regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)[\s-]*(day|week|month|year)s?\b`)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

var unitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
	"year":  365,
}

// Bare relative phrases with no explicit quantity. Checked after the
// quantity+unit grammar so "last 2 weeks" reads the quantity.
var relativeWindows = []struct {
	phrase string
	days   int
}{
	{"last week", 7},
	{"last month", 30},
	{"last year", 365},
}

// Windows above ten years are treated as nonsense and rejected, which
// sends the caller to the default instead.
const maxWindowDays = 3650

// extractWindowDays parses a duration phrase out of the query and returns
// its length in days. Returns false when no phrase is present or the
// parsed window is out of range; the caller falls back to its default.
func extractWindowDays(query string) (int, bool) {
	if match := durationPattern.FindStringSubmatch(query); match != nil {
		quantity, ok := parseQuantity(match[1])
		if ok {
			days := quantity * unitDays[strings.ToLower(match[2])]
			if days > 0 && days <= maxWindowDays {
				return days, true
			}
		}
		return 0, false
	}

	lower := strings.ToLower(query)
	for _, window := range relativeWindows {
		if strings.Contains(lower, window.phrase) {
			return window.days, true
		}
	}
	return 0, false
}

func parseQuantity(token string) (int, bool) {
	if n, err := strconv.Atoi(token); err == nil {
		return n, true
	}
	n, ok := numberWords[strings.ToLower(token)]
	return n, ok
}

// ==========================================
// SUPPLIER ID EXTRACTION
// ==========================================

// Labeled form: "supplier 12345", "supplier id SUP-2041", "supplier #99".
var labeledSupplierPattern = regexp.MustCompile(`(?i)\bsupplier\s*(?:id)?[\s#:]*([A-Za-z0-9-]*\d[A-Za-z0-9-]*)\b`)

// Bare form: any standalone token carrying a run of three or more digits.
// Requiring the digits keeps brand names and ordinary words out.
var bareSupplierPattern = regexp.MustCompile(`\b([A-Za-z]*\d{3,}[A-Za-z0-9-]*)\b`)

func extractSupplierID(query string) (string, bool) {
	if match := labeledSupplierPattern.FindStringSubmatch(query); match != nil {
		return match[1], true
	}

	// Strip duration phrases before the bare scan so the 180 in
	// "last 180 days" is not mistaken for an identifier.
	stripped := durationPattern.ReplaceAllString(query, " ")
	if match := bareSupplierPattern.FindStringSubmatch(stripped); match != nil {
		return match[1], true
	}
	return "", false
}
