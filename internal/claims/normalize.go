package claims

import (
	"regexp"
	"strings"
)

var (
	thousandsRe  = regexp.MustCompile(`(\d),(\d)`)
	unitRe       = regexp.MustCompile(`\b(km|mi|kg|lb|hr|min|sec)\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var unitExpansions = map[string]string{
	"km":  "kilometer",
	"mi":  "mile",
	"kg":  "kilogram",
	"lb":  "pound",
	"hr":  "hour",
	"min": "minute",
	"sec": "second",
}

// Normalize canonicalizes claim text for lexical matching: lowercase,
// thousands separators stripped ("1,000" -> "1000"), common measurement
// abbreviations expanded, whitespace collapsed. Retrieval queries use the
// normalized form; the claim itself keeps its original text.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = thousandsRe.ReplaceAllString(s, "$1$2")
	s = unitRe.ReplaceAllStringFunc(s, func(m string) string {
		return unitExpansions[m]
	})
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
