package claims

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"github.com/rs/zerolog"
)

var (
	// Coordinating conjunctions between clauses. The conjunction stays with
	// the clause that follows it so each part remains a contiguous slice of
	// the sentence.
	conjunctionRe = regexp.MustCompile(`\s+(and|but|or|nor|yet|so)\s+`)

	// Comma followed by whitespace. Splits on these are suppressed when a
	// digit follows (thousands groupings, "1, 2 and 3" style lists).
	commaRe = regexp.MustCompile(`,\s+`)

	// Enumerated sentences ("1. foo", "a) bar") are kept whole.
	enumerationRe = regexp.MustCompile(`^\s*([0-9]+|[a-z])[.)]\s+`)

	alphanumRe = regexp.MustCompile(`[a-zA-Z0-9]`)
)

// Extractor splits answer text into atomic claims with spans that are
// recoverable against the exact original string. The sentence tokenizer is
// a constructed resource so tests can run without touching global state.
type Extractor struct {
	tokenizer sentences.SentenceTokenizer
	logger    *zerolog.Logger
}

// NewExtractor builds an extractor backed by the trained English Punkt
// sentence tokenizer.
func NewExtractor(logger *zerolog.Logger) (*Extractor, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return &Extractor{tokenizer: tokenizer, logger: logger}, nil
}

// Extract returns the ordered sequence of claims found in answer. Spans are
// byte offsets such that answer[span[0]:span[1]] == claim.Text for every
// claim. A blank answer produces an empty sequence, not an error.
// Near-duplicate claims are kept as independent entries; no merging happens
// here or downstream.
func (e *Extractor) Extract(answer string) []models.Claim {
	if strings.TrimSpace(answer) == "" {
		return nil
	}

	var claims []models.Claim
	cursor := 0
	for _, sentence := range e.tokenizer.Tokenize(answer) {
		text := strings.TrimSpace(sentence.Text)
		if text == "" {
			continue
		}

		start := strings.Index(answer[cursor:], text)
		if start < 0 {
			// Tokenizer output always derives from the input, so this only
			// trips if the cursor already passed the sentence. Skip rather
			// than emit an unrecoverable span.
			e.logger.Warn().Str("sentence", text).Msg("sentence not found in answer, skipping")
			continue
		}
		start += cursor
		cursor = start + len(text)

		for _, unit := range splitClauses(text) {
			if !keepable(unit.text) {
				continue
			}
			claims = append(claims, models.Claim{
				ID:   len(claims),
				Text: unit.text,
				Span: models.Span{start + unit.offset, start + unit.offset + len(unit.text)},
			})
		}
	}

	e.logger.Debug().Int("claims", len(claims)).Msg("claims extracted")
	return claims
}

// clauseUnit is one clause of a sentence plus its byte offset within that
// sentence.
type clauseUnit struct {
	text   string
	offset int
}

// splitClauses breaks a sentence into clause-level units on coordinating
// conjunctions and list commas. Enumerated sentences are returned whole.
// Every unit is a contiguous substring of the sentence.
func splitClauses(sentence string) []clauseUnit {
	if enumerationRe.MatchString(sentence) {
		return []clauseUnit{{text: sentence}}
	}

	units := []clauseUnit{{text: sentence}}
	units = splitEach(units, splitOnConjunctions)
	units = splitEach(units, splitOnCommas)
	return units
}

func splitEach(units []clauseUnit, split func(clauseUnit) []clauseUnit) []clauseUnit {
	var out []clauseUnit
	for _, u := range units {
		out = append(out, split(u)...)
	}
	return out
}

func splitOnConjunctions(u clauseUnit) []clauseUnit {
	matches := conjunctionRe.FindAllStringSubmatchIndex(u.text, -1)
	if len(matches) == 0 {
		return []clauseUnit{u}
	}

	var parts []clauseUnit
	last := 0
	for _, m := range matches {
		// m[0]:m[1] is the whole separator, m[2]:m[3] the conjunction word.
		parts = append(parts, clauseUnit{text: u.text[last:m[0]], offset: u.offset + last})
		last = m[2]
	}
	parts = append(parts, clauseUnit{text: u.text[last:], offset: u.offset + last})
	return parts
}

func splitOnCommas(u clauseUnit) []clauseUnit {
	matches := commaRe.FindAllStringIndex(u.text, -1)
	if len(matches) == 0 {
		return []clauseUnit{u}
	}

	var parts []clauseUnit
	last := 0
	for _, m := range matches {
		// Keep numeric lists and thousands groupings intact.
		if m[1] < len(u.text) && u.text[m[1]] >= '0' && u.text[m[1]] <= '9' {
			continue
		}
		parts = append(parts, clauseUnit{text: u.text[last:m[0]], offset: u.offset + last})
		last = m[1]
	}
	parts = append(parts, clauseUnit{text: u.text[last:], offset: u.offset + last})
	return parts
}

// keepable rejects units that carry no factual content: pure punctuation,
// whitespace, or fragments shorter than three characters.
func keepable(unit string) bool {
	trimmed := strings.TrimSpace(unit)
	return len(trimmed) >= 3 && alphanumRe.MatchString(trimmed)
}
