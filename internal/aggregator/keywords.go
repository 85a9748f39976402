package aggregator

import (
	"strings"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"of": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "against": true, "between": true, "into": true,
	"through": true, "during": true, "before": true, "after": true,
	"to": true, "from": true, "in": true, "on": true, "this": true,
	"that": true, "these": true, "those": true, "it": true, "its": true,
}

// topicKeywords picks one retrieval hint per unsupported claim: the first
// token longer than three characters that is not a stop word. Keywords
// keep claim order and are deduplicated.
func topicKeywords(unsupported []models.UnsupportedClaim, limit int) []string {
	topics := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)

	for _, claim := range unsupported {
		if len(topics) == limit {
			break
		}

		for _, word := range keywordTokenizer(claim.Claim) {
			if _, dup := seen[word]; dup {
				break
			}
			seen[word] = struct{}{}
			topics = append(topics, word)
			break
		}
	}

	return topics
}

// keywordTokenizer lowercases, strips punctuation and drops stop words and
// short tokens.
func keywordTokenizer(s string) []string {
	s = strings.ToLower(s)
	s = removePunctuation(s)

	tokens := []string{}
	for word := range strings.FieldsSeq(s) {
		if !stopWords[word] && len(word) > 3 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func removePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:()[]{}\"'", r) {
			return -1 // Remove this rune
		}
		return r
	}, s)
}
