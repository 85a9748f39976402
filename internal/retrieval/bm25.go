package retrieval

import (
	"math"
	"regexp"
	"strings"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/claims"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

// Okapi BM25 parameters, the conventional defaults.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

var tokenRe = regexp.MustCompile(`\w+`)

func tokenize(s string) []string {
	return tokenRe.FindAllString(strings.ToLower(s), -1)
}

// bm25Scores scores every passage in the context against the claim.
// Document-frequency statistics come from the context alone, never a global
// corpus: a context is a single-query evidence set, not an index. The claim
// side is normalized first so "1,000 km" matches "1000 kilometer". Uses the
// non-negative idf form ln(1 + (N-n+0.5)/(n+0.5)).
func bm25Scores(claim models.Claim, evidence models.Context) []float64 {
	docs := make([][]string, evidence.Len())
	df := make(map[string]int)
	totalLen := 0
	for i, p := range evidence.Passages {
		docs[i] = tokenize(p.Text)
		totalLen += len(docs[i])
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	scores := make([]float64, len(docs))
	if totalLen == 0 {
		return scores
	}
	avgLen := float64(totalLen) / float64(len(docs))

	query := tokenize(claims.Normalize(claim.Text))
	n := float64(len(docs))
	for i, doc := range docs {
		if len(doc) == 0 {
			continue
		}
		tf := make(map[string]int, len(doc))
		for _, tok := range doc {
			tf[tok]++
		}

		docLen := float64(len(doc))
		var score float64
		for _, q := range query {
			freq := float64(tf[q])
			if freq == 0 {
				continue
			}
			idf := math.Log(1 + (n-float64(df[q])+0.5)/(float64(df[q])+0.5))
			score += idf * freq * (bm25K1 + 1) / (freq + bm25K1*(1-bm25B+bm25B*docLen/avgLen))
		}
		scores[i] = score
	}
	return scores
}
