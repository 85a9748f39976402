// Package citations checks whether the citation markers an answer carries
// actually point at the evidence that entails its claims.
package citations

import (
	"regexp"
	"sort"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

// Markers like [1], (2), [A], (B) and [p1] count as citations. A marker
// only resolves if the context holds a passage with that id.
var citationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[(\d+)\]`),
	regexp.MustCompile(`\((\d+)\)`),
	regexp.MustCompile(`\[([A-Za-z]+)\]`),
	regexp.MustCompile(`\(([A-Za-z]+)\)`),
	regexp.MustCompile(`\[([A-Za-z]+\d+)\]`),
}

// proximityWindow is the maximum byte distance between a citation marker
// and the claim it is attributed to.
const proximityWindow = 200

// spamThreshold is the number of distinct cited passages above which a
// claim's citations are flagged as spam.
const spamThreshold = 3

type citation struct {
	id    string
	start int
	end   int
}

type Matcher struct {
	logger *zerolog.Logger
}

func NewMatcher(logger *zerolog.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Check associates every citation marker in the answer with its nearest
// claim and reports, per cited claim, whether the cited passages agree
// with the evidence the entailment judge actually used. Claims without
// citations produce no check.
func (m *Matcher) Check(answer string, claims []models.Claim, verdicts []models.Verdict, evidence models.Context) []models.CitationCheck {
	if len(claims) == 0 {
		return nil
	}

	found := extractCitations(answer)
	if len(found) == 0 {
		return nil
	}

	cited := make(map[int]map[string]struct{})
	for _, cit := range found {
		if _, ok := evidence.Get(cit.id); !ok {
			m.logger.Debug().Str("citation", cit.id).Msg("citation does not resolve to a passage")
			continue
		}

		claimIdx, distance := closestClaim(cit, claims)
		if distance >= proximityWindow {
			continue
		}

		if cited[claimIdx] == nil {
			cited[claimIdx] = make(map[string]struct{})
		}
		cited[claimIdx][cit.id] = struct{}{}
	}

	checks := make([]models.CitationCheck, 0, len(cited))
	for i, claim := range claims {
		ids, ok := cited[i]
		if !ok {
			continue
		}

		citedIDs := make([]string, 0, len(ids))
		for id := range ids {
			citedIDs = append(citedIDs, id)
		}
		sort.Strings(citedIDs)

		verdict := verdicts[i]
		checks = append(checks, models.CitationCheck{
			ClaimID:           claim.ID,
			CitedPassageIDs:   citedIDs,
			MatchesEntailment: verdict.Supported && intersects(citedIDs, verdict.EvidenceUsed),
			Spam:              len(citedIDs) > spamThreshold,
		})
	}

	return checks
}

// extractCitations finds all citation markers, deduplicated and ordered
// by position.
func extractCitations(text string) []citation {
	seen := make(map[citation]struct{})
	for _, pattern := range citationPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
			seen[citation{
				id:    text[match[2]:match[3]],
				start: match[0],
				end:   match[1],
			}] = struct{}{}
		}
	}

	citations := make([]citation, 0, len(seen))
	for cit := range seen {
		citations = append(citations, cit)
	}
	sort.Slice(citations, func(a, b int) bool {
		if citations[a].start != citations[b].start {
			return citations[a].start < citations[b].start
		}
		return citations[a].end < citations[b].end
	})

	return citations
}

// closestClaim returns the index of the claim nearest to the citation and
// the byte distance to it. A citation overlapping a claim's span has
// distance zero.
func closestClaim(cit citation, claims []models.Claim) (int, int) {
	closest := 0
	minDistance := int(^uint(0) >> 1)

	for i, claim := range claims {
		var distance int
		if cit.start <= claim.Span.End() && cit.end >= claim.Span.Start() {
			distance = 0
		} else {
			distance = min(abs(cit.start-claim.Span.End()), abs(cit.end-claim.Span.Start()))
		}

		if distance < minDistance {
			minDistance = distance
			closest = i
		}
	}

	return closest, minDistance
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	for _, id := range a {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
