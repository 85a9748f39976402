package citations

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

func newTestMatcher() *Matcher {
	logger := zerolog.Nop()
	return NewMatcher(&logger)
}

func citationEvidence(ids ...string) models.Context {
	passages := make([]models.Passage, len(ids))
	for i, id := range ids {
		passages[i] = models.Passage{ID: id, Text: "text for " + id}
	}
	return models.Context{Passages: passages}
}

func TestCheck_CitationMatchesEvidence(t *testing.T) {
	answer := "The Eiffel Tower is in Paris [p1]."
	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is in Paris .", Span: models.Span{0, 33}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, Confidence: 0.9, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1", "p2"))

	if len(checks) != 1 {
		t.Fatalf("Expected 1 check, got %d", len(checks))
	}
	if !reflect.DeepEqual(checks[0].CitedPassageIDs, []string{"p1"}) {
		t.Errorf("Expected cited [p1], got %v", checks[0].CitedPassageIDs)
	}
	if !checks[0].MatchesEntailment {
		t.Error("Expected citation to match the evidence used")
	}
	if checks[0].Spam {
		t.Error("Expected no spam flag for a single citation")
	}
}

func TestCheck_CitationNotInEvidenceUsed(t *testing.T) {
	answer := "The Eiffel Tower is in Paris [p2]."
	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is in Paris .", Span: models.Span{0, 33}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, Confidence: 0.9, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1", "p2"))

	if len(checks) != 1 {
		t.Fatalf("Expected 1 check, got %d", len(checks))
	}
	if checks[0].MatchesEntailment {
		t.Error("Expected mismatch when the cited passage is not in the evidence used")
	}
}

func TestCheck_UnsupportedClaimNeverMatches(t *testing.T) {
	answer := "The tower is 500 meters tall [p1]."
	claims := []models.Claim{
		{ID: 0, Text: "The tower is 500 meters tall .", Span: models.Span{0, 33}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: false, MissingInfo: "not in evidence", EvidenceUsed: []string{}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1"))

	if len(checks) != 1 {
		t.Fatalf("Expected 1 check, got %d", len(checks))
	}
	if checks[0].MatchesEntailment {
		t.Error("Expected no match for an unsupported claim")
	}
}

func TestCheck_NoCitations(t *testing.T) {
	answer := "The Eiffel Tower is in Paris."
	claims := []models.Claim{
		{ID: 0, Text: answer, Span: models.Span{0, len(answer)}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1"))

	if len(checks) != 0 {
		t.Errorf("Expected no checks without citation markers, got %d", len(checks))
	}
}

func TestCheck_UnresolvableCitationIgnored(t *testing.T) {
	answer := "The Eiffel Tower is in Paris [99]."
	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is in Paris .", Span: models.Span{0, 33}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1"))

	if len(checks) != 0 {
		t.Errorf("Expected citation with unknown passage id to be dropped, got %d checks", len(checks))
	}
}

func TestCheck_SpamFlag(t *testing.T) {
	answer := "Everything is true [p1] [p2] [p3] [p4]."
	claims := []models.Claim{
		{ID: 0, Text: "Everything is true .", Span: models.Span{0, 18}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1", "p2", "p3", "p4"))

	if len(checks) != 1 {
		t.Fatalf("Expected 1 check, got %d", len(checks))
	}
	if !checks[0].Spam {
		t.Error("Expected spam flag for four distinct cited passages")
	}
	if !reflect.DeepEqual(checks[0].CitedPassageIDs, []string{"p1", "p2", "p3", "p4"}) {
		t.Errorf("Expected sorted cited ids, got %v", checks[0].CitedPassageIDs)
	}
}

func TestCheck_ThreeCitationsNotSpam(t *testing.T) {
	answer := "Everything is true [p1] [p2] [p3]."
	claims := []models.Claim{
		{ID: 0, Text: "Everything is true .", Span: models.Span{0, 18}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1", "p2", "p3"))

	if len(checks) != 1 {
		t.Fatalf("Expected 1 check, got %d", len(checks))
	}
	if checks[0].Spam {
		t.Error("Expected three citations to stay below the spam threshold")
	}
}

func TestCheck_DistantCitationDropped(t *testing.T) {
	claimText := "The Eiffel Tower is in Paris."
	answer := claimText + strings.Repeat(" padding", 40) + " [p1]"
	claims := []models.Claim{
		{ID: 0, Text: claimText, Span: models.Span{0, len(claimText)}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, EvidenceUsed: []string{"p1"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1"))

	if len(checks) != 0 {
		t.Errorf("Expected citation beyond the proximity window to be dropped, got %d checks", len(checks))
	}
}

func TestCheck_CitationGoesToClosestClaim(t *testing.T) {
	first := "The Eiffel Tower is in Paris."
	second := "It was completed in 1889."
	answer := first + " " + second + " [p2]"
	claims := []models.Claim{
		{ID: 0, Text: first, Span: models.Span{0, len(first)}},
		{ID: 1, Text: second, Span: models.Span{len(first) + 1, len(first) + 1 + len(second)}},
	}
	verdicts := []models.Verdict{
		{ClaimID: 0, Supported: true, EvidenceUsed: []string{"p1"}},
		{ClaimID: 1, Supported: true, EvidenceUsed: []string{"p2"}},
	}

	checks := newTestMatcher().Check(answer, claims, verdicts, citationEvidence("p1", "p2"))

	if len(checks) != 1 {
		t.Fatalf("Expected 1 check, got %d", len(checks))
	}
	if checks[0].ClaimID != 1 {
		t.Errorf("Expected citation attributed to the nearest claim, got claim %d", checks[0].ClaimID)
	}
	if !checks[0].MatchesEntailment {
		t.Error("Expected citation on the nearest claim to match its evidence")
	}
}

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []citation
	}{
		{
			name:     "numeric bracket",
			text:     "fact [1]",
			expected: []citation{{id: "1", start: 5, end: 8}},
		},
		{
			name:     "numeric paren",
			text:     "fact (2)",
			expected: []citation{{id: "2", start: 5, end: 8}},
		},
		{
			name:     "letter bracket",
			text:     "fact [A]",
			expected: []citation{{id: "A", start: 5, end: 8}},
		},
		{
			name:     "letter paren",
			text:     "fact (B)",
			expected: []citation{{id: "B", start: 5, end: 8}},
		},
		{
			name:     "alphanumeric bracket",
			text:     "fact [p1]",
			expected: []citation{{id: "p1", start: 5, end: 9}},
		},
		{
			name: "mixed markers ordered by position",
			text: "one [p1] two (3)",
			expected: []citation{
				{id: "p1", start: 4, end: 8},
				{id: "3", start: 13, end: 16},
			},
		},
		{
			name:     "no markers",
			text:     "nothing to see",
			expected: []citation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractCitations(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
