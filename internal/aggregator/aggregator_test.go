package aggregator

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func supportedVerdict(claimID int, evidence ...string) models.Verdict {
	return models.Verdict{ClaimID: claimID, Supported: true, Confidence: 0.9, EvidenceUsed: evidence}
}

func failedVerdict(claimID int, missingInfo string) models.Verdict {
	return models.Verdict{ClaimID: claimID, Supported: false, Confidence: 0.2, MissingInfo: missingInfo, EvidenceUsed: []string{}}
}

func TestAggregate_AllSupported(t *testing.T) {
	agg := NewAggregator(0.5, newTestLogger())

	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is in Paris.", Span: models.Span{0, 29}},
		{ID: 1, Text: "It was completed in 1889.", Span: models.Span{30, 55}},
	}
	verdicts := []models.Verdict{
		supportedVerdict(0, "p1"),
		supportedVerdict(1, "p2"),
	}

	result := agg.Aggregate(claims, verdicts, nil)

	if result.CoverageScore != 1.0 {
		t.Errorf("Expected coverage 1.0, got %f", result.CoverageScore)
	}
	if result.TotalClaims != 2 || result.SupportedClaims != 2 {
		t.Errorf("Expected 2/2 claims, got %d/%d", result.SupportedClaims, result.TotalClaims)
	}
	if len(result.Unsupported) != 0 {
		t.Errorf("Expected no unsupported claims, got %v", result.Unsupported)
	}
	if !reflect.DeepEqual(result.Feedback, []string{"All claims are supported by evidence. Great coverage!"}) {
		t.Errorf("Unexpected feedback: %v", result.Feedback)
	}
	if len(result.ClaimAnalysis) != 2 {
		t.Fatalf("Expected 2 claim analyses, got %d", len(result.ClaimAnalysis))
	}
	if result.ClaimAnalysis[0].Citation != nil {
		t.Error("Expected no citation check without citations")
	}
}

func TestAggregate_PartialCoverage(t *testing.T) {
	agg := NewAggregator(0.5, newTestLogger())

	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is in Paris.", Span: models.Span{0, 29}},
		{ID: 1, Text: "The tower is 500 meters tall.", Span: models.Span{30, 59}},
		{ID: 2, Text: "It was completed in 1889.", Span: models.Span{60, 85}},
	}
	verdicts := []models.Verdict{
		supportedVerdict(0, "p1"),
		failedVerdict(1, "No passage states the height"),
		supportedVerdict(2, "p2"),
	}

	result := agg.Aggregate(claims, verdicts, nil)

	if math.Abs(result.CoverageScore-2.0/3.0) > 1e-9 {
		t.Errorf("Expected coverage 2/3, got %f", result.CoverageScore)
	}
	if result.SupportedClaims+len(result.Unsupported) != result.TotalClaims {
		t.Error("Supported plus unsupported must equal total")
	}
	if len(result.Unsupported) != 1 {
		t.Fatalf("Expected 1 unsupported claim, got %d", len(result.Unsupported))
	}

	unsupported := result.Unsupported[0]
	if unsupported.Claim != "The tower is 500 meters tall." {
		t.Errorf("Unexpected unsupported claim: %q", unsupported.Claim)
	}
	if unsupported.Span != (models.Span{30, 59}) {
		t.Errorf("Unexpected span: %v", unsupported.Span)
	}
	if unsupported.MissingInfo != "No passage states the height" {
		t.Errorf("Unexpected missing info: %q", unsupported.MissingInfo)
	}

	expectedLine := "Unsupported claim: 'The tower is 500 meters tall.' - No passage states the height"
	if !containsLine(result.Feedback, expectedLine) {
		t.Errorf("Expected feedback line %q, got %v", expectedLine, result.Feedback)
	}
}

func TestAggregate_ZeroClaims(t *testing.T) {
	agg := NewAggregator(0.5, newTestLogger())

	result := agg.Aggregate(nil, nil, nil)

	if result.CoverageScore != 1.0 {
		t.Errorf("Expected coverage 1.0 for zero claims, got %f", result.CoverageScore)
	}
	if result.TotalClaims != 0 || result.SupportedClaims != 0 {
		t.Errorf("Expected zero claim counts, got %d/%d", result.SupportedClaims, result.TotalClaims)
	}
	if result.Unsupported == nil || len(result.Unsupported) != 0 {
		t.Errorf("Expected empty unsupported slice, got %v", result.Unsupported)
	}
	if len(result.Feedback) != 0 {
		t.Errorf("Expected no feedback for zero claims, got %v", result.Feedback)
	}
}

func TestAggregate_UnsupportedPreserveClaimOrder(t *testing.T) {
	agg := NewAggregator(0.5, newTestLogger())

	claims := []models.Claim{
		{ID: 0, Text: "First unsupported claim.", Span: models.Span{0, 24}},
		{ID: 1, Text: "A supported claim.", Span: models.Span{25, 43}},
		{ID: 2, Text: "Second unsupported claim.", Span: models.Span{44, 69}},
	}
	verdicts := []models.Verdict{
		failedVerdict(0, "missing"),
		supportedVerdict(1, "p1"),
		failedVerdict(2, "missing"),
	}

	result := agg.Aggregate(claims, verdicts, nil)

	if len(result.Unsupported) != 2 {
		t.Fatalf("Expected 2 unsupported claims, got %d", len(result.Unsupported))
	}
	if result.Unsupported[0].Claim != "First unsupported claim." ||
		result.Unsupported[1].Claim != "Second unsupported claim." {
		t.Errorf("Unsupported claims out of order: %v", result.Unsupported)
	}
}

func TestAggregate_CitationChecksAttached(t *testing.T) {
	agg := NewAggregator(0.5, newTestLogger())

	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is in Paris.", Span: models.Span{0, 29}},
		{ID: 1, Text: "It was completed in 1889.", Span: models.Span{30, 55}},
	}
	verdicts := []models.Verdict{
		supportedVerdict(0, "p1"),
		supportedVerdict(1, "p2"),
	}
	checks := []models.CitationCheck{
		{ClaimID: 1, CitedPassageIDs: []string{"p3"}, MatchesEntailment: false},
	}

	result := agg.Aggregate(claims, verdicts, checks)

	if result.ClaimAnalysis[0].Citation != nil {
		t.Error("Expected no citation check on the uncited claim")
	}
	if result.ClaimAnalysis[1].Citation == nil {
		t.Fatal("Expected citation check on the cited claim")
	}
	if result.ClaimAnalysis[1].Citation.MatchesEntailment {
		t.Error("Expected citation mismatch preserved")
	}

	expectedLine := "1 citation(s) do not match the evidence that supports their claims"
	if !containsLine(result.Feedback, expectedLine) {
		t.Errorf("Expected feedback line %q, got %v", expectedLine, result.Feedback)
	}
}

func TestAggregate_LowCoverageNamesTopics(t *testing.T) {
	agg := NewAggregator(0.5, newTestLogger())

	claims := []models.Claim{
		{ID: 0, Text: "The Eiffel Tower is 500 meters tall.", Span: models.Span{0, 36}},
		{ID: 1, Text: "Bees can fly backwards.", Span: models.Span{37, 60}},
	}
	verdicts := []models.Verdict{
		failedVerdict(0, "missing"),
		failedVerdict(1, "missing"),
	}

	result := agg.Aggregate(claims, verdicts, nil)

	found := false
	for _, line := range result.Feedback {
		if strings.HasPrefix(line, "Coverage 0.00 is below the 0.50 target.") {
			found = true
			if !strings.Contains(line, "eiffel") || !strings.Contains(line, "bees") {
				t.Errorf("Expected topic keywords in feedback, got %q", line)
			}
		}
	}
	if !found {
		t.Errorf("Expected low-coverage feedback line, got %v", result.Feedback)
	}
}

func TestTopicKeywords(t *testing.T) {
	tests := []struct {
		name        string
		unsupported []models.UnsupportedClaim
		limit       int
		expected    []string
	}{
		{
			name: "first keyword per claim",
			unsupported: []models.UnsupportedClaim{
				{Claim: "The Eiffel Tower is tall."},
				{Claim: "Bees communicate through dance."},
			},
			limit:    3,
			expected: []string{"eiffel", "bees"},
		},
		{
			name: "duplicates collapse",
			unsupported: []models.UnsupportedClaim{
				{Claim: "The tower is tall."},
				{Claim: "The tower is old."},
			},
			limit:    3,
			expected: []string{"tower"},
		},
		{
			name: "limit respected",
			unsupported: []models.UnsupportedClaim{
				{Claim: "Alpha facts."},
				{Claim: "Bravo facts."},
				{Claim: "Charlie facts."},
				{Claim: "Delta facts."},
			},
			limit:    3,
			expected: []string{"alpha", "bravo", "charlie"},
		},
		{
			name: "stop words and short tokens skipped",
			unsupported: []models.UnsupportedClaim{
				{Claim: "It was the era of big data."},
			},
			limit:    3,
			expected: []string{"data"},
		},
		{
			name:        "no keywords",
			unsupported: []models.UnsupportedClaim{{Claim: "It is so."}},
			limit:       3,
			expected:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := topicKeywords(tt.unsupported, tt.limit)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTruncateClaim(t *testing.T) {
	short := "A short claim."
	if got := truncateClaim(short, 50); got != short {
		t.Errorf("Expected short claim untouched, got %q", got)
	}

	long := strings.Repeat("x", 60)
	got := truncateClaim(long, 50)
	if len(got) != 53 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected 50 chars plus ellipsis, got %q (len %d)", got, len(got))
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
