package aggregator

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

const defaultCoverageTarget = 0.5

// maxTopicKeywords caps the retrieval hints named in the low-coverage
// feedback line.
const maxTopicKeywords = 3

// Aggregator folds per-claim verdicts and citation checks into the final
// coverage result with rule-based feedback.
type Aggregator struct {
	coverageTarget float64
	logger         *zerolog.Logger
}

func NewAggregator(coverageTarget float64, logger *zerolog.Logger) *Aggregator {
	if coverageTarget <= 0 {
		coverageTarget = defaultCoverageTarget
	}
	return &Aggregator{
		coverageTarget: coverageTarget,
		logger:         logger,
	}
}

// Aggregate computes the coverage score and assembles the result. Claims
// and verdicts are parallel slices in claim order; checks cover only the
// claims that carried citations.
func (a *Aggregator) Aggregate(claims []models.Claim, verdicts []models.Verdict, checks []models.CitationCheck) models.EvaluationResult {
	result := models.EvaluationResult{
		TotalClaims:   len(claims),
		Unsupported:   []models.UnsupportedClaim{},
		ClaimAnalysis: make([]models.ClaimAnalysis, 0, len(claims)),
		Feedback:      []string{},
	}

	checkByClaim := make(map[int]*models.CitationCheck, len(checks))
	for i := range checks {
		checkByClaim[checks[i].ClaimID] = &checks[i]
	}

	for i, claim := range claims {
		verdict := verdicts[i]

		result.ClaimAnalysis = append(result.ClaimAnalysis, models.ClaimAnalysis{
			Claim:    claim,
			Verdict:  verdict,
			Citation: checkByClaim[claim.ID],
		})

		if verdict.Supported {
			result.SupportedClaims++
		} else {
			result.Unsupported = append(result.Unsupported, models.UnsupportedClaim{
				Claim:       claim.Text,
				Span:        claim.Span,
				MissingInfo: verdict.MissingInfo,
			})
		}
	}

	// An answer with nothing to verify has full coverage.
	if result.TotalClaims == 0 {
		result.CoverageScore = 1.0
	} else {
		result.CoverageScore = float64(result.SupportedClaims) / float64(result.TotalClaims)
	}

	result.Feedback = a.buildFeedback(result, checks)

	a.logger.Info().
		Float64("coverage", result.CoverageScore).
		Int("total_claims", result.TotalClaims).
		Int("supported_claims", result.SupportedClaims).
		Msg("aggregation complete")

	return result
}

func (a *Aggregator) buildFeedback(result models.EvaluationResult, checks []models.CitationCheck) []string {
	feedback := []string{}

	if result.TotalClaims > 0 && result.SupportedClaims == result.TotalClaims {
		feedback = append(feedback, "All claims are supported by evidence. Great coverage!")
	}

	for _, claim := range result.Unsupported {
		feedback = append(feedback, fmt.Sprintf("Unsupported claim: '%s' - %s", truncateClaim(claim.Claim, 50), claim.MissingInfo))
	}

	mismatched := 0
	for _, check := range checks {
		if !check.MatchesEntailment {
			mismatched++
		}
	}
	if mismatched > 0 {
		feedback = append(feedback, fmt.Sprintf("%d citation(s) do not match the evidence that supports their claims", mismatched))
	}

	if result.CoverageScore < a.coverageTarget {
		topics := topicKeywords(result.Unsupported, maxTopicKeywords)
		if len(topics) > 0 {
			feedback = append(feedback, fmt.Sprintf("Coverage %.2f is below the %.2f target. Retrieve more information about: %s", result.CoverageScore, a.coverageTarget, strings.Join(topics, ", ")))
		} else {
			feedback = append(feedback, fmt.Sprintf("Coverage %.2f is below the %.2f target. Retrieve more passages or try a broader retrieval method", result.CoverageScore, a.coverageTarget))
		}
	}

	return feedback
}

func truncateClaim(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
