package judge

import (
	"context"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

// Judge decides whether a single claim is supported by its retrieved
// evidence. Implementations never return an error: failures of the
// underlying model are folded into the verdict so that one broken claim
// judgment cannot abort the evaluation of the others.
type Judge interface {
	Judge(ctx context.Context, claim models.Claim, snippets []models.SupportingSnippet, evidence models.Context) models.Verdict
}

// unsupportedVerdict builds the verdict shared by all failure paths.
func unsupportedVerdict(claimID int, missingInfo string) models.Verdict {
	return models.Verdict{
		ClaimID:      claimID,
		Supported:    false,
		Confidence:   0.0,
		MissingInfo:  missingInfo,
		EvidenceUsed: []string{},
	}
}
