package judge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/nli"
)

// EntailmentScorer produces class probabilities for a premise/hypothesis
// pair. Satisfied by nli.Client; mocked in tests.
type EntailmentScorer interface {
	Score(ctx context.Context, premise, hypothesis string) (nli.Scores, error)
}

const noEvidenceMissingInfo = "No relevant evidence retrieved from the provided passages"

// NLIJudge is the fast entailment backend. It scores the claim against
// each retrieved passage through a local NLI model and accepts the claim
// when the best entailment probability reaches the threshold.
type NLIJudge struct {
	scorer    EntailmentScorer
	threshold float64
	logger    *zerolog.Logger
}

func NewNLIJudge(scorer EntailmentScorer, threshold float64, logger *zerolog.Logger) *NLIJudge {
	return &NLIJudge{
		scorer:    scorer,
		threshold: threshold,
		logger:    logger,
	}
}

func (j *NLIJudge) Judge(ctx context.Context, claim models.Claim, snippets []models.SupportingSnippet, evidence models.Context) models.Verdict {
	now := time.Now()

	if len(snippets) == 0 {
		return unsupportedVerdict(claim.ID, noEvidenceMissingInfo)
	}

	type scoredPassage struct {
		id         string
		entailment float64
	}

	scored := make([]scoredPassage, 0, len(snippets))
	best := 0.0
	for _, snippet := range snippets {
		passage, ok := evidence.Get(snippet.PassageID)
		if !ok {
			// Retrieval only returns ids from the evidence set.
			continue
		}

		scores, err := j.scorer.Score(ctx, passage.Text, claim.Text)
		if err != nil {
			j.logger.Error().Err(err).Int("claim_id", claim.ID).Msg("NLI scoring failed")
			return unsupportedVerdict(claim.ID, fmt.Sprintf("Judge service unavailable: %v", err))
		}

		scored = append(scored, scoredPassage{id: passage.ID, entailment: scores.Entailment})
		if scores.Entailment > best {
			best = scores.Entailment
		}
	}

	evidenceUsed := make([]string, 0, len(scored))
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].entailment > scored[b].entailment
	})
	for _, sp := range scored {
		if sp.entailment >= j.threshold {
			evidenceUsed = append(evidenceUsed, sp.id)
		}
	}

	verdict := models.Verdict{
		ClaimID:      claim.ID,
		Supported:    len(evidenceUsed) > 0,
		Confidence:   best,
		EvidenceUsed: evidenceUsed,
	}
	if !verdict.Supported {
		verdict.MissingInfo = fmt.Sprintf("Claim not supported by evidence (best score: %.2f)", best)
	}

	j.logger.Debug().
		Int("claim_id", claim.ID).
		Bool("supported", verdict.Supported).
		Float64("confidence", verdict.Confidence).
		Dur("duration", time.Since(now)).
		Msg("NLI judgment completed")

	return verdict
}
