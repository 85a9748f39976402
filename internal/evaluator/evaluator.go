// Package evaluator orchestrates the evidence-coverage pipeline: claim
// extraction, per-claim evidence retrieval and entailment judgment,
// citation checking and aggregation.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

//go:generate mockgen -source=evaluator.go -destination=mocks/mocks.go -package=mocks

// ClaimExtractor splits an answer into atomic claims.
type ClaimExtractor interface {
	Extract(answer string) []models.Claim
}

// EvidenceRetriever ranks context passages for one claim.
type EvidenceRetriever interface {
	Retrieve(ctx context.Context, claim models.Claim, evidence models.Context) ([]models.SupportingSnippet, error)
}

// EntailmentJudge decides whether a claim is supported by its snippets.
type EntailmentJudge interface {
	Judge(ctx context.Context, claim models.Claim, snippets []models.SupportingSnippet, evidence models.Context) models.Verdict
}

// CitationMatcher checks the answer's citation markers against verdicts.
type CitationMatcher interface {
	Check(answer string, claims []models.Claim, verdicts []models.Verdict, evidence models.Context) []models.CitationCheck
}

// Aggregator folds verdicts and citation checks into the final result.
type Aggregator interface {
	Aggregate(claims []models.Claim, verdicts []models.Verdict, checks []models.CitationCheck) models.EvaluationResult
}

// ErrInvalidInput marks requests that cannot be evaluated at all, as
// opposed to per-claim failures which degrade individual verdicts.
var ErrInvalidInput = errors.New("invalid evaluation input")

const defaultConcurrency = 4

type Evaluator struct {
	extractor   ClaimExtractor
	retriever   EvidenceRetriever
	judge       EntailmentJudge
	citations   CitationMatcher
	aggregator  Aggregator
	concurrency int
	logger      *zerolog.Logger
}

func New(
	extractor ClaimExtractor,
	retriever EvidenceRetriever,
	judge EntailmentJudge,
	citations CitationMatcher,
	aggregator Aggregator,
	concurrency int,
	logger *zerolog.Logger,
) *Evaluator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Evaluator{
		extractor:   extractor,
		retriever:   retriever,
		judge:       judge,
		citations:   citations,
		aggregator:  aggregator,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Evaluate runs the full pipeline for one request. Claims are judged
// concurrently but the result always lists them in extraction order. The
// only error paths are malformed input; backend failures degrade the
// affected claims instead.
func (e *Evaluator) Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error) {
	if err := req.Context.Validate(); err != nil {
		return models.EvaluationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	e.logger.Info().
		Str("event_id", req.EventID).
		Int("passages", req.Context.Len()).
		Msg("starting evaluation")

	claims := e.extractor.Extract(req.Answer)
	for _, claim := range claims {
		if claim.Span.Start() < 0 || claim.Span.End() > len(req.Answer) || claim.Span.Start() > claim.Span.End() {
			return models.EvaluationResult{}, fmt.Errorf("%w: claim %d span out of range", ErrInvalidInput, claim.ID)
		}
	}

	verdicts := e.judgeClaims(ctx, claims, req.Context)
	checks := e.citations.Check(req.Answer, claims, verdicts, req.Context)

	result := e.aggregator.Aggregate(claims, verdicts, checks)
	result.EventID = req.EventID

	e.logger.Info().
		Str("event_id", req.EventID).
		Float64("coverage", result.CoverageScore).
		Int("total_claims", result.TotalClaims).
		Int("supported_claims", result.SupportedClaims).
		Msg("evaluation complete")

	return result, nil
}

// judgeClaims fans the retrieve-then-judge step out over a bounded worker
// pool and collects verdicts by claim index.
func (e *Evaluator) judgeClaims(ctx context.Context, claims []models.Claim, evidence models.Context) []models.Verdict {
	verdicts := make([]models.Verdict, len(claims))
	if len(claims) == 0 {
		return verdicts
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)

	for i, claim := range claims {
		wg.Add(1)
		go func(i int, claim models.Claim) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				verdicts[i] = canceledVerdict(claim.ID)
				return
			}

			if ctx.Err() != nil {
				verdicts[i] = canceledVerdict(claim.ID)
				return
			}

			snippets, err := e.retriever.Retrieve(ctx, claim, evidence)
			if err != nil {
				e.logger.Error().Err(err).Int("claim_id", claim.ID).Msg("evidence retrieval failed")
				verdicts[i] = models.Verdict{
					ClaimID:      claim.ID,
					Supported:    false,
					Confidence:   0.0,
					MissingInfo:  fmt.Sprintf("Evidence retrieval failed: %v", err),
					EvidenceUsed: []string{},
				}
				return
			}

			verdicts[i] = e.judge.Judge(ctx, claim, snippets, evidence)
		}(i, claim)
	}

	wg.Wait()
	return verdicts
}

func canceledVerdict(claimID int) models.Verdict {
	return models.Verdict{
		ClaimID:      claimID,
		Supported:    false,
		Confidence:   0.0,
		MissingInfo:  "Evaluation canceled before completion",
		EvidenceUsed: []string{},
	}
}
