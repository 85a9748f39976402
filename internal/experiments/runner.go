package experiments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/config"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Case is one dataset entry, evaluated at every grid point.
type Case struct {
	EventID string
	Answer  string
	Context models.Context
}

// CaseResult is the per-case outcome stored inside a run's results JSON.
type CaseResult struct {
	EventID         string  `json:"event_id,omitempty"`
	CoverageScore   float64 `json:"coverage_score"`
	TotalClaims     int     `json:"total_claims"`
	SupportedClaims int     `json:"supported_claims"`
	DurationMS      int64   `json:"duration_ms"`
	Error           string  `json:"error,omitempty"`
}

// Evaluator scores one answer against its evidence context.
type Evaluator interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error)
}

// Builder constructs a pipeline for one grid point's configuration.
type Builder func(ctx context.Context, cfg config.Config) (Evaluator, error)

// Grid spans the swept dimensions. Empty dimensions fall back to the
// base configuration's value.
type Grid struct {
	Methods    []string
	Backends   []string
	Thresholds []float64
	TopKs      []int
}

type variant struct {
	method    string
	backend   string
	threshold float64
	topK      int
}

func (g Grid) variants(base config.Config) []variant {
	methods := g.Methods
	if len(methods) == 0 {
		methods = []string{base.Retrieval.Method}
	}
	backends := g.Backends
	if len(backends) == 0 {
		backends = []string{base.Entailment.Backend}
	}
	thresholds := g.Thresholds
	if len(thresholds) == 0 {
		thresholds = []float64{base.Entailment.Threshold}
	}
	topKs := g.TopKs
	if len(topKs) == 0 {
		topKs = []int{base.Retrieval.TopK}
	}

	var variants []variant
	for _, method := range methods {
		for _, backend := range backends {
			for _, threshold := range thresholds {
				for _, topK := range topKs {
					variants = append(variants, variant{method, backend, threshold, topK})
				}
			}
		}
	}
	return variants
}

// Runner executes a sweep and persists one run per grid point.
type Runner struct {
	base   config.Config
	build  Builder
	store  *Store
	logger *zerolog.Logger
}

func NewRunner(base config.Config, build Builder, store *Store, logger *zerolog.Logger) *Runner {
	return &Runner{
		base:   base,
		build:  build,
		store:  store,
		logger: logger,
	}
}

// Sweep evaluates every case at every grid point. A pipeline that fails
// to build aborts the sweep; a case that fails to evaluate is recorded
// with its error and excluded from the run's mean coverage.
func (r *Runner) Sweep(ctx context.Context, grid Grid, cases []Case) ([]Run, error) {
	if len(cases) == 0 {
		return nil, fmt.Errorf("no cases to evaluate")
	}

	var runs []Run
	for _, v := range grid.variants(r.base) {
		if err := ctx.Err(); err != nil {
			return runs, err
		}

		run, err := r.runVariant(ctx, v, cases)
		if err != nil {
			return runs, err
		}

		if r.store != nil {
			if err := r.store.InsertRun(run); err != nil {
				return runs, fmt.Errorf("persist run %s: %w", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *Runner) runVariant(ctx context.Context, v variant, cases []Case) (Run, error) {
	cfg := r.base
	cfg.Retrieval.Method = v.method
	cfg.Retrieval.TopK = v.topK
	cfg.Entailment.Backend = v.backend
	cfg.Entailment.Threshold = v.threshold
	if err := cfg.Validate(); err != nil {
		return Run{}, fmt.Errorf("grid point %s/%s: %w", v.method, v.backend, err)
	}

	evaluator, err := r.build(ctx, cfg)
	if err != nil {
		return Run{}, fmt.Errorf("build pipeline for %s/%s: %w", v.method, v.backend, err)
	}

	r.logger.Info().
		Str("method", v.method).
		Str("backend", v.backend).
		Float64("threshold", v.threshold).
		Int("top_k", v.topK).
		Int("cases", len(cases)).
		Msg("Running grid point")

	started := time.Now()
	results := make([]CaseResult, 0, len(cases))
	coverageSum := 0.0
	evaluated := 0

	for _, c := range cases {
		caseStart := time.Now()
		result, err := evaluator.Evaluate(ctx, models.EvaluationRequest{
			EventID: c.EventID,
			Answer:  c.Answer,
			Context: c.Context,
		})

		cr := CaseResult{
			EventID:    c.EventID,
			DurationMS: time.Since(caseStart).Milliseconds(),
		}
		if err != nil {
			cr.Error = err.Error()
			r.logger.Warn().Err(err).Str("event_id", c.EventID).Msg("Case failed")
		} else {
			cr.CoverageScore = result.CoverageScore
			cr.TotalClaims = result.TotalClaims
			cr.SupportedClaims = result.SupportedClaims
			coverageSum += result.CoverageScore
			evaluated++
		}
		results = append(results, cr)
	}

	meanCoverage := 0.0
	if evaluated > 0 {
		meanCoverage = coverageSum / float64(evaluated)
	}

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return Run{}, fmt.Errorf("marshal case results: %w", err)
	}

	run := Run{
		ID:           uuid.New().String(),
		StartedAt:    started,
		Method:       v.method,
		Backend:      v.backend,
		Threshold:    v.threshold,
		TopK:         v.topK,
		Cases:        len(cases),
		MeanCoverage: meanCoverage,
		Duration:     time.Since(started),
		ResultsJSON:  string(resultsJSON),
	}

	r.logger.Info().
		Str("run_id", run.ID).
		Float64("mean_coverage", run.MeanCoverage).
		Dur("duration", run.Duration).
		Msg("Grid point complete")

	return run, nil
}
