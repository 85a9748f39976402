package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/api/middleware"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/evaluator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

// Evaluator runs one evidence-coverage evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error)
}

type Handler struct {
	evaluator Evaluator
	logger    *zerolog.Logger
}

func NewHandler(evaluator Evaluator, logger *zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		logger:    logger,
	}
}

// HealthResponse is the GET /api/v1/health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// POST /api/v1/evaluate
// Body: EvaluationRequest
// Returns: EvaluationResult
func (h *Handler) Evaluate(req *restful.Request, resp *restful.Response) {
	var evalRequest models.EvaluationRequest
	if err := req.ReadEntity(&evalRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("event_id", evalRequest.EventID).
		Int("passages", evalRequest.Context.Len()).
		Msg("Start evaluation")

	ctx := req.Request.Context()
	result, err := h.evaluator.Evaluate(ctx, evalRequest)
	if err != nil {
		h.logger.Error().Err(err).Str("event_id", evalRequest.EventID).Msg("Evaluation failed")
		status := http.StatusInternalServerError
		if errors.Is(err, evaluator.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		middleware.HandleError(resp, err, status)
		return
	}

	h.logger.Info().
		Str("event_id", result.EventID).
		Float64("coverage_score", result.CoverageScore).
		Int("total_claims", result.TotalClaims).
		Int("supported_claims", result.SupportedClaims).
		Msg("Evaluation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
