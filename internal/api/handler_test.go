package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/aggregator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/api"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/api/middleware"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/citations"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/claims"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/evaluator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/judge"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/nli"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/retrieval"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

// stubEvaluator returns a canned result or error for transport-level tests.
type stubEvaluator struct {
	result models.EvaluationResult
	err    error
}

func (s *stubEvaluator) Evaluate(_ context.Context, _ models.EvaluationRequest) (models.EvaluationResult, error) {
	return s.result, s.err
}

// tableScorer fakes the NLI sidecar with fixed entailment probabilities.
type tableScorer struct {
	entailments map[string]float64
}

func (s *tableScorer) Score(_ context.Context, premise, hypothesis string) (nli.Scores, error) {
	p := s.entailments[premise+"\x00"+hypothesis]
	if p == 0 {
		p = 0.05
	}
	return nli.Scores{Entailment: p, Neutral: 1 - p}, nil
}

func newTestContainer(t *testing.T, eval api.Evaluator) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()

	container := restful.NewContainer()
	api.RegisterRoutes(container, api.NewHandler(eval, &logger))
	return container
}

// newPipelineContainer wires the API over the real pipeline with a scorer
// stub standing in for the NLI sidecar.
func newPipelineContainer(t *testing.T) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()

	extractor, err := claims.NewExtractor(&logger)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	scorer := &tableScorer{entailments: map[string]float64{
		"The Eiffel Tower is a wrought-iron lattice tower in Paris, France.\x00The Eiffel Tower is located in Paris.": 0.95,
		"Construction of the tower was completed in 1889 for the World's Fair.\x00It was completed in 1889.":          0.93,
	}}

	eval := evaluator.New(
		extractor,
		retrieval.NewLexical(3, &logger),
		judge.NewNLIJudge(scorer, 0.8, &logger),
		citations.NewMatcher(&logger),
		aggregator.NewAggregator(0.5, &logger),
		2,
		&logger,
	)
	return newTestContainer(t, eval)
}

func postEvaluate(t *testing.T, container *restful.Container, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	container := newTestContainer(t, &stubEvaluator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_Evaluate_FullPipeline(t *testing.T) {
	container := newPipelineContainer(t)

	evalRequest := models.EvaluationRequest{
		EventID: "test-001",
		Answer:  "The Eiffel Tower is located in Paris. It was completed in 1889.",
		Context: models.Context{Passages: []models.Passage{
			{ID: "p1", Text: "The Eiffel Tower is a wrought-iron lattice tower in Paris, France."},
			{ID: "p2", Text: "Construction of the tower was completed in 1889 for the World's Fair."},
		}},
	}
	body, err := json.Marshal(evalRequest)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	recorder := postEvaluate(t, container, body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.EvaluationResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if result.EventID != "test-001" {
		t.Errorf("Expected event id 'test-001', got '%s'", result.EventID)
	}
	if result.TotalClaims != 2 || result.SupportedClaims != 2 {
		t.Errorf("Expected 2/2 supported claims, got %d/%d", result.SupportedClaims, result.TotalClaims)
	}
	if result.CoverageScore != 1.0 {
		t.Errorf("Expected coverage 1.0, got %f", result.CoverageScore)
	}
	if len(result.Feedback) != 1 || result.Feedback[0] != "All claims are supported by evidence. Great coverage!" {
		t.Errorf("Unexpected feedback: %v", result.Feedback)
	}
}

func TestAPI_Evaluate_InvalidJSON(t *testing.T) {
	container := newTestContainer(t, &stubEvaluator{})

	recorder := postEvaluate(t, container, []byte("{not json"))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}

	var errResp middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("Expected error message in response body")
	}
}

func TestAPI_Evaluate_InvalidContext(t *testing.T) {
	container := newPipelineContainer(t)

	evalRequest := models.EvaluationRequest{
		Answer: "The Eiffel Tower is located in Paris.",
		Context: models.Context{Passages: []models.Passage{
			{ID: "p1", Text: "one"},
			{ID: "p1", Text: "two"},
		}},
	}
	body, _ := json.Marshal(evalRequest)

	recorder := postEvaluate(t, container, body)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 for duplicate passage ids, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var errResp middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if !strings.Contains(errResp.Error, "duplicate passage id") {
		t.Errorf("Expected duplicate passage id error, got: %s", errResp.Error)
	}
}

func TestAPI_Evaluate_InternalError(t *testing.T) {
	container := newTestContainer(t, &stubEvaluator{err: errors.New("pipeline exploded")})

	body, _ := json.Marshal(models.EvaluationRequest{Answer: "anything"})
	recorder := postEvaluate(t, container, body)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", recorder.Code)
	}
}

func TestAPI_OpenAPIDoc(t *testing.T) {
	container := newTestContainer(t, &stubEvaluator{})

	req := httptest.NewRequest(http.MethodGet, "/apidocs.json", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "/api/v1/evaluate") {
		t.Error("Expected OpenAPI document to describe the evaluate route")
	}
}

func TestAPI_Metrics(t *testing.T) {
	container := newTestContainer(t, &stubEvaluator{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200 from metrics endpoint, got %d", recorder.Code)
	}
}
