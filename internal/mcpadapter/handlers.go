package mcpadapter

import (
	"context"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/claims"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/evaluator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PassageInput is one evidence passage in a tool call.
type PassageInput struct {
	ID   string `json:"id" jsonschema:"stable passage identifier"`
	Text string `json:"text" jsonschema:"passage text"`
}

// EvaluateGroundingInput is the MCP tool input schema (matches HTTP API field names).
type EvaluateGroundingInput struct {
	EventID  string         `json:"event_id,omitempty" jsonschema:"optional event identifier echoed in the result"`
	Answer   string         `json:"answer" jsonschema:"answer text to evaluate"`
	Passages []PassageInput `json:"passages" jsonschema:"evidence passages the answer should be grounded in"`
}

// ExtractClaimsInput is the MCP tool input schema for claim extraction only.
type ExtractClaimsInput struct {
	Answer string `json:"answer" jsonschema:"answer text to split into claims"`
}

// ExtractClaimsOutput lists the claims found in the answer, in order, with
// spans into the original text.
type ExtractClaimsOutput struct {
	Claims []models.Claim `json:"claims"`
}

// NewEvaluateGroundingHandler returns a tool handler that runs the full
// evaluation pipeline. Pass the returned function to mcp.AddTool.
func NewEvaluateGroundingHandler(eval *evaluator.Evaluator) func(context.Context, *mcp.CallToolRequest, EvaluateGroundingInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateGroundingInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
		return EvaluateGrounding(ctx, eval, req, input)
	}
}

// EvaluateGrounding runs the pipeline against the passages in the call.
func EvaluateGrounding(
	ctx context.Context,
	eval *evaluator.Evaluator,
	req *mcp.CallToolRequest,
	input EvaluateGroundingInput,
) (*mcp.CallToolResult, models.EvaluationResult, error) {
	passages := make([]models.Passage, len(input.Passages))
	for i, p := range input.Passages {
		passages[i] = models.Passage{ID: p.ID, Text: p.Text}
	}

	result, err := eval.Evaluate(ctx, models.EvaluationRequest{
		EventID: input.EventID,
		Answer:  input.Answer,
		Context: models.Context{Passages: passages},
	})
	return nil, result, err
}

// NewExtractClaimsHandler returns a tool handler exposing the claim
// extractor on its own, without retrieval or judging.
func NewExtractClaimsHandler(extractor *claims.Extractor) func(context.Context, *mcp.CallToolRequest, ExtractClaimsInput) (*mcp.CallToolResult, ExtractClaimsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExtractClaimsInput) (*mcp.CallToolResult, ExtractClaimsOutput, error) {
		extracted := extractor.Extract(input.Answer)
		if extracted == nil {
			extracted = []models.Claim{}
		}
		return nil, ExtractClaimsOutput{Claims: extracted}, nil
	}
}
