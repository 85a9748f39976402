package llm

import (
	"context"
)

// LLMClient is an interface for invoking generative models.
// The judgment entailment backend talks to its model exclusively through
// this interface, which allows mocking in tests without real API calls.
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelWithRetry(ctx context.Context, request LLMRequest) (*LLMResponse, error)
}
