package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm"
)

const defaultBaseURL = "http://localhost:11434"

// Client talks to a local Ollama server through its generate API.
// Requests are paced by a token-bucket limiter so that a burst of
// concurrent claim judgments does not overload the local model.
type Client struct {
	baseURL    string
	modelID    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"` // Max tokens
}

type ollamaGenerateResponse struct {
	Model      string `json:"model"`
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason,omitempty"`
}

type ollamaError struct {
	Error string `json:"error"`
}

func NewClient(baseURL string, modelID string, timeout time.Duration, requestsPerSecond float64) (*Client, error) {
	if modelID == "" {
		return nil, fmt.Errorf("ollama model ID is required (e.g., llama3.1:8b, mistral)")
	}

	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 60 * time.Second // local models can be slow
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload := ollamaGenerateRequest{
		Model:  c.modelID,
		Prompt: request.Prompt,
		Stream: false, // get the complete response at once
		Options: ollamaOptions{
			Temperature: request.Temperature,
			NumPredict:  request.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize ollama request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke ollama model: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr ollamaError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("ollama API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("ollama API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var response ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ollama response: %w", err)
	}

	stopReason := response.DoneReason
	if stopReason == "" && response.Done {
		stopReason = "stop"
	}

	return &llm.LLMResponse{
		Content:    response.Response,
		StopReason: stopReason,
	}, nil
}

// InvokeModelWithRetry delegates to InvokeModel. The server runs locally,
// so transport failures are not transient the way throttled cloud calls
// are; the limiter already spaces requests out.
func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return c.InvokeModel(ctx, request)
}
