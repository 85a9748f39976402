// Package nli talks to the local natural-language-inference sidecar that
// backs the fast entailment backend. The sidecar serves a pretrained NLI
// classifier over HTTP; the pipeline treats it as an opaque scoring
// function and never loads model weights in-process.
package nli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnavailable marks failures to reach or use the NLI sidecar. Callers
// degrade the affected claim rather than abort the evaluation.
var ErrUnavailable = errors.New("nli service unavailable")

// Scores holds the classifier's label probabilities for one
// (premise, hypothesis) pair.
type Scores struct {
	Entailment    float64 `json:"entailment"`
	Neutral       float64 `json:"neutral"`
	Contradiction float64 `json:"contradiction"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type predictRequest struct {
	Premise    string `json:"premise"`
	Hypothesis string `json:"hypothesis"`
}

// Score asks the sidecar whether premise entails hypothesis. Deterministic
// for fixed model weights.
func (c *Client) Score(ctx context.Context, premise, hypothesis string) (Scores, error) {
	body, err := json.Marshal(predictRequest{Premise: premise, Hypothesis: hypothesis})
	if err != nil {
		return Scores{}, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Scores{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("NLI sidecar call failed")
		return Scores{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Scores{}, fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Scores{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(data))
	}

	var scores Scores
	if err := json.Unmarshal(data, &scores); err != nil {
		return Scores{}, fmt.Errorf("%w: unmarshal response: %w", ErrUnavailable, err)
	}
	if scores.Entailment < 0 || scores.Entailment > 1 {
		return Scores{}, fmt.Errorf("%w: entailment probability %f outside [0,1]", ErrUnavailable, scores.Entailment)
	}
	return scores, nil
}

// IsAvailable reports whether the sidecar answers its health endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
