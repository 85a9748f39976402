package judge

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/config"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm"
)

// NewFromConfig builds the judge selected by the entailment backend.
// The fast backend needs an NLI scorer, the judgment backend a generative
// model client; the caller wires whichever one the configuration asks for.
func NewFromConfig(cfg config.EntailmentConfig, scorer EntailmentScorer, llmClient llm.LLMClient, logger *zerolog.Logger) (Judge, error) {
	switch cfg.Backend {
	case config.BackendFast:
		if scorer == nil {
			return nil, fmt.Errorf("fast entailment backend requires an NLI scorer")
		}
		return NewNLIJudge(scorer, cfg.Threshold, logger), nil

	case config.BackendJudgment:
		if llmClient == nil {
			return nil, fmt.Errorf("judgment entailment backend requires an LLM client")
		}
		return NewGenerativeJudge(cfg.Judge, llmClient, logger)

	default:
		return nil, fmt.Errorf("unknown entailment backend: %s (supported: %s, %s)", cfg.Backend, config.BackendFast, config.BackendJudgment)
	}
}
