package config

import (
	"errors"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks configuration that parsed but failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

const defaultPath = "configs/evaluator.yaml"

// Load reads the evaluator configuration from EVALUATOR_CONFIG_PATH, or
// from configs/evaluator.yaml when unset. A missing file on the default
// path is not an error: the built-in defaults apply. An explicitly
// configured path must exist.
func Load() (*Config, error) {
	path := os.Getenv("EVALUATOR_CONFIG_PATH")
	if path == "" {
		path = defaultPath
		if _, err := os.Stat(path); err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Retrieval.Method == "" {
		cfg.Retrieval.Method = "lexical"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.Embedding.Provider == "" {
		cfg.Retrieval.Embedding.Provider = "bedrock"
	}
	if cfg.Retrieval.Embedding.ModelID == "" {
		cfg.Retrieval.Embedding.ModelID = "amazon.titan-embed-text-v2:0"
	}
	if cfg.Retrieval.Embedding.CacheTTL == 0 {
		cfg.Retrieval.Embedding.CacheTTL = 300
	}

	if cfg.Entailment.Backend == "" {
		cfg.Entailment.Backend = BackendFast
	}
	if cfg.Entailment.Threshold == 0 {
		cfg.Entailment.Threshold = 0.7
	}
	if cfg.Entailment.NLI.BaseURL == "" {
		cfg.Entailment.NLI.BaseURL = "http://localhost:8000"
	}
	if cfg.Entailment.NLI.Timeout == 0 {
		cfg.Entailment.NLI.Timeout = 10
	}
	if cfg.Entailment.Judge.Provider == "" {
		cfg.Entailment.Judge.Provider = "bedrock"
	}
	if cfg.Entailment.Judge.ModelID == "" {
		cfg.Entailment.Judge.ModelID = "anthropic.claude-3-haiku-20240307-v1:0"
	}
	if cfg.Entailment.Judge.MaxTokens == 0 {
		cfg.Entailment.Judge.MaxTokens = 512
	}
	if cfg.Entailment.Judge.Timeout == 0 {
		cfg.Entailment.Judge.Timeout = 120
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	if cfg.Feedback.CoverageTarget == 0 {
		cfg.Feedback.CoverageTarget = 0.5
	}
}

// Validate reports the first configuration problem found. Every error
// wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.Retrieval.Method {
	case "lexical", "embedding":
	default:
		return fmt.Errorf("%w: unknown retrieval method %q (supported: lexical, embedding)", ErrInvalidConfig, c.Retrieval.Method)
	}
	if c.Retrieval.TopK < 0 {
		return fmt.Errorf("%w: negative top_k %d", ErrInvalidConfig, c.Retrieval.TopK)
	}
	if c.Retrieval.Method == "embedding" {
		switch c.Retrieval.Embedding.Provider {
		case "bedrock", "openai", "ollama":
		default:
			return fmt.Errorf("%w: unknown embedding provider %q (supported: bedrock, openai, ollama)", ErrInvalidConfig, c.Retrieval.Embedding.Provider)
		}
	}

	switch c.Entailment.Backend {
	case BackendFast, BackendJudgment:
	default:
		return fmt.Errorf("%w: unknown entailment backend %q (supported: %s, %s)", ErrInvalidConfig, c.Entailment.Backend, BackendFast, BackendJudgment)
	}
	if c.Entailment.Threshold < 0 || c.Entailment.Threshold > 1 {
		return fmt.Errorf("%w: entailment threshold %.2f outside [0, 1]", ErrInvalidConfig, c.Entailment.Threshold)
	}
	if c.Entailment.NLI.Timeout < 0 {
		return fmt.Errorf("%w: negative nli timeout %d", ErrInvalidConfig, c.Entailment.NLI.Timeout)
	}

	judge := c.Entailment.Judge
	if judge.MaxTokens < 0 {
		return fmt.Errorf("%w: negative max_tokens %d", ErrInvalidConfig, judge.MaxTokens)
	}
	if judge.Temperature < 0 || judge.Temperature > 1 {
		return fmt.Errorf("%w: invalid temperature %.2f (must be 0.0-1.0)", ErrInvalidConfig, judge.Temperature)
	}
	if judge.Timeout < 0 {
		return fmt.Errorf("%w: negative judge timeout %d", ErrInvalidConfig, judge.Timeout)
	}
	if c.Entailment.Backend == BackendJudgment {
		switch judge.Provider {
		case "bedrock", "openai", "ollama":
		default:
			return fmt.Errorf("%w: unknown judge provider %q (supported: bedrock, openai, ollama)", ErrInvalidConfig, judge.Provider)
		}
	}
	if judge.PromptTemplate != "" {
		if _, err := template.New("judge").Parse(judge.PromptTemplate); err != nil {
			return fmt.Errorf("%w: invalid prompt template: %v", ErrInvalidConfig, err)
		}
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("%w: negative concurrency %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.Feedback.CoverageTarget < 0 || c.Feedback.CoverageTarget > 1 {
		return fmt.Errorf("%w: coverage target %.2f outside [0, 1]", ErrInvalidConfig, c.Feedback.CoverageTarget)
	}
	return nil
}
