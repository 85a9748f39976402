package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evaluator.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	configContent := `retrieval:
  method: embedding
  top_k: 5
  embedding:
    provider: ollama
    model_id: nomic-embed-text
    base_url: http://localhost:11434

entailment:
  backend: judgment
  threshold: 0.7
  judge:
    provider: ollama
    model_id: llama3.1
    base_url: http://localhost:11434
    max_tokens: 256
    temperature: 0.2
    retry: true

concurrency: 8

feedback:
  coverage_target: 0.6
`

	os.Setenv("EVALUATOR_CONFIG_PATH", writeConfig(t, configContent))
	defer os.Unsetenv("EVALUATOR_CONFIG_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Retrieval.Method != "embedding" {
		t.Errorf("Expected method 'embedding', got '%s'", cfg.Retrieval.Method)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("Expected top_k=5, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.Embedding.Provider != "ollama" {
		t.Errorf("Expected embedding provider 'ollama', got '%s'", cfg.Retrieval.Embedding.Provider)
	}
	if cfg.Entailment.Backend != BackendJudgment {
		t.Errorf("Expected backend 'judgment', got '%s'", cfg.Entailment.Backend)
	}
	if cfg.Entailment.Threshold != 0.7 {
		t.Errorf("Expected threshold=0.7, got %f", cfg.Entailment.Threshold)
	}
	if cfg.Entailment.Judge.ModelID != "llama3.1" {
		t.Errorf("Expected judge model 'llama3.1', got '%s'", cfg.Entailment.Judge.ModelID)
	}
	if !cfg.Entailment.Judge.Retry {
		t.Error("Expected judge retry=true")
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Expected concurrency=8, got %d", cfg.Concurrency)
	}
	if cfg.Feedback.CoverageTarget != 0.6 {
		t.Errorf("Expected coverage_target=0.6, got %f", cfg.Feedback.CoverageTarget)
	}

	// Unset fields fall back to defaults.
	if cfg.Entailment.Judge.MaxTokens != 256 {
		t.Errorf("Expected max_tokens=256, got %d", cfg.Entailment.Judge.MaxTokens)
	}
	if cfg.Entailment.Judge.Timeout != 120 {
		t.Errorf("Expected default judge timeout=120, got %d", cfg.Entailment.Judge.Timeout)
	}
	if cfg.Entailment.Judge.PromptTemplate != "" {
		t.Errorf("Expected empty prompt override, got '%s'", cfg.Entailment.Judge.PromptTemplate)
	}
}

func TestLoad_PartialFileMergesDefaults(t *testing.T) {
	configContent := `entailment:
  threshold: 0.9
`

	os.Setenv("EVALUATOR_CONFIG_PATH", writeConfig(t, configContent))
	defer os.Unsetenv("EVALUATOR_CONFIG_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Entailment.Threshold != 0.9 {
		t.Errorf("Expected threshold=0.9, got %f", cfg.Entailment.Threshold)
	}
	if cfg.Retrieval.Method != "lexical" {
		t.Errorf("Expected default method 'lexical', got '%s'", cfg.Retrieval.Method)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("Expected default top_k=3, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Entailment.Backend != BackendFast {
		t.Errorf("Expected default backend 'fast', got '%s'", cfg.Entailment.Backend)
	}
	if cfg.Entailment.NLI.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default NLI base url, got '%s'", cfg.Entailment.NLI.BaseURL)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Expected default concurrency=4, got %d", cfg.Concurrency)
	}
	if cfg.Feedback.CoverageTarget != 0.5 {
		t.Errorf("Expected default coverage_target=0.5, got %f", cfg.Feedback.CoverageTarget)
	}
}

func TestLoad_MissingDefaultPathUsesDefaults(t *testing.T) {
	os.Unsetenv("EVALUATOR_CONFIG_PATH")

	// The test working directory has no configs/evaluator.yaml, so Load
	// must hand back the built-in defaults rather than fail.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Retrieval.Method != "lexical" {
		t.Errorf("Expected default method 'lexical', got '%s'", cfg.Retrieval.Method)
	}
	if cfg.Entailment.Threshold != 0.7 {
		t.Errorf("Expected default threshold=0.7, got %f", cfg.Entailment.Threshold)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	os.Setenv("EVALUATOR_CONFIG_PATH", "/nonexistent/path/evaluator.yaml")
	defer os.Unsetenv("EVALUATOR_CONFIG_PATH")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for nonexistent config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected 'failed to read config file' error, got: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	invalidContent := `retrieval:
  method: lexical
   top_k: 3
 wrong_level
`

	os.Setenv("EVALUATOR_CONFIG_PATH", writeConfig(t, invalidContent))
	defer os.Unsetenv("EVALUATOR_CONFIG_PATH")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected 'failed to parse YAML' error, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "Defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "UnknownRetrievalMethod",
			mutate:  func(c *Config) { c.Retrieval.Method = "graph" },
			wantErr: "unknown retrieval method",
		},
		{
			name:    "NegativeTopK",
			mutate:  func(c *Config) { c.Retrieval.TopK = -1 },
			wantErr: "negative top_k",
		},
		{
			name: "UnknownEmbeddingProvider",
			mutate: func(c *Config) {
				c.Retrieval.Method = "embedding"
				c.Retrieval.Embedding.Provider = "cohere"
			},
			wantErr: "unknown embedding provider",
		},
		{
			name:    "UnknownBackend",
			mutate:  func(c *Config) { c.Entailment.Backend = "oracle" },
			wantErr: "unknown entailment backend",
		},
		{
			name:    "ThresholdAboveOne",
			mutate:  func(c *Config) { c.Entailment.Threshold = 1.5 },
			wantErr: "entailment threshold",
		},
		{
			name:    "NegativeMaxTokens",
			mutate:  func(c *Config) { c.Entailment.Judge.MaxTokens = -100 },
			wantErr: "negative max_tokens",
		},
		{
			name:    "InvalidTemperature",
			mutate:  func(c *Config) { c.Entailment.Judge.Temperature = 1.5 },
			wantErr: "invalid temperature",
		},
		{
			name: "UnknownJudgeProvider",
			mutate: func(c *Config) {
				c.Entailment.Backend = BackendJudgment
				c.Entailment.Judge.Provider = "mistral"
			},
			wantErr: "unknown judge provider",
		},
		{
			name:    "InvalidPromptTemplate",
			mutate:  func(c *Config) { c.Entailment.Judge.PromptTemplate = "{{.InvalidSyntax" },
			wantErr: "invalid prompt template",
		},
		{
			name:    "NegativeConcurrency",
			mutate:  func(c *Config) { c.Concurrency = -2 },
			wantErr: "negative concurrency",
		},
		{
			name:    "CoverageTargetAboveOne",
			mutate:  func(c *Config) { c.Feedback.CoverageTarget = 1.2 },
			wantErr: "coverage target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected validation error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected error to wrap ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
