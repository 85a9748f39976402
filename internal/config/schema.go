package config

// Entailment backend names accepted in the config file.
const (
	BackendFast     = "fast"
	BackendJudgment = "judgment"
)

// Config represents the complete evaluator configuration.
type Config struct {
	Retrieval   RetrievalConfig  `yaml:"retrieval"`
	Entailment  EntailmentConfig `yaml:"entailment"`
	Concurrency int              `yaml:"concurrency"`
	Feedback    FeedbackConfig   `yaml:"feedback"`
}

// RetrievalConfig selects the evidence retrieval method and its knobs.
type RetrievalConfig struct {
	Method    string          `yaml:"method"`
	TopK      int             `yaml:"top_k"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// EmbeddingConfig configures the embedding backend used when the retrieval
// method is "embedding". CacheTTL is in seconds; zero keeps the default.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"`
	ModelID  string `yaml:"model_id"`
	BaseURL  string `yaml:"base_url"`
	CacheTTL int    `yaml:"cache_ttl"`
}

// EntailmentConfig selects the entailment backend. The fast backend scores
// claims through the NLI sidecar; the judgment backend prompts a generative
// model.
type EntailmentConfig struct {
	Backend   string           `yaml:"backend"`
	Threshold float64          `yaml:"threshold"`
	NLI       NLIConfig        `yaml:"nli"`
	Judge     JudgeModelConfig `yaml:"judge"`
}

// NLIConfig points at the NLI sidecar. Timeout is in seconds.
type NLIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// JudgeModelConfig contains the generative judge model parameters. Timeout
// is in seconds and bounds one model call. An empty Prompt keeps the
// built-in entailment prompt.
type JudgeModelConfig struct {
	Provider          string  `yaml:"provider"`
	ModelID           string  `yaml:"model_id"`
	BaseURL           string  `yaml:"base_url"`
	MaxTokens         int     `yaml:"max_tokens"`
	Temperature       float64 `yaml:"temperature"`
	Timeout           int     `yaml:"timeout"`
	Retry             bool    `yaml:"retry"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	PromptTemplate    string  `yaml:"prompt"`
}

// FeedbackConfig contains the coverage target the feedback rules compare
// against.
type FeedbackConfig struct {
	CoverageTarget float64 `yaml:"coverage_target"`
}
