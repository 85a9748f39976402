package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/aggregator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/citations"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/claims"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/config"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/embedding"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/evaluator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/judge"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm"
	llmbedrock "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm/bedrock"
	llmollama "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm/ollama"
	llmopenai "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm/openai"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/nli"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/retrieval"
	"github.com/rs/zerolog"
)

// Config carries environment-level settings: credentials and region.
// Evaluation knobs live in the YAML config.
type Config struct {
	AWSRegion string
	OpenAIKey string
	LogLevel  string
}

// Dependencies is the wired object graph shared by every surface.
type Dependencies struct {
	Evaluator *evaluator.Evaluator
	Extractor *claims.Extractor
	Config    *config.Config
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		OpenAIKey: getEnv("OPEN_AI_KEY", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

const embeddingTimeout = 30 * time.Second

// Wire loads the evaluator YAML config and builds the full pipeline.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	evalCfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluator config: %w", err)
	}
	return WireWithConfig(ctx, cfg, evalCfg, logger)
}

// WireWithConfig builds the pipeline from an already-loaded evaluator
// config. The CLI and the experiment harness use it to apply overrides
// before construction.
func WireWithConfig(ctx context.Context, cfg *Config, evalCfg *config.Config, logger *zerolog.Logger) (*Dependencies, error) {
	extractor, err := claims.NewExtractor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create claim extractor: %w", err)
	}

	retriever, err := createRetriever(ctx, cfg, evalCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	var scorer judge.EntailmentScorer
	var llmClient llm.LLMClient
	switch evalCfg.Entailment.Backend {
	case config.BackendFast:
		scorer = nli.NewClient(evalCfg.Entailment.NLI.BaseURL, time.Duration(evalCfg.Entailment.NLI.Timeout)*time.Second, logger)
	case config.BackendJudgment:
		llmClient, err = createLLMClient(ctx, cfg, evalCfg.Entailment.Judge)
		if err != nil {
			return nil, fmt.Errorf("failed to create judge LLM client: %w", err)
		}
	}

	entailmentJudge, err := judge.NewFromConfig(evalCfg.Entailment, scorer, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create entailment judge: %w", err)
	}

	eval := evaluator.New(
		extractor,
		retriever,
		entailmentJudge,
		citations.NewMatcher(logger),
		aggregator.NewAggregator(evalCfg.Feedback.CoverageTarget, logger),
		evalCfg.Concurrency,
		logger,
	)

	return &Dependencies{
		Evaluator: eval,
		Extractor: extractor,
		Config:    evalCfg,
		Logger:    logger,
	}, nil
}

func createRetriever(ctx context.Context, cfg *Config, evalCfg *config.Config, logger *zerolog.Logger) (*retrieval.Retriever, error) {
	switch evalCfg.Retrieval.Method {
	case retrieval.MethodLexical:
		return retrieval.NewLexical(evalCfg.Retrieval.TopK, logger), nil
	case retrieval.MethodEmbedding:
		embedder, err := createEmbedder(ctx, cfg, evalCfg.Retrieval.Embedding, logger)
		if err != nil {
			return nil, err
		}
		ttl := time.Duration(evalCfg.Retrieval.Embedding.CacheTTL) * time.Second
		cached := embedding.NewCached(embedder, evalCfg.Retrieval.Embedding.ModelID, ttl)
		return retrieval.NewEmbedding(evalCfg.Retrieval.TopK, cached, logger), nil
	default:
		return nil, fmt.Errorf("unknown retrieval method %q", evalCfg.Retrieval.Method)
	}
}

func createEmbedder(ctx context.Context, cfg *Config, embedCfg config.EmbeddingConfig, logger *zerolog.Logger) (embedding.Embedder, error) {
	switch embedCfg.Provider {
	case "bedrock":
		return embedding.NewBedrockEmbedder(ctx, cfg.AWSRegion, embedCfg.ModelID, logger)
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.OpenAIKey, embedCfg.BaseURL, embedCfg.ModelID, logger)
	case "ollama":
		return embedding.NewOllamaEmbedder(embedCfg.BaseURL, embedCfg.ModelID, embeddingTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", embedCfg.Provider)
	}
}

func createLLMClient(ctx context.Context, cfg *Config, judgeCfg config.JudgeModelConfig) (llm.LLMClient, error) {
	switch judgeCfg.Provider {
	case "bedrock":
		return llmbedrock.NewClient(ctx, cfg.AWSRegion, judgeCfg.ModelID)
	case "openai":
		return llmopenai.NewClient(cfg.OpenAIKey, judgeCfg.ModelID, judgeCfg.BaseURL)
	case "ollama":
		return llmollama.NewClient(judgeCfg.BaseURL, judgeCfg.ModelID, time.Duration(judgeCfg.Timeout)*time.Second, judgeCfg.RequestsPerSecond)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", judgeCfg.Provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
