package stream

import (
	"context"
	"fmt"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/evaluator"
	redisconn "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/redis"
	streamredis "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/stream/redis"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider    string // redis for now; kafka, sqs later
	RedisConfig *streamredis.Config
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	eval *evaluator.Evaluator,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redisconn.Connect(
			ctx,
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			5,
		)
		if err != nil {
			return nil, err
		}

		return streamredis.NewConsumer(client, cfg.RedisConfig, eval, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
