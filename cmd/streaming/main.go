package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/stream"
	streamredis "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/stream/redis"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()
	appLogger := logger.New(cfg.LogLevel)
	log.Logger = appLogger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Wire the pipeline
	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire evaluation pipeline")
	}

	// Stream configuration
	streamCfg := &stream.StreamConfig{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: streamredis.NewConfig(
			os.Getenv("REDIS_ADDR"),
			os.Getenv("REDIS_PASSWORD"),
			"eval-requests",
			"eval-workers",
			os.Getenv("HOSTNAME"),
			"eval-results",
		),
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Evaluator, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	// Setup consumer
	err = consumer.Setup(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	appLogger.Info().Msg("Shutting down...")

	if err := consumer.Stop(); err != nil {
		appLogger.Error().Err(err).Msg("Failed to stop consumer cleanly")
	}

	log.Info().Msg("Evidence coverage worker stopped")
}
