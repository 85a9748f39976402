package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	redisconn "github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/redis"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
)

func main() {
	data := flag.String("d", "", "Inline JSON EvaluationRequest")
	stream := flag.String("stream", "eval-requests", "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Logger = logger.NewConsole("info")

	if err := run(*data, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := redisconn.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		return err
	}
	defer client.Close()

	// Reject payloads the worker would have to throw away.
	var req models.EvaluationRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return err
	}
	if err := req.Context.Validate(); err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("event_id", req.EventID).Msg("Published successfully!")
	return nil
}
