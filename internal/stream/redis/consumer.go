package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/evaluator"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	resultStream string
	evaluator    *evaluator.Evaluator
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *Config, eval *evaluator.Evaluator, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		resultStream: cfg.ResultStream,
		evaluator:    eval,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Str("result_stream", c.resultStream).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var evalRequest models.EvaluationRequest
	if err := json.Unmarshal([]byte(payload), &evalRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result, err := c.evaluator.Evaluate(ctx, evalRequest)
	if err != nil {
		// Evaluate fails only on invalid input, which a redelivery cannot fix.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Evaluation rejected")
		c.ack(ctx, msg.ID)
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("event_id", result.EventID).
		Float64("coverage_score", result.CoverageScore).
		Int("total_claims", result.TotalClaims).
		Msg("Evaluation complete")

	if err := c.publish(ctx, result); err != nil {
		// Leave the message pending so the group redelivers it.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish result")
		return
	}

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, result models.EvaluationResult) error {
	if c.resultStream == "" {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{
			"event_id": result.EventID,
			"payload":  string(data),
		},
	}).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
