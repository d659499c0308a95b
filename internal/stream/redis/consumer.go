package redis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/api"
	"github.com/mediaguard/mediaguard/internal/models"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	resultStream string
	groupID      string
	consumerName string
	analyzer     api.Analyzer
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, analyzer api.Analyzer, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		analyzer:     analyzer,
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
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var analysisRequest models.AnalysisRequest
	if err := json.Unmarshal([]byte(payload), &analysisRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message — ACK to skip it
		return
	}

	analysisCtx, err := normalize(analysisRequest)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to normalize message")
		c.ack(ctx, msg.ID)
		return
	}

	result := c.analyzer.Analyze(ctx, analysisCtx)

	c.logger.Info().
		Str("id", msg.ID).
		Str("request_id", result.ID).
		Bool("failed", result.Failed).
		Float64("risk", result.Risk).
		Str("classification", string(result.Classification)).
		Msg("Analysis complete")

	c.publish(ctx, result)
	c.ack(ctx, msg.ID)
}

// publish writes the structured result to the result stream so a
// downstream renderer can pick it up. The result keeps per-modality
// failure detail; nothing invents a risk when one is absent.
func (c *Consumer) publish(ctx context.Context, result models.AnalysisResult) {
	if c.resultStream == "" {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", result.ID).Msg("Failed to encode result")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{"payload": string(data)},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", result.ID).Msg("Failed to publish result")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

func normalize(req models.AnalysisRequest) (models.AnalysisContext, error) {
	id := req.RequestID
	if id == "" {
		id = uuid.NewString()
	}

	analysisCtx := models.AnalysisContext{
		RequestID: id,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return models.AnalysisContext{}, fmt.Errorf("invalid image_base64: %w", err)
		}
		analysisCtx.Image = decoded
	}

	return analysisCtx, nil
}
