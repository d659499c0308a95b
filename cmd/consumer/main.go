package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mediaguard/mediaguard/internal/setup"
	setuplog "github.com/mediaguard/mediaguard/internal/setup/logger"
	"github.com/mediaguard/mediaguard/internal/stream"
	"github.com/mediaguard/mediaguard/internal/stream/redis"
)

func main() {
	// Setup logging
	logger := setuplog.NewConsole(os.Getenv("LOG_LEVEL"))
	log.Logger = logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load config and wire the engine
	cfg := setup.LoadConfig()
	deps, err := setup.Wire(cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	streamCfg := &stream.StreamConfig{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redis.NewRedisStreamConfig(
			addr,
			os.Getenv("REDIS_PASSWORD"),
			getEnv("ANALYSIS_STREAM", "analysis-requests"),
			getEnv("RESULT_STREAM", "analysis-results"),
			getEnv("ANALYSIS_GROUP", "analysis-group"),
			os.Getenv("HOSTNAME"),
		),
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Engine, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	log.Info().Msg("Starting MediaGuard stream consumer")

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Consumer failed")
	}

	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("Consumer stop failed")
	}

	log.Info().Msg("Consumer stopped")
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
