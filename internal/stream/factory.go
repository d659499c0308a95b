package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/api"
	red "github.com/mediaguard/mediaguard/internal/redis"
	"github.com/mediaguard/mediaguard/internal/stream/redis"
)

type StreamConfig struct {
	Provider    string // redis for now
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	analyzer api.Analyzer,
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

		client, err := red.Connect(
			ctx,
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			5,
			logger,
		)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(
			client,
			cfg.RedisConfig,
			analyzer,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
