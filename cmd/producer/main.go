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

	"github.com/mediaguard/mediaguard/internal/models"
	red "github.com/mediaguard/mediaguard/internal/redis"
	setuplog "github.com/mediaguard/mediaguard/internal/setup/logger"
)

func main() {
	data := flag.String("d", "", "Inline JSON AnalysisRequest")
	stream := flag.String("stream", "analysis-requests", "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Logger = setuplog.NewConsole(os.Getenv("LOG_LEVEL"))

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
	logger := log.Logger
	client, err := red.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3, &logger)
	if err != nil {
		return err
	}
	defer client.Close()

	var req models.AnalysisRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("request_id", req.RequestID).Msg("Published successfully!")
	return nil
}
