package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mediaguard/mediaguard/internal/input"
	"github.com/mediaguard/mediaguard/internal/models"
	"github.com/mediaguard/mediaguard/internal/setup"
	setuplog "github.com/mediaguard/mediaguard/internal/setup/logger"
)

func main() {
	imagePath := flag.String("image", "", "Path to an image file (optional)")
	text := flag.String("text", "", "Text to analyze (optional)")
	flag.Parse()

	logger := setuplog.NewConsole(os.Getenv("LOG_LEVEL"))
	log.Logger = logger

	if *imagePath == "" && *text == "" {
		fmt.Fprintln(os.Stderr, "Usage: analyze -image <path> and/or -text '<string>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	if _, missing := setup.EnvStatus(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("Some provider environment variables are missing")
	}

	analysisCtx := models.AnalysisContext{
		RequestID: uuid.NewString(),
		Text:      *text,
		CreatedAt: time.Now(),
	}

	if *imagePath != "" {
		payload, err := input.Normalize(input.Path(*imagePath))
		if err != nil {
			log.Fatal().Err(err).Str("path", *imagePath).Msg("Failed to read image")
		}
		analysisCtx.Image = payload
		log.Info().
			Str("path", *imagePath).
			Str("format", input.DetectFormat(payload)).
			Int("bytes", len(payload)).
			Msg("Image loaded")
	}

	result := deps.Engine.Analyze(ctx, analysisCtx)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))

	if result.Failed {
		os.Exit(2)
	}
}
