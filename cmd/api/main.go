package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/mediaguard/mediaguard/internal/api"
	"github.com/mediaguard/mediaguard/internal/api/middleware"
	"github.com/mediaguard/mediaguard/internal/setup"
	setuplog "github.com/mediaguard/mediaguard/internal/setup/logger"
)

func main() {
	// Setup logging
	logger := setuplog.NewConsole(os.Getenv("LOG_LEVEL"))
	log.Logger = logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	// Load config and wire the engine
	cfg := setup.LoadConfig()
	deps, err := setup.Wire(cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	if _, missing := setup.EnvStatus(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("Some provider environment variables are missing")
	}

	// API
	handler := api.NewHandler(deps.Engine, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Server
	port := os.Getenv("MEDIAGUARD_API_PORT")
	if port == "" {
		port = "18080"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("address", addr).Msg("Starting MediaGuard API")

	server := http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(container),
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
