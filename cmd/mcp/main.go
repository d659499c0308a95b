package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/mediaguard/mediaguard/internal/mcpadapter"
	"github.com/mediaguard/mediaguard/internal/setup"
	setuplog "github.com/mediaguard/mediaguard/internal/setup/logger"
)

func main() {
	// Setup logging
	logger := setuplog.NewConsole(os.Getenv("LOG_LEVEL"))
	log.Logger = logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire dependencies
	deps, err := setup.Wire(cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	// Create MCP Server
	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mediaguard",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_content",
		Description: "Analyze an image and/or text for safety risk and return a fused verdict with per-category scores",
	}, mcpadapter.NewAnalyzeHandler(deps.Engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_text",
		Description: "Analyze text only for safety risk. Faster than the full pipeline when no image is involved.",
	}, mcpadapter.NewAnalyzeTextHandler(deps.Engine))

	return server
}
