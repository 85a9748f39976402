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

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/mcpadapter"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	cfg := setup.LoadConfig()

	// Stdout carries the MCP protocol; logs stay on stderr.
	appLogger := logger.NewConsole(cfg.LogLevel)
	log.Logger = appLogger

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	// Create MCP Server
	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes (e.g. echo | ./bin/ece-mcp)
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			appLogger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		appLogger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "evidence-coverage-evaluator",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_grounding",
		Description: "Evaluate how well an answer is grounded in its passages: claim-level entailment verdicts, citation checks, a coverage score, and actionable feedback",
	}, mcpadapter.NewEvaluateGroundingHandler(deps.Evaluator))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_claims",
		Description: "Split an answer into atomic factual claims with their character spans. Faster than the full pipeline.",
	}, mcpadapter.NewExtractClaimsHandler(deps.Extractor))
	return server
}
