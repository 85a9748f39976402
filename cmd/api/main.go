package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/api"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/api/middleware"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()
	appLogger := logger.New(cfg.LogLevel)
	log.Logger = appLogger

	ctx := context.Background()

	// Wire the pipeline
	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire evaluation pipeline")
	}

	// API
	handler := api.NewHandler(deps.Evaluator, &appLogger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	container.Filter(middleware.Metrics)
	api.RegisterRoutes(container, handler)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Server
	port := os.Getenv("ECE_API_PORT")
	if port == "" {
		port = "18081"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().
		Str("address", addr).
		Str("method", deps.Config.Retrieval.Method).
		Str("backend", deps.Config.Entailment.Backend).
		Msg("Starting evidence coverage API")

	server := http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(container),
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
