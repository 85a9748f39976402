package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/batch"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
)

func main() {
	startTime := time.Now()

	input := flag.String("input", "", "Input JSONL file path, or - for stdin")
	output := flag.String("output", "", "Output file path (default: stdout)")
	format := flag.String("format", batch.FormatJSONL, "Output file format. Supported formats: 'jsonl', 'summary'")
	workers := flag.Int("workers", 4, "Concurrent evaluation workers")
	continueOnError := flag.Bool("continue-on-error", true, "Continue when a result fails to write")
	dryRun := flag.Bool("dry-run", false, "Validate input without evaluating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()

	// Results go to stdout by default, so logs stay on stderr.
	log.Logger = logger.NewConsole(cfg.LogLevel)

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Open input file
	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	reader := batch.NewReader(inputFile, &log.Logger)
	records := reader.ReadAll(ctx)

	// Dry run validation needs no pipeline
	if *dryRun {
		dryRunAndExit(records)
	}

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire evaluation pipeline")
	}

	// Open output file
	var outputFile io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	writer, err := batch.NewWriter(outputFile, *format, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	// Process with worker pool
	processor := batch.NewProcessor(deps.Evaluator, *workers, &log.Logger)
	results := processor.Process(ctx, records)

	writeErrors := 0
	for result := range results {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Int("line", result.LineNumber).Msg("Failed to write result")
			writeErrors++

			if !*continueOnError {
				log.Fatal().Msg("Stopping due to write error")
			}
		}
	}

	if err := writer.Close(); err != nil {
		log.Fatal().Err(err).Msg("Failed to finalize output")
	}

	stats := writer.Stats()
	log.Info().
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int("write_errors", writeErrors).
		Dur("duration", time.Since(startTime)).
		Msg("Batch processing complete")
}

func dryRunAndExit(records <-chan batch.InputRecord) {
	total := 0
	errorCount := 0
	for record := range records {
		total++
		if record.Error != nil {
			log.Error().
				Int("line", record.LineNumber).
				Err(record.Error).
				Msg("Validation error")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Validation failed")
	}

	log.Info().Int("total", total).Msg("Validation successful")
	os.Exit(0)
}
