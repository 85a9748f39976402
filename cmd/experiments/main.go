package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/batch"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/config"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/experiments"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
)

func main() {
	dataset := flag.String("dataset", "", "JSONL dataset of evaluation requests")
	dbPath := flag.String("db", "experiments.db", "SQLite database for run history")
	methods := flag.String("methods", "", "Comma-separated retrieval methods to sweep")
	backends := flag.String("backends", "", "Comma-separated entailment backends to sweep")
	thresholds := flag.String("thresholds", "", "Comma-separated entailment thresholds to sweep")
	topKs := flag.String("top-k", "", "Comma-separated retrieval depths to sweep")
	list := flag.Int("list", 0, "List the most recent N runs and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()
	log.Logger = logger.NewConsole(cfg.LogLevel)

	store, err := experiments.NewStore(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("Failed to open experiment store")
	}
	defer store.Close()

	if *list > 0 {
		listRuns(store, *list)
		return
	}

	if *dataset == "" {
		log.Fatal().Msg("required flag -dataset not provided")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cases, err := loadCases(ctx, *dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}
	log.Info().Int("cases", len(cases)).Str("dataset", *dataset).Msg("Dataset loaded")

	grid, err := parseGrid(*methods, *backends, *thresholds, *topKs)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid grid")
	}

	baseCfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load evaluator config")
	}

	builder := func(ctx context.Context, runCfg config.Config) (experiments.Evaluator, error) {
		deps, err := setup.WireWithConfig(ctx, cfg, &runCfg, &log.Logger)
		if err != nil {
			return nil, err
		}
		return deps.Evaluator, nil
	}

	runner := experiments.NewRunner(*baseCfg, builder, store, &log.Logger)
	runs, err := runner.Sweep(ctx, grid, cases)
	if err != nil {
		log.Fatal().Err(err).Msg("Sweep failed")
	}

	for _, run := range runs {
		printRun(run)
	}
}

func loadCases(ctx context.Context, path string) ([]experiments.Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := batch.NewReader(f, &log.Logger)

	var cases []experiments.Case
	for record := range reader.ReadAll(ctx) {
		if record.Error != nil {
			return nil, fmt.Errorf("line %d: %w", record.LineNumber, record.Error)
		}
		cases = append(cases, experiments.Case{
			EventID: record.Request.EventID,
			Answer:  record.Request.Answer,
			Context: record.Request.Context,
		})
	}
	return cases, nil
}

func parseGrid(methods, backends, thresholds, topKs string) (experiments.Grid, error) {
	grid := experiments.Grid{
		Methods:  splitList(methods),
		Backends: splitList(backends),
	}

	for _, raw := range splitList(thresholds) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return experiments.Grid{}, fmt.Errorf("bad threshold %q: %w", raw, err)
		}
		grid.Thresholds = append(grid.Thresholds, v)
	}
	for _, raw := range splitList(topKs) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return experiments.Grid{}, fmt.Errorf("bad top-k %q: %w", raw, err)
		}
		grid.TopKs = append(grid.TopKs, v)
	}
	return grid, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func listRuns(store *experiments.Store, limit int) {
	runs, err := store.ListRuns(limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list runs")
	}
	for _, run := range runs {
		printRun(run)
	}
}

func printRun(run experiments.Run) {
	fmt.Printf("%s  %s  method=%-9s backend=%-8s threshold=%.2f top_k=%d cases=%d mean_coverage=%.3f duration=%s\n",
		run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Method, run.Backend,
		run.Threshold, run.TopK, run.Cases, run.MeanCoverage, run.Duration.Round(time.Millisecond))
}
