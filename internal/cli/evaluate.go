package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/config"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/report"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/setup/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrBelowMinCoverage reports a completed evaluation whose coverage fell
// short of the --min-coverage gate. The process exits non-zero.
var ErrBelowMinCoverage = errors.New("coverage below minimum")

var (
	answerText  string
	answerFile  string
	contextFile string
	methodFlag  string
	backendFlag string
	threshold   float64
	topK        int
	outputPath  string
	htmlPath    string
	minCoverage float64
	evalTimeout time.Duration
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate evidence coverage of an answer against its passages",
	Long: `Evaluate runs the full pipeline on one answer:
- Extract atomic claims from the answer
- Retrieve candidate evidence for each claim
- Judge whether the evidence entails each claim
- Check inline citations like [p1] against the supporting evidence
- Aggregate a coverage score with actionable feedback

The context file is JSON of the form {"passages": [{"id": "p1", "text": "..."}]}.

Example:
  ece evaluate --answer "The Eiffel Tower is in Paris." --context passages.json
  ece evaluate --answer-file answer.txt --context passages.json --output result.json
  ece evaluate --answer-file answer.txt --context passages.json --html report.html --min-coverage 0.7`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&answerText, "answer", "a", "", "answer text to evaluate")
	evaluateCmd.Flags().StringVar(&answerFile, "answer-file", "", "path to a file holding the answer text")
	evaluateCmd.Flags().StringVarP(&contextFile, "context", "c", "", "path to the context JSON file")
	evaluateCmd.Flags().StringVar(&methodFlag, "method", "", "retrieval method override (lexical, embedding)")
	evaluateCmd.Flags().StringVar(&backendFlag, "backend", "", "entailment backend override (fast, judgment)")
	evaluateCmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "entailment threshold override (0-1)")
	evaluateCmd.Flags().IntVar(&topK, "top-k", 0, "evidence candidates per claim override")
	evaluateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result JSON to this path (default: stdout)")
	evaluateCmd.Flags().StringVar(&htmlPath, "html", "", "write an HTML report to this path")
	evaluateCmd.Flags().Float64Var(&minCoverage, "min-coverage", 0, "exit non-zero when coverage falls below this value")
	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", 2*time.Minute, "overall evaluation timeout")

	_ = evaluateCmd.MarkFlagRequired("context")
	_ = viper.BindPFlag("min_coverage", evaluateCmd.Flags().Lookup("min-coverage"))
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	answer, err := resolveAnswer()
	if err != nil {
		return err
	}

	evidence, err := loadContext(contextFile)
	if err != nil {
		return err
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	appLogger := logger.NewConsole(level)

	evalCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(evalCfg)
	if err := evalCfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	deps, err := setup.WireWithConfig(ctx, setup.LoadConfig(), evalCfg, &appLogger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Method: %s\n", evalCfg.Retrieval.Method)
		fmt.Fprintf(os.Stderr, "Backend: %s\n", evalCfg.Entailment.Backend)
		fmt.Fprintf(os.Stderr, "Threshold: %.2f\n", evalCfg.Entailment.Threshold)
		fmt.Fprintln(os.Stderr)
	}

	result, err := deps.Evaluator.Evaluate(ctx, models.EvaluationRequest{
		Answer:  answer,
		Context: evidence,
	})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if err := writeResult(result); err != nil {
		return err
	}

	if htmlPath != "" {
		generator := report.NewGenerator(&appLogger)
		if err := generator.WriteFile(htmlPath, result, answer, ""); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "HTML report generated: %s\n", htmlPath)
	}

	if gate := viper.GetFloat64("min_coverage"); gate > 0 && result.CoverageScore < gate {
		return fmt.Errorf("%w: %.2f < %.2f", ErrBelowMinCoverage, result.CoverageScore, gate)
	}
	return nil
}

func resolveAnswer() (string, error) {
	switch {
	case answerText != "" && answerFile != "":
		return "", fmt.Errorf("use either --answer or --answer-file, not both")
	case answerText != "":
		return answerText, nil
	case answerFile != "":
		data, err := os.ReadFile(answerFile)
		if err != nil {
			return "", fmt.Errorf("read answer file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("an answer is required: pass --answer or --answer-file")
	}
}

func loadContext(path string) (models.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Context{}, fmt.Errorf("read context file: %w", err)
	}

	var evidence models.Context
	if err := json.Unmarshal(data, &evidence); err != nil {
		return models.Context{}, fmt.Errorf("parse context JSON: %w", err)
	}
	return evidence, nil
}

func applyOverrides(cfg *config.Config) {
	if methodFlag != "" {
		cfg.Retrieval.Method = methodFlag
	}
	if backendFlag != "" {
		cfg.Entailment.Backend = backendFlag
	}
	if threshold > 0 {
		cfg.Entailment.Threshold = threshold
	}
	if topK > 0 {
		cfg.Retrieval.TopK = topK
	}
}

func writeResult(result models.EvaluationResult) error {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(output))
		return nil
	}

	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return fmt.Errorf("write result to %s: %w", outputPath, err)
	}
	fmt.Fprintf(os.Stderr, "Results saved to %s\n", outputPath)
	return nil
}
