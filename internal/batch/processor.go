package batch

import (
	"context"
	"sync"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/rs/zerolog"
)

const defaultWorkers = 4

// Evaluator scores one answer against its evidence context.
type Evaluator interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (models.EvaluationResult, error)
}

// OutputRecord is one line of the result file. Exactly one of Result and
// Error is set; LineNumber ties the output back to its input line.
type OutputRecord struct {
	LineNumber int                      `json:"line_number"`
	Result     *models.EvaluationResult `json:"result,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// Processor fans input records out over a bounded worker pool. Outputs
// are unordered; consumers use LineNumber to correlate.
type Processor struct {
	evaluator Evaluator
	workers   int
	logger    *zerolog.Logger
}

func NewProcessor(evaluator Evaluator, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Processor{
		evaluator: evaluator,
		workers:   workers,
		logger:    logger,
	}
}

// Process consumes input records and emits one output per record. The
// output channel closes once all workers have drained the input.
func (p *Processor) Process(ctx context.Context, in <-chan InputRecord) <-chan OutputRecord {
	out := make(chan OutputRecord)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range in {
				select {
				case out <- p.processOne(ctx, record):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) OutputRecord {
	if record.Error != nil {
		p.logger.Warn().Err(record.Error).Int("line", record.LineNumber).Msg("Skipping malformed input line")
		return OutputRecord{LineNumber: record.LineNumber, Error: record.Error.Error()}
	}

	result, err := p.evaluator.Evaluate(ctx, record.Request)
	if err != nil {
		p.logger.Error().Err(err).Int("line", record.LineNumber).Msg("Evaluation failed")
		return OutputRecord{LineNumber: record.LineNumber, Error: err.Error()}
	}

	p.logger.Debug().
		Int("line", record.LineNumber).
		Float64("coverage_score", result.CoverageScore).
		Msg("Evaluation complete")

	return OutputRecord{LineNumber: record.LineNumber, Result: &result}
}
