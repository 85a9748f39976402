// Package batch evaluates JSONL files of evaluation requests: a reader
// streams parsed lines, a bounded worker pool runs them through the
// pipeline and a writer emits one JSON result per line.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/rs/zerolog"
)

// Lines hold whole evidence contexts, so allow well past the bufio default.
const maxLineBytes = 4 * 1024 * 1024

// InputRecord is one line of the input file: either a parsed request or
// its parse error, with the 1-based line number it came from.
type InputRecord struct {
	Request    models.EvaluationRequest
	LineNumber int
	Error      error
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{source: source, logger: logger}
}

// ReadAll streams records from the source. Blank lines are skipped; a bad
// line yields a record with Error set so callers can report it without
// stopping the batch. The channel closes when the source is exhausted or
// the context is canceled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	ch := make(chan InputRecord)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			}

			select {
			case ch <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("Input reading canceled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to read input")
		}
	}()

	return ch
}
