package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// Summary aggregates a whole batch into one record.
type Summary struct {
	Total           int     `json:"total"`
	Succeeded       int     `json:"succeeded"`
	Failed          int     `json:"failed"`
	MeanCoverage    float64 `json:"mean_coverage"`
	TotalClaims     int     `json:"total_claims"`
	SupportedClaims int     `json:"supported_claims"`

	coverageSum float64
}

// Writer emits results either one JSON object per line or as a single
// summary document written on Close.
type Writer struct {
	dest    io.Writer
	format  string
	encoder *json.Encoder
	logger  *zerolog.Logger
	summary Summary
}

func NewWriter(dest io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatSummary:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Writer{
		dest:    dest,
		format:  format,
		encoder: json.NewEncoder(dest),
		logger:  logger,
	}, nil
}

// Write records one result. In jsonl mode it is written immediately; in
// summary mode it only updates the tallies.
func (w *Writer) Write(record OutputRecord) error {
	w.summary.Total++
	if record.Error != "" {
		w.summary.Failed++
	} else {
		w.summary.Succeeded++
		w.summary.coverageSum += record.Result.CoverageScore
		w.summary.TotalClaims += record.Result.TotalClaims
		w.summary.SupportedClaims += record.Result.SupportedClaims
	}

	if w.format == FormatSummary {
		return nil
	}
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write output record: %w", err)
	}
	return nil
}

// Close finalizes the output. In summary mode this is where the document
// is written.
func (w *Writer) Close() error {
	if w.summary.Succeeded > 0 {
		w.summary.MeanCoverage = w.summary.coverageSum / float64(w.summary.Succeeded)
	}

	w.logger.Info().
		Int("succeeded", w.summary.Succeeded).
		Int("failed", w.summary.Failed).
		Msg("Batch complete")

	if w.format != FormatSummary {
		return nil
	}

	data, err := json.MarshalIndent(w.summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.dest.Write(data); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// Stats exposes the running tallies, e.g. for exit-code decisions.
func (w *Writer) Stats() Summary {
	return w.summary
}
