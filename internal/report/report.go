// Package report renders an evaluation result as a standalone HTML page:
// coverage summary, the answer with unsupported spans highlighted, a
// claim-by-claim breakdown and the actionable feedback list.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/rs/zerolog"
)

const DefaultTitle = "Evidence Coverage Evaluation Report"

type Generator struct {
	logger *zerolog.Logger
}

func NewGenerator(logger *zerolog.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate renders the report document for a single evaluation.
func (g *Generator) Generate(result models.EvaluationResult, answer, title string) ([]byte, error) {
	if title == "" {
		title = DefaultTitle
	}

	data := buildReportData(result, answer, title)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the report and writes it to path, creating parent
// directories as needed.
func (g *Generator) WriteFile(path string, result models.EvaluationResult, answer, title string) error {
	content, err := g.Generate(result, answer, title)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}

	g.logger.Info().Str("path", path).Msg("Report written")
	return nil
}

type reportData struct {
	Title         string
	GeneratedAt   string
	CoveragePct   string
	CoverageColor string
	TotalClaims   int
	Supported     int
	Unsupported   int
	Answer        template.HTML
	Claims        []claimView
	Feedback      []string
	Citations     *citationSummary
}

type claimView struct {
	Number      int
	Text        string
	Supported   bool
	StatusText  string
	Confidence  string
	Evidence    []string
	MissingInfo string
	Citation    *citationStatus
}

type citationStatus struct {
	Cited   []string
	Matches bool
	Spam    bool
}

type citationSummary struct {
	Total        int
	Matching     int
	QualityPct   string
	QualityColor string
	SpamCount    int
}

func buildReportData(result models.EvaluationResult, answer, title string) reportData {
	data := reportData{
		Title:         title,
		GeneratedAt:   time.Now().Format("2006-01-02 15:04:05"),
		CoveragePct:   fmt.Sprintf("%.1f", result.CoverageScore*100),
		CoverageColor: coverageColor(result.CoverageScore),
		TotalClaims:   result.TotalClaims,
		Supported:     result.SupportedClaims,
		Unsupported:   len(result.Unsupported),
		Answer:        highlightAnswer(answer, result.Unsupported),
		Feedback:      result.Feedback,
	}

	cited, matching, spam := 0, 0, 0
	for i, analysis := range result.ClaimAnalysis {
		view := claimView{
			Number:     i + 1,
			Text:       analysis.Claim.Text,
			Supported:  analysis.Verdict.Supported,
			StatusText: "Unsupported",
			Confidence: fmt.Sprintf("%.2f", analysis.Verdict.Confidence),
			Evidence:   analysis.Verdict.EvidenceUsed,
		}
		if analysis.Verdict.Supported {
			view.StatusText = "Supported"
		} else {
			view.MissingInfo = analysis.Verdict.MissingInfo
		}
		if analysis.Citation != nil {
			cited++
			if analysis.Citation.MatchesEntailment {
				matching++
			}
			if analysis.Citation.Spam {
				spam++
			}
			view.Citation = &citationStatus{
				Cited:   analysis.Citation.CitedPassageIDs,
				Matches: analysis.Citation.MatchesEntailment,
				Spam:    analysis.Citation.Spam,
			}
		}
		data.Claims = append(data.Claims, view)
	}

	if cited > 0 {
		quality := float64(matching) / float64(cited)
		data.Citations = &citationSummary{
			Total:        cited,
			Matching:     matching,
			QualityPct:   fmt.Sprintf("%.1f", quality*100),
			QualityColor: coverageColor(quality),
			SpamCount:    spam,
		}
	}

	return data
}

// highlightAnswer wraps unsupported spans in <mark> tags, escaping every
// text segment itself since the result bypasses template auto-escaping.
func highlightAnswer(answer string, unsupported []models.UnsupportedClaim) template.HTML {
	spans := make([]models.UnsupportedClaim, len(unsupported))
	copy(spans, unsupported)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Span.Start() < spans[j].Span.Start() })

	var b strings.Builder
	cursor := 0
	for _, claim := range spans {
		start, end := claim.Span.Start(), claim.Span.End()
		if start < cursor || end > len(answer) || start > end {
			// Spans from a well-formed result are in bounds and ordered;
			// skip anything a hand-edited input file broke.
			continue
		}
		b.WriteString(template.HTMLEscapeString(answer[cursor:start]))

		tooltip := claim.MissingInfo
		if tooltip == "" {
			tooltip = "No evidence"
		}
		b.WriteString(`<mark class="unsupported" title="`)
		b.WriteString(template.HTMLEscapeString(tooltip))
		b.WriteString(`">`)
		b.WriteString(template.HTMLEscapeString(answer[start:end]))
		b.WriteString(`</mark>`)
		cursor = end
	}
	b.WriteString(template.HTMLEscapeString(answer[cursor:]))

	return template.HTML(b.String())
}

func coverageColor(score float64) string {
	switch {
	case score >= 0.8:
		return "#4CAF50"
	case score >= 0.5:
		return "#FF9800"
	default:
		return "#f44336"
	}
}
