package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/config"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/llm"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
)

const defaultPromptTemplate = `You are an entailment judge.
Decide whether the claim is fully supported by the evidence passages below.
A claim is supported only if every fact it states is present in the evidence.

Claim: {{.Claim}}

Evidence:
{{.Evidence}}

Respond ONLY in raw JSON with no markdown, no code blocks, no explanation:
{"supported": <bool>, "confidence": <float between 0.0 and 1.0>, "supporting_passages": ["<passage id>"], "missing_info": "<what the evidence lacks, empty if supported>"}`

type judgeResponse struct {
	Supported          bool     `json:"supported"`
	Confidence         float64  `json:"confidence"`
	SupportingPassages []string `json:"supporting_passages"`
	MissingInfo        string   `json:"missing_info"`
}

type promptData struct {
	Claim    string
	Evidence string
}

// GenerativeJudge is the judgment entailment backend. It asks a generative
// model for a structured per-claim decision and validates the reply before
// trusting it.
type GenerativeJudge struct {
	promptTemplate *template.Template
	maxTokens      int
	temperature    float64
	timeout        time.Duration
	retry          bool
	llmClient      llm.LLMClient
	logger         *zerolog.Logger
}

func NewGenerativeJudge(cfg config.JudgeModelConfig, llmClient llm.LLMClient, logger *zerolog.Logger) (*GenerativeJudge, error) {
	promptText := cfg.PromptTemplate
	if promptText == "" {
		promptText = defaultPromptTemplate
	}

	tmpl, err := template.New("entailment").Parse(promptText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse judge prompt template: %w", err)
	}

	return &GenerativeJudge{
		promptTemplate: tmpl,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		timeout:        time.Duration(cfg.Timeout) * time.Second,
		retry:          cfg.Retry,
		llmClient:      llmClient,
		logger:         logger,
	}, nil
}

func (j *GenerativeJudge) Judge(ctx context.Context, claim models.Claim, snippets []models.SupportingSnippet, evidence models.Context) models.Verdict {
	now := time.Now()

	if len(snippets) == 0 {
		return unsupportedVerdict(claim.ID, noEvidenceMissingInfo)
	}

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	prompt, err := j.buildPrompt(claim, snippets, evidence)
	if err != nil {
		j.logger.Error().Err(err).Int("claim_id", claim.ID).Msg("failed to build prompt from template")
		return unsupportedVerdict(claim.ID, fmt.Sprintf("Failed to build judge prompt: %v", err))
	}

	request := llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   j.maxTokens,
		Temperature: j.temperature,
	}

	var resp *llm.LLMResponse
	if j.retry {
		resp, err = j.llmClient.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = j.llmClient.InvokeModel(ctx, request)
	}
	if err != nil {
		j.logger.Error().Err(err).Int("claim_id", claim.ID).Msg("LLM call failed")
		return unsupportedVerdict(claim.ID, fmt.Sprintf("Judge service unavailable: %v", err))
	}

	content := stripMarkdownCodeBlock(resp.Content)
	var llmResponse judgeResponse
	if err := json.Unmarshal([]byte(content), &llmResponse); err != nil {
		j.logger.Error().
			Err(err).
			Int("claim_id", claim.ID).
			Str("content", resp.Content).
			Msg("failed to deserialize LLM response")
		return unsupportedVerdict(claim.ID, "Judge returned a response that could not be parsed")
	}

	if llmResponse.Confidence < 0.0 || llmResponse.Confidence > 1.0 {
		j.logger.Error().
			Int("claim_id", claim.ID).
			Float64("confidence", llmResponse.Confidence).
			Msg("LLM returned confidence out of range")
		return unsupportedVerdict(claim.ID, "Judge returned a response that could not be parsed")
	}

	verdict := models.Verdict{
		ClaimID:      claim.ID,
		Supported:    llmResponse.Supported,
		Confidence:   llmResponse.Confidence,
		EvidenceUsed: []string{},
	}

	if verdict.Supported {
		verdict.EvidenceUsed = j.validEvidence(llmResponse.SupportingPassages, snippets)
	} else {
		verdict.MissingInfo = llmResponse.MissingInfo
		if verdict.MissingInfo == "" {
			verdict.MissingInfo = "Claim not supported by evidence"
		}
	}

	j.logger.Debug().
		Int("claim_id", claim.ID).
		Bool("supported", verdict.Supported).
		Float64("confidence", verdict.Confidence).
		Dur("duration", time.Since(now)).
		Msg("generative judgment completed")

	return verdict
}

func (j *GenerativeJudge) buildPrompt(claim models.Claim, snippets []models.SupportingSnippet, evidence models.Context) (string, error) {
	var block strings.Builder
	for _, snippet := range snippets {
		passage, ok := evidence.Get(snippet.PassageID)
		if !ok {
			continue
		}
		fmt.Fprintf(&block, "[%s] %s\n", passage.ID, passage.Text)
	}

	var buf bytes.Buffer
	err := j.promptTemplate.Execute(&buf, promptData{
		Claim:    claim.Text,
		Evidence: strings.TrimRight(block.String(), "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// validEvidence keeps only cited passage ids that were actually retrieved
// for the claim. A model that claims support without naming any retrieved
// passage is credited with the top-ranked snippet so the verdict still
// satisfies the supported-implies-evidence rule.
func (j *GenerativeJudge) validEvidence(cited []string, snippets []models.SupportingSnippet) []string {
	retrieved := make(map[string]struct{}, len(snippets))
	for _, s := range snippets {
		retrieved[s.PassageID] = struct{}{}
	}

	kept := make([]string, 0, len(cited))
	seen := make(map[string]struct{}, len(cited))
	for _, id := range cited {
		if _, ok := retrieved[id]; !ok {
			j.logger.Warn().Str("passage_id", id).Msg("judge cited a passage that was not retrieved")
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		kept = append(kept, id)
	}

	if len(kept) == 0 {
		kept = append(kept, snippets[0].PassageID)
	}
	return kept
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	// Check for markdown code blocks (```json ... ``` or ``` ... ```)
	if strings.HasPrefix(content, "```") {
		// Find the first newline (after the opening ```)
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		// Find the closing ```
		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		// Extract the content between the code blocks
		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
