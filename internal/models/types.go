package models

import (
	"fmt"
	"strings"
)

// Passage is one retrievable unit of evidence text with a stable identifier.
// Immutable once constructed.
type Passage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Context is the ordered evidence set an answer is evaluated against.
// The id space is unique within one context and insertion order is
// preserved: retrieval breaks score ties by insertion position.
type Context struct {
	Passages []Passage `json:"passages"`
}

// Validate reports whether the context is structurally sound. A context
// with zero passages is valid input (every claim will simply come back
// unsupported); blank or duplicate passage ids are not.
func (c *Context) Validate() error {
	seen := make(map[string]struct{}, len(c.Passages))
	for i, p := range c.Passages {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("passage at index %d has an empty id", i)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("duplicate passage id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Len returns the number of passages in the context.
func (c *Context) Len() int {
	return len(c.Passages)
}

// Position returns the insertion index of the passage with the given id.
func (c *Context) Position(id string) (int, bool) {
	for i, p := range c.Passages {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Get returns the passage with the given id.
func (c *Context) Get(id string) (Passage, bool) {
	for _, p := range c.Passages {
		if p.ID == id {
			return p, true
		}
	}
	return Passage{}, false
}

// Span is a half-open [start, end) byte range into the original answer
// string. Serialized as a two-element JSON array.
type Span [2]int

func (s Span) Start() int { return s[0] }
func (s Span) End() int   { return s[1] }

// Claim is an atomic factual assertion extracted from the answer text.
// ID is the claim's position in extraction order. Claims are produced only
// by the extractor and never mutated afterward; Text is always recoverable
// from the answer via Span.
type Claim struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Span Span   `json:"span"`
}

// SupportingSnippet links a claim to one retrieved passage. Rank is the
// 1-based position in the ranked retrieval result. Score is a BM25 weight
// (unbounded, positive) in lexical mode and a cosine similarity in
// embedding mode.
type SupportingSnippet struct {
	PassageID string  `json:"passage_id"`
	Score     float64 `json:"score"`
	Rank      int     `json:"rank"`
}

// Verdict is the entailment decision for one claim. Exactly one verdict
// exists per claim. EvidenceUsed lists the passages that actually entail
// the claim, best first; it is empty for unsupported claims. MissingInfo
// is populated only when the claim is unsupported or degraded.
type Verdict struct {
	ClaimID      int      `json:"claim_id"`
	Supported    bool     `json:"supported"`
	Confidence   float64  `json:"confidence"`
	MissingInfo  string   `json:"missing_info,omitempty"`
	EvidenceUsed []string `json:"evidence_used"`
}

// CitationCheck records whether the passages a claim explicitly cites match
// the evidence that entails it. Present only for claims whose span carries
// a citation marker. Spam flags claims citing more than three distinct
// passages.
type CitationCheck struct {
	ClaimID           int      `json:"claim_id"`
	CitedPassageIDs   []string `json:"cited_passage_ids"`
	MatchesEntailment bool     `json:"matches_entailment"`
	Spam              bool     `json:"spam,omitempty"`
}

// UnsupportedClaim is the compact form of an unsupported claim reported in
// the evaluation result.
type UnsupportedClaim struct {
	Claim       string `json:"claim"`
	Span        Span   `json:"span"`
	MissingInfo string `json:"missing_info"`
}

// ClaimAnalysis bundles everything known about one claim.
type ClaimAnalysis struct {
	Claim    Claim          `json:"claim"`
	Verdict  Verdict        `json:"verdict"`
	Citation *CitationCheck `json:"citation,omitempty"`
}

// EvaluationResult is the outcome of one evaluation.
//
// Invariants: CoverageScore == SupportedClaims/TotalClaims when
// TotalClaims > 0 and 1.0 when TotalClaims == 0;
// SupportedClaims + len(Unsupported) == TotalClaims; Unsupported and
// ClaimAnalysis preserve claim order.
type EvaluationResult struct {
	EventID         string             `json:"event_id,omitempty"`
	CoverageScore   float64            `json:"coverage_score"`
	TotalClaims     int                `json:"total_claims"`
	SupportedClaims int                `json:"supported_claims"`
	Unsupported     []UnsupportedClaim `json:"unsupported_claims"`
	ClaimAnalysis   []ClaimAnalysis    `json:"claim_analysis"`
	Feedback        []string           `json:"feedback"`
}

// EvaluationRequest is the boundary input shared by the API, MCP, stream
// and batch surfaces: the answer under evaluation plus its evidence
// context. EventID is optional and echoed back in the result.
type EvaluationRequest struct {
	EventID string  `json:"event_id,omitempty"`
	Answer  string  `json:"answer"`
	Context Context `json:"context"`
}
