package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/embedding"
	"github.com/adwantgoutam/rag-evidence-coverage-evaluator/internal/models"
	"github.com/rs/zerolog"
)

const (
	MethodLexical   = "lexical"
	MethodEmbedding = "embedding"
)

// ErrBackendUnavailable marks retrieval failures caused by the embedding
// backend rather than by the inputs. The caller degrades the affected claim
// and keeps evaluating.
var ErrBackendUnavailable = errors.New("retrieval backend unavailable")

// Retriever ranks the passages of a context against one claim and returns
// the top-k as supporting snippets. It holds no cross-claim state, so one
// retriever may serve concurrent per-claim tasks.
type Retriever struct {
	method   string
	topK     int
	embedder embedding.Embedder
	logger   *zerolog.Logger
}

// NewLexical builds a BM25-based retriever. Scoring is a pure function of
// (claim, context) and never fails.
func NewLexical(topK int, logger *zerolog.Logger) *Retriever {
	return &Retriever{method: MethodLexical, topK: topK, logger: logger}
}

// NewEmbedding builds a cosine-similarity retriever on top of the given
// embedder.
func NewEmbedding(topK int, embedder embedding.Embedder, logger *zerolog.Logger) *Retriever {
	return &Retriever{method: MethodEmbedding, topK: topK, embedder: embedder, logger: logger}
}

// Method returns the configured retrieval method name.
func (r *Retriever) Method() string {
	return r.method
}

// Retrieve returns snippets ordered by descending score, ties broken by
// passage insertion order, ranks assigned 1-based after ordering. Only
// positive-scoring passages are returned; when k exceeds the context size
// every positive-scoring passage comes back.
func (r *Retriever) Retrieve(ctx context.Context, claim models.Claim, evidence models.Context) ([]models.SupportingSnippet, error) {
	if evidence.Len() == 0 {
		return nil, nil
	}

	var scores []float64
	switch r.method {
	case MethodLexical:
		scores = bm25Scores(claim, evidence)
	case MethodEmbedding:
		var err error
		scores, err = r.embeddingScores(ctx, claim, evidence)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		}
	default:
		// Construction goes through config validation, so this is a wiring
		// bug rather than user input.
		return nil, fmt.Errorf("unknown retrieval method %q", r.method)
	}

	snippets := rank(scores, evidence, r.topK)
	r.logger.Debug().
		Int("claim_id", claim.ID).
		Str("method", r.method).
		Int("snippets", len(snippets)).
		Msg("retrieval completed")
	return snippets, nil
}

func (r *Retriever) embeddingScores(ctx context.Context, claim models.Claim, evidence models.Context) ([]float64, error) {
	claimVec, err := r.embedder.Embed(ctx, claim.Text)
	if err != nil {
		return nil, fmt.Errorf("embed claim: %w", err)
	}

	scores := make([]float64, evidence.Len())
	for i, p := range evidence.Passages {
		vec, err := r.embedder.Embed(ctx, p.Text)
		if err != nil {
			return nil, fmt.Errorf("embed passage %q: %w", p.ID, err)
		}
		scores[i] = cosineSimilarity(claimVec, vec)
	}
	return scores, nil
}

// rank orders positive-scoring passages by score descending with insertion
// order as the tie-break, truncates to k and assigns ranks.
func rank(scores []float64, evidence models.Context, k int) []models.SupportingSnippet {
	type scored struct {
		position int
		score    float64
	}

	var kept []scored
	for i, s := range scores {
		if s > 0 {
			kept = append(kept, scored{position: i, score: s})
		}
	}

	sort.SliceStable(kept, func(a, b int) bool {
		if kept[a].score != kept[b].score {
			return kept[a].score > kept[b].score
		}
		return kept[a].position < kept[b].position
	})

	if k > 0 && len(kept) > k {
		kept = kept[:k]
	}

	snippets := make([]models.SupportingSnippet, len(kept))
	for i, s := range kept {
		snippets[i] = models.SupportingSnippet{
			PassageID: evidence.Passages[s.position].ID,
			Score:     s.score,
			Rank:      i + 1,
		}
	}
	return snippets
}
