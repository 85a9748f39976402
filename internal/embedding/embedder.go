// Package embedding provides the embedding-model clients used by the
// vector retrieval path. Every client is an explicitly constructed resource
// passed into the retriever, never ambient state.
package embedding

import "context"

// Embedder maps a piece of text to a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
