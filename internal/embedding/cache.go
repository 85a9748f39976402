package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedEmbedder memoizes embeddings keyed by model name and input text.
// Keys carry no evaluator configuration (threshold, top-k), so cached
// vectors stay valid across differently configured evaluations of the same
// passages.
type CachedEmbedder struct {
	inner Embedder
	model string
	cache *gocache.Cache
}

func NewCached(inner Embedder, model string, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		model: model,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(c.model, text)
	if cached, found := c.cache.Get(key); found {
		return cached.([]float32), nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, vec, gocache.DefaultExpiration)
	return vec, nil
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
