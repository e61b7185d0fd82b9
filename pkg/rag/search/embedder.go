package search

import (
	"context"
	"fmt"
	"time"

	"tenglaafi-be/pkg/embedding"
	"tenglaafi-be/pkg/retry"
)

// EmbeddingStore memoizes computed vectors across requests.
type EmbeddingStore interface {
	Get(text string, taskType string) ([]float32, bool)
	Save(text string, taskType string, vector []float32)
}

// CachedEmbedder wraps a provider with a memo store and a retry policy.
// Identical (text, taskType) pairs only hit the provider once per TTL.
type CachedEmbedder struct {
	provider embedding.Provider
	store    EmbeddingStore
	timeout  time.Duration
	attempts int
}

func NewCachedEmbedder(provider embedding.Provider, store EmbeddingStore, timeout time.Duration, attempts int) *CachedEmbedder {
	return &CachedEmbedder{
		provider: provider,
		store:    store,
		timeout:  timeout,
		attempts: attempts,
	}
}

func (e *CachedEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	if vector, ok := e.store.Get(text, taskType); ok {
		return vector, nil
	}

	resp, err := retry.Do(ctx, e.timeout, e.attempts, func(ctx context.Context) (*embedding.EmbeddingResponse, error) {
		return e.provider.Generate(ctx, text, taskType)
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding provider returned an empty vector")
	}

	e.store.Save(text, taskType, resp.Embedding.Values)
	return resp.Embedding.Values, nil
}
