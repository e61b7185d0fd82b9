package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenglaafi-be/pkg/embedding"
	"tenglaafi-be/pkg/retry"
)

type countingProvider struct {
	calls int
	fail  int // first N calls fail with a transient error
}

func (p *countingProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	p.calls++
	if p.calls <= p.fail {
		return nil, &retry.HTTPError{StatusCode: 503, Body: "unavailable"}
	}
	resp := &embedding.EmbeddingResponse{}
	resp.Embedding.Values = []float32{0.5, 0.5}
	return resp, nil
}

type mapStore struct {
	data map[string][]float32
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]float32)}
}

func (s *mapStore) Get(text string, taskType string) ([]float32, bool) {
	v, ok := s.data[taskType+"\x00"+text]
	return v, ok
}

func (s *mapStore) Save(text string, taskType string, vector []float32) {
	s.data[taskType+"\x00"+text] = vector
}

func TestCachedEmbedderMemoizes(t *testing.T) {
	provider := &countingProvider{}
	e := NewCachedEmbedder(provider, newMapStore(), time.Second, 2)

	first, err := e.Embed(context.Background(), "paludisme", "RETRIEVAL_QUERY")
	require.NoError(t, err)

	second, err := e.Embed(context.Background(), "paludisme", "RETRIEVAL_QUERY")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "second call must come from the store")
}

func TestCachedEmbedderRetriesTransientFailures(t *testing.T) {
	provider := &countingProvider{fail: 1}
	e := NewCachedEmbedder(provider, newMapStore(), time.Second, 2)

	vector, err := e.Embed(context.Background(), "paludisme", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	assert.NotEmpty(t, vector)
	assert.Equal(t, 2, provider.calls)
}

func TestCachedEmbedderGivesUpAfterAttempts(t *testing.T) {
	provider := &countingProvider{fail: 10}
	e := NewCachedEmbedder(provider, newMapStore(), time.Second, 2)

	_, err := e.Embed(context.Background(), "paludisme", "RETRIEVAL_QUERY")
	require.Error(t, err)
	assert.Equal(t, 2, provider.calls)
}
