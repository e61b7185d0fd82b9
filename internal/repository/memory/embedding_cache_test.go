package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCacheRoundTrip(t *testing.T) {
	c := NewEmbeddingCache()

	vector := []float32{0.1, 0.2, 0.3}
	c.Save("comment soigner le paludisme", "RETRIEVAL_QUERY", vector)

	got, ok := c.Get("comment soigner le paludisme", "RETRIEVAL_QUERY")
	require.True(t, ok)
	assert.Equal(t, vector, got)
}

func TestEmbeddingCacheKeysOnTaskType(t *testing.T) {
	c := NewEmbeddingCache()

	c.Save("même texte", "RETRIEVAL_QUERY", []float32{1})

	_, ok := c.Get("même texte", "RETRIEVAL_DOCUMENT")
	assert.False(t, ok, "same text under a different task type is a different key")
}

func TestEmbeddingCacheMiss(t *testing.T) {
	c := NewEmbeddingCache()

	_, ok := c.Get("jamais vu", "RETRIEVAL_QUERY")
	assert.False(t, ok)
}

func TestEmbeddingCacheFlush(t *testing.T) {
	c := NewEmbeddingCache()

	c.Save("texte", "RETRIEVAL_QUERY", []float32{1})
	c.Flush()

	_, ok := c.Get("texte", "RETRIEVAL_QUERY")
	assert.False(t, ok)
}
