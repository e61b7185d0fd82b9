package memory

import (
	"crypto/md5"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// EmbeddingCache memoizes query embeddings so repeated retrievals of the
// same text skip the provider round trip. TTL-based: entries expire after
// an hour, which is fine because embeddings are deterministic and the
// cache only trades latency, never correctness.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache() *EmbeddingCache {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &EmbeddingCache{
		cache: c,
	}
}

func key(text, taskType string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(taskType+"\x00"+text)))
}

func (r *EmbeddingCache) Get(text, taskType string) ([]float32, bool) {
	if x, found := r.cache.Get(key(text, taskType)); found {
		return x.([]float32), true
	}
	return nil, false
}

func (r *EmbeddingCache) Save(text, taskType string, values []float32) {
	r.cache.Set(key(text, taskType), values, cache.DefaultExpiration)
}

func (r *EmbeddingCache) Flush() {
	r.cache.Flush()
}
