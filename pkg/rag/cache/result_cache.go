package cache

import (
	"container/list"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"

	"tenglaafi-be/pkg/store"
)

// ResultCache is a fixed-capacity LRU of generated answers, keyed by the
// normalized question plus the requested top-k. Both hits and inserts
// refresh recency; the least recently used entry is evicted at capacity.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key    string
	answer store.Answer
}

func NewResultCache(capacity int) *ResultCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ResultCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Key derives the cache key from the raw question and top-k.
// Normalization is trim plus lowercase, so casing and padding variants
// of the same question share an entry.
func Key(question string, topK int) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	sum := md5.Sum([]byte(normalized + "_" + strconv.Itoa(topK)))
	return hex.EncodeToString(sum[:])
}

func (c *ResultCache) Get(key string) (store.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return store.Answer{}, false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).answer, true
}

func (c *ResultCache) Put(key string, answer store.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).answer = answer
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, answer: answer})
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.entries = make(map[string]*list.Element, c.capacity)
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *ResultCache) Capacity() int {
	return c.capacity
}
