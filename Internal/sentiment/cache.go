package sentiment

import (
	"sync"

	"github.com/fazecat/moodsy/Internal/types"
)

// Cache memoizes text -> label for the process lifetime. No eviction:
// identical text always maps to the same label, so concurrent writes for
// one key are idempotent and the map only resets on restart.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]types.Sentiment
}

func NewCache() *Cache {
	return &Cache{
		entries: map[string]types.Sentiment{},
	}
}

func (c *Cache) Get(key string) (types.Sentiment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Put(key string, label types.Sentiment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = label
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
