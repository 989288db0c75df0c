// Package cache wraps patrickmn/go-cache for the several in-memory,
// expiring-state needs of the pipeline: the Frontier's seen-set (§4.3),
// the Search Client's result cache, and the Structural Health Monitor's
// last-known-fingerprint snapshot (§4.11). The teacher carries go-cache in
// its go.mod for exactly this in-memory-with-expiry role.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache is a minimal typed wrapper; callers store/retrieve by string key.
type TTLCache struct {
	c *gocache.Cache
}

// New creates a cache with the given default item TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *TTLCache {
	return &TTLCache{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (t *TTLCache) Set(key string, value interface{}) {
	t.c.SetDefault(key, value)
}

func (t *TTLCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	t.c.Set(key, value, ttl)
}

func (t *TTLCache) Get(key string) (interface{}, bool) {
	return t.c.Get(key)
}

func (t *TTLCache) Has(key string) bool {
	_, ok := t.c.Get(key)
	return ok
}

func (t *TTLCache) Delete(key string) {
	t.c.Delete(key)
}

func (t *TTLCache) ItemCount() int {
	return t.c.ItemCount()
}
