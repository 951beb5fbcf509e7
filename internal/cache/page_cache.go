// Package cache keeps rendered listing pages in memory until they expire or a
// post changes.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// PageCache counts purges in generation. A page built before a purge carries
// the old generation and is never stored.
type PageCache struct {
	mu         sync.Mutex
	generation uint64
	pages      *expirable.LRU[string, []byte]
}

func NewPageCache(size int, ttl time.Duration) *PageCache {
	if size < 1 {
		size = 1
	}
	return &PageCache{pages: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *PageCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	return c.pages.Get(key)
}

// Generation is read before loading the data a page is built from.
func (c *PageCache) Generation() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *PageCache) Set(key string, body []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages.Add(key, body)
}

// SetAt stores body only if no purge happened since generation was read.
func (c *PageCache) SetAt(key string, body []byte, generation uint64) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false
	}
	c.pages.Add(key, body)
	return true
}

// Purge drops every cached page. Called after any post mutation.
func (c *PageCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.pages.Purge()
}

func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}
	return c.pages.Len()
}
