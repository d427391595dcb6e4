package calendar

import (
	"sync"
	"time"
)

// FeedCache keeps downloaded calendar feeds for a while so a watcher polling
// a URL does not refetch it on every tick.
type FeedCache struct {
	mu    sync.RWMutex
	feeds map[string]cachedFeed
	ttl   time.Duration
}

type cachedFeed struct {
	data      []byte
	fetchedAt time.Time
}

func NewFeedCache(ttl time.Duration) *FeedCache {
	return &FeedCache{ttl: ttl, feeds: make(map[string]cachedFeed)}
}

func (c *FeedCache) Get(url string) []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.feeds[url]
	if !ok || time.Since(f.fetchedAt) > c.ttl {
		return nil
	}

	result := make([]byte, len(f.data))
	copy(result, f.data)
	return result
}

func (c *FeedCache) Set(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	c.feeds[url] = cachedFeed{data: stored, fetchedAt: time.Now()}
}

func (c *FeedCache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.feeds, url)
}
