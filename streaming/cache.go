package streaming

import "sync"

// Cache memoizes resolver output per content id for the process lifetime.
// Presence implies the URL worked at least once. Entries are never evicted:
// a cached URL that later goes dead surfaces as a playback failure, not here.
type Cache struct {
	mu      sync.Mutex
	entries map[ContentID]string
}

// NewCache returns an empty resolved-URL cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[ContentID]string)}
}

// Get returns the memoized direct URL for id, if any.
func (c *Cache) Get(id ContentID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.entries[id]
	return url, ok
}

// Put records a successfully resolved direct URL for id.
func (c *Cache) Put(id ContentID, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = url
}

// Len reports the number of memoized entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
