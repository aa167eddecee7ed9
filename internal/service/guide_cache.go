package service

import (
	"sync"
	"time"
)

type guideCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]guideEntry
}

type guideEntry struct {
	guide    *DestinationGuide
	cachedAt time.Time
}

func newGuideCache(ttl time.Duration) *guideCache {
	return &guideCache{ttl: ttl, entries: make(map[string]guideEntry)}
}

func (c *guideCache) get(place string) *DestinationGuide {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[place]
	if !ok || time.Since(entry.cachedAt) > c.ttl {
		return nil
	}
	return entry.guide
}

func (c *guideCache) set(place string, guide *DestinationGuide) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[place] = guideEntry{guide: guide, cachedAt: time.Now()}
}
