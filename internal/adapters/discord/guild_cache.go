package discord

import "sync"

// guildInfo is the slice of guild state the adapter needs for permission
// checks: the owner and which roles carry the administrator bit.
type guildInfo struct {
	OwnerID    string
	AdminRoles map[string]bool
}

type guildCache struct {
	mu    sync.RWMutex
	items map[string]*guildInfo
}

func newGuildCache() *guildCache {
	return &guildCache{
		items: make(map[string]*guildInfo),
	}
}

func (c *guildCache) Get(guildID string) (*guildInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.items[guildID]
	return info, ok
}

func (c *guildCache) Set(guildID string, info *guildInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[guildID] = info
}

func (c *guildCache) Invalidate(guildID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, guildID)
}
