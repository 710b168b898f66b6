package leveling

import (
	"sync"
	"time"
)

// CooldownTracker records the last XP grant per key. Transient state,
// independent of the automod rate tracker.
type CooldownTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		last: make(map[string]time.Time),
	}
}

// Allow reports whether enough time has passed since the key's last grant
// and, if so, records now as the new grant time.
func (c *CooldownTracker) Allow(key string, now time.Time, cooldown time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.last[key]; ok && now.Sub(last) < cooldown {
		return false
	}
	c.last[key] = now
	return true
}
