package automod

import (
	"sync"
	"time"
)

// RateTracker keeps a sliding window of event timestamps per key. State is
// process-local and safe to lose on restart; it re-accumulates.
type RateTracker struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func NewRateTracker() *RateTracker {
	return &RateTracker{
		windows: make(map[string][]time.Time),
	}
}

// RecordAndCheck appends now to the key's window, prunes entries older than
// the interval and reports whether the count reached the threshold. On a
// hit the window is cleared so a fresh accumulation is needed before the
// tracker triggers again.
func (t *RateTracker) RecordAndCheck(key string, now time.Time, interval time.Duration, threshold int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-interval)
	kept := t.windows[key][:0]
	for _, stamp := range t.windows[key] {
		if stamp.After(cutoff) {
			kept = append(kept, stamp)
		}
	}
	kept = append(kept, now)

	if len(kept) >= threshold {
		delete(t.windows, key)
		return true
	}

	t.windows[key] = kept
	return false
}

// Reset drops the window for a key.
func (t *RateTracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.windows, key)
}
