package automod

import (
	"strings"
	"sync"
)

// historySize bounds the per-key ring of recent message bodies.
const historySize = 5

// TextHistory keeps the last few lowercased message bodies per key so the
// repeated-text classifier can spot immediate repetition. Same lifecycle as
// RateTracker: process-local, lost on restart.
type TextHistory struct {
	mu      sync.Mutex
	entries map[string][]string
}

func NewTextHistory() *TextHistory {
	return &TextHistory{
		entries: make(map[string][]string),
	}
}

// RecordAndCheck pushes the lowercased content into the key's ring,
// evicting the oldest entry past capacity, and reports whether the content
// now occurs at least threshold times. A hit clears the ring.
func (h *TextHistory) RecordAndCheck(key, content string, threshold int) bool {
	lowered := strings.ToLower(content)

	h.mu.Lock()
	defer h.mu.Unlock()

	ring := append(h.entries[key], lowered)
	if len(ring) > historySize {
		ring = ring[1:]
	}

	count := 0
	for _, entry := range ring {
		if entry == lowered {
			count++
		}
	}

	if count >= threshold {
		delete(h.entries, key)
		return true
	}

	h.entries[key] = ring
	return false
}
