package voicetime

import (
	"sync"
	"time"

	"guardbot/internal/core/domain"
)

type sessionKey struct {
	GuildID string
	UserID  string
}

// Accrual is a batch of whole voice minutes owed to one user.
type Accrual struct {
	GuildID string
	UserID  string
	Minutes int
}

// Tracker remembers when each user started accruing voice time. Sessions
// are process-local; a restart simply starts fresh counts.
type Tracker struct {
	mu       sync.Mutex
	sessions map[sessionKey]time.Time
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[sessionKey]time.Time),
		now:      time.Now,
	}
}

// Observe feeds one voice-state transition into the tracker. When an
// XP-eligible session ends it returns the whole minutes still owed for it,
// otherwise 0. Deafening yourself ends accrual the same way leaving does.
func (t *Tracker) Observe(update domain.VoiceUpdate) int {
	key := sessionKey{GuildID: update.GuildID, UserID: update.UserID}

	t.mu.Lock()
	defer t.mu.Unlock()

	ended := update.AfterChannelID == "" || update.SelfDeaf || update.Deaf
	if ended {
		started, ok := t.sessions[key]
		if !ok {
			return 0
		}
		delete(t.sessions, key)
		return int(t.now().Sub(started).Minutes())
	}

	if _, ok := t.sessions[key]; !ok {
		t.sessions[key] = t.now()
	}
	return 0
}

// Sweep settles whole minutes for every open session and advances each
// session's start by the settled amount, so long stays accrue periodically
// instead of only at disconnect.
func (t *Tracker) Sweep() []Accrual {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var due []Accrual
	for key, started := range t.sessions {
		minutes := int(now.Sub(started).Minutes())
		if minutes < 1 {
			continue
		}
		t.sessions[key] = started.Add(time.Duration(minutes) * time.Minute)
		due = append(due, Accrual{GuildID: key.GuildID, UserID: key.UserID, Minutes: minutes})
	}
	return due
}

// Active reports whether a session is currently open for the user.
func (t *Tracker) Active(guildID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sessions[sessionKey{GuildID: guildID, UserID: userID}]
	return ok
}
