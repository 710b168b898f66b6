package voicetime

import (
	"context"
	"log/slog"
	"time"

	"guardbot/internal/core/services/leveling"
)

// Awarder is satisfied by the leveling engine.
type Awarder interface {
	AwardVoiceXP(ctx context.Context, guildID, userID string, minutes int) (leveling.Award, error)
}

// Service periodically settles voice minutes for users who stay connected,
// so XP is not deferred until they disconnect.
type Service struct {
	tracker *Tracker
	awarder Awarder
	sweep   time.Duration
}

func NewService(tracker *Tracker, awarder Awarder, sweep time.Duration) *Service {
	return &Service{
		tracker: tracker,
		awarder: awarder,
		sweep:   sweep,
	}
}

func (s *Service) Start(ctx context.Context) {
	slog.Info("Voice time sweeper started", "interval", s.sweep)

	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Voice time sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *Service) runSweep(ctx context.Context) {
	for _, due := range s.tracker.Sweep() {
		if _, err := s.awarder.AwardVoiceXP(ctx, due.GuildID, due.UserID, due.Minutes); err != nil {
			slog.Error("Failed to award voice XP", "guild_id", due.GuildID, "user_id", due.UserID, "error", err)
		}
	}
}
