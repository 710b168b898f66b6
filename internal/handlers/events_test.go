package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"guardbot/internal/core/domain"
	"guardbot/internal/core/services/automod"
	"guardbot/internal/core/services/leveling"
)

func TestHandleMessageSkipsBotsAndDMs(t *testing.T) {
	tests := []struct {
		name string
		msg  *domain.Message
	}{
		{
			name: "bot author",
			msg:  &domain.Message{GuildID: "guild-1", ChannelID: "channel-1", AuthorID: "bot-2", AuthorIsBot: true, Content: "hello"},
		},
		{
			name: "direct message",
			msg:  &domain.Message{ChannelID: "channel-1", AuthorID: "user-1", Content: "hello"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var upserts []*domain.UserLevel
			repo := &mockRepository{
				upsertUserLevelFunc: func(ctx context.Context, ul *domain.UserLevel) error {
					upserts = append(upserts, ul)
					return nil
				},
			}
			handler := &EventHandler{
				AutoMod:  automod.NewEngine(repo, nil, nil),
				Leveling: leveling.NewEngine(repo, nil, nil),
			}

			handler.handleMessage(context.Background(), tc.msg)
			if len(upserts) != 0 {
				t.Errorf("persisted %d user levels, want none", len(upserts))
			}
		})
	}
}

func TestMessageFromEvent(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "message-1",
			GuildID:   "guild-1",
			ChannelID: "channel-1",
			Content:   "hello there",
			Timestamp: ts,
			Author:    &discordgo.User{ID: "user-1", Bot: true},
			Mentions: []*discordgo.User{
				{ID: "user-2"},
				{ID: "user-3"},
			},
		},
	}

	msg := messageFromEvent(event)
	if msg.ID != "message-1" || msg.GuildID != "guild-1" || msg.ChannelID != "channel-1" {
		t.Errorf("identifiers = %q/%q/%q", msg.ID, msg.GuildID, msg.ChannelID)
	}
	if msg.AuthorID != "user-1" || !msg.AuthorIsBot {
		t.Errorf("author = %q (bot %v)", msg.AuthorID, msg.AuthorIsBot)
	}
	if !msg.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v", msg.Timestamp)
	}
	if len(msg.MentionUserIDs) != 2 || msg.MentionUserIDs[0] != "user-2" {
		t.Errorf("mentions = %v", msg.MentionUserIDs)
	}
}

func TestMessageFromEventNilAuthor(t *testing.T) {
	msg := messageFromEvent(&discordgo.MessageCreate{
		Message: &discordgo.Message{ID: "message-1"},
	})
	if msg.AuthorID != "" || msg.AuthorIsBot {
		t.Errorf("author = %q (bot %v), want empty", msg.AuthorID, msg.AuthorIsBot)
	}
}

func TestVoiceFromEvent(t *testing.T) {
	event := &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{
			GuildID:   "guild-1",
			UserID:    "user-1",
			ChannelID: "voice-2",
			SelfDeaf:  true,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "user-1", Bot: true},
			},
		},
		BeforeUpdate: &discordgo.VoiceState{ChannelID: "voice-1"},
	}

	update := voiceFromEvent(event)
	if update.GuildID != "guild-1" || update.UserID != "user-1" {
		t.Errorf("identifiers = %q/%q", update.GuildID, update.UserID)
	}
	if update.AfterChannelID != "voice-2" || update.BeforeChannelID != "voice-1" {
		t.Errorf("channels = %q -> %q", update.BeforeChannelID, update.AfterChannelID)
	}
	if !update.SelfDeaf || !update.IsBot {
		t.Errorf("flags = selfdeaf %v, bot %v", update.SelfDeaf, update.IsBot)
	}
}

func TestVoiceFromEventNoBeforeState(t *testing.T) {
	update := voiceFromEvent(&discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{GuildID: "guild-1", UserID: "user-1", ChannelID: "voice-1"},
	})
	if update.BeforeChannelID != "" {
		t.Errorf("before channel = %q, want empty", update.BeforeChannelID)
	}
}
