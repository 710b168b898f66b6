package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"guardbot/internal/core/domain"
	"guardbot/internal/core/ports"
	"guardbot/internal/core/services/automod"
	"guardbot/internal/core/services/leveling"
	"guardbot/internal/core/services/voicetime"
	"guardbot/internal/formatting"
	"guardbot/internal/metrics"
)

// EventHandler bridges gateway events to the automod and leveling engines.
// Every message runs through automod first; only unblocked messages earn XP.
type EventHandler struct {
	AutoMod  *automod.Engine
	Leveling *leveling.Engine
	Voice    *voicetime.Tracker
	Enforcer ports.Enforcer
}

// MessageCreate returns a function compatible with discordgo.AddHandler.
func (h *EventHandler) MessageCreate() func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		h.handleMessage(context.Background(), messageFromEvent(m))
	}
}

func (h *EventHandler) handleMessage(ctx context.Context, msg *domain.Message) {
	if msg.AuthorIsBot || msg.GuildID == "" {
		return
	}

	start := time.Now()
	defer func() {
		metrics.EventDuration.WithLabelValues("message_create").Observe(time.Since(start).Seconds())
	}()

	reason, err := h.AutoMod.ProcessMessage(ctx, msg)
	if err != nil {
		// Persistence trouble drops this one event; the next one gets a
		// fresh chance.
		slog.Error("Failed to moderate message", "guild_id", msg.GuildID, "user_id", msg.AuthorID, "error", err)
		return
	}
	if reason != "" {
		h.Enforcer.SendMessage(msg.ChannelID, "<@"+msg.AuthorID+"> "+formatting.MsgModerationWarn)
		return
	}

	if _, err := h.Leveling.AwardMessageXP(ctx, msg.GuildID, msg.AuthorID, msg.ChannelID); err != nil {
		slog.Error("Failed to award message XP", "guild_id", msg.GuildID, "user_id", msg.AuthorID, "error", err)
	}
}

// VoiceStateUpdate returns a function compatible with discordgo.AddHandler.
func (h *EventHandler) VoiceStateUpdate() func(*discordgo.Session, *discordgo.VoiceStateUpdate) {
	return func(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
		h.handleVoice(context.Background(), voiceFromEvent(v))
	}
}

func (h *EventHandler) handleVoice(ctx context.Context, update domain.VoiceUpdate) {
	if update.IsBot || update.GuildID == "" {
		return
	}

	start := time.Now()
	defer func() {
		metrics.EventDuration.WithLabelValues("voice_state_update").Observe(time.Since(start).Seconds())
	}()

	minutes := h.Voice.Observe(update)
	if minutes < 1 {
		return
	}

	if _, err := h.Leveling.AwardVoiceXP(ctx, update.GuildID, update.UserID, minutes); err != nil {
		slog.Error("Failed to award voice XP", "guild_id", update.GuildID, "user_id", update.UserID, "error", err)
	}
}

func messageFromEvent(m *discordgo.MessageCreate) *domain.Message {
	msg := &domain.Message{
		ID:        m.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorIsBot = m.Author.Bot
	}
	for _, u := range m.Mentions {
		msg.MentionUserIDs = append(msg.MentionUserIDs, u.ID)
	}
	return msg
}

func voiceFromEvent(v *discordgo.VoiceStateUpdate) domain.VoiceUpdate {
	update := domain.VoiceUpdate{
		GuildID:        v.GuildID,
		UserID:         v.UserID,
		AfterChannelID: v.ChannelID,
		SelfDeaf:       v.SelfDeaf,
		Deaf:           v.Deaf,
	}
	if v.Member != nil && v.Member.User != nil {
		update.IsBot = v.Member.User.Bot
	}
	if v.BeforeUpdate != nil {
		update.BeforeChannelID = v.BeforeUpdate.ChannelID
	}
	return update
}
