package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"guardbot/internal/config"
	"guardbot/internal/core/ports"
	"guardbot/internal/core/services/leveling"
	"guardbot/internal/formatting"
)

type BotHandler struct {
	Config   *config.Config
	Store    ports.Repository
	Leveling *leveling.Engine
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Guard bot is online!", "user", session.State.User.Username)
}

// Rank reports the caller's progression in the guild.
func (h *BotHandler) Rank(s DiscordSession, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	ctx := context.Background()

	ul, err := h.Store.GetUserLevel(ctx, i.GuildID, userID)
	if err != nil {
		slog.Error("Failed to load user level", "guild_id", i.GuildID, "user_id", userID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}
	if ul == nil {
		respond(s, i, formatting.MsgNoRanking, true)
		return
	}

	rank, err := h.Store.GetUserRank(ctx, i.GuildID, userID)
	if err != nil {
		slog.Error("Failed to load user rank", "guild_id", i.GuildID, "user_id", userID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgRank(rank, ul.Level, ul.XP, leveling.XPRequired(ul.Level+1), ul.TotalXP), false)
}

// Leaderboard lists the guild's top members by lifetime XP.
func (h *BotHandler) Leaderboard(s DiscordSession, i *discordgo.InteractionCreate) {
	entries, err := h.Store.GetLeaderboard(context.Background(), i.GuildID, h.Config.LeaderboardLimit)
	if err != nil {
		slog.Error("Failed to load leaderboard", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}
	if len(entries) == 0 {
		respond(s, i, formatting.MsgNoRanking, true)
		return
	}

	var b strings.Builder
	for n, entry := range entries {
		b.WriteString(formatting.MsgLeaderboardLine(n+1, entry.UserID, entry.Level, entry.TotalXP))
		b.WriteString("\n")
	}
	respond(s, i, b.String(), false)
}

// GuardConfig shows the guild's current automod settings.
func (h *BotHandler) GuardConfig(s DiscordSession, i *discordgo.InteractionCreate) {
	cfg, err := h.Store.GetOrCreateModerationConfig(context.Background(), i.GuildID)
	if err != nil {
		slog.Error("Failed to load moderation config", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	punishment := cases.Title(language.English).String(cfg.PunishmentType.String())
	respond(s, i, formatting.MsgGuardConfig(cfg, punishment), true)
}

// LevelRoleAdd registers a role reward for reaching a level.
func (h *BotHandler) LevelRoleAdd(s DiscordSession, i *discordgo.InteractionCreate) {
	var roleID string
	var level int
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "role":
			roleID = opt.RoleValue(nil, "").ID
		case "level":
			level = int(opt.IntValue())
		}
	}

	if roleID == "" {
		respond(s, i, formatting.MsgRoleRequired, true)
		return
	}
	if level < 1 {
		respond(s, i, formatting.MsgLevelRequired, true)
		return
	}

	if err := h.Store.AddLevelRole(context.Background(), i.GuildID, roleID, level); err != nil {
		slog.Error("Failed to add level role", "guild_id", i.GuildID, "role_id", roleID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgLevelRoleAdded(roleID, level), false)
}

// LevelRoleRemove unregisters a role reward.
func (h *BotHandler) LevelRoleRemove(s DiscordSession, i *discordgo.InteractionCreate) {
	var roleID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "role" {
			roleID = opt.RoleValue(nil, "").ID
		}
	}

	if roleID == "" {
		respond(s, i, formatting.MsgRoleRequired, true)
		return
	}

	if err := h.Store.RemoveLevelRole(context.Background(), i.GuildID, roleID); err != nil {
		slog.Error("Failed to remove level role", "guild_id", i.GuildID, "role_id", roleID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgLevelRoleRemoved(roleID), false)
}

// SetLevel places a member exactly at the start of a level.
func (h *BotHandler) SetLevel(s DiscordSession, i *discordgo.InteractionCreate) {
	var userID string
	var level int
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			userID = opt.UserValue(nil).ID
		case "level":
			level = int(opt.IntValue())
		}
	}

	if userID == "" {
		userID = interactionUserID(i)
	}
	if level < 0 {
		respond(s, i, formatting.MsgLevelInvalid, true)
		return
	}

	if err := h.Leveling.SetLevel(context.Background(), i.GuildID, userID, level); err != nil {
		slog.Error("Failed to set user level", "guild_id", i.GuildID, "user_id", userID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgLevelSet(userID, level), false)
}

// ResetUser zeroes a member's progression counters.
func (h *BotHandler) ResetUser(s DiscordSession, i *discordgo.InteractionCreate) {
	var userID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			userID = opt.UserValue(nil).ID
		}
	}
	if userID == "" {
		userID = interactionUserID(i)
	}

	if err := h.Store.ResetUserLevel(context.Background(), i.GuildID, userID); err != nil {
		slog.Error("Failed to reset user level", "guild_id", i.GuildID, "user_id", userID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgUserReset(userID), false)
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}
