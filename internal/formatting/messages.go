package formatting

import (
	"fmt"

	"guardbot/internal/core/domain"
)

const (
	MsgAdminRequired  = "You need Administrator permissions to use this command."
	MsgRoleRequired   = "Role is required."
	MsgLevelRequired  = "Level must be at least 1."
	MsgLevelInvalid   = "Level cannot be negative."
	MsgSaveError      = "Failed to save configuration."
	MsgNoRanking      = "No one has earned XP in this server yet."
	MsgModerationWarn = "Your message was removed by the auto-moderator. Please slow down and follow the server rules."
)

func MsgRank(rank, level, xp, xpNeeded, totalXP int) string {
	return fmt.Sprintf("Rank **#%d** - level %d (%d/%d XP, %d total)", rank, level, xp, xpNeeded, totalXP)
}

func MsgLeaderboardLine(rank int, userID string, level, totalXP int) string {
	return fmt.Sprintf("%d. <@%s> - level %d (%d XP)", rank, userID, level, totalXP)
}

func MsgLevelRoleAdded(roleID string, level int) string {
	return fmt.Sprintf("Members reaching level %d will now receive <@&%s>.", level, roleID)
}

func MsgLevelRoleRemoved(roleID string) string {
	return fmt.Sprintf("<@&%s> is no longer a level reward.", roleID)
}

func MsgLevelSet(userID string, level int) string {
	return fmt.Sprintf("<@%s> is now level %d.", userID, level)
}

func MsgUserReset(userID string) string {
	return fmt.Sprintf("Progression for <@%s> has been reset.", userID)
}

func MsgGuardConfig(cfg *domain.ModerationConfig, punishment string) string {
	return fmt.Sprintf(
		"**Auto-moderation** - punishment: %s\n"+
			"Spam: %s (%d msgs / %s)\n"+
			"Caps: %s (%d%% over %d chars)\n"+
			"Repeated text: %s (x%d)\n"+
			"Links: %s - Invites: %s - Word filter: %s (%d words)\n"+
			"Max mentions: %d - Max emojis: %d",
		punishment,
		onOff(cfg.SpamEnabled), cfg.SpamThreshold, cfg.SpamInterval,
		onOff(cfg.CapsEnabled), cfg.CapsThreshold, cfg.CapsMinLength,
		onOff(cfg.RepeatedEnabled), cfg.RepeatedThreshold,
		onOff(cfg.LinkFilterEnabled), onOff(cfg.InviteFilterEnabled), onOff(cfg.WordFilterEnabled), len(cfg.FilteredWords),
		cfg.MaxMentions, cfg.MaxEmojis,
	)
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
