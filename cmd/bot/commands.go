package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "rank",
			Description: "Show your level and XP in this server",
		},
		{
			Name:        "leaderboard",
			Description: "Show the top members of this server by XP",
		},
		{
			Name:        "guard-config",
			Description: "Show the current auto-moderation settings",
		},
		{
			Name:        "level-role-add",
			Description: "Reward a role when members reach a level",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to grant",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "level",
					Description: "Level required to earn the role",
					Required:    true,
				},
			},
		},
		{
			Name:        "level-role-remove",
			Description: "Stop rewarding a role on level up",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to remove from the rewards",
					Required:    true,
				},
			},
		},
		{
			Name:        "level-set",
			Description: "Set a member's level",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to change",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "level",
					Description: "Level to place the member at",
					Required:    true,
				},
			},
		},
		{
			Name:        "level-reset",
			Description: "Reset a member's XP and level",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to reset",
					Required:    true,
				},
			},
		},
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID string) []*discordgo.ApplicationCommand {
	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		registered, err := session.ApplicationCommandCreate(userID, "", cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registeredCommands[i] = registered
		slog.Info("Registered command", "name", cmd.Name)
	}

	return registeredCommands
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		err := session.ApplicationCommandDelete(userID, "", cmd.ID)
		if err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
