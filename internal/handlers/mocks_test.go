package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"guardbot/internal/core/domain"
)

type mockSession struct {
	responses []*discordgo.InteractionResponse
	err       error
}

func (m *mockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	m.responses = append(m.responses, resp)
	return m.err
}

func (m *mockSession) lastContent() string {
	if len(m.responses) == 0 {
		return ""
	}
	return m.responses[len(m.responses)-1].Data.Content
}

type mockRepository struct {
	getUserLevelFunc        func(ctx context.Context, guildID, userID string) (*domain.UserLevel, error)
	getUserRankFunc         func(ctx context.Context, guildID, userID string) (int, error)
	getLeaderboardFunc      func(ctx context.Context, guildID string, limit int) ([]domain.UserLevel, error)
	getModerationConfigFunc func(ctx context.Context, guildID string) (*domain.ModerationConfig, error)
	addLevelRoleFunc        func(ctx context.Context, guildID, roleID string, levelRequired int) error
	removeLevelRoleFunc     func(ctx context.Context, guildID, roleID string) error
	resetUserLevelFunc      func(ctx context.Context, guildID, userID string) error
	upsertUserLevelFunc     func(ctx context.Context, ul *domain.UserLevel) error
}

func (m *mockRepository) GetUserLevel(ctx context.Context, guildID, userID string) (*domain.UserLevel, error) {
	if m.getUserLevelFunc != nil {
		return m.getUserLevelFunc(ctx, guildID, userID)
	}
	return nil, nil
}

func (m *mockRepository) GetUserRank(ctx context.Context, guildID, userID string) (int, error) {
	if m.getUserRankFunc != nil {
		return m.getUserRankFunc(ctx, guildID, userID)
	}
	return 0, nil
}

func (m *mockRepository) GetLeaderboard(ctx context.Context, guildID string, limit int) ([]domain.UserLevel, error) {
	if m.getLeaderboardFunc != nil {
		return m.getLeaderboardFunc(ctx, guildID, limit)
	}
	return nil, nil
}

func (m *mockRepository) GetOrCreateModerationConfig(ctx context.Context, guildID string) (*domain.ModerationConfig, error) {
	if m.getModerationConfigFunc != nil {
		return m.getModerationConfigFunc(ctx, guildID)
	}
	cfg := domain.DefaultModerationConfig(guildID)
	return &cfg, nil
}

func (m *mockRepository) AddLevelRole(ctx context.Context, guildID, roleID string, levelRequired int) error {
	if m.addLevelRoleFunc != nil {
		return m.addLevelRoleFunc(ctx, guildID, roleID, levelRequired)
	}
	return nil
}

func (m *mockRepository) RemoveLevelRole(ctx context.Context, guildID, roleID string) error {
	if m.removeLevelRoleFunc != nil {
		return m.removeLevelRoleFunc(ctx, guildID, roleID)
	}
	return nil
}

func (m *mockRepository) ResetUserLevel(ctx context.Context, guildID, userID string) error {
	if m.resetUserLevelFunc != nil {
		return m.resetUserLevelFunc(ctx, guildID, userID)
	}
	return nil
}

func (m *mockRepository) GetOrCreateLevelingConfig(ctx context.Context, guildID string) (*domain.LevelingConfig, error) {
	return nil, nil
}
func (m *mockRepository) UpsertUserLevel(ctx context.Context, ul *domain.UserLevel) error {
	if m.upsertUserLevelFunc != nil {
		return m.upsertUserLevelFunc(ctx, ul)
	}
	return nil
}
func (m *mockRepository) GetLevelRoles(ctx context.Context, guildID string) ([]domain.LevelRole, error) {
	return nil, nil
}
func (m *mockRepository) InsertModerationLog(ctx context.Context, entry domain.ModerationLog) error {
	return nil
}
func (m *mockRepository) Close() {}

func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild-1",
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "user-1"},
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}
